package buffer

import "sync/atomic"

// Handle extends the lifetime of a packed buffer's backing bytes across
// however many owners hold a reference to it. The
// last Release frees the reference; a Buffer obtained after that point
// must not be used.
//
// Two implementations exist: an atomic one safe to share across
// goroutines, and a plain one for single-threaded callers that do not
// want to pay for the atomic increment/decrement. Buffer picks one at
// construction time via NewFromValidated's single flag.
type Handle interface {
	// Retain increments the reference count and returns the same Handle,
	// for the common "store a copy, retain it" pattern.
	Retain() Handle
	// Release decrements the reference count. It returns true if this
	// call dropped the count to zero, i.e. this caller was the last owner.
	Release() bool
	// Count returns the current reference count. It is a snapshot; under
	// concurrent use by the atomic variant it may be stale the instant
	// it is returned.
	Count() int64
}

// atomicHandle is the thread-safe Handle, backed by an atomic counter.
type atomicHandle struct {
	count *atomic.Int64
}

// newAtomicHandle returns a Handle with an initial reference count of 1.
func newAtomicHandle() Handle {
	h := &atomicHandle{count: new(atomic.Int64)}
	h.count.Store(1)

	return h
}

func (h *atomicHandle) Retain() Handle {
	h.count.Add(1)
	return h
}

func (h *atomicHandle) Release() bool {
	return h.count.Add(-1) == 0
}

func (h *atomicHandle) Count() int64 {
	return h.count.Load()
}

// plainHandle is the non-atomic, single-threaded Handle. Using it from
// more than one goroutine is undefined — callers that cannot guarantee
// single-threaded access must use the atomic variant instead.
type plainHandle struct {
	count int64
}

// newPlainHandle returns a Handle with an initial reference count of 1.
func newPlainHandle() Handle {
	return &plainHandle{count: 1}
}

func (h *plainHandle) Retain() Handle {
	h.count++
	return h
}

func (h *plainHandle) Release() bool {
	h.count--
	return h.count == 0
}

func (h *plainHandle) Count() int64 {
	return h.count
}
