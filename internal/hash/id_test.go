package hash

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDigest(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, Digest([]byte(tt.data)))
			assert.Equal(t, tt.id, DigestString(tt.data))
		})
	}
}

func TestDigest_ConsistentAcrossCalls(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	first := Digest(data)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Digest(data))
	}
}

func TestDigest_DifferentBytesDifferentDigest(t *testing.T) {
	a := Digest([]byte{0x00, 0x01, 0x02})
	b := Digest([]byte{0x00, 0x01, 0x03})
	assert.NotEqual(t, a, b)
}

func randString(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range b {
		// random index
		b[i] = letters[seededRand.Intn(len(letters))]
	}

	return string(b)
}

func BenchmarkDigestString(b *testing.B) {
	randStr := randString(20)
	b.ResetTimer()
	for b.Loop() {
		DigestString(randStr)
	}
}
