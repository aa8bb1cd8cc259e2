// Package yaml is a YAML collaborator alongside the json package: it
// decodes YAML text into a heap.Node tree and encodes a packet.Value
// back to YAML.
//
// Decoding walks gopkg.in/yaml.v3's yaml.Node tree rather than
// unmarshalling into interface{}, and leans on that library's own tag
// resolution (Node.Decode into an interface{} per scalar) to distinguish
// a quoted string from an unquoted integer or float — the same kind
// split the json package makes, without a lossy detour through Go's
// untyped map/slice/any values for the aggregate structure.
//
// Encoding builds an explicit *yaml.Node tree (mapping/sequence/scalar)
// in the value's canonical key order and hands it to the library's own
// Encoder, rather than building a map[string]interface{} whose key order
// Go does not guarantee.
//
// Every error Decode and Unmarshal return wraps errs.ErrParse, mirroring
// the json package; Encode and Marshal can also return
// errs.ErrKindMismatch or errs.ErrKeyNotFound from walking the value.
package yaml
