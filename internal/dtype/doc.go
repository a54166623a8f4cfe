// Package dtype defines the tagged value variant stored in dataset leaves
// and its self-framed binary encoding.
//
// Every dataset in a container holds exactly one Value: a scalar
// (float64/int64), a UTF-8 string, a shaped numeric or byte array, or an
// opaque byte blob (used for serialized tabular frames). The encoding is
// little-endian with a one-byte kind tag, so a stored buffer can be decoded
// without out-of-band type information:
//
//	tag | payload                                  (scalars, strings, blobs)
//	tag | rank | dim[0..rank) as int64 | payload   (arrays)
//
// Decode rejects truncated buffers, unknown tags, and arrays whose declared
// shape does not account for the payload length.
package dtype
