package dtype

import "fmt"

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindFloat64
	KindInt64
	KindString
	KindFloat64Array
	KindUint8Array
	KindBytes
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindFloat64:
		return "float64"
	case KindInt64:
		return "int64"
	case KindString:
		return "string"
	case KindFloat64Array:
		return "float64 array"
	case KindUint8Array:
		return "uint8 array"
	case KindBytes:
		return "bytes"
	default:
		return fmt.Sprintf("invalid kind %d", uint8(k))
	}
}

// Value is a tagged variant over the kinds a dataset leaf can hold.
// The zero Value has KindInvalid and encodes to an error.
type Value struct {
	kind   Kind
	f      float64
	i      int64
	s      string
	floats []float64
	bytes  []byte
	shape  []int
}

// Float64 wraps a scalar float.
func Float64(v float64) Value {
	return Value{kind: KindFloat64, f: v}
}

// Int64 wraps a scalar integer.
func Int64(v int64) Value {
	return Value{kind: KindInt64, i: v}
}

// String wraps a UTF-8 string.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Float64Array wraps a shaped float array. With no shape given the array is
// one-dimensional of length len(data).
func Float64Array(data []float64, shape ...int) Value {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	return Value{kind: KindFloat64Array, floats: data, shape: shape}
}

// Uint8Array wraps a shaped byte array (image buffers and the like).
// With no shape given the array is one-dimensional of length len(data).
func Uint8Array(data []byte, shape ...int) Value {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	return Value{kind: KindUint8Array, bytes: data, shape: shape}
}

// Bytes wraps an opaque blob, stored verbatim with no shape.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, bytes: b}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Shape returns the array dimensions, or nil for non-array kinds.
func (v Value) Shape() []int { return v.shape }

// NumElements returns the total element count for array kinds, 1 for
// scalars and strings, and len(blob) for opaque bytes.
func (v Value) NumElements() int {
	switch v.kind {
	case KindFloat64Array:
		return len(v.floats)
	case KindUint8Array, KindBytes:
		return len(v.bytes)
	default:
		return 1
	}
}

// AsFloat64 returns the scalar float value.
func (v Value) AsFloat64() (float64, bool) {
	return v.f, v.kind == KindFloat64
}

// AsInt64 returns the scalar integer value.
func (v Value) AsInt64() (int64, bool) {
	return v.i, v.kind == KindInt64
}

// AsString returns the string value.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsFloat64Array returns the float array payload.
func (v Value) AsFloat64Array() ([]float64, bool) {
	return v.floats, v.kind == KindFloat64Array
}

// AsUint8Array returns the byte array payload.
func (v Value) AsUint8Array() ([]byte, bool) {
	return v.bytes, v.kind == KindUint8Array
}

// AsBytes returns the opaque blob payload.
func (v Value) AsBytes() ([]byte, bool) {
	return v.bytes, v.kind == KindBytes
}
