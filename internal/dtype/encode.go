package dtype

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Encoding errors.
var (
	ErrInvalidValue = errors.New("cannot encode invalid value")
	ErrTruncated    = errors.New("truncated value buffer")
	ErrUnknownTag   = errors.New("unknown value tag")
	ErrBadShape     = errors.New("shape does not match payload length")
)

const maxRank = 32

// Encode serializes v into a self-framed little-endian buffer.
func Encode(v Value) ([]byte, error) {
	switch v.kind {
	case KindFloat64:
		buf := make([]byte, 9)
		buf[0] = byte(KindFloat64)
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(v.f))
		return buf, nil

	case KindInt64:
		buf := make([]byte, 9)
		buf[0] = byte(KindInt64)
		binary.LittleEndian.PutUint64(buf[1:], uint64(v.i))
		return buf, nil

	case KindString:
		buf := make([]byte, 1+len(v.s))
		buf[0] = byte(KindString)
		copy(buf[1:], v.s)
		return buf, nil

	case KindFloat64Array:
		if err := checkShape(v.shape, len(v.floats)); err != nil {
			return nil, err
		}
		buf := encodeHeader(KindFloat64Array, v.shape, len(v.floats)*8)
		for _, f := range v.floats {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
		}
		return buf, nil

	case KindUint8Array:
		if err := checkShape(v.shape, len(v.bytes)); err != nil {
			return nil, err
		}
		buf := encodeHeader(KindUint8Array, v.shape, len(v.bytes))
		return append(buf, v.bytes...), nil

	case KindBytes:
		buf := make([]byte, 1+len(v.bytes))
		buf[0] = byte(KindBytes)
		copy(buf[1:], v.bytes)
		return buf, nil

	default:
		return nil, ErrInvalidValue
	}
}

// Decode parses a buffer produced by Encode.
func Decode(buf []byte) (Value, error) {
	if len(buf) == 0 {
		return Value{}, ErrTruncated
	}
	tag := Kind(buf[0])
	payload := buf[1:]

	switch tag {
	case KindFloat64:
		if len(payload) != 8 {
			return Value{}, ErrTruncated
		}
		return Float64(math.Float64frombits(binary.LittleEndian.Uint64(payload))), nil

	case KindInt64:
		if len(payload) != 8 {
			return Value{}, ErrTruncated
		}
		return Int64(int64(binary.LittleEndian.Uint64(payload))), nil

	case KindString:
		return String(string(payload)), nil

	case KindFloat64Array:
		shape, rest, err := decodeShape(payload)
		if err != nil {
			return Value{}, err
		}
		n := numElements(shape)
		if len(rest) != n*8 {
			return Value{}, fmt.Errorf("%w: %d dims, %d payload bytes", ErrBadShape, n, len(rest))
		}
		data := make([]float64, n)
		for i := range data {
			data[i] = math.Float64frombits(binary.LittleEndian.Uint64(rest[i*8:]))
		}
		return Float64Array(data, shape...), nil

	case KindUint8Array:
		shape, rest, err := decodeShape(payload)
		if err != nil {
			return Value{}, err
		}
		if n := numElements(shape); len(rest) != n {
			return Value{}, fmt.Errorf("%w: %d dims, %d payload bytes", ErrBadShape, n, len(rest))
		}
		data := make([]byte, len(rest))
		copy(data, rest)
		return Uint8Array(data, shape...), nil

	case KindBytes:
		data := make([]byte, len(payload))
		copy(data, payload)
		return Bytes(data), nil

	default:
		return Value{}, fmt.Errorf("%w: %d", ErrUnknownTag, buf[0])
	}
}

// encodeHeader writes the tag, rank, and dimensions, pre-sizing the buffer
// for a payload of payloadLen bytes.
func encodeHeader(tag Kind, shape []int, payloadLen int) []byte {
	buf := make([]byte, 0, 2+len(shape)*8+payloadLen)
	buf = append(buf, byte(tag), byte(len(shape)))
	for _, d := range shape {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(d))
	}
	return buf
}

func decodeShape(buf []byte) (shape []int, rest []byte, err error) {
	if len(buf) < 1 {
		return nil, nil, ErrTruncated
	}
	rank := int(buf[0])
	if rank > maxRank {
		return nil, nil, fmt.Errorf("%w: rank %d", ErrBadShape, rank)
	}
	buf = buf[1:]
	if len(buf) < rank*8 {
		return nil, nil, ErrTruncated
	}
	shape = make([]int, rank)
	for i := range shape {
		d := int64(binary.LittleEndian.Uint64(buf[i*8:]))
		if d < 0 {
			return nil, nil, fmt.Errorf("%w: negative dimension %d", ErrBadShape, d)
		}
		shape[i] = int(d)
	}
	return shape, buf[rank*8:], nil
}

func checkShape(shape []int, n int) error {
	if len(shape) > maxRank {
		return fmt.Errorf("%w: rank %d", ErrBadShape, len(shape))
	}
	if got := numElements(shape); got != n {
		return fmt.Errorf("%w: shape %v holds %d elements, have %d", ErrBadShape, shape, got, n)
	}
	return nil
}

func numElements(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}
