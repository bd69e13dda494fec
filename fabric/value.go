package fabric

import (
	"encoding/binary"
	"fmt"

	"github.com/renproject/surge"

	"github.com/renegade-fi/mpc-stark/algebra"
)

// ValueKind tags the payload carried by a ResultValue.
type ValueKind uint8

// The five payload shapes a ResultValue may carry.
const (
	KindScalar ValueKind = iota
	KindPoint
	KindScalarBatch
	KindPointBatch
	KindBytes
)

func (k ValueKind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindPoint:
		return "Point"
	case KindScalarBatch:
		return "ScalarBatch"
	case KindPointBatch:
		return "PointBatch"
	case KindBytes:
		return "Bytes"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// ResultValue is a tagged value produced by a gate. Exactly one of the
// fields matching Kind is meaningful. Once published for a given ResultId
// it is never mutated.
type ResultValue struct {
	Kind        ValueKind
	Scalar      algebra.Scalar
	Point       algebra.Point
	ScalarBatch []algebra.Scalar
	PointBatch  []algebra.Point
	Bytes       []byte
}

// ValueFromScalar wraps a scalar as a ResultValue.
func ValueFromScalar(s algebra.Scalar) ResultValue { return ResultValue{Kind: KindScalar, Scalar: s} }

// ValueFromPoint wraps a curve point as a ResultValue.
func ValueFromPoint(p algebra.Point) ResultValue { return ResultValue{Kind: KindPoint, Point: p} }

// ValueFromScalarBatch wraps a batch of scalars as a ResultValue.
func ValueFromScalarBatch(s []algebra.Scalar) ResultValue {
	return ResultValue{Kind: KindScalarBatch, ScalarBatch: s}
}

// ValueFromPointBatch wraps a batch of points as a ResultValue.
func ValueFromPointBatch(p []algebra.Point) ResultValue {
	return ResultValue{Kind: KindPointBatch, PointBatch: p}
}

// ValueFromBytes wraps an opaque network payload as a ResultValue.
func ValueFromBytes(b []byte) ResultValue { return ResultValue{Kind: KindBytes, Bytes: b} }

// AsScalar downcasts the value, returning a type-mismatch *ProtocolViolation
// if Kind is not KindScalar.
func (v ResultValue) AsScalar() (algebra.Scalar, error) {
	if v.Kind != KindScalar {
		return algebra.Scalar{}, newTypeMismatch(KindScalar, v.Kind)
	}
	return v.Scalar, nil
}

// AsPoint downcasts the value, returning a type-mismatch *ProtocolViolation
// if Kind is not KindPoint.
func (v ResultValue) AsPoint() (algebra.Point, error) {
	if v.Kind != KindPoint {
		return algebra.Point{}, newTypeMismatch(KindPoint, v.Kind)
	}
	return v.Point, nil
}

// AsScalarBatch downcasts the value, returning a type-mismatch
// *ProtocolViolation if Kind is not KindScalarBatch.
func (v ResultValue) AsScalarBatch() ([]algebra.Scalar, error) {
	if v.Kind != KindScalarBatch {
		return nil, newTypeMismatch(KindScalarBatch, v.Kind)
	}
	return v.ScalarBatch, nil
}

// AsPointBatch downcasts the value, returning a type-mismatch
// *ProtocolViolation if Kind is not KindPointBatch.
func (v ResultValue) AsPointBatch() ([]algebra.Point, error) {
	if v.Kind != KindPointBatch {
		return nil, newTypeMismatch(KindPointBatch, v.Kind)
	}
	return v.PointBatch, nil
}

// AsBytes downcasts the value, returning a type-mismatch *ProtocolViolation
// if Kind is not KindBytes.
func (v ResultValue) AsBytes() ([]byte, error) {
	if v.Kind != KindBytes {
		return nil, newTypeMismatch(KindBytes, v.Kind)
	}
	return v.Bytes, nil
}

// SizeHint implements the surge.SizeHinter interface.
func (v ResultValue) SizeHint() int {
	switch v.Kind {
	case KindScalar:
		return 1 + algebra.ScalarNumBytes
	case KindPoint:
		return 1 + algebra.PointNumBytes
	case KindScalarBatch:
		return 1 + 4 + len(v.ScalarBatch)*algebra.ScalarNumBytes
	case KindPointBatch:
		return 1 + 4 + len(v.PointBatch)*algebra.PointNumBytes
	case KindBytes:
		return 1 + 4 + len(v.Bytes)
	default:
		return 1
	}
}

// Marshal implements the surge.Marshaler interface, encoding the wire
// payload as a one-byte type tag followed by the type-specific encoding.
func (v ResultValue) Marshal(buf []byte, rem int) ([]byte, int, error) {
	buf, rem, err := surge.MarshalU8(uint8(v.Kind), buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling value kind: %w", err)
	}
	switch v.Kind {
	case KindScalar:
		b := v.Scalar.ToBytes()
		return marshalFixed(b[:], buf, rem)
	case KindPoint:
		b := v.Point.ToBytes()
		return marshalFixed(b[:], buf, rem)
	case KindScalarBatch:
		buf, rem, err = surge.MarshalU32(uint32(len(v.ScalarBatch)), buf, rem)
		if err != nil {
			return buf, rem, err
		}
		for _, s := range v.ScalarBatch {
			b := s.ToBytes()
			if buf, rem, err = marshalFixed(b[:], buf, rem); err != nil {
				return buf, rem, err
			}
		}
		return buf, rem, nil
	case KindPointBatch:
		buf, rem, err = surge.MarshalU32(uint32(len(v.PointBatch)), buf, rem)
		if err != nil {
			return buf, rem, err
		}
		for _, p := range v.PointBatch {
			b := p.ToBytes()
			if buf, rem, err = marshalFixed(b[:], buf, rem); err != nil {
				return buf, rem, err
			}
		}
		return buf, rem, nil
	case KindBytes:
		buf, rem, err = surge.MarshalU32(uint32(len(v.Bytes)), buf, rem)
		if err != nil {
			return buf, rem, err
		}
		return marshalFixed(v.Bytes, buf, rem)
	default:
		return buf, rem, fmt.Errorf("marshaling result value: %w", newTypeMismatch(v.Kind, v.Kind))
	}
}

// Unmarshal implements the surge.Unmarshaler interface.
func (v *ResultValue) Unmarshal(buf []byte, rem int) ([]byte, int, error) {
	var tag uint8
	buf, rem, err := surge.UnmarshalU8(&tag, buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling value kind: %w", err)
	}
	v.Kind = ValueKind(tag)
	switch v.Kind {
	case KindScalar:
		var b [algebra.ScalarNumBytes]byte
		if buf, rem, err = unmarshalFixed(b[:], buf, rem); err != nil {
			return buf, rem, err
		}
		s, err := algebra.ScalarFromBytes(b[:])
		if err != nil {
			return buf, rem, err
		}
		v.Scalar = s
		return buf, rem, nil
	case KindPoint:
		var b [algebra.PointNumBytes]byte
		if buf, rem, err = unmarshalFixed(b[:], buf, rem); err != nil {
			return buf, rem, err
		}
		p, err := algebra.PointFromBytes(b[:])
		if err != nil {
			return buf, rem, err
		}
		v.Point = p
		return buf, rem, nil
	case KindScalarBatch:
		var n uint32
		if buf, rem, err = surge.UnmarshalU32(&n, buf, rem); err != nil {
			return buf, rem, err
		}
		out := make([]algebra.Scalar, n)
		for i := range out {
			var b [algebra.ScalarNumBytes]byte
			if buf, rem, err = unmarshalFixed(b[:], buf, rem); err != nil {
				return buf, rem, err
			}
			if out[i], err = algebra.ScalarFromBytes(b[:]); err != nil {
				return buf, rem, err
			}
		}
		v.ScalarBatch = out
		return buf, rem, nil
	case KindPointBatch:
		var n uint32
		if buf, rem, err = surge.UnmarshalU32(&n, buf, rem); err != nil {
			return buf, rem, err
		}
		out := make([]algebra.Point, n)
		for i := range out {
			var b [algebra.PointNumBytes]byte
			if buf, rem, err = unmarshalFixed(b[:], buf, rem); err != nil {
				return buf, rem, err
			}
			if out[i], err = algebra.PointFromBytes(b[:]); err != nil {
				return buf, rem, err
			}
		}
		v.PointBatch = out
		return buf, rem, nil
	case KindBytes:
		var n uint32
		if buf, rem, err = surge.UnmarshalU32(&n, buf, rem); err != nil {
			return buf, rem, err
		}
		out := make([]byte, n)
		if buf, rem, err = unmarshalFixed(out, buf, rem); err != nil {
			return buf, rem, err
		}
		v.Bytes = out
		return buf, rem, nil
	default:
		return buf, rem, fmt.Errorf("unmarshaling result value: unknown kind tag %d", tag)
	}
}

func marshalFixed(src, buf []byte, rem int) ([]byte, int, error) {
	if len(buf) < len(src) || rem < len(src) {
		return buf, rem, fmt.Errorf("marshaling fixed-length field: max bytes exceeded")
	}
	copy(buf, src)
	return buf[len(src):], rem - len(src), nil
}

func unmarshalFixed(dst, buf []byte, rem int) ([]byte, int, error) {
	if len(buf) < len(dst) || rem < len(dst) {
		return buf, rem, fmt.Errorf("unmarshaling fixed-length field: unexpected end of buffer")
	}
	copy(dst, buf[:len(dst)])
	return buf[len(dst):], rem - len(dst), nil
}

// NetworkOutbound is the (ResultId, serialized payload) pair placed on the
// fabric's outbound queue by a Network gate.
type NetworkOutbound struct {
	ResultId ResultId
	Payload  ResultValue
}

// EncodeWireMessage serializes a NetworkOutbound into the wire format: an
// 8-byte big-endian ResultId followed by the surge encoding of the payload
// (itself a 1-byte type tag plus type-specific bytes).
func EncodeWireMessage(out NetworkOutbound) ([]byte, error) {
	header := make([]byte, 8)
	binary.BigEndian.PutUint64(header, uint64(out.ResultId))

	hint := out.Payload.SizeHint()
	body := make([]byte, hint)
	if _, _, err := out.Payload.Marshal(body, hint); err != nil {
		return nil, fmt.Errorf("encoding wire message: %w", err)
	}
	return append(header, body...), nil
}

// DecodeWireMessage parses the wire format produced by EncodeWireMessage.
func DecodeWireMessage(b []byte) (NetworkOutbound, error) {
	if len(b) < 8 {
		return NetworkOutbound{}, fmt.Errorf("decoding wire message: message shorter than header")
	}
	id := ResultId(binary.BigEndian.Uint64(b[:8]))
	var payload ResultValue
	if _, _, err := payload.Unmarshal(b[8:], len(b[8:])); err != nil {
		return NetworkOutbound{}, fmt.Errorf("decoding wire message: %w", err)
	}
	return NetworkOutbound{ResultId: id, Payload: payload}, nil
}
