package telemetry

import (
	"encoding/binary"
	"fmt"
	"io"

	"corebot/matrix"
)

// maxStringLen is the largest string length a single length byte can carry directly; longer
// strings are truncated and marked with a trailing sentinel byte, per spec §6.
const maxStringLen = 255

// Encoder writes frames to an underlying io.Writer in the wire format spec §6 describes: a
// single-byte type tag, length-prefixed strings, big-endian float64 doubles.
type Encoder struct {
	w io.Writer
}

// NewEncoder wraps w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes one frame.
func (e *Encoder) Encode(f Frame) error {
	switch v := f.(type) {
	case PositionFrame:
		return e.encodePosition(v)
	case VectorFrame:
		return e.encodeVector(v)
	case TransformFrame:
		return e.encodeTransform(v)
	case UpdatableObjectFrame:
		return e.encodeUpdatableObject(v)
	case LogFrame:
		return e.encodeLog(v)
	default:
		return fmt.Errorf("telemetry: unknown frame type %T", f)
	}
}

func (e *Encoder) encodePosition(f PositionFrame) error {
	if err := e.writeTag(FrameTypePosition); err != nil {
		return err
	}
	if err := e.writeString(f.Name); err != nil {
		return err
	}
	return e.writeFloats(f.X, f.Y)
}

func (e *Encoder) encodeVector(f VectorFrame) error {
	if err := e.writeTag(FrameTypeVector); err != nil {
		return err
	}
	if err := e.writeString(f.Name); err != nil {
		return err
	}
	return e.writeFloats(f.X, f.Y, f.Z)
}

func (e *Encoder) encodeTransform(f TransformFrame) error {
	if err := e.writeTag(FrameTypeTransform); err != nil {
		return err
	}
	if err := e.writeString(f.Name); err != nil {
		return err
	}
	t := f.Transform
	return e.writeFloats(t.M00, t.M01, t.M02, t.M10, t.M11, t.M12, t.M20, t.M21, t.M22)
}

func (e *Encoder) encodeUpdatableObject(f UpdatableObjectFrame) error {
	if err := e.writeTag(FrameTypeUpdatableObject); err != nil {
		return err
	}
	if err := e.writeString(f.Name); err != nil {
		return err
	}
	if err := binary.Write(e.w, binary.BigEndian, uint32(len(f.Fields))); err != nil {
		return err
	}
	for k, v := range f.Fields {
		if err := e.writeString(k); err != nil {
			return err
		}
		if err := e.writeFloats(v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeLog(f LogFrame) error {
	if err := e.writeTag(FrameTypeLog); err != nil {
		return err
	}
	if err := e.writeString(f.Level); err != nil {
		return err
	}
	return e.writeString(f.Message)
}

func (e *Encoder) writeTag(t FrameType) error {
	_, err := e.w.Write([]byte{byte(t)})
	return err
}

func (e *Encoder) writeFloats(vs ...float64) error {
	for _, v := range vs {
		if err := binary.Write(e.w, binary.BigEndian, v); err != nil {
			return err
		}
	}
	return nil
}

// writeString encodes s as a length-prefixed string: a single unsigned length byte (0x00 denotes
// an empty/null string), followed by up to 255 content bytes. Strings of length >= 256 are
// truncated to 255 bytes with a trailing 0x00 sentinel marking the truncation; a string of
// exactly 255 bytes also carries the sentinel, since Decoder reads one after every 255-byte
// string.
func (e *Encoder) writeString(s string) error {
	if len(s) == 0 {
		_, err := e.w.Write([]byte{0x00})
		return err
	}
	if len(s) >= maxStringLen {
		if _, err := e.w.Write([]byte{maxStringLen}); err != nil {
			return err
		}
		if _, err := e.w.Write([]byte(s[:maxStringLen])); err != nil {
			return err
		}
		_, err := e.w.Write([]byte{0x00})
		return err
	}
	if _, err := e.w.Write([]byte{byte(len(s))}); err != nil {
		return err
	}
	_, err := e.w.Write([]byte(s))
	return err
}

// Decoder reads frames from an underlying io.Reader, inverse of Encoder.
type Decoder struct {
	r io.Reader
}

// NewDecoder wraps r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads one frame.
func (d *Decoder) Decode() (Frame, error) {
	tag := make([]byte, 1)
	if _, err := io.ReadFull(d.r, tag); err != nil {
		return nil, err
	}
	switch FrameType(tag[0]) {
	case FrameTypePosition:
		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		vs, err := d.readFloats(2)
		if err != nil {
			return nil, err
		}
		return PositionFrame{Name: name, X: vs[0], Y: vs[1]}, nil
	case FrameTypeVector:
		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		vs, err := d.readFloats(3)
		if err != nil {
			return nil, err
		}
		return VectorFrame{Name: name, X: vs[0], Y: vs[1], Z: vs[2]}, nil
	case FrameTypeTransform:
		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		vs, err := d.readFloats(9)
		if err != nil {
			return nil, err
		}
		return TransformFrame{Name: name, Transform: matrix.Mat3{
			M00: vs[0], M01: vs[1], M02: vs[2],
			M10: vs[3], M11: vs[4], M12: vs[5],
			M20: vs[6], M21: vs[7], M22: vs[8],
		}}, nil
	case FrameTypeUpdatableObject:
		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		var n uint32
		if err := binary.Read(d.r, binary.BigEndian, &n); err != nil {
			return nil, err
		}
		fields := make(map[string]float64, n)
		for i := uint32(0); i < n; i++ {
			k, err := d.readString()
			if err != nil {
				return nil, err
			}
			vs, err := d.readFloats(1)
			if err != nil {
				return nil, err
			}
			fields[k] = vs[0]
		}
		return UpdatableObjectFrame{Name: name, Fields: fields}, nil
	case FrameTypeLog:
		level, err := d.readString()
		if err != nil {
			return nil, err
		}
		msg, err := d.readString()
		if err != nil {
			return nil, err
		}
		return LogFrame{Level: level, Message: msg}, nil
	default:
		return nil, fmt.Errorf("telemetry: unknown frame tag 0x%02x", tag[0])
	}
}

func (d *Decoder) readFloats(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		if err := binary.Read(d.r, binary.BigEndian, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *Decoder) readString() (string, error) {
	lenBuf := make([]byte, 1)
	if _, err := io.ReadFull(d.r, lenBuf); err != nil {
		return "", err
	}
	n := int(lenBuf[0])
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return "", err
	}
	if n == maxStringLen {
		sentinel := make([]byte, 1)
		if _, err := io.ReadFull(d.r, sentinel); err != nil {
			return "", err
		}
	}
	return string(buf), nil
}
