package relq

import (
	"encoding/binary"
	"math"
)

// EncodeColumns serializes values in schema column order into the
// length-prefixed/fixed-width column encoding TablePage tuples carry
// after their MVCC header. Each column is a 1-byte null flag followed by
// its value bytes (absent when null): Int/Float are 8 fixed bytes, Bool
// is 1 byte, String is a u32 length prefix followed by its bytes.
func EncodeColumns(schema *Schema, values []Value) ([]byte, error) {
	if len(values) != len(schema.Columns) {
		return nil, WrapError(ErrTypeError, columnCountMismatchError(len(schema.Columns), len(values)))
	}
	buf := make([]byte, 0, 16*len(values))
	for i, v := range values {
		col := schema.Columns[i]
		if v.Type != col.Type {
			return nil, WrapError(ErrTypeError, columnTypeMismatchError(col.Name, col.Type, v.Type))
		}
		if !v.Valid {
			buf = append(buf, 0)
			continue
		}
		buf = append(buf, 1)
		switch col.Type {
		case TypeInt:
			var b [8]byte
			binary.LittleEndian.PutUint64(b[:], uint64(v.I))
			buf = append(buf, b[:]...)
		case TypeFloat:
			var b [8]byte
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(v.F))
			buf = append(buf, b[:]...)
		case TypeBool:
			if v.B {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		case TypeString:
			var lb [4]byte
			binary.LittleEndian.PutUint32(lb[:], uint32(len(v.S)))
			buf = append(buf, lb[:]...)
			buf = append(buf, v.S...)
		}
	}
	return buf, nil
}

// DecodeColumns parses column bytes encoded by EncodeColumns into a Row's
// Values map, keyed by schema column name.
func DecodeColumns(schema *Schema, data []byte) (map[string]Value, error) {
	out := make(map[string]Value, len(schema.Columns))
	off := 0
	for _, col := range schema.Columns {
		if off >= len(data) {
			return nil, WrapError(ErrCorrupted, truncatedColumnError(col.Name))
		}
		null := data[off] == 0
		off++
		if null {
			out[col.Name] = NullValue(col.Type)
			continue
		}
		switch col.Type {
		case TypeInt:
			if off+8 > len(data) {
				return nil, WrapError(ErrCorrupted, truncatedColumnError(col.Name))
			}
			out[col.Name] = IntValue(int64(binary.LittleEndian.Uint64(data[off : off+8])))
			off += 8
		case TypeFloat:
			if off+8 > len(data) {
				return nil, WrapError(ErrCorrupted, truncatedColumnError(col.Name))
			}
			out[col.Name] = FloatValue(math.Float64frombits(binary.LittleEndian.Uint64(data[off : off+8])))
			off += 8
		case TypeBool:
			if off+1 > len(data) {
				return nil, WrapError(ErrCorrupted, truncatedColumnError(col.Name))
			}
			out[col.Name] = BoolValue(data[off] != 0)
			off++
		case TypeString:
			if off+4 > len(data) {
				return nil, WrapError(ErrCorrupted, truncatedColumnError(col.Name))
			}
			n := int(binary.LittleEndian.Uint32(data[off : off+4]))
			off += 4
			if off+n > len(data) {
				return nil, WrapError(ErrCorrupted, truncatedColumnError(col.Name))
			}
			out[col.Name] = StringValue(string(data[off : off+n]))
			off += n
		}
	}
	return out, nil
}
