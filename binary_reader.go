// binary_reader.go: Zero-copy, read-only navigation over a validated blob (C5)
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package miniconfig

import (
	"encoding/binary"
	"math"
	"sort"
	"unicode/utf8"
)

// BinaryReader is a validated, read-only view over a binary config blob.
// Every method is pure; returned strings and container views borrow from
// buf and must not outlive it.
type BinaryReader struct {
	buf     []byte
	strOff  uint32
	strLen  uint32
	rootOff uint32
}

// NewBinaryReader validates the header and region bounds of buf and returns
// a reader over it. Any violation of the layout invariants fails closed
// with KindCorruptBinary (or KindUnsupportedVersion for an unrecognized
// format version) and yields no reader.
func NewBinaryReader(buf []byte) (*BinaryReader, error) {
	if len(buf) < headerSize {
		return nil, newErr(KindCorruptBinary, "buffer shorter than header")
	}
	if string(buf[0:4]) != magicMCFG {
		return nil, newErr(KindCorruptBinary, "bad magic bytes")
	}
	version := binary.LittleEndian.Uint32(buf[4:8])
	if version != formatVersion {
		return nil, newErrf(KindUnsupportedVersion, "unsupported format version %d", version)
	}
	totalLen := binary.LittleEndian.Uint32(buf[8:12])
	if int(totalLen) != len(buf) {
		return nil, newErrf(KindCorruptBinary, "header length %d does not match buffer length %d", totalLen, len(buf))
	}
	strOff := binary.LittleEndian.Uint32(buf[12:16])
	strLen := binary.LittleEndian.Uint32(buf[16:20])
	rootOff := binary.LittleEndian.Uint32(buf[20:24])

	if uint64(strOff)+uint64(strLen) > uint64(len(buf)) {
		return nil, newErr(KindCorruptBinary, "string region out of bounds")
	}

	r := &BinaryReader{buf: buf, strOff: strOff, strLen: strLen, rootOff: rootOff}

	// rootOff names a value record (tag must be Table) rather than a bare
	// table record, so the root's entry count is self-describing through
	// the same {offset, count} payload every nested table reference uses.
	if uint64(rootOff)+valueRecordSize > uint64(r.dataEnd()) {
		return nil, newErr(KindCorruptBinary, "root offset out of bounds")
	}
	if buf[rootOff] != tagTable {
		return nil, newErr(KindCorruptBinary, "root record is not a table")
	}
	if err := r.validateValueRecord(rootOff, 0); err != nil {
		return nil, err
	}

	return r, nil
}

// dataEnd is the exclusive end of the data region: everything before the
// string region.
func (r *BinaryReader) dataEnd() uint32 { return r.strOff }

const maxBinaryDepth = 64

// readTableAt validates the count entries of a table record at off (bounds,
// key strings, strict key order, and each entry's value record).
func (r *BinaryReader) readTableAt(off, count uint32, depth int) error {
	if depth > maxBinaryDepth {
		return newErr(KindCorruptBinary, "table nesting exceeds maximum depth")
	}
	end := uint64(off) + uint64(count)*tableEntrySize
	if end > uint64(r.dataEnd()) {
		return newErr(KindCorruptBinary, "table record out of bounds")
	}
	var prevKey string
	for i := uint32(0); i < count; i++ {
		entryOff := off + i*tableEntrySize
		keyOff := binary.LittleEndian.Uint32(r.buf[entryOff : entryOff+4])
		keyLen := binary.LittleEndian.Uint32(r.buf[entryOff+4 : entryOff+8])
		key, err := r.readString(keyOff, keyLen)
		if err != nil {
			return err
		}
		if i > 0 && !(prevKey < key) {
			return newErr(KindCorruptBinary, "table entries are not strictly sorted by key")
		}
		prevKey = key

		recOff := entryOff + 8
		if err := r.validateValueRecord(recOff, depth); err != nil {
			return err
		}
	}
	return nil
}

func (r *BinaryReader) validateValueRecord(off uint32, depth int) error {
	if uint64(off)+valueRecordSize > uint64(len(r.buf)) {
		return newErr(KindCorruptBinary, "value record out of bounds")
	}
	tag := r.buf[off]
	if _, ok := kindForTag(tag); !ok {
		return newErrf(KindCorruptBinary, "unknown value tag %d", tag)
	}
	payload := r.buf[off+8 : off+16]
	switch tag {
	case tagStr:
		strOff := binary.LittleEndian.Uint32(payload[0:4])
		strLen := binary.LittleEndian.Uint32(payload[4:8])
		if _, err := r.readString(strOff, strLen); err != nil {
			return err
		}
	case tagArray:
		arrOff := binary.LittleEndian.Uint32(payload[0:4])
		count := binary.LittleEndian.Uint32(payload[4:8])
		if err := r.validateArrayAt(arrOff, count, depth+1); err != nil {
			return err
		}
	case tagTable:
		tblOff := binary.LittleEndian.Uint32(payload[0:4])
		count := binary.LittleEndian.Uint32(payload[4:8])
		if err := r.readTableAt(tblOff, count, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (r *BinaryReader) validateArrayAt(off, count uint32, depth int) error {
	if depth > maxBinaryDepth {
		return newErr(KindCorruptBinary, "array nesting exceeds maximum depth")
	}
	end := uint64(off) + arrayHeaderSize + uint64(count)*valueRecordSize
	if end > uint64(r.dataEnd()) {
		return newErr(KindCorruptBinary, "array record out of bounds")
	}
	marker := r.buf[off]
	if !validElementKindMarker(marker) {
		return newErrf(KindCorruptBinary, "unknown array element-kind marker %d", marker)
	}
	for i := uint32(0); i < count; i++ {
		recOff := off + arrayHeaderSize + i*valueRecordSize
		if err := r.validateValueRecord(recOff, depth); err != nil {
			return err
		}
	}
	return nil
}

func (r *BinaryReader) readString(off, length uint32) (string, error) {
	end := uint64(r.strOff) + uint64(off) + uint64(length)
	if uint64(off)+uint64(length)+1 > uint64(r.strLen) || end+1 > uint64(len(r.buf)) {
		return "", newErr(KindCorruptBinary, "string out of bounds")
	}
	absOff := r.strOff + off
	if r.buf[absOff+length] != 0x00 {
		return "", newErr(KindCorruptBinary, "string is not null-terminated")
	}
	s := r.buf[absOff : absOff+length]
	if !utf8.Valid(s) {
		return "", newErr(KindCorruptBinary, "string is not valid UTF-8")
	}
	return string(s), nil
}

// Root returns the blob's root table. The header's root-table offset names
// a value record (validated as tag Table in NewBinaryReader), so the root's
// entry count comes from that record's payload just like any nested table
// reference.
func (r *BinaryReader) Root() *BinaryTable {
	v, err := r.readValueRecord(r.rootOff)
	if err != nil {
		// Unreachable: NewBinaryReader already validated this record.
		return &BinaryTable{r: r, off: r.rootOff, count: 0}
	}
	t, _ := v.AsTable()
	bt, _ := t.(*BinaryTable)
	return bt
}

// Len is shorthand for Root().Len().
func (r *BinaryReader) Len() int { return r.Root().Len() }

// Get is shorthand for Root().Get(key).
func (r *BinaryReader) Get(key string) (Value, error) { return r.Root().Get(key) }

// Iter is shorthand for Root().Iter(fn).
func (r *BinaryReader) Iter(fn func(key string, v Value) bool) { r.Root().Iter(fn) }

var _ TableRead = (*BinaryReader)(nil)

// BinaryTable is a read-only view of a table record within a validated
// binary blob.
type BinaryTable struct {
	r     *BinaryReader
	off   uint32
	count uint32
}

var _ TableRead = (*BinaryTable)(nil)

// Len returns the number of entries in the table.
func (t *BinaryTable) Len() int { return int(t.count) }

// Get looks up key by binary search over the sorted entries.
func (t *BinaryTable) Get(key string) (Value, error) {
	n := int(t.count)
	i := sort.Search(n, func(i int) bool {
		k, _ := t.keyAt(uint32(i))
		return k >= key
	})
	if i < n {
		if k, _ := t.keyAt(uint32(i)); k == key {
			return t.valueAt(uint32(i))
		}
	}
	return Value{}, newErrf(KindKeyDoesNotExist, "key %q does not exist", key)
}

// Iter visits entries in declaration order (ascending entry index), which
// is also sorted-key order since the writer sorts entries before emission.
func (t *BinaryTable) Iter(fn func(key string, v Value) bool) {
	for i := uint32(0); i < t.count; i++ {
		key, err := t.keyAt(i)
		if err != nil {
			return
		}
		v, err := t.valueAt(i)
		if err != nil {
			return
		}
		if !fn(key, v) {
			return
		}
	}
}

func (t *BinaryTable) entryOff(i uint32) uint32 { return t.off + i*tableEntrySize }

func (t *BinaryTable) keyAt(i uint32) (string, error) {
	eo := t.entryOff(i)
	keyOff := binary.LittleEndian.Uint32(t.r.buf[eo : eo+4])
	keyLen := binary.LittleEndian.Uint32(t.r.buf[eo+4 : eo+8])
	return t.r.readString(keyOff, keyLen)
}

func (t *BinaryTable) valueAt(i uint32) (Value, error) {
	eo := t.entryOff(i)
	return t.r.readValueRecord(eo + 8)
}

// BinaryArray is a read-only view of an array record within a validated
// binary blob.
type BinaryArray struct {
	r     *BinaryReader
	off   uint32
	count uint32
}

var _ ArrayRead = (*BinaryArray)(nil)

// Len returns the number of elements in the array.
func (a *BinaryArray) Len() int { return int(a.count) }

// Get returns the element at index.
func (a *BinaryArray) Get(index int) (Value, error) {
	if index < 0 || uint32(index) >= a.count {
		return Value{}, newErrf(KindIndexOutOfBounds, "index %d out of bounds (len %d)", index, a.count)
	}
	recOff := a.off + arrayHeaderSize + uint32(index)*valueRecordSize
	return a.r.readValueRecord(recOff)
}

// Iter visits elements in declaration order.
func (a *BinaryArray) Iter(fn func(index int, v Value) bool) {
	for i := uint32(0); i < a.count; i++ {
		v, err := a.Get(int(i))
		if err != nil {
			return
		}
		if !fn(int(i), v) {
			return
		}
	}
}

// ElementKind reports the array's homogeneous kind as the true kind of its
// first element (I64 or F64 for a Numeric-marked array), or ok=false for an
// array with no elements.
func (a *BinaryArray) ElementKind() (ValueKind, bool) {
	if a.count == 0 {
		return 0, false
	}
	v, err := a.Get(0)
	if err != nil {
		return 0, false
	}
	return v.Kind(), true
}

func (r *BinaryReader) readValueRecord(off uint32) (Value, error) {
	tag := r.buf[off]
	payload := r.buf[off+8 : off+16]
	switch tag {
	case tagBool:
		return BoolValue(payload[0] != 0), nil
	case tagI64:
		return I64Value(int64(binary.LittleEndian.Uint64(payload))), nil
	case tagF64:
		bits := binary.LittleEndian.Uint64(payload)
		return F64Value(math.Float64frombits(bits)), nil
	case tagStr:
		strOff := binary.LittleEndian.Uint32(payload[0:4])
		strLen := binary.LittleEndian.Uint32(payload[4:8])
		s, err := r.readString(strOff, strLen)
		if err != nil {
			return Value{}, err
		}
		return StrValue(s), nil
	case tagArray:
		arrOff := binary.LittleEndian.Uint32(payload[0:4])
		count := binary.LittleEndian.Uint32(payload[4:8])
		return ArrayValue(&BinaryArray{r: r, off: arrOff, count: count}), nil
	case tagTable:
		tblOff := binary.LittleEndian.Uint32(payload[0:4])
		count := binary.LittleEndian.Uint32(payload[4:8])
		return TableValue(&BinaryTable{r: r, off: tblOff, count: count}), nil
	default:
		return Value{}, newErrf(KindCorruptBinary, "unknown value tag %d", tag)
	}
}
