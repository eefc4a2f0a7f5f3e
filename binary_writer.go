// binary_writer.go: Builds a binary config blob from any walkable source (C6)
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package miniconfig

import (
	"encoding/binary"
	"math"
	"sort"
)

// WriterOption configures WriteBinary using the functional-options idiom.
type WriterOption func(*writerOptions)

type writerOptions struct {
	tracer          Tracer
	stringTableHint int
}

// WithTracer attaches a Tracer that receives "write.snapshot", "write.layout"
// and "write.emit" events as the writer progresses.
func WithTracer(t Tracer) WriterOption {
	return func(o *writerOptions) { o.tracer = t }
}

// WithStringTableHint pre-sizes the writer's string interner, useful when
// the caller knows roughly how many distinct strings the tree holds.
func WithStringTableHint(n int) WriterOption {
	return func(o *writerOptions) { o.stringTableHint = n }
}

// WriteBinary serializes root (any TableRead - the mutable form or a
// hosted-runtime collaborator's table adapter) into a binary blob.
//
// The source is walkable but makes no promise that repeated Get/Iter calls
// return identity-stable child containers (a hosted scripting runtime may
// synthesize a fresh wrapper per call). WriteBinary therefore makes exactly
// one pass over the caller's source, snapshotting it into an internal tree
// of its own (interning every string as it goes); the layout and emit
// passes then walk that internal snapshot, which has stable pointer
// identity by construction.
//
// Determinism: given the same input tree, WriteBinary produces byte-
// identical output every time it is called.
func WriteBinary(root TableRead, opts ...WriterOption) ([]byte, error) {
	o := &writerOptions{}
	for _, opt := range opts {
		opt(o)
	}

	emit(o.tracer, "write.snapshot")
	in := newInterner(o.stringTableHint)
	snap, err := snapshotTable(root, in)
	if err != nil {
		return nil, err
	}
	stringRegion, offsets := in.finish()

	emit(o.tracer, "write.layout")
	cursor := uint32(0)
	layoutTable(snap, &cursor)
	// Synthetic root value record: every table reference elsewhere in the
	// format is a self-describing {offset, count} value record, and the
	// root is no exception - this lets BinaryReader.Root() reuse the exact
	// same decoding path as any nested table lookup.
	rootValueOff := cursor
	dataSize := rootValueOff + valueRecordSize

	emit(o.tracer, "write.emit")
	buf := make([]byte, headerSize+int(dataSize)+len(stringRegion))
	w := &emitWriter{buf: buf, dataStart: headerSize, offsets: offsets}
	w.emitTable(snap)
	w.emitValueRecord(rootValueOff, tagTable, snap.off, uint32(len(snap.entries)))

	strOff := headerSize + int(dataSize)
	copy(buf[strOff:], stringRegion)

	copy(buf[0:4], []byte(magicMCFG))
	binary.LittleEndian.PutUint32(buf[4:8], formatVersion)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(buf)))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(strOff))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(len(stringRegion)))
	binary.LittleEndian.PutUint32(buf[20:24], uint32(headerSize)+rootValueOff)

	return buf, nil
}

// --- internal snapshot tree ----------------------------------------------

// wnode is the writer's own copy of one Value, built once from the
// caller's source during the snapshot pass. Only table/array nodes carry
// an off (assigned during layout); primitives are inlined directly into
// their parent's value record at emit time.
type wnode struct {
	kind ValueKind
	b    bool
	i    int64
	f    float64
	s    string

	entries []wentry // Table
	elems   []wnode  // Array
	elemKind ValueKind
	hasElemKind bool

	off uint32 // valid once layoutTable/layoutArray has run
}

type wentry struct {
	key string
	val wnode
}

func snapshotValue(v Value, in *interner) (wnode, error) {
	switch v.Kind() {
	case Bool:
		b, err := v.AsBool()
		return wnode{kind: Bool, b: b}, err
	case I64:
		i, err := v.AsI64()
		return wnode{kind: I64, i: i}, err
	case F64:
		f, err := v.AsF64()
		return wnode{kind: F64, f: f}, err
	case Str:
		s, err := v.AsStr()
		if err != nil {
			return wnode{}, err
		}
		in.intern(s)
		return wnode{kind: Str, s: s}, nil
	case Array:
		a, err := v.AsArray()
		if err != nil {
			return wnode{}, err
		}
		return snapshotArray(a, in)
	case Table:
		t, err := v.AsTable()
		if err != nil {
			return wnode{}, err
		}
		return snapshotTable(t, in)
	default:
		return wnode{}, newErrf(KindWrongType, "cannot serialize value of kind %s", v.Kind())
	}
}

func snapshotTable(t TableRead, in *interner) (wnode, error) {
	entries := make([]wentry, 0, t.Len())
	var outerErr error
	t.Iter(func(key string, v Value) bool {
		in.intern(key)
		cv, err := snapshotValue(v, in)
		if err != nil {
			outerErr = err
			return false
		}
		entries = append(entries, wentry{key: key, val: cv})
		return true
	})
	if outerErr != nil {
		return wnode{}, outerErr
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	return wnode{kind: Table, entries: entries}, nil
}

func snapshotArray(a ArrayRead, in *interner) (wnode, error) {
	elems := make([]wnode, 0, a.Len())
	var outerErr error
	a.Iter(func(_ int, v Value) bool {
		cv, err := snapshotValue(v, in)
		if err != nil {
			outerErr = err
			return false
		}
		elems = append(elems, cv)
		return true
	})
	if outerErr != nil {
		return wnode{}, outerErr
	}
	n := wnode{kind: Array, elems: elems}
	if k, ok := a.ElementKind(); ok {
		n.elemKind, n.hasElemKind = k, true
	}
	return n, nil
}

// --- layout pass: assign declaration-order offsets -----------------------

// layoutTable assigns t.off and advances *cursor past its table record,
// then recurses into each entry's value (so children are laid out after
// their parent, matching root-first declaration order).
func layoutTable(t *wnode, cursor *uint32) {
	t.off = *cursor
	*cursor += uint32(len(t.entries)) * tableEntrySize
	for i := range t.entries {
		layoutValue(&t.entries[i].val, cursor)
	}
}

func layoutArray(a *wnode, cursor *uint32) {
	a.off = *cursor
	*cursor += arrayHeaderSize + uint32(len(a.elems))*valueRecordSize
	for i := range a.elems {
		layoutValue(&a.elems[i], cursor)
	}
}

func layoutValue(v *wnode, cursor *uint32) {
	switch v.kind {
	case Array:
		layoutArray(v, cursor)
	case Table:
		layoutTable(v, cursor)
	}
}

// --- emit pass -------------------------------------------------------------

type emitWriter struct {
	buf       []byte
	dataStart int
	offsets   map[string]uint32 // string content -> string-region offset
}

func (w *emitWriter) abs(relOff uint32) int { return w.dataStart + int(relOff) }

func (w *emitWriter) emitTable(t *wnode) {
	for i, e := range t.entries {
		entryOff := w.abs(t.off + uint32(i)*tableEntrySize)
		keyOff := w.offsets[e.key]
		binary.LittleEndian.PutUint32(w.buf[entryOff:entryOff+4], keyOff)
		binary.LittleEndian.PutUint32(w.buf[entryOff+4:entryOff+8], uint32(len(e.key)))
		w.emitValueInto(t.off+uint32(i)*tableEntrySize+8, &t.entries[i].val)
	}
}

func (w *emitWriter) emitArray(a *wnode) {
	marker := ekNumeric
	if a.hasElemKind {
		marker = elementKindMarker(a.elemKind)
	}
	w.buf[w.abs(a.off)] = marker
	for i := range a.elems {
		recOff := a.off + arrayHeaderSize + uint32(i)*valueRecordSize
		w.emitValueInto(recOff, &a.elems[i])
	}
}

// emitValueInto writes v's 16-byte value record at the data-region-relative
// offset off, recursing into the record's container if it has one.
func (w *emitWriter) emitValueInto(off uint32, v *wnode) {
	abs := w.abs(off)
	w.buf[abs] = tagForKind(v.kind)
	payload := w.buf[abs+8 : abs+16]
	switch v.kind {
	case Bool:
		if v.b {
			payload[0] = 1
		}
	case I64:
		binary.LittleEndian.PutUint64(payload, uint64(v.i))
	case F64:
		binary.LittleEndian.PutUint64(payload, math.Float64bits(v.f))
	case Str:
		strOff := w.offsets[v.s]
		binary.LittleEndian.PutUint32(payload[0:4], strOff)
		binary.LittleEndian.PutUint32(payload[4:8], uint32(len(v.s)))
	case Array:
		binary.LittleEndian.PutUint32(payload[0:4], uint32(w.abs(v.off)))
		binary.LittleEndian.PutUint32(payload[4:8], uint32(len(v.elems)))
		w.emitArray(v)
	case Table:
		binary.LittleEndian.PutUint32(payload[0:4], uint32(w.abs(v.off)))
		binary.LittleEndian.PutUint32(payload[4:8], uint32(len(v.entries)))
		w.emitTable(v)
	}
}

// emitValueRecord writes a synthetic value record at the data-region-
// relative offset off, referencing an already-laid-out, already-emitted
// container by (tag, containerOff, count). Used only for the root.
func (w *emitWriter) emitValueRecord(off uint32, tag byte, containerOff, count uint32) {
	abs := w.abs(off)
	w.buf[abs] = tag
	payload := w.buf[abs+8 : abs+16]
	binary.LittleEndian.PutUint32(payload[0:4], uint32(w.abs(containerOff)))
	binary.LittleEndian.PutUint32(payload[4:8], count)
}

// --- string interning -------------------------------------------------

type interner struct {
	order []string
	index map[string]struct{}
}

func newInterner(hint int) *interner {
	if hint <= 0 {
		hint = 16
	}
	return &interner{index: make(map[string]struct{}, hint)}
}

// intern registers s if new; strings are laid out in first-seen order.
func (in *interner) intern(s string) {
	if _, ok := in.index[s]; ok {
		return
	}
	in.index[s] = struct{}{}
	in.order = append(in.order, s)
}

// finish concatenates every interned string with its null terminator in
// first-seen order, and returns the byte offset table keyed by content, so
// two occurrences of the same string always resolve to the same offset.
func (in *interner) finish() ([]byte, map[string]uint32) {
	offsets := make(map[string]uint32, len(in.order))
	var region []byte
	for _, s := range in.order {
		offsets[s] = uint32(len(region))
		region = append(region, s...)
		region = append(region, 0)
	}
	return region, offsets
}
