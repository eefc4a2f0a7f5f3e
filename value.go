// value.go: Tagged value algebra for miniconfig
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package miniconfig

import "fmt"

// ValueKind is the discriminant of a Value. It is also the kind reported
// by TableRead/ArrayRead implementations over the binary and Lua-hosted
// forms, so the same enum is shared across all three dialects.
type ValueKind int

const (
	Bool ValueKind = iota
	I64
	F64
	Str
	Array
	Table
)

func (k ValueKind) String() string {
	switch k {
	case Bool:
		return "Bool"
	case I64:
		return "I64"
	case F64:
		return "F64"
	case Str:
		return "Str"
	case Array:
		return "Array"
	case Table:
		return "Table"
	default:
		return "Unknown"
	}
}

// isNumeric reports whether k is I64 or F64 - the two kinds unified as a
// single "Numeric" kind for array homogeneity purposes.
func (k ValueKind) isNumeric() bool { return k == I64 || k == F64 }

// Value is a tagged variant over the four primitive kinds plus the two
// container kinds. A Value never owns more than one of its fields; which
// field is live is determined entirely by kind.
type Value struct {
	kind  ValueKind
	b     bool
	i     int64
	f     float64
	s     string
	array ArrayRead
	table TableRead
}

// BoolValue constructs a Bool value.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// I64Value constructs a signed 64-bit integer value.
func I64Value(i int64) Value { return Value{kind: I64, i: i} }

// F64Value constructs an IEEE-754 double value.
func F64Value(f float64) Value { return Value{kind: F64, f: f} }

// StrValue constructs a UTF-8 string value.
func StrValue(s string) Value { return Value{kind: Str, s: s} }

// ArrayValue constructs a value wrapping any array-shaped container: a
// *MutableArray when building the in-memory form, or a read-only binary or
// Lua-hosted adapter when walking one of those forms.
func ArrayValue(a ArrayRead) Value { return Value{kind: Array, array: a} }

// TableValue constructs a value wrapping any table-shaped container, by the
// same rule as ArrayValue.
func TableValue(t TableRead) Value { return Value{kind: Table, table: t} }

// Kind returns the value's stored discriminant.
func (v Value) Kind() ValueKind { return v.kind }

// IsBool, IsI64, IsF64, IsStr, IsArray, IsTable are kind predicates.
func (v Value) IsBool() bool  { return v.kind == Bool }
func (v Value) IsI64() bool   { return v.kind == I64 }
func (v Value) IsF64() bool   { return v.kind == F64 }
func (v Value) IsStr() bool   { return v.kind == Str }
func (v Value) IsArray() bool { return v.kind == Array }
func (v Value) IsTable() bool { return v.kind == Table }

// AsBool returns the stored bool. No conversion is performed for any other kind.
func (v Value) AsBool() (bool, error) {
	if v.kind != Bool {
		return false, wrongType(Bool, v.kind)
	}
	return v.b, nil
}

// AsI64 returns the stored int64. Only a natively-stored I64 is readable
// this way; a stored F64 is a different kind and fails with WrongType
// rather than truncating.
func (v Value) AsI64() (int64, error) {
	if v.kind != I64 {
		return 0, wrongType(I64, v.kind)
	}
	return v.i, nil
}

// AsF64 returns the value as an IEEE-754 double. A stored I64 is widened
// by conversion; it is exact for magnitudes up to 2^53, and larger values
// round to the nearest float64.
func (v Value) AsF64() (float64, error) {
	switch v.kind {
	case F64:
		return v.f, nil
	case I64:
		return float64(v.i), nil
	default:
		return 0, wrongType(F64, v.kind)
	}
}

// AsStr returns the stored string. No conversion is performed for any other kind.
func (v Value) AsStr() (string, error) {
	if v.kind != Str {
		return "", wrongType(Str, v.kind)
	}
	return v.s, nil
}

// AsArray returns the stored array as a read-only capability set. Container
// accessors never convert. To mutate an array owned by the in-memory form,
// use AsMutableArray instead.
func (v Value) AsArray() (ArrayRead, error) {
	if v.kind != Array {
		return nil, wrongType(Array, v.kind)
	}
	return v.array, nil
}

// AsTable returns the stored table as a read-only capability set. Container
// accessors never convert. To mutate a table owned by the in-memory form,
// use AsMutableTable instead.
func (v Value) AsTable() (TableRead, error) {
	if v.kind != Table {
		return nil, wrongType(Table, v.kind)
	}
	return v.table, nil
}

// AsMutableArray returns the stored array as its concrete mutable type, for
// callers that built the tree themselves and want to Push/Pop/Insert into
// it. Fails if the value did not originate from the in-memory form (for
// instance, a value read back from a binary blob or a Lua-hosted table).
func (v Value) AsMutableArray() (*MutableArray, error) {
	if v.kind != Array {
		return nil, wrongType(Array, v.kind)
	}
	a, ok := v.array.(*MutableArray)
	if !ok {
		return nil, newErr(KindWrongType, "array is read-only and cannot be mutated")
	}
	return a, nil
}

// AsMutableTable is AsMutableArray's counterpart for tables.
func (v Value) AsMutableTable() (*MutableTable, error) {
	if v.kind != Table {
		return nil, wrongType(Table, v.kind)
	}
	t, ok := v.table.(*MutableTable)
	if !ok {
		return nil, newErr(KindWrongType, "table is read-only and cannot be mutated")
	}
	return t, nil
}

func wrongType(want, got ValueKind) error {
	return newErrf(KindWrongType, "wrong type: expected %s, got %s", want, got)
}

// String renders the value for debugging. It is not used by any
// serializer - C7's emitters have their own dialect-specific formatting.
func (v Value) String() string {
	switch v.kind {
	case Bool:
		return fmt.Sprintf("%t", v.b)
	case I64:
		return fmt.Sprintf("%d", v.i)
	case F64:
		return fmt.Sprintf("%g", v.f)
	case Str:
		return v.s
	case Array:
		return fmt.Sprintf("Array[%d]", v.array.Len())
	case Table:
		return fmt.Sprintf("Table[%d]", v.table.Len())
	default:
		return "<invalid>"
	}
}
