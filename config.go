// config.go: Root config wrapper over a mutable table (C3)
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package miniconfig

// Config is a thin wrapper owning a root MutableTable. A config always has
// a root, possibly empty.
type Config struct {
	root *MutableTable
}

// NewConfig returns a config with an empty root table.
func NewConfig() *Config {
	return &Config{root: NewMutableTable()}
}

// Root returns the config's root table.
func (c *Config) Root() *MutableTable { return c.root }

// Equal reports whether two configs hold equal trees, modulo key ordering.
// This is the equality a round-trip through WriteBinary/NewBinaryReader is
// expected to preserve.
func (c *Config) Equal(other *Config) bool {
	return tablesEqual(c.root, other.root)
}

func tablesEqual(a, b TableRead) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.Iter(func(key string, av Value) bool {
		bv, err := b.Get(key)
		if err != nil {
			equal = false
			return false
		}
		if !valuesEqual(av, bv) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

func arraysEqual(a, b ArrayRead) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.Iter(func(i int, av Value) bool {
		bv, err := b.Get(i)
		if err != nil {
			equal = false
			return false
		}
		if !valuesEqual(av, bv) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

func valuesEqual(a, b Value) bool {
	switch a.Kind() {
	case Bool:
		av, _ := a.AsBool()
		bv, err := b.AsBool()
		return err == nil && av == bv
	case I64:
		if b.Kind() != I64 {
			return false
		}
		av, _ := a.AsI64()
		bv, _ := b.AsI64()
		return av == bv
	case F64:
		if b.Kind() != F64 {
			return false
		}
		av, _ := a.AsF64()
		bv, _ := b.AsF64()
		return av == bv
	case Str:
		av, _ := a.AsStr()
		bv, err := b.AsStr()
		return err == nil && av == bv
	case Array:
		if b.Kind() != Array {
			return false
		}
		aa, _ := a.AsArray()
		ba, err := b.AsArray()
		return err == nil && arraysEqual(aa, ba)
	case Table:
		if b.Kind() != Table {
			return false
		}
		at, _ := a.AsTable()
		bt, err := b.AsTable()
		return err == nil && tablesEqual(at, bt)
	default:
		return false
	}
}
