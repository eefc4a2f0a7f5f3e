// array.go: Mutable, 0-indexed array with numeric-kind unification (C3)
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package miniconfig

// MutableArray is a contiguous, 0-indexed sequence of Values. All elements
// must share the same kind, except I64 and F64 which are unified into one
// Numeric kind for homogeneity purposes. elementKind tracks that kind and
// is reset to "unknown" when the array becomes empty.
type MutableArray struct {
	vals        []Value
	elementKind ValueKind
	hasKind     bool
}

// NewMutableArray returns an empty array ready to accept its first element.
func NewMutableArray() *MutableArray {
	return &MutableArray{}
}

// Len returns the number of elements in the array.
func (a *MutableArray) Len() int { return len(a.vals) }

// Get returns the element at index, or KindIndexOutOfBounds.
func (a *MutableArray) Get(index int) (Value, error) {
	if index < 0 || index >= len(a.vals) {
		return Value{}, newErrf(KindIndexOutOfBounds, "index %d out of bounds (len %d)", index, len(a.vals))
	}
	return a.vals[index], nil
}

// ElementKind reports the array's homogeneous kind (the kind of the first
// element pushed since the array was last empty). ok is false for an empty
// array.
func (a *MutableArray) ElementKind() (ValueKind, bool) { return a.elementKind, a.hasKind }

// Push appends v, enforcing kind homogeneity with int/float unification.
// The first push on an empty array establishes its element kind.
func (a *MutableArray) Push(v Value) error {
	if err := a.checkKind(v.Kind()); err != nil {
		return err
	}
	a.setKindFromFirst(v.Kind())
	a.vals = append(a.vals, v)
	return nil
}

// Pop removes and returns the last element. Returns KindArrayEmpty if the
// array has no elements. Popping the last element clears the tracked kind.
func (a *MutableArray) Pop() (Value, error) {
	if len(a.vals) == 0 {
		return Value{}, newErr(KindArrayEmpty, "array is empty")
	}
	last := a.vals[len(a.vals)-1]
	a.vals = a.vals[:len(a.vals)-1]
	if len(a.vals) == 0 {
		a.hasKind = false
	}
	return last, nil
}

// Insert places v at index, shifting later elements up by one. index may
// equal Len() to append.
func (a *MutableArray) Insert(index int, v Value) error {
	if index < 0 || index > len(a.vals) {
		return newErrf(KindIndexOutOfBounds, "index %d out of bounds (len %d)", index, len(a.vals))
	}
	if err := a.checkKind(v.Kind()); err != nil {
		return err
	}
	a.setKindFromFirst(v.Kind())
	a.vals = append(a.vals, Value{})
	copy(a.vals[index+1:], a.vals[index:])
	a.vals[index] = v
	return nil
}

// Remove deletes the element at index, shifting later elements down by one.
func (a *MutableArray) Remove(index int) error {
	if index < 0 || index >= len(a.vals) {
		return newErrf(KindIndexOutOfBounds, "index %d out of bounds (len %d)", index, len(a.vals))
	}
	a.vals = append(a.vals[:index], a.vals[index+1:]...)
	if len(a.vals) == 0 {
		a.hasKind = false
	}
	return nil
}

// Values returns a snapshot copy of the array's elements.
func (a *MutableArray) Values() []Value {
	out := make([]Value, len(a.vals))
	copy(out, a.vals)
	return out
}

// Iter calls fn for every element in order. Iteration stops early if fn
// returns false.
func (a *MutableArray) Iter(fn func(index int, v Value) bool) {
	for i, v := range a.vals {
		if !fn(i, v) {
			return
		}
	}
}

func (a *MutableArray) checkKind(k ValueKind) error {
	if !a.hasKind {
		return nil
	}
	if a.elementKind == k {
		return nil
	}
	if a.elementKind.isNumeric() && k.isNumeric() {
		return nil
	}
	return newErrf(KindArrayWrongElementType, "array holds %s elements, got %s", a.elementKind, k)
}

func (a *MutableArray) setKindFromFirst(k ValueKind) {
	if a.hasKind {
		return
	}
	a.elementKind = k
	a.hasKind = true
}

var _ ArrayRead = (*MutableArray)(nil)
