// array_test.go: MutableArray tests
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package miniconfig

import "testing"

func TestMutableArrayPushGet(t *testing.T) {
	a := NewMutableArray()
	for i := int64(0); i < 3; i++ {
		if err := a.Push(I64Value(i)); err != nil {
			t.Fatalf("Push %d: %v", i, err)
		}
	}
	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
	v, err := a.Get(1)
	if err != nil {
		t.Fatalf("Get(1): %v", err)
	}
	if i, _ := v.AsI64(); i != 1 {
		t.Fatalf("Get(1) = %d, want 1", i)
	}
}

func TestMutableArrayHomogeneityAllowsNumericMix(t *testing.T) {
	a := NewMutableArray()
	if err := a.Push(I64Value(1)); err != nil {
		t.Fatalf("Push I64: %v", err)
	}
	if err := a.Push(F64Value(2.5)); err != nil {
		t.Fatalf("I64/F64 mix should be allowed: %v", err)
	}
	k, ok := a.ElementKind()
	if !ok || k != I64 {
		t.Fatalf("ElementKind should stay the first-seen kind I64, got %v/%v", k, ok)
	}
}

func TestMutableArrayRejectsMixedNonNumeric(t *testing.T) {
	a := NewMutableArray()
	_ = a.Push(I64Value(1))
	if err := a.Push(StrValue("x")); err == nil {
		t.Fatal("pushing a string into an int array should fail")
	} else if k, _ := ErrorKind(err); k != KindArrayWrongElementType {
		t.Fatalf("expected KindArrayWrongElementType, got %v", k)
	}
}

func TestMutableArrayPopClearsKindWhenEmpty(t *testing.T) {
	a := NewMutableArray()
	_ = a.Push(I64Value(1))
	if _, err := a.Pop(); err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if _, ok := a.ElementKind(); ok {
		t.Fatal("ElementKind should report ok=false once the array is empty")
	}
	// A now-empty array accepts a different kind on its next push.
	if err := a.Push(StrValue("x")); err != nil {
		t.Fatalf("push after drain should succeed with any kind: %v", err)
	}
}

func TestMutableArrayPopEmpty(t *testing.T) {
	a := NewMutableArray()
	if _, err := a.Pop(); err == nil {
		t.Fatal("Pop on empty array should fail")
	} else if k, _ := ErrorKind(err); k != KindArrayEmpty {
		t.Fatalf("expected KindArrayEmpty, got %v", k)
	}
}

func TestMutableArrayInsertRemove(t *testing.T) {
	a := NewMutableArray()
	_ = a.Push(I64Value(1))
	_ = a.Push(I64Value(3))
	if err := a.Insert(1, I64Value(2)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	got := a.Values()
	for i, want := range []int64{1, 2, 3} {
		v, _ := got[i].AsI64()
		if v != want {
			t.Fatalf("after insert, element %d = %d, want %d", i, v, want)
		}
	}

	if err := a.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	got = a.Values()
	if len(got) != 2 {
		t.Fatalf("len after remove = %d, want 2", len(got))
	}
}

func TestMutableArrayOutOfBounds(t *testing.T) {
	a := NewMutableArray()
	_ = a.Push(I64Value(1))
	if _, err := a.Get(5); err == nil {
		t.Fatal("Get out of bounds should fail")
	} else if k, _ := ErrorKind(err); k != KindIndexOutOfBounds {
		t.Fatalf("expected KindIndexOutOfBounds, got %v", k)
	}
	if err := a.Insert(5, I64Value(1)); err == nil {
		t.Fatal("Insert out of bounds should fail")
	}
	if err := a.Remove(5); err == nil {
		t.Fatal("Remove out of bounds should fail")
	}
}
