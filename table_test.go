// table_test.go: MutableTable tests
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package miniconfig

import "testing"

func TestMutableTableSetGetOrder(t *testing.T) {
	tb := NewMutableTable()
	if err := tb.Set("b", I64Value(2)); err != nil {
		t.Fatalf("Set b: %v", err)
	}
	if err := tb.Set("a", I64Value(1)); err != nil {
		t.Fatalf("Set a: %v", err)
	}
	if got := tb.Keys(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("insertion order not preserved: %v", got)
	}

	v, err := tb.Get("a")
	if err != nil {
		t.Fatalf("Get a: %v", err)
	}
	if i, _ := v.AsI64(); i != 1 {
		t.Fatalf("Get a = %d, want 1", i)
	}
}

func TestMutableTableSetReplacesInPlace(t *testing.T) {
	tb := NewMutableTable()
	_ = tb.Set("a", I64Value(1))
	_ = tb.Set("b", I64Value(2))
	_ = tb.Set("a", I64Value(99))

	keys := tb.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("replacing a key should not move its slot: %v", keys)
	}
	v, _ := tb.Get("a")
	if i, _ := v.AsI64(); i != 99 {
		t.Fatalf("Get a = %d, want 99", i)
	}
}

func TestMutableTableRemove(t *testing.T) {
	tb := NewMutableTable()
	_ = tb.Set("a", I64Value(1))
	_ = tb.Set("b", I64Value(2))
	_ = tb.Set("c", I64Value(3))

	if err := tb.Remove("b"); err != nil {
		t.Fatalf("Remove b: %v", err)
	}
	if tb.Has("b") {
		t.Fatal("b should be gone")
	}
	if got := tb.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("remaining order wrong: %v", got)
	}

	if err := tb.Remove("b"); err == nil {
		t.Fatal("removing an absent key should fail")
	} else if k, _ := ErrorKind(err); k != KindKeyDoesNotExist {
		t.Fatalf("expected KindKeyDoesNotExist, got %v", k)
	}
}

func TestMutableTableEmptyKeyRejected(t *testing.T) {
	tb := NewMutableTable()
	if err := tb.Set("", I64Value(1)); err == nil {
		t.Fatal("empty key should be rejected")
	} else if k, _ := ErrorKind(err); k != KindEmptyKey {
		t.Fatalf("expected KindEmptyKey, got %v", k)
	}
}

func TestMutableTableControlCharRejected(t *testing.T) {
	tb := NewMutableTable()
	if err := tb.Set("bad\x01key", I64Value(1)); err == nil {
		t.Fatal("control character in key should be rejected")
	} else if k, _ := ErrorKind(err); k != KindNameContainsInvalidChars {
		t.Fatalf("expected KindNameContainsInvalidChars, got %v", k)
	}

	// Tab is explicitly permitted.
	if err := tb.Set("has\ttab", I64Value(1)); err != nil {
		t.Fatalf("tab in key should be accepted: %v", err)
	}
}

func TestMutableTableIterStopsEarly(t *testing.T) {
	tb := NewMutableTable()
	_ = tb.Set("a", I64Value(1))
	_ = tb.Set("b", I64Value(2))
	_ = tb.Set("c", I64Value(3))

	var seen []string
	tb.Iter(func(k string, _ Value) bool {
		seen = append(seen, k)
		return k != "b"
	})
	if len(seen) != 2 {
		t.Fatalf("Iter should stop after returning false: %v", seen)
	}
}
