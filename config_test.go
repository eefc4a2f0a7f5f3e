// config_test.go: Config.Equal tests
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package miniconfig

import "testing"

func TestConfigEqualIgnoresOrder(t *testing.T) {
	a := NewConfig()
	_ = a.Root().Set("x", I64Value(1))
	_ = a.Root().Set("y", StrValue("hi"))

	b := NewConfig()
	_ = b.Root().Set("y", StrValue("hi"))
	_ = b.Root().Set("x", I64Value(1))

	if !a.Equal(b) {
		t.Fatal("configs with the same keys in different order should be equal")
	}
}

func TestConfigEqualDistinguishesI64FromF64(t *testing.T) {
	a := NewConfig()
	_ = a.Root().Set("n", I64Value(3))

	b := NewConfig()
	_ = b.Root().Set("n", F64Value(3.0))

	if a.Equal(b) {
		t.Fatal("I64(3) and F64(3.0) must not compare equal")
	}
}

func TestConfigEqualNested(t *testing.T) {
	a := NewConfig()
	inner := NewMutableTable()
	_ = inner.Set("z", I64Value(9))
	_ = a.Root().Set("child", TableValue(inner))

	b := NewConfig()
	inner2 := NewMutableTable()
	_ = inner2.Set("z", I64Value(9))
	_ = b.Root().Set("child", TableValue(inner2))

	if !a.Equal(b) {
		t.Fatal("equal nested tables should compare equal")
	}

	_ = inner2.Set("z", I64Value(10))
	if a.Equal(b) {
		t.Fatal("differing nested values should not compare equal")
	}
}

func TestConfigEqualDifferentLength(t *testing.T) {
	a := NewConfig()
	_ = a.Root().Set("x", I64Value(1))

	b := NewConfig()
	_ = b.Root().Set("x", I64Value(1))
	_ = b.Root().Set("y", I64Value(2))

	if a.Equal(b) {
		t.Fatal("configs of different length should not be equal")
	}
}
