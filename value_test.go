// value_test.go: Tagged value algebra tests
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package miniconfig

import "testing"

func TestValueKindPredicates(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		kind ValueKind
	}{
		{"bool", BoolValue(true), Bool},
		{"i64", I64Value(3), I64},
		{"f64", F64Value(3.5), F64},
		{"str", StrValue("x"), Str},
		{"array", ArrayValue(NewMutableArray()), Array},
		{"table", TableValue(NewMutableTable()), Table},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.v.Kind() != c.kind {
				t.Fatalf("Kind() = %s, want %s", c.v.Kind(), c.kind)
			}
		})
	}
}

func TestAsI64OnlyReadsNativeInts(t *testing.T) {
	i, err := I64Value(7).AsI64()
	if err != nil || i != 7 {
		t.Fatalf("AsI64 on I64: got (%d, %v)", i, err)
	}

	if _, err := F64Value(3.9).AsI64(); err == nil {
		t.Fatal("AsI64 on a stored F64 should fail, not truncate")
	} else if k, _ := ErrorKind(err); k != KindWrongType {
		t.Fatalf("expected KindWrongType, got %v", k)
	}
}

func TestAsF64Widening(t *testing.T) {
	f, err := I64Value(7).AsF64()
	if err != nil || f != 7.0 {
		t.Fatalf("AsF64 on I64 should widen: got (%g, %v)", f, err)
	}

	f, err = F64Value(3.5).AsF64()
	if err != nil || f != 3.5 {
		t.Fatalf("AsF64 on F64: got (%g, %v)", f, err)
	}
}

func TestWrongTypeErrors(t *testing.T) {
	v := StrValue("hello")
	if _, err := v.AsBool(); err == nil {
		t.Fatal("AsBool on Str should fail")
	} else if k, ok := ErrorKind(err); !ok || k != KindWrongType {
		t.Fatalf("expected KindWrongType, got %v", k)
	}
	if _, err := v.AsArray(); err == nil {
		t.Fatal("AsArray on Str should fail")
	}
	if _, err := v.AsTable(); err == nil {
		t.Fatal("AsTable on Str should fail")
	}
}

func TestAsMutableArrayRejectsReadOnly(t *testing.T) {
	cfg, err := ParseINI("a = [1, 2, 3]\n", DefaultParseOptions())
	if err != nil {
		t.Fatalf("ParseINI: %v", err)
	}
	blob, err := WriteBinary(cfg.Root())
	if err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	r, err := NewBinaryReader(blob)
	if err != nil {
		t.Fatalf("NewBinaryReader: %v", err)
	}
	v, err := r.Get("a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := v.AsMutableArray(); err == nil {
		t.Fatal("AsMutableArray on a binary-backed array should fail")
	}
}

func TestValueStringDebugRender(t *testing.T) {
	if BoolValue(true).String() != "true" {
		t.Fatal("bool render")
	}
	if I64Value(5).String() != "5" {
		t.Fatal("i64 render")
	}
	if StrValue("hi").String() != "hi" {
		t.Fatal("str render")
	}
}
