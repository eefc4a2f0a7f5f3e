// serialize_lua.go: Lua-like table-expression emitter (C7)
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package miniconfig

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var luaIdentRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// WriteLua renders root as a single brace-delimited Lua table expression:
// two-space indentation per level, keys sorted for stable output,
// identifier-shaped keys left bare, everything else bracketed and quoted.
// Emission-only - there is no Lua parser in this package.
func WriteLua(root TableRead) (string, error) {
	var buf strings.Builder
	if err := writeLuaTable(&buf, root, 0); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeLuaTable(buf *strings.Builder, t TableRead, indent int) error {
	if t.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}
	buf.WriteString("{\n")
	pad := strings.Repeat("  ", indent+1)
	for _, k := range sortedKeys(t) {
		v, err := t.Get(k)
		if err != nil {
			return err
		}
		buf.WriteString(pad)
		if luaIdentRe.MatchString(k) {
			buf.WriteString(k)
		} else {
			buf.WriteByte('[')
			buf.WriteString(quoteLuaString(k))
			buf.WriteByte(']')
		}
		buf.WriteString(" = ")
		if err := writeLuaValue(buf, v, indent+1); err != nil {
			return err
		}
		buf.WriteString(",\n")
	}
	buf.WriteString(strings.Repeat("  ", indent))
	buf.WriteByte('}')
	return nil
}

func writeLuaValue(buf *strings.Builder, v Value, indent int) error {
	switch v.Kind() {
	case Bool:
		b, _ := v.AsBool()
		if b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case I64:
		i, _ := v.AsI64()
		buf.WriteString(strconv.FormatInt(i, 10))
	case F64:
		f, _ := v.AsF64()
		buf.WriteString(formatINIFloat(f))
	case Str:
		s, _ := v.AsStr()
		buf.WriteString(quoteLuaString(s))
	case Array:
		return writeLuaArray(buf, v, indent)
	case Table:
		t, err := v.AsTable()
		if err != nil {
			return err
		}
		return writeLuaTable(buf, t, indent)
	}
	return nil
}

func writeLuaArray(buf *strings.Builder, v Value, indent int) error {
	a, err := v.AsArray()
	if err != nil {
		return err
	}
	buf.WriteByte('{')
	first := true
	var elErr error
	a.Iter(func(_ int, ev Value) bool {
		if !first {
			buf.WriteString(", ")
		}
		first = false
		elErr = writeLuaValue(buf, ev, indent)
		return elErr == nil
	})
	if elErr != nil {
		return elErr
	}
	buf.WriteByte('}')
	return nil
}

// quoteLuaString always quotes s (Lua string literals are never bare),
// preferring double quotes unless s contains one and no single quote,
// escaping the chosen quote character and the nine always-special chars.
func quoteLuaString(s string) string {
	hasDouble := strings.ContainsRune(s, '"')
	hasSingle := strings.ContainsRune(s, '\'')
	quote := byte('"')
	if hasDouble && !hasSingle {
		quote = '\''
	}

	var buf strings.Builder
	buf.WriteByte(quote)
	for _, r := range s {
		if m, ok := alwaysSpecialMnemonic(r); ok {
			buf.WriteByte('\\')
			buf.WriteByte(m)
			continue
		}
		if byte(r) == quote && r < utf8.RuneSelf {
			buf.WriteByte('\\')
			buf.WriteRune(r)
			continue
		}
		buf.WriteRune(r)
	}
	buf.WriteByte(quote)
	return buf.String()
}
