// serialize_ini.go: INI text emitter (C7)
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package miniconfig

import (
	"sort"
	"strconv"
	"strings"
)

// WriteINIOptions is the small emission-side counterpart of ParseOptions:
// just enough dialect choice to round-trip against a ParseOptions-compatible
// reader (separator character, accepted quote styles, whether nested
// sections may be emitted).
type WriteINIOptions struct {
	Separator      byte // '=' or ':'
	StringQuotes   QuoteChars
	NestedSections bool
}

// DefaultWriteINIOptions mirrors DefaultParseOptions' permissiveness.
func DefaultWriteINIOptions() WriteINIOptions {
	return WriteINIOptions{
		Separator:      '=',
		StringQuotes:   QuoteCharsDouble | QuoteCharsSingle,
		NestedSections: true,
	}
}

// WriteINI renders root as INI text: root-level key/value pairs first,
// then one `[section]` per nested table, in sorted-key order.
// A table nested two or more levels deep with NestedSections off, or an
// array holding a non-primitive element, fails with KindUnsupportedForIni.
func WriteINI(root TableRead, opts WriteINIOptions) (string, error) {
	if opts.Separator != '=' && opts.Separator != ':' {
		opts.Separator = '='
	}
	st := &iniWriteState{opts: opts, mask: specialMaskForIni(opts.NestedSections)}
	var buf strings.Builder
	if err := st.emitTable(&buf, root, nil); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type iniWriteState struct {
	opts WriteINIOptions
	mask SpecialMask
}

func specialMaskForIni(nestedSections bool) SpecialMask {
	m := SpecialBracketOpen | SpecialBracketClose | SpecialSemicolon | SpecialHash | SpecialEquals | SpecialColon | SpecialSpace
	if nestedSections {
		m |= SpecialSlash
	}
	return m
}

func sortedKeys(t TableRead) []string {
	keys := make([]string, 0, t.Len())
	t.Iter(func(k string, _ Value) bool { keys = append(keys, k); return true })
	sort.Strings(keys)
	return keys
}

func (st *iniWriteState) emitTable(buf *strings.Builder, t TableRead, path []string) error {
	keys := sortedKeys(t)

	for _, k := range keys {
		v, _ := t.Get(k)
		if v.IsTable() {
			continue
		}
		if err := st.emitKeyLine(buf, k, v); err != nil {
			return err
		}
	}

	for _, k := range keys {
		v, _ := t.Get(k)
		if !v.IsTable() {
			continue
		}
		if len(path) >= 1 && !st.opts.NestedSections {
			return newErrf(KindUnsupportedForIni, "table nested under %q requires nested sections to be enabled", strings.Join(path, "/"))
		}
		childPath := append(append([]string{}, path...), k)
		buf.WriteByte('[')
		for i, seg := range childPath {
			if i > 0 {
				buf.WriteByte('/')
			}
			st.writeName(buf, seg)
		}
		buf.WriteString("]\n")
		child, err := v.AsTable()
		if err != nil {
			return err
		}
		if err := st.emitTable(buf, child, childPath); err != nil {
			return err
		}
	}
	return nil
}

func (st *iniWriteState) emitKeyLine(buf *strings.Builder, key string, v Value) error {
	st.writeName(buf, key)
	buf.WriteByte(' ')
	buf.WriteByte(st.opts.Separator)
	buf.WriteByte(' ')
	if err := st.writeValue(buf, v); err != nil {
		return err
	}
	buf.WriteByte('\n')
	return nil
}

func (st *iniWriteState) allowSingle() bool { return st.opts.StringQuotes&QuoteCharsSingle != 0 }
func (st *iniWriteState) allowDouble() bool { return st.opts.StringQuotes&QuoteCharsDouble != 0 }

func (st *iniWriteState) writeName(buf *strings.Builder, name string) {
	q := QuoteFor(name, st.mask, st.allowSingle(), st.allowDouble())
	st.writeQuoted(buf, name, q)
}

// writeQuoted emits s wrapped in q's quote character. Inside quotes, the
// quote character itself disambiguates the conditionally-special set (a
// space or a bracket needs no escaping once the value is quoted), so only
// the nine always-special characters and the chosen quote character are
// escaped - the conditional mask applies to the unquoted path only.
func (st *iniWriteState) writeQuoted(buf *strings.Builder, s string, q QuoteStyle) {
	if q == QuoteNone {
		buf.WriteString(s)
		return
	}
	qc := q.QuoteChar()
	buf.WriteRune(qc)
	for _, r := range s {
		if r == qc {
			buf.WriteByte('\\')
			buf.WriteRune(r)
			continue
		}
		var tmp []byte
		tmp = WriteEscaped(tmp, string(r), 0)
		buf.Write(tmp)
	}
	buf.WriteRune(qc)
}

func (st *iniWriteState) writeValue(buf *strings.Builder, v Value) error {
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
		q := QuoteFor(s, st.mask, st.allowSingle(), st.allowDouble())
		// An unquoted value that is empty, starts with a quote, or reads as
		// a bool or number would not parse back as this string.
		if q == QuoteNone && (s == "" || s == "true" || s == "false" || s[0] == '"' || s[0] == '\'' ||
			intLiteralRe.MatchString(s) || floatLiteralRe.MatchString(s)) {
			if st.allowDouble() {
				q = QuoteDouble
			} else if st.allowSingle() {
				q = QuoteSingle
			}
		}
		st.writeQuoted(buf, s, q)
	case Array:
		return st.writeArray(buf, v)
	case Table:
		return newErr(KindUnsupportedForIni, "table values cannot appear inline; use a section")
	}
	return nil
}

func (st *iniWriteState) writeArray(buf *strings.Builder, v Value) error {
	a, err := v.AsArray()
	if err != nil {
		return err
	}
	buf.WriteString("[ ")
	first := true
	var elErr error
	a.Iter(func(_ int, ev Value) bool {
		if ev.IsArray() || ev.IsTable() {
			elErr = newErr(KindUnsupportedForIni, "arrays of non-primitive values cannot be emitted as INI")
			return false
		}
		if !first {
			buf.WriteString(", ")
		}
		first = false
		elErr = st.writeValue(buf, ev)
		return elErr == nil
	})
	if elErr != nil {
		return elErr
	}
	buf.WriteString(" ]")
	return nil
}

// formatINIFloat renders f with a decimal point even when its value is
// integral, per the Open Question (b) resolution in DESIGN.md: the type
// tag must survive a parse/emit round-trip.
func formatINIFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
