// Package miniconfig implements a small structured configuration library
// built around four primitive value kinds - Bool, I64, F64, Str - arranged
// into nested tables and homogeneous arrays.
//
// # Forms
//
// The same tree can be represented three ways:
//
//   - A mutable, insertion-ordered in-memory tree (MutableTable,
//     MutableArray), built by hand or by the INI parser.
//   - A compact, position-independent binary blob, built by WriteBinary and
//     walked read-only and zero-copy through BinaryReader.
//   - INI text, read by ParseINI and written by WriteINI.
//
// A fourth, emission-only form renders the tree as a Lua-like table
// expression via WriteLua, for embedding in scripts or logs; there is no
// corresponding parser.
//
// # Walking any form uniformly
//
// Serializers and the binary writer never depend on which form they are
// given: they consume the TableRead/ArrayRead capability sets (walk.go),
// which MutableTable, MutableArray, BinaryReader and the binary reader's
// table/array views all implement.
//
//	cfg, err := miniconfig.ParseINI(src, miniconfig.DefaultParseOptions())
//	if err != nil {
//		return err
//	}
//	blob, err := miniconfig.WriteBinary(cfg.Root())
//	if err != nil {
//		return err
//	}
//	r, err := miniconfig.NewBinaryReader(blob)
//
// # Errors
//
// Every fallible operation returns a *miniconfig.Error carrying a Kind
// (ErrorKind) and, for parse errors, a source Position (ErrorPosition).
// There are no panics on malformed input; a failed parse or binary
// validation yields no value at all.
package miniconfig
