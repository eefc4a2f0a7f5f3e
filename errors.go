// errors.go: Error taxonomy for miniconfig
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package miniconfig

import (
	"errors"
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// Kind identifies the category of a miniconfig error. Every error returned
// by this package carries exactly one Kind, retrievable with ErrorKind.
type Kind int

const (
	// KindWrongType: a typed accessor was called against a value of a
	// different stored kind.
	KindWrongType Kind = iota
	// KindKeyDoesNotExist: Table.Get/Remove referenced an absent key.
	KindKeyDoesNotExist
	// KindIndexOutOfBounds: Array.Get/Insert/Remove referenced an index
	// outside [0, len).
	KindIndexOutOfBounds
	// KindEmptyKey: Table.Set was called with an empty key.
	KindEmptyKey
	// KindArrayEmpty: Array.Pop was called on an empty array.
	KindArrayEmpty
	// KindArrayWrongElementType: Array.Push/Insert would break kind
	// homogeneity (outside the int/float unification).
	KindArrayWrongElementType
	// KindNameContainsInvalidChars: a key or section name contains an
	// unescaped control character.
	KindNameContainsInvalidChars
	// KindInvalidEscape: the escape codec hit a malformed escape sequence.
	KindInvalidEscape
	// KindInvalidUtf8: bytes assembled by an escape did not form valid UTF-8.
	KindInvalidUtf8
	// KindUnexpectedCharacter: the INI lexer hit a character not valid in
	// the current grammar position.
	KindUnexpectedCharacter
	// KindUnexpectedEnd: the INI lexer ran out of input mid-token.
	KindUnexpectedEnd
	// KindUnterminatedString: a quoted string was never closed.
	KindUnterminatedString
	// KindUnterminatedArray: an array literal was never closed with ']'.
	KindUnterminatedArray
	// KindInvalidNumber: a numeric literal did not match the numeric grammar.
	KindInvalidNumber
	// KindNumberOutOfRange: a numeric literal overflowed its target width.
	KindNumberOutOfRange
	// KindInvalidBool: reserved for symmetry with the numeric-literal kinds.
	KindInvalidBool
	// KindDuplicateKey: duplicate_keys=forbid and a key reappeared.
	KindDuplicateKey
	// KindDuplicateSection: duplicate_sections=forbid and a section reappeared.
	KindDuplicateSection
	// KindMixedArray: an array literal mixed non-numeric kinds.
	KindMixedArray
	// KindEmptySectionName: a segment of a nested section path was empty
	// (a bare "[]" header selects the root section instead).
	KindEmptySectionName
	// KindInvalidSeparator: the line's key/value separator is disabled by options.
	KindInvalidSeparator
	// KindUnquotedString: unquoted_strings=false and a non-literal unquoted
	// value was encountered.
	KindUnquotedString
	// KindParentSectionMissing: a nested section's parent was never declared.
	KindParentSectionMissing
	// KindInvalidKey: a key or section name failed the shared name parser.
	KindInvalidKey
	// KindTooDeeplyNested: nested section depth exceeded ParseOptions.MaxDepth.
	KindTooDeeplyNested
	// KindUnsupportedForIni: the INI emitter was asked to emit something the
	// dialect cannot express (nested tables beyond what's enabled, arrays of
	// non-primitives).
	KindUnsupportedForIni
	// KindCorruptBinary: binary blob validation failed.
	KindCorruptBinary
	// KindUnsupportedVersion: binary blob header names an unknown format version.
	KindUnsupportedVersion
)

var kindNames = [...]string{
	"WrongType", "KeyDoesNotExist", "IndexOutOfBounds", "EmptyKey",
	"ArrayEmpty", "ArrayWrongElementType", "NameContainsInvalidChars",
	"InvalidEscape", "InvalidUtf8", "UnexpectedCharacter", "UnexpectedEnd",
	"UnterminatedString", "UnterminatedArray", "InvalidNumber",
	"NumberOutOfRange", "InvalidBool", "DuplicateKey", "DuplicateSection",
	"MixedArray", "EmptySectionName", "InvalidSeparator", "UnquotedString",
	"ParentSectionMissing", "InvalidKey", "TooDeeplyNested",
	"UnsupportedForIni", "CorruptBinary", "UnsupportedVersion",
}

// String returns the error kind's name, matching its constant identifier
// with the "Kind" prefix stripped.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// errCode maps a Kind to the namespaced string code carried by go-errors,
// following the ErrCodeInvalidConfig/ErrCodeIOError naming pattern.
func errCode(k Kind) string {
	return "MINICONFIG_" + k.String()
}

// Position locates an error within INI source text.
type Position struct {
	Line   int
	Column int
}

// Error is the concrete error type returned by every fallible operation in
// miniconfig. It carries a structured Kind plus, for parse errors, a source
// Position, and wraps a github.com/agilira/go-errors error so the message,
// code and %w-chain all continue to work for callers that only care about
// error.Error()/errors.Unwrap().
type Error struct {
	kind   Kind
	pos    Position
	hasPos bool
	inner  *goerrors.Error
}

func (e *Error) Error() string {
	if e.hasPos {
		return fmt.Sprintf("%s (line %d, column %d): %s", e.kind, e.pos.Line, e.pos.Column, e.inner.Error())
	}
	return fmt.Sprintf("%s: %s", e.kind, e.inner.Error())
}

// Unwrap exposes the wrapped go-errors error for errors.Is/errors.As chains.
func (e *Error) Unwrap() error { return e.inner }

// Kind returns the structured error kind.
func (e *Error) Kind() Kind { return e.kind }

// Position returns the source position and whether one was recorded.
func (e *Error) Position() (Position, bool) { return e.pos, e.hasPos }

// newErr builds a Kind-tagged error with no source position (used by the
// value algebra, mutable config, and binary reader/writer).
func newErr(k Kind, msg string) error {
	return &Error{kind: k, inner: goerrors.New(errCode(k), msg)}
}

// newErrf is newErr with fmt.Sprintf-style formatting of the message.
func newErrf(k Kind, format string, args ...interface{}) error {
	return newErr(k, fmt.Sprintf(format, args...))
}

// newParseErr builds a Kind-tagged error that also carries the line and
// column where the problem was found.
func newParseErr(k Kind, pos Position, msg string) error {
	return &Error{
		kind:   k,
		pos:    pos,
		hasPos: true,
		inner: goerrors.New(errCode(k), msg).
			WithContext("line", pos.Line).
			WithContext("column", pos.Column),
	}
}

// newParseErrf is newParseErr with fmt.Sprintf-style formatting.
func newParseErrf(k Kind, pos Position, format string, args ...interface{}) error {
	return newParseErr(k, pos, fmt.Sprintf(format, args...))
}

// wrapErr wraps an underlying error under a Kind, for errors discovered one
// layer below their ultimate cause. No code path in the package calls it
// at present.
func wrapErr(err error, k Kind, msg string) error {
	return &Error{kind: k, inner: goerrors.Wrap(err, errCode(k), msg)}
}

// ErrorKind extracts the Kind carried by an error produced by this package.
// Returns (_, false) for any error not produced by miniconfig.
func ErrorKind(err error) (Kind, bool) {
	var me *Error
	if !errors.As(err, &me) {
		return 0, false
	}
	return me.kind, true
}

// ErrorPosition extracts the {line, column} carried by a parse error.
// Returns (_, false) if err has no position attached.
func ErrorPosition(err error) (Position, bool) {
	var me *Error
	if !errors.As(err, &me) {
		return Position{}, false
	}
	if !me.hasPos {
		return Position{}, false
	}
	return me.pos, true
}
