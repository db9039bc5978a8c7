// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package asciifile provides the latan ASCII container format.
//
// This package wraps the internal implementation and exports a clean public
// API for saving matrices, matrix samples and generator states to tagged text
// files and reading them back by name.
//
// Example usage:
//
//	import (
//	    "github.com/born-ml/latan/asciifile"
//	    "github.com/born-ml/latan/tensor"
//	)
//
//	f, err := asciifile.Open("corr.dat", asciifile.ModeWrite)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, _ := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	if err := f.SaveMatrix(m, "m1"); err != nil {
//	    log.Fatal(err)
//	}
//	f.Close()
//
//	f, err = asciifile.Open("corr.dat", asciifile.ModeRead)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	first, err := f.Load("") // "m1"
package asciifile

import (
	"io"
	"iter"
	"log/slog"

	"github.com/born-ml/latan/internal/asciifile"
)

// File is a session over one container file.
type File = asciifile.File

// Mode is a set of file capabilities.
type Mode = asciifile.Mode

// File modes.
const (
	ModeNull   Mode = asciifile.ModeNull
	ModeRead   Mode = asciifile.ModeRead
	ModeWrite  Mode = asciifile.ModeWrite
	ModeAppend Mode = asciifile.ModeAppend
)

// Kind identifies the variant held by an Object.
type Kind = asciifile.Kind

// Object kinds.
const (
	KindMatrix   Kind = asciifile.KindMatrix
	KindSample   Kind = asciifile.KindSample
	KindRngState Kind = asciifile.KindRngState
)

// Object is one decoded container entry.
type Object = asciifile.Object

// Table is the insertion-ordered object table of a file.
type Table = asciifile.Table

// Event is one grammar event produced by a Tokenizer.
type Event = asciifile.Event

// Tokenizer turns a stream into grammar events.
type Tokenizer = asciifile.Tokenizer

// ParseResult is the outcome of one parse pass.
type ParseResult = asciifile.ParseResult

// MalformedFileError describes a grammar violation.
type MalformedFileError = asciifile.MalformedFileError

// Option configures a File.
type Option = asciifile.Option

// Errors.
var (
	ErrAlreadyOpen    = asciifile.ErrAlreadyOpen
	ErrNotReadable    = asciifile.ErrNotReadable
	ErrNotWritable    = asciifile.ErrNotWritable
	ErrMalformedFile  = asciifile.ErrMalformedFile
	ErrInvalidMode    = asciifile.ErrInvalidMode
	ErrInvalidName    = asciifile.ErrInvalidName
	ErrObjectNotFound = asciifile.ErrObjectNotFound
	ErrKindMismatch   = asciifile.ErrKindMismatch
)

// New creates an unopened File.
func New(opts ...Option) *File {
	return asciifile.New(opts...)
}

// Open creates a File and opens name with mode.
func Open(name string, mode Mode, opts ...Option) (*File, error) {
	return asciifile.Open(name, mode, opts...)
}

// WithLogger sets the logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return asciifile.WithLogger(logger)
}

// WithPrecision sets the number of digits after the decimal point of written
// values.
func WithPrecision(prec int) Option {
	return asciifile.WithPrecision(prec)
}

// WithTokenizer replaces the default grammar tokenizer.
func WithTokenizer(tok Tokenizer) Option {
	return asciifile.WithTokenizer(tok)
}

// Lex is the default Tokenizer.
func Lex(r io.Reader, filename string) iter.Seq2[Event, error] {
	return asciifile.Lex(r, filename)
}

// Parse decodes a sequence of grammar events.
func Parse(events iter.Seq2[Event, error], filename string) (ParseResult, error) {
	return asciifile.Parse(events, filename)
}

// Encode writes obj as one block to w.
func Encode(w io.Writer, name string, obj Object, prec int) error {
	return asciifile.Encode(w, name, obj, prec)
}
