package asciifile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/latan/internal/rng"
	"github.com/born-ml/latan/internal/tensor"
)

// parserState binds the parse inputs for a file opened in read mode.
type parserState struct {
	stream   io.ReadSeeker
	filename string
	tokenize Tokenizer
	first    string
}

// File is a session over one container file.
//
// A File is not safe for concurrent use. The object table reflects the file
// contents only after a successful Load; any Save marks it stale and the next
// Load parses the whole file again.
type File struct {
	name   string
	mode   Mode
	file   *os.File
	parsed bool
	table  *Table
	reader *parserState
	opts   options
}

// New creates an unopened File.
func New(opts ...Option) *File {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &File{
		table: NewTable(),
		opts:  o,
	}
}

// Open creates a File and opens name with mode.
func Open(name string, mode Mode, opts ...Option) (*File, error) {
	f := New(opts...)
	if err := f.Open(name, mode); err != nil {
		return nil, err
	}
	return f, nil
}

// Open opens name with the requested capabilities:
//
//   - ModeWrite creates or truncates the file.
//   - ModeAppend creates the file if needed and keeps its content; writes go
//     to the end. Combined with ModeWrite, append wins and nothing is
//     truncated.
//   - ModeRead allows Load; with write or append the file is opened
//     read-write.
//
// It fails with ErrAlreadyOpen while another file is held.
func (f *File) Open(name string, mode Mode) error {
	if f.IsOpen() {
		return fmt.Errorf("%w with name %q", ErrAlreadyOpen, f.name)
	}

	flags, err := openFlags(mode)
	if err != nil {
		return err
	}

	//nolint:gosec // G304: File path comes from the caller, which is expected for data files
	file, err := os.OpenFile(name, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", name, err)
	}

	f.name = name
	f.mode = mode
	f.file = file
	f.parsed = false
	if mode.CanRead() {
		f.reader = &parserState{
			stream:   file,
			filename: name,
			tokenize: f.opts.tokenizer,
		}
	} else {
		f.reader = nil
	}

	f.opts.logger.Debug("opened file", "name", name, "mode", mode)
	return nil
}

// openFlags maps mode bits to os.OpenFile flags.
func openFlags(mode Mode) (int, error) {
	if mode == ModeNull || mode&^modeAll != 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}

	var flags int
	switch {
	case mode.Has(ModeAppend):
		flags = os.O_CREATE | os.O_APPEND
	case mode.Has(ModeWrite):
		flags = os.O_CREATE | os.O_TRUNC
	}

	switch {
	case mode.CanRead() && mode.CanWrite():
		flags |= os.O_RDWR
	case mode.CanWrite():
		flags |= os.O_WRONLY
	default:
		flags |= os.O_RDONLY
	}
	return flags, nil
}

// Close releases the file and forgets every decoded object. Closing an
// unopened File does nothing. The session is reset even when closing the
// underlying file fails.
func (f *File) Close() error {
	f.reader = nil
	var err error
	if f.IsOpen() {
		err = f.file.Close()
		f.file = nil
		f.opts.logger.Debug("closed file", "name", f.name)
	}
	f.name = ""
	f.mode = ModeNull
	f.parsed = false
	f.table.Reset()
	if err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// IsOpen reports whether a file is held.
func (f *File) IsOpen() bool {
	return f.file != nil
}

// Name returns the open file name, empty when closed.
func (f *File) Name() string {
	return f.name
}

// Mode returns the mode the file was opened with.
func (f *File) Mode() Mode {
	return f.mode
}

// Parsed reports whether the object table reflects the file contents.
func (f *File) Parsed() bool {
	return f.parsed
}

// Table returns the object table. It is only meaningful after Load.
func (f *File) Table() *Table {
	return f.table
}

// checkWritability guards every save.
func (f *File) checkWritability() error {
	if !f.IsOpen() {
		return fmt.Errorf("%w: file not opened", ErrNotWritable)
	}
	if !f.mode.CanWrite() {
		return fmt.Errorf("%w: file %q is not opened in write or append mode", ErrNotWritable, f.name)
	}
	return nil
}

// Save appends obj to the file under name.
func (f *File) Save(name string, obj Object) error {
	if err := f.checkWritability(); err != nil {
		return err
	}
	f.parsed = false

	if f.mode.CanRead() {
		// A previous parse may have left the offset anywhere.
		if _, err := f.file.Seek(0, io.SeekEnd); err != nil {
			return fmt.Errorf("failed to seek to end of %q: %w", f.name, err)
		}
	}
	if err := Encode(f.file, name, obj, f.opts.precision); err != nil {
		return err
	}
	f.opts.logger.Debug("saved object", "file", f.name, "name", name, "kind", obj.Kind)
	return nil
}

// SaveMatrix appends a matrix block.
func (f *File) SaveMatrix(m *tensor.Matrix, name string) error {
	return f.Save(name, MatrixObject(m))
}

// SaveSample appends a sample block with its nested matrix blocks.
func (f *File) SaveSample(s *tensor.MatSample, name string) error {
	return f.Save(name, SampleObject(s))
}

// SaveRngState appends a generator state block.
func (f *File) SaveRngState(st rng.State, name string) error {
	return f.Save(name, RngStateObject(st))
}

// Load parses the file if the table is stale. It returns the name of the
// first object in the file when name is empty, and name otherwise.
func (f *File) Load(name string) (string, error) {
	if !f.IsOpen() {
		return "", fmt.Errorf("%w: file not opened", ErrNotReadable)
	}
	if !f.mode.CanRead() || f.reader == nil {
		return "", fmt.Errorf("%w: file %q is not opened in read mode", ErrNotReadable, f.name)
	}

	if !f.parsed {
		f.reader.first = ""
		if err := f.parse(); err != nil {
			return "", err
		}
	}

	if name == "" {
		return f.reader.first, nil
	}
	return name, nil
}

// parse rewinds the stream and rebuilds the table from the whole file.
// On failure the table is left empty and parsed stays false.
func (f *File) parse() error {
	if _, err := f.reader.stream.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind %q: %w", f.name, err)
	}

	res, err := Parse(f.reader.tokenize(f.reader.stream, f.reader.filename), f.reader.filename)
	if err != nil {
		f.table.Reset()
		f.parsed = false
		f.opts.logger.Debug("parse failed", "file", f.name, "err", err)
		return err
	}

	f.table.replace(res.Table)
	f.reader.first = res.First
	f.parsed = true
	f.opts.logger.Debug("parsed file", "file", f.name, "objects", f.table.Len(), "first", res.First)
	return nil
}

// Names loads the file and returns the stored object names in file order.
func (f *File) Names() ([]string, error) {
	if _, err := f.Load(""); err != nil {
		return nil, err
	}
	return f.table.Names(), nil
}

// Get loads the file and returns the object stored under name, or the first
// object when name is empty.
func (f *File) Get(name string) (Object, error) {
	return f.lookup(name, KindUnknown)
}

// ReadMatrix loads the file and returns the matrix stored under name, or the
// first object when name is empty.
func (f *File) ReadMatrix(name string) (*tensor.Matrix, error) {
	obj, err := f.lookup(name, KindMatrix)
	if err != nil {
		return nil, err
	}
	return obj.Matrix, nil
}

// ReadSample loads the file and returns the sample stored under name, or the
// first object when name is empty.
func (f *File) ReadSample(name string) (*tensor.MatSample, error) {
	obj, err := f.lookup(name, KindSample)
	if err != nil {
		return nil, err
	}
	return obj.Sample, nil
}

// ReadRngState loads the file and returns the generator state stored under
// name, or the first object when name is empty.
func (f *File) ReadRngState(name string) (rng.State, error) {
	obj, err := f.lookup(name, KindRngState)
	if err != nil {
		return rng.State{}, err
	}
	return *obj.State, nil
}

func (f *File) lookup(name string, kind Kind) (Object, error) {
	resolved, err := f.Load(name)
	if err != nil {
		return Object{}, err
	}
	if resolved == "" {
		return Object{}, fmt.Errorf("%w: file %q is empty", ErrObjectNotFound, f.name)
	}

	obj, ok := f.table.Get(resolved)
	if !ok {
		return Object{}, fmt.Errorf("%w: no object %q in %q", ErrObjectNotFound, resolved, f.name)
	}
	if kind != KindUnknown && obj.Kind != kind {
		return Object{}, fmt.Errorf("%w: %q is a %s, not a %s", ErrKindMismatch, resolved, obj.Kind, kind)
	}
	return obj, nil
}

// IsMalformed reports whether err comes from a grammar violation.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedFile)
}
