package asciifile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/born-ml/latan/internal/rng"
	"github.com/born-ml/latan/internal/tensor"
)

// Encode writes obj as one top-level block named name. Values are rendered
// in scientific notation with prec digits after the decimal point.
func Encode(w io.Writer, name string, obj Object, prec int) error {
	if !validName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := obj.Validate(); err != nil {
		return err
	}
	if prec < 0 || prec > MaxPrecision {
		return fmt.Errorf("precision %d out of range [0, %d]", prec, MaxPrecision)
	}

	bw := bufio.NewWriter(w)
	enc := &encoder{w: bw, prec: prec}
	switch obj.Kind {
	case KindMatrix:
		enc.matrix(obj.Matrix, name)
	case KindSample:
		enc.sample(obj.Sample, name)
	case KindRngState:
		enc.rngState(*obj.State, name)
	}
	if enc.err != nil {
		return fmt.Errorf("failed to write %s %q: %w", obj.Kind, name, enc.err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write %s %q: %w", obj.Kind, name, err)
	}
	return nil
}

// encoder keeps the first write error and skips everything after it.
type encoder struct {
	w    *bufio.Writer
	prec int
	buf  []byte
	err  error
}

func (e *encoder) line(s string) {
	if e.err != nil {
		return
	}
	if _, err := e.w.WriteString(s); err != nil {
		e.err = err
		return
	}
	e.err = e.w.WriteByte('\n')
}

func (e *encoder) begin(tag, name string) {
	e.line(MarkupPrefix + " " + BeginKeyword + " " + tag + " " + name)
}

func (e *encoder) end(tag string) {
	e.line(MarkupPrefix + " " + EndKeyword + " " + tag)
}

func (e *encoder) matrix(m *tensor.Matrix, name string) {
	e.begin(TagMatrix, name)
	e.line(strconv.Itoa(m.Cols()))
	for i := 0; i < m.Rows(); i++ {
		e.buf = e.buf[:0]
		for j, v := range m.Row(i) {
			if j > 0 {
				e.buf = append(e.buf, ' ')
			}
			e.buf = strconv.AppendFloat(e.buf, v, 'e', e.prec, 64)
		}
		e.line(string(e.buf))
	}
	e.end(TagMatrix)
}

func (e *encoder) sample(s *tensor.MatSample, name string) {
	e.begin(TagSample, name)
	e.line(strconv.Itoa(s.Size()))
	e.matrix(s.Central(), name+CentralSuffix)
	for i, m := range s.Samples() {
		e.matrix(m, sampleName(name, i))
	}
	e.end(TagSample)
}

func (e *encoder) rngState(st rng.State, name string) {
	text, err := st.MarshalText()
	if err != nil {
		if e.err == nil {
			e.err = err
		}
		return
	}
	e.begin(TagRngState, name)
	e.line(string(text))
	e.end(TagRngState)
}
