package asciifile

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/born-ml/latan/internal/rng"
	"github.com/born-ml/latan/internal/tensor"
)

// ParseResult is the outcome of one parse pass.
type ParseResult struct {
	Table *Table
	First string // Name of the first top-level object, empty for an empty file
}

// parseState tracks the driver through one pass:
// idle -> scanning -> {objectBegin -> payload -> objectEnd}* -> done, or
// failed from anywhere.
type parseState int

const (
	stateIdle parseState = iota
	stateScanning
	stateObjectBegin
	statePayload
	stateObjectEnd
	stateDone
	stateFailed
)

// block is an open begin marker and what has been accumulated under it.
type block struct {
	kind     Kind
	name     string
	line     int
	fields   []string
	children []*tensor.Matrix // Nested mat blocks of a sample
	names    []string         // Names of the nested mat blocks
}

type parser struct {
	filename string
	state    parseState
	stack    []*block
	table    *Table
	first    string
	isFirst  bool
}

// Parse consumes events until the sequence ends and returns the decoded
// objects. Matrix blocks nested in a sample are folded into that sample.
// Any grammar violation fails the whole pass with a *MalformedFileError.
func Parse(events iter.Seq2[Event, error], filename string) (ParseResult, error) {
	p := &parser{
		filename: filename,
		state:    stateIdle,
		table:    NewTable(),
		isFirst:  true,
	}
	return p.run(events)
}

func (p *parser) run(events iter.Seq2[Event, error]) (ParseResult, error) {
	if p.state != stateIdle {
		return ParseResult{}, errors.New("parser already used")
	}
	p.state = stateScanning
	for ev, err := range events {
		if err != nil {
			return ParseResult{}, p.fail(p.wrapTokenizerError(err))
		}
		if err := p.handle(ev); err != nil {
			return ParseResult{}, p.fail(err)
		}
	}

	if top := p.top(); top != nil {
		return ParseResult{}, p.fail(p.errorf(top.line, top.name, "unterminated %s block", top.kind.Tag()))
	}

	p.state = stateDone
	return ParseResult{Table: p.table, First: p.first}, nil
}

func (p *parser) handle(ev Event) error {
	switch ev.Type {
	case EventBegin:
		return p.begin(ev)
	case EventPayload:
		return p.payload(ev)
	case EventEnd:
		return p.end(ev)
	default:
		return p.errorf(ev.Line, "", "unexpected event %s", ev.Type)
	}
}

func (p *parser) begin(ev Event) error {
	kind, ok := kindFromTag(ev.Tag)
	if !ok {
		return p.errorf(ev.Line, ev.Name, "unknown tag %q", ev.Tag)
	}

	if top := p.top(); top != nil {
		if top.kind != KindSample || kind != KindMatrix {
			return p.errorf(ev.Line, top.name, "unexpected %s block %q inside %s block", ev.Tag, ev.Name, top.kind.Tag())
		}
		if len(top.fields) == 0 {
			return p.errorf(ev.Line, top.name, "missing sample size before nested blocks")
		}
	} else if p.isFirst {
		p.first = ev.Name
		p.isFirst = false
	}

	p.state = stateObjectBegin
	p.stack = append(p.stack, &block{kind: kind, name: ev.Name, line: ev.Line})
	return nil
}

func (p *parser) payload(ev Event) error {
	top := p.top()
	if top == nil {
		return p.errorf(ev.Line, "", "data outside of any block")
	}
	if len(top.children) > 0 {
		return p.errorf(ev.Line, top.name, "data after nested blocks")
	}
	p.state = statePayload
	top.fields = append(top.fields, ev.Fields...)
	return nil
}

func (p *parser) end(ev Event) error {
	top := p.top()
	if top == nil {
		return p.errorf(ev.Line, "", "end of %s block without a matching begin", ev.Tag)
	}
	if top.kind.Tag() != ev.Tag {
		return p.errorf(ev.Line, top.name, "end of %s block closes a %s block", ev.Tag, top.kind.Tag())
	}
	p.stack = p.stack[:len(p.stack)-1]
	p.state = stateObjectEnd

	obj, err := p.decode(top)
	if err != nil {
		return err
	}

	if parent := p.top(); parent != nil {
		parent.children = append(parent.children, obj.Matrix)
		parent.names = append(parent.names, top.name)
		return nil
	}

	p.table.Set(top.name, obj)
	p.state = stateScanning
	return nil
}

func (p *parser) decode(b *block) (Object, error) {
	switch b.kind {
	case KindMatrix:
		return p.decodeMatrix(b)
	case KindSample:
		return p.decodeSample(b)
	case KindRngState:
		return p.decodeRngState(b)
	default:
		return Object{}, p.errorf(b.line, b.name, "unknown block kind")
	}
}

func (p *parser) decodeMatrix(b *block) (Object, error) {
	if len(b.fields) == 0 {
		return Object{}, p.errorf(b.line, b.name, "missing column count")
	}
	cols, err := strconv.Atoi(b.fields[0])
	if err != nil || cols < 0 {
		return Object{}, p.errorf(b.line, b.name, "invalid column count %q", b.fields[0])
	}

	values := make([]float64, len(b.fields)-1)
	for i, field := range b.fields[1:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Object{}, p.errorf(b.line, b.name, "invalid value %q", field)
		}
		values[i] = v
	}

	m, err := tensor.FromData(cols, values)
	if err != nil {
		return Object{}, p.wrap(b, "inconsistent matrix size", err)
	}
	return MatrixObject(m), nil
}

func (p *parser) decodeSample(b *block) (Object, error) {
	if len(b.fields) != 1 {
		return Object{}, p.errorf(b.line, b.name, "expected a single sample size, got %d fields", len(b.fields))
	}
	size, err := strconv.Atoi(b.fields[0])
	if err != nil || size < 0 {
		return Object{}, p.errorf(b.line, b.name, "invalid sample size %q", b.fields[0])
	}
	if len(b.children) != size+1 {
		return Object{}, p.errorf(b.line, b.name, "declared size %d but found %d variation blocks", size, len(b.children)-1)
	}

	if want := b.name + CentralSuffix; b.names[0] != want {
		return Object{}, p.errorf(b.line, b.name, "expected central block %q, found %q", want, b.names[0])
	}
	for i := 0; i < size; i++ {
		if want := sampleName(b.name, i); b.names[i+1] != want {
			return Object{}, p.errorf(b.line, b.name, "expected variation block %q, found %q", want, b.names[i+1])
		}
	}

	s, err := tensor.SampleFrom(b.children[0], b.children[1:])
	if err != nil {
		return Object{}, p.wrap(b, "inconsistent sample", err)
	}
	return SampleObject(s), nil
}

func (p *parser) decodeRngState(b *block) (Object, error) {
	var st rng.State
	if err := st.UnmarshalText([]byte(strings.Join(b.fields, ""))); err != nil {
		return Object{}, p.wrap(b, "invalid generator state", err)
	}
	return RngStateObject(st), nil
}

func (p *parser) top() *block {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) fail(err error) error {
	p.state = stateFailed
	return err
}

func (p *parser) errorf(line int, blockName, format string, args ...any) error {
	return &MalformedFileError{
		File:   p.filename,
		Line:   line,
		Block:  blockName,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (p *parser) wrap(b *block, reason string, err error) error {
	return &MalformedFileError{
		File:   p.filename,
		Line:   b.line,
		Block:  b.name,
		Reason: reason,
		Err:    err,
	}
}

func (p *parser) wrapTokenizerError(err error) error {
	var mfe *MalformedFileError
	if errors.As(err, &mfe) {
		if mfe.File == "" {
			mfe.File = p.filename
		}
		return mfe
	}
	return &MalformedFileError{File: p.filename, Reason: "tokenizer failed", Err: err}
}

// sampleName returns the block name of variation i of sample name.
func sampleName(name string, i int) string {
	return name + SampleSuffix + strconv.Itoa(i)
}
