package asciifile

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
)

// maxLineSize bounds a single container line; matrix rows can be long.
const maxLineSize = 64 * 1024 * 1024

// EventType is the kind of a grammar event.
type EventType int

// Grammar events.
const (
	EventBegin EventType = iota + 1
	EventPayload
	EventEnd
)

// String returns a human-readable event type.
func (t EventType) String() string {
	switch t {
	case EventBegin:
		return "begin"
	case EventPayload:
		return "payload"
	case EventEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is one unit produced by a Tokenizer.
type Event struct {
	Type   EventType
	Tag    string   // Block tag, for begin and end events
	Name   string   // Object name, for begin events
	Fields []string // Whitespace-separated tokens, for payload events
	Line   int      // 1-based source line
}

// Tokenizer turns a stream into a lazy, finite, non-restartable sequence of
// grammar events. A malformed line is reported as a non-nil error, after
// which the sequence ends; end of stream simply ends the sequence.
type Tokenizer func(r io.Reader, filename string) iter.Seq2[Event, error]

// Lex is the default Tokenizer for the container grammar.
func Lex(r io.Reader, filename string) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := strings.TrimSpace(scanner.Text())

			if line == "" {
				continue
			}

			if strings.HasPrefix(line, MarkupPrefix) {
				ev, err := lexMarkup(line[len(MarkupPrefix):], lineNum)
				if err != nil {
					err.File = filename
					yield(Event{}, err)
					return
				}
				if !yield(ev, nil) {
					return
				}
				continue
			}

			if strings.HasPrefix(line, CommentStart) {
				continue
			}

			if !yield(Event{Type: EventPayload, Fields: strings.Fields(line), Line: lineNum}, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(Event{}, &MalformedFileError{
				File:   filename,
				Line:   lineNum + 1,
				Reason: "read failed",
				Err:    err,
			})
		}
	}
}

// lexMarkup decodes the part of a markup line after the "#L" prefix.
func lexMarkup(rest string, lineNum int) (Event, *MalformedFileError) {
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return Event{}, &MalformedFileError{Line: lineNum, Reason: fmt.Sprintf("invalid markup %q", MarkupPrefix+rest)}
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return Event{}, &MalformedFileError{Line: lineNum, Reason: "empty markup"}
	}

	switch fields[0] {
	case BeginKeyword:
		if len(fields) != 3 {
			return Event{}, &MalformedFileError{Line: lineNum, Reason: "begin marker expects a tag and a name"}
		}
		if _, ok := kindFromTag(fields[1]); !ok {
			return Event{}, &MalformedFileError{Line: lineNum, Reason: fmt.Sprintf("unknown tag %q", fields[1])}
		}
		return Event{Type: EventBegin, Tag: fields[1], Name: fields[2], Line: lineNum}, nil

	case EndKeyword:
		if len(fields) != 2 {
			return Event{}, &MalformedFileError{Line: lineNum, Reason: "end marker expects a tag"}
		}
		if _, ok := kindFromTag(fields[1]); !ok {
			return Event{}, &MalformedFileError{Line: lineNum, Reason: fmt.Sprintf("unknown tag %q", fields[1])}
		}
		return Event{Type: EventEnd, Tag: fields[1], Line: lineNum}, nil

	default:
		return Event{}, &MalformedFileError{Line: lineNum, Reason: fmt.Sprintf("unknown markup keyword %q", fields[0])}
	}
}
