package asciifile

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, src string) ([]Event, error) {
	t.Helper()
	var events []Event
	for ev, err := range Lex(strings.NewReader(src), "test.dat") {
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func TestLexBlocks(t *testing.T) {
	src := `# a comment
#L latan_begin mat m1
2

  1.0 2.0
3.0 4.0
#L latan_end mat 
`
	events, err := collect(t, src)
	require.NoError(t, err)
	require.Len(t, events, 5)

	assert.Equal(t, Event{Type: EventBegin, Tag: "mat", Name: "m1", Line: 2}, events[0])
	assert.Equal(t, []string{"2"}, events[1].Fields)
	assert.Equal(t, 3, events[1].Line)
	assert.Equal(t, []string{"1.0", "2.0"}, events[2].Fields)
	assert.Equal(t, 5, events[2].Line)
	assert.Equal(t, EventPayload, events[3].Type)
	assert.Equal(t, Event{Type: EventEnd, Tag: "mat", Line: 7}, events[4])
}

func TestLexEmpty(t *testing.T) {
	events, err := collect(t, "")
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = collect(t, "\n\n# only comments\n")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestLexMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{name: "unknown tag", src: "#L latan_begin vec v\n", line: 1},
		{name: "unknown end tag", src: "#L latan_begin mat m\n1\n#L latan_end vec\n", line: 3},
		{name: "begin without name", src: "#L latan_begin mat\n", line: 1},
		{name: "end with extra field", src: "#L latan_end mat m\n", line: 1},
		{name: "unknown keyword", src: "#L latan_middle mat m\n", line: 1},
		{name: "empty markup", src: "\n#L\n", line: 2},
		{name: "glued markup", src: "#Llatan_begin mat m\n", line: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := collect(t, tt.src)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrMalformedFile)

			var mfe *MalformedFileError
			require.True(t, errors.As(err, &mfe))
			assert.Equal(t, "test.dat", mfe.File)
			assert.Equal(t, tt.line, mfe.Line)
		})
	}
}

func TestLexStopsWhenConsumerStops(t *testing.T) {
	src := "#L latan_begin mat a\n1\n1\n#L latan_end mat\n"
	count := 0
	for range Lex(strings.NewReader(src), "") {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "begin", EventBegin.String())
	assert.Equal(t, "payload", EventPayload.String())
	assert.Equal(t, "end", EventEnd.String())
	assert.Equal(t, "unknown", EventType(0).String())
}
