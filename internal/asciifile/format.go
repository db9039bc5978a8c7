package asciifile

import "strings"

// Markup constants of the container format.
const (
	MarkupPrefix = "#L"
	CommentStart = "#"
	BeginKeyword = "latan_begin"
	EndKeyword   = "latan_end"

	TagMatrix   = "mat"
	TagSample   = "rs_sample"
	TagRngState = "rg_state"

	CentralSuffix = "_C"
	SampleSuffix  = "_S_"

	// DefaultPrecision is the number of digits after the decimal point in
	// written values; 16 gives 17 significant digits, enough to round-trip
	// any float64.
	DefaultPrecision = 16
	MaxPrecision     = 17
)

// Kind identifies the variant held by an Object.
type Kind int

// Object kinds.
const (
	KindUnknown Kind = iota
	KindMatrix
	KindSample
	KindRngState
)

// Tag returns the block tag written for the kind.
func (k Kind) Tag() string {
	switch k {
	case KindMatrix:
		return TagMatrix
	case KindSample:
		return TagSample
	case KindRngState:
		return TagRngState
	default:
		return ""
	}
}

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindMatrix:
		return "matrix"
	case KindSample:
		return "sample"
	case KindRngState:
		return "rng state"
	default:
		return "unknown"
	}
}

// kindFromTag converts a block tag to its Kind.
func kindFromTag(tag string) (Kind, bool) {
	switch tag {
	case TagMatrix:
		return KindMatrix, true
	case TagSample:
		return KindSample, true
	case TagRngState:
		return KindRngState, true
	default:
		return KindUnknown, false
	}
}

// Mode is a set of file capabilities requested at open time.
type Mode uint

// Mode bits. They combine freely; see File.Open for the resulting
// dispositions.
const (
	ModeNull  Mode = 0
	ModeRead  Mode = 1 << 0
	ModeWrite Mode = 1 << 1
	// ModeAppend preserves existing content and writes at the end.
	ModeAppend Mode = 1 << 2

	modeAll = ModeRead | ModeWrite | ModeAppend
)

// Has reports whether all bits of flag are set.
func (m Mode) Has(flag Mode) bool {
	return m&flag == flag && flag != 0
}

// CanRead reports whether the mode allows parsing.
func (m Mode) CanRead() bool {
	return m.Has(ModeRead)
}

// CanWrite reports whether the mode allows saving.
func (m Mode) CanWrite() bool {
	return m.Has(ModeWrite) || m.Has(ModeAppend)
}

// String renders the mode as "read|write".
func (m Mode) String() string {
	if m == ModeNull {
		return "null"
	}
	var parts []string
	if m.Has(ModeRead) {
		parts = append(parts, "read")
	}
	if m.Has(ModeWrite) {
		parts = append(parts, "write")
	}
	if m.Has(ModeAppend) {
		parts = append(parts, "append")
	}
	if m&^modeAll != 0 {
		parts = append(parts, "invalid")
	}
	return strings.Join(parts, "|")
}

// validName reports whether name can be written in a begin marker.
func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, " \t\r\n")
}
