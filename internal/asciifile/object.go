package asciifile

import (
	"fmt"

	"github.com/born-ml/latan/internal/rng"
	"github.com/born-ml/latan/internal/tensor"
)

// Object is one decoded entry of a container. Exactly one payload field is
// set, the one matching Kind.
type Object struct {
	Kind   Kind
	Matrix *tensor.Matrix
	Sample *tensor.MatSample
	State  *rng.State
}

// MatrixObject wraps a matrix.
func MatrixObject(m *tensor.Matrix) Object {
	return Object{Kind: KindMatrix, Matrix: m}
}

// SampleObject wraps a matrix sample.
func SampleObject(s *tensor.MatSample) Object {
	return Object{Kind: KindSample, Sample: s}
}

// RngStateObject wraps a generator state.
func RngStateObject(s rng.State) Object {
	return Object{Kind: KindRngState, State: &s}
}

// Validate checks that the payload matches the kind.
func (o Object) Validate() error {
	var ok bool
	switch o.Kind {
	case KindMatrix:
		ok = o.Matrix != nil
	case KindSample:
		ok = o.Sample != nil
	case KindRngState:
		ok = o.State != nil && !o.State.IsZero()
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrKindMismatch, o.Kind)
	}
	if !ok {
		return fmt.Errorf("%w: %s object without payload", ErrKindMismatch, o.Kind)
	}
	return nil
}

// Describe returns a one-line summary such as "matrix 2x3" or
// "sample 4x1 N=100".
func (o Object) Describe() string {
	switch o.Kind {
	case KindMatrix:
		return fmt.Sprintf("matrix %s", o.Matrix.Shape())
	case KindSample:
		return fmt.Sprintf("sample %s N=%d", o.Sample.Shape(), o.Sample.Size())
	case KindRngState:
		return fmt.Sprintf("rng state (%d bytes)", len(o.State.Bytes()))
	default:
		return o.Kind.String()
	}
}
