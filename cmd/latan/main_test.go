package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/latan/internal/asciifile"
	"github.com/born-ml/latan/internal/tensor"
)

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append([]string{"-config", ""}, args...), &stdout, &stderr)
	return stdout.String(), err
}

// fixture writes a container with a matrix and a sample.
func fixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.dat")

	m, err := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	c, _ := tensor.FromData(1, []float64{1})
	v0, _ := tensor.FromData(1, []float64{0.5})
	v1, _ := tensor.FromData(1, []float64{1.5})
	s, err := tensor.SampleFrom(c, []*tensor.Matrix{v0, v1})
	require.NoError(t, err)

	f, err := asciifile.Open(path, asciifile.ModeWrite)
	require.NoError(t, err)
	require.NoError(t, f.SaveMatrix(m, "corr"))
	require.NoError(t, f.SaveSample(s, "mass"))
	require.NoError(t, f.Close())
	return path
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "latan "+version+"\n", out)
}

func TestUsageErrors(t *testing.T) {
	_, err := runCLI(t)
	require.ErrorIs(t, err, errUsage)

	_, err = runCLI(t, "frobnicate")
	require.ErrorIs(t, err, errUsage)

	_, err = runCLI(t, "ls")
	require.ErrorIs(t, err, errUsage)

	_, err = runCLI(t, "-log-level", "loud", "version")
	require.Error(t, err)
}

func TestLs(t *testing.T) {
	path := fixture(t)
	out, err := runCLI(t, "ls", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "corr")
	assert.Contains(t, lines[0], "matrix 2x2")
	assert.Contains(t, lines[1], "mass")
	assert.Contains(t, lines[1], "sample 1x1 N=2")
}

func TestLsManyFiles(t *testing.T) {
	a, b := fixture(t), fixture(t)
	out, err := runCLI(t, "ls", "-j", "2", a, b)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, a+":"), strings.Index(out, b+":"), "output keeps argument order")
	assert.Equal(t, 2, strings.Count(out, "corr"))
}

func TestLsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dat")
	require.NoError(t, os.WriteFile(path, []byte("#L latan_begin mat m\n1\n"), 0o600))
	_, err := runCLI(t, "ls", path)
	require.ErrorIs(t, err, asciifile.ErrMalformedFile)
}

func TestCatText(t *testing.T) {
	path := fixture(t)
	out, err := runCLI(t, "cat", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "#L latan_begin mat corr\n2\n"), out)
	assert.Contains(t, out, "#L latan_end mat\n")
}

func TestCatYAML(t *testing.T) {
	path := fixture(t)
	out, err := runCLI(t, "cat", "-format", "yaml", path, "mass")
	require.NoError(t, err)

	var got yamlObject
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "mass", got.Name)
	assert.Equal(t, "rs_sample", got.Kind)
	assert.Equal(t, [][]float64{{1}}, got.Central)
	assert.Equal(t, [][][]float64{{{0.5}}, {{1.5}}}, got.Samples)

	_, err = runCLI(t, "cat", "-format", "xml", path)
	require.ErrorIs(t, err, errUsage)

	_, err = runCLI(t, "cat", path, "nope")
	require.ErrorIs(t, err, asciifile.ErrObjectNotFound)
}

func TestStat(t *testing.T) {
	path := fixture(t)
	out, err := runCLI(t, "stat", path, "mass")
	require.NoError(t, err)
	assert.Contains(t, out, "size 2, shape 1x1")
	assert.Contains(t, out, "[0,0] central 1.000000e+00 mean 1.000000e+00 err 7.071068e-01")

	_, err = runCLI(t, "stat", path, "corr")
	require.ErrorIs(t, err, asciifile.ErrKindMismatch)
}

func TestRng(t *testing.T) {
	path := fixture(t)
	_, err := runCLI(t, "rng", "-seed", "42", "-name", "seed42", path)
	require.NoError(t, err)

	out, err := runCLI(t, "ls", path)
	require.NoError(t, err)
	assert.Contains(t, out, "seed42")
	assert.Contains(t, out, "corr", "append keeps existing objects")
}

func TestWatch(t *testing.T) {
	path := fixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, []string{"-config", "", "watch", path}, &stdout, &stderr)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "2 objects")
	}, 5*time.Second, 20*time.Millisecond)

	f, err := asciifile.Open(path, asciifile.ModeAppend)
	require.NoError(t, err)
	require.NoError(t, f.SaveMatrix(tensor.MustMatrix(1, 1), "late"))
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "late")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
