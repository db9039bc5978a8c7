package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/latan/internal/asciifile"
	"github.com/born-ml/latan/internal/config"
	"github.com/born-ml/latan/internal/parallel"
	"github.com/born-ml/latan/internal/rng"
	"github.com/born-ml/latan/internal/tensor"
)

// app carries what every command needs.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (a *app) open(path string, mode asciifile.Mode) (*asciifile.File, error) {
	return asciifile.Open(path, mode,
		asciifile.WithLogger(a.logger),
		asciifile.WithPrecision(a.cfg.Precision),
	)
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// ls lists the objects of one or more files, inspecting them concurrently.
func (a *app) ls(ctx context.Context, args []string) error {
	fs := a.flagSet("ls")
	workers := fs.Int("j", a.cfg.Workers, "Files inspected concurrently (0: one per CPU)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	files := fs.Args()
	if len(files) == 0 {
		return fmt.Errorf("%w: ls needs at least one file", errUsage)
	}

	pcfg := parallel.DefaultConfig()
	if *workers > 0 {
		pcfg.NumWorkers = *workers
		pcfg.Enabled = *workers > 1
	}

	listings := make([]string, len(files))
	err := parallel.ForEach(ctx, len(files), func(_ context.Context, i int) error {
		out, err := a.listing(files[i])
		if err != nil {
			return err
		}
		listings[i] = out
		return nil
	}, pcfg)
	if err != nil {
		return err
	}

	for i, out := range listings {
		if len(files) > 1 {
			if _, err := fmt.Fprintf(a.stdout, "%s:\n", files[i]); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(a.stdout, out); err != nil {
			return err
		}
	}
	return nil
}

// listing returns one "name description" line per object of path.
func (a *app) listing(path string) (string, error) {
	f, err := a.open(path, asciifile.ModeRead)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := f.Load(""); err != nil {
		return "", err
	}
	var b strings.Builder
	for name, obj := range f.Table().All() {
		fmt.Fprintf(&b, "%-24s %s\n", name, obj.Describe())
	}
	return b.String(), nil
}

// yamlObject is the YAML rendering of a stored object.
type yamlObject struct {
	Name    string        `yaml:"name"`
	Kind    string        `yaml:"kind"`
	Matrix  [][]float64   `yaml:"matrix,omitempty"`
	Central [][]float64   `yaml:"central,omitempty"`
	Samples [][][]float64 `yaml:"samples,omitempty"`
	State   string        `yaml:"state,omitempty"`
}

func matrixRows(m *tensor.Matrix) [][]float64 {
	rows := make([][]float64, m.Rows())
	for i := range rows {
		rows[i] = append([]float64(nil), m.Row(i)...)
	}
	return rows
}

func toYAML(name string, obj asciifile.Object) yamlObject {
	out := yamlObject{Name: name, Kind: obj.Kind.Tag()}
	switch obj.Kind {
	case asciifile.KindMatrix:
		out.Matrix = matrixRows(obj.Matrix)
	case asciifile.KindSample:
		out.Central = matrixRows(obj.Sample.Central())
		for _, m := range obj.Sample.Samples() {
			out.Samples = append(out.Samples, matrixRows(m))
		}
	case asciifile.KindRngState:
		out.State = obj.State.String()
	}
	return out
}

// cat prints one object, the first of the file when no name is given.
func (a *app) cat(args []string) error {
	fs := a.flagSet("cat")
	format := fs.String("format", "text", "Output format (text, yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return fmt.Errorf("%w: cat needs a file and an optional object name", errUsage)
	}

	f, err := a.open(fs.Arg(0), asciifile.ModeRead)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	name, err := f.Load(fs.Arg(1))
	if err != nil {
		return err
	}
	obj, err := f.Get(name)
	if err != nil {
		return err
	}

	switch *format {
	case "text":
		return asciifile.Encode(a.stdout, name, obj, a.cfg.Precision)
	case "yaml":
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(toYAML(name, obj)); err != nil {
			return fmt.Errorf("failed to encode %q: %w", name, err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, *format)
	}
}

// stat prints central value, mean and standard deviation of a sample.
func (a *app) stat(args []string) error {
	fs := a.flagSet("stat")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return fmt.Errorf("%w: stat needs a file and an optional sample name", errUsage)
	}

	f, err := a.open(fs.Arg(0), asciifile.ModeRead)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	s, err := f.ReadSample(fs.Arg(1))
	if err != nil {
		return err
	}

	central, mean, sd := s.Central(), s.Mean(), s.StdDev()
	if _, err := fmt.Fprintf(a.stdout, "size %d, shape %s\n", s.Size(), s.Shape()); err != nil {
		return err
	}
	for i := 0; i < central.Rows(); i++ {
		for j := 0; j < central.Cols(); j++ {
			_, err := fmt.Fprintf(a.stdout, "[%d,%d] central %.6e mean %.6e err %.6e\n",
				i, j, central.At(i, j), mean.At(i, j), sd.At(i, j))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// rng appends the state of a freshly seeded generator.
func (a *app) rng(args []string) error {
	fs := a.flagSet("rng")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "Generator seed") //nolint:gosec // G115: any bit pattern is a valid seed
	name := fs.String("name", "rng_state", "Object name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: rng needs exactly one file", errUsage)
	}

	f, err := a.open(fs.Arg(0), asciifile.ModeAppend)
	if err != nil {
		return err
	}
	if err := f.SaveRngState(rng.New(*seed).State(), *name); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.logger.Info("saved generator state", "file", fs.Arg(0), "name", *name, "seed", *seed)
	return nil
}
