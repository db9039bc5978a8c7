package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/born-ml/latan/internal/config"
)

// newLogger returns a tint logger writing to w. Colors are only used when w
// is a terminal and the configuration allows them.
func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = cfg.NoColor || !isatty.IsTerminal(f.Fd())
		w = colorable.NewColorable(f)
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      cfg.Level(),
		TimeFormat: "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:    noColor,
	}))
}
