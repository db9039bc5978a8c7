package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/born-ml/latan/internal/asciifile"
)

// watch prints the object listing of a file, then again after every change,
// until ctx is canceled.
func (a *app) watch(ctx context.Context, args []string) error {
	fs := a.flagSet("watch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: watch needs exactly one file", errUsage)
	}
	path := filepath.Clean(fs.Arg(0))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()
	// Watch the directory: editors and writers often replace the file.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	f := asciifile.New(asciifile.WithLogger(a.logger), asciifile.WithPrecision(a.cfg.Precision))
	defer func() {
		_ = f.Close()
	}()

	a.reload(f, path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || (!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create)) {
				continue
			}
			a.logger.Debug("file changed", "file", path, "op", ev.Op.String())
			a.reload(f, path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", "err", err)
		}
	}
}

// reload reopens path in f and prints its objects. A file caught in the
// middle of a write may be malformed; that is logged and retried on the
// next change.
func (a *app) reload(f *asciifile.File, path string) {
	if err := f.Close(); err != nil {
		a.logger.Warn("failed to close", "file", path, "err", err)
	}
	if err := f.Open(path, asciifile.ModeRead); err != nil {
		a.logger.Warn("failed to open", "file", path, "err", err)
		return
	}
	names, err := f.Names()
	if err != nil {
		if errors.Is(err, asciifile.ErrMalformedFile) {
			a.logger.Info("file not readable yet", "file", path, "err", err)
		} else {
			a.logger.Warn("failed to load", "file", path, "err", err)
		}
		return
	}
	fmt.Fprintf(a.stdout, "%s: %d objects\n", path, len(names))
	for _, name := range names {
		obj, _ := f.Table().Get(name)
		fmt.Fprintf(a.stdout, "  %-22s %s\n", name, obj.Describe())
	}
}
