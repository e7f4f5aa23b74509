package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/procfairings/internal/logger"
	"github.com/Faultbox/procfairings/internal/payload"
	"github.com/Faultbox/procfairings/pkg/fairing"
)

func cmdWatch(args []string, out io.Writer) error {
	s, err := open(flag.NewFlagSet("watch", flag.ContinueOnError), args, true)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return s.watch(ctx, w, s.scenePath, out)
}

// watch refits the fairing every time the scene file changes, until ctx is
// done. Editors often save by rename, so the directory is watched rather
// than the file.
func (s *session) watch(ctx context.Context, w *fsnotify.Watcher, path string, out io.Writer) error {
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	s.report(out, s.recalculate())
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher", zap.Error(err))
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := s.reload(path); err != nil {
				logger.Warn("scene not reloaded", zap.String("path", path), zap.Error(err))
				continue
			}
			s.report(out, s.recalculate())
		}
	}
}

func (s *session) reload(path string) error {
	doc, err := payload.Load(path)
	if err != nil {
		return err
	}
	s.doc = doc
	for _, e := range multierr.Errors(doc.Apply(s.asm)) {
		logger.Warn("payload item skipped", zap.Error(e))
	}
	return nil
}

func (s *session) report(out io.Writer, res *fairing.Result) {
	env := res.Envelope
	fmt.Fprintf(out, "max %.3fm, cylinder %.3f..%.3f, rebuilt %d/%d panels, %s\n",
		env.MaxRad*2, env.CylStart, env.CylEnd, res.Rebuilt, len(res.Panels),
		fairing.FormatMass(res.TotalMass))
}
