package predictor

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the bursts of events an artifact copy produces.
const reloadDebounce = 500 * time.Millisecond

// Watch reloads artifacts whenever one of the artifact files changes. The
// artifacts directory and the parent directory of every artifact are
// watched, so files given as absolute paths elsewhere are covered. It blocks
// until ctx is done.
func (s *Service) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	m, release := s.acquire()
	var dir string
	watched := map[string]bool{}
	var dirs []string
	if m != nil {
		dir = m.set.Dir
		dirs = append(dirs, dir)
		for _, a := range m.set.All() {
			if a.Path != "" {
				p := filepath.Clean(a.Path)
				watched[p] = true
				dirs = append(dirs, filepath.Dir(p))
			}
		}
	}
	release()
	if dir == "" {
		<-ctx.Done()
		return nil
	}
	if err := w.Add(dir); err != nil {
		return err
	}
	added := map[string]bool{dir: true}
	for _, d := range dirs {
		if added[d] {
			continue
		}
		added[d] = true
		if err := w.Add(d); err != nil {
			s.log.Warn().Err(err).Str("dir", d).Msg("cannot watch artifact directory")
			continue
		}
	}
	s.log.Info().Str("dir", dir).Int("dirs", len(added)).Msg("watching artifacts")

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			s.log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("artifact changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				if err := s.Reload(); err != nil {
					s.log.Error().Err(err).Msg("reload artifacts")
				}
			})
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Error().Err(err).Msg("artifact watcher")
		}
	}
}
