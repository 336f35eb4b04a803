package monitor

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/young1lin/powerline-footer/internal/logging"
	"github.com/young1lin/powerline-footer/internal/statusline/renderctx"
)

var watchLog = logging.ForComponent(logging.CompWatch)

// ErrNotRepository is returned when no git directory encloses a path.
var ErrNotRepository = errors.New("not inside a git repository")

// DefaultDebounce coalesces bursts of git writes (lock file, rename, index
// rewrite) into one invalidation.
const DefaultDebounce = 100 * time.Millisecond

// Invalidator drops cached resources. *renderctx.Sources implements it.
type Invalidator interface {
	Invalidate(kinds ...renderctx.Kind)
}

// ResolveGitDir walks up from dir to the enclosing repository and returns
// its git directory. A ".git" file (worktrees, submodules) is followed.
func ResolveGitDir(fsys FileSystem, dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ".git")
		if info, err := fsys.Stat(candidate); err == nil {
			if info.IsDir() {
				return candidate, nil
			}
			return readGitFile(fsys, candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotRepository
		}
		dir = parent
	}
}

func readGitFile(fsys FileSystem, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	line, _, _ := bytes.Cut(data, []byte("\n"))
	target, ok := strings.CutPrefix(strings.TrimSpace(string(line)), "gitdir:")
	if !ok {
		return "", fmt.Errorf("%s: missing gitdir line", path)
	}
	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), nil
}

// kindsFor maps a changed file in the git directory to the resources it
// affects.
func kindsFor(name string) []renderctx.Kind {
	switch filepath.Base(name) {
	case "HEAD":
		return []renderctx.Kind{renderctx.KindBranch, renderctx.KindDirty}
	case "index":
		return []renderctx.Kind{renderctx.KindDirty}
	}
	return nil
}

// GitWatcher invalidates git resources when the repository changes outside
// the agent (another terminal, an IDE).
type GitWatcher struct {
	fsw      *fsnotify.Watcher
	gitDir   string
	target   Invalidator
	debounce time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// WatchGit starts watching the repository enclosing dir. Returns
// ErrNotRepository outside a repository.
func WatchGit(dir string, target Invalidator, debounce time.Duration) (*GitWatcher, error) {
	gitDir, err := ResolveGitDir(OSFileSystem{}, dir)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(gitDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", gitDir, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &GitWatcher{
		fsw:      fsw,
		gitDir:   gitDir,
		target:   target,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	watchLog.Debug("watching git dir", "dir", gitDir)
	return w, nil
}

// GitDir returns the watched directory.
func (w *GitWatcher) GitDir() string { return w.gitDir }

func (w *GitWatcher) loop() {
	defer w.wg.Done()

	pending := make(map[renderctx.Kind]bool)
	var fire <-chan time.Time
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			kinds := kindsFor(ev.Name)
			if len(kinds) == 0 {
				continue
			}
			for _, k := range kinds {
				pending[k] = true
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			kinds := make([]renderctx.Kind, 0, len(pending))
			for k := range pending {
				kinds = append(kinds, k)
				delete(pending, k)
			}
			watchLog.Debug("repository changed", "kinds", fmt.Sprint(kinds))
			w.target.Invalidate(kinds...)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			watchLog.Warn("watch error", "err", err)
		}
	}
}

// Close stops the watcher and waits for its goroutine.
func (w *GitWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}
