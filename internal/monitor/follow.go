package monitor

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/young1lin/powerline-footer/internal/host"
	"github.com/young1lin/powerline-footer/internal/parser"
)

// pollInterval backs up fsnotify on filesystems that drop events.
const pollInterval = 500 * time.Millisecond

// TailFile reads complete lines from offset and returns the offset after the
// last newline. A trailing partial line is left for the next call.
func TailFile(path string, offset int64) ([]string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, offset, err
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, offset, err
	}

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			break
		}
		offset += int64(len(line))
		lines = append(lines, line[:len(line)-1])
	}
	return lines, offset, nil
}

// Follower keeps a session snapshot current while the host appends to the
// session log.
type Follower struct {
	path     string
	onUpdate func(host.Session)
	fsw      *fsnotify.Watcher

	mu     sync.Mutex
	acc    parser.Accumulator
	offset int64

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// Follow reads the existing log and then tails it. onUpdate, which may be
// nil, is called after new entries are folded in.
func Follow(path string, onUpdate func(host.Session)) (*Follower, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	f := &Follower{
		path:     path,
		onUpdate: onUpdate,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	if _, err := f.poll(); err != nil {
		fsw.Close()
		return nil, err
	}

	f.wg.Add(1)
	go f.loop()
	return f, nil
}

// Session returns the snapshot accumulated so far.
func (f *Follower) Session() host.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.acc.Session()
}

func (f *Follower) loop() {
	defer f.wg.Done()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-f.done:
			return
		case <-ticker.C:
			f.update()
		case ev, ok := <-f.fsw.Events:
			if !ok {
				return
			}
			if ev.Name == f.path && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				f.update()
			}
		case err, ok := <-f.fsw.Errors:
			if !ok {
				return
			}
			watchLog.Warn("follow error", "path", f.path, "err", err)
		}
	}
}

func (f *Follower) update() {
	changed, err := f.poll()
	if err != nil {
		watchLog.Debug("tail failed", "path", f.path, "err", err)
		return
	}
	if changed && f.onUpdate != nil {
		f.onUpdate(f.Session())
	}
}

// poll folds any new lines into the accumulator.
func (f *Follower) poll() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines, offset, err := TailFile(f.path, f.offset)
	if err != nil {
		return false, err
	}
	f.offset = offset
	for _, line := range lines {
		e, err := parser.ParseLine([]byte(line))
		if err != nil {
			continue
		}
		f.acc.Add(e)
	}
	return len(lines) > 0, nil
}

// Close stops following.
func (f *Follower) Close() error {
	var err error
	f.once.Do(func() {
		close(f.done)
		err = f.fsw.Close()
		f.wg.Wait()
	})
	return err
}
