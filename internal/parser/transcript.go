package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/young1lin/powerline-footer/internal/host"
)

// maxLineSize bounds a single log line; tool outputs can be large.
const maxLineSize = 4 * 1024 * 1024

// Summary is the result of reading a whole session log.
type Summary struct {
	Path     string
	Session  host.Session
	Messages int
	Updated  time.Time
}

// ReadSession reads a session log and accumulates its usage. Unparseable
// lines are skipped.
func ReadSession(r io.Reader) (host.Session, int, error) {
	var acc Accumulator
	err := Scan(r, func(e *Entry) error {
		acc.Add(e)
		return nil
	})
	return acc.Session(), acc.Messages(), err
}

// Scan calls fn for every parseable entry. Returning an error from fn stops
// the scan and returns that error.
func Scan(r io.Reader, fn func(*Entry) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		e, err := ParseLine(sc.Bytes())
		if err != nil || e == nil {
			continue
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan session log: %w", err)
	}
	return nil
}

type cachedSummary struct {
	modTime time.Time
	size    int64
	summary *Summary
}

var (
	summaryCacheMu sync.Mutex
	summaryCache   = make(map[string]cachedSummary)
)

// ReadSessionFile reads a session log from disk. Results are cached by
// modification time and size, so an unchanged file is parsed once.
func ReadSessionFile(path string) (*Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat session log: %w", err)
	}

	summaryCacheMu.Lock()
	c, ok := summaryCache[path]
	summaryCacheMu.Unlock()
	if ok && c.modTime.Equal(info.ModTime()) && c.size == info.Size() {
		return c.summary, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	session, n, err := ReadSession(f)
	if err != nil {
		return nil, err
	}
	s := &Summary{Path: path, Session: session, Messages: n, Updated: info.ModTime()}

	summaryCacheMu.Lock()
	summaryCache[path] = cachedSummary{modTime: info.ModTime(), size: info.Size(), summary: s}
	summaryCacheMu.Unlock()
	return s, nil
}

func clearSummaryCache() {
	summaryCacheMu.Lock()
	summaryCache = make(map[string]cachedSummary)
	summaryCacheMu.Unlock()
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
