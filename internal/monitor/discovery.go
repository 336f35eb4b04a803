// Package monitor watches the filesystem on behalf of the footer: the git
// directory of the working tree, and the host's session logs.
package monitor

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNoSessionsFound is returned when no session log exists.
var ErrNoSessionsFound = errors.New("no session logs found")

// SessionFile is a session log on disk.
type SessionFile struct {
	ID      string
	Path    string
	ModTime time.Time
	Size    int64
}

// ListSessions returns every *.jsonl file under dir, newest first.
func ListSessions(fsys FileSystem, dir string) ([]SessionFile, error) {
	var files []SessionFile
	err := fsys.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(path, ".jsonl") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, SessionFile{
			ID:      strings.TrimSuffix(filepath.Base(path), ".jsonl"),
			Path:    path,
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// LatestSession returns the most recently modified session log.
func LatestSession(fsys FileSystem, dir string) (SessionFile, error) {
	files, err := ListSessions(fsys, dir)
	if err != nil {
		return SessionFile{}, err
	}
	if len(files) == 0 {
		return SessionFile{}, ErrNoSessionsFound
	}
	return files[0], nil
}
