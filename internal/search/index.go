// Package search finds past conversation messages across session logs.
package search

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/young1lin/powerline-footer/internal/logging"
	"github.com/young1lin/powerline-footer/internal/parser"
)

var searchLog = logging.ForComponent(logging.CompSearch)

// DefaultWorkers bounds how many logs are read concurrently.
const DefaultWorkers = 8

// Message is one searchable chat message.
type Message struct {
	SessionID string
	Path      string
	Cwd       string
	Role      string
	Text      string
	When      time.Time
}

// Load reads every log in paths. Unreadable files are skipped; only context
// cancellation aborts the load. Messages keep the order of paths.
func Load(ctx context.Context, paths []string, workers int) ([]Message, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	perFile := make([][]Message, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			msgs, err := loadFile(ctx, path)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				searchLog.Debug("skip session log", "path", path, "err", err)
				return nil
			}
			perFile[i] = msgs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Message
	for _, msgs := range perFile {
		all = append(all, msgs...)
	}
	return all, nil
}

func loadFile(ctx context.Context, path string) ([]Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		msgs      []Message
		sessionID string
		cwd       string
	)
	err = parser.Scan(f, func(e *parser.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.Type == parser.TypeSession {
			sessionID, cwd = e.ID, e.Cwd
			return nil
		}
		if e.Message == nil || (e.Type != parser.TypeUser && e.Type != parser.TypeAssistant) {
			return nil
		}
		text := e.Message.Text()
		if text == "" {
			return nil
		}
		when, _ := time.Parse(time.RFC3339Nano, e.Timestamp)
		msgs = append(msgs, Message{
			SessionID: sessionID,
			Path:      path,
			Cwd:       cwd,
			Role:      e.Type,
			Text:      text,
			When:      when,
		})
		return nil
	})
	return msgs, err
}
