package search

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/sahilm/fuzzy"
)

// Mode selects the matching strategy.
type Mode int

const (
	// Substring matches the query case-insensitively; more hits rank higher.
	Substring Mode = iota
	// Fuzzy tolerates typos and skipped characters.
	Fuzzy
)

// SnippetWindow is the context kept on each side of a match.
const SnippetWindow = 40

// fuzzyPrefix bounds how much of a message fuzzy matching looks at.
const fuzzyPrefix = 500

// Options tune a query.
type Options struct {
	Mode  Mode
	Limit int
	// Role keeps only "user" or "assistant" messages when set.
	Role string
}

// Result is one ranked hit.
type Result struct {
	Message
	Score   int
	Snippet string
}

// Age describes when the message was written, relative to now.
func (r Result) Age(now time.Time) string {
	if r.When.IsZero() {
		return "unknown"
	}
	return humanize.RelTime(r.When, now, "ago", "from now")
}

// Search ranks messages against query. An empty query matches nothing.
func Search(msgs []Message, query string, opts Options) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	pool := msgs
	if opts.Role != "" {
		pool = make([]Message, 0, len(msgs))
		for _, m := range msgs {
			if m.Role == opts.Role {
				pool = append(pool, m)
			}
		}
	}

	var results []Result
	if opts.Mode == Fuzzy {
		results = fuzzySearch(pool, query)
	} else {
		results = substringSearch(pool, query)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].When.After(results[j].When)
	})
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

func substringSearch(msgs []Message, query string) []Result {
	q := strings.ToLower(query)
	var results []Result
	for _, m := range msgs {
		n := strings.Count(strings.ToLower(m.Text), q)
		if n == 0 {
			continue
		}
		results = append(results, Result{
			Message: m,
			Score:   n * 10,
			Snippet: Snippet(m.Text, query, SnippetWindow),
		})
	}
	return results
}

type messageSource []Message

func (s messageSource) String(i int) string { return prefix(s[i].Text, fuzzyPrefix) }
func (s messageSource) Len() int            { return len(s) }

func fuzzySearch(msgs []Message, query string) []Result {
	matches := fuzzy.FindFrom(query, messageSource(msgs))
	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		msg := msgs[m.Index]
		results = append(results, Result{
			Message: msg,
			Score:   m.Score,
			Snippet: Snippet(msg.Text, query, SnippetWindow),
		})
	}
	return results
}

func prefix(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Snippet returns text around the first case-insensitive match of query,
// widened to word boundaries and flattened to one line. Without a match the
// start of the text is returned.
func Snippet(text, query string, window int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	lower := []rune(strings.ToLower(text))
	q := []rune(strings.ToLower(query))

	idx := indexRunes(lower, q)
	if idx < 0 || len(lower) != len(runes) {
		if len(runes) > window*2 {
			return string(runes[:window*2]) + "..."
		}
		return text
	}

	start := max(idx-window, 0)
	end := min(idx+len(q)+window, len(runes))
	for start > 0 && runes[start-1] != ' ' {
		start--
	}
	for end < len(runes) && runes[end] != ' ' {
		end++
	}

	snippet := strings.TrimSpace(string(runes[start:end]))
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(runes) {
		snippet += "..."
	}
	return snippet
}

func indexRunes(s, sub []rune) int {
	if len(sub) == 0 {
		return -1
	}
outer:
	for i := 0; i+len(sub) <= len(s); i++ {
		for j := range sub {
			if s[i+j] != sub[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}
