package ingestion

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// table is a delimited file held in memory with its header row.
type table struct {
	header []string
	rows   [][]string
}

// readTable parses a delimited file. O*NET text files are tab-separated and
// may contain bare quotes, so quoting is relaxed.
func readTable(path string, comma rune) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &table{}, nil
		}
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\uFEFF"))
	}

	t := &table{header: header}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// column returns the index of the first header equal to one of names, or -1.
func (t *table) column(names ...string) int {
	for _, name := range names {
		for i, h := range t.header {
			if h == name {
				return i
			}
		}
	}
	return -1
}

// columnContaining returns the index of the first header containing any of
// parts, or -1.
func (t *table) columnContaining(parts ...string) int {
	for i, h := range t.header {
		for _, p := range parts {
			if strings.Contains(h, p) {
				return i
			}
		}
	}
	return -1
}

// orDefault returns idx when found, else fallback clamped into the header.
func (t *table) orDefault(idx, fallback int) int {
	if idx >= 0 {
		return idx
	}
	if fallback < 0 {
		fallback = len(t.header) + fallback
	}
	if fallback < 0 || fallback >= len(t.header) {
		return -1
	}
	return fallback
}

// rawCell returns the value at idx untouched, or "" when the row is short.
func rawCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// cell returns the cleaned value at idx, or "" when the row is short.
func cell(row []string, idx int) string {
	return cleanCell(rawCell(row, idx))
}

// cleanCell collapses whitespace runs and treats missing-value markers as empty.
func cleanCell(value string) string {
	value = strings.TrimSpace(whitespaceRun.ReplaceAllString(value, " "))
	switch strings.ToLower(value) {
	case "nan", "null", "n/a":
		return ""
	}
	return value
}

// splitAltLabels splits a pipe- or newline-separated label list.
func splitAltLabels(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.FieldsFunc(value, func(r rune) bool { return r == '|' || r == '\n' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = cleanCell(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
