package enrichment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/jonathan/career-roadmap/internal/types"
)

// exampleCount is how many enriched entries Result carries for display.
const exampleCount = 3

// Result summarizes an EnrichFile run.
type Result struct {
	Path          string
	BackupPath    string
	BackupCreated bool
	Updated       int
	Examples      []types.Occupation
}

// BackupPath returns where the unenriched copy of path is kept.
func BackupPath(path string) string {
	return path + ".bak"
}

// EnrichFile enriches the careers file at path in place. The first run moves
// the original to BackupPath; every run reads from the backup, so repeated
// runs produce the same file. Fields other than description, education and
// tasks are preserved, as is a {"careers": [...]} wrapper.
func EnrichFile(path string, log zerolog.Logger) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("careers file not found at %s: %w", path, err)
	}

	res := &Result{Path: path, BackupPath: BackupPath(path)}
	if _, err := os.Stat(res.BackupPath); err == nil {
		log.Info().Str("backup", res.BackupPath).Msg("backup already exists")
	} else if errors.Is(err, os.ErrNotExist) {
		if err := os.Rename(path, res.BackupPath); err != nil {
			return nil, fmt.Errorf("failed to back up %s: %w", path, err)
		}
		res.BackupCreated = true
		log.Info().Str("backup", res.BackupPath).Msg("backed up original careers file")
	} else {
		return nil, fmt.Errorf("failed to stat backup %s: %w", res.BackupPath, err)
	}

	data, err := os.ReadFile(res.BackupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", res.BackupPath, err)
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}

	for i, raw := range doc.entries {
		updated, occ, err := enrichEntry(raw)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		doc.entries[i] = updated
		res.Updated++
		if len(res.Examples) < exampleCount {
			res.Examples = append(res.Examples, occ)
		}
	}

	out, err := doc.encode()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Info().Int("updated", res.Updated).Str("path", path).Msg("enriched careers")
	return res, nil
}

// document keeps the top-level shape of a careers file.
type document struct {
	wrapper map[string]json.RawMessage
	entries []map[string]json.RawMessage
}

func decodeDocument(data []byte) (*document, error) {
	var list []map[string]json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		return &document{entries: list}, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("unexpected data format in careers file: %w", err)
	}
	if raw, ok := obj["careers"]; ok {
		if err := json.Unmarshal(raw, &list); err == nil {
			return &document{wrapper: obj, entries: list}, nil
		}
	}
	return &document{entries: []map[string]json.RawMessage{obj}}, nil
}

func (d *document) encode() ([]byte, error) {
	var v any = d.entries
	if d.wrapper != nil {
		careers, err := json.Marshal(d.entries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal careers: %w", err)
		}
		d.wrapper["careers"] = careers
		v = d.wrapper
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal careers: %w", err)
	}
	return buf.Bytes(), nil
}

// entryFields are the keys enrichment reads.
type entryFields struct {
	Career      string   `json:"career"`
	Title       string   `json:"title"`
	Skills      []any    `json:"skills"`
	Education   []string `json:"education"`
	Description string   `json:"description"`
}

func enrichEntry(raw map[string]json.RawMessage) (map[string]json.RawMessage, types.Occupation, error) {
	var f entryFields
	if raw == nil {
		raw = make(map[string]json.RawMessage)
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, types.Occupation{}, err
	}
	if err := json.Unmarshal(buf, &f); err != nil {
		return nil, types.Occupation{}, fmt.Errorf("invalid career entry: %w", err)
	}

	name := f.Career
	if name == "" {
		name = f.Title
	}
	if name == "" {
		name = "unknown"
	}
	occ := Enrich(types.Occupation{
		Name:        name,
		Skills:      stringify(f.Skills),
		Education:   f.Education,
		Description: f.Description,
	})

	for key, value := range map[string]any{
		"description": occ.Description,
		"education":   occ.Education,
		"tasks":       occ.Tasks,
	} {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, types.Occupation{}, err
		}
		raw[key] = encoded
	}
	return raw, occ, nil
}

func stringify(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		switch s := v.(type) {
		case nil:
		case string:
			out = append(out, s)
		default:
			out = append(out, fmt.Sprint(s))
		}
	}
	return out
}
