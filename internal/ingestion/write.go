package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/career-roadmap/internal/schemas"
	"github.com/jonathan/career-roadmap/internal/types"
)

// Manifest describes a written careers file.
type Manifest struct {
	Timestamp string   `json:"timestamp"` // RFC3339
	Hash      string   `json:"hash"`      // SHA256 of the careers file
	Sources   []string `json:"sources,omitempty"`
	Summary   Summary  `json:"summary"`
}

// ManifestPath returns the manifest location for a careers file.
func ManifestPath(careersPath string) string {
	return careersPath + ".meta.json"
}

// WriteCareers validates occupations against the careers schema and writes
// them as an indented JSON list, followed by a manifest next to the file.
func WriteCareers(path string, occupations []types.Occupation, summary Summary, sources ...string) (*Manifest, error) {
	if occupations == nil {
		occupations = []types.Occupation{}
	}
	data, err := json.MarshalIndent(occupations, "", "  ")
	if err != nil {
		return nil, &Error{Source: path, Message: "failed to marshal careers", Cause: err}
	}
	if err := schemas.ValidateCareers(data); err != nil {
		return nil, &Error{Source: path, Message: "careers failed schema validation", Cause: err}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &Error{Source: path, Message: "failed to create output directory", Cause: err}
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, &Error{Source: path, Message: "failed to write careers", Cause: err}
	}

	sum := sha256.Sum256(data)
	manifest := &Manifest{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      hex.EncodeToString(sum[:]),
		Sources:   sources,
		Summary:   summary,
	}
	meta, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, &Error{Source: path, Message: "failed to marshal manifest", Cause: err}
	}
	if err := os.WriteFile(ManifestPath(path), meta, 0644); err != nil {
		return nil, &Error{Source: path, Message: "failed to write manifest", Cause: err}
	}
	return manifest, nil
}
