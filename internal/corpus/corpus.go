// Package corpus persists and loads the harvested pricing corpus.
package corpus

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/djraval/redwireless-scraper/internal/model"
)

// ErrNotFound indicates the corpus file does not exist yet; run a harvest.
var ErrNotFound = eris.New("corpus: file not found")

// FileName is the default corpus file name inside the data directory.
const FileName = "final_data.json"

// Save writes the corpus as an indented JSON document, creating the parent
// directory if needed.
func Save(path string, c *model.Corpus) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "corpus: create directory for %s", path)
	}
	return WriteJSON(path, c)
}

// Load reads a corpus document from disk.
func Load(path string) (*model.Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, eris.Wrapf(ErrNotFound, "%s", path)
		}
		return nil, eris.Wrapf(err, "corpus: read %s", path)
	}

	var c model.Corpus
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrapf(err, "corpus: decode %s", path)
	}
	return &c, nil
}

// WriteJSON writes any value as an indented JSON document.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "corpus: marshal %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "corpus: write %s", path)
	}
	return nil
}
