package jsonsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/claro-core/internal/core/domain"
	"github.com/custodia-labs/claro-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ContentSource = (*Source)(nil)

// Source loads content records from a directory tree of JSON files.
// Each file holds either a single record object or an array of records.
// Files are visited in sorted path order so a load is deterministic.
type Source struct {
	dir string
}

// NewSource creates a content source rooted at dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Name identifies the source in logs and reports.
func (s *Source) Name() string {
	return "json:" + s.dir
}

// Load reads every .json file under the root. A file that is not valid
// JSON fails the whole load; structural problems inside a valid record
// are the validator's business, not the loader's.
func (s *Source) Load(ctx context.Context) ([]*domain.ContentRecord, error) {
	paths, err := s.listFiles()
	if err != nil {
		return nil, err
	}

	var records []*domain.ContentRecord
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		records = append(records, recs...)
	}
	return records, nil
}

func (s *Source) listFiles() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content dir %s: %w", s.dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// loadFile decodes one file as either a record or an array of records.
func loadFile(path string) ([]*domain.ContentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimLeftFunc(string(data), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if strings.HasPrefix(trimmed, "[") {
		var recs []*domain.ContentRecord
		if err := json.Unmarshal(data, &recs); err != nil {
			return nil, err
		}
		return recs, nil
	}

	var rec domain.ContentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return []*domain.ContentRecord{&rec}, nil
}
