// Copyright 2025 dsaini64
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dsaini64/regulations/core"
)

// StaticSupplier serves a fixed in-memory regulation set.
type StaticSupplier struct {
	records []core.Regulation
}

// NewStaticSupplier creates a supplier over the given records. The
// records are copied; later mutation of the arguments has no effect.
func NewStaticSupplier(records []*core.Regulation) *StaticSupplier {
	copied := make([]core.Regulation, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		copied = append(copied, *rec)
	}
	return &StaticSupplier{records: copied}
}

// FetchRegulations returns a fresh copy of the wrapped set.
func (s *StaticSupplier) FetchRegulations(ctx context.Context) ([]*core.Regulation, error) {
	out := make([]*core.Regulation, len(s.records))
	for i := range s.records {
		rec := s.records[i]
		out[i] = &rec
	}
	return out, nil
}

// fileRegulation is the JSON shape accepted by FileSupplier. Status is
// a display string ("Prohibited", "Requires Compliance", ...); anything
// unrecognized maps to unknown and gets classified during refresh.
type fileRegulation struct {
	Title        string `json:"title"`
	Chapter      string `json:"chapter"`
	Subchapter   string `json:"subchapter"`
	Part         string `json:"part"`
	SectionRange string `json:"section_range"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	Status       string `json:"status"`
	StatusReason string `json:"status_reason"`
}

// FileSupplier loads a regulation set from a JSON file: an array of
// objects in the fileRegulation shape.
type FileSupplier struct {
	path string
}

// NewFileSupplier creates a supplier reading from the given path. The
// file is re-read on every fetch, so edits are picked up by the next
// refresh.
func NewFileSupplier(path string) *FileSupplier {
	return &FileSupplier{path: path}
}

// FetchRegulations reads and decodes the file.
func (s *FileSupplier) FetchRegulations(ctx context.Context) ([]*core.Regulation, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read regulation file: %w", err)
	}

	var raw []fileRegulation
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode regulation file %s: %w", s.path, err)
	}

	records := make([]*core.Regulation, 0, len(raw))
	for _, fr := range raw {
		rec := &core.Regulation{
			Title:        fr.Title,
			Chapter:      fr.Chapter,
			Subchapter:   fr.Subchapter,
			Part:         fr.Part,
			SectionRange: fr.SectionRange,
			Description:  fr.Description,
			URL:          fr.URL,
			Status:       core.ParseStatus(fr.Status),
			StatusReason: fr.StatusReason,
		}
		if rec.Status == core.StatusUnknown {
			// Reason follows status; an unknown status is re-derived
			// on refresh together with its reason.
			rec.StatusReason = ""
		}
		records = append(records, rec)
	}
	return records, nil
}
