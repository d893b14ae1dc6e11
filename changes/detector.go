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


// Package changes detects differences between successive regulation sets.
//
// Regulations carry fresh IDs after every refresh, so matching between the
// previous and the incoming set uses the lookup key (part plus description
// prefix) instead. The detector reports field-level updates and newly added
// regulations; disappearance from the incoming set is not reported, since an
// absent section is indistinguishable from an incomplete crawl.
package changes

import (
	"github.com/dsaini64/regulations/core"
)

// Values stored in change records are clamped to keep the log compact.
const maxValueLen = 500

// Fields compared between generations, in reporting order.
var trackedFields = []string{"description", "status", "url", "section_range"}

// Detector computes change records between regulation generations.
type Detector struct{}

// NewDetector creates a Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Snapshot builds a lookup-key map of a regulation set, used as the
// "previous generation" input to Detect. When two records share a lookup
// key, the later one wins.
func (d *Detector) Snapshot(records []*core.Regulation) map[string]*core.Regulation {
	snapshot := make(map[string]*core.Regulation, len(records))
	for _, r := range records {
		snapshot[r.LookupKey()] = r
	}
	return snapshot
}

// Detect compares the incoming set against a previous-generation snapshot
// and returns the change records, in incoming order. Incoming records must
// already have their post-insert IDs so the change records reference them.
func (d *Detector) Detect(previous map[string]*core.Regulation, incoming []*core.Regulation) []*core.ChangeRecord {
	var detected []*core.ChangeRecord

	for _, reg := range incoming {
		old, ok := previous[reg.LookupKey()]
		if !ok {
			detected = append(detected, &core.ChangeRecord{
				RegulationId: reg.Id,
				ChangeType:   core.ChangeAdded,
				FieldName:    "regulation",
				OldValue:     "",
				NewValue:     reg.Part + ": " + core.Truncate(reg.Description, 100),
			})
			continue
		}

		for _, field := range trackedFields {
			oldVal := fieldValue(old, field)
			newVal := fieldValue(reg, field)
			if oldVal == newVal {
				continue
			}
			detected = append(detected, &core.ChangeRecord{
				RegulationId: reg.Id,
				ChangeType:   core.ChangeUpdated,
				FieldName:    field,
				OldValue:     core.Truncate(oldVal, maxValueLen),
				NewValue:     core.Truncate(newVal, maxValueLen),
			})
		}
	}

	return detected
}

func fieldValue(r *core.Regulation, field string) string {
	switch field {
	case "description":
		return r.Description
	case "status":
		return r.Status.String()
	case "url":
		return r.URL
	case "section_range":
		return r.SectionRange
	default:
		return ""
	}
}
