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


package core

import "fmt"

// Normalize fills defaults for a raw scraped regulation so downstream code
// never has to deal with absent fields. It is applied once at the ingestion
// boundary.
func (r *Regulation) Normalize() {
	if r.Title == "" {
		r.Title = "Title 21"
	}
}

// ValidateRegulation validates a Regulation according to domain rules.
//
// Validation rules:
//   - Description must not be empty
//   - Status must be one of the enumerated values
//   - StatusReason must be set whenever Status is not StatusUnknown
//
// NOT validated (populated elsewhere):
//   - ID (0 is valid before the record is persisted)
//   - Chapter/Subchapter/Part/SectionRange/URL (may legitimately be empty)
func ValidateRegulation(r *Regulation) error {
	if r == nil {
		return fmt.Errorf("%w: regulation is nil", ErrInvalidRegulation)
	}

	if r.Description == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRegulation, ErrEmptyDescription)
	}

	if err := ValidateStatus(r.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRegulation, err)
	}

	if r.Status != StatusUnknown && r.StatusReason == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRegulation, ErrMissingStatusReason)
	}

	return nil
}

// ValidateStatus validates that a RegulationStatus has a valid value.
func ValidateStatus(status RegulationStatus) error {
	if status < StatusUnknown || status > StatusAdministrative {
		return fmt.Errorf("%w: value %d", ErrInvalidStatus, status)
	}
	return nil
}

// ValidateChangeRecord validates a ChangeRecord according to domain rules.
func ValidateChangeRecord(c *ChangeRecord) error {
	if c == nil {
		return fmt.Errorf("%w: change record is nil", ErrInvalidChangeRecord)
	}

	if c.ChangeType != ChangeAdded && c.ChangeType != ChangeUpdated {
		return fmt.Errorf("%w: %w: value %d", ErrInvalidChangeRecord, ErrInvalidChangeType, c.ChangeType)
	}

	if c.FieldName == "" {
		return fmt.Errorf("%w: field name cannot be empty", ErrInvalidChangeRecord)
	}

	return nil
}
