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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRegulation indicates a Regulation failed validation.
	ErrInvalidRegulation = errors.New("invalid regulation")

	// ErrInvalidChangeRecord indicates a ChangeRecord failed validation.
	ErrInvalidChangeRecord = errors.New("invalid change record")

	// ErrEmptyDescription indicates the Description field is empty.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrInvalidStatus indicates an out-of-range RegulationStatus value.
	ErrInvalidStatus = errors.New("invalid regulation status")

	// ErrMissingStatusReason indicates a classified record without a reason.
	ErrMissingStatusReason = errors.New("status reason required for classified status")

	// ErrInvalidChangeType indicates an invalid ChangeType value.
	ErrInvalidChangeType = errors.New("invalid change type")
)
