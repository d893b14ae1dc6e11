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


package storage

import (
	"github.com/dsaini64/regulations/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalRegulation serializes a Regulation to bytes.
func MarshalRegulation(record *core.Regulation) []byte {
	buf := make([]byte, core.RegulationMUS.Size(*record))
	core.RegulationMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalRegulation deserializes a Regulation from bytes.
func UnmarshalRegulation(data []byte) (*core.Regulation, error) {
	record, _, err := core.RegulationMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalChangeRecord serializes a ChangeRecord to bytes.
func MarshalChangeRecord(record *core.ChangeRecord) []byte {
	buf := make([]byte, core.ChangeRecordMUS.Size(*record))
	core.ChangeRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalChangeRecord deserializes a ChangeRecord from bytes.
func UnmarshalChangeRecord(data []byte) (*core.ChangeRecord, error) {
	record, _, err := core.ChangeRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalIndexSnapshot serializes an IndexSnapshot to bytes.
func MarshalIndexSnapshot(snapshot *core.IndexSnapshot) []byte {
	buf := make([]byte, core.IndexSnapshotMUS.Size(*snapshot))
	core.IndexSnapshotMUS.Marshal(*snapshot, buf)
	return buf
}

// UnmarshalIndexSnapshot deserializes an IndexSnapshot from bytes.
func UnmarshalIndexSnapshot(data []byte) (*core.IndexSnapshot, error) {
	snapshot, _, err := core.IndexSnapshotMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// MarshalRefreshInfo serializes a RefreshInfo to bytes.
func MarshalRefreshInfo(info *core.RefreshInfo) []byte {
	buf := make([]byte, core.RefreshInfoMUS.Size(*info))
	core.RefreshInfoMUS.Marshal(*info, buf)
	return buf
}

// UnmarshalRefreshInfo deserializes a RefreshInfo from bytes.
func UnmarshalRefreshInfo(data []byte) (*core.RefreshInfo, error) {
	info, _, err := core.RefreshInfoMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &info, nil
}
