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


package vecindex

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-crypt/x/blake2b"

	"github.com/dsaini64/regulations/core"
	"github.com/dsaini64/regulations/storage"
)

// Snapshot files carry an 8-byte BLAKE2b digest of the payload so a torn
// write is detected on load rather than served as search results.
const snapshotDigestLen = 8

// saveSnapshot writes the snapshot to path atomically (temp file + rename).
func saveSnapshot(path string, snapshot *core.IndexSnapshot) error {
	payload := storage.MarshalIndexSnapshot(snapshot)
	digest := snapshotDigest(payload)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(digest); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// loadSnapshot reads and verifies a snapshot file.
// Returns nil, nil if no snapshot exists at path.
func loadSnapshot(path string) (*core.IndexSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	if len(data) < snapshotDigestLen {
		return nil, fmt.Errorf("snapshot file truncated: %d bytes", len(data))
	}

	digest, payload := data[:snapshotDigestLen], data[snapshotDigestLen:]
	if !bytes.Equal(digest, snapshotDigest(payload)) {
		return nil, errors.New("snapshot checksum mismatch")
	}

	return storage.UnmarshalIndexSnapshot(payload)
}

func snapshotDigest(payload []byte) []byte {
	h, _ := blake2b.New(snapshotDigestLen, nil)
	h.Write(payload)
	return h.Sum(nil)
}
