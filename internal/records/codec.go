// This file implements the blob encoding: a JSON array of achievements.
package records

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

// decode parses a blob. Anything other than a JSON array of valid records
// with unique IDs is ErrStorageCorrupt.
func decode(data []byte) ([]types.Achievement, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: blob is not a JSON array", types.ErrStorageCorrupt)
	}

	var recs []types.Achievement
	if err := json.Unmarshal(trimmed, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorageCorrupt, err)
	}

	seen := make(map[int]bool, len(recs))
	for i, rec := range recs {
		if rec.ID <= 0 {
			return nil, fmt.Errorf("%w: record %d has invalid id %d", types.ErrStorageCorrupt, i, rec.ID)
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d (id %d): %v", types.ErrStorageCorrupt, i, rec.ID, err)
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("%w: duplicate id %d", types.ErrStorageCorrupt, rec.ID)
		}
		seen[rec.ID] = true
	}
	if recs == nil {
		recs = []types.Achievement{}
	}
	return recs, nil
}

// encode serializes records deterministically, so encode(decode(b)) == b
// for any blob encode produced.
func encode(recs []types.Achievement) ([]byte, error) {
	if recs == nil {
		recs = []types.Achievement{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("encoding achievements: %w", err)
	}
	return data, nil
}
