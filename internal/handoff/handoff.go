// Package handoff serializes a filtered RowSet between the scheduler's
// extract and load tasks.
//
// The artifact is JSON with source field names preserved, dates rendered as
// YYYY-MM-DD, and monetary values as canonical decimal strings, so a row set
// survives the channel with full type fidelity. When extract and load run in
// the same process (the one-shot command), the row set is passed in memory
// and this package is not involved.
package handoff

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/retailops/salesingest/pkg/salesingest"
)

// Write serializes the row set to path, creating or truncating the file.
func Write(path string, set *salesingest.RowSet) error {
	if set == nil {
		return fmt.Errorf("cannot write a nil row set")
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding hand-off: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing hand-off %q: %w", path, err)
	}
	return nil
}

// Remove deletes the artifact at path, if any. The extract task calls this
// on the no-data outcome: the artifact path is stable across runs, so a
// previous run's file must not survive to be loaded as the current batch.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing hand-off %q: %w", path, err)
	}
	return nil
}

// Read deserializes a row set from path.
//
// A missing artifact is reported as an error wrapping salesingest.ErrNoData:
// it means the extract task short-circuited on an empty batch and published
// nothing, which the load task must treat as the no_data outcome rather than
// a failure.
func Read(path string) (*salesingest.RowSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no hand-off artifact at %q", salesingest.ErrNoData, path)
		}
		return nil, fmt.Errorf("reading hand-off %q: %w", path, err)
	}

	var set salesingest.RowSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: hand-off %q is not a valid row set: %v", salesingest.ErrParse, path, err)
	}

	if len(set.Rows) == 0 {
		return nil, fmt.Errorf("%w: hand-off %q contains no rows", salesingest.ErrNoData, path)
	}
	return &set, nil
}
