package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/rectpack/internal/model"
)

// SnapshotVersion is written into every saved run.
const SnapshotVersion = "1.0.0"

// RunSnapshot is the on-disk form of a packing run.
type RunSnapshot struct {
	Version   string    `json:"version"`
	CreatedAt string    `json:"created_at"`
	Run       model.Run `json:"run"`
}

// SaveRun writes run to path as a versioned JSON snapshot.
func SaveRun(path string, run model.Run) error {
	snap := RunSnapshot{
		Version:   SnapshotVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Run:       run,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run file: %w", err)
	}
	return nil
}

// LoadRun reads a snapshot written by SaveRun.
func LoadRun(path string) (RunSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunSnapshot{}, fmt.Errorf("failed to read run file: %w", err)
	}
	var snap RunSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return RunSnapshot{}, fmt.Errorf("failed to parse run file: %w", err)
	}
	if snap.Version == "" {
		return RunSnapshot{}, fmt.Errorf("invalid run file: missing version field")
	}
	if snap.Run.Result == nil {
		return RunSnapshot{}, fmt.Errorf("invalid run file: no packing result")
	}
	return snap, nil
}
