// SPDX-License-Identifier: MPL-2.0

package kcp

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"kct/pkg/cueutil"
)

//go:embed spec_schema.cue
var specSchema []byte

// Spec is the package metadata declared in kcp.json.
type Spec struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// loadSpec reads and validates a kcp.json file against the embedded schema.
func loadSpec(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("failed to read spec file: %w", err)
	}

	spec, err := cueutil.Decode[Spec](specSchema, data, "#Spec", filepath.Base(path))
	if err != nil {
		return Spec{}, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	return *spec, nil
}
