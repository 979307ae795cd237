// SPDX-License-Identifier: MPL-2.0

package cueutil_test

import (
	"strings"
	"testing"

	"kct/pkg/cueutil"
)

const schema = `
#Spec: {
	name:    =~"^[a-z][a-z0-9-]*$"
	version: =~"^[0-9]+\\.[0-9]+\\.[0-9]+"
}
`

type spec struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func TestDecodeValidDocument(t *testing.T) {
	t.Parallel()

	got, err := cueutil.Decode[spec]([]byte(schema), []byte(`{"name": "demo", "version": "0.1.0"}`), "#Spec", "kcp.json")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Name != "demo" || got.Version != "0.1.0" {
		t.Errorf("Decode() = %+v, want name=demo version=0.1.0", got)
	}
}

func TestDecodeRejectsSchemaViolation(t *testing.T) {
	t.Parallel()

	_, err := cueutil.Decode[spec]([]byte(schema), []byte(`{"name": "Demo!", "version": "0.1.0"}`), "#Spec", "kcp.json")
	if err == nil {
		t.Fatal("Decode() error = nil, want schema violation")
	}
	if !strings.Contains(err.Error(), "kcp.json") {
		t.Errorf("error = %q, want the filename in the message", err)
	}
}

func TestDecodeRejectsMissingField(t *testing.T) {
	t.Parallel()

	_, err := cueutil.Decode[spec]([]byte(schema), []byte(`{"name": "demo"}`), "#Spec", "kcp.json")
	if err == nil {
		t.Fatal("Decode() error = nil, want incomplete document rejection")
	}
}

func TestDecodeRejectsMalformedDocument(t *testing.T) {
	t.Parallel()

	_, err := cueutil.Decode[spec]([]byte(schema), []byte(`{"name": `), "#Spec", "kcp.json")
	if err == nil {
		t.Fatal("Decode() error = nil, want parse failure")
	}
}
