// SPDX-License-Identifier: MPL-2.0

package kcp_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"kct/pkg/kcp"
)

func TestArchiveRoundTrip(t *testing.T) {
	t.Parallel()

	pkg := openPackage(t, map[string]string{
		"kcp.json":               minimalSpec,
		"files/motd.txt":         "welcome",
		"templates/main.jsonnet": `{"motd": std.extVar("kct.io/file")("motd.txt")}`,
	})

	dest := t.TempDir()
	artifact, err := pkg.Archive(dest)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if got, want := filepath.Base(artifact), "demo_0.1.0.kcp"; got != want {
		t.Errorf("artifact name = %q, want %q", got, want)
	}

	unpacked, err := kcp.Open(artifact)
	if err != nil {
		t.Fatalf("Open(artifact) error = %v", err)
	}
	defer unpacked.Close()

	if unpacked.Spec.Name != "demo" {
		t.Errorf("Spec.Name = %q, want %q", unpacked.Spec.Name, "demo")
	}

	got, err := unpacked.Compile(nil, nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	want := map[string]any{"motd": "welcome"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Compile() = %#v, want %#v", got, want)
	}
}

func TestOpenRejectsCorruptArtifact(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.kcp")
	if err := os.WriteFile(path, []byte("not a tarball"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := kcp.Open(path)
	if !errors.Is(err, kcp.ErrInvalidFormat) {
		t.Fatalf("Open() error = %v, want ErrInvalidFormat", err)
	}
}

func TestCloseRemovesBrownfieldRoot(t *testing.T) {
	t.Parallel()

	pkg := openPackage(t, map[string]string{
		"kcp.json":               minimalSpec,
		"templates/main.jsonnet": `{}`,
	})

	artifact, err := pkg.Archive(t.TempDir())
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}

	unpacked, err := kcp.Open(artifact)
	if err != nil {
		t.Fatalf("Open(artifact) error = %v", err)
	}
	root := unpacked.Root
	if err := unpacked.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Errorf("Stat(%q) error = %v, want the unpack root gone", root, err)
	}
}
