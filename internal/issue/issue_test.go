// SPDX-License-Identifier: MPL-2.0

package issue_test

import (
	"testing"

	"kct/internal/issue"
	"kct/pkg/compiler"
	"kct/pkg/kcp"
)

func TestEveryIssueIsRegistered(t *testing.T) {
	t.Parallel()

	for _, i := range issue.Values() {
		if got := issue.Get(i.Id()); got != i {
			t.Errorf("Get(%d) = %p, want %p", i.Id(), got, i)
		}
		if i.MarkdownMsg() == "" {
			t.Errorf("issue %d has an empty message", i.Id())
		}
	}
}

func TestFromErrorMapsKnownFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"no spec", kcp.ErrNoSpec, issue.SpecMissingId},
		{"bad spec", kcp.ErrInvalidSpec, issue.SpecInvalidId},
		{"no entrypoint", kcp.ErrNoMain, issue.EntrypointMissingId},
		{"bad artifact", kcp.ErrInvalidFormat, issue.ArchiveCorruptId},
		{"no example", kcp.ErrNoExample, issue.ExampleInvalidId},
		{"input mismatch", compiler.ErrInvalidInput, issue.InputRejectedId},
		{"render failure", &compiler.RenderError{Message: "boom"}, issue.RenderFailedId},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := issue.FromError(tc.err)
			if !ok {
				t.Fatalf("FromError(%v) found no issue", tc.err)
			}
			if got.Id() != tc.want {
				t.Errorf("FromError(%v) = issue %d, want %d", tc.err, got.Id(), tc.want)
			}
		})
	}
}

func TestFromErrorPassesUnknownErrors(t *testing.T) {
	t.Parallel()

	if _, ok := issue.FromError(kcp.ErrInvalidSchema); ok {
		t.Error("FromError() matched an error with no dedicated diagnostic")
	}
}
