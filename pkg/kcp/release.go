// SPDX-License-Identifier: MPL-2.0

package kcp

// Release carries deployment metadata for a compile. Released packages get a
// release property binding and a release-qualified name in the helper
// library; unreleased compiles bind null instead.
type Release struct {
	Name string `json:"name"`
}
