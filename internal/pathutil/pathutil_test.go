// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pathutil

import (
	"path/filepath"
	"testing"
)

func TestExpandUser(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare tilde", "~", home},
		{"tilde prefix", "~/papers/x.pdf", filepath.Join(home, "papers", "x.pdf")},
		{"absolute path untouched", "/tmp/x.pdf", "/tmp/x.pdf"},
		{"relative path untouched", "papers/x.pdf", "papers/x.pdf"},
		{"tilde mid-path untouched", "/tmp/~/x.pdf", "/tmp/~/x.pdf"},
		{"tilde-user untouched", "~otheruser/x.pdf", "~otheruser/x.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandUser(tt.in); got != tt.want {
				t.Errorf("ExpandUser(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
