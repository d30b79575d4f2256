package session

import (
	"os"
	"testing"
)

func TestNew(t *testing.T) {
	root := t.TempDir()

	s, err := New(root)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !ValidID(s.ID) {
		t.Errorf("ID %q does not match the session identifier shape", s.ID)
	}

	info, err := os.Stat(s.Dir)
	if err != nil {
		t.Fatalf("session folder not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("session path is not a directory")
	}
}

func TestNewIsCollisionFree(t *testing.T) {
	root := t.TempDir()
	seen := map[string]bool{}

	for i := 0; i < 20; i++ {
		s, err := New(root)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if seen[s.ID] {
			t.Fatalf("duplicate session ID %q", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"20231215_1030_ab12", true},
		{"20231215_1030_abcd", true},
		{"", false},
		{"20231215_1030", false},
		{"20231215_1030_ABCD", false},
		{"../etc/passwd", false},
		{"20231215_1030_ab12/extra", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := ValidID(tt.id); got != tt.want {
				t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
