package modal

import "testing"

func TestComposeID(t *testing.T) {
	tests := []struct {
		root, local, want string
	}{
		{"a", "b", "a.b"},
		{"root", "x1", "root.x1"},
		{"", "b", ".b"},
		{"a.b", "c", "a.b.c"},
	}
	for _, tt := range tests {
		if got := ComposeID(tt.root, tt.local); got != tt.want {
			t.Errorf("ComposeID(%q, %q) = %q, want %q", tt.root, tt.local, got, tt.want)
		}
	}
}

func TestSplitID(t *testing.T) {
	root, local, ok := SplitID("r1.l1")
	if !ok || root != "r1" || local != "l1" {
		t.Errorf("SplitID(r1.l1) = %q, %q, %v", root, local, ok)
	}
	if _, _, ok := SplitID("nodelimiter"); ok {
		t.Error("SplitID without delimiter should report ok=false")
	}
}

func TestHasRoot(t *testing.T) {
	tests := []struct {
		id, root string
		want     bool
	}{
		{"a.1", "a", true},
		{"ab.1", "a", false},
		{"a.1", "", false},
		{"b.1", "a", false},
	}
	for _, tt := range tests {
		if got := HasRoot(tt.id, tt.root); got != tt.want {
			t.Errorf("HasRoot(%q, %q) = %v, want %v", tt.id, tt.root, got, tt.want)
		}
	}
}

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		if len(id) != 12 {
			t.Fatalf("GenerateID() = %q, want 12 chars", id)
		}
		if seen[id] {
			t.Fatalf("GenerateID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}
