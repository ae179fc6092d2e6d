package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "missing id",
			code:    "M001",
			wantMsg: "Modal id is missing",
			wantCat: CategoryRuntime,
		},
		{
			name:    "lazy load",
			code:    "M003",
			wantMsg: "Lazy modal component failed to load",
			wantCat: CategoryHost,
		},
		{
			name:    "config not found",
			code:    "M141",
			wantMsg: "Configuration file not found",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "M999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "flag %q is required", "addr")
	if err.Message != `flag "addr" is required` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
}

func TestModalError_Error(t *testing.T) {
	err := New("M002")
	if got, want := err.Error(), "M002: No modal provider mounted"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = New("M120").Wrap(stderrors.New("unexpected EOF"))
	if got, want := err.Error(), "M120: Invalid configuration file: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	// Without code
	plain := &ModalError{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestHasCode(t *testing.T) {
	inner := New("M120")
	outer := New("M150").Wrap(inner)

	if !HasCode(outer, "M150") || !HasCode(outer, "M120") {
		t.Error("HasCode should find both codes in the chain")
	}
	if HasCode(outer, "M001") {
		t.Error("HasCode(M001) = true")
	}
	if HasCode(stderrors.New("plain"), "M150") {
		t.Error("HasCode on a plain error = true")
	}
	if !stderrors.Is(outer, inner) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestWithLocation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modalhost.yaml")
	content := "host:\n  suspense: true\nserver:\n  port: nope\nlogging:\n  level: info\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("M120").WithLocation(path, 4, 9)
	if got, want := err.Location.String(), path+":4:9"; got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
	if len(err.Context) == 0 {
		t.Fatal("Context is empty")
	}
	found := false
	for _, line := range err.Context {
		if strings.Contains(line, "port: nope") {
			found = true
		}
	}
	if !found {
		t.Errorf("Context %q does not contain the error line", err.Context)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("M150").
		WithDetail("unknown step \"open\"").
		WithSuggestion("Use show, hide or destroy")
	out := err.Format()

	for _, want := range []string{"M150", "Invalid scenario step", "unknown step", "Use show, hide or destroy"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("M150")
	err.Location = &Location{File: "a.yaml", Line: 3}
	if got, want := err.FormatCompact(), "a.yaml:3: M150: Invalid scenario step"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("M003").Wrap(stderrors.New("boom"))

	var got map[string]any
	if e := json.Unmarshal([]byte(err.FormatJSON()), &got); e != nil {
		t.Fatalf("FormatJSON() is not JSON: %v", e)
	}
	if got["code"] != "M003" || got["category"] != "host" || got["cause"] != "boom" {
		t.Errorf("FormatJSON() = %v", got)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, New("M002"))
	if !strings.Contains(buf.String(), "M002") {
		t.Errorf("Fprint(ModalError) = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Fprint(error) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if len(lines) != len(want) {
		t.Fatalf("wrapText() = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") != nil")
	}
}

func TestWrite(t *testing.T) {
	DisableColors()
	defer EnableColors()

	coded := New("M150")
	coded.Location = &Location{File: "s.yaml", Line: 4}

	tests := []struct {
		name string
		err  error
		out  Output
		want string
	}{
		{"text coded", coded, OutputText, "Invalid scenario step"},
		{"compact coded", coded, OutputCompact, "s.yaml:4: M150: Invalid scenario step\n"},
		{"compact wrapped", fmt.Errorf("play: %w", coded), OutputCompact, "s.yaml:4: M150: Invalid scenario step\n"},
		{"compact plain", stderrors.New("boom"), OutputCompact, "boom\n"},
		{"json plain", stderrors.New("boom"), OutputJSON, `"category":"cli"`},
		{"json coded", coded, OutputJSON, `"code":"M150"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Write(&buf, tt.err, tt.out)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("Write() = %q, want it to contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestParseOutput(t *testing.T) {
	for _, name := range []string{"text", "compact", "json"} {
		if _, err := ParseOutput(name); err != nil {
			t.Errorf("ParseOutput(%q) error = %v", name, err)
		}
	}
	if _, err := ParseOutput("xml"); err == nil {
		t.Error("ParseOutput(xml) should fail")
	}
}
