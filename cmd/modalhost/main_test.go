package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/modalhost/internal/config"
	moderrors "github.com/vango-dev/modalhost/internal/errors"
	"github.com/vango-dev/modalhost/pkg/host"
	"github.com/vango-dev/modalhost/pkg/modal"
)

func TestVersionShort(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--short"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != version {
		t.Errorf("version --short = %q, want %q", got, version)
	}
}

func TestPlayCommand(t *testing.T) {
	dir := t.TempDir()
	scenario := filepath.Join(dir, "open.yaml")
	data := `name: open
steps:
  - show: {as: a, component: text, props: {text: hello}}
  - expect: {count: 1, contains: [hello]}
  - hide: a
  - expect: {count: 0}
`
	if err := os.WriteFile(scenario, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "modalhost.yaml")
	if err := os.WriteFile(cfgPath, []byte("logging:\n  level: error\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"play", "--config", cfgPath, scenario})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "hello") {
		t.Errorf("output missing rendered modal:\n%s", out.String())
	}
}

func TestErrorFormat(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"play", "--error-format", "json", filepath.Join(t.TempDir(), "missing.yaml")})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Execute() should fail for a missing scenario")
	}
	out := errorOutput(cmd)
	if out != moderrors.OutputJSON {
		t.Fatalf("errorOutput() = %q, want json", out)
	}

	var buf bytes.Buffer
	moderrors.Write(&buf, err, out)
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("error output is not JSON: %v\n%s", err, buf.String())
	}
	if got["code"] != "M150" {
		t.Errorf("code = %v, want M150", got["code"])
	}

	bad := newRootCmd()
	bad.SetOut(io.Discard)
	bad.SetArgs([]string{"play", "--error-format", "xml", "x.yaml"})
	if err := bad.Execute(); err == nil {
		t.Error("unknown --error-format should be rejected")
	}
}

func TestServeHandler(t *testing.T) {
	cfg := config.New()
	reg := prometheus.NewRegistry()
	metrics := modal.NewMetrics(modal.WithRegisterer(reg))
	provider := host.NewProvider(nil, host.Config{
		Logger:  cfg.Logger(io.Discard),
		Metrics: metrics,
	})
	defer provider.Unmount()

	handler, closeInspector := newServeHandler(cfg, provider, reg)
	defer closeInspector()
	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/demo", "text/plain", nil)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.TrimSpace(string(id)) == "" {
		t.Fatal("POST /demo returned no id")
	}

	body := get(t, srv.URL+"/")
	if !strings.Contains(body, "<dialog") || !strings.Contains(body, "Hello") {
		t.Errorf("GET / missing dialog:\n%s", body)
	}

	var snap struct {
		Modals []struct {
			ID     string `json:"id"`
			IsOpen bool   `json:"isOpen"`
		} `json:"modals"`
	}
	if err := json.Unmarshal([]byte(get(t, srv.URL+"/api/modals")), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snap.Modals) != 1 || snap.Modals[0].ID != strings.TrimSpace(string(id)) || !snap.Modals[0].IsOpen {
		t.Errorf("snapshot = %+v", snap)
	}

	if m := get(t, srv.URL+"/metrics"); !strings.Contains(m, "modalhost_modals_shown_total 1") {
		t.Errorf("metrics missing shown counter:\n%s", m)
	}
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
