package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/reasonkb/pkg/reasonkb/internalerr"
	"github.com/cognicore/reasonkb/pkg/reasonkb/kb"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "kb.yaml", "log_level: debug\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Retraction != string(kb.RetractCascade) {
		t.Errorf("retraction = %q, want cascade", cfg.Retraction)
	}
	if cfg.RuleRetraction != string(kb.RuleRetractionReject) {
		t.Errorf("rule_retraction = %q, want reject", cfg.RuleRetraction)
	}

	lvl, err := cfg.Level()
	if err != nil || lvl != slog.LevelDebug {
		t.Errorf("Level() = %v, %v", lvl, err)
	}
}

func TestLoadResolvesProgramPaths(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "kb.yaml", `
retraction: supported
rule_retraction: cascade
programs:
  - blocks.kb
  - /abs/other.kb
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Programs[0] != filepath.Join(dir, "blocks.kb") {
		t.Errorf("relative program not resolved: %s", cfg.Programs[0])
	}
	if cfg.Programs[1] != "/abs/other.kb" {
		t.Errorf("absolute program changed: %s", cfg.Programs[1])
	}

	opts := cfg.KBOptions(nil)
	if opts.Retraction != kb.RetractSupported || opts.RuleRetraction != kb.RuleRetractionCascade {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"retraction":      "retraction: sometimes\n",
		"rule_retraction": "rule_retraction: maybe\n",
		"log_level":       "log_level: loud\n",
		"yaml":            "retraction: [unclosed\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "kb.yaml", content)
			_, err := Load(path)
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadProgram(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "blocks.kb", `
# blocks
on(a, b).
covered(?y) :- on(?x, ?y).
`)

	prog, err := LoadProgram(path)
	if err != nil {
		t.Fatalf("load program: %v", err)
	}
	if len(prog.Entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(prog.Entities))
	}

	bad := writeFile(t, dir, "bad.kb", "on(a,\n")
	if _, err := LoadProgram(bad); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
