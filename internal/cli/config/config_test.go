package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func chTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	t.Cleanup(func() { os.Chdir(oldWd) })
	return tmpDir
}

func TestLoad(t *testing.T) {
	// No config file: defaults apply.
	chTempDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if len(cfg.Packages) != 1 || cfg.Packages[0] != "./..." {
		t.Errorf("expected default packages [./...], got %v", cfg.Packages)
	}

	if cfg.Artifacts.Dir != "build/fractory" {
		t.Errorf("expected default artifacts dir 'build/fractory', got %s", cfg.Artifacts.Dir)
	}

	if len(cfg.Artifacts.Path) != 1 || cfg.Artifacts.Path[0] != "build/fractory" {
		t.Errorf("expected artifact path to default to [build/fractory], got %v", cfg.Artifacts.Path)
	}

	if cfg.Generate.Suffix != "_fractory.go" {
		t.Errorf("expected default suffix '_fractory.go', got %s", cfg.Generate.Suffix)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	tmpDir := chTempDir(t)

	configContent := `
packages:
  - ./internal/...
artifacts:
  dir: out/artifacts
  path:
    - ../upstream/out/artifacts
    - out/artifacts
generate:
  suffix: _gen.go
`
	os.WriteFile(filepath.Join(tmpDir, "fractory.yaml"), []byte(configContent), 0644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if len(cfg.Packages) != 1 || cfg.Packages[0] != "./internal/..." {
		t.Errorf("expected packages [./internal/...], got %v", cfg.Packages)
	}

	if cfg.Artifacts.Dir != "out/artifacts" {
		t.Errorf("expected artifacts dir 'out/artifacts', got %s", cfg.Artifacts.Dir)
	}

	if len(cfg.Artifacts.Path) != 2 || cfg.Artifacts.Path[0] != "../upstream/out/artifacts" {
		t.Errorf("expected configured artifact path to survive, got %v", cfg.Artifacts.Path)
	}

	if cfg.Generate.Suffix != "_gen.go" {
		t.Errorf("expected suffix '_gen.go', got %s", cfg.Generate.Suffix)
	}
}

func TestLoadPathDefaultsToDir(t *testing.T) {
	tmpDir := chTempDir(t)

	configContent := `
artifacts:
  dir: custom/artifacts
`
	os.WriteFile(filepath.Join(tmpDir, "fractory.yaml"), []byte(configContent), 0644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(cfg.Artifacts.Path) != 1 || cfg.Artifacts.Path[0] != "custom/artifacts" {
		t.Errorf("expected artifact path [custom/artifacts], got %v", cfg.Artifacts.Path)
	}
}

func TestLoadEmptyDirRejected(t *testing.T) {
	tmpDir := chTempDir(t)

	configContent := `
artifacts:
  dir: ""
`
	os.WriteFile(filepath.Join(tmpDir, "fractory.yaml"), []byte(configContent), 0644)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for empty artifacts.dir, got nil")
	}
	if !strings.Contains(err.Error(), "artifacts.dir") {
		t.Errorf("expected error to mention artifacts.dir, got %v", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	tmpDir := chTempDir(t)

	os.WriteFile(filepath.Join(tmpDir, "fractory.yaml"), []byte("packages: [unclosed"), 0644)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed config file, got nil")
	}
}
