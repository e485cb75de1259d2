package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv_SetsMissingVariables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "CATALOG_BASE_URL=http://localhost:18080\nEMPTY=\nQUOTED=\"hello # world\"\nSINGLE='x y'\nexport EXPORTED=1\nINLINE=abc # trailing\n# comment\nnot-a-pair\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	for _, k := range []string{"CATALOG_BASE_URL", "EMPTY", "QUOTED", "SINGLE", "EXPORTED", "INLINE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	n, err := LoadDotEnv(path)
	if err != nil {
		t.Fatalf("LoadDotEnv error: %v", err)
	}
	if n != 6 {
		t.Fatalf("applied = %d, want 6", n)
	}

	want := map[string]string{
		"CATALOG_BASE_URL": "http://localhost:18080",
		"EMPTY":            "",
		"QUOTED":           "hello # world",
		"SINGLE":           "x y",
		"EXPORTED":         "1",
		"INLINE":           "abc",
	}
	for k, v := range want {
		if got := os.Getenv(k); got != v {
			t.Fatalf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestLoadDotEnv_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("JWT_SECRET=from_file\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("JWT_SECRET", "from_env")
	n, err := LoadDotEnv(path)
	if err != nil {
		t.Fatalf("LoadDotEnv error: %v", err)
	}
	if n != 0 {
		t.Fatalf("applied = %d, want 0", n)
	}
	if got := os.Getenv("JWT_SECRET"); got != "from_env" {
		t.Fatalf("JWT_SECRET = %q, want %q", got, "from_env")
	}
}

func TestLoadDotEnv_MissingFileIsNotAnError(t *testing.T) {
	n, err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil || n != 0 {
		t.Fatalf("LoadDotEnv = (%d, %v), want (0, nil)", n, err)
	}
}
