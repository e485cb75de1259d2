package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"fakenft/internal/security/secretbox"
)

// File keeps settings in a single JSON document. Keys listed as secret are
// sealed with box when one is configured.
type File struct {
	mu      sync.Mutex
	path    string
	box     *secretbox.Box
	secrets []string
}

func NewFile(path string, box *secretbox.Box, secretKeys ...string) *File {
	return &File{path: path, box: box, secrets: secretKeys}
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	if !ok {
		return "", false, nil
	}
	if f.sealed(key) {
		plain, err := f.box.Open(key, v)
		if err != nil {
			return "", false, fmt.Errorf("open setting %s: %w", key, err)
		}
		v = plain
	}
	return v, true, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	if f.sealed(key) {
		sealed, err := f.box.Seal(key, value)
		if err != nil {
			return fmt.Errorf("seal setting %s: %w", key, err)
		}
		value = sealed
	}
	values[key] = value
	return f.write(values)
}

func (f *File) sealed(key string) bool {
	return f.box != nil && slices.Contains(f.secrets, key)
}

// read treats a missing file as empty.
func (f *File) read() (map[string]string, error) {
	values := make(map[string]string)
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", f.path, err)
	}
	return values, nil
}

// write replaces the document via a temp file then rename.
func (f *File) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
