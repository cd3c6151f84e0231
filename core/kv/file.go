package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store backed by a single JSON file. Every read goes to disk so
// writes from a sibling process (the admin panel and the public site share
// state files in single-host deployments) become visible without any
// coordination beyond the atomic rename on write.
type File struct {
	mu   sync.Mutex
	path string
	perm os.FileMode
}

// FileOption configures a File store.
type FileOption func(*File)

// WithFileMode sets the permissions used for the state file. Default 0600.
func WithFileMode(perm os.FileMode) FileOption {
	return func(f *File) {
		if perm != 0 {
			f.perm = perm
		}
	}
}

// NewFile creates a file-backed store at path. The file is created lazily on
// first write.
func NewFile(path string, opts ...FileOption) *File {
	f := &File{path: path, perm: 0o600}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	delete(values, key)
	return f.write(values)
}

func (f *File) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kv: read state file: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt state file degrades to empty state rather than
		// wedging every read until someone deletes it by hand.
		return map[string]string{}, nil
	}
	return values, nil
}

// write replaces the state file atomically: a same-directory temp file is
// populated first and renamed over the target, so concurrent readers see
// either the old or the new state, never a torn one.
func (f *File) write(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("kv: encode state: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("kv: create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("kv: write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kv: close temp state file: %w", err)
	}
	if err := os.Chmod(tmpName, f.perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kv: chmod temp state file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kv: replace state file: %w", err)
	}
	return nil
}
