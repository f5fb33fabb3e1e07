package source

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
)

// File reads a JSON fixture of the form {art_forms, tourism, sites, festivals}.
type File struct {
	path string
}

// NewFile returns a Source backed by the fixture at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads and decodes the fixture. The file is read on every call.
func (f *File) Load(_ context.Context) (domain.Tables, Provenance, error) {
	t, err := ReadFixture(f.path)
	if err != nil {
		return domain.Tables{}, nil, err
	}
	return t, uniform(KindFile), nil
}

// ReadFixture decodes a fixture file.
func ReadFixture(path string) (domain.Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Tables{}, fmt.Errorf("read fixture: %w", err)
	}
	var t domain.Tables
	if err := json.Unmarshal(data, &t); err != nil {
		return domain.Tables{}, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return t, nil
}

// WriteFixture encodes tables as indented JSON.
func WriteFixture(path string, t domain.Tables) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// CheckReadiness reports whether the fixture file is present.
func (f *File) CheckReadiness(_ context.Context) error {
	if _, err := os.Stat(f.path); err != nil {
		return fmt.Errorf("fixture unavailable: %w", err)
	}
	return nil
}
