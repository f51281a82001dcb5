package onnxmeta

import (
	"fmt"
	"os"
)

// ArtifactMetadataStore opens model artifacts for metadata access.
// Implemented by the built-in ONNX store for production and by mocks
// in tests.
type ArtifactMetadataStore interface {
	// Load reads the artifact at path into memory.
	Load(path string) (Artifact, error)
}

// Artifact is an in-memory model artifact whose embedded metadata can
// be read, replaced, and persisted.
type Artifact interface {
	// Metadata returns the current metadata entries in storage order.
	Metadata() []MetadataEntry

	// SetMetadata replaces every existing metadata entry with the
	// given entries. The artifact is modified in memory only; call
	// Save to persist.
	SetMetadata(entries []MetadataEntry) error

	// Save persists the artifact to path using write-then-rename, so a
	// failed write never leaves a corrupt file behind.
	Save(path string) error
}

// onnxStore loads ONNX artifacts.
type onnxStore struct{}

// Ensure onnxStore implements ArtifactMetadataStore.
var _ ArtifactMetadataStore = onnxStore{}

// NewArtifactStore returns the built-in ONNX metadata store.
func NewArtifactStore() ArtifactMetadataStore {
	return onnxStore{}
}

// Load implements ArtifactMetadataStore.
func (onnxStore) Load(path string) (Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidModel, path, err)
	}

	// Parse the metadata up front so malformed artifacts fail on Load
	// rather than halfway through a commit.
	entries, err := readMetadataProps(data)
	if err != nil {
		return nil, err
	}

	return &onnxArtifact{data: data, entries: entries}, nil
}

// onnxArtifact holds raw model bytes plus the parsed metadata entries.
type onnxArtifact struct {
	data    []byte
	entries []MetadataEntry
}

// Metadata implements Artifact.
func (a *onnxArtifact) Metadata() []MetadataEntry {
	out := make([]MetadataEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// SetMetadata implements Artifact. Every existing metadata_props record
// is stripped from the model bytes, then the new entries are appended.
func (a *onnxArtifact) SetMetadata(entries []MetadataEntry) error {
	stripped, err := stripMetadataProps(a.data)
	if err != nil {
		return err
	}
	a.data = appendMetadataProps(stripped, entries)
	a.entries = make([]MetadataEntry, len(entries))
	copy(a.entries, entries)
	return nil
}

// Save implements Artifact.
func (a *onnxArtifact) Save(path string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, a.data, 0644); err != nil {
		return fmt.Errorf("writing temp artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // cleanup on failure
		return fmt.Errorf("renaming artifact into place: %w", err)
	}
	return nil
}
