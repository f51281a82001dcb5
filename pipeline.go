package onnxmeta

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MetadataConfig is the parsed metadata tool configuration: the target
// artifact plus the record to attach to it.
type MetadataConfig struct {
	// ModelURI is the path of the artifact to write.
	ModelURI string

	// Metadata is the user-supplied record.
	Metadata Record
}

// LoadMetadataConfig reads and validates the structure of a metadata
// configuration file. Schema validation of the record itself happens
// at commit time; this only enforces that the file is JSON with the
// expected top-level shape and that the referenced model exists with
// the right extension.
func LoadMetadataConfig(path string) (MetadataConfig, error) {
	if filepath.Ext(path) != ".json" {
		return MetadataConfig{}, fmt.Errorf("%w: invalid configuration extension, expecting .json: %s", ErrInvalidConfig, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return MetadataConfig{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	var doc struct {
		ModelURI *string         `json:"model_uri"`
		Metadata json.RawMessage `json:"metadata"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return MetadataConfig{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	if doc.ModelURI == nil {
		return MetadataConfig{}, fmt.Errorf(`%w: key "model_uri": "/path.onnx" is missing from the configuration`, ErrInvalidConfig)
	}
	if err := CheckModelPath(*doc.ModelURI); err != nil {
		return MetadataConfig{}, err
	}

	if doc.Metadata == nil {
		return MetadataConfig{}, fmt.Errorf(`%w: key "metadata": {...} is missing from the configuration`, ErrInvalidConfig)
	}
	var rec Record
	if err := json.Unmarshal(doc.Metadata, &rec); err != nil {
		return MetadataConfig{}, fmt.Errorf("%w: metadata should be a flat dictionary of key value pairs", ErrInvalidConfig)
	}

	return MetadataConfig{ModelURI: *doc.ModelURI, Metadata: rec}, nil
}

// Pipeline validates metadata records and commits them into artifacts.
type Pipeline struct {
	store  ArtifactMetadataStore
	schema Schema
	logger Logger
}

// NewPipeline creates a Pipeline. With no options it uses the default
// schema and writes real ONNX files.
func NewPipeline(opts ...Option) *Pipeline {
	c := newConfig(opts)
	schema := DefaultSchema()
	if c.schema != nil {
		schema = *c.schema
	}
	return &Pipeline{
		store:  c.store,
		schema: schema,
		logger: c.logger,
	}
}

// Schema returns the schema the pipeline validates against.
func (p *Pipeline) Schema() Schema { return p.schema }

// Commit validates the record and, only if every check passes, writes
// it into the artifact, replacing any existing metadata. outputPath
// names the destination artifact; empty means overwrite the source
// in place. A missing model extension on an explicit output path is
// appended. The path actually written is returned.
//
// Every value is stored JSON-encoded as a string, uniformly across
// value types, so readers must JSON-decode each entry.
func (p *Pipeline) Commit(cfg MetadataConfig, outputPath string) (string, error) {
	if verr := p.schema.Validate(cfg.Metadata); verr != nil {
		return "", verr
	}

	if outputPath == "" {
		outputPath = cfg.ModelURI
	} else if !strings.HasSuffix(outputPath, ModelExt) {
		outputPath += ModelExt
	}

	artifact, err := p.store.Load(cfg.ModelURI)
	if err != nil {
		return "", err
	}

	entries, err := p.encodeRecord(cfg.Metadata)
	if err != nil {
		return "", err
	}
	if err := artifact.SetMetadata(entries); err != nil {
		return "", fmt.Errorf("replacing metadata: %w", err)
	}

	// Guard against a schema with zero required keys silently
	// producing an empty write.
	if len(artifact.Metadata()) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyWrite, outputPath)
	}

	if err := artifact.Save(outputPath); err != nil {
		return "", err
	}
	if p.logger != nil {
		p.logger.Info("wrote metadata", "path", outputPath, "entries", len(entries))
	}
	return outputPath, nil
}

// encodeRecord serializes a validated record into store entries:
// schema keys first in declaration order, then any extra keys in
// sorted order, every value JSON-encoded.
func (p *Pipeline) encodeRecord(rec Record) ([]MetadataEntry, error) {
	keys := make([]string, 0, len(rec))
	for _, f := range p.schema.Fields {
		if _, ok := rec[f.Key]; ok {
			keys = append(keys, f.Key)
		}
	}
	extra := make([]string, 0)
	for key := range rec {
		if _, ok := p.schema.Field(key); !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	entries := make([]MetadataEntry, 0, len(keys))
	for _, key := range keys {
		encoded, err := json.Marshal(rec[key])
		if err != nil {
			return nil, fmt.Errorf("encoding metadata value %s: %w", key, err)
		}
		entries = append(entries, MetadataEntry{Key: key, Value: string(encoded)})
	}
	return entries, nil
}
