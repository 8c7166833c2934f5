package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/clusterview/pkg/pipeline"
)

// WriteLayout encodes l as indented JSON to w.
func WriteLayout(l *pipeline.Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLayout writes l to a JSON file at path.
func ExportLayout(l *pipeline.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLayout(l, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadLayout decodes a layout written by [WriteLayout]. The distance matrix
// of the groupings is not restored; use Layout.Distances instead.
func ReadLayout(r io.Reader) (*pipeline.Layout, error) {
	var l pipeline.Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &l, nil
}

// ImportLayout reads a layout JSON file at path.
func ImportLayout(path string) (*pipeline.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}
