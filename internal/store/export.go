// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/bloodlink/donor-engine/pkg/types"
)

// exportDoc is the on-disk shape of a pattern export.
type exportDoc struct {
	GeneratedAt time.Time              `json:"generated_at" yaml:"generated_at"`
	Patterns    []types.LearnedPattern `json:"patterns" yaml:"patterns"`
}

// ExportYAML writes all stored patterns (or a filtered subset) to
// dataDir/patterns.yaml for inspection and versioning.
func (s *Store) ExportYAML(ctx context.Context, filter PatternFilter) (string, error) {
	doc, err := s.exportDoc(ctx, filter)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshaling export: %w", err)
	}
	path := filepath.Join(s.dataDir, "patterns.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}

// ExportJSON writes patterns to dataDir/patterns.json.
func (s *Store) ExportJSON(ctx context.Context, filter PatternFilter) (string, error) {
	doc, err := s.exportDoc(ctx, filter)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling export: %w", err)
	}
	path := filepath.Join(s.dataDir, "patterns.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}

func (s *Store) exportDoc(ctx context.Context, filter PatternFilter) (exportDoc, error) {
	patterns, err := s.ListPatterns(ctx, filter)
	if err != nil {
		return exportDoc{}, err
	}
	return exportDoc{GeneratedAt: time.Now().UTC(), Patterns: patterns}, nil
}
