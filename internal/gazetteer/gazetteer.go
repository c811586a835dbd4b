// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gazetteer loads the fixed field vocabulary the extractors
// depend on: canonical blood-group codes, department abbreviations,
// hall and hospital names, field labels, and name particles. The
// vocabulary ships embedded as vocab.yaml and is read once at init.
package gazetteer

import (
	_ "embed"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed vocab.yaml
var vocabYAML []byte

// Institution is a known venue with its canonical name and the
// aliases submissions are likely to use.
type Institution struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

type vocabulary struct {
	BloodGroups []string      `yaml:"blood_groups"`
	Departments []string      `yaml:"departments"`
	Halls       []Institution `yaml:"halls"`
	Hospitals   []Institution `yaml:"hospitals"`
	FieldLabels []string      `yaml:"field_labels"`
	Honorifics  []string      `yaml:"honorifics"`
	Kinship     []string      `yaml:"kinship"`
}

var (
	vocab       vocabulary
	bloodGroups map[string]bool
	honorifics  map[string]bool
	kinship     map[string]bool
)

func init() {
	if err := yaml.Unmarshal(vocabYAML, &vocab); err != nil {
		panic(fmt.Sprintf("gazetteer: parsing embedded vocab.yaml: %v", err))
	}
	bloodGroups = make(map[string]bool, len(vocab.BloodGroups))
	for _, g := range vocab.BloodGroups {
		bloodGroups[g] = true
	}
	honorifics = make(map[string]bool, len(vocab.Honorifics))
	for _, h := range vocab.Honorifics {
		honorifics[strings.ToLower(h)] = true
	}
	kinship = make(map[string]bool, len(vocab.Kinship))
	for _, k := range vocab.Kinship {
		kinship[strings.ToLower(k)] = true
	}
}

// BloodGroups returns the eight canonical blood-group codes.
func BloodGroups() []string { return vocab.BloodGroups }

// IsBloodGroup reports whether code is one of the canonical codes.
func IsBloodGroup(code string) bool { return bloodGroups[code] }

// Departments returns known department abbreviations and names used
// for batch extraction.
func Departments() []string { return vocab.Departments }

// Halls returns the known residence halls.
func Halls() []Institution { return vocab.Halls }

// Hospitals returns the known hospitals.
func Hospitals() []Institution { return vocab.Hospitals }

// FieldLabels returns the labels that mark a line as a tagged field.
func FieldLabels() []string { return vocab.FieldLabels }

// IsHonorific reports whether word (lowercased, without trailing
// period) is a stripped honorific or name particle.
func IsHonorific(word string) bool {
	return honorifics[strings.ToLower(strings.TrimSuffix(word, "."))]
}

// IsKinship reports whether word is an informal kinship/respect
// suffix that stays lowercase during name normalization.
func IsKinship(word string) bool {
	return kinship[strings.ToLower(word)]
}
