package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Node is one node of a shape description.
//
// Kind selects which of the remaining fields are meaningful:
//
//	product  Fields (ordered; empty list is the unit shape)
//	sum      Variants (ordered; empty list is uninhabited)
//	bool     -
//	unit     Value (the single value; defaults to null)
//	empty    -
//	range    Min, Max (inclusive int64 bounds, both required)
//	values   Values (scalars, enumerated in the order listed)
//	rune     -
//	option   Of (the inner node)
//	result   Ok, Err (the success and error nodes)
type Node struct {
	Kind     string `yaml:"kind" json:"kind"`
	Fields   []Node `yaml:"fields,omitempty" json:"fields,omitempty"`
	Variants []Node `yaml:"variants,omitempty" json:"variants,omitempty"`
	Min      *int64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max      *int64 `yaml:"max,omitempty" json:"max,omitempty"`
	Values   []any  `yaml:"values,omitempty" json:"values,omitempty"`
	Value    any    `yaml:"value,omitempty" json:"value,omitempty"`
	Of       *Node  `yaml:"of,omitempty" json:"of,omitempty"`
	Ok       *Node  `yaml:"ok,omitempty" json:"ok,omitempty"`
	Err      *Node  `yaml:"err,omitempty" json:"err,omitempty"`
}

// Document is the root of a shape description file.
type Document struct {
	Shape Node `yaml:"shape" json:"shape"`
}

// LoadFile reads a shape description, selecting the front end by file
// extension: .cue, or .yaml/.yml.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading shape file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return LoadCUE(data, filepath.Base(path))
	case ".yaml", ".yml":
		return LoadYAML(data)
	default:
		return nil, fmt.Errorf("unsupported shape file extension %q (want .cue, .yaml or .yml)", filepath.Ext(path))
	}
}

// LoadYAML decodes a YAML shape description. Unknown fields are rejected
// so typos fail loudly instead of silently describing a different shape.
func LoadYAML(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding YAML shape: %w", err)
	}
	return &doc, nil
}

// LoadCUE evaluates a CUE shape description and decodes the resulting
// value through the CUE SDK's Go API.
func LoadCUE(data []byte, filename string) (*Document, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compiling CUE shape: %w", err)
	}

	shapeVal := v.LookupPath(cue.ParsePath("shape"))
	if !shapeVal.Exists() {
		return nil, fmt.Errorf("CUE shape file has no top-level %q field", "shape")
	}

	var doc Document
	if err := shapeVal.Decode(&doc.Shape); err != nil {
		return nil, fmt.Errorf("decoding CUE shape: %w", err)
	}
	return &doc, nil
}
