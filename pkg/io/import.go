package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/importlint/pkg/depgraph"
	"github.com/matzehuels/importlint/pkg/errors"
	"github.com/matzehuels/importlint/pkg/imports"
	"github.com/matzehuels/importlint/pkg/resolve"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension. Anything that is not
// .yaml or .yml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Project is a decoded project document.
type Project struct {
	Project     string                   `json:"project,omitempty" yaml:"project,omitempty"`
	Modules     []*imports.Module        `json:"modules" yaml:"modules"`
	Resolutions map[string]resolve.Entry `json:"resolutions,omitempty" yaml:"resolutions,omitempty"`
}

var knownKinds = map[imports.StmtKind]bool{
	imports.KindImport: true, imports.KindImportFrom: true, imports.KindIf: true,
	imports.KindTry: true, imports.KindTryFinally: true, imports.KindAssign: true,
	imports.KindAssignAttr: true, imports.KindIfExp: true, imports.KindComprehension: true,
	imports.KindFunctionDef: true, imports.KindClassDef: true, imports.KindFor: true,
	imports.KindWhile: true, imports.KindOther: true,
}

// ReadProject decodes a project document from r and validates it.
//
// ReadProject returns an INVALID_INPUT error if:
//   - the document is malformed
//   - a module name is not a dotted identifier or appears twice
//   - a statement id appears twice within a module
//   - a statement has an unknown kind, or an import names nothing
//   - an exclusive pair references an unknown statement
//
// ReadProject does not close r.
func ReadProject(r io.Reader, format Format) (*Project, error) {
	var p Project
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&p)
	case FormatJSON, "":
		err = json.NewDecoder(r).Decode(&p)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s document", formatName(format))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func formatName(f Format) string {
	if f == "" {
		return string(FormatJSON)
	}
	return string(f)
}

// Validate checks the document's structure.
func (p *Project) Validate() error {
	if p.Project != "" && !depgraph.ValidName(p.Project) {
		return errors.New(errors.ErrCodeInvalidInput, "project: invalid module name %q", p.Project)
	}
	names := make(map[string]bool, len(p.Modules))
	for i, m := range p.Modules {
		if m == nil {
			return errors.New(errors.ErrCodeInvalidInput, "module %d: empty", i)
		}
		if !depgraph.ValidName(m.Name) {
			return errors.New(errors.ErrCodeInvalidInput, "module %d: invalid name %q", i, m.Name)
		}
		if names[m.Name] {
			return errors.New(errors.ErrCodeInvalidInput, "module %s: listed twice", m.Name)
		}
		names[m.Name] = true
		if err := validateModule(m); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "module %s", m.Name)
		}
	}
	return nil
}

func validateModule(m *imports.Module) error {
	ids := make(map[imports.StmtID]bool, len(m.Statements))
	for _, s := range m.Statements {
		if ids[s.ID] {
			return fmt.Errorf("statement id %d used twice", s.ID)
		}
		ids[s.ID] = true
		if !knownKinds[s.Kind] {
			return fmt.Errorf("statement %d: unknown kind %q", s.ID, s.Kind)
		}
		if s.Kind.IsImport() && len(s.Names) == 0 {
			return fmt.Errorf("statement %d: import without names", s.ID)
		}
		if s.Level < 0 {
			return fmt.Errorf("statement %d: negative level", s.ID)
		}
	}
	for _, pair := range m.Exclusive {
		for _, id := range pair {
			if !ids[id] {
				return fmt.Errorf("exclusive pair %v: unknown statement %d", pair, id)
			}
		}
	}
	return nil
}

// ImportProject reads the project document at path.
func ImportProject(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadProject(f, FormatFor(path))
}
