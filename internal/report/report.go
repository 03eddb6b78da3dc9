// Package report turns the result of analysing one module into a
// serialisable description: module bindings with their addressing, struct
// layouts in field order, the interned structural types and the diagnostics.
package report

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/symbols"
	"github.com/funvibe/semcore/internal/typesystem"
)

type Report struct {
	RunID       string       `yaml:"run_id"`
	File        string       `yaml:"file"`
	Bindings    []Binding    `yaml:"bindings"`
	Structs     []Struct     `yaml:"structs,omitempty"`
	Types       []string     `yaml:"types,omitempty"`
	Diagnostics []Diagnostic `yaml:"diagnostics,omitempty"`
}

// Binding describes one module-level name.
type Binding struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	State      string `yaml:"state"`
	Type       string `yaml:"type,omitempty"`
	Addressing string `yaml:"addressing,omitempty"`
	Constant   string `yaml:"constant,omitempty"`
	Line       int    `yaml:"line"`
}

// Struct is the layout of a struct or class. Offsets assume no padding.
type Struct struct {
	Name    string   `yaml:"name"`
	Kind    string   `yaml:"kind"`
	Size    int      `yaml:"size"`
	Fields  []Field  `yaml:"fields"`
	Methods []string `yaml:"methods,omitempty"`
}

type Field struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Size       int    `yaml:"size"`
	Offset     int    `yaml:"offset"`
	HasDefault bool   `yaml:"has_default,omitempty"`
}

type Diagnostic struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	Line    int    `yaml:"line"`
	Column  int    `yaml:"column"`
	Message string `yaml:"message"`
}

// Build describes the module scope of table. Bindings that never resolved
// are listed with their state and no type.
func Build(types *typesystem.Table, table *symbols.Table, scope symbols.ScopeID, diags []*diagnostics.DiagnosticError, runID uuid.UUID) *Report {
	r := &Report{RunID: runID.String(), Bindings: []Binding{}}
	if scope != symbols.NoScope {
		for _, id := range table.Bindings(scope) {
			b := table.Binding(id)
			r.Bindings = append(r.Bindings, describeBinding(types, b))
			if b.State != symbols.Resolved {
				continue
			}
			switch types.KindOf(b.Type) {
			case typesystem.KindStruct, typesystem.KindClass:
				r.Structs = append(r.Structs, describeStruct(types, table, b))
			}
		}
	}

	for _, id := range types.Interned() {
		r.Types = append(r.Types, types.String(id))
	}

	for _, d := range diags {
		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			Code:    string(d.Code),
			Name:    d.Code.Name(),
			Line:    d.Token.Line,
			Column:  d.Token.Column,
			Message: d.Message,
		})
	}
	return r
}

func describeBinding(types *typesystem.Table, b *symbols.Binding) Binding {
	out := Binding{
		Name:  b.Name,
		Kind:  declKind(b),
		State: b.State.String(),
	}
	if b.Decl != nil {
		out.Line = b.Decl.DeclName().Token.Line
	}
	if b.State == symbols.Resolved {
		out.Type = types.String(b.Type)
		out.Addressing = b.Addressing.String()
	}
	if b.Constant != nil {
		out.Constant = b.Constant.String()
	}
	return out
}

// declKind names the binding kind, falling back to the declaration form
// for bindings that did not resolve.
func declKind(b *symbols.Binding) string {
	if b.State == symbols.Resolved {
		return b.Kind.String()
	}
	switch b.Decl.(type) {
	case *ast.GlobalDecl, *ast.LocalDecl:
		return symbols.VariableBinding.String()
	case *ast.FunctionDecl:
		return symbols.FunctionBinding.String()
	case *ast.StructDecl, *ast.ClassDecl, *ast.VariantDecl:
		return symbols.TypeBinding.String()
	}
	return symbols.UnknownBinding.String()
}

func describeStruct(types *typesystem.Table, table *symbols.Table, b *symbols.Binding) Struct {
	typ := types.Get(b.Type)
	s := Struct{
		Name:   b.Name,
		Kind:   typ.Kind.String(),
		Size:   typ.Size,
		Fields: make([]Field, 0, len(b.Fields)),
	}
	offset := 0
	for _, f := range b.Fields {
		size := types.Size(f.Type)
		s.Fields = append(s.Fields, Field{
			Name:       f.Name,
			Type:       types.String(f.Type),
			Size:       size,
			Offset:     offset,
			HasDefault: f.Default != nil,
		})
		offset += size
	}
	if typ.Kind == typesystem.KindClass && b.MemberScope != symbols.NoScope {
		for _, id := range table.Bindings(b.MemberScope) {
			if m := table.Binding(id); m.Kind == symbols.FunctionBinding {
				s.Methods = append(s.Methods, m.Name)
			}
		}
	}
	return s
}

// Write encodes r as a YAML document.
func Write(w io.Writer, r *Report) error {
	return WriteAll(w, []*Report{r})
}

// WriteAll encodes reports as a stream of YAML documents.
func WriteAll(w io.Writer, reports []*Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, r := range reports {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding report for %s: %w", r.File, err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// Read decodes a stream written by WriteAll.
func Read(r io.Reader) ([]*Report, error) {
	dec := yaml.NewDecoder(r)
	var out []*Report
	for {
		rep := &Report{}
		if err := dec.Decode(rep); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return nil, fmt.Errorf("decoding report: %w", err)
		}
		out = append(out, rep)
	}
}
