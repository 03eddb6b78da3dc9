// Package astyaml builds ast modules from YAML documents.
//
// The parser is not part of this repository, so modules are supplied as YAML:
// one mapping per node with a "kind" key. Scalars are shorthands: integers,
// floats and booleans are literals, other strings are identifiers in
// expression position and type names in type position; a sequence in
// expression position is a block. Token positions come from the YAML source
// unless a node sets "line" and "col".
//
//	decls:
//	  - {kind: global, name: x, type: i32, value: {kind: binary, op: "+", left: 1, right: 2}}
//	  - kind: fn
//	    name: add
//	    params: [{name: a, type: i32}, {name: b, type: i32, default: 1}]
//	    returns: [i32]
//	    body: [{kind: binary, op: "+", left: a, right: b}]
package astyaml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/token"
)

// ErrMalformed is wrapped by every structural decoding error.
var ErrMalformed = errors.New("malformed module")

// Decode reads one YAML document describing a module. file names the module
// in diagnostics; a "file" key in the document overrides it.
func Decode(r io.Reader, file string) (*ast.Module, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return &ast.Module{File: file}, nil
		}
		return nil, fmt.Errorf("astyaml: %s: %w", file, err)
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	d := &decoder{file: file}
	return d.module(doc)
}

// DecodeString is Decode over an in-memory document.
func DecodeString(src, file string) (*ast.Module, error) {
	return Decode(strings.NewReader(src), file)
}

// DecodeFile opens and decodes path.
func DecodeFile(path string) (*ast.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("astyaml: %w", err)
	}
	defer f.Close()
	return Decode(f, path)
}

type decoder struct {
	file string
}

func (d *decoder) errorf(n *yaml.Node, path, format string, args ...interface{}) error {
	return fmt.Errorf("%s:%d:%d: %s: %s: %w", d.file, n.Line, n.Column, path, fmt.Sprintf(format, args...), ErrMalformed)
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	n = resolve(n)
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// mapping is a decoded YAML mapping with its path for error messages.
type mapping struct {
	node *yaml.Node
	path string
	keys map[string]*yaml.Node
}

func (d *decoder) mapping(n *yaml.Node, path string) (*mapping, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, path, "expected a mapping, found %s", n.ShortTag())
	}
	m := &mapping{node: n, path: path, keys: make(map[string]*yaml.Node, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		m.keys[n.Content[i].Value] = n.Content[i+1]
	}
	return m, nil
}

func (m *mapping) get(key string) *yaml.Node {
	n := m.keys[key]
	if isNull(n) {
		return nil
	}
	return resolve(n)
}

func (m *mapping) sub(key string) string { return m.path + "." + key }

func (d *decoder) str(m *mapping, key string, required bool) (string, error) {
	n := m.get(key)
	if n == nil {
		if required {
			return "", d.errorf(m.node, m.path, "missing %q", key)
		}
		return "", nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", d.errorf(n, m.sub(key), "expected a scalar, found %s", n.ShortTag())
	}
	return strings.TrimSpace(n.Value), nil
}

func (d *decoder) integer(m *mapping, key string) (int, error) {
	n := m.get(key)
	if n == nil {
		return 0, d.errorf(m.node, m.path, "missing %q", key)
	}
	var v int
	if err := n.Decode(&v); err != nil {
		return 0, d.errorf(n, m.sub(key), "expected an integer")
	}
	return v, nil
}

func (d *decoder) seq(m *mapping, key string) ([]*yaml.Node, error) {
	n := m.get(key)
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, m.sub(key), "expected a sequence, found %s", n.ShortTag())
	}
	return n.Content, nil
}

// tokenAt builds a token positioned at n.
func (d *decoder) tokenAt(n *yaml.Node, typ token.TokenType, lexeme string) token.Token {
	return token.Token{Type: typ, Lexeme: lexeme, Line: n.Line, Column: n.Column}
}

// token builds a token for a mapping node, honouring explicit line/col keys.
func (d *decoder) token(m *mapping, typ token.TokenType, lexeme string) token.Token {
	tok := d.tokenAt(m.node, typ, lexeme)
	if n := m.get("line"); n != nil {
		_ = n.Decode(&tok.Line)
	}
	if n := m.get("col"); n != nil {
		_ = n.Decode(&tok.Column)
	}
	return tok
}

func (d *decoder) ident(m *mapping, key string) (*ast.Identifier, error) {
	n := m.get(key)
	if n == nil {
		return nil, d.errorf(m.node, m.path, "missing %q", key)
	}
	if n.Kind != yaml.ScalarNode || strings.TrimSpace(n.Value) == "" {
		return nil, d.errorf(n, m.sub(key), "expected a name")
	}
	return &ast.Identifier{Token: d.tokenAt(n, token.IDENT, n.Value), Value: strings.TrimSpace(n.Value)}, nil
}

func (d *decoder) operator(m *mapping) (token.Token, error) {
	op, err := d.str(m, "op", true)
	if err != nil {
		return token.Token{}, err
	}
	typ, ok := token.Operators[op]
	if !ok {
		return token.Token{}, d.errorf(m.keys["op"], m.sub("op"), "unknown operator %q", op)
	}
	return d.token(m, typ, op), nil
}

func (d *decoder) module(n *yaml.Node) (*ast.Module, error) {
	mod := &ast.Module{File: d.file}
	n = resolve(n)
	if isNull(n) {
		return mod, nil
	}

	var decls []*yaml.Node
	switch n.Kind {
	case yaml.SequenceNode:
		decls = n.Content
	case yaml.MappingNode:
		m, _ := d.mapping(n, "module")
		file, err := d.str(m, "file", false)
		if err != nil {
			return nil, err
		}
		if file != "" {
			mod.File = file
			d.file = file
		}
		if decls, err = d.seq(m, "decls"); err != nil {
			return nil, err
		}
	default:
		return nil, d.errorf(n, "module", "expected a mapping or a sequence of declarations")
	}

	for i, dn := range decls {
		decl, err := d.decl(dn, fmt.Sprintf("decls[%d]", i))
		if err != nil {
			return nil, err
		}
		mod.Decls = append(mod.Decls, decl)
	}
	return mod, nil
}
