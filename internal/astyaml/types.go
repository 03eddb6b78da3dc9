package astyaml

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/token"
)

// typeSpec decodes a type. A scalar is a type name, optionally prefixed by
// "mut ", "*" or "&".
func (d *decoder) typeSpec(n *yaml.Node, path string) (ast.TypeSpec, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		return d.typeName(n, path, strings.TrimSpace(n.Value))
	case yaml.MappingNode:
	default:
		return nil, d.errorf(n, path, "expected a type, found %s", n.ShortTag())
	}

	m, err := d.mapping(n, path)
	if err != nil {
		return nil, err
	}
	kind, err := d.str(m, "kind", true)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "named":
		name, err := d.str(m, "name", true)
		if err != nil {
			return nil, err
		}
		return &ast.NamedType{Token: d.token(m, token.IDENT, name), Name: name}, nil
	case "tuple":
		elems, err := d.typeSpecs(m, "elems")
		if err != nil {
			return nil, err
		}
		return &ast.TupleType{Token: d.token(m, token.LPAREN, "("), Elems: elems}, nil
	case "array":
		length, err := d.integer(m, "length")
		if err != nil {
			return nil, err
		}
		base, err := d.baseType(m)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayType{Token: d.token(m, token.LBRACKET, "["), Base: base, Length: length}, nil
	case "pointer", "ref", "reference", "mut", "slice":
		base, err := d.baseType(m)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "pointer":
			return &ast.PointerType{Token: d.token(m, token.ASTERISK, "*"), Base: base}, nil
		case "mut":
			return &ast.MutableType{Token: d.token(m, token.MUT, "mut"), Base: base}, nil
		case "slice":
			return &ast.SliceType{Token: d.token(m, token.LBRACKET, "["), Base: base}, nil
		default:
			return &ast.ReferenceType{Token: d.token(m, token.AMPERSAND, "&"), Base: base}, nil
		}
	case "fn", "function":
		params, err := d.typeSpecs(m, "params")
		if err != nil {
			return nil, err
		}
		returns, err := d.typeSpecs(m, "returns")
		if err != nil {
			return nil, err
		}
		return &ast.FunctionType{Token: d.token(m, token.FN, "fn"), Params: params, Returns: returns}, nil
	case "map":
		kn, vn := m.get("key"), m.get("value")
		if kn == nil || vn == nil {
			return nil, d.errorf(m.node, path, "map needs key and value")
		}
		key, err := d.typeSpec(kn, m.sub("key"))
		if err != nil {
			return nil, err
		}
		value, err := d.typeSpec(vn, m.sub("value"))
		if err != nil {
			return nil, err
		}
		return &ast.MapType{Token: d.token(m, token.IDENT, "map"), Key: key, Value: value}, nil
	case "generic":
		name, err := d.str(m, "name", true)
		if err != nil {
			return nil, err
		}
		args, err := d.typeSpecs(m, "args")
		if err != nil {
			return nil, err
		}
		return &ast.GenericType{Token: d.token(m, token.IDENT, name), Name: name, Args: args}, nil
	}
	return nil, d.errorf(m.node, path, "unknown type kind %q", kind)
}

func (d *decoder) typeName(n *yaml.Node, path, text string) (ast.TypeSpec, error) {
	tok := d.tokenAt(n, token.IDENT, text)
	switch {
	case text == "":
		return nil, d.errorf(n, path, "empty type name")
	case strings.HasPrefix(text, "mut "):
		base, err := d.typeName(n, path, strings.TrimSpace(text[len("mut "):]))
		if err != nil {
			return nil, err
		}
		tok.Type, tok.Lexeme = token.MUT, "mut"
		return &ast.MutableType{Token: tok, Base: base}, nil
	case strings.HasPrefix(text, "*"):
		base, err := d.typeName(n, path, strings.TrimSpace(text[1:]))
		if err != nil {
			return nil, err
		}
		tok.Type, tok.Lexeme = token.ASTERISK, "*"
		return &ast.PointerType{Token: tok, Base: base}, nil
	case strings.HasPrefix(text, "&"):
		base, err := d.typeName(n, path, strings.TrimSpace(text[1:]))
		if err != nil {
			return nil, err
		}
		tok.Type, tok.Lexeme = token.AMPERSAND, "&"
		return &ast.ReferenceType{Token: tok, Base: base}, nil
	}
	return &ast.NamedType{Token: tok, Name: text}, nil
}

func (d *decoder) baseType(m *mapping) (ast.TypeSpec, error) {
	n := m.get("base")
	if n == nil {
		return nil, d.errorf(m.node, m.path, "missing \"base\"")
	}
	return d.typeSpec(n, m.sub("base"))
}

func (d *decoder) typeSpecs(m *mapping, key string) ([]ast.TypeSpec, error) {
	nodes, err := d.seq(m, key)
	if err != nil {
		return nil, err
	}
	out := make([]ast.TypeSpec, 0, len(nodes))
	for i, n := range nodes {
		t, err := d.typeSpec(n, fmt.Sprintf("%s[%d]", m.sub(key), i))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
