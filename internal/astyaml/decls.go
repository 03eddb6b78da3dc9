package astyaml

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/token"
)

func (d *decoder) decl(n *yaml.Node, path string) (ast.Decl, error) {
	m, err := d.mapping(n, path)
	if err != nil {
		return nil, err
	}
	kind, err := d.str(m, "kind", true)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "global":
		name, typ, value, err := d.variable(m)
		if err != nil {
			return nil, err
		}
		return &ast.GlobalDecl{Token: d.token(m, token.IDENT, name.Value), Name: name, Type: typ, Value: value}, nil
	case "local", "let":
		return d.local(m)
	case "struct":
		name, err := d.ident(m, "name")
		if err != nil {
			return nil, err
		}
		fields, err := d.locals(m, "fields")
		if err != nil {
			return nil, err
		}
		return &ast.StructDecl{Token: d.token(m, token.STRUCT, "struct"), Name: name, Fields: fields}, nil
	case "class":
		name, err := d.ident(m, "name")
		if err != nil {
			return nil, err
		}
		fields, err := d.locals(m, "fields")
		if err != nil {
			return nil, err
		}
		methodNodes, err := d.seq(m, "methods")
		if err != nil {
			return nil, err
		}
		cls := &ast.ClassDecl{Token: d.token(m, token.CLASS, "class"), Name: name, Fields: fields}
		for i, mn := range methodNodes {
			mm, err := d.mapping(mn, fmt.Sprintf("%s[%d]", m.sub("methods"), i))
			if err != nil {
				return nil, err
			}
			fn, err := d.function(mm)
			if err != nil {
				return nil, err
			}
			cls.Methods = append(cls.Methods, fn)
		}
		return cls, nil
	case "variant":
		name, err := d.ident(m, "name")
		if err != nil {
			return nil, err
		}
		memberNodes, err := d.seq(m, "members")
		if err != nil {
			return nil, err
		}
		v := &ast.VariantDecl{Token: d.token(m, token.VARIANT, "variant"), Name: name}
		for i, mn := range memberNodes {
			mn = resolve(mn)
			if mn.Kind != yaml.ScalarNode || mn.Value == "" {
				return nil, d.errorf(mn, fmt.Sprintf("%s[%d]", m.sub("members"), i), "expected a member name")
			}
			v.Members = append(v.Members, &ast.Identifier{Token: d.tokenAt(mn, token.IDENT, mn.Value), Value: mn.Value})
		}
		return v, nil
	case "fn", "function":
		return d.function(m)
	}
	return nil, d.errorf(m.node, m.path, "unknown declaration kind %q", kind)
}

// variable decodes the name/type/value triple shared by globals and locals.
// "default" is accepted as a synonym of "value" for fields and parameters.
func (d *decoder) variable(m *mapping) (*ast.Identifier, ast.TypeSpec, ast.Expr, error) {
	name, err := d.ident(m, "name")
	if err != nil {
		return nil, nil, nil, err
	}
	var typ ast.TypeSpec
	if n := m.get("type"); n != nil {
		if typ, err = d.typeSpec(n, m.sub("type")); err != nil {
			return nil, nil, nil, err
		}
	}
	var value ast.Expr
	key := "value"
	if m.get(key) == nil {
		key = "default"
	}
	if n := m.get(key); n != nil {
		if value, err = d.expr(n, m.sub(key)); err != nil {
			return nil, nil, nil, err
		}
	}
	return name, typ, value, nil
}

func (d *decoder) local(m *mapping) (*ast.LocalDecl, error) {
	name, typ, value, err := d.variable(m)
	if err != nil {
		return nil, err
	}
	return &ast.LocalDecl{Token: d.token(m, token.LET, name.Value), Name: name, Type: typ, Value: value}, nil
}

func (d *decoder) locals(m *mapping, key string) ([]*ast.LocalDecl, error) {
	nodes, err := d.seq(m, key)
	if err != nil {
		return nil, err
	}
	out := make([]*ast.LocalDecl, 0, len(nodes))
	for i, n := range nodes {
		lm, err := d.mapping(n, fmt.Sprintf("%s[%d]", m.sub(key), i))
		if err != nil {
			return nil, err
		}
		l, err := d.local(lm)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func (d *decoder) function(m *mapping) (*ast.FunctionDecl, error) {
	name, err := d.ident(m, "name")
	if err != nil {
		return nil, err
	}
	params, err := d.locals(m, "params")
	if err != nil {
		return nil, err
	}
	returns, err := d.typeSpecs(m, "returns")
	if err != nil {
		return nil, err
	}
	fn := &ast.FunctionDecl{Token: d.token(m, token.FN, "fn"), Name: name, Params: params, Returns: returns}
	if n := m.get("body"); n != nil {
		if fn.Body, err = d.expr(n, m.sub("body")); err != nil {
			return nil, err
		}
	}
	return fn, nil
}
