package astyaml

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/token"
)

func (d *decoder) expr(n *yaml.Node, path string) (ast.Expr, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		return d.scalar(n, path)
	case yaml.SequenceNode:
		elems, err := d.exprList(n.Content, path)
		if err != nil {
			return nil, err
		}
		return &ast.BlockExpr{Token: d.tokenAt(n, token.LBRACE, "{"), Elements: elems}, nil
	case yaml.MappingNode:
		m, err := d.mapping(n, path)
		if err != nil {
			return nil, err
		}
		return d.node(m)
	}
	return nil, d.errorf(n, path, "expected an expression, found %s", n.ShortTag())
}

func (d *decoder) exprList(nodes []*yaml.Node, path string) ([]ast.Expr, error) {
	out := make([]ast.Expr, 0, len(nodes))
	for i, n := range nodes {
		e, err := d.expr(n, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (d *decoder) exprs(m *mapping, key string) ([]ast.Expr, error) {
	nodes, err := d.seq(m, key)
	if err != nil {
		return nil, err
	}
	return d.exprList(nodes, m.sub(key))
}

func (d *decoder) child(m *mapping, key string) (ast.Expr, error) {
	n := m.get(key)
	if n == nil {
		return nil, d.errorf(m.node, m.path, "missing %q", key)
	}
	return d.expr(n, m.sub(key))
}

// scalar decodes literal and identifier shorthands. A negative number is a
// unary minus applied to the literal.
func (d *decoder) scalar(n *yaml.Node, path string) (ast.Expr, error) {
	text := strings.TrimSpace(n.Value)
	switch n.Tag {
	case "!!int", "!!float":
		if strings.HasPrefix(text, "-") {
			operand, err := d.number(n, path, text[1:], n.Tag == "!!float", "")
			if err != nil {
				return nil, err
			}
			return &ast.UnaryExpr{Token: d.tokenAt(n, token.MINUS, "-"), Operand: operand}, nil
		}
		return d.number(n, path, strings.TrimPrefix(text, "+"), n.Tag == "!!float", "")
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, d.errorf(n, path, "invalid boolean %q", text)
		}
		typ := token.FALSE
		if b {
			typ = token.TRUE
		}
		return &ast.BoolLiteral{Token: d.tokenAt(n, typ, text), Value: b}, nil
	case "!!str":
		if text == "" {
			return nil, d.errorf(n, path, "empty identifier")
		}
		return &ast.Identifier{Token: d.tokenAt(n, token.IDENT, text), Value: text}, nil
	}
	return nil, d.errorf(n, path, "unexpected scalar %s", n.ShortTag())
}

func (d *decoder) number(n *yaml.Node, path, text string, isFloat bool, suffix string) (ast.Expr, error) {
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, d.errorf(n, path, "invalid float %q", text)
		}
		return &ast.FloatLiteral{Token: d.tokenAt(n, token.FLOAT, text), Value: f, Suffix: suffix}, nil
	}
	u, err := strconv.ParseUint(strings.ReplaceAll(text, "_", ""), 0, 64)
	if err != nil {
		return nil, d.errorf(n, path, "invalid integer %q", text)
	}
	return &ast.IntegerLiteral{Token: d.tokenAt(n, token.INT, text), Value: u, Suffix: suffix}, nil
}

// node decodes an expression mapping by its kind.
func (d *decoder) node(m *mapping) (ast.Expr, error) {
	kind, err := d.str(m, "kind", true)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "int", "float":
		vn := m.get("value")
		if vn == nil || vn.Kind != yaml.ScalarNode {
			return nil, d.errorf(m.node, m.path, "missing \"value\"")
		}
		suffix, err := d.str(m, "suffix", false)
		if err != nil {
			return nil, err
		}
		e, err := d.number(vn, m.sub("value"), strings.TrimSpace(vn.Value), kind == "float", suffix)
		if err != nil {
			return nil, err
		}
		tok := d.token(m, e.GetToken().Type, e.GetToken().Lexeme+suffix)
		switch lit := e.(type) {
		case *ast.IntegerLiteral:
			lit.Token = tok
		case *ast.FloatLiteral:
			lit.Token = tok
		}
		return e, nil

	case "char":
		s, err := d.str(m, "value", true)
		if err != nil {
			return nil, err
		}
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError || size != len(s) {
			return nil, d.errorf(m.node, m.sub("value"), "expected a single character, got %q", s)
		}
		return &ast.CharLiteral{Token: d.token(m, token.CHAR, strconv.QuoteRune(r)), Value: r}, nil

	case "bool":
		vn := m.get("value")
		if vn == nil {
			return nil, d.errorf(m.node, m.path, "missing \"value\"")
		}
		return d.scalar(vn, m.sub("value"))

	case "ident":
		name, err := d.ident(m, "name")
		if err != nil {
			return nil, err
		}
		name.Token = d.token(m, token.IDENT, name.Value)
		return name, nil

	case "tuple", "list":
		elems, err := d.exprs(m, "elems")
		if err != nil {
			return nil, err
		}
		if kind == "tuple" {
			return &ast.TupleExpr{Token: d.token(m, token.LPAREN, "("), Elements: elems}, nil
		}
		return &ast.ListExpr{Token: d.token(m, token.COMMA, ","), Elements: elems}, nil

	case "call", "paren":
		operand, err := d.child(m, "operand")
		if err != nil {
			return nil, err
		}
		args, err := d.exprs(m, "args")
		if err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Token: d.token(m, token.LPAREN, "("), Operand: operand, Args: args}, nil

	case "named":
		name, err := d.ident(m, "name")
		if err != nil {
			return nil, err
		}
		value, err := d.child(m, "value")
		if err != nil {
			return nil, err
		}
		return &ast.NamedArg{Token: d.token(m, token.ASSIGN, "="), Name: name, Value: value}, nil

	case "select":
		operand, err := d.child(m, "operand")
		if err != nil {
			return nil, err
		}
		field, err := d.ident(m, "field")
		if err != nil {
			return nil, err
		}
		return &ast.SelectorExpr{Token: d.token(m, token.DOT, "."), Operand: operand, Field: field}, nil

	case "tuple_index":
		operand, err := d.child(m, "operand")
		if err != nil {
			return nil, err
		}
		index, err := d.integer(m, "index")
		if err != nil {
			return nil, err
		}
		return &ast.TupleIndexExpr{Token: d.token(m, token.DOT, "."+strconv.Itoa(index)), Operand: operand, Index: index}, nil

	case "struct":
		name, err := d.ident(m, "name")
		if err != nil {
			return nil, err
		}
		inits, err := d.exprs(m, "inits")
		if err != nil {
			return nil, err
		}
		return &ast.StructLiteral{Token: d.token(m, token.LBRACE, "{"), Name: name, Inits: inits}, nil

	case "defer":
		e, err := d.child(m, "expr")
		if err != nil {
			return nil, err
		}
		return &ast.DeferExpr{Token: d.token(m, token.DEFER, "defer"), Expr: e}, nil

	case "if":
		return d.ifExpr(m)

	case "while":
		cond, err := d.child(m, "cond")
		if err != nil {
			return nil, err
		}
		body, err := d.block(m, "body")
		if err != nil {
			return nil, err
		}
		return &ast.WhileExpr{Token: d.token(m, token.WHILE, "while"), Condition: cond, Body: body}, nil

	case "break":
		return &ast.BreakExpr{Token: d.token(m, token.BREAK, "break")}, nil
	case "continue":
		return &ast.ContinueExpr{Token: d.token(m, token.CONTINUE, "continue")}, nil

	case "assign":
		return d.assign(m)

	case "block":
		elems, err := d.exprs(m, "elems")
		if err != nil {
			return nil, err
		}
		return &ast.BlockExpr{Token: d.token(m, token.LBRACE, "{"), Elements: elems}, nil

	case "let":
		decl, err := d.local(m)
		if err != nil {
			return nil, err
		}
		return &ast.LetExpr{Token: d.token(m, token.LET, "let"), Decl: decl}, nil

	case "binary":
		tok, err := d.operator(m)
		if err != nil {
			return nil, err
		}
		left, err := d.child(m, "left")
		if err != nil {
			return nil, err
		}
		right, err := d.child(m, "right")
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Token: tok, Left: left, Right: right}, nil

	case "unary":
		tok, err := d.operator(m)
		if err != nil {
			return nil, err
		}
		operand, err := d.child(m, "operand")
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Token: tok, Operand: operand}, nil
	}
	return nil, d.errorf(m.node, m.path, "unknown expression kind %q", kind)
}

// block decodes a key that must hold a block: a sequence or a block mapping.
func (d *decoder) block(m *mapping, key string) (*ast.BlockExpr, error) {
	e, err := d.child(m, key)
	if err != nil {
		return nil, err
	}
	if b, ok := e.(*ast.BlockExpr); ok {
		return b, nil
	}
	return &ast.BlockExpr{Token: e.GetToken(), Elements: []ast.Expr{e}}, nil
}

// ifExpr decodes {cond, then, else}. else may be another if (an elif) or a block.
func (d *decoder) ifExpr(m *mapping) (*ast.IfExpr, error) {
	cond, err := d.child(m, "cond")
	if err != nil {
		return nil, err
	}
	body, err := d.block(m, "then")
	if err != nil {
		return nil, err
	}
	n := &ast.IfExpr{Token: d.token(m, token.IF, "if"), Condition: cond, Body: body}
	if m.get("else") == nil {
		return n, nil
	}
	alt, err := d.child(m, "else")
	if err != nil {
		return nil, err
	}
	switch alt.(type) {
	case *ast.IfExpr, *ast.BlockExpr:
		n.Else = alt
	default:
		n.Else = &ast.BlockExpr{Token: alt.GetToken(), Elements: []ast.Expr{alt}}
	}
	return n, nil
}

// assign decodes {op, target | targets, value}. op defaults to "=".
func (d *decoder) assign(m *mapping) (*ast.AssignExpr, error) {
	tok := d.token(m, token.ASSIGN, "=")
	if m.get("op") != nil {
		var err error
		if tok, err = d.operator(m); err != nil {
			return nil, err
		}
	}
	var targets []ast.Expr
	if m.get("target") != nil {
		t, err := d.child(m, "target")
		if err != nil {
			return nil, err
		}
		targets = []ast.Expr{t}
	} else {
		var err error
		if targets, err = d.exprs(m, "targets"); err != nil {
			return nil, err
		}
	}
	if len(targets) == 0 {
		return nil, d.errorf(m.node, m.path, "assignment needs a target")
	}
	value, err := d.child(m, "value")
	if err != nil {
		return nil, err
	}
	return &ast.AssignExpr{Token: tok, Targets: targets, Value: value}, nil
}
