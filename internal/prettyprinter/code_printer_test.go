package prettyprinter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/astyaml"
)

func decode(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := astyaml.DecodeString(src, "print.yaml")
	require.NoError(t, err)
	return mod
}

// exprOf decodes src as the value of a single global.
func exprOf(t *testing.T, src string) ast.Expr {
	t.Helper()
	mod := decode(t, "[{kind: global, name: v, value: "+src+"}]")
	return mod.Decls[0].(*ast.GlobalDecl).Value
}

func TestPrint_Declarations(t *testing.T) {
	mod := decode(t, `
decls:
  - {kind: global, name: limit, type: u16, value: {kind: int, value: 1500, suffix: u16}}
  - {kind: global, name: ratio, value: 0.5}
  - {kind: global, name: counter, type: mut i32}
  - kind: struct
    name: Point
    fields:
      - {name: x, type: i32, default: 0}
      - {name: y, type: i32}
  - {kind: variant, name: Color, members: [Red, Green]}
  - {kind: fn, name: ext, params: [{name: x, type: f64}], returns: [f64]}
  - kind: fn
    name: add
    params: [{name: a, type: i32}, {name: b, type: i32, default: 1}]
    returns: [i32]
    body: {kind: binary, op: '+', left: a, right: b}
`)
	want := `limit: u16 = 1500u16
ratio := 0.5
counter: mut i32

struct Point {
    x: i32 = 0
    y: i32
}

variant Color { Red, Green }
fn ext(x: f64) -> f64

fn add(a: i32, b: i32 = 1) -> i32 { a + b }
`
	assert.Equal(t, want, Print(mod))
}

func TestPrint_Class(t *testing.T) {
	mod := decode(t, `
- kind: class
  name: Counter
  fields: [{name: n, type: mut u32}]
  methods:
    - {kind: fn, name: get, returns: [u32], body: [n]}
`)
	want := `class Counter {
    n: mut u32

    fn get() -> u32 {
        n
    }
}
`
	assert.Equal(t, want, Print(mod))
}

func TestPrint_Blocks(t *testing.T) {
	mod := decode(t, `
- kind: fn
  name: run
  params: [{name: p, type: {kind: tuple, elems: [i32, bool]}}]
  returns: [i32, bool]
  body:
    - {kind: let, name: i, type: mut i32, value: 0}
    - kind: while
      cond: {kind: binary, op: '<', left: i, right: 10}
      body:
        - {kind: assign, op: '+=', target: i, value: 1}
        - kind: if
          cond: {kind: binary, op: '==', left: i, right: 5}
          then: [{kind: break}]
          else:
            kind: if
            cond: false
            then: [{kind: continue}]
            else: {kind: defer, expr: {kind: call, operand: f, args: [i]}}
    - {kind: assign, targets: [i, j], value: {kind: tuple, elems: [1, 2]}}
    - {kind: tuple, elems: [{kind: tuple_index, operand: p, index: 0}, true]}
`)
	want := `fn run(p: (i32, bool)) -> (i32, bool) {
    let i: mut i32 = 0
    while i < 10 {
        i += 1
        if i == 5 {
            break
        } elif false {
            continue
        } else {
            defer f(i)
        }
    }
    (i, j) = (1, 2)
    (p.0, true)
}
`
	assert.Equal(t, want, Print(mod))
}

func TestPrintExpr_Precedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"{kind: binary, op: '*', left: {kind: binary, op: '+', left: a, right: b}, right: c}", "(a + b) * c"},
		{"{kind: binary, op: '+', left: a, right: {kind: binary, op: '*', left: b, right: c}}", "a + b * c"},
		{"{kind: binary, op: '-', left: {kind: binary, op: '-', left: a, right: b}, right: c}", "a - b - c"},
		{"{kind: binary, op: '-', left: a, right: {kind: binary, op: '-', left: b, right: c}}", "a - (b - c)"},
		{"{kind: binary, op: '**', left: a, right: {kind: binary, op: '**', left: b, right: c}}", "a ** b ** c"},
		{"{kind: binary, op: '**', left: {kind: binary, op: '**', left: a, right: b}, right: c}", "(a ** b) ** c"},
		{"{kind: binary, op: '==', left: {kind: binary, op: '&', left: a, right: 1}, right: 0}", "a & 1 == 0"},
		{"{kind: unary, op: '-', operand: {kind: binary, op: '+', left: a, right: b}}", "-(a + b)"},
		{"{kind: unary, op: '!', operand: {kind: select, operand: s, field: ok}}", "!s.ok"},
		{"{kind: binary, op: '*', left: -2, right: x}", "-2 * x"},
		{"{kind: call, operand: {kind: binary, op: '+', left: f, right: g}, args: [1]}", "(f + g)(1)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, PrintExpr(exprOf(t, tt.src)))
		})
	}
}

func TestPrintExpr_Literals(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"{kind: int, value: 7, suffix: u8}", "7u8"},
		{"{kind: float, value: 2, suffix: f64}", "2.0f64"},
		{"1.25", "1.25"},
		{"{kind: char, value: 'x'}", "'x'"},
		{"{kind: tuple, elems: [1]}", "(1,)"},
		{"{kind: tuple, elems: []}", "()"},
		{"{kind: list, elems: [1, 2]}", "[1, 2]"},
		{"{kind: struct, name: Point, inits: [1, {kind: named, name: y, value: 2}]}", "Point { 1, y = 2 }"},
		{"{kind: struct, name: Empty, inits: []}", "Empty {}"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, PrintExpr(exprOf(t, tt.src)))
		})
	}
}

func TestPrintType(t *testing.T) {
	mod := decode(t, `
- {kind: global, name: a, type: {kind: array, length: 4, base: '*u8'}}
- {kind: global, name: b, type: {kind: fn, params: [i32, i32], returns: [i32]}}
- {kind: global, name: c, type: '&mut f32'}
`)
	var got []string
	for _, d := range mod.Decls {
		got = append(got, PrintType(d.(*ast.GlobalDecl).Type))
	}
	assert.Equal(t, []string{"[4]*u8", "fn(i32, i32) -> i32", "&mut f32"}, got)
}

func TestPrint_WrapsLongArguments(t *testing.T) {
	mod := decode(t, `
- kind: global
  name: origin
  value:
    kind: struct
    name: Configuration
    inits:
      - {kind: named, name: width, value: 1920}
      - {kind: named, name: height, value: 1080}
      - {kind: named, name: depth, value: 24}
`)
	p := NewCodePrinterWithWidth(40)
	p.PrintModule(mod)
	want := `origin := Configuration {
    width = 1920,
    height = 1080,
    depth = 24,
}
`
	assert.Equal(t, want, p.String())
}
