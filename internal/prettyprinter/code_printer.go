package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/semcore/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"==": 1,
	"!=": 1,
	"<":  2,
	">":  2,
	"<=": 2,
	">=": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"<<": 6,
	">>": 6,
	"+":  7,
	"-":  7,
	"*":  8,
	"/":  8,
	"%":  8,
	"**": 9, // right-assoc
}

const (
	unaryPrecedence   = 10
	postfixPrecedence = 11
)

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return postfixPrecedence
}

var rightAssoc = map[string]bool{
	"**": true,
}

type CodePrinter struct {
	buf       bytes.Buffer
	indent    int
	lineWidth int // max line width (0 = unlimited)
	column    int // current column position
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{lineWidth: 100}
}

func NewCodePrinterWithWidth(width int) *CodePrinter {
	return &CodePrinter{lineWidth: width}
}

func (p *CodePrinter) SetLineWidth(width int) {
	p.lineWidth = width
}

// Print renders a module as source text.
func Print(mod *ast.Module) string {
	p := NewCodePrinter()
	p.PrintModule(mod)
	return p.String()
}

// PrintExpr renders one expression on a single line.
func PrintExpr(e ast.Expr) string {
	p := NewCodePrinterWithWidth(0)
	p.printExpr(e, 0, false)
	return p.String()
}

// PrintType renders a type as written in source.
func PrintType(t ast.TypeSpec) string {
	p := NewCodePrinterWithWidth(0)
	p.printType(t)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
	if idx := strings.LastIndex(s, "\n"); idx != -1 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
	p.column = 0
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.column = p.indent * 4
}

// fits reports whether s still fits on the current line.
func (p *CodePrinter) fits(s string) bool {
	return p.lineWidth == 0 || p.column+len(s) <= p.lineWidth
}

// PrintModule writes every declaration, separated by blank lines where a
// declaration spans several lines.
func (p *CodePrinter) PrintModule(mod *ast.Module) {
	if mod == nil {
		return
	}
	prevMultiline := false
	for i, d := range mod.Decls {
		multiline := isMultiline(d)
		if i > 0 && (multiline || prevMultiline) {
			p.writeln()
		}
		p.printDecl(d)
		p.writeln()
		prevMultiline = multiline
	}
}

func isMultiline(d ast.Decl) bool {
	switch d := d.(type) {
	case *ast.StructDecl, *ast.ClassDecl:
		return true
	case *ast.FunctionDecl:
		return d.Body != nil
	}
	return false
}

func (p *CodePrinter) printDecl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.GlobalDecl:
		p.printBinding(d.Name, d.Type, d.Value)
	case *ast.LocalDecl:
		p.printBinding(d.Name, d.Type, d.Value)
	case *ast.StructDecl:
		p.write("struct " + d.Name.Value + " {")
		p.printFields(d.Fields)
		p.write("}")
	case *ast.ClassDecl:
		p.write("class " + d.Name.Value + " {")
		p.printFields(d.Fields)
		p.indent++
		for _, m := range d.Methods {
			p.writeln()
			p.writeIndent()
			p.printFunction(m)
			p.writeln()
		}
		p.indent--
		p.write("}")
	case *ast.VariantDecl:
		p.write("variant " + d.Name.Value + " { ")
		for i, m := range d.Members {
			if i > 0 {
				p.write(", ")
			}
			p.write(m.Value)
		}
		p.write(" }")
	case *ast.FunctionDecl:
		p.printFunction(d)
	default:
		p.write("<???>")
	}
}

// printBinding writes "x: T = v", "x := v" or "x: T".
func (p *CodePrinter) printBinding(name *ast.Identifier, typ ast.TypeSpec, value ast.Expr) {
	p.write(name.Value)
	switch {
	case typ != nil && value != nil:
		p.write(": ")
		p.printType(typ)
		p.write(" = ")
		p.printExpr(value, 0, false)
	case typ != nil:
		p.write(": ")
		p.printType(typ)
	case value != nil:
		p.write(" := ")
		p.printExpr(value, 0, false)
	}
}

func (p *CodePrinter) printFields(fields []*ast.LocalDecl) {
	p.writeln()
	p.indent++
	for _, f := range fields {
		p.writeIndent()
		p.printBinding(f.Name, f.Type, f.Value)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
}

func (p *CodePrinter) printFunction(fn *ast.FunctionDecl) {
	p.write("fn " + fn.Name.Value + "(")
	for i, param := range fn.Params {
		if i > 0 {
			p.write(", ")
		}
		p.printBinding(param.Name, param.Type, param.Value)
	}
	p.write(")")
	if len(fn.Returns) > 0 {
		p.write(" -> ")
		p.printReturns(fn.Returns)
	}
	if fn.Body == nil {
		return
	}
	p.write(" ")
	if b, ok := fn.Body.(*ast.BlockExpr); ok {
		p.printBlock(b)
		return
	}
	p.write("{ ")
	p.printExpr(fn.Body, 0, false)
	p.write(" }")
}

func (p *CodePrinter) printReturns(rets []ast.TypeSpec) {
	if len(rets) == 1 {
		p.printType(rets[0])
		return
	}
	p.write("(")
	p.printTypes(rets)
	p.write(")")
}

func (p *CodePrinter) printTypes(types []ast.TypeSpec) {
	for i, t := range types {
		if i > 0 {
			p.write(", ")
		}
		p.printType(t)
	}
}

func (p *CodePrinter) printType(t ast.TypeSpec) {
	switch t := t.(type) {
	case *ast.NamedType:
		p.write(t.Name)
	case *ast.TupleType:
		p.write("(")
		p.printTypes(t.Elems)
		if len(t.Elems) == 1 {
			p.write(",")
		}
		p.write(")")
	case *ast.ArrayType:
		p.write("[" + strconv.Itoa(t.Length) + "]")
		p.printType(t.Base)
	case *ast.PointerType:
		p.write("*")
		p.printType(t.Base)
	case *ast.ReferenceType:
		p.write("&")
		p.printType(t.Base)
	case *ast.MutableType:
		p.write("mut ")
		p.printType(t.Base)
	case *ast.FunctionType:
		p.write("fn(")
		p.printTypes(t.Params)
		p.write(")")
		if len(t.Returns) > 0 {
			p.write(" -> ")
			p.printReturns(t.Returns)
		}
	case *ast.MapType:
		p.write("map[")
		p.printType(t.Key)
		p.write("]")
		p.printType(t.Value)
	case *ast.SliceType:
		p.write("[]")
		p.printType(t.Base)
	case *ast.GenericType:
		p.write(t.Name + "<")
		p.printTypes(t.Args)
		p.write(">")
	default:
		p.write("<???>")
	}
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expr, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		op := string(e.Token.Type)
		prec := getPrecedence(op)
		needParens := prec < parentPrec
		if prec == parentPrec {
			if isRight && !rightAssoc[op] {
				needParens = true
			} else if !isRight && rightAssoc[op] {
				needParens = true
			}
		}
		if needParens {
			p.write("(")
		}
		p.printExpr(e.Left, prec, false)
		p.write(" " + op + " ")
		p.printExpr(e.Right, prec, true)
		if needParens {
			p.write(")")
		}

	case *ast.UnaryExpr:
		needParens := unaryPrecedence < parentPrec
		if needParens {
			p.write("(")
		}
		p.write(string(e.Token.Type))
		p.printExpr(e.Operand, unaryPrecedence, false)
		if needParens {
			p.write(")")
		}

	case *ast.AssignExpr:
		if len(e.Targets) == 1 {
			p.printExpr(e.Targets[0], 0, false)
		} else {
			p.write("(")
			p.printList(e.Targets)
			p.write(")")
		}
		p.write(" " + string(e.Token.Type) + " ")
		p.printExpr(e.Value, 0, false)

	default:
		p.printOperand(expr)
	}
}

// printOperand prints expressions that never need parentheses.
func (p *CodePrinter) printOperand(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Identifier:
		p.write(e.Value)
	case *ast.IntegerLiteral:
		p.write(strconv.FormatUint(e.Value, 10) + e.Suffix)
	case *ast.FloatLiteral:
		p.write(formatFloat(e.Value) + e.Suffix)
	case *ast.CharLiteral:
		p.write(strconv.QuoteRune(e.Value))
	case *ast.BoolLiteral:
		p.write(strconv.FormatBool(e.Value))

	case *ast.TupleExpr:
		p.write("(")
		p.printList(e.Elements)
		if len(e.Elements) == 1 {
			p.write(",")
		}
		p.write(")")
	case *ast.ListExpr:
		p.write("[")
		p.printList(e.Elements)
		p.write("]")

	case *ast.ParenExpr:
		p.printExpr(e.Operand, postfixPrecedence, false)
		p.printArgs("(", e.Args, ")")
	case *ast.NamedArg:
		p.write(e.Name.Value + " = ")
		p.printExpr(e.Value, 0, false)
	case *ast.SelectorExpr:
		p.printExpr(e.Operand, postfixPrecedence, false)
		p.write("." + e.Field.Value)
	case *ast.TupleIndexExpr:
		p.printExpr(e.Operand, postfixPrecedence, false)
		p.write("." + strconv.Itoa(e.Index))
	case *ast.StructLiteral:
		p.write(e.Name.Value + " ")
		if len(e.Inits) == 0 {
			p.write("{}")
			return
		}
		p.printArgs("{ ", e.Inits, " }")

	case *ast.DeferExpr:
		p.write("defer ")
		p.printExpr(e.Expr, 0, false)
	case *ast.IfExpr:
		p.printIf(e)
	case *ast.WhileExpr:
		p.write("while ")
		p.printExpr(e.Condition, 0, false)
		p.write(" ")
		p.printBlock(e.Body)
	case *ast.BreakExpr:
		p.write("break")
	case *ast.ContinueExpr:
		p.write("continue")
	case *ast.BlockExpr:
		p.printBlock(e)
	case *ast.LetExpr:
		p.write("let ")
		p.printBinding(e.Decl.Name, e.Decl.Type, e.Decl.Value)

	case *ast.BinaryExpr, *ast.UnaryExpr, *ast.AssignExpr:
		p.write("(")
		p.printExpr(expr, 0, false)
		p.write(")")
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printIf(e *ast.IfExpr) {
	p.write("if ")
	p.printExpr(e.Condition, 0, false)
	p.write(" ")
	p.printBlock(e.Body)
	switch els := e.Else.(type) {
	case *ast.IfExpr:
		p.write(" el")
		p.printIf(els)
	case *ast.BlockExpr:
		p.write(" else ")
		p.printBlock(els)
	}
}

func (p *CodePrinter) printBlock(b *ast.BlockExpr) {
	if b == nil || len(b.Elements) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.writeln()
	p.indent++
	for _, el := range b.Elements {
		p.writeIndent()
		p.printExpr(el, 0, false)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) printList(elems []ast.Expr) {
	for i, el := range elems {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(el, 0, false)
	}
}

// printArgs writes a delimited argument list on one line when it fits,
// otherwise one argument per line.
func (p *CodePrinter) printArgs(open string, args []ast.Expr, closing string) {
	flat := NewCodePrinterWithWidth(0)
	flat.printList(args)
	oneLine := flat.String()
	if !strings.Contains(oneLine, "\n") && p.fits(open+oneLine+closing) {
		p.write(open + oneLine + closing)
		return
	}
	p.write(strings.TrimRight(open, " "))
	p.writeln()
	p.indent++
	for _, arg := range args {
		p.writeIndent()
		p.printExpr(arg, 0, false)
		p.write(",")
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write(strings.TrimLeft(closing, " "))
}

// formatFloat keeps a decimal point so the literal reads back as a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
