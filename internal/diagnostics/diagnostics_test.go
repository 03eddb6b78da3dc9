package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/funvibe/semcore/internal/config"
	"github.com/funvibe/semcore/internal/token"
)

func tok(line, col int) token.Token {
	return token.Token{Type: token.IDENT, Lexeme: "x", Line: line, Column: col}
}

func TestNewError_FormatsTemplate(t *testing.T) {
	err := NewError(ErrTypeMismatch, tok(3, 7), "i32", "bool")
	if err.Message != "type mismatch: expected i32, got bool" {
		t.Errorf("unexpected message: %q", err.Message)
	}
	if got := err.Error(); got != "3:7: error [R004]: type mismatch: expected i32, got bool" {
		t.Errorf("unexpected Error(): %q", got)
	}
	err.File = "m.yaml"
	if !strings.HasPrefix(err.Error(), "m.yaml:3:7:") {
		t.Errorf("expected file prefix, got %q", err.Error())
	}
}

func TestSink_DeduplicatesAndSorts(t *testing.T) {
	s := NewSink("mod.yaml")
	s.Add(NewError(ErrUnresolvedName, tok(5, 1), "b"))
	s.Add(NewError(ErrUnresolvedName, tok(2, 4), "a"))
	s.Add(NewError(ErrUnresolvedName, tok(5, 1), "b"))
	s.Add(NewError(ErrTypeMismatch, tok(2, 4), "i32", "bool"))

	if s.Len() != 3 {
		t.Fatalf("expected 3 distinct diagnostics, got %d", s.Len())
	}
	errs := s.Errors()
	if errs[0].Token.Line != 2 || errs[2].Token.Line != 5 {
		t.Errorf("diagnostics not sorted by position: %v", errs)
	}
	if errs[0].Code != ErrUnresolvedName || errs[1].Code != ErrTypeMismatch {
		t.Errorf("same-position diagnostics should keep report order, got %s then %s", errs[0].Code, errs[1].Code)
	}
	if errs[0].File != "mod.yaml" {
		t.Errorf("sink should stamp its file, got %q", errs[0].File)
	}
	if first := s.First(); first.Token.Line != 5 {
		t.Errorf("First should return the earliest reported diagnostic, got line %d", first.Token.Line)
	}
}

func TestEmitter_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	em := NewEmitter(&buf, config.ColorAuto)
	n := em.EmitAll([]*DiagnosticError{NewError(ErrCyclicReference, tok(1, 1), "a")})
	if n != 1 {
		t.Fatalf("expected 1 emitted, got %d", n)
	}
	out := buf.String()
	if strings.Contains(out, "\033[") {
		t.Errorf("buffer writer must not receive colour codes: %q", out)
	}
	if !strings.Contains(out, "error[R003]: cyclic reference to 'a' (CyclicReference)") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "analysis failed with 1 error(s)") {
		t.Errorf("missing summary: %q", out)
	}
}

func TestEmitter_ForcedColor(t *testing.T) {
	var buf bytes.Buffer
	NewEmitter(&buf, config.ColorAlways).Emit(NewError(ErrNotAType, tok(1, 1), "x"))
	if !strings.Contains(buf.String(), colorRed) {
		t.Errorf("expected colour codes in forced mode: %q", buf.String())
	}
}
