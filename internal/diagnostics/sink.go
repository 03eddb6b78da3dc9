package diagnostics

import (
	"fmt"
	"sort"
)

// Sink collects diagnostics during analysis of one module.
// Each detection point reports exactly once; a second report at the same
// position with the same code replaces the first.
type Sink struct {
	File   string
	errors map[string]*DiagnosticError
	order  []string
}

func NewSink(file string) *Sink {
	return &Sink{
		File:   file,
		errors: make(map[string]*DiagnosticError),
	}
}

// Add records a diagnostic, deduplicating by position and code.
func (s *Sink) Add(err *DiagnosticError) {
	if err.File == "" {
		err.File = s.File
	}
	key := fmt.Sprintf("%d:%d:%s", err.Token.Line, err.Token.Column, err.Code)
	if _, seen := s.errors[key]; !seen {
		s.order = append(s.order, key)
	}
	s.errors[key] = err
}

// HasErrors reports whether any diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	return len(s.errors) > 0
}

// Len is the number of distinct diagnostics.
func (s *Sink) Len() int {
	return len(s.errors)
}

// Errors returns the diagnostics sorted by line, then column.
// Diagnostics at the same position keep report order.
func (s *Sink) Errors() []*DiagnosticError {
	result := make([]*DiagnosticError, 0, len(s.order))
	for _, key := range s.order {
		result = append(result, s.errors[key])
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Token.Line != result[j].Token.Line {
			return result[i].Token.Line < result[j].Token.Line
		}
		return result[i].Token.Column < result[j].Token.Column
	})
	return result
}

// First returns the earliest reported diagnostic, or nil.
func (s *Sink) First() *DiagnosticError {
	if len(s.order) == 0 {
		return nil
	}
	return s.errors[s.order[0]]
}
