package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/funvibe/semcore/internal/config"
	"github.com/mattn/go-isatty"
)

const (
	colorRed   = "\033[31m"
	colorBold  = "\033[1m"
	colorDim   = "\033[2m"
	colorReset = "\033[0m"
)

// Emitter renders diagnostics to a writer.
type Emitter struct {
	writer io.Writer
	color  bool
}

// NewEmitter creates an emitter. mode is one of the config color modes;
// in auto mode colour is used only when w is a terminal and NO_COLOR is unset.
func NewEmitter(w io.Writer, mode string) *Emitter {
	return &Emitter{writer: w, color: useColor(w, mode)}
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if config.IsTestMode {
		return false
	}
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// Emit writes one diagnostic.
func (e *Emitter) Emit(d *DiagnosticError) {
	loc := fmt.Sprintf("%d:%d", d.Token.Line, d.Token.Column)
	if d.File != "" {
		loc = d.File + ":" + loc
	}
	if e.color {
		fmt.Fprintf(e.writer, "%s%s%s: %s%serror[%s]%s: %s %s(%s)%s\n",
			colorBold, loc, colorReset,
			colorBold, colorRed, d.Code, colorReset,
			d.Message,
			colorDim, d.Code.Name(), colorReset)
		return
	}
	fmt.Fprintf(e.writer, "%s: error[%s]: %s (%s)\n", loc, d.Code, d.Message, d.Code.Name())
}

// EmitAll writes every diagnostic followed by a summary line. It returns the number emitted.
func (e *Emitter) EmitAll(diags []*DiagnosticError) int {
	for _, d := range diags {
		e.Emit(d)
	}
	if len(diags) > 0 {
		fmt.Fprintf(e.writer, "\nanalysis failed with %d error(s)\n", len(diags))
	}
	return len(diags)
}
