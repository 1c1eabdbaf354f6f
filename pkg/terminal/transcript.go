package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	colorRed    = 31
	colorYellow = 33
)

// pagingWriter is the destination of terminal output, normally stdout.
type pagingWriter struct {
	w    io.Writer
	base io.Writer
}

func newPagingWriter(w io.Writer) *pagingWriter {
	return &pagingWriter{w: w, base: w}
}

func (p *pagingWriter) Write(b []byte) (int, error) {
	return p.w.Write(b)
}

// Reset undoes RedirectTo.
func (p *pagingWriter) Reset() {
	p.w = p.base
}

// transcriptWriter writes terminal output and, when a transcript file is
// open, a copy of everything including echoed commands.
type transcriptWriter struct {
	pw         *pagingWriter
	file       io.WriteCloser
	colorCodes bool
}

func newTranscriptWriter() *transcriptWriter {
	return &transcriptWriter{
		pw:         newPagingWriter(colorable.NewColorableStdout()),
		colorCodes: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

func (t *transcriptWriter) Write(b []byte) (int, error) {
	if t.file != nil {
		t.file.Write(b)
	}
	return t.pw.Write(b)
}

// Echo records b in the transcript only.
func (t *transcriptWriter) Echo(s string) {
	if t.file != nil {
		io.WriteString(t.file, s)
	}
}

// Highlight writes s in the given color when stdout is a terminal.
func (t *transcriptWriter) Highlight(color int, s string) {
	if t.colorCodes {
		fmt.Fprintf(t.pw, terminalHighlightEscapeCode, color)
		defer fmt.Fprint(t.pw, terminalResetEscapeCode)
	}
	io.WriteString(t.pw, s)
	if t.file != nil {
		io.WriteString(t.file, s)
	}
}

func (t *transcriptWriter) Flush() {
	if f, ok := t.file.(interface{ Sync() error }); ok {
		f.Sync()
	}
}

func (t *transcriptWriter) OpenTranscript(path string) error {
	if err := t.CloseTranscript(); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	t.file = f
	return nil
}

func (t *transcriptWriter) CloseTranscript() error {
	if t.file == nil {
		return nil
	}
	err := t.file.Close()
	t.file = nil
	return err
}
