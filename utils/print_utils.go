package utils

import (
	"fmt"
	"io"
	"strings"
)

func PrintStringLine(w io.Writer, s ...string) {
	for _, str := range s {
		fmt.Fprintln(w, str)
	}
}

// PrintBlock writes s, adding a trailing newline if it lacks one.
func PrintBlock(w io.Writer, s string) {
	if s == "" {
		return
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	io.WriteString(w, s)
}
