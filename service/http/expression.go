package http

import (
	"strings"

	"github.com/google/shlex"
)

type Expression struct {
	Expr string `json:"expression"`
	Pid  int    `json:"pid"`
}

func newExpression(expr string, pid int) *Expression {
	return &Expression{Expr: expr, Pid: pid}
}

// resolve splits the expression into its command name and arguments.
func (e *Expression) resolve() (string, []string, error) {
	tokens, err := shlex.Split(e.Expr)
	if err != nil {
		return "", nil, err
	}
	if len(tokens) == 0 {
		return "", nil, nil
	}
	return strings.ToLower(tokens[0]), tokens[1:], nil
}
