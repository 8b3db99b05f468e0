package http

import "github.com/google/shlex"

type Expression struct {
	Expr string `json:"expression"`
	Pid  int    `json:"pid"`
}

func newExpression(expr string, pid int) *Expression {
	return &Expression{Expr: expr, Pid: pid}
}

// resolve splits the expression into command word and arguments. shlex
// keeps a quoted hex payload like `patch 0x1000 "90 90"` together as
// one argument.
func (e *Expression) resolve() (string, []string, error) {
	fields, err := shlex.Split(e.Expr)
	if err != nil {
		return "", nil, err
	}
	if len(fields) == 0 {
		return "", nil, nil
	}
	return fields[0], fields[1:], nil
}
