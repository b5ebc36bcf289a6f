package lint

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Filter decides which messages are kept, using a CEL boolean expression over
// the variables path, name, code, message, severity, line and char. line and
// char are 0 when absent.
//
//	severity != "advice" && !path.startsWith("vendor/")
type Filter struct {
	expr string
	prg  cel.Program
}

// NewFilter compiles expr. An empty expression keeps every message.
func NewFilter(expr string) (*Filter, error) {
	if expr == "" {
		return &Filter{}, nil
	}

	env, err := cel.NewEnv(
		cel.Variable("path", cel.StringType),
		cel.Variable("name", cel.StringType),
		cel.Variable("code", cel.StringType),
		cel.Variable("message", cel.StringType),
		cel.Variable("severity", cel.StringType),
		cel.Variable("line", cel.IntType),
		cel.Variable("char", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter environment: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expr, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("invalid filter %q: must evaluate to bool, got %s", expr, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expr
}

// Keep reports whether msg passes the filter.
func (f *Filter) Keep(msg Message) (bool, error) {
	if f == nil || f.prg == nil {
		return true, nil
	}
	out, _, err := f.prg.Eval(map[string]any{
		"path":     msg.Path,
		"name":     msg.Name,
		"code":     msg.Code,
		"message":  msg.Description,
		"severity": msg.Severity.String(),
		"line":     int64(msg.lineOrZero()),
		"char":     int64(msg.charOrZero()),
	})
	if err != nil {
		return false, fmt.Errorf("filter %q: %w", f.expr, err)
	}
	keep, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter %q: result is %T, not bool", f.expr, out.Value())
	}
	return keep, nil
}

// Apply returns the messages that pass the filter, in order.
func (f *Filter) Apply(msgs []Message) ([]Message, error) {
	if f == nil || f.prg == nil {
		return msgs, nil
	}
	kept := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		ok, err := f.Keep(m)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, m)
		}
	}
	return kept, nil
}
