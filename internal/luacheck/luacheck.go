// Package luacheck verifies generated Lua with an embedded interpreter.
//
// Check functions only compile the source; they never run it. Eval runs an
// expression against a caller-provided environment and is used to assert the
// semantics of generated conditions.
package luacheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Shopify/go-lua"
)

// ErrSyntax is returned (wrapped) when a fragment does not compile.
var ErrSyntax = errors.New("lua syntax error")

// ErrRuntime is returned (wrapped) when an evaluated fragment raises.
var ErrRuntime = errors.New("lua runtime error")

// Fragment is the generated code of one rule, placed into a calculate
// function skeleton for checking.
type Fragment struct {
	RuleID        string
	Context       string
	Condition     string
	PreReturnCode string
	Statement     string
}

// CheckExpression compiles expr as the right-hand side of a return.
func CheckExpression(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	return CheckChunk("return " + expr)
}

// CheckChunk compiles src as a Lua chunk.
func CheckChunk(src string) error {
	l := lua.NewState()
	if err := lua.LoadBuffer(l, src, "=fragment", ""); err != nil {
		return fmt.Errorf("%w: %s", ErrSyntax, errorMessage(l, err))
	}
	l.Pop(1)
	return nil
}

// CheckFragment compiles the rule's code inside the calculate skeleton the
// exporter emits. Errors carry the rule id.
func CheckFragment(f Fragment) error {
	if err := CheckChunk(Skeleton(f)); err != nil {
		return fmt.Errorf("rule %s: %w", f.RuleID, err)
	}
	return nil
}

// Skeleton renders f as a calculate function body.
func Skeleton(f Fragment) string {
	var b strings.Builder
	b.WriteString("return function(self, card, context)\n")

	depth := 1
	open := func(guard string) {
		if guard == "" {
			return
		}
		b.WriteString(indent(depth) + "if " + guard + " then\n")
		depth++
	}
	open(f.Context)
	open(f.Condition)

	for _, line := range strings.Split(f.PreReturnCode, "\n") {
		if strings.TrimSpace(line) != "" {
			b.WriteString(indent(depth) + line + "\n")
		}
	}
	if f.Statement != "" {
		b.WriteString(indent(depth) + "return {\n")
		b.WriteString(indent(depth+1) + f.Statement + "\n")
		b.WriteString(indent(depth) + "}\n")
	}

	for depth > 1 {
		depth--
		b.WriteString(indent(depth) + "end\n")
	}
	b.WriteString("end\n")
	return b.String()
}

// Eval runs env (a chunk that sets up globals) and then evaluates expr,
// returning its truthiness.
func Eval(env, expr string) (bool, error) {
	l := lua.NewState()
	lua.OpenLibraries(l)

	if env != "" {
		if err := lua.LoadBuffer(l, env, "=env", ""); err != nil {
			return false, fmt.Errorf("%w: env: %s", ErrSyntax, errorMessage(l, err))
		}
		if err := l.ProtectedCall(0, 0, 0); err != nil {
			return false, fmt.Errorf("%w: env: %s", ErrRuntime, errorMessage(l, err))
		}
	}

	if err := lua.LoadBuffer(l, "return "+expr, "=expr", ""); err != nil {
		return false, fmt.Errorf("%w: %s", ErrSyntax, errorMessage(l, err))
	}
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		return false, fmt.Errorf("%w: %s", ErrRuntime, errorMessage(l, err))
	}
	result := l.ToBoolean(-1)
	l.Pop(1)
	return result, nil
}

func errorMessage(l *lua.State, err error) string {
	if l.Top() > 0 {
		if msg, ok := l.ToString(-1); ok && msg != "" {
			l.Pop(1)
			return msg
		}
	}
	return err.Error()
}

func indent(depth int) string {
	return strings.Repeat("    ", depth)
}
