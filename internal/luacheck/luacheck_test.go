package luacheck

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckExpression(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{name: "comparison", expr: "G.GAME.dollars > 10"},
		{name: "empty is no guard", expr: ""},
		{name: "negated group", expr: "not (a > 1 or b < 2)"},
		{name: "immediately invoked function", expr: "(function()\n    return 1\nend)() > 0"},
		{name: "dangling operator", expr: "G.GAME.dollars >", wantErr: true},
		{name: "unbalanced paren", expr: "(a and b", wantErr: true},
		{name: "javascript operator", expr: "a && b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckExpression(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckExpression(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrSyntax) {
				t.Errorf("error = %v, want ErrSyntax", err)
			}
		})
	}
}

func TestCheckFragment(t *testing.T) {
	f := Fragment{
		RuleID:        "rule-1",
		Context:       "context.joker_main",
		Condition:     "G.GAME.dollars > 10",
		PreReturnCode: "local x = 1\nx = x + 1",
		Statement:     "chips = card.ability.extra.chips, colour = G.C.CHIPS",
	}
	if err := CheckFragment(f); err != nil {
		t.Fatalf("CheckFragment() error = %v\n%s", err, Skeleton(f))
	}

	f.Statement = "chips = = 1"
	err := CheckFragment(f)
	if err == nil {
		t.Fatal("CheckFragment() error = nil, want syntax error")
	}
	if !strings.Contains(err.Error(), "rule-1") {
		t.Errorf("error = %q, want rule id", err.Error())
	}
}

func TestSkeleton_OmitsEmptyGuards(t *testing.T) {
	got := Skeleton(Fragment{Statement: "mult = 4"})
	want := "return function(self, card, context)\n" +
		"    return {\n" +
		"        mult = 4\n" +
		"    }\n" +
		"end\n"
	if got != want {
		t.Errorf("Skeleton() =\n%s\nwant\n%s", got, want)
	}
}

func TestEval(t *testing.T) {
	env := "G = { GAME = { dollars = 12 } }"

	got, err := Eval(env, "G.GAME.dollars > 10")
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if !got {
		t.Error("Eval() = false, want true")
	}

	got, err = Eval(env, "not (G.GAME.dollars > 10)")
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if got {
		t.Error("Eval() = true, want false")
	}

	if _, err := Eval(env, "G.missing.field > 1"); !errors.Is(err, ErrRuntime) {
		t.Errorf("Eval() error = %v, want ErrRuntime", err)
	}
}
