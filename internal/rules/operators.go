// internal/rules/operators.go
package rules

/*
 * Comparison operators.
 *
 * Maps the editor's comparison names onto Lua operators. Unknown or missing
 * names fall back to greater_than, the editor's default, so a half-filled
 * condition still compiles to a valid comparison.
 *
 * Accepted aliases: the editor has shipped both "greater_equals" and
 * "greater_than_or_equal" spellings (same for less).
 */

// Comparison names a numeric comparison between two expressions.
type Comparison string

const (
	CmpGreaterThan   Comparison = "greater_than"
	CmpLessThan      Comparison = "less_than"
	CmpEquals        Comparison = "equals"
	CmpNotEquals     Comparison = "not_equals"
	CmpGreaterEquals Comparison = "greater_equals"
	CmpLessEquals    Comparison = "less_equals"
)

// ParseComparison normalizes an editor operator name.
func ParseComparison(s string) Comparison {
	switch s {
	case "greater_than", ">":
		return CmpGreaterThan
	case "less_than", "<":
		return CmpLessThan
	case "equals", "equal", "==":
		return CmpEquals
	case "not_equals", "not_equal", "~=", "!=":
		return CmpNotEquals
	case "greater_equals", "greater_than_or_equal", ">=":
		return CmpGreaterEquals
	case "less_equals", "less_than_or_equal", "<=":
		return CmpLessEquals
	default:
		return CmpGreaterThan
	}
}

// Lua returns the Lua spelling of the comparison.
func (c Comparison) Lua() string {
	switch c {
	case CmpLessThan:
		return "<"
	case CmpEquals:
		return "=="
	case CmpNotEquals:
		return "~="
	case CmpGreaterEquals:
		return ">="
	case CmpLessEquals:
		return "<="
	default:
		return ">"
	}
}

// compare renders "lhs <op> rhs".
func compare(lhs string, op Comparison, rhs string) string {
	return lhs + " " + op.Lua() + " " + rhs
}
