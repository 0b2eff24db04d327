// internal/gamevar/resolve.go
package gamevar

import (
	"regexp"
	"strings"

	"github.com/scarydoors/jokerforge/internal/types"
)

/*
 * Parameter value resolution.
 *
 * Resolve turns any parameter value into a Lua expression and never fails.
 *
 * Emission by transform, for a known game variable with read expression B,
 * multiplier M and startsFrom S (name N = <namespace>.<slug of label>):
 *   - M=1, S=0:   B
 *   - M≠1, S=0:   (B) * M
 *   - M=1, S≠0:   N + (B)
 *   - M≠1, S≠0:   N + (B) * M
 *
 * S is never emitted literally. It is the declared default of N (see
 * ConfigVariable), so the expression adds only the live contribution.
 *
 * Fallbacks:
 *   - unknown game-variable id: "0", the best-effort expression for a
 *     malformed reference; compilation never fails on one
 *   - numeric string or number: shortest decimal form
 *   - other string: <namespace>.<value> (bracketed when not an identifier)
 *   - anything else: "0"
 */

// DefaultNamespace is the table holding an entity's configuration variables.
const DefaultNamespace = "card.ability.extra"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Resolver turns parameter values into Lua expressions.
// Resolver holds no mutable state and is safe for concurrent use.
type Resolver struct {
	Registry  *Registry
	Namespace string
}

// NewResolver creates a resolver over reg. An empty namespace selects
// DefaultNamespace; a nil registry selects Default().
func NewResolver(reg *Registry, namespace string) *Resolver {
	if reg == nil {
		reg = Default()
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Resolver{Registry: reg, Namespace: namespace}
}

// ConfigVariable is a declaration a compiled fragment depends on.
type ConfigVariable struct {
	Name       string
	Code       string
	StartsFrom float64
	Multiplier float64
}

// Declaration renders the variable for an initializer block: "<name> = <default>".
func (c ConfigVariable) Declaration() string {
	return c.Name + " = " + types.FormatNumber(c.StartsFrom)
}

// Resolve returns the Lua expression for value.
func (r *Resolver) Resolve(value any) string {
	if IsGameVar(value) {
		ref, _ := Parse(value)
		v, ok := r.registry().Lookup(ref.ID)
		if !ok {
			return "0"
		}
		return r.emit(v, ref)
	}

	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		if f, ok := types.ToFloat64(s); ok {
			return types.FormatNumber(f)
		}
		if s == "" {
			return "0"
		}
		return r.Field(s)
	case float64, float32, int, int64:
		if f, ok := types.ToFloat64(v); ok {
			return types.FormatNumber(f)
		}
		return "0"
	default:
		return "0"
	}
}

// ConfigVariable returns the declaration needed by a game-variable value.
// Only a non-zero startsFrom reads the named variable, so every other
// reference, as well as non game-variable values and unknown ids, returns
// false.
func (r *Resolver) ConfigVariable(value any) (ConfigVariable, bool) {
	ref, ok := Parse(value)
	if !ok || ref.StartsFrom == 0 {
		return ConfigVariable{}, false
	}
	v, ok := r.registry().Lookup(ref.ID)
	if !ok {
		return ConfigVariable{}, false
	}
	name := Slug(v.Label)
	if name == "" {
		return ConfigVariable{}, false
	}
	return ConfigVariable{
		Name:       name,
		Code:       v.Code,
		StartsFrom: ref.StartsFrom,
		Multiplier: ref.Multiplier,
	}, true
}

// Field returns the namespaced access expression for a configuration variable.
func (r *Resolver) Field(name string) string {
	if identifierPattern.MatchString(name) {
		return r.namespace() + "." + name
	}
	return r.namespace() + `["` + name + `"]`
}

// IsLiteral reports whether value resolves to a plain number.
func IsLiteral(value any) bool {
	if IsGameVar(value) {
		return false
	}
	_, ok := types.ToFloat64(value)
	return ok
}

func (r *Resolver) emit(v Variable, ref Reference) string {
	base := v.Code
	name := r.Field(Slug(v.Label))

	switch {
	case ref.IsIdentity():
		return base
	case ref.StartsFrom == 0:
		return "(" + base + ") * " + types.FormatNumber(ref.Multiplier)
	case ref.Multiplier == 1:
		return name + " + (" + base + ")"
	default:
		return name + " + (" + base + ") * " + types.FormatNumber(ref.Multiplier)
	}
}

func (r *Resolver) registry() *Registry {
	if r == nil || r.Registry == nil {
		return Default()
	}
	return r.Registry
}

func (r *Resolver) namespace() string {
	if r == nil || r.Namespace == "" {
		return DefaultNamespace
	}
	return r.Namespace
}
