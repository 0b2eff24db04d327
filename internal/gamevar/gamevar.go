// Package gamevar resolves parameter values into Lua expressions.
//
// A parameter is a literal number, a bare configuration-variable name, or a
// game-variable reference encoded as "GAMEVAR:<id>|<multiplier>|<startsFrom>".
// Game variables read live state and may carry an affine transform
// startsFrom + value*multiplier.
package gamevar

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/scarydoors/jokerforge/internal/types"
)

// Prefix marks a parameter string as a game-variable reference.
const Prefix = "GAMEVAR:"

// Reference is a decoded game-variable parameter.
type Reference struct {
	ID         string
	Multiplier float64
	StartsFrom float64
}

// Parse decodes value when it is a game-variable string.
// A missing or malformed multiplier decodes as 1, a missing or malformed
// startsFrom as 0.
func Parse(value any) (Reference, bool) {
	s, ok := value.(string)
	if !ok || !strings.HasPrefix(s, Prefix) {
		return Reference{}, false
	}

	parts := strings.Split(strings.TrimPrefix(s, Prefix), "|")
	ref := Reference{ID: strings.TrimSpace(parts[0]), Multiplier: 1}
	if len(parts) > 1 {
		if m, ok := types.ToFloat64(parts[1]); ok {
			ref.Multiplier = m
		}
	}
	if len(parts) > 2 {
		if o, ok := types.ToFloat64(parts[2]); ok {
			ref.StartsFrom = o
		}
	}
	return ref, true
}

// String encodes the reference in the editor's parameter format.
func (r Reference) String() string {
	return Prefix + r.ID + "|" + types.FormatNumber(r.Multiplier) + "|" + types.FormatNumber(r.StartsFrom)
}

// IsIdentity reports whether the transform leaves the live value unchanged.
func (r Reference) IsIdentity() bool {
	return r.Multiplier == 1 && r.StartsFrom == 0
}

// IsGameVar reports whether value carries the game-variable prefix,
// regardless of whether its id is known.
func IsGameVar(value any) bool {
	s, ok := value.(string)
	return ok && strings.HasPrefix(s, Prefix)
}

// Slug turns a display label into a configuration-variable name:
// lowercased with spaces removed. Characters that cannot appear in a Lua
// identifier are dropped, and a leading digit gets an underscore.
// Casers are stateful and must not be shared across goroutines.
func Slug(label string) string {
	var b strings.Builder
	for _, r := range cases.Lower(language.Und).String(label) {
		if r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			b.WriteRune(r)
		}
	}
	slug := b.String()
	if slug != "" && slug[0] >= '0' && slug[0] <= '9' {
		slug = "_" + slug
	}
	return slug
}
