// Package effects compiles rule effects and random groups into the body of a
// Balatro calculate return table.
//
// Generators return a structured Result: the main statement (table fields),
// setup code that must run before the return, and the configuration
// variables the statement reads. The compiler chains main statements, hoists
// setup code into PreReturnCode and deduplicates configuration variables by
// name. Nothing in this package fails; unknown effect types and unusable
// parameters produce an inert Result.
package effects

import (
	"strconv"
	"strings"
)

// DefaultColour is the display colour an effect carries when it has none.
const DefaultColour = "G.C.WHITE"

// Result is the output of one effect generator.
type Result struct {
	// Statement holds comma-separated table fields, without braces.
	Statement string
	// Setup holds statements that must run before the return table is built.
	Setup []string
	// Colour is a Lua colour expression; "" means the default colour.
	Colour string
	// ConfigVariables holds "<name> = <default>" declarations.
	ConfigVariables []string
	// CustomCanUse is a usability predicate for consumables.
	CustomCanUse string
	// Message is a Lua expression rendered as the message field.
	Message string
}

// empty reports whether r contributes nothing to the return table.
func (r Result) empty() bool {
	return strings.TrimSpace(r.Statement) == "" && r.Message == ""
}

// Output is the compiled form of one rule's effects.
type Output struct {
	Statement       string   `json:"statement"`
	Colour          string   `json:"colour"`
	PreReturnCode   string   `json:"preReturnCode,omitempty"`
	IsRandomChance  bool     `json:"isRandomChance"`
	ConfigVariables []string `json:"configVariables"`
	CustomCanUse    string   `json:"customCanUse,omitempty"`
}

// Namer hands out configuration-variable names. The first request for a base
// returns the base itself, later requests append 2, 3, ... Reserved names are
// never handed out.
//
// A Namer is shared by every rule of one entity so repeated effect types get
// distinct names across rules. It is not safe for concurrent use.
type Namer struct {
	counts   map[string]int
	reserved map[string]bool
}

// NewNamer creates an empty Namer.
func NewNamer() *Namer {
	return &Namer{counts: make(map[string]int), reserved: make(map[string]bool)}
}

// Reserve marks names as taken, typically the entity's internal variables,
// which share the configuration table with generated names.
func (n *Namer) Reserve(names ...string) {
	if n.reserved == nil {
		n.reserved = make(map[string]bool)
	}
	for _, name := range names {
		n.reserved[name] = true
	}
}

// Next returns the next free name for base.
func (n *Namer) Next(base string) string {
	if n.counts == nil {
		n.counts = make(map[string]int)
	}
	for {
		n.counts[base]++
		name := base
		if c := n.counts[base]; c > 1 {
			name = base + strconv.Itoa(c)
		}
		if !n.reserved[name] {
			return name
		}
	}
}

// configSet is an insertion-ordered set of declarations keyed by name.
type configSet struct {
	seen  map[string]bool
	decls []string
}

func newConfigSet() *configSet {
	return &configSet{seen: make(map[string]bool)}
}

func (s *configSet) add(decls ...string) {
	for _, d := range decls {
		name := declName(d)
		if name == "" || s.seen[name] {
			continue
		}
		s.seen[name] = true
		s.decls = append(s.decls, d)
	}
}

func (s *configSet) list() []string {
	if s.decls == nil {
		return []string{}
	}
	return s.decls
}

// declName returns the variable name of a "<name> = <value>" declaration.
func declName(decl string) string {
	name, _, _ := strings.Cut(decl, "=")
	return strings.TrimSpace(name)
}
