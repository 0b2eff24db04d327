// Package export compiles every rule of an entity into the fragments a
// Balatro entity template needs, plus the entity's merged configuration
// block and a content hash.
package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/scarydoors/jokerforge/internal/effects"
	"github.com/scarydoors/jokerforge/internal/gamevar"
	"github.com/scarydoors/jokerforge/internal/luacheck"
	"github.com/scarydoors/jokerforge/internal/rules"
	"github.com/scarydoors/jokerforge/internal/types"
)

// ErrInvalidOutput is returned when verification finds generated Lua that
// does not compile.
var ErrInvalidOutput = errors.New("generated lua failed verification")

// Options configures entity compilation.
type Options struct {
	Resolver      *gamevar.Resolver
	DefaultColour string
	// NamePrefix keys pseudo-random draws. Defaults to "j_" + entity key.
	NamePrefix string
	// Verify compiles every fragment with luacheck before returning.
	Verify bool
	// MaxRules bounds the rules per entity. Zero means types.MaxRulesPerEntity.
	MaxRules int
}

// RuleOutput holds the compiled fragments of one rule.
type RuleOutput struct {
	RuleID    string          `json:"ruleId"`
	Trigger   types.TriggerID `json:"trigger"`
	Context   string          `json:"context,omitempty"`
	Condition string          `json:"condition"`
	Effects   effects.Output  `json:"effects"`
}

// EntityOutput is the compiled form of one entity.
type EntityOutput struct {
	Key             string       `json:"key"`
	Name            string       `json:"name,omitempty"`
	NamePrefix      string       `json:"namePrefix"`
	Rules           []RuleOutput `json:"rules"`
	ConfigVariables []string     `json:"configVariables"`
	ETag            string       `json:"etag"`
}

// CompileEntity compiles all rules of e with one shared Namer so repeated
// effect types get distinct configuration names across rules. The entity's
// internal variables are reserved on that Namer and declared with a zero
// default.
func CompileEntity(e types.Entity, opts Options) (EntityOutput, error) {
	resolver := opts.Resolver
	if resolver == nil {
		resolver = gamevar.NewResolver(nil, "")
	}
	prefix := opts.NamePrefix
	if prefix == "" {
		prefix = "j_" + e.Key
	}
	if !types.ValidNamePrefix(prefix) {
		return EntityOutput{}, fmt.Errorf("%w: %q", types.ErrInvalidNamePrefix, prefix)
	}
	limit := opts.MaxRules
	if limit <= 0 {
		limit = types.MaxRulesPerEntity
	}
	if len(e.Rules) > limit {
		return EntityOutput{}, fmt.Errorf("%w: %d rules", types.ErrTooManyRules, len(e.Rules))
	}

	internal := types.InternalVariables(e.Rules)
	namer := effects.NewNamer()
	namer.Reserve(internal...)

	conditions := rules.NewCompiler(resolver)
	fx := effects.Compiler{
		Resolver:      resolver,
		DefaultColour: opts.DefaultColour,
		Namer:         namer,
	}

	out := EntityOutput{
		Key:        e.Key,
		Name:       e.Name,
		NamePrefix: prefix,
		Rules:      make([]RuleOutput, 0, len(e.Rules)),
	}

	var decls []string
	for _, rule := range e.Rules {
		ro := RuleOutput{
			RuleID:    rule.ID,
			Trigger:   rule.Trigger,
			Context:   rule.Trigger.Context(),
			Condition: conditions.CompileChain(rule),
			Effects:   fx.Compile(rule.Effects, rule.RandomGroups, prefix),
		}
		decls = append(decls, ro.Effects.ConfigVariables...)
		out.Rules = append(out.Rules, ro)
	}
	// Counters that are only read by conditions still need a zero default.
	for _, name := range internal {
		if types.IsIdentifier(name) {
			decls = append(decls, name+" = 0")
		}
	}
	for _, cv := range resolver.Extract(e.Rules) {
		decls = append(decls, cv.Declaration())
	}
	out.ConfigVariables = dedupe(decls)

	if opts.Verify {
		if err := Verify(out); err != nil {
			return EntityOutput{}, err
		}
	}

	etag, err := ETag(e.Rules, prefix, resolver.Namespace, opts.DefaultColour)
	if err != nil {
		return EntityOutput{}, err
	}
	out.ETag = etag
	return out, nil
}

// CompileEntities compiles entities concurrently with at most workers in
// flight. Results are returned in input order. The first error cancels the
// remaining work. Leave opts.NamePrefix empty so each entity derives its own.
func CompileEntities(ctx context.Context, entities []types.Entity, opts Options, workers int) ([]EntityOutput, error) {
	if workers <= 0 {
		workers = 1
	}
	out := make([]EntityOutput, len(entities))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, e := range entities {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := CompileEntity(e, opts)
			if err != nil {
				return fmt.Errorf("entity %s: %w", e.Key, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Verify compiles every fragment of out with luacheck.
func Verify(out EntityOutput) error {
	for _, r := range out.Rules {
		frag := luacheck.Fragment{
			RuleID:        r.RuleID,
			Context:       r.Context,
			Condition:     r.Condition,
			PreReturnCode: r.Effects.PreReturnCode,
			Statement:     r.Effects.Statement,
		}
		if err := luacheck.CheckFragment(frag); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
		if r.Effects.CustomCanUse != "" {
			if err := luacheck.CheckExpression(r.Effects.CustomCanUse); err != nil {
				return fmt.Errorf("%w: rule %s can_use: %v", ErrInvalidOutput, r.RuleID, err)
			}
		}
	}
	for _, decl := range out.ConfigVariables {
		if err := luacheck.CheckChunk("local extra = { " + decl + " }"); err != nil {
			return fmt.Errorf("%w: config %q: %v", ErrInvalidOutput, decl, err)
		}
	}
	return nil
}

// ETag hashes everything that determines an entity's output.
func ETag(rs []types.Rule, namePrefix, namespace, colour string) (string, error) {
	doc := struct {
		Rules      []types.Rule `json:"rules"`
		NamePrefix string       `json:"namePrefix"`
		Namespace  string       `json:"namespace"`
		Colour     string       `json:"colour"`
	}{rs, namePrefix, namespace, colour}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to hash rules: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func declName(decl string) string {
	name, _, _ := strings.Cut(decl, "=")
	return strings.TrimSpace(name)
}

func dedupe(decls []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(decls))
	for _, d := range decls {
		name := declName(d)
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, d)
	}
	return out
}
