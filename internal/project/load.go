// Package project reads editor project documents into entities and watches
// them for changes.
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/scarydoors/jokerforge/internal/gamevar"
	"github.com/scarydoors/jokerforge/internal/types"
)

// Load extracts entities from a rules document.
//
// With a non-empty selectPath (gjson syntax) only the matched value is read.
// The value may be a bare rule array, one entity object, or an array of
// entity objects. Entities without a key get fallbackKey, suffixed with
// their position when there are several.
func Load(data []byte, selectPath, fallbackKey string) ([]types.Entity, error) {
	raw := data
	if selectPath != "" {
		res := gjson.GetBytes(data, selectPath)
		if !res.Exists() {
			return nil, fmt.Errorf("%w: %s", types.ErrEmptySelection, selectPath)
		}
		raw = []byte(res.Raw)
	}
	if len(raw) > types.MaxRulesDocumentSize {
		return nil, types.ErrRulesTooLarge
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", types.ErrMalformedRules)
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() || !isEntity(doc.Get("0")) {
		entity, err := types.DecodeRules(raw)
		if err != nil {
			return nil, err
		}
		if entity.Key == "" {
			entity.Key = fallbackKey
		}
		return []types.Entity{entity}, nil
	}

	var entities []types.Entity
	var decodeErr error
	doc.ForEach(func(_, value gjson.Result) bool {
		entity, err := types.DecodeRules([]byte(value.Raw))
		if err != nil {
			decodeErr = fmt.Errorf("entity %d: %w", len(entities), err)
			return false
		}
		if entity.Key == "" {
			entity.Key = fmt.Sprintf("%s_%d", fallbackKey, len(entities)+1)
		}
		entities = append(entities, entity)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return entities, nil
}

// isEntity reports whether v looks like an entity object rather than a rule.
func isEntity(v gjson.Result) bool {
	return v.IsObject() && v.Get("rules").Exists()
}

// KeyFromPath derives an entity key from a file name: "Greedy Joker.json"
// becomes "greedyjoker".
func KeyFromPath(path string) string {
	base := filepath.Base(path)
	key := gamevar.Slug(strings.TrimSuffix(base, filepath.Ext(base)))
	if key == "" {
		return "entity"
	}
	return key
}
