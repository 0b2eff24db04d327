package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entity is one card definition as exported by the editor: a key used as the
// pseudo-random namespace and the rules attached to it.
type Entity struct {
	Key   string `json:"key"`
	Name  string `json:"name,omitempty"`
	Rules []Rule `json:"rules"`
}

// DecodeRules accepts either a bare rule array or an entity object and
// returns the entity. A bare array yields an entity with an empty key.
func DecodeRules(data []byte) (Entity, error) {
	if len(data) > MaxRulesDocumentSize {
		return Entity{}, ErrRulesTooLarge
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Entity{}, ErrMalformedRules
	}

	switch trimmed[0] {
	case '[':
		var rules []Rule
		if err := json.Unmarshal(trimmed, &rules); err != nil {
			return Entity{}, fmt.Errorf("%w: %v", ErrMalformedRules, err)
		}
		return Entity{Rules: rules}, nil
	case '{':
		var entity Entity
		if err := json.Unmarshal(trimmed, &entity); err != nil {
			return Entity{}, fmt.Errorf("%w: %v", ErrMalformedRules, err)
		}
		return entity, nil
	default:
		return Entity{}, ErrMalformedRules
	}
}
