package types

import "errors"

// Sentinel errors for jokerforge I/O boundaries.
// The compilers never return errors; these cover loading, storage and the API.
var (
	// ErrRulesTooLarge indicates a rules document exceeds MaxRulesDocumentSize.
	ErrRulesTooLarge = errors.New("rules document exceeds maximum size")

	// ErrTooManyRules indicates an entity carries more than the configured rule limit.
	ErrTooManyRules = errors.New("too many rules for one entity")

	// ErrMalformedRules indicates the rules document is not a rule array or entity.
	ErrMalformedRules = errors.New("malformed rules document")

	// ErrEmptySelection indicates a select path matched nothing in the document.
	ErrEmptySelection = errors.New("select path matched nothing")

	// ErrExportNotFound indicates an export id has no stored record.
	ErrExportNotFound = errors.New("export not found")

	// ErrAPIKeyNotFound indicates an API key id has no active stored record.
	ErrAPIKeyNotFound = errors.New("api key not found")

	// ErrInvalidNamePrefix indicates a name prefix that cannot form a Lua string key.
	ErrInvalidNamePrefix = errors.New("name prefix must be a non-empty identifier")
)
