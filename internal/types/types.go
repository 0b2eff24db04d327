// Package types provides the rule graph shared across jokerforge components.
//
// The editor owns these structures; compilers in internal/rules and
// internal/effects treat them as read-only input for one compilation pass.
// Wire decoding is plain encoding/json so exported editor documents load
// without an intermediate schema.
package types

// ExportID represents a UUIDv7 export identifier.
// String alias enables type safety while maintaining JSON string serialization.
type ExportID string

// APIKeyID represents a UUIDv7 API key identifier.
type APIKeyID string

// LogicOperator joins adjacent conditions inside a group.
type LogicOperator string

const (
	LogicAnd LogicOperator = "and"
	LogicOr  LogicOperator = "or"
)

// Valid reports whether the operator is one the compiler can emit.
func (o LogicOperator) Valid() bool {
	return o == LogicAnd || o == LogicOr
}

// Limits enforced at the API boundary. The compilers themselves accept any size.
const (
	// MaxRulesPerEntity bounds a single CompileEntity request.
	// 256 rules is far beyond what the editor lets a user build for one card.
	MaxRulesPerEntity = 256

	// MaxRulesDocumentSize caps the raw rules JSON accepted by the API and CLI.
	// 4MB covers large projects with embedded custom messages.
	MaxRulesDocumentSize = 4 * 1024 * 1024

	// RandomGroupIDPrefixLength is how much of a random group id is kept in
	// its pseudo-random seed key.
	RandomGroupIDPrefixLength = 8
)
