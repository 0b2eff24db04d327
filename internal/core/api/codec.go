package api

import (
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/scarydoors/jokerforge/internal/core/db"
)

// toStruct converts any JSON-marshalable value to a Struct.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return rawStruct(data)
}

func rawStruct(data []byte) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return out, nil
}

// stringField returns a string field of req, or "" when absent or not a string.
func stringField(req *structpb.Struct, name string) string {
	if v, ok := req.GetFields()[name]; ok {
		return v.GetStringValue()
	}
	return ""
}

// intField returns a numeric field of req truncated to int, or def.
func intField(req *structpb.Struct, name string, def int) int {
	v, ok := req.GetFields()[name]
	if !ok {
		return def
	}
	if _, isNum := v.GetKind().(*structpb.Value_NumberValue); !isNum {
		return def
	}
	return int(v.GetNumberValue())
}

// exportSummary is the listing shape of a stored export.
type exportSummary struct {
	ExportID   string `json:"exportId"`
	EntityKey  string `json:"entityKey"`
	NamePrefix string `json:"namePrefix"`
	ETag       string `json:"etag"`
	CreatedAt  string `json:"createdAt"`
}

func summarize(e db.Export) exportSummary {
	return exportSummary{
		ExportID:   string(e.ExportID),
		EntityKey:  e.EntityKey,
		NamePrefix: e.NamePrefix,
		ETag:       e.RulesHash,
		CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
