package api

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/scarydoors/jokerforge/internal/types"
)

// maxListLimit caps ListExports page size.
const maxListLimit = 500

// GetExport returns one stored export.
//
// Request: {"exportId"}. Response: summary fields plus "export".
func (s *Service) GetExport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := types.ParseExportID(stringField(req, "exportId"))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "exportId must be a UUID")
	}

	e, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, statusFromError(err)
	}

	return toStruct(struct {
		exportSummary
		Export json.RawMessage `json:"export"`
	}{summarize(e), json.RawMessage(e.OutputJSON)})
}

// ListExports lists stored exports, newest first.
//
// Request: {"entityKey"?, "limit"?}. Response: {"exports": [summary...]}.
func (s *Service) ListExports(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit := intField(req, "limit", 0)
	if limit < 0 || limit > maxListLimit {
		return nil, status.Errorf(codes.InvalidArgument, "limit must be between 0 and %d", maxListLimit)
	}

	list, err := s.store.List(ctx, stringField(req, "entityKey"), limit)
	if err != nil {
		return nil, statusFromError(err)
	}

	summaries := make([]exportSummary, 0, len(list))
	for _, e := range list {
		summaries = append(summaries, summarize(e))
	}
	return toStruct(struct {
		Exports []exportSummary `json:"exports"`
	}{summaries})
}
