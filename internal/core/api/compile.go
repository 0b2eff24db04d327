package api

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/scarydoors/jokerforge/internal/core/auth"
	"github.com/scarydoors/jokerforge/internal/core/db"
	"github.com/scarydoors/jokerforge/internal/export"
	"github.com/scarydoors/jokerforge/internal/types"
)

// CompileEntity compiles the entity carried by req and stores the result.
//
// Request: {"key", "name", "rules": [...], "namePrefix"?}.
// Response: {"exportId", "created", "export": EntityOutput}. Recompiling
// identical rules returns the stored export with created=false.
func (s *Service) CompileEntity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	data, err := protojson.Marshal(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("failed to read request: %v", err))
	}
	entity, err := types.DecodeRules(data)
	if err != nil {
		return nil, statusFromError(err)
	}

	out, err := export.CompileEntity(entity, export.Options{
		Resolver:      s.resolver,
		DefaultColour: s.compiler.DefaultColour,
		NamePrefix:    stringField(req, "namePrefix"),
		Verify:        s.compiler.VerifyOutput,
		MaxRules:      s.maxRules,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	rulesJSON, err := json.Marshal(entity.Rules)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	outputJSON, err := json.Marshal(out)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	stored, created, err := s.store.Save(ctx, db.Export{
		EntityKey:  entity.Key,
		NamePrefix: out.NamePrefix,
		RulesHash:  out.ETag,
		RulesJSON:  string(rulesJSON),
		OutputJSON: string(outputJSON),
	})
	if err != nil {
		s.logger.Error("failed to store export", "entity", entity.Key, "error", err)
		return nil, statusFromError(err)
	}

	s.logger.Info("compiled entity",
		"entity", entity.Key,
		"rules", len(entity.Rules),
		"export_id", stored.ExportID,
		"created", created,
		"api_key_id", auth.APIKeyIDFromContext(ctx),
	)

	return toStruct(struct {
		ExportID string              `json:"exportId"`
		Created  bool                `json:"created"`
		Export   export.EntityOutput `json:"export"`
	}{string(stored.ExportID), created, out})
}
