package api

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/scarydoors/jokerforge/internal/export"
	"github.com/scarydoors/jokerforge/internal/types"
)

// Auth errors are mapped in the auth package interceptor.
// Validation errors map to INVALID_ARGUMENT.
// Missing exports map to NOT_FOUND.
// Generated Lua that fails verification maps to INTERNAL.
// Context timeouts map to DEADLINE_EXCEEDED.
// Anything else came from storage and maps to UNAVAILABLE.
func statusFromError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, types.ErrMalformedRules),
		errors.Is(err, types.ErrRulesTooLarge),
		errors.Is(err, types.ErrTooManyRules),
		errors.Is(err, types.ErrInvalidNamePrefix):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, types.ErrExportNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, export.ErrInvalidOutput):
		return status.Error(codes.Internal, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Unavailable, err.Error())
	}
}
