// Package api provides the gRPC compiler API.
//
// Messages are google.protobuf.Struct values whose JSON shape mirrors the
// export package's output types, so the service needs no generated code.
package api

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/scarydoors/jokerforge/internal/core/config"
	"github.com/scarydoors/jokerforge/internal/core/db"
	"github.com/scarydoors/jokerforge/internal/gamevar"
	"github.com/scarydoors/jokerforge/internal/types"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "jokerforge.compiler.v1.Compiler"

// Full method names, as seen by interceptors.
const (
	MethodCompileEntity = "/" + ServiceName + "/CompileEntity"
	MethodGetExport     = "/" + ServiceName + "/GetExport"
	MethodListExports   = "/" + ServiceName + "/ListExports"
)

// CompilerServer is the server API for the Compiler service.
type CompilerServer interface {
	CompileEntity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetExport(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListExports(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ExportStore persists compiled exports. Implemented by *db.ExportStore.
type ExportStore interface {
	Save(ctx context.Context, e db.Export) (db.Export, bool, error)
	Get(ctx context.Context, id types.ExportID) (db.Export, error)
	List(ctx context.Context, entityKey string, limit int) ([]db.Export, error)
}

// Service implements CompilerServer.
// Thin orchestration layer delegating to the export package and storage.
type Service struct {
	store    ExportStore
	resolver *gamevar.Resolver
	compiler config.CompilerConfig
	maxRules int
	logger   *slog.Logger
}

// NewService creates service instance with dependencies.
func NewService(store ExportStore, cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("cfg cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:    store,
		resolver: gamevar.NewResolver(nil, cfg.Compiler.Namespace),
		compiler: cfg.Compiler,
		maxRules: cfg.Server.MaxRules,
		logger:   logger,
	}, nil
}

// RegisterCompilerServer registers srv on s.
func RegisterCompilerServer(s grpc.ServiceRegistrar, srv CompilerServer) {
	s.RegisterService(&compilerServiceDesc, srv)
}

var compilerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CompilerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CompileEntity", Handler: unaryHandler(MethodCompileEntity, CompilerServer.CompileEntity)},
		{MethodName: "GetExport", Handler: unaryHandler(MethodGetExport, CompilerServer.GetExport)},
		{MethodName: "ListExports", Handler: unaryHandler(MethodListExports, CompilerServer.ListExports)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "jokerforge/compiler/v1/compiler.proto",
}

type unaryMethod func(CompilerServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler adapts a CompilerServer method to grpc.MethodDesc.
func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CompilerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CompilerServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CompilerClient is the client API for the Compiler service.
type CompilerClient struct {
	cc grpc.ClientConnInterface
}

// NewCompilerClient wraps a client connection.
func NewCompilerClient(cc grpc.ClientConnInterface) *CompilerClient {
	return &CompilerClient{cc: cc}
}

// CompileEntity calls the CompileEntity method.
func (c *CompilerClient) CompileEntity(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodCompileEntity, in, opts...)
}

// GetExport calls the GetExport method.
func (c *CompilerClient) GetExport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetExport, in, opts...)
}

// ListExports calls the ListExports method.
func (c *CompilerClient) ListExports(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodListExports, in, opts...)
}

func (c *CompilerClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
