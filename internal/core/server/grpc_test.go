package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/scarydoors/jokerforge/internal/core/api"
	"github.com/scarydoors/jokerforge/internal/core/auth"
	"github.com/scarydoors/jokerforge/internal/core/config"
	"github.com/scarydoors/jokerforge/internal/core/db"
)

const secretID = "0123456789abcdef0123456789abcdef"

var secret = []byte("testsecret1234567890abcdefghijklmnop")

// startServer runs a full server over bufconn and returns a client
// connection plus a valid API key.
func startServer(t *testing.T) (*grpc.ClientConn, string) {
	t.Helper()
	ctx := context.Background()

	database, err := db.Open("sqlite://" + filepath.Join(t.TempDir(), "server.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })
	if err := db.MigrateUp(database); err != nil {
		t.Fatal(err)
	}
	queries, err := db.LoadQueries(database)
	if err != nil {
		t.Fatal(err)
	}

	key, hash, err := auth.GenerateAPIKey(secretID, secret)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.NewAPIKeyStore(queries).Create(ctx, "test", secretID, hash); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Default()
	service, err := api.NewService(db.NewExportStore(queries), cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	authenticator := auth.NewAuthenticator(map[string][]byte{secretID: secret}, queries)

	srv, err := NewGRPCServer(cfg, service, authenticator, logger)
	if err != nil {
		t.Fatal(err)
	}

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn, key
}

func TestNewGRPCServer_RequiresDependencies(t *testing.T) {
	cfg := config.Default()
	if _, err := NewGRPCServer(nil, nil, nil, nil); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := NewGRPCServer(cfg, nil, nil, nil); err == nil {
		t.Error("expected error for nil service")
	}
}

func TestGRPCServer(t *testing.T) {
	conn, key := startServer(t)
	client := api.NewCompilerClient(conn)

	req, err := structpb.NewStruct(map[string]any{
		"key": "greedy",
		"rules": []any{
			map[string]any{
				"id":      "rule-1",
				"trigger": "hand_played",
				"effects": []any{
					map[string]any{"id": "e1", "type": "add_mult", "params": map[string]any{"value": 4}},
				},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("health needs no key", func(t *testing.T) {
		resp, err := grpc_health_v1.NewHealthClient(conn).Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: api.ServiceName})
		if err != nil {
			t.Fatalf("health check failed: %v", err)
		}
		if resp.Status != grpc_health_v1.HealthCheckResponse_SERVING {
			t.Errorf("expected SERVING, got %v", resp.Status)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := client.CompileEntity(context.Background(), req)
		if status.Code(err) != codes.Unauthenticated {
			t.Errorf("expected Unauthenticated, got %v", err)
		}
	})

	t.Run("compile with key", func(t *testing.T) {
		ctx := metadata.AppendToOutgoingContext(context.Background(), "x-api-key", key)
		resp, err := client.CompileEntity(ctx, req)
		if err != nil {
			t.Fatalf("CompileEntity failed: %v", err)
		}
		id := resp.GetFields()["exportId"].GetStringValue()
		if id == "" {
			t.Fatal("expected export id")
		}

		got, err := client.GetExport(ctx, &structpb.Struct{Fields: map[string]*structpb.Value{
			"exportId": structpb.NewStringValue(id),
		}})
		if err != nil {
			t.Fatalf("GetExport failed: %v", err)
		}
		if got.GetFields()["entityKey"].GetStringValue() != "greedy" {
			t.Error("expected stored entity greedy")
		}

		list, err := client.ListExports(ctx, &structpb.Struct{})
		if err != nil {
			t.Fatalf("ListExports failed: %v", err)
		}
		if n := len(list.GetFields()["exports"].GetListValue().GetValues()); n != 1 {
			t.Errorf("expected 1 export, got %d", n)
		}
	})
}
