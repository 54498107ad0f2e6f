package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	trialv1 "github.com/louisbranch/mocktrial/api/trial/v1"
	"github.com/louisbranch/mocktrial/internal/platform/authtoken"
	platformgrpc "github.com/louisbranch/mocktrial/internal/platform/grpc"
	"github.com/louisbranch/mocktrial/internal/platform/timeouts"
	"github.com/louisbranch/mocktrial/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

const (
	serverName    = "mocktrial MCP"
	serverVersion = "0.1.0"
)

// Config configures the MCP server.
type Config struct {
	// GRPCAddr is the trial service address.
	GRPCAddr string
	// Token is the bearer token every trial call is made with.
	Token string
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
}

// newServer binds the trial tools to a connected client.
func newServer(conn *grpc.ClientConn) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTrialTools(mcpServer, trialv1.NewTrialServiceClient(conn))
	return &Server{mcpServer: mcpServer, conn: conn}, nil
}

func registerTrialTools(server *mcp.Server, client trialv1.TrialServiceClient) {
	mcp.AddTool(server, domain.CaseCreateTool(), domain.CaseCreateHandler(client))
	mcp.AddTool(server, domain.CaseGetTool(), domain.CaseGetHandler(client))
	mcp.AddTool(server, domain.EvidenceUploadTextTool(), domain.EvidenceUploadTextHandler(client))
	mcp.AddTool(server, domain.VerdictGenerateInitialTool(), domain.VerdictGenerateInitialHandler(client))
	mcp.AddTool(server, domain.ArgumentSubmitTool(), domain.ArgumentSubmitHandler(client))
	mcp.AddTool(server, domain.RoundStatusTool(), domain.RoundStatusHandler(client))
	mcp.AddTool(server, domain.VerdictListTool(), domain.VerdictListHandler(client))
	mcp.AddTool(server, domain.CaseFinalizeTool(), domain.CaseFinalizeHandler(client))
}

// Run dials the trial service and serves MCP on stdio until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return runWithTransport(ctx, cfg, &mcp.StdioTransport{})
}

// runWithTransport creates a server and serves it over the provided transport.
func runWithTransport(ctx context.Context, cfg Config, transport mcp.Transport) error {
	if strings.TrimSpace(cfg.Token) == "" {
		return errors.New("trial bearer token is required")
	}
	conn, err := dialTrialGRPC(ctx, cfg)
	if err != nil {
		return err
	}
	server, err := newServer(conn)
	if err != nil {
		_ = conn.Close()
		return err
	}
	return server.serveWithTransport(ctx, transport)
}

func dialTrialGRPC(ctx context.Context, cfg Config) (*grpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logf := func(format string, args ...any) {
		log.Printf("trial %s", fmt.Sprintf(format, args...))
	}
	dialOpts := append(
		platformgrpc.DefaultClientDialOptions(),
		grpc.WithChainUnaryInterceptor(authtoken.BearerUnaryClientInterceptor(cfg.Token)),
	)
	conn, err := platformgrpc.DialWithHealth(ctx, cfg.GRPCAddr, timeouts.GRPCDial, logf, dialOpts...)
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) {
			if dialErr.Stage == platformgrpc.DialStageConnect {
				return nil, fmt.Errorf("connect to trial server at %s: %w", cfg.GRPCAddr, dialErr.Err)
			}
			return nil, dialErr.Err
		}
		return nil, err
	}
	return conn, nil
}

// Close releases the gRPC connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// serveWithTransport runs MCP and closes the gRPC connection on the way out.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close gRPC connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
