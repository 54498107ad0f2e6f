// Package server wires the trial runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	trialv1 "github.com/louisbranch/mocktrial/api/trial/v1"
	"github.com/louisbranch/mocktrial/internal/platform/authtoken"
	"github.com/louisbranch/mocktrial/internal/platform/config"
	"github.com/louisbranch/mocktrial/internal/platform/grpc/callmeta"
	"github.com/louisbranch/mocktrial/internal/services/trial/adjudication"
	trialservice "github.com/louisbranch/mocktrial/internal/services/trial/api/grpc/trial"
	"github.com/louisbranch/mocktrial/internal/services/trial/evidence"
	"github.com/louisbranch/mocktrial/internal/services/trial/llm"
	"github.com/louisbranch/mocktrial/internal/services/trial/orchestrator"
	trialsqlite "github.com/louisbranch/mocktrial/internal/services/trial/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// serverEnv holds env-parsed configuration for the trial server.
type serverEnv struct {
	DBPath    string `env:"MOCKTRIAL_TRIAL_DB_PATH"`
	JWTSecret string `env:"MOCKTRIAL_TRIAL_JWT_SECRET"`
	JWTIssuer string `env:"MOCKTRIAL_TRIAL_JWT_ISSUER" envDefault:"mocktrial"`

	OpenAIAPIKey     string        `env:"MOCKTRIAL_OPENAI_API_KEY"`
	OpenAIBaseURL    string        `env:"MOCKTRIAL_OPENAI_BASE_URL"`
	Model            string        `env:"MOCKTRIAL_TRIAL_MODEL" envDefault:"gpt-4o-mini"`
	Temperature      float64       `env:"MOCKTRIAL_TRIAL_TEMPERATURE" envDefault:"0.3"`
	InitialMaxTokens int64         `env:"MOCKTRIAL_TRIAL_INITIAL_MAX_TOKENS" envDefault:"2000"`
	RoundMaxTokens   int64         `env:"MOCKTRIAL_TRIAL_ROUND_MAX_TOKENS" envDefault:"2500"`
	GatewayTimeout   time.Duration `env:"MOCKTRIAL_TRIAL_GATEWAY_TIMEOUT" envDefault:"60s"`
	MaxUploadBytes   int           `env:"MOCKTRIAL_TRIAL_MAX_UPLOAD_BYTES" envDefault:"10485760"`
	DefaultMaxRounds int           `env:"MOCKTRIAL_TRIAL_DEFAULT_MAX_ROUNDS" envDefault:"5"`
}

func loadServerEnv() (serverEnv, error) {
	var cfg serverEnv
	if err := config.ParseEnv(&cfg); err != nil {
		return serverEnv{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "trial.db")
	}
	return cfg, nil
}

func (e serverEnv) authConfig() (authtoken.Config, error) {
	cfg := authtoken.Config{
		Secret: []byte(strings.TrimSpace(e.JWTSecret)),
		Issuer: strings.TrimSpace(e.JWTIssuer),
	}
	if len(cfg.Secret) == 0 {
		return authtoken.Config{}, errors.New("MOCKTRIAL_TRIAL_JWT_SECRET is required")
	}
	if err := cfg.Validate(); err != nil {
		return authtoken.Config{}, err
	}
	return cfg, nil
}

// adjudicationStack builds the gateway and ingestor. Without an API key the
// service still runs: case and evidence flows work, verdict calls fail as
// permanent gateway errors, and binary uploads are rejected.
func (e serverEnv) adjudicationStack() (adjudication.Gateway, *evidence.Ingestor) {
	llmCfg := llm.Config{
		APIKey:  e.OpenAIAPIKey,
		BaseURL: e.OpenAIBaseURL,
	}
	if !llmCfg.Configured() {
		log.Printf("openai api key not set; verdict generation disabled")
		return adjudication.Unconfigured{}, evidence.NewIngestor(e.MaxUploadBytes, nil)
	}
	client := llm.NewClient(llmCfg)
	gateway := adjudication.NewOpenAIGateway(client, adjudication.OpenAIConfig{
		Model:            e.Model,
		Temperature:      e.Temperature,
		InitialMaxTokens: e.InitialMaxTokens,
		RoundMaxTokens:   e.RoundMaxTokens,
	})
	extractor := evidence.NewOpenAIExtractor(client, e.Model)
	return gateway, evidence.NewIngestor(e.MaxUploadBytes, extractor)
}

// Server hosts the trial service.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *trialsqlite.Store
	closeOnce  sync.Once
}

// New creates a configured trial server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured trial server listening on the provided address.
func NewWithAddr(addr string) (*Server, error) {
	srvEnv, err := loadServerEnv()
	if err != nil {
		return nil, err
	}
	// Every call is authenticated; refuse startup without a signing secret.
	authCfg, err := srvEnv.authConfig()
	if err != nil {
		return nil, fmt.Errorf("load token config: %w", err)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	store, err := openTrialStore(srvEnv.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	gateway, ingestor := srvEnv.adjudicationStack()
	orch := orchestrator.New(store, gateway, ingestor, orchestrator.Config{
		GatewayTimeout:   srvEnv.GatewayTimeout,
		DefaultMaxRounds: srvEnv.DefaultMaxRounds,
	})

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			callmeta.UnaryServerInterceptor(nil),
			trialservice.AuthUnaryServerInterceptor(authCfg),
		),
		// Uploads travel inline; leave room for JSON base64 overhead.
		grpc.MaxRecvMsgSize(ingestor.MaxBytes()*2),
	)
	healthServer := health.NewServer()
	trialv1.RegisterTrialServiceServer(grpcServer, trialservice.NewService(orch))
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(trialv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the trial server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a trial server until the context ends.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the trial server and blocks until it stops or context ends.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("trial server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}

	s.closeOnce.Do(func() {
		if s.health != nil {
			s.health.Shutdown()
		}
		if s.grpcServer != nil {
			s.grpcServer.Stop()
		}
		if s.listener != nil {
			if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
				log.Printf("close trial listener: %v", err)
			}
		}
		if s.store != nil {
			if err := s.store.Close(); err != nil {
				log.Printf("close trial store: %v", err)
			}
		}
	})
}

func openTrialStore(path string) (*trialsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := trialsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trial sqlite store: %w", err)
	}
	return store, nil
}
