// Package trialctl implements the operator CLI for the trial service.
package trialctl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	trialv1 "github.com/louisbranch/mocktrial/api/trial/v1"
	"github.com/louisbranch/mocktrial/internal/platform/authtoken"
	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
	platformgrpc "github.com/louisbranch/mocktrial/internal/platform/grpc"
	"github.com/louisbranch/mocktrial/internal/platform/timeouts"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// EnvPrefix namespaces trialctl environment variables.
const EnvPrefix = "MOCKTRIAL_CTL"

const (
	keyConfig    = "config"
	keyAddr      = "addr"
	keyToken     = "token"
	keyOutput    = "output"
	keyTimeout   = "timeout"
	keyJWTSecret = "jwt_secret"
	keyJWTIssuer = "jwt_issuer"
)

// Dialer opens a connection to the trial service.
type Dialer func(ctx context.Context, addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error)

// app holds the state shared by every subcommand of one invocation.
type app struct {
	v    *viper.Viper
	dial Dialer
}

// Option customizes the root command.
type Option func(*app)

// WithDialer replaces the default health-checked dialer.
func WithDialer(dial Dialer) Option {
	return func(a *app) {
		a.dial = dial
	}
}

// NewRootCommand builds the trialctl command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{v: viper.New(), dial: defaultDialer}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "trialctl",
		Short: "Operate mock trial cases",
		Long: `trialctl drives the trial service: open cases, upload evidence for each
side, generate the initial verdict, submit arguments round by round and
finalize the case.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringP(keyConfig, "c", "", "config file (default is $HOME/.config/mocktrial/trialctl.yaml)")
	flags.String(keyAddr, "localhost:8095", "trial service address")
	flags.String(keyToken, "", "bearer token for trial calls")
	flags.StringP(keyOutput, "o", "text", "output format: text, json or yaml")
	flags.Duration(keyTimeout, timeouts.AdjudicationRequest, "per-command timeout")
	for _, key := range []string{keyConfig, keyAddr, keyToken, keyOutput, keyTimeout} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}
	a.v.SetDefault(keyJWTIssuer, authtoken.DefaultIssuer)
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.caseCommand(),
		a.evidenceCommand(),
		a.verdictCommand(),
		a.argumentCommand(),
		a.roundCommand(),
		a.tokenCommand(),
	)
	return root
}

// Execute runs trialctl against the process arguments.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	return root.ExecuteContext(ctx)
}

func (a *app) loadConfig() error {
	if cfgFile := a.v.GetString(keyConfig); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		return nil
	}
	a.v.SetConfigName("trialctl")
	a.v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(filepath.Join(home, ".config", "mocktrial"))
	}
	a.v.AddConfigPath(".")
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func (a *app) output() (outputFormat, error) {
	return parseOutputFormat(a.v.GetString(keyOutput))
}

// withClient dials the service and runs fn with a bounded context.
func (a *app) withClient(cmd *cobra.Command, fn func(ctx context.Context, client trialv1.TrialServiceClient) error) error {
	token := strings.TrimSpace(a.v.GetString(keyToken))
	if token == "" {
		return errors.New("a bearer token is required (--token or MOCKTRIAL_CTL_TOKEN); mint one with 'trialctl token mint'")
	}
	timeout := a.v.GetDuration(keyTimeout)
	if timeout <= 0 {
		timeout = timeouts.AdjudicationRequest
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	conn, err := a.dial(ctx, a.v.GetString(keyAddr), grpc.WithChainUnaryInterceptor(authtoken.BearerUnaryClientInterceptor(token)))
	if err != nil {
		return fmt.Errorf("connect to trial service: %w", err)
	}
	defer conn.Close()
	return describeError(fn(ctx, trialv1.NewTrialServiceClient(conn)))
}

func defaultDialer(ctx context.Context, addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	dialOpts := append(platformgrpc.DefaultClientDialOptions(), opts...)
	return platformgrpc.DialWithHealth(ctx, addr, timeouts.GRPCDial, nil, dialOpts...)
}

// describeError turns service errors into "tag: message" lines.
func describeError(err error) error {
	if err == nil {
		return nil
	}
	if tag, message, ok := apperrors.StatusDetails(err); ok && tag != "" {
		return fmt.Errorf("%s: %s", tag, message)
	}
	if st, ok := status.FromError(err); ok {
		return fmt.Errorf("%s: %s", strings.ToLower(st.Code().String()), st.Message())
	}
	return err
}

func writer(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
