package trialctl

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/mocktrial/internal/platform/authtoken"
	"github.com/spf13/cobra"
)

func (a *app) tokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage bearer tokens",
	}

	var (
		userID string
		ttl    time.Duration
	)
	mint := &cobra.Command{
		Use:   "mint",
		Short: "Mint a bearer token signed with the service secret",
		Long: `Mint signs a token with the trial service's JWT secret. The secret is read
from --jwt-secret, MOCKTRIAL_CTL_JWT_SECRET or jwt_secret in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := strings.TrimSpace(a.v.GetString(keyJWTSecret))
			if secret == "" {
				return errors.New("a JWT secret is required to mint tokens")
			}
			token, err := authtoken.Mint(authtoken.Config{
				Secret: []byte(secret),
				Issuer: a.v.GetString(keyJWTIssuer),
			}, userID, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(writer(cmd), token)
			return err
		},
	}
	mint.Flags().StringVar(&userID, "user", "", "user id the token acts as")
	mint.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	mint.Flags().String("jwt-secret", "", "service JWT secret")
	mint.Flags().String("jwt-issuer", authtoken.DefaultIssuer, "token issuer")
	_ = a.v.BindPFlag(keyJWTSecret, mint.Flags().Lookup("jwt-secret"))
	_ = a.v.BindPFlag(keyJWTIssuer, mint.Flags().Lookup("jwt-issuer"))
	_ = mint.MarkFlagRequired("user")

	cmd.AddCommand(mint, a.tokenSecretCommand())
	return cmd
}
