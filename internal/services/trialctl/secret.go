package trialctl

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// secretEnvVar is the trial service setting the generated secret is for.
const secretEnvVar = "MOCKTRIAL_TRIAL_JWT_SECRET"

func (a *app) tokenSecretCommand() *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Generate a random JWT signing secret for the trial service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeSecret(writer(cmd), nil, size)
		},
	}
	cmd.Flags().IntVar(&size, "bytes", 32, "number of random bytes")
	return cmd
}

// writeSecret prints an env assignment holding size random bytes in hex.
func writeSecret(out io.Writer, reader io.Reader, size int) error {
	if size < 16 {
		return errors.New("secret must be at least 16 bytes")
	}
	if reader == nil {
		reader = rand.Reader
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return fmt.Errorf("generate random bytes: %w", err)
	}
	_, err := fmt.Fprintf(out, "%s=%s\n", secretEnvVar, hex.EncodeToString(buf))
	return err
}
