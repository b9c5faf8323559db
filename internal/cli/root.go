// Package cli implements the hashkit command line.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/gobeaver/hashkit/logging"
)

type app struct {
	logLevel string
	logger   *zap.Logger
}

// NewRootCommand builds the hashkit command tree.
func NewRootCommand() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "hashkit",
		Short:         "SHA-2 digests, HMAC tags and the tools built on them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogger(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (default from HASHKIT_LOG_LEVEL)")

	root.AddCommand(
		a.sumCommand(),
		a.hmacCommand(),
		a.jwtCommand(),
		a.totpCommand(),
		a.pkceCommand(),
		a.signURLCommand(),
		a.verifyURLCommand(),
		a.curlCommand(),
		a.encodeCommand(),
		a.splitCommand(),
		a.randCommand(),
	)
	return root
}

func (a *app) setupLogger(cmd *cobra.Command) error {
	cfg, err := logging.GetConfig()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Level = a.logLevel
	}
	if _, ok := os.LookupEnv("HASHKIT_LOG_FORMAT"); !ok {
		cfg.Format = "console"
	}

	logger, _, err := logging.New(*cfg)
	if err != nil {
		return err
	}
	a.logger = logger.With(zap.String("command", cmd.Name()))
	return nil
}

func addAlgorithmFlag(fs *pflag.FlagSet, p *string) {
	fs.StringVarP(p, "alg", "a", "sha256", "Hash algorithm: sha256 or sha512")
}

// input returns the joined args, or stdin when there are none.
func input(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}
