package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gobeaver/hashkit/hmac"
	"github.com/gobeaver/hashkit/krypto"
	"github.com/gobeaver/hashkit/sha2"
)

func (a *app) sumCommand() *cobra.Command {
	var (
		alg  string
		jobs int
	)

	cmd := &cobra.Command{
		Use:   "sum [text...]",
		Short: "Print the SHA-2 digest of each argument, or of stdin",
		Long: `Print the SHA-2 digest of each argument, in the md5sum layout.

With no arguments the whole of stdin is hashed and shown as "-".
Several arguments are hashed in parallel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, err := sha2.ParseAlgorithm(alg)
			if err != nil {
				return err
			}

			names := args
			var inputs [][]byte
			if len(args) == 0 {
				in, err := input(cmd, nil)
				if err != nil {
					return err
				}
				names = []string{"-"}
				inputs = [][]byte{[]byte(in)}
			} else {
				for _, arg := range args {
					inputs = append(inputs, []byte(arg))
				}
			}

			digests, err := krypto.HashAll(cmd.Context(), algo, inputs, jobs)
			if err != nil {
				return err
			}
			a.logger.Debug("hashed inputs", zap.Int("count", len(inputs)), zap.Stringer("alg", algo))

			for i, d := range digests {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", d.Hex(), names[i])
			}
			return nil
		},
	}
	addAlgorithmFlag(cmd.Flags(), &alg)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Maximum inputs hashed at once")
	return cmd
}

func (a *app) hmacCommand() *cobra.Command {
	var alg, key string

	cmd := &cobra.Command{
		Use:   "hmac --key KEY [message]",
		Short: "Print the hex HMAC of a message, or of stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, err := sha2.ParseAlgorithm(alg)
			if err != nil {
				return err
			}
			msg, err := input(cmd, args)
			if err != nil {
				return err
			}
			tag, err := hmac.Hex(algo, []byte(key), []byte(msg))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tag)
			return nil
		},
	}
	addAlgorithmFlag(cmd.Flags(), &alg)
	cmd.Flags().StringVarP(&key, "key", "k", "", "Secret key")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
