package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gobeaver/hashkit/hmac"
	"github.com/gobeaver/hashkit/jwt"
	"github.com/gobeaver/hashkit/krypto"
	"github.com/gobeaver/hashkit/sha2"
)

func (a *app) jwtCommand() *cobra.Command {
	var (
		alg      string
		secret   string
		header   string
		standard bool
		verify   bool
	)

	cmd := &cobra.Command{
		Use:   "jwt --secret SECRET <payload|token>",
		Short: "Assemble a compact JWT from a JSON payload, or verify one",
		Long: `Assemble header.payload.signature from a JSON payload.

The signature is the hex HMAC of the signing input by default. With
--standard it is base64url of the raw tag, as RFC 7515 requires.
With --verify the argument is a token: its header and payload are
printed when the signature matches.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, err := sha2.ParseAlgorithm(alg)
			if err != nil {
				return err
			}
			sign := signerFor(algo, standard)
			if header == "" {
				header = defaultHeader(algo)
			}

			out := cmd.OutOrStdout()
			if verify {
				h, p, err := jwt.Verify(args[0], secret, sign)
				if err != nil {
					a.logger.Info("token rejected", zap.Error(err))
					return err
				}
				fmt.Fprintln(out, h)
				fmt.Fprintln(out, p)
				return nil
			}

			token, err := jwt.Create(secret, args[0], header, sign)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, token)
			return nil
		},
	}
	addAlgorithmFlag(cmd.Flags(), &alg)
	cmd.Flags().StringVarP(&secret, "secret", "s", "", "HMAC secret")
	cmd.Flags().StringVar(&header, "header", "", "JSON header (default matches --alg)")
	cmd.Flags().BoolVar(&standard, "standard", false, "Use a base64url signature instead of hex")
	cmd.Flags().BoolVar(&verify, "verify", false, "Verify the token given as argument")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}

func signerFor(alg sha2.Algorithm, standard bool) jwt.Signer {
	switch {
	case alg == sha2.SHA512 && standard:
		return jwt.SignHS512
	case alg == sha2.SHA512:
		return hmac.Hex512
	case standard:
		return jwt.SignHS256
	default:
		return hmac.Hex256
	}
}

func defaultHeader(alg sha2.Algorithm) string {
	if alg == sha2.SHA512 {
		return `{"alg":"HS512","typ":"JWT"}`
	}
	return jwt.HeaderHS256
}

var errCodeMismatch = errors.New("code does not match")

func (a *app) totpCommand() *cobra.Command {
	var (
		alg      string
		secret   string
		digits   int
		period   time.Duration
		at       int64
		skew     uint
		validate string
	)

	cmd := &cobra.Command{
		Use:   "totp --secret SECRET",
		Short: "Print the current RFC 6238 code, or validate one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, err := sha2.ParseAlgorithm(alg)
			if err != nil {
				return err
			}
			now := time.Now()
			if cmd.Flags().Changed("at") {
				now = time.Unix(at, 0)
			}
			opts := krypto.TOTPOptions{Period: period, Digits: digits, Algorithm: algo, Skew: skew}

			if validate != "" {
				if !krypto.ValidateTOTP([]byte(secret), validate, now, opts) {
					return errCodeMismatch
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}

			code, err := krypto.GenerateTOTP([]byte(secret), now, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}
	addAlgorithmFlag(cmd.Flags(), &alg)
	cmd.Flags().StringVarP(&secret, "secret", "s", "", "Shared secret")
	cmd.Flags().IntVarP(&digits, "digits", "d", 6, "Code length, 6 to 9")
	cmd.Flags().DurationVar(&period, "period", 30*time.Second, "Time step")
	cmd.Flags().Int64Var(&at, "at", 0, "Unix time to use instead of now")
	cmd.Flags().UintVar(&skew, "skew", 1, "Steps of clock drift accepted by --validate")
	cmd.Flags().StringVar(&validate, "validate", "", "Code to check instead of printing one")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}

func (a *app) pkceCommand() *cobra.Command {
	var method, verifier string

	cmd := &cobra.Command{
		Use:   "pkce",
		Short: "Generate an RFC 7636 verifier and challenge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if verifier != "" {
				challenge, err := krypto.PKCEChallengeFor(verifier, method)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "challenge="+challenge)
				return nil
			}

			pkce, err := krypto.GeneratePKCEChallenge(method)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "verifier="+pkce.Verifier)
			fmt.Fprintln(out, "challenge="+pkce.Challenge)
			fmt.Fprintln(out, "method="+pkce.ChallengeMethod)
			return nil
		},
	}
	cmd.Flags().StringVarP(&method, "method", "m", krypto.PKCEMethodS256, "S256 or plain")
	cmd.Flags().StringVar(&verifier, "verifier", "", "Derive the challenge for this verifier")
	return cmd
}
