package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gobeaver/hashkit/base64url"
	"github.com/gobeaver/hashkit/hexenc"
	"github.com/gobeaver/hashkit/random"
	"github.com/gobeaver/hashkit/strutil"
)

func (a *app) encodeCommand() *cobra.Command {
	var (
		format string
		decode bool
	)

	cmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Hex or base64url encode text, or decode it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := input(cmd, args)
			if err != nil {
				return err
			}

			var out string
			switch strings.ToLower(format) {
			case "hex":
				if decode {
					var b []byte
					b, err = hexenc.Decode(in)
					out = string(b)
				} else {
					out = hexenc.Encode([]byte(in))
				}
			case "base64url", "b64":
				if decode {
					out, err = base64url.DecodeString(in)
				} else {
					out = base64url.EncodeString(in)
				}
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "hex", "hex or base64url")
	cmd.Flags().BoolVarP(&decode, "decode", "D", false, "Decode instead of encode")
	return cmd
}

func (a *app) splitCommand() *cobra.Command {
	var delim string

	cmd := &cobra.Command{
		Use:   "split [text]",
		Short: "Print each token of the text on its own line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := input(cmd, args)
			if err != nil {
				return err
			}
			for _, tok := range strutil.Split(in, delim) {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&delim, "delim", ",", "Delimiter, may be several characters")
	return cmd
}

func (a *app) randCommand() *cobra.Command {
	var (
		seed    uint64
		lo, hi  int
		count   int
		weights []int
	)

	cmd := &cobra.Command{
		Use:   "rand",
		Short: "Draw integers in a range, or indexes by weight",
		Long: `Draw integers uniformly from [min, max], or indexes by weight
when --weights is set. A fixed --seed repeats the same sequence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var g *random.Generator
			if cmd.Flags().Changed("seed") {
				g = random.New(seed)
			} else {
				var err error
				if g, err = random.NewFromEntropy(); err != nil {
					return err
				}
			}

			out := make([]string, 0, count)
			for i := 0; i < count; i++ {
				var (
					v   int
					err error
				)
				if len(weights) > 0 {
					v, err = g.WeightedIndex(weights)
				} else {
					v, err = g.Between(lo, hi)
				}
				if err != nil {
					return err
				}
				out = append(out, strconv.Itoa(v))
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a repeatable sequence")
	cmd.Flags().IntVar(&lo, "min", 1, "Lowest value")
	cmd.Flags().IntVar(&hi, "max", 100, "Highest value")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of draws")
	cmd.Flags().IntSliceVarP(&weights, "weights", "w", nil, "Comma separated weights")
	return cmd
}
