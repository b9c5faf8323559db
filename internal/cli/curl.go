package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gobeaver/hashkit/request"
)

func (a *app) curlCommand() *cobra.Command {
	var (
		d    request.Data
		post bool
		send bool
	)

	cmd := &cobra.Command{
		Use:   "curl [url]",
		Short: "Print the curl command for a request, or send it",
		Long: `Print the curl command line for a request.

With --send the request is made with the built in HTTP client instead,
configured by the HASHKIT_REQUEST_ variables, and the body is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				d.URL = args[0]
			}
			if !send {
				fmt.Fprintln(cmd.OutOrStdout(), request.Command(d, post))
				return nil
			}

			cfg, err := request.GetConfig()
			if err != nil {
				return err
			}
			client, err := request.NewClient(*cfg, request.WithLogger(a.logger))
			if err != nil {
				return err
			}
			body, err := client.Send(cmd.Context(), d, post)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), body)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&d.Headers, "header", "H", nil, `Header line, "Name: value"`)
	cmd.Flags().StringVarP(&d.PostData, "data", "d", "", "URL encoded body")
	cmd.Flags().StringArrayVar(&d.URLEncodeData, "data-urlencode", nil, "Body item to URL encode")
	cmd.Flags().BoolVar(&post, "post", false, "Force a POST")
	cmd.Flags().BoolVar(&send, "send", false, "Send the request instead of printing it")
	return cmd
}
