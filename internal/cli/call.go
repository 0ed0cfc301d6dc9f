package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"apiexplorer/internal/explorer"
	"apiexplorer/internal/httpclient"
	"apiexplorer/internal/render"
)

type callOptions struct {
	params   []string
	skipAuth bool
	jsonPath string
	verbose  bool
	noColor  bool
}

func newCallCommand(o *options) *cobra.Command {
	co := &callOptions{}
	cmd := &cobra.Command{
		Use:   "call <endpoint>",
		Short: "Build, send and print one request",
		Long: `Call sends one catalog endpoint through the current environment.

Examples:
  apiexplorer call listCampaigns
  apiexplorer call getCampaignById -p campaign_id=camp_42
  apiexplorer call fetchAllEmailAccounts -p limit=5 --jsonpath '$.data[*].from_email'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := o.setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer rt.Close()
			return co.run(cmd, rt, args[0])
		},
	}
	cmd.Flags().StringArrayVarP(&co.params, "param", "p", nil, "Parameter as name=value (repeatable)")
	cmd.Flags().BoolVar(&co.skipAuth, "skip-auth", false, "Send without the stored API key")
	cmd.Flags().StringVar(&co.jsonPath, "jsonpath", "", "Print only the part of the body matching a JSONPath expression")
	cmd.Flags().BoolVarP(&co.verbose, "verbose", "v", false, "Show response headers")
	cmd.Flags().BoolVar(&co.noColor, "no-color", false, "Disable colored output")
	return cmd
}

func (co *callOptions) run(cmd *cobra.Command, rt *runtime, value string) error {
	session := explorer.New(rt.catalog, rt.env, rt.client())
	ep, err := session.Select(value)
	if err != nil {
		return fmt.Errorf("%s: %w", value, err)
	}
	for _, raw := range co.params {
		name, val, ok := strings.Cut(raw, "=")
		if !ok {
			return fmt.Errorf("parameter %q: want name=value", raw)
		}
		if err := session.Set(strings.TrimSpace(name), val); err != nil {
			return err
		}
	}
	session.SetSkipAuth(co.skipAuth)

	p := &render.Printer{Out: cmd.OutOrStdout(), Verbose: co.verbose, NoColor: co.noColor}
	resp, err := session.Submit(cmd.Context())
	if err != nil {
		var reqErr *httpclient.RequestError
		if errors.As(err, &reqErr) && reqErr.Response != nil {
			p.Print(reqErr.Response, ep.Responds())
		}
		return err
	}

	if co.jsonPath == "" {
		p.Print(resp, ep.Responds())
		return nil
	}
	v, err := render.Select(resp.Data, co.jsonPath)
	if err != nil {
		return err
	}
	p.PrintValue(v)
	return nil
}
