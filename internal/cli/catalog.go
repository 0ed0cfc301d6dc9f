package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"apiexplorer/internal/catalog"
	"apiexplorer/internal/model"
	"apiexplorer/internal/openapi"
)

func newEndpointsCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List the catalog by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := o.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), cat)
			return nil
		},
	}
}

func printCatalog(w io.Writer, cat *catalog.Catalog) {
	heading := color.New(color.Bold)
	for i, c := range cat.Categories() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		heading.Fprintln(w, c.Name)
		for _, ep := range c.Endpoints {
			fmt.Fprintf(w, "  %s %-36s %s\n", methodColor(ep.Method).Sprintf("%-6s", ep.Method), ep.Value, ep.URL)
		}
	}
}

func methodColor(m model.Method) *color.Color {
	switch m {
	case model.MethodGet:
		return color.New(color.FgBlue)
	case model.MethodPost:
		return color.New(color.FgGreen)
	case model.MethodDelete:
		return color.New(color.FgRed)
	}
	return color.New(color.Reset)
}

func newOpenAPICommand(o *options) *cobra.Command {
	var serverURL string
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the catalog as an OpenAPI 3 document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := o.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			out, err := sonic.ConfigStd.MarshalIndent(openapi.Document(cat, strings.TrimRight(serverURL, "/")), "", "  ")
			if err != nil {
				return fmt.Errorf("encode openapi document: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&serverURL, "server-url", "http://localhost:5000", "Server URL written into the document")
	return cmd
}
