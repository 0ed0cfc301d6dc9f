package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"apiexplorer/internal/model"
	"apiexplorer/internal/render"
)

func newEnvCommand(o *options) *cobra.Command {
	var useReal, proxy bool
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Show or change the environment settings",
		Long: `Env prints the persisted environment settings. --real switches between the
mock API and the real one; --proxy routes real calls through the local gateway.
The base API URL always follows from those two toggles.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := o.setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer rt.Close()

			cur := rt.env.Current()
			flags := cmd.Flags()
			if flags.Changed("real") || flags.Changed("proxy") {
				if flags.Changed("real") {
					cur.UseRealAPI = useReal
				}
				if flags.Changed("proxy") {
					cur.ProxyEnabled = proxy
				}
				if cur, err = rt.env.Apply(cur.UseRealAPI, cur.ProxyEnabled); err != nil {
					return err
				}
			}
			printEnv(cmd.OutOrStdout(), cur)
			return nil
		},
	}
	cmd.Flags().BoolVar(&useReal, "real", false, "Call the real API instead of the mock")
	cmd.Flags().BoolVar(&proxy, "proxy", true, "Route real API calls through the local proxy")
	return cmd
}

func printEnv(w io.Writer, s model.EnvironmentSettings) {
	fmt.Fprintf(w, "use real api:  %t\n", s.UseRealAPI)
	fmt.Fprintf(w, "proxy enabled: %t\n", s.ProxyEnabled)
	fmt.Fprintf(w, "base api url:  %s\n", s.BaseAPIURL)
}

func newKeyCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored API key",
	}

	withRuntime := func(fn func(cmd *cobra.Command, rt *runtime, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			rt, err := o.setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer rt.Close()
			return fn(cmd, rt, args)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key>",
			Short: "Store an API key (a blank key clears it)",
			Args:  cobra.ExactArgs(1),
			RunE: withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
				if err := rt.creds.SetKey(args[0]); err != nil {
					return err
				}
				return printKey(cmd.OutOrStdout(), rt)
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the stored API key",
			Args:  cobra.NoArgs,
			RunE: withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
				if err := rt.creds.Clear(); err != nil {
					return err
				}
				return printKey(cmd.OutOrStdout(), rt)
			}),
		},
		&cobra.Command{
			Use:   "enable",
			Short: "Send the stored key with requests",
			Args:  cobra.NoArgs,
			RunE: withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
				if err := rt.creds.SetEnabled(true); err != nil {
					return err
				}
				return printKey(cmd.OutOrStdout(), rt)
			}),
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Keep the key but stop sending it",
			Args:  cobra.NoArgs,
			RunE: withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
				if err := rt.creds.SetEnabled(false); err != nil {
					return err
				}
				return printKey(cmd.OutOrStdout(), rt)
			}),
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the masked key and whether it is in use",
			Args:  cobra.NoArgs,
			RunE: withRuntime(func(cmd *cobra.Command, rt *runtime, args []string) error {
				return printKey(cmd.OutOrStdout(), rt)
			}),
		},
	)
	return cmd
}

func printKey(w io.Writer, rt *runtime) error {
	key, err := rt.creds.Key()
	if err != nil {
		return err
	}
	enabled, err := rt.creds.Enabled()
	if err != nil {
		return err
	}
	if key == "" {
		fmt.Fprintf(w, "api key: (none)\nin use:  %t\n", enabled)
		return nil
	}
	fmt.Fprintf(w, "api key: %s\nin use:  %t\n", render.MaskKey(key), enabled)
	return nil
}
