// Package cli implements the apiexplorer command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"apiexplorer/internal/catalog"
	"apiexplorer/internal/config"
	"apiexplorer/internal/credentials"
	"apiexplorer/internal/environment"
	"apiexplorer/internal/httpclient"
	"apiexplorer/internal/logger"
	"apiexplorer/internal/openapi"
	"apiexplorer/internal/storage"
)

type options struct {
	configPath string
	catalogSrc string
}

// runtime is everything a command needs once config is resolved.
type runtime struct {
	cfg     *config.Config
	log     *zap.Logger
	catalog *catalog.Catalog
	store   storage.Store
	env     *environment.Resolver
	creds   *credentials.Store
}

// NewRootCommand builds the command tree. Tests execute it directly.
func NewRootCommand() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "apiexplorer",
		Short: "Explore and call the campaign management API",
		Long: `apiexplorer serves a mock of the campaign management API, proxies calls to
the real one, and lets you browse and try every documented endpoint.

Examples:
  apiexplorer serve
  apiexplorer explore
  apiexplorer call getCampaignById -p campaign_id=camp_42
  apiexplorer env --real --proxy
  apiexplorer key set sk_live_xxx`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&o.configPath, "config", os.Getenv(config.EnvConfig), "Path to a YAML config file")
	root.PersistentFlags().StringVar(&o.catalogSrc, "catalog", "", "OpenAPI document (URL or file) to use instead of the bundled catalog")

	root.AddCommand(
		newServeCommand(o),
		newExploreCommand(o),
		newEndpointsCommand(o),
		newCallCommand(o),
		newEnvCommand(o),
		newKeyCommand(o),
		newOpenAPICommand(o),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and opens storage. server selects the stdout logger;
// every other command logs to the configured file only so its output stays clean.
func (o *options) setup(ctx context.Context, server bool) (*runtime, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	log := logger.ForTerminal(cfg.Log)
	if server {
		log = logger.New(cfg.Log)
	}

	cat, err := o.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	env := environment.NewResolver(store, cfg.Remote.Origin, log.Named("environment"))
	if _, err := env.Load(); err != nil {
		store.Close()
		return nil, err
	}

	return &runtime{
		cfg:     cfg,
		log:     log,
		catalog: cat,
		store:   store,
		env:     env,
		creds:   credentials.New(store),
	}, nil
}

func (o *options) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if o.catalogSrc == "" {
		return catalog.Default(), nil
	}
	doc, err := openapi.Load(ctx, o.catalogSrc)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	cat, err := catalog.FromEndpoints(openapi.ExtractEndpoints(doc))
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func (r *runtime) client() *httpclient.Client {
	return httpclient.New(httpclient.Options{
		ServerURL:    r.cfg.Client.ServerURL,
		RemoteOrigin: r.cfg.Remote.Origin,
		Timeout:      r.cfg.Remote.Timeout,
		Credentials:  r.creds,
		Logger:       r.log.Named("http"),
	})
}

func (r *runtime) Close() error {
	_ = r.log.Sync()
	return r.store.Close()
}
