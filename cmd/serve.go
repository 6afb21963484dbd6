package cmd

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hire-matcher/internal/logger"
	"github.com/spigell/hire-matcher/internal/matching"
	"github.com/spigell/hire-matcher/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the matching HTTP API",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on (overrides server.listen)")
	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		stdlog.Fatalf("creating a logger: %s", err)
	}
	defer log.Sync()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	log.Info("starting the hire-matcher", zap.String("version", version), zap.String("store", config.Store.Driver))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc, closeAll, err := newService(ctx, config, log, matching.NewMetrics(registry))
	if err != nil {
		log.Fatal("building the service", zap.Error(err))
	}
	defer func() {
		if err := closeAll(context.Background()); err != nil {
			log.Warn("closing resources", zap.Error(err))
		}
	}()

	srv := server.New(svc, config.Server, registry, logger.Named(log, "http"))
	if err := srv.Run(ctx); err != nil {
		log.Error("http server stopped", zap.Error(err))
		return
	}

	log.Info("exiting", zap.String("reason", "shutdown requested"))
}
