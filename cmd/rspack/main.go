package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CyberFlameGO/rspack/internal/bundler"
	"github.com/CyberFlameGO/rspack/internal/cache"
	"github.com/CyberFlameGO/rspack/internal/config"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "rspack [entry...]",
		Short:         "Bundle a dependency graph of JavaScript and CSS modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, v, args)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "config file (default rspack.yaml)")
	flags.String("outdir", "dist", "output directory")
	flags.Bool("esm", false, "emit ES modules")
	flags.StringSlice("worker-syntax", nil, "additional worker constructor syntaxes")
	flags.Int("cache-size", 0, "scan cache size in modules")
	flags.String("extract-comments", "", `comment extraction rule ("true" or a regex literal)`)
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.Int("parallelism", 0, "maximum concurrent module scans")

	_ = v.BindPFlag("outdir", flags.Lookup("outdir"))
	_ = v.BindPFlag("esmoutput", flags.Lookup("esm"))
	_ = v.BindPFlag("workersyntaxes", flags.Lookup("worker-syntax"))
	_ = v.BindPFlag("cachesize", flags.Lookup("cache-size"))
	_ = v.BindPFlag("extractcomments", flags.Lookup("extract-comments"))
	_ = v.BindPFlag("loglevel", flags.Lookup("log-level"))

	return cmd
}

func runBuild(cmd *cobra.Command, v *viper.Viper, args []string) error {
	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("rspack")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("RSPACK")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	cfg, warnings, err := config.FromViper(v)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Entries = args
	}

	zlog := newZerolog(cfg.LogLevel)
	for _, warning := range warnings {
		zlog.Warn().Msg(warning)
	}
	if len(cfg.Entries) == 0 {
		zlog.Error().Msg("no entry points given")
		os.Exit(2)
	}

	scanCache, err := cache.NewScanCache(cfg.CacheSize)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parallelism, _ := cmd.Flags().GetInt("parallelism")
	log := logger.NewStderrLog(logger.StderrOptions{IncludeSource: true})

	started := time.Now()
	g, err := bundler.Bundle(ctx, bundler.Options{
		Config:      cfg,
		Cache:       scanCache,
		Log:         log,
		ZLog:        zlog,
		Parallelism: parallelism,
	})
	log.Done()
	if err != nil {
		zlog.Error().Err(err).Msg("build failed")
		os.Exit(1)
	}

	if err := bundler.Emit(g, cfg, zlog); err != nil {
		zlog.Error().Err(err).Msg("emit failed")
		os.Exit(1)
	}

	zlog.Info().
		Int("modules", g.Len()).
		Dur("elapsed", time.Since(started)).
		Str("outdir", cfg.OutDir).
		Msg("build complete")
	return nil
}

func newZerolog(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
}
