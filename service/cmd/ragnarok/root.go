package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	engine "github.com/Dhenz14/norse-mythos-card-game-sub013/engine"
	"github.com/Dhenz14/norse-mythos-card-game-sub013/service/internal/catalog"
	"github.com/Dhenz14/norse-mythos-card-game-sub013/service/internal/config"
	"github.com/Dhenz14/norse-mythos-card-game-sub013/service/internal/store"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	envFile     string
	catalogPath string

	cfg config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "ragnarok",
		Short:        "Tools for the Ragnarok card game engine",
		Version:      engine.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env", "", "dotenv file to load (default .env when present)")
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "card catalog JSON, overrides "+config.KeyCatalogPath)

	root.AddCommand(
		newHashCmd(a),
		newReplayCmd(a),
		newSimulateCmd(a),
		newCatalogCmd(a),
		newResumeCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	if a.catalogPath != "" {
		cfg.CatalogPath = a.catalogPath
	}
	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	log.SetOutput(cmd.ErrOrStderr())
	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) loadCatalog() (*engine.Catalog, error) {
	cat, unused, err := catalog.LoadFile(a.cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	if len(unused) > 0 {
		a.log.WithField("fields", unused).Warn("catalog fields ignored")
	}
	a.log.WithFields(logrus.Fields{"path": a.cfg.CatalogPath, "cards": cat.Len()}).Debug("catalog loaded")
	return cat, nil
}

// stores holds the persistence chosen by configuration. Unset connection
// strings fall back to process memory.
type stores struct {
	journal store.Journal
	cache   store.Cache
	closers []func()
}

func (s *stores) Close() {
	for _, c := range s.closers {
		c()
	}
}

func (a *app) openStores(ctx context.Context) (*stores, error) {
	s := &stores{
		journal: store.NewMemoryJournal(),
		cache:   store.NewMemoryCache(a.cfg.SnapshotTTL),
	}
	if a.cfg.DatabaseURL != "" {
		j, err := store.NewPostgresJournal(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s.journal = j
		s.closers = append(s.closers, j.Close)
	}
	if a.cfg.RedisAddr != "" {
		c, err := store.NewRedisCache(ctx, a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB, a.cfg.SnapshotTTL)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.cache = c
		s.closers = append(s.closers, func() {
			if err := c.Close(); err != nil {
				a.log.WithError(err).Warn("closing redis")
			}
		})
	}
	a.log.WithFields(logrus.Fields{
		"postgres": a.cfg.DatabaseURL != "",
		"redis":    a.cfg.RedisAddr != "",
	}).Debug("stores opened")
	return s, nil
}

func (a *app) requireDatabase() error {
	if a.cfg.DatabaseURL == "" {
		return fmt.Errorf("%s is not set; journaled matches live in Postgres", config.KeyDatabaseURL)
	}
	return nil
}
