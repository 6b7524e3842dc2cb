package main

import (
	"context"
	"fmt"

	"peoplehub.app/api/common/id"
	"peoplehub.app/api/common/logger"
	"peoplehub.app/api/core/config"
	"peoplehub.app/api/core/db"
	"peoplehub.app/api/internal/auth"
	"peoplehub.app/api/internal/service"
	"peoplehub.app/api/internal/store"
)

// app holds what every subcommand needs; the database opens on first use.
type app struct {
	cfg config.Config
	db  *db.DB
}

func (a *app) Init(_ context.Context) error {
	cfg, err := config.Load(config.ServiceTypeCLI)
	if err != nil {
		return err
	}
	a.cfg = cfg
	logger.Setup(cfg)

	// Node 3 keeps CLI-created rows apart from server and worker ids.
	return id.Init(3)
}

func (a *app) Database(ctx context.Context) (*db.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	database, err := db.New(ctx, a.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	a.db = database
	return database, nil
}

func (a *app) Auth(ctx context.Context) (service.AuthService, error) {
	database, err := a.Database(ctx)
	if err != nil {
		return nil, err
	}
	return service.NewAuthService(
		store.NewStores(database.Conn()).Users(),
		auth.NewBcryptHasher(a.cfg.Auth.BcryptCost),
		auth.NewJWTIssuer(a.cfg.Auth.JWTSecret, a.cfg.Auth.JWTIssuer, a.cfg.Auth.TokenTTL),
	), nil
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
}
