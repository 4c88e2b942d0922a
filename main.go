package main

import (
	"fmt"
	"log"
	"time"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/audit"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/auth"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/config"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/database"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/router"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/store"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// init database (sessions, audit mirror, assignments)
	db, err := database.Init(cfg.Store)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// the user directory must be readable before serving any traffic
	fileStore, err := store.NewFileStore(cfg.Store.UsersFile)
	if err != nil {
		log.Fatalf("load user directory: %v", err)
	}

	var users store.UserStore = fileStore
	var registry *store.DBStore
	if cfg.Features.RegistrationEnabled {
		registry = store.NewDBStore(db)
		users = store.NewMulti(fileStore, registry)
	}

	// audit sink: append-only files plus a database mirror for dashboards
	fileSink, err := audit.NewFileSink(cfg.Log.Dir, audit.ParseLevel(cfg.Log.Level))
	if err != nil {
		log.Fatalf("open audit log: %v", err)
	}
	defer fileSink.Close()
	sink := audit.NewMultiSink(fileSink, audit.NewDBSink(db))

	authn := auth.New(users, db, sink, auth.Options{
		Secret:           cfg.Session.Secret,
		SessionTimeout:   cfg.Session.Timeout(),
		LockoutThreshold: cfg.Security.LockoutThreshold,
		LockoutWindow:    time.Duration(cfg.Security.LockoutMinutes) * time.Minute,
	})

	r := router.Setup(router.Deps{
		Cfg:      cfg,
		DB:       db,
		Users:    users,
		Registry: registry,
		Authn:    authn,
		Sink:     sink,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
