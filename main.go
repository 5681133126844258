package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/deadbrock/avalia-o/app"
	"github.com/deadbrock/avalia-o/config"
	"github.com/deadbrock/avalia-o/httpx"
	"github.com/deadbrock/avalia-o/log"
	"github.com/deadbrock/avalia-o/routes"
	"github.com/deadbrock/avalia-o/store"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	stores, err := store.Open(cfg)
	if err != nil {
		log.Fatal("main.store.open:", err)
	}
	defer stores.Close()

	bearerServer, err := httpx.NewBearerServer(cfg)
	if err != nil {
		log.Fatal("main.auth:", err)
	}

	app := app.App{
		Stores:       stores,
		BearerServer: bearerServer,
		Config:       cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Infof("Listening on %s (storage: %s)", cfg.Url(), cfg.Storage)
	return srv.ListenAndServe()
}
