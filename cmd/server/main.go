package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/patilv/papaja/adapters/api"
	"github.com/patilv/papaja/adapters/postgres"
	"github.com/patilv/papaja/adapters/typeset"
	"github.com/patilv/papaja/app"
	"github.com/patilv/papaja/domain/apa"
	"github.com/patilv/papaja/internal"
	"github.com/patilv/papaja/internal/config"
	"github.com/patilv/papaja/ports"
)

func main() {
	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var reports ports.ReportRepository
	if cfg.Database.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := postgres.Connect(ctx, cfg.Database.URL)
		cancel()
		if err != nil {
			log.Fatalf("failed to set up report storage: %v", err)
		}
		defer db.Close()
		reports = postgres.NewReportRepository(db)
		logger.Info("report storage enabled")
	} else {
		logger.Info("DATABASE_URL not set; rendering without report storage")
	}

	formatter := app.NewResultFormatter(
		typeset.NewNumbers(),
		typeset.NewPValues(),
		typeset.NewNames(),
		typeset.NewIntervals(),
		typeset.NewLatex(),
		apa.NewNameTable(),
	)
	service := app.NewRenderService(formatter, reports)
	server := api.NewServer(service, reports)

	addr := ":" + cfg.Server.Port
	logger.Info("starting render server on %s", addr)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		log.Fatal("server failed:", err)
	}
}
