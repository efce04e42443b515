package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"trade-reconciliation/internal/compare"
	"trade-reconciliation/internal/config"
	"trade-reconciliation/internal/gateway"
	"trade-reconciliation/internal/logger"
	"trade-reconciliation/internal/matching"
	"trade-reconciliation/internal/scheduler"
	"trade-reconciliation/internal/triage"
	"trade-reconciliation/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML configuration file")
	bankFile := flag.String("bank", "", "Path to the bank record store (overrides config)")
	ctpyFile := flag.String("counterparty", "", "Path to the counterparty record store (overrides config)")
	asJSON := flag.Bool("json", false, "Emit the full run report as JSON instead of text")
	daemon := flag.Bool("daemon", false, "Keep running and recompute the routing policy on a schedule")
	flag.Parse()

	// .env is optional; OS environment wins either way.
	if err := godotenv.Load(); err == nil {
		log.Println(".env file loaded")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *bankFile != "" {
		cfg.Stores.BankPath = *bankFile
	}
	if *ctpyFile != "" {
		cfg.Stores.CounterpartyPath = *ctpyFile
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger.Init(cfg.LogLevel)

	store, err := gateway.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	// --- Dependency wiring ---
	repo := gateway.NewJSONRecordRepository()
	engine := matching.NewEngine(compare.NewComparator(cfg.Tolerances()))
	policies := triage.NewPolicyProvider(store, cfg.Policy.CacheTTL)
	uc := usecase.NewReconciliationUseCase(repo, store, engine, policies)

	ctx := context.Background()

	runReport, err := uc.Reconcile(ctx, cfg.Stores.BankPath, cfg.Stores.CounterpartyPath)
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}

	if *asJSON {
		output, err := json.MarshalIndent(runReport, "", "  ")
		if err != nil {
			log.Fatalf("Failed to generate JSON report: %v", err)
		}
		fmt.Println(string(output))
	} else {
		fmt.Print(runReport.Render())
	}

	if !*daemon {
		return
	}

	sched := scheduler.NewScheduler(ctx, policies)
	if err := sched.RegisterAll(cfg.Policy.RecomputeCron); err != nil {
		log.Fatalf("Failed to register scheduled tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}
