package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devusSs/court-kraken/internal/audit"
	"github.com/devusSs/court-kraken/internal/clients"
	"github.com/devusSs/court-kraken/internal/commands"
	"github.com/devusSs/court-kraken/internal/config"
	"github.com/devusSs/court-kraken/internal/console"
	"github.com/devusSs/court-kraken/internal/database/backend"
	"github.com/devusSs/court-kraken/internal/diagnosis"
	"github.com/devusSs/court-kraken/internal/logging"
	"github.com/devusSs/court-kraken/internal/system"
	"github.com/devusSs/court-kraken/internal/updater"
	"github.com/devusSs/court-kraken/internal/webhooks"
)

func main() {
	startTime := time.Now()

	var updateChecker *time.Ticker

	/*
		Usually the default flags will work fine.
		Check the README for any configuration questions.
	*/
	logPath := flag.String("l", "./logs", "[REQ] sets the logging path")
	cfgPath := flag.String("c", "./files/config.json", "[REQ] sets config path")

	// Diagnosis mode checks config, database, webhook hosts and error.log, then exits.
	diagMode := flag.Bool("d", false, "[OPT] runs the app in diagnosis mode")

	// Prints available app build information.
	versionMode := flag.Bool("v", false, "[OPT] prints the build information of the app")

	// Skip checking for updates on startup and also skip periodic update checks.
	skipUpdates := flag.Bool("su", false, "[OPT] skips updates")

	// Sends one sample notification of the given kind and exits.
	webhookTest := flag.String("w", "", "[OPT] send a test webhook (modcall, advert, kick, ban, unban, warn) and exit")

	flag.Parse()

	// Print the version / build information if user wants to, exits after.
	if *versionMode {
		updater.PrintBuildInformationRaw()
		return
	}

	if !*skipUpdates {
		log.Printf("[%s] Checking for updates...\n", logging.InfoSign)

		release, err := updater.FindLatestRelease()
		if err != nil {
			log.Printf("[%s] Error checking for updates: %s\n", logging.WarnSign, err.Error())
		} else {
			newVersionAvailable, err := updater.NewerVersionAvailable(release.Version)
			if err != nil {
				log.Fatalf("[%s] Error checking for updates: %s", logging.ErrorSign, err.Error())
			}

			if newVersionAvailable {
				log.Printf("[%s] New version available, performing update now...\n", logging.WarnSign)

				if err := updater.DoUpdate(release.URL); err != nil {
					log.Fatalf("[%s] Error performing updates: %s", logging.ErrorSign, err.Error())
				}

				log.Printf("[%s] Update changelog (%s): %s\n", logging.InfoSign, release.Version, release.Changelog)
				log.Printf("[%s] Update successful, please restart the app\n", logging.SuccessSign)

				return
			}

			log.Printf("[%s] App is up to date\n", logging.SuccessSign)
		}

		updateChecker = time.NewTicker(24 * time.Hour)
		go func() {
			for range updateChecker.C {
				newVersion, err := updater.PeriodicUpdateCheck()
				if err != nil {
					logging.WriteError(fmt.Sprintf("Error on periodic update check: %s", err.Error()))
					continue
				}

				if newVersion != "" {
					logging.WriteWarn(fmt.Sprintf("New version available (%s). Please restart your app soon", newVersion))
				}
			}
		}()

		log.Printf("[%s] Set up periodic update check (24 hours)\n", logging.SuccessSign)
	} else {
		log.Printf("[%s] Skipping updates...\n", logging.InfoSign)
	}

	if *webhookTest == "" && !*diagMode {
		system.CallClear()
	}

	if err := logging.CreateLogsDirectory(*logPath); err != nil {
		log.Fatalf("[%s] Error creating logs directory: %s", logging.ErrorSign, err.Error())
	}

	if err := logging.CreateFileLoggers(); err != nil {
		log.Fatalf("[%s] Error creating log files: %s", logging.ErrorSign, err.Error())
	}

	// ! It's safe to use the logging.WriteX methods from here.

	if *diagMode {
		errCount, err := diagnosis.RunDiagnosis(*logPath, *cfgPath, os.Stdout)
		if err != nil {
			log.Fatalf("Error running diagnosis: %s", err.Error())
		}
		fmt.Printf("\n[%s] Total errors found: %d\n", logging.SuccessSign, errCount)
		return
	}

	if osV := system.DetermineOS(); osV == "unknown" {
		logging.WriteWarn("Unsupported OS, continuing anyway")
	}

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		logging.WriteError(err)
		os.Exit(1)
	}

	logging.WriteSuccess("Successfully loaded config")

	if err := cfg.CheckConfig(); err != nil {
		logging.WriteError(err)
		os.Exit(1)
	}

	logging.WriteSuccess("Successfully checked config")

	// Webhook delivery is best effort, an unreachable host only warrants a warning.
	if cfg.Webhooks.Enabled {
		if err := system.TestConnection(cfg.Webhooks.URL); err != nil {
			logging.WriteWarn(fmt.Sprintf("Webhook host unreachable: %s", err.Error()))
		}
	}

	svc, err := backend.Open(cfg)
	if err != nil {
		logging.WriteError(err)
		os.Exit(1)
	}

	if err := svc.Ping(); err != nil {
		logging.WriteError(err)
		os.Exit(1)
	}

	logging.WriteSuccess(fmt.Sprintf("Successfully connected to %s database", cfg.Database.Driver))

	if err := svc.Migrate(); err != nil {
		logging.WriteError(err)
		os.Exit(1)
	}

	logging.WriteSuccess("Successfully migrated database tables")

	auditLog := audit.New(svc)
	manager := clients.NewManager()
	notifier := webhooks.New(cfg, manager, auditLog)
	registry := commands.New(manager, auditLog, notifier)

	if *webhookTest != "" {
		err := sendTestWebhook(context.Background(), notifier, *webhookTest)
		if err != nil {
			logging.WriteError(err)
		} else {
			logging.WriteSuccess(fmt.Sprintf("Sent %s test webhook, check the audit log for the outcome", *webhookTest))
		}
		shutdown(svc.Close, nil)
		if err != nil {
			os.Exit(1)
		}
		return
	}

	var metricsServer *http.Server
	if cfg.Server.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:              cfg.Server.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.WriteError(fmt.Sprintf("Metrics listener failed: %s", err.Error()))
			}
		}()

		logging.WriteSuccess(fmt.Sprintf("Serving metrics on %s/metrics", cfg.Server.MetricsAddr))
	}

	con := console.New(registry, manager, svc, cfg.Misc.GimpLines, os.Stdout)

	logging.WriteInfo(fmt.Sprintf("Initiating app took %.2f second(s)", time.Since(startTime).Seconds()))
	logging.WriteInfo(fmt.Sprintf("%s is in session. Type /help for commands, CTRL+C to shutdown", serverName(cfg)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	if err := con.Run(ctx, os.Stdin); err != nil {
		logging.WriteError(err)
	}
	stop()

	logging.WriteInfo("Shutting down...")

	// !APP EXIT

	if updateChecker != nil {
		updateChecker.Stop()
	}

	shutdown(svc.Close, metricsServer)

	log.Printf("[%s] App ran for %.2f second(s)", logging.InfoSign, time.Since(startTime).Seconds())
}

func serverName(cfg *config.Config) string {
	if cfg.Server.Name != "" {
		return cfg.Server.Name
	}
	return "Court"
}

func shutdown(closeDB func() error, metricsServer *http.Server) {
	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(ctx); err != nil {
			logging.WriteError(err)
		}
	}

	if err := closeDB(); err != nil {
		logging.WriteError(fmt.Sprintf("Error closing database connection: %s", err.Error()))
	} else {
		logging.WriteSuccess("Successfully closed database connection")
	}

	// DO NOT USE CONSOLE OR FILE LOGGERS AT THIS POINT ANYMORE
	if err := logging.CloseLogFiles(); err != nil {
		log.Fatalf("[%s] Error closing logs: %s", logging.ErrorSign, err.Error())
	}

	log.Printf("[%s] Successfully closed log files and loggers\n", logging.SuccessSign)
}
