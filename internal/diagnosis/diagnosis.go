// Package diagnosis implements the -d mode of courtd. It checks the setup
// without starting the console and reports every problem it finds.
package diagnosis

import (
	"fmt"
	"io"

	"github.com/devusSs/court-kraken/internal/config"
	"github.com/devusSs/court-kraken/internal/database/backend"
	"github.com/devusSs/court-kraken/internal/logging"
	"github.com/devusSs/court-kraken/internal/system"
)

// RunDiagnosis returns the number of problems found. The returned error is
// only set when the diagnosis itself could not run.
func RunDiagnosis(logPath, cfgPath string, out io.Writer) (int, error) {
	errCount := 0
	printInfo := func(message string) { fmt.Fprintf(out, "[%s] %s\n", logging.InfoSign, message) }
	printError := func(message string) {
		errCount++
		fmt.Fprintf(out, "[%s] %s\n", logging.ErrorSign, message)
	}

	printInfo("Running app in diagnostics mode...")

	printInfo("Loading config from file...")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		printError(fmt.Sprintf("Error loading config: %s", err.Error()))
	} else {
		printInfo("Checking config...")
		if err := cfg.CheckConfig(); err != nil {
			printError(fmt.Sprintf("Error checking config: %s", err.Error()))
		}

		printInfo(fmt.Sprintf("Connecting to %s database...", cfg.Database.Driver))
		if err := pingDatabase(cfg); err != nil {
			printError(fmt.Sprintf("Error %s", err.Error()))
		}

		if cfg.Webhooks.Enabled {
			printInfo("Resolving webhook hosts...")
			for _, u := range []string{cfg.Webhooks.URL, cfg.Webhooks.AdvertURL} {
				if u == "" {
					continue
				}
				if err := system.TestConnection(u); err != nil {
					printError(fmt.Sprintf("Error resolving webhook host: %s", err.Error()))
				}
			}
		}
	}

	printInfo("Determining OS platform...")
	if osV := system.DetermineOS(); osV == "unknown" {
		printError("Determined OS is unsupported (use Linux, MacOS or Windows)")
	}

	printInfo("Checking error.log file for information...")
	foundErrsLogFile, err := logging.CheckErrorLogs(logPath)
	if err != nil {
		return errCount, err
	}
	if foundErrsLogFile != "" {
		printError(foundErrsLogFile)
	}

	return errCount, nil
}

func pingDatabase(cfg *config.Config) error {
	svc, err := backend.Open(cfg)
	if err != nil {
		return fmt.Errorf("creating database connection: %w", err)
	}
	defer svc.Close()

	if err := svc.Ping(); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	return nil
}
