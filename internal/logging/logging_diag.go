package logging

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var logPrefix = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}\s\d{2}:\d{2}:\d{2}\s`)

// Reads error.log in logsDir and returns a printable summary.
//
// Returns an empty string when the file holds no errors.
func CheckErrorLogs(logsDir string) (string, error) {
	if !logsDirExist(logsDir) {
		return "", errors.New("logs directory does not exist")
	}

	f, err := os.Open(filepath.Join(logsDir, errorLogName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	foundErrs := []string{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// Remove any logging information in front of the error.
		foundErrs = append(foundErrs, logPrefix.ReplaceAllString(line, ""))
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	if len(foundErrs) == 0 {
		return "", nil
	}

	return fmt.Sprintf("\nFound %d error(s) in error log file.\nThe following errors have been found:\n\n%s",
		len(foundErrs), strings.Join(foundErrs, "\n")), nil
}

func logsDirExist(logsDir string) bool {
	info, err := os.Stat(logsDir)
	return err == nil && info.IsDir()
}
