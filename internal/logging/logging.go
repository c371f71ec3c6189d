package logging

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	appLogName   = "app.log"
	errorLogName = "error.log"
)

// All of these vars will be assigned automatically, do not modify!
var (
	// "✓" in green
	SuccessSign = color.GreenString("✓")
	// "i" in yellow
	InfoSign = color.YellowString("i")
	// "x" in red
	ErrorSign = color.RedString("x")
	// "!" in magenta
	WarnSign = color.MagentaString("!")

	// # NOTE: Do not modify manually!
	logDir = ""

	// # NOTE: Do not modify manually!
	openLogFiles []io.Closer

	// Logger used to write to app.log file. Discards until CreateFileLoggers runs.
	appLogger = log.New(io.Discard, "", log.LstdFlags)
	// Logger used to write to error.log file. Discards until CreateFileLoggers runs.
	errorLogger = log.New(io.Discard, "", log.LstdFlags)

	// Logger used to write to stdout.
	consoleInfoLogger = log.New(os.Stdout, "", log.LstdFlags)
	// Logger used to write to stderr.
	consoleErrorLogger = log.New(os.Stderr, "", log.LstdFlags)
)

// Creates a directory with specified name and stores the name in a variable.
//
// Returns a nil error if the directory already exists.
func CreateLogsDirectory(dir string) error {
	logDir = dir
	return os.MkdirAll(dir, 0o750)
}

// Creates the app.log and error.log files in the logs directory.
//
// Both files are rotated by lumberjack once they grow past 32 MB.
func CreateFileLoggers() error {
	if logDir == "" {
		return errors.New("logDir not set")
	}

	appLog := newRotatingFile(appLogName)
	errorLog := newRotatingFile(errorLogName)

	openLogFiles = append(openLogFiles, appLog, errorLog)

	appLogger = log.New(appLog, "", log.LstdFlags)
	errorLogger = log.New(errorLog, "", log.LstdFlags)

	return nil
}

// Redirects the console loggers, mostly useful for tests and the -w flag.
func SetConsoleOutput(stdout, stderr io.Writer) {
	consoleInfoLogger = log.New(stdout, "", log.LstdFlags)
	consoleErrorLogger = log.New(stderr, "", log.LstdFlags)
}

func newRotatingFile(name string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, name),
		MaxSize:    32,
		MaxBackups: 8,
		MaxAge:     30,
	}
}

// Writes a message of type interface to os.Stdout and the app.log file.
//
// Prepends time, date and InfoSign to signalise it's an info log process.
func WriteInfo(message interface{}) {
	appLogger.Println(message)
	consoleInfoLogger.Printf("[%s] %v\n", InfoSign, message)
}

// Writes a message of type interface to os.Stdout and the app.log file.
//
// Prepends time, date and SuccessSign to signalise it's a success log process.
func WriteSuccess(message interface{}) {
	appLogger.Println(message)
	consoleInfoLogger.Printf("[%s] %v\n", SuccessSign, message)
}

// Writes a message of type interface to os.Stderr and the error.log file.
//
// # NOTE: does not shutdown the app, use default log.Fatal or os.Exit(1) for that
func WriteError(message interface{}) {
	errorLogger.Println(message)
	consoleErrorLogger.Printf("[%s] %v\n", ErrorSign, message)
}

// Writes a message of type interface to os.Stdout and the app.log file.
func WriteWarn(message interface{}) {
	appLogger.Println(message)
	consoleInfoLogger.Printf("[%s] %v\n", WarnSign, message)
}

// This function closes every open log file and logger.
//
// # NOTE: only use it on app exit, file output is discarded afterwards.
func CloseLogFiles() error {
	appLogger = log.New(io.Discard, "", log.LstdFlags)
	errorLogger = log.New(io.Discard, "", log.LstdFlags)

	for _, f := range openLogFiles {
		if err := f.Close(); err != nil {
			return err
		}
	}
	openLogFiles = nil

	return nil
}
