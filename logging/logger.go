package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/grovetools/niribar/pkg/paths"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	current Config
	// stdout carries the projected documents, so logs never go there.
	sink    io.Writer = os.Stderr
	logFile *os.File
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()
	apply(logger, current)

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// Configure applies cfg to every logger, including ones created earlier.
// It is called once the configuration file has been loaded.
func Configure(cfg Config) error {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	current = cfg

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	out := io.Writer(os.Stderr)
	if cfg.File.Enabled {
		path := cfg.File.Path
		if path == "" {
			path = defaultLogFile()
		}
		path = expandPath(path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		logFile = f
		out = io.MultiWriter(os.Stderr, f)
	}
	sink = out

	for _, entry := range loggers {
		apply(entry.Logger, current)
	}
	return nil
}

// SetOutput redirects all loggers. Used by tests to capture output.
func SetOutput(w io.Writer) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	sink = w
	for _, entry := range loggers {
		entry.Logger.SetOutput(w)
	}
}

// SetLevel forces a level on all loggers, e.g. for --verbose.
func SetLevel(level logrus.Level) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	current.Level = level.String()
	for _, entry := range loggers {
		entry.Logger.SetLevel(level)
	}
}

// SetJSON switches all loggers to the JSON formatter, e.g. for --json.
func SetJSON() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	current.Format.Preset = "json"
	for _, entry := range loggers {
		entry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}
}

func apply(logger *logrus.Logger, cfg Config) {
	// Configure Level
	levelStr := "info"
	if env := os.Getenv("NIRIBAR_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if cfg.Level != "" {
		levelStr = cfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Configure Caller Reporting
	logger.SetReportCaller(os.Getenv("NIRIBAR_LOG_CALLER") == "true" || cfg.ReportCaller)

	// Configure Formatter
	switch cfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: cfg.Format, Color: logFile == nil && isTerminal(sink)})
	}

	logger.SetOutput(sink)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func defaultLogFile() string {
	return filepath.Join(paths.LogDir(), fmt.Sprintf("niribar-%s.log", time.Now().Format("2006-01-02")))
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// LogFile returns the file the file sink writes to under cfg. Without an
// explicit path this is the most recent file in the state log directory.
func LogFile(cfg Config) (string, error) {
	if cfg.File.Path != "" {
		return expandPath(cfg.File.Path), nil
	}

	dir := paths.LogDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("could not read log directory %s: %w", dir, err)
	}

	var latest string
	var latestMod time.Time
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = filepath.Join(dir, entry.Name())
			latestMod = info.ModTime()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no log files in %s", dir)
	}
	return latest, nil
}
