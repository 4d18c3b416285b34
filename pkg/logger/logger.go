package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type LogMode string

const (
	LogModeDebug  LogMode = "debug"
	LogModePretty LogMode = "pretty"
	LogModeInfo   LogMode = "info"
	LogModeProd   LogMode = "prod"
	LogModeTest   LogMode = "test"
)

// Config selects the console format and an optional log file. When File
// names a directory, a timestamped file is created inside it.
type Config struct {
	Mode LogMode
	File string
}

var (
	mu      sync.RWMutex
	log     = zerolog.Nop()
	logFile *os.File
)

// Init sets up the pretty console logger.
func Init() {
	InitWithMode(LogModePretty)
}

func InitWithMode(mode LogMode) {
	// without a file the setup cannot fail
	_ = InitWithConfig(Config{Mode: mode})
}

func InitWithConfig(cfg Config) error {
	var writers []io.Writer
	level := zerolog.InfoLevel

	switch cfg.Mode {
	case LogModeDebug:
		level = zerolog.DebugLevel
		writers = append(writers, consoleWriter(false))
	case LogModeInfo:
		writers = append(writers, consoleWriter(true))
	case LogModeProd:
		writers = append(writers, os.Stdout)
	case LogModeTest:
		level = zerolog.Disabled
	default:
		writers = append(writers, consoleWriter(false))
	}

	var file *os.File
	if cfg.File != "" {
		f, err := openLogFile(cfg.File)
		if err != nil {
			return err
		}
		file = f
		writers = append(writers, f)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)

	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
	}
	logFile = file

	if len(writers) == 0 {
		log = zerolog.Nop()
	} else {
		log = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &log
	return nil
}

// Close releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func openLogFile(path string) (*os.File, error) {
	if info, err := os.Stat(path); (err == nil && info.IsDir()) || strings.HasSuffix(path, string(os.PathSeparator)) {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		path = filepath.Join(path, fmt.Sprintf("system-stats_%s.log", time.Now().Format("2006-01-02_15-04-05")))
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func consoleWriter(noColor bool) zerolog.ConsoleWriter {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    noColor,
	}
	if noColor {
		return output
	}

	output.FormatLevel = func(i interface{}) string {
		s, _ := i.(string)
		return colorizeLevel(s)
	}
	output.FormatMessage = func(i interface{}) string {
		return colorize(fmt.Sprint(i), cyan)
	}
	output.FormatFieldName = func(i interface{}) string {
		return colorize(fmt.Sprint(i)+":", gray)
	}
	output.FormatFieldValue = func(i interface{}) string {
		switch v := i.(type) {
		case string:
			return colorize(v, blue)
		case json.Number:
			return colorize(v.String(), blue)
		default:
			return colorize(fmt.Sprint(v), blue)
		}
	}
	return output
}

// ANSI color codes
const (
	gray  = "\x1b[37m"
	blue  = "\x1b[34m"
	cyan  = "\x1b[36m"
	red   = "\x1b[31m"
	reset = "\x1b[0m"
)

func colorize(s, color string) string {
	return color + s + reset
}

func colorizeLevel(level string) string {
	switch level {
	case "debug":
		return colorize("DBG", gray)
	case "info":
		return colorize("INF", blue)
	case "warn":
		return colorize("WRN", cyan)
	case "error":
		return colorize("ERR", red)
	case "fatal":
		return colorize("FTL", red)
	default:
		return colorize(level, blue)
	}
}

// Get returns the logger instance
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// WithComponent returns a child logger tagged with the component name.
func WithComponent(component string) zerolog.Logger {
	l := Get()
	return l.With().Str("component", component).Logger()
}
