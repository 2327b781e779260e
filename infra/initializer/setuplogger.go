package initializer

import (
	"io"
	"log/slog"

	"github.com/amirasaad/ledgerbook/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// levelStyle pairs a level badge with its colour.
type levelStyle struct {
	badge string
	color lipgloss.AdaptiveColor
}

var levelStyles = map[log.Level]levelStyle{
	log.DebugLevel: {badge: "DEBU", color: lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#B39DDB"}},
	log.InfoLevel:  {badge: "INFO", color: lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}},
	log.WarnLevel:  {badge: "WARN", color: lipgloss.AdaptiveColor{Light: "#E0A800", Dark: "#FFD54F"}},
	log.ErrorLevel: {badge: "ERRO", color: lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#FF6B6B"}},
}

// highlightedKeys get the colour of the matching level so they stand out in text output.
var highlightedKeys = map[string]log.Level{
	"error":      log.ErrorLevel,
	"status":     log.InfoLevel,
	"request_id": log.DebugLevel,
	"account_id": log.DebugLevel,
}

func newStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level, s := range levelStyles {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(s.badge).
			Bold(true).
			MaxWidth(4).
			Foreground(s.color)
	}
	for key, level := range highlightedKeys {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(levelStyles[level].color)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}

// setupLogger builds the process logger on charmbracelet/log and installs it
// as the slog default.
func setupLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Level <= int(log.DebugLevel),
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	if formatter == log.TextFormatter {
		handler.SetStyles(newStyles())
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
