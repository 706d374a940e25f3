package logging

import (
	"log/slog"
	"os"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Sinks owns the handlers behind the default slog logger.
type Sinks struct {
	handlers []slog.Handler
	file     *lumberjack.Logger
}

// Setup installs a JSON logger writing to stdout and, when cfg.LogFile is
// set, to a rotating log file.
func Setup(cfg *config.Config) *Sinks {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	s := &Sinks{handlers: []slog.Handler{slog.NewJSONHandler(os.Stdout, opts)}}

	if cfg != nil && cfg.LogFile != "" {
		s.file = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     cfg.LogRetentionDays,
			Compress:   true,
		}
		s.handlers = append(s.handlers, slog.NewJSONHandler(s.file, opts))
	}

	s.install()
	return s
}

// Attach adds handlers next to the existing sinks, such as a DBHandler once
// the database is reachable.
func (s *Sinks) Attach(handlers ...slog.Handler) {
	s.handlers = append(s.handlers, handlers...)
	s.install()
}

func (s *Sinks) install() {
	if len(s.handlers) == 1 {
		slog.SetDefault(slog.New(s.handlers[0]))
		return
	}
	slog.SetDefault(slog.New(NewMultiHandler(s.handlers...)))
}

// Close releases the log file, if any.
func (s *Sinks) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
