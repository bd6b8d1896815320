package logger

import (
	"Trellis/internal/api/config"
	"io"
	log "log/slog"
	"os"
)

var LogWriter io.Writer

func InitLogger() {
	cfg := config.Cfg.Log

	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})

	var finalHandler log.Handler = hStdout
	LogWriter = os.Stdout

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			hFile := log.NewJSONHandler(f, &log.HandlerOptions{Level: log.LevelInfo})

			// 文件里只留带 trace_id 的记录，方便按请求检索
			filterFile := &TraceOnlyHandler{next: hFile}

			finalHandler = &TeeHandler{
				handlers: []log.Handler{hStdout, filterFile},
			}

			LogWriter = f
		} else {
			log.Warn("Failed to open log file, logging to stdout only", "err", err)
		}
	}

	logger := log.New(&ContextHandler{finalHandler})
	log.SetDefault(logger)
}
