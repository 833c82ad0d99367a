package logger

import (
	"io"
	"log/slog"
	"os"
)

// Log is the application logger. It discards output until Init is called so
// packages can log safely from tests.
var Log = slog.New(slog.NewTextHandler(io.Discard, nil))

func Init() {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	Log = slog.New(handler)
}
