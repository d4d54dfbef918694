package main

import (
	"log/slog"
	"os"

	"islandfeed/internal/transport/http"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	if err := http.Run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
