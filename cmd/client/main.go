package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"minflow/internal/client/cli"

	"github.com/joho/godotenv"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".minflow-session.json"
	}
	return filepath.Join(home, ".minflow", "session.json")
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded settings from .env")
	}

	serverURL := flag.String("server", getEnv("MINFLOW_SERVER_URL", "http://localhost:4000/api"), "expense tracker API base URL")
	stateFile := flag.String("state", getEnv("MINFLOW_STATE_FILE", defaultStateFile()), "session state file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	app := cli.NewApp(&cli.Config{
		ServerURL: *serverURL,
		StateFile: *stateFile,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.Run(ctx)
}
