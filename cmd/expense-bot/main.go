package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/abinig29/expense-bot/pkg/app"
	"github.com/abinig29/expense-bot/pkg/db"
	"github.com/abinig29/expense-bot/pkg/telegram"

	"github.com/go-pg/pg/v10"
	"github.com/joho/godotenv"
	"github.com/vmkteam/embedlog"
)

const appName = "expense-bot"

var (
	flagVerbose  = flag.Bool("verbose", false, "enable debug output")
	flagJSONLogs = flag.Bool("json", false, "enable json output")
	flagDevel    = flag.Bool("dev", false, "enable development mode")
)

func main() {
	flag.Parse()

	// .env is optional, env vars win
	_ = godotenv.Load()

	sl := embedlog.NewLogger(*flagJSONLogs, *flagVerbose)
	ctx := context.Background()

	cfg, err := configFromEnv()
	if err != nil {
		exitOnError(sl, ctx, err)
	}
	cfg.Server.IsDevel = *flagDevel

	dbc, err := connectDB(ctx, sl, cfg.Database)
	if err != nil {
		exitOnError(sl, ctx, err)
	}

	a, err := app.New(ctx, appName, sl, cfg, dbc)
	if err != nil {
		exitOnError(sl, ctx, err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		sl.Print(ctx, "shutting down", "app", appName)
		if err := a.Shutdown(15 * time.Second); err != nil {
			sl.Error(ctx, "shutdown failed", "err", err)
		}
	}()

	sl.Print(ctx, "starting", "app", appName, "devel", *flagDevel)
	if err := a.Run(ctx); err != nil && err != http.ErrServerClosed {
		exitOnError(sl, ctx, err)
	}
}

func connectDB(ctx context.Context, sl embedlog.Logger, opts *pg.Options) (db.DB, error) {
	pgdb := pg.Connect(opts)
	dbc := db.New(pgdb)

	if err := dbc.Ping(ctx); err != nil {
		return dbc, fmt.Errorf("db connection failed: %w", err)
	}

	v, err := dbc.Version(ctx)
	if err != nil {
		return dbc, fmt.Errorf("db version failed: %w", err)
	}
	sl.Print(ctx, "connected to db", "version", v)

	if err := dbc.CreateTables(ctx); err != nil {
		return dbc, fmt.Errorf("schema init failed: %w", err)
	}

	return dbc, nil
}

func configFromEnv() (app.Config, error) {
	var cfg app.Config

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	opts, err := pg.ParseURL(dbURL)
	if err != nil {
		return cfg, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	cfg.Database = opts

	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	cfg.Telegram = telegram.Config{
		Token:             token,
		Debug:             envBool("TELEGRAM_DEBUG", false),
		SendConfirmations: envBool("SEND_CONFIRMATIONS", true),
		AllowedChatIDs:    envInt64List("ALLOWED_CHAT_IDS"),
		AllowedTopicIDs:   envInt64List("ALLOWED_TOPIC_IDS"),
		GeminiKey:         os.Getenv("GEMINI_API_KEY"),
	}

	cfg.Server.Host = envString("SERVER_HOST", "0.0.0.0")
	cfg.Server.Port = envInt("SERVER_PORT", 8080)
	cfg.Prometheus.URL = os.Getenv("PROMETHEUS_URL")

	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt64List(key string) []int64 {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	var ids []int64
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids
}

func exitOnError(sl embedlog.Logger, ctx context.Context, err error) {
	sl.Error(ctx, "fatal", "err", err)
	os.Exit(1)
}
