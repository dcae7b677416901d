/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the scheduling engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (development convenience) and parse flags
  2. Configure logging
  3. Initialize SQLite store and rule set
  4. Create API handler and router
  5. Start server with graceful shutdown

CONFIGURATION:
  Flags, each overridable by the matching environment variable:
  -port    / PORT        HTTP server port (default: 8080)
  -db      / DB_PATH     SQLite database path (default: schedule.db,
                         use ":memory:" for in-memory)
  -rules   / RULES_PATH  Rule-set JSON (default: compiled-in defaults)
  -log     / LOG_LEVEL   Log level (default: info)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  active requests, close the database, exit.

SEE ALSO:
  - api/server.go: Router configuration
  - rules/rules.go: Rule-set loading
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/warp/schedule-engine/api"
	"github.com/warp/schedule-engine/rules"
	"github.com/warp/schedule-engine/schedule"
	"github.com/warp/schedule-engine/store/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envStr("DB_PATH", "schedule.db"), "SQLite database path")
	rulesPath := flag.String("rules", envStr("RULES_PATH", ""), "rule-set JSON path")
	logLevel := flag.String("log", envStr("LOG_LEVEL", "info"), "log level")
	flag.Parse()

	log := logrus.New()
	if level, err := logrus.ParseLevel(*logLevel); err == nil {
		log.SetLevel(level)
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer store.Close()

	ruleSet, err := rules.Load(*rulesPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load rule set")
	}
	log.WithFields(logrus.Fields{
		"min_rest_minutes":   ruleSet.MinRestMinutes,
		"max_weekly_minutes": ruleSet.MaxWeeklyMinutes,
	}).Info("Rule set loaded")

	handler := api.NewHandler(store, schedule.New(ruleSet), log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Server starting on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}
	log.Info("Server stopped")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
