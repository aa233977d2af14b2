package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/CrestNiraj12/socialfeed/devserver"
)

func main() {
	var (
		httpAddr string
		logLevel string
		secret   string
		seed     int
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	flag.StringVar(&httpAddr, "http", ":8080", "HTTP server address in the form 'host:port'.")
	flag.StringVar(&logLevel, "log", "info", "Log level: debug, info, warn, error.")
	flag.StringVar(&secret, "secret", os.Getenv("SOCIALFEED_DEV_SECRET"), "HMAC secret used to sign bearer tokens.")
	flag.IntVar(&seed, "seed", 25, "Number of demo posts to create at startup (0 disables seeding).")
	flag.Parse()

	if !strings.Contains(httpAddr, ":") {
		log.Warn("use ':' before port number, e.g. ':8080'")
	}

	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		log.Warnf("unknown log level %q, using info", logLevel)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	if secret == "" {
		secret = "socialfeed-dev-secret"
		log.Warn("no -secret given, using the built-in development secret")
	}

	api := devserver.New(devserver.NewStore(), []byte(secret))
	if seed > 0 {
		if err := api.Seed(context.Background(), seed); err != nil {
			log.Fatalf("seeding store: %v", err)
		}
		log.Infof("seeded %d posts, log in as %s / %s", seed, devserver.DemoEmail, devserver.DemoPassword)
	}

	server := &http.Server{
		Addr:              httpAddr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("listening on %s (API under /api)", httpAddr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
		log.Info("Stopped serving new connections")
	}()

	<-sigChan

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("HTTP shutdown error: %v", err)
	}
	log.Info("Server stopped")
}
