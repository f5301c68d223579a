package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/cvn1-standard/cvn1-sdk-go/internal/config"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/cvn1"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/demo"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/shared"
)

func main() {
	configFile := flag.String("config", os.Getenv("CVN1_CONFIG"), "optional config file (json, yaml or toml)")
	flag.Parse()

	shared.LoadDotEnv(".env")

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("invalid config: %s", err)
	}

	level, _ := cfg.Level()
	log.SetLevel(level)

	server, err := newServer(cfg)
	if err != nil {
		log.Fatalf("failed to create server: %s", err)
	}

	log.Infof("cvn1 demo config: %s", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, os.Interrupt)
	defer stop()

	log.Infof("cvn1 demo listens on: %s", cfg.ListenAddress)
	if err := server.ListenAndServe(ctx, cfg.ListenAddress); err != nil {
		log.Fatalf("server stopped: %s", err)
	}
	log.Info("shutting down demo server...")
}

func newServer(cfg *config.Config) (*demo.Server, error) {
	client, err := cvn1.NewClient(cvn1.ClientConfig{
		Network:         cfg.Network,
		NodeURL:         cfg.NodeURL,
		IndexerURL:      cfg.IndexerURL,
		APIKey:          cfg.APIKey,
		ContractAddress: cfg.ContractAddress,
		ReadRetries:     cfg.ReadRetries,
		ViewModule:      cfg.ViewModule,
	})
	if err != nil {
		return nil, err
	}

	return demo.NewServer(demo.Config{
		Reader:          client,
		ContractAddress: client.ContractAddress(),
		Logger:          log.WithField("component", "demo"),
	})
}
