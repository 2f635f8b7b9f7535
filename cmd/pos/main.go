package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/padipos/apiclient"
	"github.com/ray-remotestate/padipos/catalog"
	"github.com/ray-remotestate/padipos/checkout"
	"github.com/ray-remotestate/padipos/config"
	"github.com/ray-remotestate/padipos/session"
	"github.com/ray-remotestate/padipos/storage"
	"github.com/ray-remotestate/padipos/users"
)

func main() {
	exportDir := flag.String("export-dir", ".", "directory CSV reports are written to")
	flag.Parse()

	cfg, err := config.LoadClient()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	if err := config.SetupLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.Fatalf("failed to set up logging: %v", err)
	}

	client, err := apiclient.New(apiclient.Config{BaseURL: cfg.APIURL, Timeout: cfg.HTTPTimeout})
	if err != nil {
		logrus.Fatalf("failed to create api client: %v", err)
	}
	store, err := storage.NewFile(filepath.Clean(cfg.StoragePath))
	if err != nil {
		logrus.Fatalf("failed to open storage: %v", err)
	}

	sessions := session.NewStore(client, store)
	cat := catalog.NewStore(client, sessions)
	sessions.Subscribe(func(ev session.Event) {
		if ev.Kind == session.Updated {
			return
		}
		if err := cat.HandleSession(context.Background(), ev.Session); err != nil {
			logrus.WithError(err).Warn("catalog did not load")
		}
	})

	r := &repl{
		in:        bufio.NewScanner(os.Stdin),
		out:       os.Stdout,
		client:    client,
		sessions:  sessions,
		catalog:   cat,
		checkout:  checkout.NewFlow(client, cat, sessions, cfg.TaxPercent),
		users:     users.NewService(client, sessions),
		exportDir: *exportDir,
	}

	if _, err := sessions.Restore(); err != nil {
		logrus.WithError(err).Error("failed to restore session")
	}
	r.run(context.Background())
}
