// cmd/demo/main.go

// The demo runs the fixed three-step scenario: create Bobby and Carol, make
// two payments, render Bobby's feed and add Carol as a friend.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"minivenmo/internal/cardnetwork"
	"minivenmo/internal/feed"
	"minivenmo/internal/repository/sqlite"
	"minivenmo/internal/service"
	"minivenmo/pkg/db"
	"minivenmo/pkg/logging"
)

func main() {
	logging.Setup()
	ctx := context.Background()

	database, err := db.NewSQLiteDB(db.Config{DSN: ":memory:"})
	if err != nil {
		slog.Error("Failed to open archive database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	archive, err := sqlite.NewPaymentArchive(database)
	if err != nil {
		slog.Error("Failed to initialize payment archive", "error", err)
		os.Exit(1)
	}

	ledger := service.NewLedgerService(
		slog.Default(),
		cardnetwork.NewGateway(),
		database,
		database,
		archive,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)

	if _, err := ledger.CreateUser(ctx, "Bobby", decimal.NewFromFloat(5.00), "4111111111111111"); err != nil {
		slog.Error("Failed to create user", "username", "Bobby", "error", err)
		os.Exit(1)
	}
	if _, err := ledger.CreateUser(ctx, "Carol", decimal.NewFromFloat(10.00), "4242424242424242"); err != nil {
		slog.Error("Failed to create user", "username", "Carol", "error", err)
		os.Exit(1)
	}

	// A rejected payment is reported and the run continues.
	if _, err := ledger.Pay(ctx, "Bobby", "Carol", decimal.NewFromFloat(5.00), "Coffee"); err != nil {
		fmt.Println(err)
	}
	if _, err := ledger.Pay(ctx, "Carol", "Bobby", decimal.NewFromFloat(15.00), "Lunch"); err != nil {
		fmt.Println(err)
	}

	entries, err := ledger.RetrieveFeed(ctx, "Bobby")
	if err != nil {
		slog.Error("Failed to retrieve feed", "username", "Bobby", "error", err)
		os.Exit(1)
	}
	feed.Render(os.Stdout, entries)

	if err := ledger.AddFriend(ctx, "Bobby", "Carol"); err != nil {
		slog.Error("Failed to add friend", "error", err)
		os.Exit(1)
	}
}
