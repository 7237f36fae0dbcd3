// Command station is a terminal viewer for one kitchen screen. It keeps
// its order list in sync with the server through the realtime watcher:
// websocket change events when available, interval polling otherwise.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"comanda/internal/models"
	"comanda/internal/realtime"
	"comanda/internal/ticket"
	"comanda/internal/workflow"
)

var (
	baseURL  = flag.String("url", "", "API server base URL (defaults to $COMANDA_API_URL or http://localhost:8080)")
	role     = flag.String("role", "PLANCHA", "Station role: ADMIN, PLANCHA, FREIDORA or EMPAQUETADO")
	userID   = flag.Int("user", 1, "Asserted user id")
	interval = flag.Duration("interval", 5*time.Second, "Poll interval")
)

func main() {
	flag.Parse()

	url := *baseURL
	if url == "" {
		url = os.Getenv("COMANDA_API_URL")
	}
	if url == "" {
		url = "http://localhost:8080"
	}

	client := NewClient(url, *role, *userID)
	if !client.Ping() {
		log.Fatalf("API server at %s is not reachable", url)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		cancel()
	}()

	watcher := realtime.NewWatcher(realtime.WatcherConfig{
		Fetch:        client.FetchOrders,
		Subscribe:    client.Subscribe,
		PollInterval: *interval,
		OnUpdate:     render,
		OnStateChange: func(state realtime.State) {
			log.Printf("Sync transport: %s", state)
		},
		OnError: func(err error) {
			log.Printf("Sync error: %v", err)
		},
	})

	log.Printf("Watching %s orders at %s", *role, url)
	if err := watcher.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Watcher stopped: %v", err)
	}
}

func render(orders []models.Order) {
	fmt.Print(formatOrders(orders, time.Now()))
}

func formatOrders(orders []models.Order, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n== %d orders ==\n", len(orders))
	for _, order := range orders {
		// every visible item done: nothing left for this screen
		marker := ""
		if workflow.ItemsComplete(order.Items) {
			marker = " ✓"
		}
		fmt.Fprintf(&b, "#%03d %-12s %-20s %s%s\n",
			order.OrderNumber,
			ticket.OrderTypeLabel(order.Type),
			ticket.OrderStatusLabel(order.Status),
			ticket.FormatElapsed(order.CreatedAt, now),
			marker,
		)
		for _, item := range order.Items {
			fmt.Fprintf(&b, "    x%d %-28s [%s] %s\n",
				item.Qty, item.NameSnapshot, item.Station, ticket.ItemStatusLabel(item.Status))
		}
	}
	return b.String()
}
