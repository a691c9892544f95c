package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"docucortex-be/internal/config"
	"docucortex-be/pkg/events"
	pktNats "docucortex-be/pkg/nats"
)

// Tails the JetStream event bus and pretty-prints every event. Useful to
// watch CONVERSATION_RECORDED traffic while exercising the chat API.
func main() {
	cfg := config.Load()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		color.Red("NATS connection failed: %v", err)
		os.Exit(1)
	}
	defer sub.Close()

	handler := func(ctx context.Context, event events.Event) error {
		payload, _ := json.MarshalIndent(event.Payload(), "", "  ")
		color.Cyan("[%s] %s", event.Timestamp().Format("15:04:05"), event.EventType())
		color.White("%s", payload)
		return nil
	}

	if err := sub.Subscribe("events.>", "debug-events-tail", handler); err != nil {
		color.Red("Subscribe failed: %v", err)
		os.Exit(1)
	}

	color.Green("Listening on events.> (Ctrl-C to stop)")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
