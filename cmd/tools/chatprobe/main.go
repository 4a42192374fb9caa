// chatprobe exercises a running gateway from the command line: it drives the
// same client library the storefront embeds, prints deltas as they arrive,
// and lists the product cards and actions each reply carries.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/issac8080/aurashop/pkg/assistant"
)

type printEffects struct{}

func (printEffects) Navigate(path string) error {
	fmt.Printf("\n[navigate] %s\n", path)
	return nil
}

func main() {
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "loaded .env")
	}

	base := flag.String("base", "http://localhost:8080", "gateway base URL")
	session := flag.String("session", "", "session id (random when empty)")
	message := flag.String("message", "", "send one message and exit; empty starts a REPL")
	timeout := flag.Duration("timeout", 60*time.Second, "per-message timeout")
	verbose := flag.Bool("v", false, "log client internals")
	flag.Parse()

	sessionID := *session
	if sessionID == "" {
		sessionID = "probe-" + uuid.NewString()[:8]
	}

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	client := assistant.New(assistant.Config{
		Endpoint:  strings.TrimRight(*base, "/") + "/api/chat/stream",
		SessionID: sessionID,
		Logger:    logger,
		OnProduct: func(p assistant.ProductSummary) {
			fmt.Printf("\n[card] %s  %s  ₹%.0f  rated %.1f\n", p.ID, p.Name, p.Price, p.Rating)
		},
	}, printEffects{}, assistant.NewHTTPProductFetcher(strings.TrimRight(*base, "/")+"/api", http.DefaultClient), onUpdate)

	fmt.Printf("session %s against %s\n", sessionID, *base)

	if *message != "" {
		send(client, *message, *timeout)
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "exit" || line == "quit" {
			return
		}
		send(client, line, *timeout)
	}
}

// onUpdate prints streaming assistant turns as they grow. Deltas arrive as
// repeated snapshots of the same turn; printing content incrementally would
// need diffing, so only final snapshots print here and live text comes from
// the growing snapshot length.
var lastPrinted = map[int]int{}

func onUpdate(index int, turn assistant.Turn) {
	if turn.Role != assistant.RoleAssistant {
		return
	}
	if printed := lastPrinted[index]; len(turn.Content) > printed {
		fmt.Print(turn.Content[printed:])
		lastPrinted[index] = len(turn.Content)
	}
	if !turn.Streaming {
		for _, a := range turn.Actions {
			fmt.Printf("\n[action] %s %q payload=%q", a.Type, a.Label, a.Payload)
		}
		fmt.Println()
	}
}

func send(client *assistant.Client, message string, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Submit(ctx, message); err != nil {
		if errors.Is(err, assistant.ErrStreamInFlight) {
			fmt.Fprintln(os.Stderr, "previous message still streaming")
			return
		}
		fmt.Fprintf(os.Stderr, "submit failed: %v\n", err)
	}
}
