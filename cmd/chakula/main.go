package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"chakula/internal/client"
	"chakula/internal/session"
	"chakula/internal/shell"
	"chakula/internal/tui"
)

var (
	apiURL  = flag.String("api", "", "API base URL (default CHAKULA_API_URL or localhost)")
	offline = flag.Bool("offline-cache", true, "Cache static responses for offline use")
)

func main() {
	flag.Parse()

	api := client.New(*apiURL)
	if *offline {
		if transport, err := shell.New(nil, ""); err == nil {
			if err := transport.Activate(); err == nil {
				api.UseTransport(transport)
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if !api.Ping(ctx) {
		fmt.Fprintf(os.Stderr, "Warning: API at %s is not reachable\n", api.BaseURL)
	}

	sess := session.New(api, "")
	sess.Restore(ctx)

	p := tea.NewProgram(tui.NewModel(api, sess), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
