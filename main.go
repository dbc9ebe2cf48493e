package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/denisecase/rockfit/internal/tui"
)

// This is the standalone offline entry point.
// To report scores to a leaderboard server, use:
//   Server: go run ./cmd/server
//   Client: go run ./cmd/client --server ws://localhost:8080/ws --name YourName

func main() {
	name := "Player"
	if len(os.Args) > 1 {
		name = os.Args[1]
	}

	// nil client = offline mode (no score reporting)
	model := tui.NewModel(name, nil)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
