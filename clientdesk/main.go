package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"antunys/clientDesk/internal/views"
)

func main() {
	app, err := views.NewAppModel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
