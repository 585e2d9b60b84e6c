package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"qsearch/internal/eventbus"
	"qsearch/internal/ui"
)

func runTUI(cmd *cobra.Command, opts *options, args []string) error {
	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	exec := ui.NewProgramExecutor()
	ctrl, err := a.newController(exec)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	model := ui.NewModel(ui.Options{
		Controller:   ctrl,
		Executor:     exec,
		Bus:          a.bus,
		WindowSize:   a.cfg.Search.WindowSize,
		InitialQuery: strings.Join(args, " "),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	go exec.Forward(ctx, p)

	// Errors from any component end up in the status line
	unsubscribe := a.bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	})
	defer unsubscribe()

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("running program: %w", err)
	}
	log.Printf("UI exited normally")

	return nil
}
