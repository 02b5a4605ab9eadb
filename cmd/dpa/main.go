// Package main is the entry point for the device power analyzer TUI.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/FinnWang/device-power-analyzer/internal/app"
	"github.com/FinnWang/device-power-analyzer/internal/config"
	"github.com/FinnWang/device-power-analyzer/internal/logger"
	"github.com/FinnWang/device-power-analyzer/internal/services"
	"github.com/FinnWang/device-power-analyzer/internal/ui/tabs/analyze"
	"github.com/FinnWang/device-power-analyzer/internal/ui/tabs/compare"
	"github.com/FinnWang/device-power-analyzer/internal/ui/tabs/info"
	"github.com/FinnWang/device-power-analyzer/internal/ui/tabs/results"
	"github.com/FinnWang/device-power-analyzer/internal/version"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Route logging to a file; the TUI owns the terminal
	cleanup, err := logger.SetupFile(filepath.Join(cfg.DataDir, "dpa.log"))
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer cleanup()

	// 3. Initialize the service manager
	// This opens the result archive and starts the capture watcher
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Ensure cleanup on exit
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	// 4. Restore previously committed results from the archive
	if restored, err := svcManager.RestoreArchive(); err != nil {
		logger.Warn("archive restore failed", "error", err)
	} else if restored > 0 {
		logger.Info("restored results from archive", "count", restored)
	}

	// 5. Create the root Bubble Tea model
	model := app.NewModel(svcManager)

	// 6. Initialize tabs with shared state and services
	// Each tab receives the shared application state for consistent data access
	state := model.GetState()
	tabs := []app.Tab{
		analyze.New(state, svcManager),       // Tab 0: Analyze - range selection and preview
		results.New(state, svcManager, cfg),  // Tab 1: Results - committed ranges and export
		compare.New(state, svcManager),       // Tab 2: Compare - cross-result statistics
		info.New(state, cfg),                 // Tab 3: Info - configuration and app info
	}
	model.SetTabs(tabs)

	// 7. Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 8. Create and configure the Bubble Tea program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer (full terminal)
		tea.WithMouseCellMotion(), // Enable mouse support for selection
	)

	// 9. Handle signals in a separate goroutine
	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	// 10. Run the TUI program
	// This blocks until the user quits or an error occurs
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Device Power Analyzer - Interactive power measurement analysis

Usage:
  dpa [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch between tabs (Analyze, Results, Compare, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  [ ] { }         Move the selected time range
  a               Select the full capture span
  p               Preview statistics for the range
  c               Commit the range as a result
  space           Mark a result for comparison
  d               Delete the selected result
  e / E / m       Export results (JSON / CSV / Markdown)
  r               Refresh data
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  DPA_DATA_DIR              Directory watched for capture CSVs
  DPA_DATABASE_PATH         SQLite result archive path
  DPA_BATTERY_CAPACITY_MAH  Battery capacity for life projections
  DPA_BATTERY_VOLTAGE       Battery nominal voltage
  DPA_CHART_THEME           Chart theme recorded on committed results
  DPA_NOTIFY_THRESHOLD      Battery life notification threshold (default: 24h)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/device-power-analyzer/.env

For more information, visit: https://github.com/FinnWang/device-power-analyzer`)
}
