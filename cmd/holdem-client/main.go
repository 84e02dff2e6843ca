package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/client"
	"github.com/lox/holdem-table/internal/tui"
)

var CLI struct {
	Server   string `short:"s" long:"server" default:"ws://localhost:8080/ws" help:"Server URL to connect to"`
	Name     string `short:"n" long:"name" help:"Display name to join with"`
	LogFile  string `long:"log-file" default:"holdem-client.log" help:"Log file path"`
	LogLevel string `short:"l" long:"log-level" default:"info" help:"Log level"`
}

func main() {
	ctx := kong.Parse(&CLI)

	name := CLI.Name
	if name == "" {
		fmt.Print("Enter your name: ")
		var input string
		_, _ = fmt.Scanln(&input)
		name = strings.TrimSpace(input)
	}
	if name == "" {
		fmt.Println("A name is required")
		ctx.Exit(1)
	}

	// Log to a file; stdout belongs to the TUI.
	logFile, err := os.OpenFile(CLI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		fmt.Printf("Failed to open log file: %v\n", err)
		ctx.Exit(1)
	}
	defer func() { _ = logFile.Close() }()

	logger := log.New(logFile)
	switch CLI.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	c := client.New(CLI.Server, logger)
	if err := c.Connect(); err != nil {
		fmt.Printf("Failed to connect: %v\n", err)
		ctx.Exit(1)
	}
	defer func() { _ = c.Close() }()

	if err := c.Join(name); err != nil {
		fmt.Printf("Failed to join: %v\n", err)
		ctx.Exit(1)
	}

	program := tea.NewProgram(tui.NewModel(c, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Printf("TUI exited with error: %v\n", err)
		ctx.Exit(1)
	}
}
