package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"emergency-hub/client"
	"emergency-hub/domain"
	"emergency-hub/projection"
)

// Exit codes for the admin viewer.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the viewer-side environment variables.
type Config struct {
	ServerURL       string        `env:"HUB_SERVER_URL,default=http://localhost:5000"`
	StreamURL       string        `env:"HUB_STREAM_URL,default=ws://localhost:5000/ws"`
	Room            string        `env:"HUB_ROOM,default=admins"`
	SnapshotLimit   int           `env:"SNAPSHOT_LIMIT,default=50"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL,default=3s"`
	LogLevel        string        `env:"LOG_LEVEL,default=WARN"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Admin viewer error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timeline := projection.NewTimeline()
	c := client.New(config.ServerURL, config.StreamURL, config.Room,
		config.SnapshotLimit, timeline, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- c.Run(ctx)
	}()

	ticker := time.NewTicker(config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nBye.")
			return exitOK, nil
		case err := <-errChan:
			if err != nil && ctx.Err() == nil {
				return exitRuntime, err
			}
			return exitOK, nil
		case <-ticker.C:
			render(timeline)
		}
	}
}

func render(timeline *projection.Timeline) {
	// Clear screen between refreshes
	fmt.Print("\033[2J\033[H")
	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(" EMERGENCY HUB | LIVE TIMELINE"))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Time", "Kind", "Who", "What", "Status"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, entry := range timeline.Entries() {
		table.Append(toRow(entry))
	}
	table.Render()
}

func toRow(entry projection.Entry) []string {
	at := entry.At.Local().Format("15:04:05")
	switch {
	case entry.Alert != nil:
		return []string{
			at, string(entry.Kind),
			entry.Alert.User.Name,
			entry.Alert.Message,
			colorizeStatus(entry.Alert.Status),
		}
	case entry.Activity != nil:
		return []string{
			at, string(entry.Kind),
			entry.Activity.User.Name,
			"selected " + string(entry.Activity.Category),
			"",
		}
	case entry.Contact != nil:
		return []string{
			at, string(entry.Kind),
			entry.Contact.Name,
			entry.Contact.Phone,
			"",
		}
	}
	return []string{at, string(entry.Kind), "", "", ""}
}

func colorizeStatus(status domain.Status) string {
	switch status {
	case domain.StatusActive:
		return color.Red.Render(string(status))
	case domain.StatusAcknowledged:
		return color.Yellow.Render(string(status))
	case domain.StatusResolved:
		return color.Green.Render(string(status))
	}
	return string(status)
}
