package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/claude/liftlog/internal/importer"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "LiftLog server URL (e.g. https://liftlog.tail1234.ts.net)")
	path := flag.String("path", "", "CSV export file, or a directory searched for *.csv")
	token := flag.String("token", os.Getenv("LIFTLOG_TOKEN"), "bearer token (default $LIFTLOG_TOKEN; not needed on a tailnet)")
	stateDir := flag.String("state-dir", "", "where to remember imported files (default ~/.liftlog-import)")
	dryRun := flag.Bool("dry-run", false, "parse and validate but don't send to server")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftlog-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *path == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-import -server <URL> -path <file or dir> [-token T] [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *serverURL == "" && !*dryRun {
		fmt.Fprintf(os.Stderr, "Error: -server is required (or use -dry-run)\n")
		os.Exit(1)
	}

	if *stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		*stateDir = filepath.Join(homeDir, ".liftlog-import")
	}

	state, err := importer.OpenStateDB(*stateDir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	var sender importer.Sender
	if *dryRun {
		log.Info("DRY RUN mode: files will be parsed and validated but not sent")
	} else {
		sender = importer.NewClient(*serverURL, *token)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := importer.New(sender, state, *path, *dryRun, log).Run(ctx)
	printStats(stats)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}
	if stats.FilesErrored > 0 {
		log.Warn("import finished with errors; rerun to retry failed files")
		os.Exit(2)
	}
	log.Info("import complete")
}

func printStats(stats *importer.Stats) {
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("  Files total:      %d\n", stats.FilesTotal)
	fmt.Printf("  Files imported:   %d\n", stats.FilesImported)
	fmt.Printf("  Files skipped:    %d (already imported)\n", stats.FilesSkipped)
	fmt.Printf("  Files errored:    %d\n", stats.FilesErrored)
	fmt.Println()
	fmt.Printf("  Logs sent:        %d\n", stats.LogsSent)
	fmt.Printf("  Rows rejected:    %d\n", stats.RowsRejected)
	fmt.Println()
}
