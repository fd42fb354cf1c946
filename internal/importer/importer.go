// Package importer bulk-loads CSV workout-log exports into a LiftLog server.
package importer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/claude/liftlog/internal/models"
)

// Sender delivers one log to the server. *Client is the production implementation.
type Sender interface {
	SendLog(ctx context.Context, in models.LogInput) error
}

// Stats tracks import progress.
type Stats struct {
	FilesTotal    int
	FilesImported int
	FilesSkipped  int
	FilesErrored  int

	LogsSent     int
	RowsRejected int
}

// Importer walks a file or directory of CSV exports and sends every valid row
// as a workout log.
type Importer struct {
	sender Sender
	state  *StateDB
	root   string
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates an Importer. sender may be nil in dry-run mode; state may be nil
// to disable skip tracking.
func New(sender Sender, state *StateDB, root string, dryRun bool, log *slog.Logger) *Importer {
	return &Importer{
		sender: sender,
		state:  state,
		root:   root,
		dryRun: dryRun,
		log:    log,
	}
}

// Run imports every CSV file under the root. A file that fails is counted and
// left unmarked so the next run retries it; Run only returns an error when the
// root cannot be read or ctx is cancelled.
func (imp *Importer) Run(ctx context.Context) (*Stats, error) {
	files, err := findCSV(imp.root)
	if err != nil {
		return &imp.stats, err
	}
	imp.stats.FilesTotal = len(files)
	imp.log.Info("found export files", "count", len(files), "root", imp.root)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return &imp.stats, err
		}
		if err := imp.importFile(ctx, path); err != nil {
			if ctx.Err() != nil {
				return &imp.stats, ctx.Err()
			}
			imp.stats.FilesErrored++
			imp.log.Warn("import failed", "file", path, "error", err)
		}
	}

	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, path string) error {
	st, err := StatFile(path)
	if err != nil {
		return err
	}

	if imp.state != nil {
		done, err := imp.state.IsImported(ctx, st)
		if err != nil {
			return err
		}
		if done {
			imp.stats.FilesSkipped++
			imp.log.Debug("skipping unchanged file", "file", path)
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	logs, rejected, err := ParseCSV(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}
	for _, re := range rejected {
		imp.log.Warn("skipping row", "file", path, "line", re.Line, "error", re.Err)
	}
	imp.stats.RowsRejected += len(rejected)

	if imp.dryRun {
		imp.stats.LogsSent += len(logs)
		imp.stats.FilesImported++
		imp.log.Info("parsed file (dry run)", "file", path, "logs", len(logs), "rejected", len(rejected))
		return nil
	}

	for i, in := range logs {
		if err := imp.sender.SendLog(ctx, in); err != nil {
			return fmt.Errorf("sending log %d of %d: %w", i+1, len(logs), err)
		}
		imp.stats.LogsSent++
	}

	if imp.state != nil {
		if err := imp.state.MarkImported(ctx, st, len(logs)); err != nil {
			return err
		}
	}
	imp.stats.FilesImported++
	imp.log.Info("imported file", "file", path, "logs", len(logs), "rejected", len(rejected))
	return nil
}

// findCSV returns root itself when it is a file, otherwise every *.csv file
// beneath it in lexical order. Paths are absolute so state keys are stable
// across working directories.
func findCSV(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{abs}, nil
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".csv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
