package catalog

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"multilaunch/internal/models"

	"golang.org/x/sync/errgroup"
)

// Scanner finds installed applications in XDG application directories
type Scanner struct {
	dirs   []string
	logger *slog.Logger
}

// NewScanner creates a scanner over dirs, given in precedence order.
// A nil dirs scans DataDirs().
func NewScanner(dirs []string, logger *slog.Logger) *Scanner {
	if dirs == nil {
		dirs = DataDirs()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{dirs: dirs, logger: logger}
}

// Dirs returns the directories the scanner reads
func (s *Scanner) Dirs() []string {
	return append([]string(nil), s.dirs...)
}

// Scan reads every directory concurrently and merges the results. When the
// same desktop id appears in several directories the first directory wins,
// including when that entry is hidden.
func (s *Scanner) Scan(ctx context.Context) ([]*models.App, error) {
	start := time.Now()

	results := make([][]desktopEntry, len(s.dirs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.NumCPU()*2, 16)) // IO-bound
	for i, dir := range s.dirs {
		g.Go(func() error {
			entries, err := s.scanDir(ctx, dir)
			results[i] = entries
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var apps []*models.App
	for _, entries := range results {
		for _, e := range entries {
			if seen[e.app.AppID] {
				continue
			}
			seen[e.app.AppID] = true
			if !e.visible() {
				continue
			}
			app := e.app
			apps = append(apps, &app)
		}
	}

	sort.SliceStable(apps, func(i, j int) bool {
		a, b := strings.ToLower(apps[i].DisplayName), strings.ToLower(apps[j].DisplayName)
		if a != b {
			return a < b
		}
		return apps[i].AppID < apps[j].AppID
	})

	s.logger.Debug("scanned applications", "dirs", len(s.dirs), "apps", len(apps), "took", time.Since(start))
	return apps, nil
}

// scanDir parses every .desktop file below dir. A missing directory is
// skipped; only context cancellation is returned as an error.
func (s *Scanner) scanDir(ctx context.Context, dir string) ([]desktopEntry, error) {
	var entries []desktopEntry

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == dir && os.IsNotExist(err) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(path, ".desktop") {
			return nil
		}

		entry, err := parseDesktopFile(path)
		if err != nil {
			s.logger.Debug("skipping unreadable desktop file", "path", path, "error", err)
			return nil
		}
		entry.app.AppID = desktopID(dir, path)
		entries = append(entries, entry)
		return nil
	})
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return entries, nil
}
