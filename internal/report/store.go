package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/nao1215/trendwatch/internal/model"
)

// reportNamePattern matches valid report file names. It doubles as the
// sanitizer for caller-supplied names: anything else (including path
// separators or parent references) is rejected before touching the
// filesystem.
var reportNamePattern = regexp.MustCompile(`^trending-\d{4}-\d{2}-\d{2}\.md$`)

// Store persists rendered report documents in a single flat directory,
// one file per calendar date.
type Store struct {
	// dir is the report directory. Created on construction.
	dir string

	// logger records swallowed listing and pruning failures.
	logger *slog.Logger
}

// NewStore creates a Store rooted at dir, creating the directory if it
// does not exist.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the report directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the content under the date-derived file name, overwriting
// any existing document for the same date, and returns the file path.
// Write failures are fatal for this call and surfaced to the caller.
func (s *Store) Save(content string, date time.Time) (string, error) {
	path := filepath.Join(s.dir, FileNameFor(date))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // Reports are world-readable documents
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// List enumerates stored documents matching the report naming pattern,
// newest first (the name embeds a sortable date). Storage failures are
// logged and swallowed: an unreadable history must not stop the service,
// so the result is an empty slice rather than an error.
func (s *Store) List() []model.ReportInfo {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Error("failed to list reports", "dir", s.dir, "error", err)
		return []model.ReportInfo{}
	}

	reports := make([]model.ReportInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !reportNamePattern.MatchString(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			s.logger.Warn("failed to stat report", "file", entry.Name(), "error", err)
			continue
		}
		reports = append(reports, model.ReportInfo{
			FileName:   entry.Name(),
			FilePath:   filepath.Join(s.dir, entry.Name()),
			CreatedAt:  info.ModTime(),
			ModifiedAt: info.ModTime(),
			Size:       info.Size(),
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].FileName > reports[j].FileName
	})
	return reports
}

// Read returns the raw content of the named document. The file name is
// validated against the report naming pattern first, so traversal
// attempts fail with ErrInvalidReportName and never reach the filesystem.
// A missing document fails with ErrReportNotFound.
func (s *Store) Read(fileName string) (string, error) {
	if !reportNamePattern.MatchString(fileName) {
		return "", fmt.Errorf("%w: %q", ErrInvalidReportName, fileName)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, fileName)) //nolint:gosec // Name is validated against the report pattern above
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrReportNotFound, fileName)
		}
		return "", fmt.Errorf("failed to read report %s: %w", fileName, err)
	}
	return string(data), nil
}

// Prune deletes every document beyond the keep newest ones. Individual
// deletion failures are logged and skipped: pruning is best-effort
// cleanup, never a reason to fail a generation run.
func (s *Store) Prune(keep int) {
	if keep < 0 {
		keep = 0
	}
	reports := s.List()
	if len(reports) <= keep {
		return
	}

	for _, r := range reports[keep:] {
		if err := os.Remove(r.FilePath); err != nil {
			s.logger.Warn("failed to prune report", "file", r.FileName, "error", err)
			continue
		}
		s.logger.Info("pruned old report", "file", r.FileName)
	}
}
