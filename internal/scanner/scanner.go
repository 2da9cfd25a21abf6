package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cowjuh/fs-utilities/pkg/logger"
	"github.com/cowjuh/fs-utilities/pkg/models"
)

// ErrNoInput is returned when a folder contains no files with a supported
// extension. Callers abort before producing any output artifact.
var ErrNoInput = errors.New("no supported media files found")

type DirectoryScanner struct {
	logger *logger.Logger
}

func New(logger *logger.Logger) *DirectoryScanner {
	return &DirectoryScanner{
		logger: logger,
	}
}

// ListMedia returns the supported media files directly inside dir, in
// sorted name order. The listing is not recursive; that matches how the
// batch tools treat a folder as one flat job.
func (s *DirectoryScanner) ListMedia(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if entry.IsDir() {
			continue
		}

		if models.FormatForPath(entry.Name()) == models.FormatUnknown {
			s.logger.Debug("Ignoring %s: unsupported extension", entry.Name())
			continue
		}

		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInput, dir)
	}

	s.logger.Debug("Found %d media files in %s", len(paths), dir)
	return paths, nil
}
