package util

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"
)

// minCacheSpaceMB is the minimum free space recommended for cache
// operations, in megabytes. Falling below it only logs a warning; segment
// fetches are not blocked on it.
const minCacheSpaceMB = 100

// CacheDir represents a segment-fetcher cache directory with cleanup.
type CacheDir struct {
	path string
}

// Path returns the path to the cache directory.
func (c *CacheDir) Path() string { return c.path }

// Cleanup removes the cache directory and all its contents.
func (c *CacheDir) Cleanup() error {
	if c.path == "" {
		return nil
	}
	return os.RemoveAll(c.path)
}

// CreateCacheDir creates a uniquely-named cache directory under baseDir.
// The caller is responsible for calling Cleanup() when done.
func CreateCacheDir(baseDir, prefix string) (*CacheDir, error) {
	if err := ensureDirectoryWritable(baseDir); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	warnIfLowDiskSpace(baseDir)

	dirName := fmt.Sprintf("%s_%s", prefix, uuid.NewString())
	dirPath := filepath.Join(baseDir, dirName)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory in %s: %w", baseDir, err)
	}
	return &CacheDir{path: dirPath}, nil
}

// ensureDirectoryWritable checks that baseDir exists, is a directory, and
// accepts a test file.
func ensureDirectoryWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", path)
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	testPath := filepath.Join(path, ".vvstream_write_test")
	f, err := os.Create(testPath)
	if err != nil {
		return fmt.Errorf("directory is not writable: %s", path)
	}
	_ = f.Close()
	_ = os.Remove(testPath)
	return nil
}

// warnIfLowDiskSpace logs to stderr when baseDir's filesystem has less than
// minCacheSpaceMB free. Availability that can't be determined is treated as
// sufficient rather than blocking cache creation.
func warnIfLowDiskSpace(path string) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return
	}
	availableMB := stat.Bavail * uint64(stat.Bsize) / (1024 * 1024)
	if availableMB < minCacheSpaceMB {
		fmt.Fprintf(os.Stderr, "warning: low disk space in %s: %d MB available (minimum recommended: %d MB)\n",
			path, availableMB, minCacheSpaceMB)
	}
}
