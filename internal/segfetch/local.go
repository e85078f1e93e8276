package segfetch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vvstream/internal/manifest"
	"vvstream/internal/model"
	"vvstream/internal/util"
)

// LocalBackend reads segment files from a LocalProvider's directory tree,
// optionally caching a copy under a scratch directory when
// enable_fetcher_optimizations is set (skip the copy if the cache already
// has the segment).
type LocalBackend struct {
	provider      *manifest.LocalProvider
	cache         *util.CacheDir
	optimizations bool
}

// NewLocalBackend returns a LocalBackend reading from provider. When
// enableOptimizations is true, segments are mirrored into a cache directory
// under cacheBaseDir and re-fetches of an already-cached segment are
// skipped.
func NewLocalBackend(provider *manifest.LocalProvider, enableOptimizations bool, cacheBaseDir string) (*LocalBackend, error) {
	b := &LocalBackend{provider: provider, optimizations: enableOptimizations}
	if enableOptimizations {
		cache, err := util.CreateCacheDir(cacheBaseDir, "vvstream-segcache")
		if err != nil {
			return nil, err
		}
		b.cache = cache
	}
	return b, nil
}

// Close releases the backend's cache directory, if any.
func (b *LocalBackend) Close() error {
	if b.cache == nil {
		return nil
	}
	return b.cache.Cleanup()
}

func (b *LocalBackend) Download(objectID uint8, frameOffset uint64, qualityPerView [model.Views]int, multiview bool, throttleBPS float64) (model.FetchedSegment, error) {
	views := 1
	if multiview {
		views = model.Views
	}

	start := time.Now()
	var result model.FetchedSegment
	var totalBytes int64

	for v := 0; v < views; v++ {
		if qualityPerView[v] < 0 {
			continue
		}
		view := -1
		if multiview {
			view = v
		}
		srcPath := b.provider.SegmentPath(objectID, frameOffset, view, qualityPerView[v])

		path := srcPath
		if b.optimizations {
			cachedPath := filepath.Join(b.cache.Path(), fmt.Sprintf("%d_%d_%d_%d.seg", objectID, frameOffset, v, qualityPerView[v]))
			if _, err := os.Stat(cachedPath); err != nil {
				data, err := os.ReadFile(srcPath)
				if err != nil {
					return model.FetchedSegment{}, fmt.Errorf("reading segment %s: %w", srcPath, err)
				}
				if err := os.WriteFile(cachedPath, data, 0644); err != nil {
					return model.FetchedSegment{}, fmt.Errorf("caching segment %s: %w", cachedPath, err)
				}
			}
			path = cachedPath
		}

		info, err := os.Stat(path)
		if err != nil {
			return model.FetchedSegment{}, fmt.Errorf("stat segment %s: %w", path, err)
		}
		totalBytes += info.Size()
		result.Paths[v] = path
	}

	elapsed := time.Since(start)
	if throttleBPS > 0 {
		wantElapsed := time.Duration(float64(totalBytes) * 8 / throttleBPS * float64(time.Second))
		if wantElapsed > elapsed {
			time.Sleep(wantElapsed - elapsed)
		}
		elapsed = wantElapsed
	}
	if elapsed > 0 {
		result.Throughput = float64(totalBytes) * 8 / elapsed.Seconds()
	}
	return result, nil
}
