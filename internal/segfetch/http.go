package segfetch

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"vvstream/internal/model"
)

// HTTPBackend downloads segment files over HTTP into a local directory,
// built the same way BrunoKrugel-snapshot2stream's client wraps resty with
// timeouts and a shared transport.
type HTTPBackend struct {
	client  *resty.Client
	baseURL string
	destDir string
}

// NewHTTPBackend returns an HTTPBackend that fetches segments from baseURL
// and writes them under destDir.
func NewHTTPBackend(baseURL, destDir string) *HTTPBackend {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(50 * time.Millisecond).
		SetDisableWarn(true)

	return &HTTPBackend{client: client, baseURL: baseURL, destDir: destDir}
}

func (b *HTTPBackend) Download(objectID uint8, frameOffset uint64, qualityPerView [model.Views]int, multiview bool, throttleBPS float64) (model.FetchedSegment, error) {
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
		url := b.segmentURL(objectID, frameOffset, v, qualityPerView[v], multiview)
		resp, err := b.client.R().Get(url)
		if err != nil {
			return model.FetchedSegment{}, fmt.Errorf("fetching %s: %w", url, err)
		}
		if resp.IsError() {
			return model.FetchedSegment{}, fmt.Errorf("fetching %s: status %s", url, resp.Status())
		}

		path := filepath.Join(b.destDir, fmt.Sprintf("%d_%d_%d_%d.seg", objectID, frameOffset, v, qualityPerView[v]))
		if err := os.WriteFile(path, resp.Body(), 0644); err != nil {
			return model.FetchedSegment{}, fmt.Errorf("writing %s: %w", path, err)
		}
		result.Paths[v] = path
		totalBytes += int64(len(resp.Body()))
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

func (b *HTTPBackend) segmentURL(objectID uint8, frameOffset uint64, view, quality int, multiview bool) string {
	if multiview {
		return b.baseURL + "/" + strconv.Itoa(int(objectID)) + "/" + strconv.FormatUint(frameOffset, 10) + "/" + strconv.Itoa(view) + "/" + strconv.Itoa(quality) + ".seg"
	}
	return b.baseURL + "/" + strconv.Itoa(int(objectID)) + "/" + strconv.FormatUint(frameOffset, 10) + "/single/" + strconv.Itoa(quality) + ".seg"
}
