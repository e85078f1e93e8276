package reporter

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// TerminalReporter prints colorized, human-friendly event lines to the
// terminal. Verbose events (Verbose, DecodeStarted, Prefetch, Miss,
// Service) are suppressed unless verbose mode is enabled.
type TerminalReporter struct {
	mu       sync.Mutex
	verbose  bool
	occupied *progressbar.ProgressBar
	cyan     *color.Color
	green    *color.Color
	yellow   *color.Color
	red      *color.Color
	dim      *color.Color
}

// NewTerminalReporter creates a terminal reporter with verbose mode disabled.
func NewTerminalReporter() *TerminalReporter {
	return NewTerminalReporterVerbose(false)
}

// NewTerminalReporterVerbose creates a terminal reporter with configurable
// verbose mode.
func NewTerminalReporterVerbose(verbose bool) *TerminalReporter {
	return &TerminalReporter{
		verbose: verbose,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		dim:     color.New(color.Faint),
	}
}

// occupancyBar lazily creates the buffer-occupancy bar sized to capacity,
// built the same way reel's TerminalReporter sizes its encoding-progress
// bar in EncodingStarted.
func (r *TerminalReporter) occupancyBar(capacity int) *progressbar.ProgressBar {
	if r.occupied == nil {
		r.occupied = progressbar.NewOptions(capacity,
			progressbar.OptionSetDescription(""),
			progressbar.OptionSetWidth(20),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionShowDescriptionAtLineEnd(),
			progressbar.OptionSetElapsedTime(false),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "buffer [",
				BarEnd:        "]",
			}),
		)
	}
	return r.occupied
}

func (r *TerminalReporter) Prefetch(e PrefetchEvent) {
	if !r.verbose {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Printf("  %s prefetch object %d offset %d (buffer %d)\n", r.dim.Sprint("›"), e.ObjectID, e.FrameOffset, e.BufferLen)
}

func (r *TerminalReporter) Seek(e SeekEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.yellow.Printf("seek: object %d -> offset %d (cleared %d buffered segments)\n", e.ObjectID, e.RequestedFrame, e.ClearedLen)
}

func (r *TerminalReporter) Miss(e MissEvent) {
	if !r.verbose {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Printf("  %s miss object %d offset %d\n", r.dim.Sprint("›"), e.ObjectID, e.FrameOffset)
}

func (r *TerminalReporter) Service(e ServiceEvent) {
	if !r.verbose {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Printf("  %s delivered object %d offset %d (%d remaining)\n", r.dim.Sprint("›"), e.ObjectID, e.FrameOffset, e.Remaining)
}

func (r *TerminalReporter) BufferFull(e BufferFullEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.occupancyBar(e.Capacity).Set(e.BufferLen)
	if !r.verbose {
		return
	}
	fmt.Printf("  %s buffer full object %d (%d/%d)\n", r.dim.Sprint("›"), e.ObjectID, e.BufferLen, e.Capacity)
}

func (r *TerminalReporter) FetchComplete(e FetchEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.green.Printf("fetched object %d offset %d", e.ObjectID, e.FrameOffset)
	fmt.Printf(" (%.0f Kbps, quality %v)\n", e.Throughput/1000, e.Quality)
}

func (r *TerminalReporter) DecodeStarted(e DecodeEvent) {
	if !r.verbose {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Printf("  %s decoding object %d offset %d\n", r.dim.Sprint("›"), e.ObjectID, e.FrameOffset)
}

func (r *TerminalReporter) Warning(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.red.Fprintf(os.Stderr, "ERROR: %s\n", err)
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Printf("  %s %s\n", r.dim.Sprint("›"), r.dim.Sprint(message))
}
