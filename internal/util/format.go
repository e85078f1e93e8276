package util

import "github.com/dustin/go-humanize"

// FormatBytes renders a byte count in human-readable form, e.g. "2.1 GB".
func FormatBytes(n uint64) string {
	return humanize.Bytes(n)
}

// FormatCount renders an integer with thousands separators, e.g. "1,234".
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// FormatBitsPerSecond renders a throughput value in human-readable bits per
// second, e.g. "3.2 Mbps".
func FormatBitsPerSecond(bps float64) string {
	return humanize.SI(bps, "bps")
}
