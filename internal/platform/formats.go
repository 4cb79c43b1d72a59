package platform

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"

	"github.com/tubefetch/tube-downloader/internal/model"
)

// Timeout for the format-listing invocation
const DefaultListTimeout = 60 * time.Second

// Format table line patterns. The engine prints one format per line: a
// numeric format code, a container token, then either a WIDTHxHEIGHT
// resolution or the literal "audio only" marker. Header and separator lines
// match neither and are skipped.
var (
	videoLineRE = regexp.MustCompile(`^(\d+)\s+\w+\s+(\d+)x(\d+)`)
	audioLineRE = regexp.MustCompile(`^(\d+)\s+\w+.*\baudio only`)
)

// FormatLister retrieves the raw format listing for a URL from the engine.
type FormatLister struct {
	timeout time.Duration
}

// NewFormatLister creates a format lister with the default timeout.
func NewFormatLister() *FormatLister {
	return &FormatLister{timeout: DefaultListTimeout}
}

// SetTimeout sets the timeout for listing operations.
func (fl *FormatLister) SetTimeout(timeout time.Duration) {
	fl.timeout = timeout
}

// ListFormats runs the engine in format-listing mode for the URL and returns
// its raw stdout. When lazyPlaylist is set the flag is forwarded verbatim to
// the engine. Engine failure surfaces as an error carrying the engine's
// diagnostic output; partial output is never returned for parsing.
func (fl *FormatLister) ListFormats(ctx context.Context, url string, lazyPlaylist bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fl.timeout)
	defer cancel()

	dl := ytdlp.New().ListFormats()
	if lazyPlaylist {
		dl = dl.LazyPlaylist()
	}

	logrus.Debugf("listing formats for %s (lazy playlist: %v)", url, lazyPlaylist)

	result, err := dl.Run(ctx, url)
	if err != nil {
		diagnostic := err.Error()
		if result != nil && strings.TrimSpace(result.Stderr) != "" {
			diagnostic = result.Stderr
		}
		return "", fmt.Errorf("catalog retrieval failed: %s", diagnostic)
	}

	return result.Stdout, nil
}

// ParseFormats converts the engine's plain-text format listing into a
// catalog. Video lines are classified by resolution height; for audio-only
// lines the last match wins so at most one audio entry survives. The video
// list comes back sorted by descending quality rank, discovery order
// breaking ties.
func ParseFormats(output string) *model.FormatCatalog {
	catalog := &model.FormatCatalog{}

	for _, line := range strings.Split(output, "\n") {
		if m := videoLineRE.FindStringSubmatch(line); m != nil {
			height, err := strconv.Atoi(m[3])
			if err != nil {
				continue
			}
			label, rank := model.ClassifyHeight(height)
			catalog.Video = append(catalog.Video, model.FormatEntry{
				Code:  m[1],
				Kind:  model.FormatKindVideo,
				Label: label,
				Rank:  rank,
			})
			continue
		}

		if m := audioLineRE.FindStringSubmatch(line); m != nil {
			catalog.Audio = &model.FormatEntry{
				Code:  m[1],
				Kind:  model.FormatKindAudio,
				Label: model.LabelAudio,
			}
		}
	}

	catalog.SortVideo()
	return catalog
}
