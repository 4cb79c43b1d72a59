package model

import (
	"fmt"
	"sort"
)

// FormatKind distinguishes audio-only entries from video entries
type FormatKind string

const (
	FormatKindAudio FormatKind = "audio"
	FormatKindVideo FormatKind = "video"
)

// Quality labels derived from resolution height
const (
	Label4K     = "4K"
	Label2K     = "2K"
	Label1080p  = "1080p"
	Label720p   = "720p"
	Label480p   = "480p"
	LabelLowRes = "Low Resolution"
	LabelAudio  = "Audio Only"
)

// Resolution height thresholds for label classification
const (
	Height4K    = 2160
	Height2K    = 1440
	Height1080p = 1080
	Height720p  = 720
	Height480p  = 480
)

// FormatEntry is one selectable format discovered for a URL.
// Rank is the explicit sort ordinal for the quality label; labels have no
// consistent lexical order ("2K" vs "1080p") so sorting always uses Rank.
type FormatEntry struct {
	Code  string
	Kind  FormatKind
	Label string
	Rank  int
}

// String returns the display text used in the format selector,
// e.g. "137: 1080p" or "140: Audio Only".
func (fe FormatEntry) String() string {
	return fmt.Sprintf("%s: %s", fe.Code, fe.Label)
}

// ClassifyHeight maps a resolution height to its quality label and rank.
func ClassifyHeight(height int) (string, int) {
	switch {
	case height >= Height4K:
		return Label4K, 5
	case height >= Height2K:
		return Label2K, 4
	case height >= Height1080p:
		return Label1080p, 3
	case height >= Height720p:
		return Label720p, 2
	case height >= Height480p:
		return Label480p, 1
	default:
		return LabelLowRes, 0
	}
}

// FormatCatalog holds the selectable formats discovered for a single URL.
// Built fresh per query; never merged with a prior catalog. At most one audio
// entry is kept (the last audio-only line wins during parsing).
type FormatCatalog struct {
	Audio *FormatEntry
	Video []FormatEntry
}

// SortVideo orders video entries by descending quality rank. The sort is
// stable so entries with equal rank keep their discovery order.
func (fc *FormatCatalog) SortVideo() {
	sort.SliceStable(fc.Video, func(i, j int) bool {
		return fc.Video[i].Rank > fc.Video[j].Rank
	})
}

// Options returns the display strings for the format selector, audio entry
// first when present, then video entries in their current order.
func (fc *FormatCatalog) Options() []string {
	options := make([]string, 0, len(fc.Video)+1)
	if fc.Audio != nil {
		options = append(options, fc.Audio.String())
	}
	for _, v := range fc.Video {
		options = append(options, v.String())
	}
	return options
}
