package model

import "strings"

// Tier is a named quality bucket mapped to an engine format expression.
type Tier string

const (
	// TierNone means no valid selection was made
	TierNone Tier = ""

	// TierAudio downloads the best available audio only
	TierAudio Tier = "audio"

	// TierVideo720p downloads the best video up to 720p with audio
	TierVideo720p Tier = "video720p"

	// TierVideo1080p downloads 1080p video with audio
	TierVideo1080p Tier = "video1080p"

	// TierVideo2K downloads 1440p video with audio (2K and 1440p are the same bucket)
	TierVideo2K Tier = "video2K"

	// TierVideo4K downloads 2160p video with audio
	TierVideo4K Tier = "video4K"
)

// FormatExpr returns the engine format selection expression for the tier.
// Empty for TierNone.
func (t Tier) FormatExpr() string {
	switch t {
	case TierAudio:
		return "bestaudio/best"
	case TierVideo720p:
		return "bestvideo[height<=720]+bestaudio"
	case TierVideo1080p:
		return "bestvideo[height=1080]+bestaudio"
	case TierVideo2K:
		return "bestvideo[height=1440]+bestaudio"
	case TierVideo4K:
		return "bestvideo[height=2160]+bestaudio"
	default:
		return ""
	}
}

// IsAudio returns true for the audio-only tier.
func (t Tier) IsAudio() bool {
	return t == TierAudio
}

// TierForSelection maps a format selector's display text to a quality tier.
// "1440p" and "2K" collapse into the same tier. Unrecognized text maps to
// TierNone; callers must treat that as an invalid selection.
func TierForSelection(selection string) Tier {
	switch {
	case selection == "":
		return TierNone
	case strings.Contains(selection, LabelAudio):
		return TierAudio
	case strings.Contains(selection, "1440p") || strings.Contains(selection, Label2K):
		return TierVideo2K
	case strings.Contains(selection, Label1080p):
		return TierVideo1080p
	case strings.Contains(selection, Label720p):
		return TierVideo720p
	case strings.Contains(selection, Label4K):
		return TierVideo4K
	default:
		return TierNone
	}
}
