package download

// Package download implements the transfer pipeline built on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp). It validates user selections, maps
// quality tiers to engine format expressions, runs one worker goroutine per
// transfer, and finalizes completed artifacts into persistent history.
