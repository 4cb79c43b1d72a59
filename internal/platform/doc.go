package platform

// Package platform contains OS/platform integration and external tooling glue:
// yt-dlp format listing and its text parser, filesystem helpers, and OS
// open/reveal for downloaded files.
