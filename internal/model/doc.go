package model

// Package model defines domain data structures used across the app: format
// catalog entries, progress snapshots, persisted download records, and quality
// tiers. Structures are designed for direct binding in the UI and explicit
// state transitions.
