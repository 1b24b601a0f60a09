package model

import "time"

// ChannelDigest is the persisted form of one digest run.
type ChannelDigest struct {
	ID           int64
	ChannelID    string
	WindowStart  time.Time
	WindowEnd    time.Time
	Summary      string
	ActionItems  []string
	Decisions    []string
	MessageCount int
	ModelUsed    string
	CreatedAt    time.Time
}
