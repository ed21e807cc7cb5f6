package parameter

import "time"

// Output - Live Feed
const (
	// FeedPath is the websocket endpoint of the progress feed
	FeedPath = "/ws"

	// FeedClientBuffer is messages queued per client before new ones are dropped for it
	FeedClientBuffer = 64

	// FeedHistoryLimit bounds messages replayed to clients joining mid-run
	FeedHistoryLimit = 1024

	// FeedShutdownTimeout bounds graceful shutdown of the feed server
	FeedShutdownTimeout = 2 * time.Second
)

// Output - Progress Chart
const (
	ChartWidthInches  = 6
	ChartHeightInches = 4
)

// Output - Run Ledger
const (
	// LedgerPath is the sqlite database read by the runs and history commands
	LedgerPath = "mazerunner.db"
)
