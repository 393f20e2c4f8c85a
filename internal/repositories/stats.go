package repositories

import "context"

// Stats holds entity counts of a store
type Stats struct {
	Targets     int
	Annotations int
}

// StatsReader is implemented by stores that can report their size
type StatsReader interface {
	Stats(ctx context.Context) Stats
}
