package storage

import "github.com/vovakirdan/danmaku/internal/world"

// BestTimes adapts a Store to the world's record keeping for one variant.
// Every saved time is stored as a run.
type BestTimes struct {
	store   *Store
	variant string

	// Difficulty, when set, is sampled to annotate saved runs.
	Difficulty func() float64
}

var _ world.Records = (*BestTimes)(nil)

// NewBestTimes creates the adapter for variant.
func NewBestTimes(store *Store, variant string) *BestTimes {
	return &BestTimes{store: store, variant: variant}
}

// LoadBestTime returns the variant's best survival time.
func (b *BestTimes) LoadBestTime() (float64, error) {
	return b.store.BestTime(b.variant)
}

// SaveBestTime stores the run and reports whether it beat the previous best.
func (b *BestTimes) SaveBestTime(t float64) (bool, error) {
	prev, err := b.store.BestTime(b.variant)
	if err != nil {
		return false, err
	}
	run := Run{Variant: b.variant, SurvivalTime: t}
	if b.Difficulty != nil {
		run.Difficulty = b.Difficulty()
	}
	if _, err := b.store.SaveRun(run); err != nil {
		return false, err
	}
	return t > prev, nil
}
