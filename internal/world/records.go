package world

// Records persists the best survival time. SaveBestTime reports whether t is
// a new record.
type Records interface {
	LoadBestTime() (float64, error)
	SaveBestTime(t float64) (bool, error)
}

// MemoryRecords keeps the best time in process memory.
type MemoryRecords struct {
	best float64
}

// NewMemoryRecords creates records starting from best.
func NewMemoryRecords(best float64) *MemoryRecords {
	return &MemoryRecords{best: best}
}

// LoadBestTime returns the stored best time.
func (m *MemoryRecords) LoadBestTime() (float64, error) {
	return m.best, nil
}

// SaveBestTime stores t if it beats the current best.
func (m *MemoryRecords) SaveBestTime(t float64) (bool, error) {
	if t <= m.best {
		return false, nil
	}
	m.best = t
	return true, nil
}
