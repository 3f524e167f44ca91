package processor

import "sync"

// Progress is the live completion counter shared by the workers of a batch
// and read by the progress display.
type Progress struct {
	mu        sync.Mutex
	total     int
	completed int
	last      string
}

type Snapshot struct {
	Completed int
	Total     int
	Last      string
	Percent   int
}

func NewProgress(total int) *Progress {
	return &Progress{total: total}
}

func (p *Progress) SetTotal(total int) {
	p.mu.Lock()
	p.total = total
	p.mu.Unlock()
}

// Complete records that path has been processed.
func (p *Progress) Complete(path string) {
	p.mu.Lock()
	p.completed++
	p.last = path
	p.mu.Unlock()
}

func (p *Progress) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Completed: p.completed,
		Total:     p.total,
		Last:      p.last,
		Percent:   percent(p.completed, p.total),
	}
}

// Done reports whether every file has been processed.
func (s Snapshot) Done() bool {
	return s.Completed >= s.Total
}

// Ratio is the completed share in [0, 1].
func (s Snapshot) Ratio() float64 {
	return float64(s.Percent) / 100
}

// percent is floor(completed/total*100) clamped to 100. An empty batch is
// complete.
func percent(completed, total int) int {
	if total <= 0 {
		return 100
	}
	pct := completed * 100 / total
	if pct > 100 {
		return 100
	}
	return pct
}
