package activity

// Accumulator holds the per-contributor counters built up during a fold.
// DisplayName and Email are filled on first observation; see Observe.
type Accumulator struct {
	Key         string
	DisplayName string
	Email       string
	Commits     int
	PRsCreated  int
	PRsMerged   int
	PRsReviewed int
	WorkItems   int
}

// Observe backfills the display name and email. Both are first-writer-wins,
// except that a later record supplying an email fills a still-empty one.
func (a *Accumulator) Observe(name, email string) {
	if a.DisplayName == "" && name != "" {
		a.DisplayName = name
	}
	if a.Email == "" && email != "" {
		a.Email = email
	}
}

// Ledger maps contributor keys to their accumulators. It remembers insertion
// order so that downstream ranking has a defined tie-break basis instead of
// map iteration order. Not safe for concurrent use; the fold is single-pass
// and synchronous.
type Ledger struct {
	entries map[string]*Accumulator
	order   []string
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]*Accumulator)}
}

// GetOrCreate returns the accumulator for key, creating a zero-valued one on
// first reference. Idempotent: repeated calls with the same key return the
// same accumulator.
func (l *Ledger) GetOrCreate(key string) *Accumulator {
	if acc, ok := l.entries[key]; ok {
		return acc
	}
	acc := &Accumulator{Key: key}
	l.entries[key] = acc
	l.order = append(l.order, key)
	return acc
}

// Values returns the accumulators in insertion order.
func (l *Ledger) Values() []*Accumulator {
	out := make([]*Accumulator, 0, len(l.order))
	for _, key := range l.order {
		out = append(out, l.entries[key])
	}
	return out
}

// Len reports the number of distinct contributors seen so far.
func (l *Ledger) Len() int {
	return len(l.entries)
}
