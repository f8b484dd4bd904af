package errors

import "sync"

// MaxErrors is the bound on the accumulator ring (EH_MAX_ERRORS upstream).
const MaxErrors = 10

// Ring is a fixed-capacity, FIFO-on-overflow accumulator of Records,
// guarded by its own mutex per spec §5 ("error-database lock").
//
// Once Len reaches MaxErrors, Push drops the oldest record before writing
// the new one; Dropped counts how many records have been discarded this
// way, matching spec §7's "if the ring is full, the oldest record is
// dropped, counters are adjusted, and the new one is written."
type Ring struct {
	mu      sync.Mutex
	records []*Record
	Dropped int
}

// NewRing returns an empty Ring.
func NewRing() *Ring {
	return &Ring{records: make([]*Record, 0, MaxErrors)}
}

// Push appends rec, evicting the oldest record first if the ring is full.
func (r *Ring) Push(rec *Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) >= MaxErrors {
		r.records = r.records[1:]
		r.Dropped++
	}
	r.records = append(r.records, rec)
}

// All returns a snapshot copy of the current records, oldest first.
func (r *Ring) All() []*Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Record, len(r.records))
	copy(out, r.records)
	return out
}

// Find returns the first record matching facility (bitmask) and whose
// message contains msg, or nil.
func (r *Ring) Find(facilities Facility, msg string) *Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.Facility&facilities == 0 {
			continue
		}
		if msg == "" || containsSubstring(rec.Message, msg) {
			return rec
		}
	}
	return nil
}

func containsSubstring(haystack, needle string) bool {
	if len(needle) == 0 {
		return true
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

// Count returns the number of records matching facilities, and optionally
// a single severity filter (pass -1 to match either severity).
func (r *Ring) Count(facilities Facility, severity int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.records {
		if rec.Facility&facilities == 0 {
			continue
		}
		if severity != -1 && int(rec.Severity) != severity {
			continue
		}
		n++
	}
	return n
}

// Clear removes every record matching facilities.
func (r *Ring) Clear(facilities Facility) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.Facility&facilities == 0 {
			kept = append(kept, rec)
		}
	}
	r.records = kept
}

// Print renders every record matching facilities to the returned string,
// one per line (caret rendering included), and is the backing
// implementation of the public print_errors operation.
func (r *Ring) Print(facilities Facility) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := ""
	for _, rec := range r.records {
		if rec.Facility&facilities == 0 {
			continue
		}
		out += rec.Error() + "\n"
	}
	return out
}
