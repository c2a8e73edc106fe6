// Package navstore bounds the memory a long-running RTCM decode
// session accumulates: broadcast ephemerides and SSR corrections are
// never removed by the decoder itself (it only replaces or appends),
// so a process that stays up for days needs a periodic sweep to evict
// entries whose validity window has long since passed.
package navstore

import (
	"sync"

	"gnssppp/internal/gnss"
	"gnssppp/internal/gnsstime"
	"gnssppp/internal/trace"
)

// Store wraps a gnss.NavigationStore for Sweep. Only Sweep takes the
// mutex; other code that reads or writes Nav directly does not, so
// Sweep runs on the same goroutine that feeds the decoder.
type Store struct {
	mu  sync.Mutex
	Nav *gnss.NavigationStore
}

// New wraps nav (or a fresh store if nav is nil).
func New(nav *gnss.NavigationStore) *Store {
	if nav == nil {
		nav = &gnss.NavigationStore{}
	}
	return &Store{Nav: nav}
}

// maxDtoe is the per-system broadcast-ephemeris validity half-window
// (gnss.MaxDtoe*), consulted during the sweep to decide staleness.
func maxDtoe(sys int) float64 {
	switch sys {
	case gnss.SysGLO:
		return gnss.MaxDtoeGLO
	case gnss.SysGAL:
		return gnss.MaxDtoeGAL
	case gnss.SysCMP:
		return gnss.MaxDtoeCMP
	case gnss.SysIRN:
		return gnss.MaxDtoeIRN
	default:
		return gnss.MaxDtoeGPS
	}
}

// Sweep evicts ephemerides whose toe is more than 2x their system's
// validity half-window from now, and SSR corrections older than
// maxSSRAge. The caller is expected to invoke this synchronously from
// its own read loop (e.g. once per N decoded messages, or on a
// decoder-time tick) rather than from a background goroutine: the
// sweep exists purely to bound memory for a long-running decoder, not
// to change decode semantics, and has no reason to run concurrently
// with the decode it is bounding.
func (s *Store) Sweep(now gnsstime.Time, maxSSRAge float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.Nav.Ephs[:0]
	for _, e := range s.Nav.Ephs {
		sys := gnss.SatSys(e.Sat, nil)
		if age := gnsstime.Sub(now, e.Toe); age < 0 || age <= 2*maxDtoe(sys) {
			kept = append(kept, e)
		} else {
			trace.Trace(3, "navstore: evicted stale ephemeris sat=%d iode=%d age=%.0fs", e.Sat, e.Iode, age)
		}
	}
	s.Nav.Ephs = kept

	for i := range s.Nav.Ssr {
		t0 := s.Nav.Ssr[i].T0[0] // orbit/clock correction epoch (slot 0)
		if t0 == (gnsstime.Time{}) {
			continue
		}
		if age := gnsstime.Sub(now, t0); age > maxSSRAge {
			s.Nav.Ssr[i] = gnss.SSR{}
		}
	}
}
