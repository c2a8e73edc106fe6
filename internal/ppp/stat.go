package ppp

import "gnssppp/internal/gnss"

// SatStat is one satellite's diagnostic snapshot for the most recent
// processed epoch: a per-satellite residual/azimuth/
// elevation/fix-flag dump, returned as a struct rather than a
// formatted string so callers can log, assert on, or re-serialize it
// without parsing.
type SatStat struct {
	Sat      int
	Az, El   float64 // radians
	ResCode  [gnss.NFREQ]float64
	ResPhas  [gnss.NFREQ]float64
	Valid    [gnss.NFREQ]bool
	Slip     [gnss.NFREQ]uint8
	Rejected [gnss.NFREQ]uint32
}

// StatSnapshot reports a SatStat for every satellite the filter
// currently tracks.
func (f *Filter) StatSnapshot() []SatStat {
	var out []SatStat
	for i := range f.Ssat {
		s := &f.Ssat[i]
		if !s.Valid {
			continue
		}
		out = append(out, SatStat{
			Sat:      i + 1,
			Az:       s.Azel[0],
			El:       s.Azel[1],
			ResCode:  s.ResCode,
			ResPhas:  s.ResPhas,
			Valid:    s.Vsat,
			Slip:     s.Slip,
			Rejected: s.Rejc,
		})
	}
	return out
}
