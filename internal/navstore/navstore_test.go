package navstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gnssppp/internal/gnss"
	"gnssppp/internal/gnsstime"
)

func findEph(s *Store, sat int) *gnss.Eph {
	for i := range s.Nav.Ephs {
		if s.Nav.Ephs[i].Sat == sat {
			return &s.Nav.Ephs[i]
		}
	}
	return nil
}

func TestSweep_EvictsStaleEphemeris(t *testing.T) {
	s := New(nil)
	toe := gnsstime.FromGPS(2000, 0)
	s.Nav.Ephs = append(s.Nav.Ephs, gnss.Eph{Sat: 1, Iode: 1, Toe: toe})

	now := gnsstime.Add(toe, 3*gnss.MaxDtoeGPS)
	s.Sweep(now, 3600)

	assert.Nil(t, findEph(s, 1))
}

func TestSweep_KeepsFreshEphemeris(t *testing.T) {
	s := New(nil)
	toe := gnsstime.FromGPS(2000, 0)
	s.Nav.Ephs = append(s.Nav.Ephs, gnss.Eph{Sat: 1, Iode: 1, Toe: toe})

	now := gnsstime.Add(toe, gnss.MaxDtoeGPS)
	s.Sweep(now, 3600)

	assert.NotNil(t, findEph(s, 1))
}

func TestSweep_EvictsStaleSSR(t *testing.T) {
	s := New(nil)
	sat := gnss.SatNo(gnss.SysGPS, 5)
	t0 := gnsstime.FromGPS(2000, 0)
	s.Nav.Ssr[sat-1].T0[0] = t0

	s.Sweep(gnsstime.Add(t0, 7200), 3600)

	assert.Equal(t, gnsstime.Time{}, s.Nav.Ssr[sat-1].T0[0])
}
