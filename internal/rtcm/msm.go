package rtcm

import (
	"gnssppp/internal/bitio"
	"gnssppp/internal/gnss"
)

const (
	rangeMS = gnss.CLIGHT * 0.001
	p2_10   = 1.0 / 1024.0
	p2_24   = 5.960464477539063e-08
)

// msmHeader is the decoded common MSM header: satellite mask, signal
// mask and cell mask.
type msmHeader struct {
	sats     [64]uint8
	sigs     [32]uint8
	cellmask [64]uint8
	nsat     int
	nsig     int
}

// decodeMSMHead decodes the header shared by every MSM variant and
// returns the number of set cellmask bits (ncell), or -1 on a
// length/station-ID failure.
func (d *Decoder) decodeMSMHead(sys int) (h msmHeader, sync int, ncell int, hsize int, err error) {
	i := 24
	ctype := int(bitio.GetUint(d.buf[:], i, 12))
	i += 12
	if i+157 > d.msgLen*8 {
		return h, 0, -1, 0, &DecodeError{Kind: KindFraming, Type: ctype, Message: "length error"}
	}
	staid := int(bitio.GetUint(d.buf[:], i, 12))
	i += 12

	if sys == gnss.SysCMP {
		tow := float64(bitio.GetUint(d.buf[:], i, 30))*0.001 + 14.0
		i += 30
		d.adjWeek(tow)
	} else {
		tow := float64(bitio.GetUint(d.buf[:], i, 30)) * 0.001
		i += 30
		d.adjWeek(tow)
	}
	sync = int(bitio.GetUint(d.buf[:], i, 1))
	i += 1
	i += 3 // IOD
	i += 7 // cumulative session time
	i += 2 // clock steering
	i += 2 // external clock
	i += 1 // smoothing indicator
	i += 3 // smoothing interval

	for j := 1; j <= 64; j++ {
		if bitio.GetUint(d.buf[:], i, 1) > 0 {
			h.sats[h.nsat] = uint8(j)
			h.nsat++
		}
		i++
	}
	for j := 1; j <= 32; j++ {
		if bitio.GetUint(d.buf[:], i, 1) > 0 {
			h.sigs[h.nsig] = uint8(j)
			h.nsig++
		}
		i++
	}
	if !d.testStaID(staid) {
		return h, 0, -1, 0, &DecodeError{Kind: KindSemantic, Type: ctype, Message: "station id mismatch"}
	}
	if h.nsat*h.nsig > 64 {
		return h, 0, -1, 0, &DecodeError{Kind: KindFieldRange, Type: ctype, Message: "nsat*nsig > 64"}
	}
	if i+h.nsat*h.nsig > d.msgLen*8 {
		return h, 0, -1, 0, &DecodeError{Kind: KindFraming, Type: ctype, Message: "cell mask overruns frame"}
	}
	for j := 0; j < h.nsat*h.nsig; j++ {
		h.cellmask[j] = uint8(bitio.GetUint(d.buf[:], i, 1))
		i++
		if h.cellmask[j] > 0 {
			ncell++
		}
	}
	return h, sync, ncell, i, nil
}

// decodeMSM0 decodes MSM1-3: pseudorange-only or low-resolution
// multi-signal messages this decoder does not carry into the
// observation model, since the PPP engine needs carrier phase.
func (d *Decoder) decodeMSM0(sys int) (int, error) {
	_, sync, _, _, err := d.decodeMSMHead(sys)
	if err != nil {
		return 0, err
	}
	return retsync(sync, &d.ObsFlag), nil
}

// decodeMSM4 decodes the full-resolution multi-signal message
// carrying pseudorange, phaserange, lock time, half-cycle ambiguity
// and CNR per cell, with no phaserange rate or extended satellite
// info.
func (d *Decoder) decodeMSM4(sys int) (int, error) {
	h, sync, ncell, i, err := d.decodeMSMHead(sys)
	if err != nil {
		return 0, err
	}
	if i+h.nsat*18+ncell*48 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Message: "body length error"}
	}

	var r [64]float64
	var pr, cp, cnr [64]float64
	var lock, half [64]int
	for j := 0; j < ncell; j++ {
		pr[j], cp[j] = -1e16, -1e16
	}

	for j := 0; j < h.nsat; j++ {
		rng := int(bitio.GetUint(d.buf[:], i, 8))
		i += 8
		if rng != 255 {
			r[j] = float64(rng) * rangeMS
		}
	}
	for j := 0; j < h.nsat; j++ {
		rngM := int(bitio.GetUint(d.buf[:], i, 10))
		i += 10
		if r[j] != 0.0 {
			r[j] += float64(rngM) * p2_10 * rangeMS
		}
	}
	for j := 0; j < ncell; j++ {
		prv := bitio.GetInt(d.buf[:], i, 15)
		i += 15
		if prv != -16384 {
			pr[j] = float64(prv) * p2_24 * rangeMS
		}
	}
	for j := 0; j < ncell; j++ {
		cpv := bitio.GetInt(d.buf[:], i, 22)
		i += 22
		if cpv != -2097152 {
			cp[j] = float64(cpv) * p2_29 * rangeMS
		}
	}
	for j := 0; j < ncell; j++ {
		lock[j] = int(bitio.GetUint(d.buf[:], i, 4))
		i += 4
	}
	for j := 0; j < ncell; j++ {
		half[j] = int(bitio.GetUint(d.buf[:], i, 1))
		i++
	}
	for j := 0; j < ncell; j++ {
		cnr[j] = float64(bitio.GetUint(d.buf[:], i, 6)) * 1.0
		i += 6
	}

	d.saveMSMObs(sys, &h, r[:], pr[:], cp[:], nil, nil, cnr[:], lock[:], half[:])
	return retsync(sync, &d.ObsFlag), nil
}

// decodeMSM5 decodes the full-resolution multi-signal message adding
// phaserange rate (Doppler) and per-satellite extended info to
// decodeMSM4's fields.
func (d *Decoder) decodeMSM5(sys int) (int, error) {
	h, sync, ncell, i, err := d.decodeMSMHead(sys)
	if err != nil {
		return 0, err
	}
	if i+h.nsat*36+ncell*63 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Message: "body length error"}
	}

	var r, rr [64]float64
	var pr, cp, rrf, cnr [64]float64
	var lock, half [64]int
	for j := 0; j < ncell; j++ {
		pr[j], cp[j], rrf[j] = -1e16, -1e16, -1e16
	}

	for j := 0; j < h.nsat; j++ {
		rng := int(bitio.GetUint(d.buf[:], i, 8))
		i += 8
		if rng != 255 {
			r[j] = float64(rng) * rangeMS
		}
	}
	i += h.nsat * 4 // extended satellite info, not modeled
	for j := 0; j < h.nsat; j++ {
		rngM := int(bitio.GetUint(d.buf[:], i, 10))
		i += 10
		if r[j] != 0.0 {
			r[j] += float64(rngM) * p2_10 * rangeMS
		}
	}
	for j := 0; j < h.nsat; j++ {
		rate := bitio.GetInt(d.buf[:], i, 14)
		i += 14
		if rate != -8192 {
			rr[j] = float64(rate)
		}
	}
	for j := 0; j < ncell; j++ {
		prv := bitio.GetInt(d.buf[:], i, 15)
		i += 15
		if prv != -16384 {
			pr[j] = float64(prv) * p2_24 * rangeMS
		}
	}
	for j := 0; j < ncell; j++ {
		cpv := bitio.GetInt(d.buf[:], i, 22)
		i += 22
		if cpv != -2097152 {
			cp[j] = float64(cpv) * p2_29 * rangeMS
		}
	}
	for j := 0; j < ncell; j++ {
		lock[j] = int(bitio.GetUint(d.buf[:], i, 4))
		i += 4
	}
	for j := 0; j < ncell; j++ {
		half[j] = int(bitio.GetUint(d.buf[:], i, 1))
		i++
	}
	for j := 0; j < ncell; j++ {
		cnr[j] = float64(bitio.GetUint(d.buf[:], i, 6)) * 1.0
		i += 6
	}
	for j := 0; j < ncell; j++ {
		rrv := bitio.GetInt(d.buf[:], i, 15)
		i += 15
		if rrv != -16384 {
			rrf[j] = float64(rrv) * 0.0001
		}
	}

	d.saveMSMObs(sys, &h, r[:], pr[:], cp[:], rr[:], rrf[:], cnr[:], lock[:], half[:])
	return retsync(sync, &d.ObsFlag), nil
}

// decodeMSM6 decodes the extended-resolution multi-signal message:
// decodeMSM4's fields widened to MSM7's precision, with no
// phaserange rate.
func (d *Decoder) decodeMSM6(sys int) (int, error) {
	h, sync, ncell, i, err := d.decodeMSMHead(sys)
	if err != nil {
		return 0, err
	}
	if i+h.nsat*18+ncell*65 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Message: "body length error"}
	}

	var r [64]float64
	var pr, cp, cnr [64]float64
	var lock, half [64]int
	for j := 0; j < ncell; j++ {
		pr[j], cp[j] = -1e16, -1e16
	}

	for j := 0; j < h.nsat; j++ {
		rng := int(bitio.GetUint(d.buf[:], i, 8))
		i += 8
		if rng != 255 {
			r[j] = float64(rng) * rangeMS
		}
	}
	for j := 0; j < h.nsat; j++ {
		rngM := int(bitio.GetUint(d.buf[:], i, 10))
		i += 10
		if r[j] != 0.0 {
			r[j] += float64(rngM) * p2_10 * rangeMS
		}
	}
	for j := 0; j < ncell; j++ {
		prv := bitio.GetInt(d.buf[:], i, 20)
		i += 20
		if prv != -524288 {
			pr[j] = float64(prv) * p2_29 * rangeMS
		}
	}
	for j := 0; j < ncell; j++ {
		cpv := bitio.GetInt(d.buf[:], i, 24)
		i += 24
		if cpv != -8388608 {
			cp[j] = float64(cpv) * p2_31 * rangeMS
		}
	}
	for j := 0; j < ncell; j++ {
		lock[j] = int(bitio.GetUint(d.buf[:], i, 10))
		i += 10
	}
	for j := 0; j < ncell; j++ {
		half[j] = int(bitio.GetUint(d.buf[:], i, 1))
		i++
	}
	for j := 0; j < ncell; j++ {
		cnr[j] = float64(bitio.GetUint(d.buf[:], i, 10)) * 0.0625
		i += 10
	}

	d.saveMSMObs(sys, &h, r[:], pr[:], cp[:], nil, nil, cnr[:], lock[:], half[:])
	return retsync(sync, &d.ObsFlag), nil
}

// decodeMSM7 decodes the extended-resolution multi-signal message
// carrying pseudorange, phaserange, phaserange-rate and CNR per cell,
// plus per-satellite extended info, which is skipped.
func (d *Decoder) decodeMSM7(sys int) (int, error) {
	h, sync, ncell, i, err := d.decodeMSMHead(sys)
	if err != nil {
		return 0, err
	}
	if i+h.nsat*36+ncell*80 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Message: "body length error"}
	}

	var r, rr [64]float64
	var pr, cp, rrf, cnr [64]float64
	var lock, half [64]int
	for j := 0; j < ncell; j++ {
		pr[j], cp[j], rrf[j] = -1e16, -1e16, -1e16
	}

	for j := 0; j < h.nsat; j++ {
		rng := int(bitio.GetUint(d.buf[:], i, 8))
		i += 8
		if rng != 255 {
			r[j] = float64(rng) * rangeMS
		}
	}
	i += h.nsat * 4 // extended satellite info, not modeled
	for j := 0; j < h.nsat; j++ {
		rngM := int(bitio.GetUint(d.buf[:], i, 10))
		i += 10
		if r[j] != 0.0 {
			r[j] += float64(rngM) * p2_10 * rangeMS
		}
	}
	for j := 0; j < h.nsat; j++ {
		rate := bitio.GetInt(d.buf[:], i, 14)
		i += 14
		if rate != -8192 {
			rr[j] = float64(rate)
		}
	}
	for j := 0; j < ncell; j++ {
		prv := bitio.GetInt(d.buf[:], i, 20)
		i += 20
		if prv != -524288 {
			pr[j] = float64(prv) * p2_29 * rangeMS
		}
	}
	for j := 0; j < ncell; j++ {
		cpv := bitio.GetInt(d.buf[:], i, 24)
		i += 24
		if cpv != -8388608 {
			cp[j] = float64(cpv) * p2_31 * rangeMS
		}
	}
	for j := 0; j < ncell; j++ {
		lock[j] = int(bitio.GetUint(d.buf[:], i, 10))
		i += 10
	}
	for j := 0; j < ncell; j++ {
		half[j] = int(bitio.GetUint(d.buf[:], i, 1))
		i++
	}
	for j := 0; j < ncell; j++ {
		cnr[j] = float64(bitio.GetUint(d.buf[:], i, 10)) * 0.0625
		i += 10
	}
	for j := 0; j < ncell; j++ {
		rrv := bitio.GetInt(d.buf[:], i, 15)
		i += 15
		if rrv != -16384 {
			rrf[j] = float64(rrv) * 0.0001
		}
	}

	d.saveMSMObs(sys, &h, r[:], pr[:], cp[:], rr[:], rrf[:], cnr[:], lock[:], half[:])
	return retsync(sync, &d.ObsFlag), nil
}

// saveMSMObs resolves each cell's signal to a frequency-index slot
// via highest-priority-wins code selection (falling back to the
// NEXOBS spillover pool on collision) and writes pseudorange,
// carrier-phase and doppler into the epoch's observation record
func (d *Decoder) saveMSMObs(sys int, h *msmHeader, r, pr, cp, rr, rrf, cnr []float64, lock, half []int) {
	opt, _ := parseOpt(d.Opt)
	dopplerSign := -1.0
	if opt.InvPRR {
		dopplerSign = 1.0
	}
	var code [32]uint8
	var idx [32]int
	for i := 0; i < h.nsig; i++ {
		sig := msmSignalLabel(sys, h.sigs[i])
		code[i] = gnss.Obs2Code(sig)
		idx[i] = gnss.Code2Idx(sys, code[i])
	}
	sigIndex(sys, code[:h.nsig], d.Opt, idx[:h.nsig])

	j := 0
	for i := 0; i < h.nsat; i++ {
		prn := int(h.sats[i])
		sat := gnss.SatNo(sys, prn)
		index := -1
		if sat > 0 {
			index = d.obsIndex(sat)
		}
		for k := 0; k < h.nsig; k++ {
			if h.cellmask[k+i*h.nsig] == 0 {
				continue
			}
			if sat > 0 && index >= 0 && idx[k] >= 0 {
				freq := gnss.Code2Freq(sys, code[k], 0)
				if r[i] != 0.0 && pr[j] > -1e12 {
					d.ObsData.Data[index].P[idx[k]] = r[i] + pr[j]
				}
				if r[i] != 0.0 && cp[j] > -1e12 {
					d.ObsData.Data[index].L[idx[k]] = (r[i] + cp[j]) * freq / gnss.CLIGHT
				}
				if rr != nil && rrf != nil && rrf[j] > -1e12 {
					d.ObsData.Data[index].D[idx[k]] = dopplerSign * (rr[i] + rrf[j]) * freq / gnss.CLIGHT
				}
				ihalf := uint8(0)
				if half[j] > 0 {
					ihalf = 3
				}
				d.ObsData.Data[index].LLI[idx[k]] = lossOfLock(lock[j]) + ihalf
				d.ObsData.Data[index].SNR[idx[k]] = uint16(cnr[j]/gnss.SNRUnit + 0.5)
				d.ObsData.Data[index].Code[idx[k]] = code[k]
			}
			j++
		}
	}
}

// msmSignalLabel maps an MSM signal-mask bit (1-32) to its RINEX
// tracking-code label for the given system.
func msmSignalLabel(sys int, bit uint8) string {
	tbl := msmSigGPS
	switch sys {
	case gnss.SysGLO:
		tbl = msmSigGLO
	case gnss.SysGAL:
		tbl = msmSigGAL
	case gnss.SysQZS:
		tbl = msmSigQZS
	case gnss.SysSBS:
		tbl = msmSigSBS
	case gnss.SysCMP:
		tbl = msmSigCMP
	case gnss.SysIRN:
		tbl = msmSigIRN
	}
	if bit < 1 || int(bit) > len(tbl) {
		return ""
	}
	return tbl[bit-1]
}

// sigIndex resolves MSM signal-mask collisions on one frequency
// index: the highest-priority code wins the NFREQ slot, and every
// other code mapping to that slot spills into the NEXOBS pool
// . Codes with no NEXOBS room left are dropped.
func sigIndex(sys int, code []uint8, opt string, idx []int) {
	var priH [8]int
	var index [8]int
	ex := make([]int, len(code))
	for i := range code {
		if code[i] == gnss.CodeNone {
			continue
		}
		if idx[i] >= gnss.NFREQ {
			ex[i] = 1
			continue
		}
		pri := gnss.CodePriority(sys, code[i])
		if pri > priH[idx[i]] {
			if index[idx[i]] > 0 {
				ex[index[idx[i]]-1] = 1
			}
			priH[idx[i]] = pri
			index[idx[i]] = i + 1
		} else {
			ex[i] = 1
		}
	}
	nex := 0
	for i := range code {
		if ex[i] == 0 {
			continue
		}
		if nex < gnss.NEXOBS {
			idx[i] = gnss.NFREQ + nex
			nex++
		} else {
			idx[i] = -1
		}
	}
}
