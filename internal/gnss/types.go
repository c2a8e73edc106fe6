package gnss

import "gnssppp/internal/gnsstime"

// MaxBand and MaxNIgp bound the SBAS ionospheric-grid tables.
const (
	MaxBand = 10
	MaxNIgp = 201
)

// ObsD is one satellite's observation record at a single epoch: up to
// NFREQ+NEXOBS parallel code/phase/doppler/SNR/LLI slots.
type ObsD struct {
	Time gnsstime.Time
	Sat  int
	Rcv  int
	SNR  [NFREQ + NEXOBS]uint16
	LLI  [NFREQ + NEXOBS]uint8
	Code [NFREQ + NEXOBS]uint8
	L    [NFREQ + NEXOBS]float64 // carrier phase (cycles)
	P    [NFREQ + NEXOBS]float64 // pseudorange (m)
	D    [NFREQ + NEXOBS]float64 // doppler (Hz)
}

// Obs is an epoch's worth of observation records across satellites.
type Obs struct {
	Data []ObsD
}

// Eph is a GPS/QZS/GAL/BDS/IRN Keplerian broadcast ephemeris. Set
// distinguishes Galileo's two independently broadcast navigation
// messages (0 = I/NAV, 1 = F/NAV) for the same satellite; every other
// system only ever populates Set 0.
type Eph struct {
	Sat            int
	Set            int
	Iode, Iodc     int
	Sva, Svh       int
	Week           int
	Code, Flag     int
	Toe, Toc, Ttr  gnsstime.Time
	A, E, I0, OMG0 float64
	Omg, M0, Deln  float64
	OMGd, Idot     float64
	Crc, Crs       float64
	Cuc, Cus       float64
	Cic, Cis       float64
	Toes, Fit      float64
	F0, F1, F2     float64
	Tgd            [6]float64
	Adot, Ndot     float64
}

// GEph is a GLONASS state-vector broadcast ephemeris.
type GEph struct {
	Sat           int
	Iode          int
	Frq           int
	Svh, Sva, Age int
	Toe, Tof      gnsstime.Time
	Pos, Vel, Acc [3]float64
	Taun, Gamn    float64
	DTaun         float64
}

// SEph is an SBAS geostationary state-vector ephemeris.
type SEph struct {
	Sat           int
	T0, Tof       gnsstime.Time
	Sva, Svh      int
	Pos, Vel, Acc [3]float64
	Af0, Af1      float64
}

// PEph is one precise-orbit epoch across the whole satellite table
type PEph struct {
	Time  gnsstime.Time
	Index int
	Pos   [MaxSat][4]float64
	Std   [MaxSat][4]float32
	Vel   [MaxSat][4]float64
	Vst   [MaxSat][4]float32
}

// PClk is one precise-clock epoch across the satellite table.
type PClk struct {
	Time  gnsstime.Time
	Index int
	Clk   [MaxSat][1]float64
	Std   [MaxSat][1]float32
}

// SSR is a single satellite's SSR correction state: six sub-streams
// (orbit, clock, high-rate clock, URA, code bias, phase bias), each
// with its own epoch and update interval.
type SSR struct {
	T0                [6]gnsstime.Time
	Udi               [6]float64
	Iod               [6]int
	Iode              int
	IodCrc            int
	Ura               int
	Refd              int
	Deph, Ddeph       [3]float64
	Dclk              [3]float64
	Brclk             float64
	Cbias             [MaxCode]float32
	Pbias             [MaxCode]float64
	Stdpb             [MaxCode]float32
	YawAng, YawRate   float64
	Update            uint8
}

// Pcv is a satellite or receiver antenna phase-center model: offsets
// and elevation/nadir-dependent variations per frequency.
type Pcv struct {
	Sat       int
	Type      string
	Code      string
	Ts, Te    gnsstime.Time
	Offset    [NFREQ][3]float64
	Variation [NFREQ][19]float64
}

// Sta describes a reference station's identity and ECEF position, as
// decoded from RTCM 1005/1006/1007/1008/1033.
type Sta struct {
	Name     string
	Marker   string
	AntDes   string
	AntSno   string
	RecType  string
	RecVer   string
	RecSN    string
	AntSetup int
	Itrf     int
	DelType  int
	Pos      [3]float64
	Del      [3]float64
	Hgt      float64

	// GloCpAlign/GloCpBias are the GLONASS code-phase bias corrections
	// from RTCM 1230: GloCpAlign reports whether the reference station
	// aligns GLONASS code and phase biases, and GloCpBias holds the
	// per-signal bias in meters for L1 C/A, L1 P, L2 C/A, L2 P.
	GloCpAlign int
	GloCpBias  [4]float64
}

// SbsIgp is one SBAS ionospheric-grid-point vertical delay estimate.
type SbsIgp struct {
	T0       gnsstime.Time
	Lat, Lon int16
	Give     int16
	Delay    float32
}

// SbsIon holds the decoded ionospheric grid for one SBAS band.
type SbsIon struct {
	Iodi int
	Nigp int
	Igp  [MaxNIgp]SbsIgp
}

// NavigationStore is the aggregate store of everything the RTCM
// decoder produces and the PPP engine consumes: broadcast/precise
// ephemerides, SSR corrections, DCBs, antenna models and the
// ionosphere/UTC parameter sets.
// File-sourced products (precise orbit/clock, ANTEX, BLQ, TEC grids)
// are populated by external typed-data suppliers and merely held here.
type NavigationStore struct {
	Ephs    []Eph
	Geph    []GEph
	Seph    []SEph
	Peph    []PEph
	Pclk    []PClk
	UtcGPS  [8]float64
	UtcGLO  [8]float64
	UtcGAL  [8]float64
	UtcQZS  [8]float64
	UtcCMP  [8]float64
	UtcIRN  [9]float64
	UtcSBS  [4]float64
	IonGPS  [8]float64
	IonGAL  [4]float64
	IonQZS  [8]float64
	IonCMP  [8]float64
	IonIRN  [8]float64
	GloFCN  [32]int
	CBias   [MaxSat][3]float64
	RBias   [MaxRcv][2][3]float64
	Pcvs    [MaxSat]Pcv
	SbasIon [MaxBand + 1]SbsIon
	Ssr     [MaxSat]SSR
}

// SnrMask is the per-frequency SNR floor applied when selecting
// observations for the filter.
type SnrMask struct {
	Enabled [2]int
	Mask    [NFREQ][9]float64
}

// ProcessingOptions configures one PPP run: positioning mode,
// tracked systems/frequencies, process-noise tuning and correction
// models, validated with struct tags at load time.
type ProcessingOptions struct {
	Mode       int     `validate:"gte=0,lte=8"`
	Nf         int     `validate:"gte=1,lte=3"`
	NavSys     int     `validate:"gte=1,lte=255"`
	Elmin      float64 `validate:"gte=0,lte=1.5708"`
	SnrMask    SnrMask
	IonoOpt    int `validate:"gte=0,lte=6"`
	TropOpt    int `validate:"gte=0,lte=4"`
	TideCorr   int `validate:"gte=0,lte=2"`
	NoIter     int `validate:"gte=1,lte=16"`
	Std        [3]float64
	Prn        [6]float64
	ThresSlip  float64 `validate:"gt=0"`
	MaxInno    float64 `validate:"gt=0"`
	ExSats     [MaxSat]uint8
	RnxOpt     string
	Odisp      [2][6 * 11]float64
}

// SolutionOptions configures solution emission: time format, output
// coordinate system and the fields reported in a status snapshot.
type SolutionOptions struct {
	TimeFormat int    `validate:"gte=0,lte=2"`
	TimeDecimals int  `validate:"gte=0,lte=9"`
	OutputENU  bool
	Datum      int `validate:"gte=0,lte=1"`
}

// FileOptions names the external typed-data suppliers consumed as
// navigation-store inputs.
type FileOptions struct {
	SatAntFile string
	RcvAntFile string
	StaPosFile string
	BLQFile    string
	TECFile    string
}
