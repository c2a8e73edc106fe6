// Package gnss holds the GNSS data model shared by the RTCM codec and
// the PPP engine: satellite identity, signal codes, observation
// records, broadcast ephemeris variants, SSR corrections and station
// metadata.
package gnss

// Physical and system constants.
const (
	PI       = 3.1415926535897932
	D2R      = PI / 180.0
	R2D      = 180.0 / PI
	CLIGHT   = 299792458.0    // speed of light (m/s)
	AU       = 149597870691.0 // 1 AU (m)
	AS2R     = D2R / 3600.0
	OMGE     = 7.2921151467e-5 // earth angular velocity (rad/s)
	RE_WGS84 = 6378137.0
	FE_WGS84 = 1.0 / 298.257223563
	HION     = 350000.0 // ionosphere height (m)
	MAXFREQ  = 7
)

// Carrier frequencies (Hz).
const (
	FREQ1      = 1.57542e9
	FREQ2      = 1.22760e9
	FREQ5      = 1.17645e9
	FREQ6      = 1.27875e9
	FREQ7      = 1.20714e9
	FREQ8      = 1.191795e9
	FREQ9      = 2.492028e9
	FREQ1GLO   = 1.60200e9
	DFRQ1GLO   = 0.56250e6
	FREQ2GLO   = 1.24600e9
	DFRQ2GLO   = 0.43750e6
	FREQ3GLO   = 1.202025e9
	FREQ1aGLO  = 1.600995e9
	FREQ2aGLO  = 1.248060e9
	FREQ1CMP   = 1.561098e9
	FREQ2CMP   = 1.20714e9
	FREQ3CMP   = 1.26852e9
)

// Navigation system bit-flags, ORable into a system mask.
const (
	SysNone = 0x00
	SysGPS  = 0x01
	SysSBS  = 0x02
	SysGLO  = 0x04
	SysGAL  = 0x08
	SysQZS  = 0x10
	SysCMP  = 0x20
	SysIRN  = 0x40
	SysLEO  = 0x80
	SysAll  = 0xFF
)

// Per-system error factors used by the PPP measurement-variance model.
const (
	EfactGPS = 1.0
	EfactGLO = 1.5
	EfactGAL = 1.0
	EfactQZS = 1.0
	EfactCMP = 1.0
	EfactIRN = 1.5
	EfactSBS = 3.0
)

// NFREQ is the number of carrier-frequency slots retained per
// satellite; NEXOBS is the spillover pool for additional signal codes
// mapping to an already-occupied frequency index.
const (
	NFREQ    = 3
	NFREQGLO = 2
	NEXOBS   = 2
	SNRUnit  = 0.001
)

// Per-system PRN ranges and satellite-number offsets.
const (
	MinPRNGPS = 1
	MaxPRNGPS = 32
	NSatGPS   = MaxPRNGPS - MinPRNGPS + 1

	MinPRNGLO = 1
	MaxPRNGLO = 27
	NSatGLO   = MaxPRNGLO - MinPRNGLO + 1

	MinPRNGAL = 1
	MaxPRNGAL = 36
	NSatGAL   = MaxPRNGAL - MinPRNGAL + 1

	MinPRNQZS = 193
	MaxPRNQZS = 202
	NSatQZS   = MaxPRNQZS - MinPRNQZS + 1

	MinPRNCMP = 1
	MaxPRNCMP = 63
	NSatCMP   = MaxPRNCMP - MinPRNCMP + 1

	MinPRNIRN = 1
	MaxPRNIRN = 14
	NSatIRN   = MaxPRNIRN - MinPRNIRN + 1

	MinPRNLEO = 1
	MaxPRNLEO = 10
	NSatLEO   = MaxPRNLEO - MinPRNLEO + 1

	MinPRNSBS = 120
	MaxPRNSBS = 158
	NSatSBS   = MaxPRNSBS - MinPRNSBS + 1

	MaxSat = NSatGPS + NSatGLO + NSatGAL + NSatQZS + NSatCMP + NSatIRN + NSatSBS + NSatLEO
)

// Other module-wide bounds.
const (
	MaxSta        = 255
	MaxObs        = 96
	MaxRcv        = 64
	MaxObsType    = 64
	DTTol         = 0.025
	MaxDtoeGPS    = 7200.0
	MaxDtoeQZS    = 7200.0
	MaxDtoeGAL    = 14400.0
	MaxDtoeCMP    = 21600.0
	MaxDtoeGLO    = 1800.0
	MaxDtoeIRN    = 7200.0
	MaxVarEph     = 300.0 * 300.0
	MaxCode       = 68 // obs-code table upper bound
)

// CodeNone is the sentinel "no code" value.
const CodeNone uint8 = 0
