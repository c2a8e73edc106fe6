// Command gnssppp-ppp drives the PPP filter from a live or recorded
// RTCM v3 stream, in the spirit of a continuously-running positioning
// process, but scoped to file/stdin input rather than serial/ntrip
// streams or a telnet console.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"gnssppp/internal/config"
	"gnssppp/internal/gnss"
	"gnssppp/internal/gnsstime"
	"gnssppp/internal/ppp"
	"gnssppp/internal/rtcm"
	"gnssppp/internal/rtcmopt"
	"gnssppp/internal/trace"
)

func main() {
	app := &cli.App{
		Name:  "gnssppp-ppp",
		Usage: "decode an RTCM v3 stream and run precise point positioning epoch by epoch",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Usage: "input RTCM file, defaults to stdin"},
			&cli.StringFlag{Name: "opt", Usage: "RTCM decoder option string"},
			&cli.StringFlag{Name: "config", Usage: "YAML processing config, defaults to the built-in baseline"},
			&cli.StringFlag{Name: "satpos", Usage: "CSV file of satellite positions/clocks (required)"},
			&cli.Float64Flag{Name: "satpos-skew", Value: 0.5, Usage: "max seconds between an epoch and its satpos row"},
			&cli.IntFlag{Name: "trace-level", Value: 2, Usage: "trace verbosity 1-5"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("gnssppp-ppp failed")
	}
}

func run(c *cli.Context) error {
	trace.SetLevel(c.Int("trace-level"))
	runID := uuid.NewString()
	log := logrus.WithField("run_id", runID)

	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("gnssppp-ppp: %w", err)
		}
		cfg = loaded
	}

	if _, err := rtcmopt.Parse(c.String("opt")); err != nil {
		return fmt.Errorf("gnssppp-ppp: %w", err)
	}

	satposPath := c.String("satpos")
	if satposPath == "" {
		return fmt.Errorf("gnssppp-ppp: --satpos is required (see satpos.go for the expected CSV layout)")
	}
	sp, err := loadCSVSatPos(satposPath, c.Float64("satpos-skew"))
	if err != nil {
		return fmt.Errorf("gnssppp-ppp: %w", err)
	}

	in := io.Reader(os.Stdin)
	if path := c.String("in"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("gnssppp-ppp: open %s: %w", path, err)
		}
		defer f.Close()
		in = f
	}

	nav := &gnss.NavigationStore{}
	dec := rtcm.NewDecoder(nav, c.String("opt"))
	filt := ppp.NewFilter(cfg.Processing)

	var lastEpoch gnss.Obs
	firstDay := true
	var lastDay float64

	buf := make([]byte, 4096)
	for {
		n, rerr := in.Read(buf)
		for i := 0; i < n; i++ {
			res, derr := dec.Input(buf[i])
			if derr != nil {
				log.WithError(derr).Debug("rtcm decode error")
				continue
			}
			if res == nil || dec.ObsFlag != 0 || len(dec.ObsData.Data) == 0 {
				continue
			}

			// A complete epoch: dec.ObsFlag dropped back to 0 after
			// accumulating one or more observation messages for the
			// same instant (legacy.go/msm.go's retsync convention).
			lastEpoch.Data = append([]gnss.ObsD(nil), dec.ObsData.Data...)
			sec, _ := gnsstime.DaySeconds(lastEpoch.Data[0].Time)
			dayBoundary := !firstDay && sec < lastDay
			lastDay = sec
			firstDay = false

			filt.Run(lastEpoch.Data, sp, filt.Sol.Rr, dayBoundary)
			logSolution(log, filt)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("gnssppp-ppp: read: %w", rerr)
		}
	}
	return nil
}

func logSolution(log *logrus.Entry, f *ppp.Filter) {
	fields := logrus.Fields{
		"time":   f.Sol.Time.String(),
		"status": f.Sol.Status,
		"nsat":   f.Sol.NSat,
		"x":      f.Sol.Rr[0],
		"y":      f.Sol.Rr[1],
		"z":      f.Sol.Rr[2],
	}
	if f.Sol.Status == ppp.StatusPPP {
		log.WithFields(fields).Info("ppp solution")
		for _, s := range f.StatSnapshot() {
			log.WithFields(logrus.Fields{
				"sat": s.Sat, "az": s.Az, "el": s.El, "rejc0": s.Rejected[0],
			}).Debug("ppp satellite stat")
		}
	} else {
		log.WithFields(fields).Debug("no fix")
	}
}
