// Command gnssppp-serve reads a live RTCM v3 stream off a serial port
// (a USB-attached GNSS receiver, typically) and decodes it, mirroring
// an OpenSerial-style stream source
// (pkg/gnssgo/stream/serial.go) but scoped to decode-and-log rather
// than relaying the raw stream onward over TCP.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"go.bug.st/serial"

	"gnssppp/internal/gnss"
	"gnssppp/internal/navstore"
	"gnssppp/internal/rtcm"
	"gnssppp/internal/rtcmopt"
	"gnssppp/internal/trace"
)

// sweepSSRAge is how stale an SSR correction must be before the
// periodic navstore sweep evicts it.
const sweepSSRAge = 3600.0

// sweepEvery caps how often the synchronous navstore sweep runs:
// once every this many decoded messages, not on every byte, since a
// per-message sat/IODE scan is wasted work at full stream rate.
const sweepEvery = 2000

func main() {
	app := &cli.App{
		Name:  "gnssppp-serve",
		Usage: "decode an RTCM v3 stream read live from a serial port",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Required: true, Usage: "serial device, e.g. /dev/ttyACM0 or COM4"},
			&cli.IntFlag{Name: "baud", Value: 115200, Usage: "baud rate"},
			&cli.StringFlag{Name: "parity", Value: "N", Usage: "N, E or O"},
			&cli.IntFlag{Name: "stopbits", Value: 1, Usage: "1 or 2"},
			&cli.StringFlag{Name: "opt", Usage: "RTCM decoder option string"},
			&cli.IntFlag{Name: "trace-level", Value: 2, Usage: "trace verbosity 1-5"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("gnssppp-serve failed")
	}
}

func serialMode(c *cli.Context) *serial.Mode {
	mode := &serial.Mode{
		BaudRate: c.Int("baud"),
		DataBits: 8,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}
	if c.Int("stopbits") == 2 {
		mode.StopBits = serial.TwoStopBits
	}
	switch c.String("parity") {
	case "E", "e":
		mode.Parity = serial.EvenParity
	case "O", "o":
		mode.Parity = serial.OddParity
	}
	return mode
}

func run(c *cli.Context) error {
	trace.SetLevel(c.Int("trace-level"))
	log := logrus.WithField("session_id", uuid.NewString())

	port, err := serial.Open(c.String("port"), serialMode(c))
	if err != nil {
		return fmt.Errorf("gnssppp-serve: open %s: %w", c.String("port"), err)
	}
	defer port.Close()
	if err := port.SetReadTimeout(500 * time.Millisecond); err != nil {
		return fmt.Errorf("gnssppp-serve: set read timeout: %w", err)
	}

	if _, err := rtcmopt.Parse(c.String("opt")); err != nil {
		return fmt.Errorf("gnssppp-serve: %w", err)
	}

	nav := &gnss.NavigationStore{}
	dec := rtcm.NewDecoder(nav, c.String("opt"))
	store := navstore.New(nav)

	log.WithFields(logrus.Fields{
		"port": c.String("port"),
		"baud": c.Int("baud"),
	}).Info("gnssppp-serve: listening")

	buf := make([]byte, 4096)
	msgCount := 0
	for {
		n, err := port.Read(buf)
		if err != nil {
			return fmt.Errorf("gnssppp-serve: read %s: %w", c.String("port"), err)
		}
		for i := 0; i < n; i++ {
			res, derr := dec.Input(buf[i])
			if derr != nil {
				log.WithError(derr).Debug("rtcm decode error")
				continue
			}
			if res == nil || res.Type == 0 {
				continue
			}
			log.WithFields(logrus.Fields{
				"type":  res.Type,
				"sat":   res.Sat,
				"staid": dec.StaID,
				"time":  dec.Time.String(),
			}).Info("rtcm message")

			msgCount++
			if msgCount%sweepEvery == 0 {
				store.Sweep(dec.Time, sweepSSRAge)
			}
		}
	}
}
