// Command tuiodump listens for TUIO frames on UDP and logs every cursor,
// object and blob lifecycle event it sees. It is the quickest way to check
// what a tracker application actually puts on the wire.
//
// Usage:
//
//	tuiodump [-addr :3333] [-source name] [-config config.toml] [-v] [-json]
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/chabad360/go-tuio/tuio"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML config file")
		addr       = flag.String("addr", "", "UDP listen address (overrides the config file)")
		source     = flag.String("source", "", "only accept frames from this source name")
		verbose    = flag.Bool("v", false, "log every frame, not just lifecycle events")
		jsonOut    = flag.Bool("json", false, "log in JSON format")
	)
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if *source != "" {
		cfg.Source = *source
	}
	cfg.Verbose = cfg.Verbose || *verbose
	cfg.JSON = cfg.JSON || *jsonOut

	log := logrus.New()
	if cfg.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	opts := []tuio.TrackerOption{tuio.WithLogger(log)}
	if cfg.Source != "" {
		opts = append(opts, tuio.WithSource(cfg.Source))
	}

	client := tuio.NewClient(cfg.ListenAddr, opts...)
	client.AddListener(tuio.ListenerFunc(func(e tuio.Event) {
		entry := log.WithFields(logrus.Fields{
			"profile": e.Profile,
			"session": e.SessionID,
		})

		switch {
		case e.Cursor != nil:
			entry = entry.WithFields(logrus.Fields{
				"x": e.Cursor.X(),
				"y": e.Cursor.Y(),
			})
		case e.Object != nil:
			entry = entry.WithFields(logrus.Fields{
				"class": e.Object.ClassID(),
				"x":     e.Object.X(),
				"y":     e.Object.Y(),
				"angle": e.Object.Angle(),
			})
		case e.Blob != nil:
			entry = entry.WithFields(logrus.Fields{
				"x":      e.Blob.X(),
				"y":      e.Blob.Y(),
				"width":  e.Blob.Width(),
				"height": e.Blob.Height(),
			})
		}

		entry.Info(e.Type.String())
	}))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		client.Close()
	}()

	log.WithField("addr", cfg.ListenAddr).Info("listening for TUIO frames")
	if err := client.ListenAndServe(); err != nil {
		log.WithError(err).Fatal("listener failed")
	}
}
