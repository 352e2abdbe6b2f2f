package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/xob0t/fluf/pkg/config"
	"github.com/xob0t/fluf/pkg/gallery"
)

// state is shared by every command once Before has run.
type state struct {
	cfg    config.Config
	log    *slog.Logger
	picker Picker
}

func newApp(picker Picker) *cli.App {
	st := &state{picker: picker}

	app := cli.NewApp()
	app.HideHelpCommand = true
	app.HideVersion = true
	app.Name = "fluf"
	app.Usage = "Procedural gradient wallpapers for phones"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "YAML config file path",
			Aliases: []string{"c"},
			EnvVars: []string{"FLUF_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error (overrides config)",
		},
	}

	// Init process
	app.Before = func(c *cli.Context) error {
		cfg, err := config.Load(c.String("config"))
		if err != nil {
			return err
		}
		if lvl := c.String("log-level"); lvl != "" {
			cfg.Log.Level = lvl
		}
		logger, err := cfg.Log.NewLogger(c.App.ErrWriter)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}

		st.cfg = cfg
		st.log = logger
		gallery.SetLogger(logger)
		return nil
	}

	app.Commands = []*cli.Command{
		st.listCommand(),
		st.generateCommand(),
		st.galleryCommand(),
		st.pickCommand(),
		st.serveCommand(),
	}
	return app
}
