package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/xob0t/fluf/clients/server"
	"github.com/xob0t/fluf/pkg/export"
	"github.com/xob0t/fluf/pkg/gallery"
	"github.com/xob0t/fluf/pkg/style"
	"github.com/xob0t/fluf/pkg/wallpaper"
)

func (st *state) listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "print the style catalog",
		Action: func(c *cli.Context) error {
			tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSLUG\tPATTERN\tCOLORS")
			for _, s := range style.Catalog() {
				colors := s.Colors()
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name(), s.Slug(), s.Pattern(), strings.Join(colors[:], " "))
			}
			return tw.Flush()
		},
	}
}

// renderFlags are shared by generate and pick.
func renderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output file (.png or .bmp); defaults to <prefix>_<slug>_<millis>.png",
		},
		&cli.IntFlag{Name: "width", Usage: "width in pixels (default from config)"},
		&cli.IntFlag{Name: "height", Usage: "height in pixels (default from config)"},
		&cli.BoolFlag{Name: "thumb", Usage: "render at thumbnail size"},
		&cli.Uint64Flag{Name: "seed", Usage: "seed for reproducible output"},
	}
}

func (st *state) generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "render one wallpaper",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "style",
				Aliases:  []string{"s"},
				Usage:    "style name or slug (see list)",
				Required: true,
			},
		}, renderFlags()...),
		Action: func(c *cli.Context) error {
			s, ok := style.Lookup(c.String("style"))
			if !ok {
				return cli.Exit(fmt.Sprintf("unknown style %q; choose one of: %s",
					c.String("style"), strings.Join(style.Names(), ", ")), 2)
			}
			return st.generate(c, s)
		},
	}
}

func (st *state) pickCommand() *cli.Command {
	return &cli.Command{
		Name:  "pick",
		Usage: "choose a style interactively, then render it",
		Flags: renderFlags(),
		Action: func(c *cli.Context) error {
			s, err := st.picker.Pick(c.Context, style.Catalog())
			if err != nil {
				return err
			}
			return st.generate(c, s)
		},
	}
}

// generate renders s using the render flags on c and writes the result.
func (st *state) generate(c *cli.Context, s style.Style) error {
	width, height := st.cfg.Full.Width, st.cfg.Full.Height
	if c.Bool("thumb") {
		width, height = st.cfg.Thumb.Width, st.cfg.Thumb.Height
	}
	if c.IsSet("width") {
		width = c.Int("width")
	}
	if c.IsSet("height") {
		height = c.Int("height")
	}
	if width <= 0 || height <= 0 {
		return cli.Exit(fmt.Sprintf("invalid size %dx%d", width, height), 2)
	}

	var opts []wallpaper.Option
	if c.IsSet("seed") {
		opts = append(opts, wallpaper.WithSeed(c.Uint64("seed")))
	}

	output := c.String("output")
	if output == "" {
		output = style.Filename(st.cfg.Prefix, s, time.Now())
	}

	start := time.Now()
	surface := wallpaper.Render(s, width, height, opts...)
	st.log.Debug("rendered", "style", s.Name(), "width", width, "height", height, "elapsed", time.Since(start))

	if err := export.Write(output, surface.Image()); err != nil {
		return err
	}
	st.log.Info("wrote wallpaper", "style", s.Name(), "path", output)
	fmt.Fprintln(c.App.Writer, output)
	return nil
}

func (st *state) galleryCommand() *cli.Command {
	return &cli.Command{
		Name:  "gallery",
		Usage: "render every style as a contact sheet and/or thumbnail files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "contact sheet file; defaults to <prefix>_sheet.png unless --dir is given",
			},
			&cli.StringFlag{Name: "dir", Usage: "directory for one thumbnail per style"},
			&cli.IntFlag{Name: "columns", Usage: "sheet columns (default from config)"},
			&cli.Uint64Flag{Name: "seed", Usage: "seed for reproducible thumbnails"},
		},
		Action: func(c *cli.Context) error {
			output, dir := c.String("output"), c.String("dir")
			if output == "" && dir == "" {
				output = st.cfg.Prefix + "_sheet.png"
			}

			opts := gallery.Options{
				Width:   st.cfg.Thumb.Width,
				Height:  st.cfg.Thumb.Height,
				Workers: st.cfg.Gallery.Workers,
			}
			if c.IsSet("seed") {
				seed := c.Uint64("seed")
				opts.Seed = &seed
			}

			start := time.Now()
			thumbs, err := gallery.Build(c.Context, style.Catalog(), opts)
			if err != nil {
				return fmt.Errorf("build thumbnails: %w", err)
			}
			st.log.Info("rendered thumbnails", "count", len(thumbs), "elapsed", time.Since(start))

			if dir != "" {
				for _, t := range thumbs {
					path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", st.cfg.Prefix, t.Style.Slug()))
					if err := export.Write(path, t.Image); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, path)
				}
			}

			if output == "" {
				return nil
			}
			columns := st.cfg.Gallery.Columns
			if c.IsSet("columns") {
				columns = c.Int("columns")
			}
			sheet, err := gallery.Sheet(thumbs, gallery.SheetOptions{
				Columns:  columns,
				FontPath: st.cfg.Gallery.Font,
			})
			if err != nil {
				return fmt.Errorf("contact sheet: %w", err)
			}
			if err := export.Write(output, sheet); err != nil {
				return err
			}
			st.log.Info("wrote contact sheet", "path", output)
			fmt.Fprintln(c.App.Writer, output)
			return nil
		},
	}
}

func (st *state) serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "start the web gallery",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Usage:   "listen address (default from config)",
				EnvVars: []string{"FLUF_LISTEN"},
			},
			&cli.BoolFlag{Name: "open", Usage: "open the gallery in a browser"},
		},
		Action: func(c *cli.Context) error {
			cfg := st.cfg
			if c.IsSet("listen") {
				cfg.Server.Listen = c.String("listen")
			}
			if c.IsSet("open") {
				cfg.Server.OpenBrowser = c.Bool("open")
			}
			return server.RunServe(c.Context, cfg, st.log)
		},
	}
}
