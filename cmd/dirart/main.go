package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/bodgit/dirart"
	"github.com/bodgit/dirart/d64"
	"github.com/bodgit/dirart/directory"
	"github.com/bodgit/dirart/export"
	"github.com/bodgit/dirart/petscii"
	"github.com/hashicorp/go-hclog"
	"github.com/urfave/cli/v2"
)

const defaultDB = "dirart.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) hclog.Logger {
	level := hclog.Warn
	if c.Bool("verbose") {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "dirart",
		Level:      level,
		JSONFormat: c.Bool("log-json"),
		Output:     os.Stderr,
	})
}

func openDB(c *cli.Context) (*dirart.FrameDB, error) {
	return dirart.NewFrameDB(c.String("db"))
}

func encoder(c *cli.Context) (export.Encoder, error) {
	f, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}
	e, err := export.New(f)
	if err != nil {
		return nil, err
	}
	if a, ok := e.(*export.Assembler); ok {
		a.Width = c.Int("width")
		if c.Bool("decimal") {
			a.Number = export.Decimal
		}
	}
	return e, nil
}

func convert(c *cli.Context) error {
	logger := newLogger(c)

	var file string
	if c.NArg() > 0 {
		file = c.Args().First()
	}

	// The database is only needed without a source file
	var db *dirart.FrameDB
	if file == "" {
		var err error
		if db, err = openDB(c); err != nil {
			return cli.NewExitError(err, 1)
		}
		defer db.Close()
	}

	d := dirart.New(db, logger)

	f, err := d.Frame(file, c.String("frame"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	o := dirart.Options{
		Lines:          c.Int("lines"),
		LineLength:     c.Int("line-length"),
		Offset:         c.Int("offset"),
		DiskName:       c.String("disk-name"),
		DiskID:         c.String("disk-id"),
		KeepShiftSpace: c.Bool("keep-shift-space"),
	}

	out := dirart.Output{
		Image:  c.String("output"),
		Update: c.String("update"),
		Export: c.String("export"),
	}
	if out.Export != "" {
		if out.Encoder, err = encoder(c); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	if err := d.Convert(f, o, out); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func list(c *cli.Context) error {
	b, err := ioutil.ReadFile(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	img, err := d64.Load(b)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	l, err := directory.ReadTrack(img.DirectoryTrack())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Fprintf(c.App.Writer, "0 \"%-16s\" %s\n", petscii.Decode(l.Name), petscii.Decode(l.ID))
	tw := tabwriter.NewWriter(c.App.Writer, 0, 8, 1, ' ', 0)
	for _, e := range l.Entries {
		fmt.Fprintf(tw, "%d\t\"%s\"\t% x\n", e.Blocks, petscii.Decode(e.Name), e.Name)
	}
	return tw.Flush()
}

func main() {
	app := cli.NewApp()

	app.Name = "dirart"
	app.Usage = "PETSCII directory art to .d64 converter"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"DIRART_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to frame database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.BoolFlag{
			Name:  "log-json",
			Usage: "log as JSON",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "d64",
			Usage:       "Convert a frame to a .d64 directory",
			Description: "Reads FILE, or the frame database when FILE is omitted.",
			ArgsUsage:   "[FILE]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "frame",
					Aliases: []string{"f"},
					Value:   "frame0000",
					Usage:   "frame name",
				},
				&cli.IntFlag{
					Name:    "lines",
					Aliases: []string{"l"},
					Usage:   "number of lines (default: frame height)",
				},
				&cli.IntFlag{
					Name:    "line-length",
					Aliases: []string{"n"},
					Value:   16,
					Usage:   "line length",
				},
				&cli.IntFlag{
					Name:  "offset",
					Usage: "first column of each line",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output .d64 file",
				},
				&cli.StringFlag{
					Name:  "update",
					Usage: "existing .d64 file to update",
				},
				&cli.StringFlag{
					Name:  "disk-name",
					Usage: "disk name (default: shift-space, or kept when updating)",
				},
				&cli.StringFlag{
					Name:  "disk-id",
					Usage: "disk id (default: shift-space, or kept when updating)",
				},
				&cli.BoolFlag{
					Name:  "keep-shift-space",
					Value: true,
					Usage: "pass screen code 0xa0 through as shift-space",
				},
				&cli.StringFlag{
					Name:    "export",
					Aliases: []string{"e"},
					Usage:   "write filenames to this text file",
				},
				&cli.StringFlag{
					Name:  "format",
					Value: export.Loader.String(),
					Usage: "export format: loader, tass or kickass",
				},
				&cli.IntFlag{
					Name:  "width",
					Value: 16,
					Usage: "truncate assembler filenames to this width",
				},
				&cli.BoolFlag{
					Name:  "decimal",
					Usage: "write assembler bytes as decimal",
				},
			},
			Action: func(c *cli.Context) error {
				if c.String("output") == "" && c.String("export") == "" {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				return convert(c)
			},
		},
		{
			Name:        "import",
			Usage:       "Import frames from a PETSCII editor .c file",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				db, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				n, err := db.Import(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				logger.Info("imported", "file", c.Args().First(), "frames", n)

				return nil
			},
		},
		{
			Name:        "frames",
			Usage:       "List frames in the database",
			Description: "",
			Action: func(c *cli.Context) error {
				db, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				frames, err := db.Frames()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				tw := tabwriter.NewWriter(c.App.Writer, 0, 8, 1, ' ', 0)
				for _, f := range frames {
					fmt.Fprintf(tw, "%s/%s\t%dx%d\n", f.Source, f.Name, f.Width, f.Height)
				}
				return tw.Flush()
			},
		},
		{
			Name:        "list",
			Usage:       "List the directory of a .d64 file",
			Description: "",
			ArgsUsage:   "IMAGE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				return list(c)
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
