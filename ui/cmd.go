package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"multiverse/src/base"
	"multiverse/src/convert/convsnap"
	"multiverse/src/logx"
	clic "multiverse/ui/cli"
	"multiverse/ui/gui"
	"multiverse/ui/gui/gbase"
	"multiverse/ui/gui/gbase/gconf"
	"multiverse/ui/gui/gwatch"
)

const logfile string = "multiverse.log"

func GetLogger(file *os.File, c *cli.Command) *logx.Logx {
	return logx.NewLogx(logx.Options{
		Level:   c.String("level"),
		Dev:     c.Bool("debug"),
		Console: c.Bool("console"),
	}, file)
}

// loadConfig reads the config file and lays the command line over it
func loadConfig(c *cli.Command) (*gconf.Config, error) {
	cfg, err := gconf.NewGUIConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("labels") {
		cfg.ShowLabels = c.Bool("labels")
	}
	if c.IsSet("copy") {
		cfg.CopyOnClick = c.Bool("copy")
	}
	if c.IsSet("assets") {
		cfg.AssetsDir = c.String("assets")
	}
	if theme := c.String("theme"); theme != "" {
		switch strings.ToLower(filepath.Ext(theme)) {
		case ".yaml", ".yml":
			cfg.ThemeFile = theme
		default:
			cfg.Theme = string(gbase.ThemeFromString(theme))
			cfg.ThemeFile = ""
		}
	}
	return cfg, nil
}

// loadSnapshot reads path, folding phantom boards in when asked
func loadSnapshot(path string, phantom bool) (*base.Snapshot, error) {
	s, err := convsnap.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error read snapshot %s: %w", path, err)
	}
	if phantom {
		s.MergePhantom(gbase.TokenHighlightPhantomBoard, gbase.TokenHighlightCheck)
	}
	return s, nil
}

func RunGUI(ctx context.Context, c *cli.Command) error {
	file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("error open logfile: %w", err)
	}
	defer file.Close()
	l := GetLogger(file, c)
	defer l.Sync() //nolint:errcheck

	cfg, err := loadConfig(c)
	if err != nil {
		l.Errorf("error config: %v", err)
		return err
	}
	g, err := gui.NewGUI(cfg, l)
	if err != nil {
		l.Errorf("error init GUI: %v", err)
		return fmt.Errorf("error init GUI: %w", err)
	}
	g.Phantom = c.Bool("phantom")

	snapshot := c.String("snapshot")
	if snapshot != "" {
		s, err := loadSnapshot(snapshot, c.Bool("phantom"))
		if err != nil {
			return err
		}
		g.Push(s)
	}

	if c.Bool("watch") && (snapshot != "" || cfg.ThemeFile != "") {
		w, err := gwatch.New(l.Named("watch"))
		if err != nil {
			return err
		}
		defer w.Close()
		if err := g.Follow(ctx, w, snapshot, cfg.ThemeFile); err != nil {
			return err
		}
	}

	l.Infof("starting GUI %dx%d theme=%s", cfg.WindowW, cfg.WindowH, cfg.Theme)
	return g.Run(ctx)
}

func RunDump(c *cli.Command) error {
	path := c.String("snapshot")
	if path == "" {
		path = c.Args().First()
	}
	if path == "" {
		return fmt.Errorf("dump: snapshot file required")
	}
	s, err := loadSnapshot(path, c.Bool("phantom"))
	if err != nil {
		return err
	}

	tty := clic.DetectTerminal(os.Stdout)
	color := tty.IsTTY && !c.Bool("plain")
	if color {
		clic.EnableANSI()
	}
	return clic.Dump(os.Stdout, s, clic.DumpOptions{
		Width:   tty.Width,
		Color:   color,
		Unicode: c.Bool("unicode"),
	})
}

func RunMultiverse() error {
	df := &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "enable debug mod",
	}
	lf := &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Value:   "info",
		Usage:   "logger level",
	}
	cf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console logger encoding",
	}
	sf := &cli.StringFlag{
		Name:    "snapshot",
		Aliases: []string{"s"},
		Usage:   "path to snapshot JSON",
	}
	pf := &cli.BoolFlag{
		Name:  "phantom",
		Usage: "show phantom boards and checks from the snapshot",
	}
	guiff := []cli.Flag{df, lf, cf, sf, pf,
		&cli.BoolFlag{
			Name:    "watch",
			Aliases: []string{"w"},
			Usage:   "reload snapshot and theme files when they change",
		},
		&cli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "light, dark or a YAML theme file",
		},
		&cli.StringFlag{
			Name:  "config",
			Value: gconf.FileName,
			Usage: "path to config file",
		},
		&cli.StringFlag{
			Name:  "assets",
			Usage: "piece artwork directory",
		},
		&cli.BoolFlag{
			Name:  "labels",
			Usage: "layer/timeline labels",
		},
		&cli.BoolFlag{
			Name:  "copy",
			Usage: "copy clicked square to clipboard",
		},
	}
	dumpff := []cli.Flag{sf, pf,
		&cli.BoolFlag{
			Name:  "plain",
			Usage: "no ANSI colours",
		},
		&cli.BoolFlag{
			Name:    "unicode",
			Aliases: []string{"u"},
			Usage:   "chess glyphs for the classic pieces",
		},
	}

	return (&cli.Command{
		Name:  "multiverse",
		Usage: "multiverse chess board viewer",
		Commands: []*cli.Command{
			{
				Name:  "gui",
				Usage: "open the board view",
				Flags: guiff,
				Action: func(ctx context.Context, c *cli.Command) error {
					return RunGUI(ctx, c)
				},
			},
			{
				Name:      "dump",
				Usage:     "print a snapshot to the terminal",
				ArgsUsage: "[snapshot.json]",
				Flags:     dumpff,
				Action: func(ctx context.Context, c *cli.Command) error {
					return RunDump(c)
				},
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return RunGUI(ctx, c)
		},
	}).Run(context.Background(), os.Args)
}
