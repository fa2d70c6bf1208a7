package ui

import (
	"context"
	"fmt"
	"os"

	"voicechess/src"
	"voicechess/src/logx"
	"voicechess/src/policy"
	clic "voicechess/ui/cli"
	"voicechess/ui/cli/cliconf"

	"github.com/urfave/cli/v3"
)

const logfile string = "voicechess.log"

func getLogger(file *os.File, level string, console bool) *logx.Logx {
	return logx.New(file, logx.LevelByString(level), console)
}

// RunVoiceChess builds the command tree and runs the interactive game.
func RunVoiceChess() error {
	lf := &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Usage:   "opponent difficulty: easy, medium, hard",
	}
	bf := &cli.BoolFlag{
		Name:    "black",
		Aliases: []string{"b"},
		Usage:   "play the black pieces",
	}
	tf := &cli.StringFlag{
		Name:  "theme",
		Usage: "board glyphs: unicode or ascii",
	}
	cf := &cli.StringFlag{
		Name:  "config",
		Usage: "path to config file",
	}
	df := &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "console log encoding with debug level",
	}
	rf := &cli.BoolFlag{
		Name:  "raw",
		Usage: "raw terminal mode with arrow-key undo/redo",
	}
	sf := &cli.BoolFlag{
		Name:  "save",
		Usage: "persist the effective settings to the config file",
	}

	play := func(ctx context.Context, c *cli.Command) error {
		conf, err := cliconf.Load(c.String("config"))
		if err != nil {
			fmt.Printf("error read config: %v\n", err)
			return nil
		}
		if c.String("level") != "" {
			conf.Level = c.String("level")
		}
		if c.String("theme") != "" {
			conf.Theme = c.String("theme")
		}
		if c.Bool("debug") {
			conf.Debug = true
			conf.LogLevel = "debug"
		}
		if c.Bool("black") {
			conf.PlayWhite = false
		}
		if c.Bool("save") {
			if err := conf.Save(c.String("config")); err != nil {
				fmt.Printf("error save config: %v\n", err)
			}
		}

		file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fmt.Printf("error open logfile: %v\n", err)
			return nil
		}
		defer file.Close()
		logger := getLogger(file, conf.LogLevel, conf.Debug)
		defer logger.Sync() //nolint:errcheck

		level, err := policy.ParseDifficulty(conf.Level)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return nil
		}

		session := src.NewSession(logger)
		session.SetHumanWhite(conf.PlayWhite)
		session.Reset(level)

		clic.EnableANSI()
		cl := clic.NewCLI(session, clic.NewPrinter(conf.Theme))

		// the policy moves first when the human takes black
		if !conf.PlayWhite {
			session.OpponentMove()
		}

		if c.Bool("raw") {
			err = cl.Run()
		} else {
			err = cl.RunLineMode()
		}
		if err != nil {
			fmt.Printf("error voicechess: %v\n", err)
		}
		return nil
	}

	return (&cli.Command{
		Name:  "voicechess",
		Usage: "chess against a difficulty-tiered opponent",
		Flags: []cli.Flag{lf, bf, tf, cf, df, rf, sf},
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "start an interactive game",
				Flags:  []cli.Flag{lf, bf, tf, cf, df, rf, sf},
				Action: play,
			},
		},
		Action: play,
	}).Run(context.Background(), os.Args)
}
