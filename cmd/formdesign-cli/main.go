package main

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli"
)

var version = "devel"

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "formdesign"})
	app := newApp(os.Stdout, logger)
	if err := app.Run(os.Args); err != nil {
		logger.Fatal("command failed", "err", err)
	}
}

func newApp(stdout io.Writer, logger *log.Logger) *cli.App {
	app := cli.NewApp()
	app.Name = "formdesign"
	app.Usage = "inspect, rearrange and preview form designs"
	app.Version = version
	app.Writer = stdout

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "log-level",
			Value:  "info",
			Usage:  "log level (debug, info, warn, error)",
			EnvVar: "FORMDESIGN_LOG_LEVEL",
		},
	}
	app.Before = func(c *cli.Context) error {
		level, err := log.ParseLevel(strings.ToLower(c.GlobalString("log-level")))
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	}

	app.Commands = commands(logger)
	return app
}
