package main

import (
	"fmt"
	"os"

	"github.com/wippyai/sb1"
	"github.com/wippyai/sb1/archive"
	"go.uber.org/zap"
	"gopkg.in/urfave/cli.v1"
)

var (
	strictFlag = cli.BoolFlag{
		Name:  "strict",
		Usage: "Fail on impossible lengths and truncated sound data",
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "Log decoder debug events to stderr",
	}
	formatFlag = cli.StringFlag{
		Name:  "format",
		Usage: "Output format (json|yaml)",
		Value: "json",
	}
	rawFlag = cli.BoolFlag{
		Name:  "raw",
		Usage: "Include byte buffers and bitmap words instead of their sizes",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "Archive path (default: FILE with a .zip extension)",
	}
	methodFlag = cli.StringFlag{
		Name:  "method",
		Usage: "Archive compression (deflate|zstd|store)",
		Value: string(archive.Deflate),
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "sb1"
	app.Usage = "Inspect and extract legacy Scratch project files"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	app.Flags = []cli.Flag{strictFlag, verboseFlag}
	app.Before = setupLogging
	app.Commands = []cli.Command{
		{
			Name:      "info",
			Usage:     "Show the project header, metadata and asset counts",
			ArgsUsage: "FILE",
			Action:    infoCommand,
		},
		{
			Name:      "dump",
			Usage:     "Print the decoded object table",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{formatFlag, rawFlag},
			Action:    dumpCommand,
		},
		{
			Name:      "extract",
			Usage:     "Write costumes and sounds to a zip archive",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{outFlag, methodFlag},
			Action:    extractCommand,
		},
		{
			Name:      "inspect",
			Usage:     "Browse the object graph interactively",
			ArgsUsage: "FILE",
			Action:    inspectCommand,
		},
	}
	return app
}

func setupLogging(c *cli.Context) error {
	var (
		l   *zap.Logger
		err error
	)
	if c.GlobalBool(verboseFlag.Name) {
		l, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		l, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	sb1.SetLogger(l)
	archive.SetLogger(l.Named("archive"))
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
