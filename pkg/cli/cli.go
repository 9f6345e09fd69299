// Package cli provides the command-line interface for autopost.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Workspace directory containing config.yaml",
		Value:   ".",
		EnvVars: []string{"AUTOPOST_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "account",
		Aliases: []string{"a"},
		Usage:   "Account id (overrides config)",
		EnvVars: []string{"AUTOPOST_ACCOUNT"},
	},
	&cli.StringFlag{
		Name:    "platform",
		Usage:   "Target platform (instagram, tiktok)",
		EnvVars: []string{"AUTOPOST_PLATFORM"},
	},
	&cli.StringFlag{
		Name:    "device",
		Usage:   "ADB serial of the device to drive (empty = auto-detect)",
		EnvVars: []string{"AUTOPOST_DEVICE"},
	},
	&cli.StringFlag{
		Name:    "appium-url",
		Usage:   "Appium server URL",
		EnvVars: []string{"APPIUM_URL"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging",
		EnvVars: []string{"AUTOPOST_VERBOSE"},
	},
}

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "autopost",
		Usage:   "Android social posting and account warm-up automation",
		Version: Version,
		Description: `Autopost drives a real Android device over ADB and Appium to
warm up fresh accounts and publish queued posts.

Examples:
  autopost warmup
  autopost queue add --media photo.jpg --caption "hello"
  autopost post --media clip.mp4 --caption "new video"
  autopost serve --listen 127.0.0.1:8787`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			warmupCommand,
			postCommand,
			queueCommand,
			serveCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
