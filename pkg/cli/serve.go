package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/UniversalLevi/InstagramAutomation/pkg/logger"
	"github.com/UniversalLevi/InstagramAutomation/pkg/scheduler"
	"github.com/UniversalLevi/InstagramAutomation/pkg/web"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Run the scheduler and control API until interrupted",
	Description: `Start the background scheduler, which publishes due posts from the
queue, together with the local HTTP control API.

Examples:
  autopost serve
  autopost serve --listen 0.0.0.0:8787`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Usage:   "Control API listen address",
			Value:   "127.0.0.1:8787",
			EnvVars: []string{"AUTOPOST_LISTEN"},
		},
	},
	Action: runServe,
}

func runServe(c *cli.Context) error {
	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	if _, err := ws.st.EnsureAccount(ws.cfg.Account, ws.cfg.Device.AdbSerial); err != nil {
		return err
	}

	svc, err := scheduler.New(ws.cfg, ws.q, ws.st)
	if err != nil {
		return err
	}
	svc.Start()
	defer svc.Stop()

	srv := web.New(ws.cfg, ws.q, ws.st, svc)
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Start(c.String("listen")) }()

	fmt.Printf("Serving on %s (account %s, platform %s). Ctrl+C to stop.\n",
		c.String("listen"), ws.cfg.Account, ws.cfg.App.Platform)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-serveErr:
		return err
	case sig := <-sigCh:
		logger.Info("received %v, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http shutdown: %v", err)
	}
	return nil
}
