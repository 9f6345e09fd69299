package cli

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/UniversalLevi/InstagramAutomation/pkg/device"
	"github.com/UniversalLevi/InstagramAutomation/pkg/driver/appium"
	"github.com/UniversalLevi/InstagramAutomation/pkg/logger"
	"github.com/UniversalLevi/InstagramAutomation/pkg/posting"
	"github.com/UniversalLevi/InstagramAutomation/pkg/warmup"
)

var warmupCommand = &cli.Command{
	Name:  "warmup",
	Usage: "Run today's warm-up session for the account",
	Description: `Build and run today's warm-up plan: feed scrolling, a few likes,
profile visits, scaled to the account's age. Does nothing when the
account already ran today or is in cooldown.

Examples:
  autopost warmup
  autopost warmup --dry-run
  autopost -a myaccount warmup`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Print the plan without touching a device",
		},
	},
	Action: runWarmup,
}

func runWarmup(c *cli.Context) error {
	ws, err := openWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Close()

	profile, ok := posting.ProfileFor(ws.cfg.App.Platform)
	if !ok {
		return fmt.Errorf("unknown platform %q", ws.cfg.App.Platform)
	}
	if ws.cfg.App.Package != "" {
		profile.Package = ws.cfg.App.Package
	}

	acct, err := ws.st.EnsureAccount(ws.cfg.Account, ws.cfg.Device.AdbSerial)
	if err != nil {
		return err
	}

	today := time.Now().UTC()
	actions, likes, err := ws.st.DailyTotals(acct.ID, today)
	if err != nil {
		return err
	}
	inCooldown, err := ws.st.InCooldown(acct.ID)
	if err != nil {
		return err
	}

	plan := warmup.BuildPlan(warmup.PlanInput{
		FirstRunDate: acct.FirstRunDate,
		LastRunDate:  acct.LastRunDate,
		Today:        today,
		ActionsToday: actions,
		LikesToday:   likes,
		BioEditDone:  acct.BioEditDone,
		InCooldown:   inCooldown,
	}, ws.cfg.Limits, ws.cfg.Warmup)

	if plan == nil {
		fmt.Printf("No session today for %s (already ran, in cooldown, or out of budget)\n", acct.ID)
		return nil
	}

	fmt.Printf("Warm-up plan for %s (day %d): %d actions\n", acct.ID, acct.AgeDays(today), len(plan.Items))
	for i, item := range plan.Items {
		fmt.Printf("  %2d. %s\n", i+1, item.Action)
	}
	if c.Bool("dry-run") {
		return nil
	}

	adb, err := device.New(ws.cfg.Device.AdbSerial)
	if err != nil {
		return err
	}
	session, err := appium.NewSession(appium.Options{
		ServerURL:  ws.cfg.Device.AppiumURL,
		AppPackage: profile.Package,
		AdbSerial:  adb.Serial(),
		Adb:        adb,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	logger.Info("warm-up starting for %s on %s", acct.ID, adb.Serial())
	runner := warmup.NewRunner(session, ws.st, warmup.NewRand(), ws.cfg.Limits)
	if err := runner.RunSession(acct.ID, plan); err != nil {
		return err
	}
	fmt.Println("Warm-up session complete")
	return nil
}
