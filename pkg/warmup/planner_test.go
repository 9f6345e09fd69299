package warmup

import (
	"testing"
	"time"

	"github.com/UniversalLevi/InstagramAutomation/pkg/config"
)

func planInput(ageDays int) PlanInput {
	today := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	return PlanInput{
		FirstRunDate: today.AddDate(0, 0, -(ageDays - 1)),
		Today:        today,
	}
}

func TestBuildPlanCooldownBlocks(t *testing.T) {
	cfg := config.Default()
	in := planInput(5)
	in.InCooldown = true
	if plan := BuildPlan(in, cfg.Limits, cfg.Warmup); plan != nil {
		t.Fatal("plan built for an account in cooldown")
	}
}

func TestBuildPlanOneSessionPerDay(t *testing.T) {
	cfg := config.Default()
	in := planInput(5)
	in.LastRunDate = &in.Today
	if plan := BuildPlan(in, cfg.Limits, cfg.Warmup); plan != nil {
		t.Fatal("second session planned on the same day")
	}

	yesterday := in.Today.AddDate(0, 0, -1)
	in.LastRunDate = &yesterday
	if plan := BuildPlan(in, cfg.Limits, cfg.Warmup); plan == nil {
		t.Fatal("no plan for a new day")
	}
}

func TestBuildPlanActionBudgetExhausted(t *testing.T) {
	cfg := config.Default()
	in := planInput(5)
	in.ActionsToday = cfg.Limits.MaxActionsPerDay
	if plan := BuildPlan(in, cfg.Limits, cfg.Warmup); plan != nil {
		t.Fatal("plan built with no action budget left")
	}
}

func countLikes(p *Plan) int {
	n := 0
	for _, it := range p.Items {
		if it.Action == ActionLikePost {
			n++
		}
	}
	return n
}

func TestBuildPlanDayBandCapsLikes(t *testing.T) {
	cfg := config.Default()

	// Day 1 band allows a single like regardless of the config ask.
	young := BuildPlan(planInput(1), cfg.Limits, cfg.Warmup)
	if young == nil {
		t.Fatal("no plan for day 1")
	}
	if got := countLikes(young); got > 1 {
		t.Errorf("day 1 plan has %d likes, band allows 1", got)
	}

	older := BuildPlan(planInput(10), cfg.Limits, cfg.Warmup)
	if older == nil {
		t.Fatal("no plan for day 10")
	}
	if got := countLikes(older); got > 3 {
		t.Errorf("day 10 plan has %d likes, band allows 3", got)
	}
}

func TestBuildPlanFirstTwoWeeksLikeCap(t *testing.T) {
	cfg := config.Default()
	in := planInput(10)
	in.LikesToday = cfg.Limits.MaxLikesFirstTwoWeeks

	plan := BuildPlan(in, cfg.Limits, cfg.Warmup)
	if plan == nil {
		t.Fatal("no plan")
	}
	if got := countLikes(plan); got != 0 {
		t.Errorf("plan has %d likes with the daily cap already spent", got)
	}
}

func TestBuildPlanBioEditWindow(t *testing.T) {
	cfg := config.Default()

	hasBioEdit := func(p *Plan) bool {
		for _, it := range p.Items {
			if it.Action == ActionBioEdit {
				return true
			}
		}
		return false
	}

	if p := BuildPlan(planInput(5), cfg.Limits, cfg.Warmup); p == nil || hasBioEdit(p) {
		t.Error("bio edit planned before day 8")
	}
	if p := BuildPlan(planInput(10), cfg.Limits, cfg.Warmup); p == nil || !hasBioEdit(p) {
		t.Error("bio edit missing in the day 8-14 window")
	}

	in := planInput(10)
	in.BioEditDone = true
	if p := BuildPlan(in, cfg.Limits, cfg.Warmup); p == nil || hasBioEdit(p) {
		t.Error("bio edit planned twice")
	}
	if p := BuildPlan(planInput(20), cfg.Limits, cfg.Warmup); p == nil || hasBioEdit(p) {
		t.Error("bio edit planned after the window")
	}
}

func TestBuildPlanEndsOnOwnProfile(t *testing.T) {
	cfg := config.Default()
	for _, age := range []int{1, 5, 10, 30} {
		plan := BuildPlan(planInput(age), cfg.Limits, cfg.Warmup)
		if plan == nil || len(plan.Items) == 0 {
			t.Fatalf("age %d: empty plan", age)
		}
		if last := plan.Items[len(plan.Items)-1].Action; last != ActionGoOwnProfile {
			t.Errorf("age %d: last action %s, want %s", age, last, ActionGoOwnProfile)
		}
	}
}

func TestShufflePlanKeepsLastItem(t *testing.T) {
	cfg := config.Default()
	plan := BuildPlan(planInput(10), cfg.Limits, cfg.Warmup)
	if plan == nil {
		t.Fatal("no plan")
	}

	rnd := NewSeededRand(42)
	rnd.ShufflePlan(plan)
	if last := plan.Items[len(plan.Items)-1].Action; last != ActionGoOwnProfile {
		t.Errorf("shuffle moved the closing action: %s", last)
	}
}
