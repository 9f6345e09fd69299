// Package warmup builds and runs the daily warm-up session: a short burst of
// human-looking activity that ages a fresh account before it starts posting.
package warmup

import (
	"time"

	"github.com/UniversalLevi/InstagramAutomation/pkg/config"
)

// ActionType is one abstract warm-up action.
type ActionType string

const (
	ActionScrollFeed    ActionType = "scroll_feed"
	ActionVisitProfile  ActionType = "visit_profile"
	ActionLikePost      ActionType = "like_post"
	ActionReturnHome    ActionType = "return_home"
	ActionGoOwnProfile  ActionType = "go_to_own_profile"
	ActionIdle          ActionType = "idle"
	ActionSearchHashtag ActionType = "search_hashtag"
	ActionBioEdit       ActionType = "bio_edit"
)

// PlanItem is one planned action with its parameters.
type PlanItem struct {
	Action ActionType
	// ScrollSec applies to scroll actions.
	ScrollSec int
}

// Plan is one session's ordered action list plus its caps.
type Plan struct {
	Items             []PlanItem
	MaxSessionMinutes int
	MaxTotalActions   int
	MaxLikes          int
}

// DayBand is a warm-up phase keyed by days since the account's first run.
// Younger accounts get shorter, quieter sessions.
type DayBand struct {
	MinDays, MaxDays           int
	ScrollMinSec, ScrollMaxSec int
	ProfilesMax                int
	LikesMax                   int
	SearchHashtag              bool
	BioEditAllowed             bool
}

// Day bands 1-3, 4-7, 8-14, 15+. The bio edit is only allowed in the second
// week, once ever.
var defaultDayBands = []DayBand{
	{MinDays: 1, MaxDays: 3, ScrollMinSec: 30, ScrollMaxSec: 60, ProfilesMax: 1, LikesMax: 1},
	{MinDays: 4, MaxDays: 7, ScrollMinSec: 30, ScrollMaxSec: 60, ProfilesMax: 3, LikesMax: 2, SearchHashtag: true},
	{MinDays: 8, MaxDays: 14, ScrollMinSec: 30, ScrollMaxSec: 60, ProfilesMax: 4, LikesMax: 3, SearchHashtag: true, BioEditAllowed: true},
	{MinDays: 15, MaxDays: 1 << 30, ScrollMinSec: 30, ScrollMaxSec: 60, ProfilesMax: 4, LikesMax: 3, SearchHashtag: true},
}

func bandForDay(daysSinceFirst int) DayBand {
	for _, b := range defaultDayBands {
		if daysSinceFirst >= b.MinDays && daysSinceFirst <= b.MaxDays {
			return b
		}
	}
	return defaultDayBands[len(defaultDayBands)-1]
}

// PlanInput is everything BuildPlan reads. Pure data so planning is
// deterministic and testable without a store or device.
type PlanInput struct {
	FirstRunDate time.Time
	LastRunDate  *time.Time
	Today        time.Time
	ActionsToday int
	LikesToday   int
	BioEditDone  bool
	InCooldown   bool
}

// BuildPlan builds today's session plan, or nil when no session should run:
// the account is in cooldown, or already ran today with one-session-per-day.
// Pure function of its inputs.
func BuildPlan(in PlanInput, limits config.LimitsConfig, warm config.WarmupConfig) *Plan {
	if in.InCooldown {
		return nil
	}
	if limits.OneSessionPerDay && in.LastRunDate != nil && sameDay(*in.LastRunDate, in.Today) {
		return nil
	}

	daysSinceFirst := int(in.Today.Sub(in.FirstRunDate).Hours()/24) + 1
	if daysSinceFirst < 1 {
		daysSinceFirst = 1
	}
	band := bandForDay(daysSinceFirst)

	maxLikes := band.LikesMax
	if daysSinceFirst <= 14 {
		remaining := limits.MaxLikesFirstTwoWeeks - in.LikesToday
		if remaining < maxLikes {
			maxLikes = remaining
		}
	}
	if maxLikes < 0 {
		maxLikes = 0
	}

	remainingActions := limits.MaxActionsPerDay - in.ActionsToday
	if remainingActions <= 0 {
		return nil
	}

	var items []PlanItem

	scrolls := warm.FeedScrollCount
	if scrolls < 1 {
		scrolls = 1
	}
	items = append(items, PlanItem{Action: ActionScrollFeed, ScrollSec: band.ScrollMinSec})

	likes := warm.LikeCount
	if likes > maxLikes {
		likes = maxLikes
	}
	for i := 0; i < likes; i++ {
		items = append(items, PlanItem{Action: ActionLikePost})
		if i < likes-1 && scrolls > 1 {
			items = append(items, PlanItem{Action: ActionScrollFeed, ScrollSec: band.ScrollMinSec})
		}
	}

	profiles := warm.VisitProfileCount
	if profiles > band.ProfilesMax {
		profiles = band.ProfilesMax
	}
	budget := remainingActions - len(items) - 2
	if profiles > budget {
		profiles = budget
	}
	for i := 0; i < profiles; i++ {
		items = append(items, PlanItem{Action: ActionVisitProfile}, PlanItem{Action: ActionReturnHome})
	}

	if band.BioEditAllowed && !in.BioEditDone {
		items = append(items, PlanItem{Action: ActionBioEdit})
	}

	// Own profile visit closes every session.
	items = append(items, PlanItem{Action: ActionGoOwnProfile})

	return &Plan{
		Items:             items,
		MaxSessionMinutes: limits.MaxSessionMinutes,
		MaxTotalActions:   remainingActions,
		MaxLikes:          maxLikes,
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
