// Package posting implements the screen-state machine that drives a social
// app's composer UI: observe the screen, classify it, act, re-observe, until
// the post is shared or a budget runs out.
package posting

// ScreenState is the classification of the current UI phase.
// Exactly one state is current per observation; StateUnknown is the explicit
// "could not decide" value and is never silently mapped to another state.
type ScreenState string

const (
	StateProfile         ScreenState = "profile"
	StateCreateMenu      ScreenState = "create_menu"       // + menu: Upload / Camera / record
	StateCreateFirstMenu ScreenState = "create_first_menu" // Post | Story | Reel | Live
	StateCreatePostMenu  ScreenState = "create_post_menu"  // Gallery | Photo (after picking Post)
	StateGallery         ScreenState = "gallery"
	StateTrimEdit        ScreenState = "trim_edit" // crop/trim/filter steps with a Next affordance
	StateCaptionScreen   ScreenState = "caption_screen"
	StateShareReady      ScreenState = "share_ready"
	StateSuccess         ScreenState = "success"
	StateUnknown         ScreenState = "unknown"
)

// Intent is a named abstract element request, resolved fresh against the
// live snapshot each step.
type Intent string

const (
	IntentCreatePost   Intent = "create_post"
	IntentPostOption   Intent = "post_option"
	IntentUpload       Intent = "upload_or_gallery"
	IntentFirstMedia   Intent = "first_media"
	IntentAddMore      Intent = "add_more"
	IntentNextOrSkip   Intent = "next_or_skip"
	IntentCaptionInput Intent = "caption_input"
	IntentShare        Intent = "share"
)

// Action is what the machine does for a given state.
type Action string

const (
	ActionTapCreate     Action = "tap_create_post"
	ActionTapPostOption Action = "tap_post_option"
	ActionTapUpload     Action = "tap_upload_or_gallery"
	ActionTapFirstMedia Action = "tap_first_media"
	ActionTapNextOrSkip Action = "tap_next_or_skip"
	ActionFillAndShare  Action = "fill_caption_then_share"
	ActionDone          Action = "done"
	ActionRetry         Action = "retry_or_fallback"
)

// ActionForState returns the next action for the given state.
// This is a fixed dispatch table; per-state element lookup happens later.
func ActionForState(state ScreenState) Action {
	switch state {
	case StateProfile:
		return ActionTapCreate
	case StateCreateFirstMenu:
		return ActionTapPostOption
	case StateCreateMenu, StateCreatePostMenu:
		return ActionTapUpload
	case StateGallery:
		return ActionTapFirstMedia
	case StateTrimEdit:
		return ActionTapNextOrSkip
	case StateCaptionScreen, StateShareReady:
		return ActionFillAndShare
	case StateSuccess:
		return ActionDone
	default:
		return ActionRetry
	}
}

// intentForAction maps single-tap actions back to the element intent they need.
func intentForAction(a Action) (Intent, bool) {
	switch a {
	case ActionTapCreate:
		return IntentCreatePost, true
	case ActionTapPostOption:
		return IntentPostOption, true
	case ActionTapUpload:
		return IntentUpload, true
	case ActionTapFirstMedia:
		return IntentFirstMedia, true
	case ActionTapNextOrSkip:
		return IntentNextOrSkip, true
	default:
		return "", false
	}
}
