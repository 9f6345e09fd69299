package posting

// InstagramProfile returns the posting profile for the Instagram Android app.
//
// Instagram's create flow is two-step: the + button opens a Post|Story|Reel
// menu, picking Post opens a Gallery|Photo menu, then the picker. Captions
// and the Share button live on the final composer screen.
func InstagramProfile() *Profile {
	return &Profile{
		Name:           "instagram",
		Package:        "com.instagram.android",
		DeviceMediaDir: "/sdcard/DCIM/AutoPost/",

		SuccessPhrases: []string{
			"your post has been shared",
			"post shared",
			"shared to your",
		},
		CreateMenuTokens: []string{"story", "reel", "live"},
		FlowRootMarkers:  []string{"gallery", "caption", "filter", "crop"},
		FirstMenuTokens:  []string{"story", "reel"},

		Intents: map[Intent][]Selector{
			IntentCreatePost: concat(
				anyDesc("New post", "Create", "Add"),
				anyID("action_bar", "tab_bar"),
				[]Selector{{Class: "ImageButton", Desc: "New"}},
			),
			IntentPostOption: []Selector{
				{Text: "Post"},
				{Desc: "Post"},
			},
			IntentUpload: concat(
				anyDesc("Gallery"),
				anyID("gallery"),
				anyText("Gallery", "Photo"),
			),
			IntentAddMore: concat(
				anyText("Add more", "Add photo", "Add"),
				anyDesc("Add more", "Add"),
				anyID("add"),
			),
			IntentNextOrSkip: concat(
				anyText("Next", "Continue", "Done", "Skip"),
				anyDesc("Next", "Continue", "Done", "Skip"),
				anyID("next"),
			),
			IntentCaptionInput: []Selector{
				{ID: "caption"},
				{ID: "row_caption", Class: "EditText"},
				{Hint: "caption", Class: "EditText"},
				{Class: "android.widget.EditText"},
			},
			IntentShare: concat(
				anyText("Share", "Post"),
				anyDesc("Share", "Post"),
				anyID("share", "post"),
			),
		},
		MenuOptions: concat(
			anyText("Photo", "Reel"),
			anyDesc("Photo", "Reel"),
		),
		GalleryMarkers: concat(
			anyDesc("Gallery"),
			anyID("gallery"),
			anyText("Gallery"),
		),
		ProfileMarkers: concat(
			anyDesc("New post", "Create"),
			anyDesc("Profile"),
		),

		TwoStepCreateMenu: true,
		SupportsCarousel:  true,

		HintRules: []HintRule{
			{Any: []string{"next", "done", "continue"}, Action: ActionTapNextOrSkip},
			{Any: []string{"gallery"}, Action: ActionTapUpload},
		},

		// Positions observed stable across recent app versions; used only
		// after every selector strategy for the state came up empty.
		FallbackTaps: map[ScreenState][]RelPoint{
			StateProfile:         {{X: 0.12, Y: 0.08}},
			StateCreateFirstMenu: {{X: 0.5, Y: 0.4}},
			StateCreatePostMenu:  {{X: 0.5, Y: 0.35}},
			StateGallery:         {{X: 0.2, Y: 0.35}},
			StateTrimEdit: {
				{X: 0.9, Y: 0.92},
				{X: 0.5, Y: 0.92},
				{X: 0.85, Y: 0.88},
			},
			StateShareReady: {
				{X: 0.85, Y: 0.08},
				{X: 0.5, Y: 0.92},
				{X: 0.85, Y: 0.5},
				{X: 0.9, Y: 0.12},
			},
		},
	}
}
