package posting

// TikTokProfile returns the posting profile for the TikTok Android app.
//
// TikTok's create flow is single-step: + opens the record screen directly,
// with an Upload affordance next to the record button. The record screen's
// mode labels ("Photo", "60s", "Templates") collide with composer text, and
// the final button reads "Post", same as the bottom nav tab. Video only.
func TikTokProfile() *Profile {
	return &Profile{
		Name:           "tiktok",
		Package:        "com.zhiliaoapp.musically",
		DeviceMediaDir: "/sdcard/DCIM/AutoPost/",

		SuccessPhrases: []string{
			"posted",
			"post shared",
			"your video has been posted",
			"video posted",
		},
		CreateMenuTokens: []string{"create", "photo", "60s", "templates"},
		FlowRootMarkers:  []string{"record", "camera", "flip", "speed", "effects", "templates"},

		Intents: map[Intent][]Selector{
			IntentCreatePost: concat(
				anyDesc("Create"),
				anyID("create", "post"),
				[]Selector{{Class: "ImageButton", Desc: "Create"}},
			),
			IntentUpload: concat(
				anyText("Upload"),
				anyDesc("Upload", "Gallery", "album", "library", "photo"),
				anyID("upload"),
				anyText("Gallery"),
				[]Selector{
					{ID: "gallery", Clickable: true},
					{ID: "album", Clickable: true},
					{ID: "choose", Clickable: true},
					{ID: "media", Clickable: true},
				},
			),
			IntentNextOrSkip: concat(
				// vn0 is the obfuscated id of the trim screen's Next button.
				anyID("vn0"),
				anyText("Next", "Continue", "Done", "Skip"),
				anyDesc("Next", "Continue", "Done", "Skip"),
				anyID("next"),
			),
			IntentCaptionInput: []Selector{
				{ID: "caption"},
				{ID: "desc", Class: "EditText"},
				{Hint: "caption", Class: "EditText"},
				{Hint: "description", Class: "EditText"},
				{Class: "android.widget.EditText"},
			},
			IntentShare: concat(
				anyText("Post", "Publish"),
				anyDesc("Post", "Publish"),
				anyID("post", "publish"),
			),
		},
		MenuOptions: concat(
			anyText("Upload"),
			anyDesc("Upload"),
		),
		GalleryMarkers: concat(
			anyDesc("Gallery"),
			anyID("gallery"),
			anyText("Gallery", "Recent"),
		),
		ProfileMarkers: concat(
			anyDesc("Create"),
			anyDesc("Profile", "Me"),
		),

		VideoOnly: true,

		HintRules: []HintRule{
			{Any: []string{"next", "done", "continue"}, Action: ActionTapNextOrSkip},
			{Any: []string{"upload", "gallery", "album"}, Action: ActionTapUpload},
		},

		FallbackTaps: map[ScreenState][]RelPoint{
			StateCreateMenu: {{X: 0.85, Y: 0.88}},
			StateGallery:    {{X: 0.2, Y: 0.35}},
			StateTrimEdit:   {{X: 0.9, Y: 0.92}},
			StateShareReady: {
				{X: 0.85, Y: 0.08},
				{X: 0.5, Y: 0.92},
				{X: 0.85, Y: 0.5},
			},
		},
	}
}

// ProfileFor returns the profile registered under the platform name.
func ProfileFor(platform string) (*Profile, bool) {
	switch platform {
	case "instagram":
		return InstagramProfile(), true
	case "tiktok":
		return TikTokProfile(), true
	default:
		return nil, false
	}
}
