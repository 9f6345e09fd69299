package posting

import "testing"

func TestParsePageSource(t *testing.T) {
	elements, err := ParsePageSource(igShareReadyXML)
	if err != nil {
		t.Fatalf("ParsePageSource() error: %v", err)
	}
	if len(elements) != 5 {
		t.Fatalf("parsed %d elements, want 5", len(elements))
	}

	var caption, share *int
	for i, e := range elements {
		i := i
		switch {
		case e.ResourceID == "com.instagram.android:id/caption_text_view":
			caption = &i
		case e.Text == "Share":
			share = &i
		}
	}
	if caption == nil || share == nil {
		t.Fatal("caption or share element missing from parse")
	}

	c := elements[*caption]
	if c.HintText != "Write a caption..." {
		t.Errorf("caption hint = %q", c.HintText)
	}
	if !c.Clickable {
		t.Error("caption not clickable")
	}
	if c.Depth != 1 {
		t.Errorf("caption depth = %d, want 1", c.Depth)
	}

	s := elements[*share]
	if x, y := s.Bounds.Center(); x != 940 || y != 185 {
		t.Errorf("share center = (%d,%d), want (940,185)", x, y)
	}
}

func TestParsePageSourceNesting(t *testing.T) {
	elements, err := ParsePageSource(igProfileXML)
	if err != nil {
		t.Fatalf("ParsePageSource() error: %v", err)
	}

	for _, e := range elements {
		if e.ContentDesc == "Home" && e.Depth != 2 {
			t.Errorf("tab item depth = %d, want 2", e.Depth)
		}
	}
}

func TestParsePageSourceInvalid(t *testing.T) {
	if _, err := ParsePageSource("<broken"); err == nil {
		t.Error("no error for truncated XML")
	}
	if _, err := ParsePageSource("<root><child/></root>"); err == nil {
		t.Error("no error for XML without a hierarchy element")
	}
}

func TestParseBounds(t *testing.T) {
	tests := []struct {
		in   string
		want [4]int // x, y, w, h
	}{
		{"[0,0][1080,2400]", [4]int{0, 0, 1080, 2400}},
		{"[48,120][168,240]", [4]int{48, 120, 120, 120}},
		{"garbage", [4]int{0, 0, 0, 0}},
		{"", [4]int{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		b := parseBounds(tt.in)
		got := [4]int{b.X, b.Y, b.Width, b.Height}
		if got != tt.want {
			t.Errorf("parseBounds(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
