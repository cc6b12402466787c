package domain

import "testing"

func TestRightSideContentZeroValueIsNone(t *testing.T) {
	var r RightSideContent
	if got, want := r.Kind(), RightNone; got != want {
		t.Fatalf("zero value Kind() = %v, want %v", got, want)
	}
	if r.Logos() != nil {
		t.Fatalf("zero value Logos() = %v, want nil", r.Logos())
	}
}

func TestRightSideContentExclusive(t *testing.T) {
	logos := LogosContent([]LogoAsset{{ID: "go", Source: "https://cdn.test/go.png"}})
	if got, want := logos.Kind(), RightLogos; got != want {
		t.Fatalf("Kind() = %v, want %v", got, want)
	}
	if len(logos.Logos()) != 1 {
		t.Fatalf("Logos() length = %d, want 1", len(logos.Logos()))
	}

	img := ImageLayoutContent(LayoutDiagonal, ImageAsset{ID: "speaker", Source: "https://cdn.test/s.jpg"})
	if got, want := img.Kind(), RightImage; got != want {
		t.Fatalf("Kind() = %v, want %v", got, want)
	}
	kind, asset := img.Layout()
	if kind != LayoutDiagonal || asset.ID != "speaker" {
		t.Fatalf("Layout() = (%v, %v), want (diagonal, speaker)", kind, asset.ID)
	}
	if img.Logos() != nil {
		t.Fatalf("image content must not carry logos")
	}
}

func TestLogosContentEmptyIsNone(t *testing.T) {
	if got, want := LogosContent(nil).Kind(), RightNone; got != want {
		t.Fatalf("LogosContent(nil).Kind() = %v, want %v", got, want)
	}
}

func TestParseImageLayoutKind(t *testing.T) {
	cases := []struct {
		in   string
		want ImageLayoutKind
		ok   bool
	}{
		{"circle", LayoutCircle, true},
		{"Diagonal", LayoutDiagonal, true},
		{" OVERLAY ", LayoutOverlay, true},
		{"square", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ParseImageLayoutKind(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ParseImageLayoutKind(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestTextVariantFor(t *testing.T) {
	if got, want := TextVariantFor(BackgroundDark), TextLight; got != want {
		t.Fatalf("TextVariantFor(dark) = %v, want %v", got, want)
	}
	if got, want := TextVariantFor(BackgroundLight), TextDark; got != want {
		t.Fatalf("TextVariantFor(light) = %v, want %v", got, want)
	}
}

func TestSourceIsData(t *testing.T) {
	if !(ImageAsset{Source: "data:image/png;base64,AAAA"}).SourceIsData() {
		t.Fatalf("data URI not recognized")
	}
	if (ImageAsset{Source: "https://cdn.test/a.png"}).SourceIsData() {
		t.Fatalf("URL misclassified as data URI")
	}
}
