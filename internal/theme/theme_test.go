package theme

import (
	"image/color"
	"testing"

	"image-browser/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	ftheme "fyne.io/fyne/v2/theme"
)

func TestThemeOverridesConfiguredColours(t *testing.T) {
	test.NewTempApp(t)
	th, err := New(config.Theme{Primary: "#112233"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := th.Color(ftheme.ColorNamePrimary, ftheme.VariantLight)
	if got != (color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}) {
		t.Fatalf("primary = %v", got)
	}
	want := ftheme.DefaultTheme().Color(ftheme.ColorNameSelection, ftheme.VariantLight)
	if got := th.Color(ftheme.ColorNameSelection, ftheme.VariantLight); got != want {
		t.Fatalf("selection = %v, want default %v", got, want)
	}
	want = ftheme.DefaultTheme().Color(ftheme.ColorNameForeground, ftheme.VariantDark)
	if got := th.Color(ftheme.ColorNameForeground, ftheme.VariantDark); got != want {
		t.Fatalf("foreground = %v, want default %v", got, want)
	}
}

func TestThemeRejectsBadColour(t *testing.T) {
	if _, err := New(config.Theme{Background: "blue"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestFontsFollowStyle(t *testing.T) {
	th, _ := New(config.Theme{})
	tests := []struct {
		family string
		want   fyne.Resource
	}{
		{"Go Regular", fontRegular},
		{"Go Bold", fontBold},
		{"Go Italic", fontItalic},
		{"Go Bold Italic", fontBoldItalic},
		{"Go Mono", fontMono},
		{"Go Mono Bold", fontMonoBold},
		{"Go Small Caps", fontRegular},
	}
	for _, tt := range tests {
		if got := th.Font(StyleForFamily(tt.family)); got != tt.want {
			t.Errorf("%s: font = %s, want %s", tt.family, got.Name(), tt.want.Name())
		}
	}
}
