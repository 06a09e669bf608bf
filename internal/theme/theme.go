// Package theme provides the fyne theme of the image browser: the default
// theme with configurable accent colours and the Go font family.
package theme

import (
	"image/color"
	"strings"

	"image-browser/internal/config"

	"fyne.io/fyne/v2"
	ftheme "fyne.io/fyne/v2/theme"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontRegular    = fyne.NewStaticResource("goregular.ttf", goregular.TTF)
	fontBold       = fyne.NewStaticResource("gobold.ttf", gobold.TTF)
	fontItalic     = fyne.NewStaticResource("goitalic.ttf", goitalic.TTF)
	fontBoldItalic = fyne.NewStaticResource("gobolditalic.ttf", gobolditalic.TTF)
	fontMono       = fyne.NewStaticResource("gomono.ttf", gomono.TTF)
	fontMonoBold   = fyne.NewStaticResource("gomonobold.ttf", gomonobold.TTF)
)

// BrowserTheme overrides selected colours of the default theme.
type BrowserTheme struct {
	colors map[fyne.ThemeColorName]color.Color
}

var _ fyne.Theme = (*BrowserTheme)(nil)

// New builds a theme from the configured colours. Empty entries keep the
// default colour.
func New(cfg config.Theme) (*BrowserTheme, error) {
	t := &BrowserTheme{colors: make(map[fyne.ThemeColorName]color.Color)}
	for name, hex := range map[fyne.ThemeColorName]string{
		ftheme.ColorNamePrimary:    cfg.Primary,
		ftheme.ColorNameSelection:  cfg.Selection,
		ftheme.ColorNameBackground: cfg.Background,
	} {
		if hex == "" {
			continue
		}
		c, err := config.ParseColor(hex)
		if err != nil {
			return nil, err
		}
		t.colors[name] = c
	}
	return t, nil
}

func (t *BrowserTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := t.colors[name]; ok {
		return c
	}
	return ftheme.DefaultTheme().Color(name, variant)
}

func (t *BrowserTheme) Font(style fyne.TextStyle) fyne.Resource {
	switch {
	case style.Monospace && style.Bold:
		return fontMonoBold
	case style.Monospace:
		return fontMono
	case style.Bold && style.Italic:
		return fontBoldItalic
	case style.Bold:
		return fontBold
	case style.Italic:
		return fontItalic
	default:
		return fontRegular
	}
}

func (t *BrowserTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return ftheme.DefaultTheme().Icon(name)
}

func (t *BrowserTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case ftheme.SizeNameScrollBar:
		return 14
	default:
		return ftheme.DefaultTheme().Size(name)
	}
}

// StyleForFamily maps a Go font family name to the text style that selects
// it through this theme.
func StyleForFamily(family string) fyne.TextStyle {
	f := strings.ToLower(family)
	return fyne.TextStyle{
		Bold:      strings.Contains(f, "bold"),
		Italic:    strings.Contains(f, "italic"),
		Monospace: strings.Contains(f, "mono"),
	}
}
