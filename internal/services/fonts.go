package services

import (
	"fmt"
	"strings"
	"sync"

	"image-browser/internal/models"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFamily is used when a font family is unknown.
const DefaultFamily = "Go Regular"

var fontFamilies = []struct {
	name string
	ttf  []byte
}{
	{"Go Regular", goregular.TTF},
	{"Go Medium", gomedium.TTF},
	{"Go Bold", gobold.TTF},
	{"Go Italic", goitalic.TTF},
	{"Go Bold Italic", gobolditalic.TTF},
	{"Go Mono", gomono.TTF},
	{"Go Mono Bold", gomonobold.TTF},
	{"Go Small Caps", gosmallcaps.TTF},
}

var standardSizes = []int{6, 7, 8, 9, 10, 11, 12, 14, 16, 18, 20, 22, 24, 26, 28, 36, 48, 72}

var (
	parsedFonts sync.Map // family -> *opentype.Font
	faceCache   sync.Map // "family@size" -> font.Face
)

// FontFamilies lists the selectable font families.
func FontFamilies() []string {
	names := make([]string, len(fontFamilies))
	for i, f := range fontFamilies {
		names[i] = f.name
	}
	return names
}

// StandardSizes lists the selectable point sizes.
func StandardSizes() []int {
	return append([]int(nil), standardSizes...)
}

// HasFamily reports whether name is a known family.
func HasFamily(name string) bool {
	for _, f := range fontFamilies {
		if f.name == name {
			return true
		}
	}
	return false
}

func familyTTF(name string) []byte {
	for _, f := range fontFamilies {
		if f.name == name {
			return f.ttf
		}
	}
	return goregular.TTF
}

// FaceFor returns a cached face for fs. Unknown families fall back to
// DefaultFamily and non-positive sizes to 12pt.
func FaceFor(fs models.FontSpec) (font.Face, error) {
	family := fs.Family
	if !HasFamily(family) {
		family = DefaultFamily
	}
	size := fs.Size
	if size <= 0 {
		size = 12
	}

	key := fmt.Sprintf("%s@%.2f", family, size)
	if face, ok := faceCache.Load(key); ok {
		return face.(font.Face), nil
	}

	var f *opentype.Font
	if cached, ok := parsedFonts.Load(family); ok {
		f = cached.(*opentype.Font)
	} else {
		parsed, err := opentype.Parse(familyTTF(family))
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %w", family, err)
		}
		actual, _ := parsedFonts.LoadOrStore(family, parsed)
		f = actual.(*opentype.Font)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face %s: %w", key, err)
	}
	actual, _ := faceCache.LoadOrStore(key, face)
	return actual.(font.Face), nil
}

// MeasureText returns the pixel width of s and the line height of face.
func MeasureText(face font.Face, s string) (int, int) {
	return font.MeasureString(face, s).Ceil(), face.Metrics().Height.Ceil()
}

// WrapText splits text into lines no wider than maxWidth pixels, breaking
// on spaces. Explicit newlines are kept. A non-positive maxWidth only
// splits on newlines. A single word wider than maxWidth gets its own line.
func WrapText(face font.Face, text string, maxWidth int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if maxWidth <= 0 {
			lines = append(lines, para)
			continue
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		limit := fixed.I(maxWidth)
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if font.MeasureString(face, candidate) <= limit {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}
