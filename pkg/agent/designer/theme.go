package designer

import "github.com/slidesmith/slidesmith/pkg/models"

// defaultTheme is the house style applied to every deck. Korean decks swap
// the body font for one with full Hangul coverage.
func defaultTheme(language string) models.Theme {
	theme := models.Theme{
		PrimaryColor:   "#1B2A4A",
		SecondaryColor: "#4A6FA5",
		AccentColor:    "#E8663C",
		HeadingFont:    "Pretendard",
		BodyFont:       "Pretendard",
		BaseFontSize:   18,
	}
	if language != "ko" {
		theme.HeadingFont = "Inter"
		theme.BodyFont = "Inter"
	}
	return theme
}
