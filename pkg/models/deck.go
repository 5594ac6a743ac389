package models

// Position is a layout hint in EMU-agnostic relative units (0..1 of the
// slide canvas). The file emitter converts these into its native geometry.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

// Block is one placed content element on a styled slide.
type Block struct {
	Kind     string    `json:"kind"` // "headline", "body", "bullets", "column", "cell", "chart"
	Text     string    `json:"text,omitempty"`
	Bullets  []string  `json:"bullets,omitempty"`
	Chart    *ChartSpec `json:"chart,omitempty"`
	Position Position  `json:"position"`
	// Row/Col locate matrix cells; zero elsewhere.
	Row int `json:"row,omitempty"`
	Col int `json:"col,omitempty"`
}

// Theme is the deck-wide color and font profile.
type Theme struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	AccentColor    string `json:"accent_color"`
	HeadingFont    string `json:"heading_font"`
	BodyFont       string `json:"body_font"`
	BaseFontSize   int    `json:"base_font_size"`
}

// StyledSlide is a SlideSpec enriched with finalized content and placement.
type StyledSlide struct {
	Spec        SlideSpec `json:"spec"`
	Blocks      []Block   `json:"blocks"`
	Transition  string    `json:"transition,omitempty"`
	SpeakerNote string    `json:"speaker_note,omitempty"`
}

// StyledDeck is the finalized slide model handed to the file emitter.
type StyledDeck struct {
	Title    string        `json:"title"`
	Language string        `json:"language"`
	Theme    Theme         `json:"theme"`
	Slides   []StyledSlide `json:"slides"`
}
