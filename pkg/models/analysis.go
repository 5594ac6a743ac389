package models

// Analysis is the Strategist's structured reading of the source document.
type Analysis struct {
	KeyMessage string   `json:"key_message"`
	DataPoints []string `json:"data_points"`
	Audience   string   `json:"audience"`
	Purpose    string   `json:"purpose"`
	Industry   string   `json:"industry"`
	Context    string   `json:"context"`
}

// FrameworkName identifies a MECE decomposition scheme from the closed catalog.
type FrameworkName string

const (
	Framework3C     FrameworkName = "3c"
	FrameworkSWOT   FrameworkName = "swot"
	FrameworkBCG    FrameworkName = "bcg"
	FrameworkCustom FrameworkName = "custom"
)

// Framework is the MECE decomposition scheme the deck is organized around.
// Categories are mutually exclusive and collectively exhaustive with respect
// to the analysis domain; the Pyramid must preserve that set exactly.
type Framework struct {
	Name        FrameworkName `json:"name"`
	Description string        `json:"description"`
	Categories  []string      `json:"categories"`
}
