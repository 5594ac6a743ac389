package api

// MaxDocumentBytes bounds the submitted document size.
const MaxDocumentBytes = 512 * 1024

// CreateDeckRequest is the body of POST /api/v1/decks.
type CreateDeckRequest struct {
	Document       string `json:"document" binding:"required"`
	NumSlides      int    `json:"num_slides,omitempty"`
	Language       string `json:"language,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
	Purpose        string `json:"purpose,omitempty"`
}
