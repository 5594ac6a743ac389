package models

import "time"

// JobStatus is the lifecycle state of a submitted job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Stage names the pipeline stage reported in progress snapshots.
type Stage string

const (
	StageDocumentAnalysis  Stage = "document_analysis"
	StageDataExtraction    Stage = "data_extraction"
	StageStructureDesign   Stage = "structure_design"
	StageDesignApplication Stage = "design_application"
	StageQualityReview     Stage = "quality_review"
	StageCompleted         Stage = "completed"
	StageFailed            Stage = "failed"
)

// PreviewRow is one line of the structural preview published for observers
// while the deck is being designed.
type PreviewRow struct {
	Slide  int    `json:"slide"`
	Title  string `json:"title"`
	Layout string `json:"layout"`
}

// MaxPreviewRows bounds the structure preview in progress snapshots.
const MaxPreviewRows = 12

// ProgressSnapshot is the observable state of a job, published to the
// progress sink keyed by job id. Percent is monotonically non-decreasing
// per job; the terminal snapshot (completed or failed) is durable.
type ProgressSnapshot struct {
	Stage            Stage        `json:"current_stage"`
	Percent          int          `json:"progress"`
	UpdatedAt        time.Time    `json:"updated_at"`
	StructurePreview []PreviewRow `json:"structure_preview,omitempty"`
	Error            string       `json:"error,omitempty"`
}

// Response is the terminal result of one pipeline execution.
type Response struct {
	JobID         string        `json:"job_id"`
	Status        JobStatus     `json:"status"`
	DeckPath      string        `json:"deck_path,omitempty"`
	QualityScore  float64       `json:"quality_score"`
	QualityPassed bool          `json:"quality_passed"`
	Degraded      bool          `json:"degraded,omitempty"`
	Iterations    int           `json:"iterations"`
	Elapsed       time.Duration `json:"elapsed"`
	Errors        []string      `json:"errors,omitempty"`
}

// Job is the persisted record of a submitted deck-generation request.
type Job struct {
	ID          string        `json:"id"`
	Status      JobStatus     `json:"status"`
	Input       DocumentInput `json:"input"`
	Response    *Response     `json:"response,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}
