package domain

import "time"

// SourceType identifies how a document entered the project
type SourceType string

const (
	SourceTypeFile SourceType = "file"
	SourceTypeURL  SourceType = "url"
)

// ProcessingStatus tracks a document through the ingestion lifecycle
type ProcessingStatus string

const (
	StatusUploading  ProcessingStatus = "uploading"
	StatusQueued     ProcessingStatus = "queued"
	StatusProcessing ProcessingStatus = "processing"
	StatusReady      ProcessingStatus = "ready"
	StatusFailed     ProcessingStatus = "failed"
)

// ProjectDocument represents an uploaded or linked document within a project
type ProjectDocument struct {
	ID               string           `json:"id"`
	ProjectID        string           `json:"project_id"`
	UserID           string           `json:"user_id"`
	Filename         string           `json:"filename"`
	FileType         string           `json:"file_type"`
	FileSize         int64            `json:"file_size"`
	StorageKey       string           `json:"storage_key"`
	SourceType       SourceType       `json:"source_type"`
	SourceURL        string           `json:"source_url,omitempty"`
	ProcessingStatus ProcessingStatus `json:"processing_status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
