package domain

import "time"

// TaskType identifies the type of background task
type TaskType string

const (
	// TaskTypeIngestDocument parses, chunks, and indexes one document
	TaskTypeIngestDocument TaskType = "ingest_document"
)

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task represents a background job to be processed by workers
type Task struct {
	ID string `json:"id"`

	Type TaskType `json:"type"`

	// Payload contains task-specific data.
	// For ingest_document: {"document_id": "...", "project_id": "..."}
	Payload map[string]string `json:"payload"`

	Status TaskStatus `json:"status"`

	// Attempts is how many times this task has been attempted
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"max_attempts"`
	LastError   string    `json:"last_error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewIngestTask creates a pending ingestion task for a document
func NewIngestTask(projectID, documentID string) *Task {
	now := time.Now()
	return &Task{
		ID:   GenerateID(),
		Type: TaskTypeIngestDocument,
		Payload: map[string]string{
			"project_id":  projectID,
			"document_id": documentID,
		},
		Status:      TaskStatusPending,
		MaxAttempts: 3,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CanRetry reports whether the task may be attempted again
func (t *Task) CanRetry() bool {
	return t.Attempts < t.MaxAttempts
}

// MarkProcessing transitions the task to processing and counts the attempt
func (t *Task) MarkProcessing() {
	t.Status = TaskStatusProcessing
	t.Attempts++
	t.UpdatedAt = time.Now()
}

// MarkCompleted transitions the task to completed
func (t *Task) MarkCompleted() {
	t.Status = TaskStatusCompleted
	t.UpdatedAt = time.Now()
}

// MarkFailed transitions the task to failed, recording the reason
func (t *Task) MarkFailed(reason string) {
	t.Status = TaskStatusFailed
	t.LastError = reason
	t.UpdatedAt = time.Now()
}

// Retry returns the task to pending for another attempt
func (t *Task) Retry(reason string) {
	t.Status = TaskStatusPending
	t.LastError = reason
	t.UpdatedAt = time.Now()
}
