package models

// VectorStore is the metadata shape the remote index returns for
// list/create/retrieve calls.
type VectorStore struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
	FileCount int    `json:"file_count"`
}

// UploadOutcome is the per-file result of one upload attempt.
type UploadOutcome struct {
	File   string `json:"file"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	UploadSuccess = "success"
	UploadFailed  = "failed"
)

// RunStats aggregates upload outcomes for a run. Errors are appended in
// completion order, which is not the submission order.
type RunStats struct {
	TotalFiles        int             `json:"total_files"`
	SuccessfulUploads int             `json:"successful_uploads"`
	FailedUploads     int             `json:"failed_uploads"`
	Errors            []UploadOutcome `json:"errors"`
}
