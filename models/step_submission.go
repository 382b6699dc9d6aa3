package models

import "time"

// VideoVersion is one entry of the append-only upload history kept on a
// step submission. Version numbers are never reused; the entry with the
// highest version is the canonical current upload regardless of array order.
type VideoVersion struct {
	Version    int       `json:"version"`
	FilePath   string    `json:"file_path"`
	FileURL    string    `json:"file_url"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// RevisionRequest is one operator comment asking the creator to re-upload.
type RevisionRequest struct {
	Comment   string    `json:"comment"`
	CommentJa *string   `json:"comment_ja,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StepSubmission represents the step_submissions table: the canonical
// per-(application, step) submission record the tracker works with. Legacy
// backing tables are translated into this shape by the submission store.
type StepSubmission struct {
	SubmissionID   int    `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	ApplicationID  int    `gorm:"column:application_id;uniqueIndex:uniq_app_step" json:"application_id"`
	StepNumber     int    `gorm:"column:step_number;uniqueIndex:uniq_app_step" json:"step_number"`
	WorkflowStatus string `gorm:"column:workflow_status" json:"workflow_status"`

	VideoFileURL    *string    `gorm:"column:video_file_url" json:"video_file_url,omitempty"`
	VideoFileName   *string    `gorm:"column:video_file_name" json:"video_file_name,omitempty"`
	VideoFileSize   *int64     `gorm:"column:video_file_size" json:"video_file_size,omitempty"`
	VideoUploadedAt *time.Time `gorm:"column:video_uploaded_at" json:"video_uploaded_at,omitempty"`

	VideoVersions    []VideoVersion    `gorm:"column:video_versions;serializer:json" json:"video_versions,omitempty"`
	RevisionRequests []RevisionRequest `gorm:"column:revision_requests;serializer:json" json:"revision_requests,omitempty"`

	CleanVideoFileURL *string `gorm:"column:clean_video_file_url" json:"clean_video_file_url,omitempty"`
	SNSURL            *string `gorm:"column:sns_url" json:"sns_url,omitempty"`
	AdCode            *string `gorm:"column:ad_code" json:"ad_code,omitempty"`

	PointsAmount *int       `gorm:"column:points_amount" json:"points_amount,omitempty"`
	PointsPaidAt *time.Time `gorm:"column:points_paid_at" json:"points_paid_at,omitempty"`

	// Deadline snapshot taken at guide confirmation. Once set it wins over
	// the campaign-level deadline cascade.
	VideoDeadline *time.Time `gorm:"column:video_deadline" json:"video_deadline,omitempty"`
	SNSDeadline   *time.Time `gorm:"column:sns_deadline" json:"sns_deadline,omitempty"`

	GuideConfirmedAt *time.Time `gorm:"column:guide_confirmed_at" json:"guide_confirmed_at,omitempty"`
	SNSSubmittedAt   *time.Time `gorm:"column:sns_submitted_at" json:"sns_submitted_at,omitempty"`

	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
}

// TableName overrides the table name for StepSubmission
func (StepSubmission) TableName() string {
	return "step_submissions"
}

// LatestVersion returns the history entry with the highest version number,
// or nil when no upload has happened yet. Array position is not trusted.
func (s *StepSubmission) LatestVersion() *VideoVersion {
	var latest *VideoVersion
	for i := range s.VideoVersions {
		v := &s.VideoVersions[i]
		if latest == nil || v.Version > latest.Version {
			latest = v
		}
	}
	return latest
}

// NextVersionNumber returns the version number the next upload should use.
func (s *StepSubmission) NextVersionNumber() int {
	if latest := s.LatestVersion(); latest != nil {
		return latest.Version + 1
	}
	return 1
}
