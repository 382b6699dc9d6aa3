package models

import "time"

// Legacy video_submissions status codes. The submission store translates
// these into canonical workflow statuses on read.
const (
	VideoSubmissionStatusSubmitted         = "submitted"
	VideoSubmissionStatusApproved          = "approved"
	VideoSubmissionStatusRevisionRequested = "revision_requested"
	VideoSubmissionStatusResubmitted       = "resubmitted"
	VideoSubmissionStatusCompleted         = "completed"
)

// VideoSubmission represents the legacy video_submissions table, one row
// per uploaded video file. Kept read-compatible for applications created
// before the step_submissions migration.
type VideoSubmission struct {
	VideoSubmissionID int    `gorm:"primaryKey;column:video_submission_id" json:"video_submission_id"`
	ApplicationID     int    `gorm:"column:application_id" json:"application_id"`
	StepNumber        int    `gorm:"column:step_number" json:"step_number"`
	Status            string `gorm:"column:status" json:"status"`

	VideoURL      *string `gorm:"column:video_url" json:"video_url,omitempty"`
	CleanVideoURL *string `gorm:"column:clean_video_url" json:"clean_video_url,omitempty"`
	SNSUploadURL  *string `gorm:"column:sns_upload_url" json:"sns_upload_url,omitempty"`

	AdCode          *string `gorm:"column:ad_code" json:"ad_code,omitempty"`
	PartnershipCode *string `gorm:"column:partnership_code" json:"partnership_code,omitempty"`

	FileName *string `gorm:"column:file_name" json:"file_name,omitempty"`
	FileSize *int64  `gorm:"column:file_size" json:"file_size,omitempty"`

	SubmittedAt *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
}

// TableName overrides the table name for VideoSubmission
func (VideoSubmission) TableName() string {
	return "video_submissions"
}
