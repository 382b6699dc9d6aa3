package models

import "time"

// Application lifecycle statuses.
const (
	ApplicationStatusPending         = "pending"
	ApplicationStatusVirtualSelected = "virtual_selected"
	ApplicationStatusApproved        = "approved"
	ApplicationStatusSelected        = "selected"
	ApplicationStatusFilming         = "filming"
	ApplicationStatusVideoSubmitted  = "video_submitted"
	ApplicationStatusSNSSubmitted    = "sns_submitted"
	ApplicationStatusCompleted       = "completed"
	ApplicationStatusRejected        = "rejected"
)

// CampaignApplication represents the campaign_applications table. Besides
// the lifecycle status it still carries flat per-step artifact columns from
// before the step_submissions table existed; they are kept current as a
// write-through mirror so legacy readers keep working.
type CampaignApplication struct {
	ApplicationID int     `gorm:"primaryKey;column:application_id" json:"application_id"`
	CampaignID    int     `gorm:"column:campaign_id" json:"campaign_id"`
	UserID        int     `gorm:"column:user_id" json:"user_id"`
	Status        string  `gorm:"column:status" json:"status"`
	Message       *string `gorm:"column:message" json:"message,omitempty"`

	// Flat fallback artifact columns.
	VideoFileURL    *string `gorm:"column:video_file_url" json:"video_file_url,omitempty"`
	SNSURL          *string `gorm:"column:sns_url" json:"sns_url,omitempty"`
	CleanVideoURL   *string `gorm:"column:clean_video_url" json:"clean_video_url,omitempty"`
	PartnershipCode *string `gorm:"column:partnership_code" json:"partnership_code,omitempty"`
	Week1URL        *string `gorm:"column:week1_url" json:"week1_url,omitempty"`
	Week2URL        *string `gorm:"column:week2_url" json:"week2_url,omitempty"`
	Week3URL        *string `gorm:"column:week3_url" json:"week3_url,omitempty"`
	Week4URL        *string `gorm:"column:week4_url" json:"week4_url,omitempty"`

	AppliedAt  *time.Time `gorm:"column:applied_at" json:"applied_at,omitempty"`
	ApprovedAt *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Campaign *Campaign `gorm:"foreignKey:CampaignID;references:CampaignID" json:"campaign,omitempty"`
	User     *User     `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName overrides the table name for CampaignApplication
func (CampaignApplication) TableName() string {
	return "campaign_applications"
}

// ActiveApplicationStatuses are the statuses for which step submissions are
// expected to exist (auto-provisioned on first load).
var ActiveApplicationStatuses = []string{
	ApplicationStatusApproved,
	ApplicationStatusSelected,
	ApplicationStatusFilming,
	ApplicationStatusVideoSubmitted,
	ApplicationStatusSNSSubmitted,
	ApplicationStatusCompleted,
}

// IsActive reports whether the application is in a status that participates
// in the submission workflow.
func (a *CampaignApplication) IsActive() bool {
	for _, s := range ActiveApplicationStatuses {
		if a.Status == s {
			return true
		}
	}
	return false
}

// WeekURL returns the flat fallback video URL column for the given step.
func (a *CampaignApplication) WeekURL(step int) *string {
	switch step {
	case 1:
		if a.Week1URL != nil {
			return a.Week1URL
		}
		return a.VideoFileURL
	case 2:
		return a.Week2URL
	case 3:
		return a.Week3URL
	case 4:
		return a.Week4URL
	}
	return nil
}
