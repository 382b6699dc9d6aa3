package models

import "time"

// Campaign archetypes. The type decides how many steps an application has
// and which deadline columns apply.
const (
	CampaignTypeRegular    = "regular"
	CampaignTypeMegawari   = "megawari"
	CampaignTypeFourWeek   = "4week_challenge"
	MegawariVideoSteps     = 2
	MegawariTotalSteps     = 3
	FourWeekChallengeSteps = 4
)

// Campaign represents the campaigns table
type Campaign struct {
	CampaignID   int     `gorm:"primaryKey;column:campaign_id" json:"campaign_id"`
	Title        string  `gorm:"column:title" json:"title"`
	BrandName    string  `gorm:"column:brand_name" json:"brand_name"`
	CampaignType string  `gorm:"column:campaign_type" json:"campaign_type"`
	TotalSteps   *int    `gorm:"column:total_steps" json:"total_steps,omitempty"`
	RewardPoints int     `gorm:"column:reward_points" json:"reward_points"`
	Status       string  `gorm:"column:status" json:"status"`
	ImageURL     *string `gorm:"column:image_url" json:"image_url,omitempty"`
	Description  *string `gorm:"column:description" json:"description,omitempty"`

	RequiresCleanVideo bool `gorm:"column:requires_clean_video" json:"requires_clean_video"`
	RequiresAdCode     bool `gorm:"column:requires_ad_code" json:"requires_ad_code"`

	// Flat deadlines, used by single-step campaigns.
	VideoDeadline *time.Time `gorm:"column:video_deadline" json:"video_deadline,omitempty"`
	SNSDeadline   *time.Time `gorm:"column:sns_deadline" json:"sns_deadline,omitempty"`

	// Fixed weekly deadlines, used by the four-week challenge archetype.
	Week1Deadline    *time.Time `gorm:"column:week1_deadline" json:"week1_deadline,omitempty"`
	Week2Deadline    *time.Time `gorm:"column:week2_deadline" json:"week2_deadline,omitempty"`
	Week3Deadline    *time.Time `gorm:"column:week3_deadline" json:"week3_deadline,omitempty"`
	Week4Deadline    *time.Time `gorm:"column:week4_deadline" json:"week4_deadline,omitempty"`
	Week1SNSDeadline *time.Time `gorm:"column:week1_sns_deadline" json:"week1_sns_deadline,omitempty"`
	Week2SNSDeadline *time.Time `gorm:"column:week2_sns_deadline" json:"week2_sns_deadline,omitempty"`
	Week3SNSDeadline *time.Time `gorm:"column:week3_sns_deadline" json:"week3_sns_deadline,omitempty"`
	Week4SNSDeadline *time.Time `gorm:"column:week4_sns_deadline" json:"week4_sns_deadline,omitempty"`

	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	StepDeadlines []CampaignStepDeadline `gorm:"foreignKey:CampaignID;references:CampaignID" json:"step_deadlines,omitempty"`
}

// CampaignStepDeadline is the structured per-step deadline list. When rows
// exist they take priority over the weekly and flat campaign columns.
type CampaignStepDeadline struct {
	DeadlineID    int        `gorm:"primaryKey;column:deadline_id" json:"deadline_id"`
	CampaignID    int        `gorm:"column:campaign_id" json:"campaign_id"`
	StepNumber    int        `gorm:"column:step_number" json:"step_number"`
	VideoDeadline *time.Time `gorm:"column:video_deadline" json:"video_deadline,omitempty"`
	SNSDeadline   *time.Time `gorm:"column:sns_deadline" json:"sns_deadline,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
}

// TableName overrides
func (Campaign) TableName() string {
	return "campaigns"
}

func (CampaignStepDeadline) TableName() string {
	return "campaign_step_deadlines"
}

// ResolvedTotalSteps returns the step count for the campaign, preferring the
// explicit override and falling back to the archetype default.
func (c *Campaign) ResolvedTotalSteps() int {
	if c.TotalSteps != nil && *c.TotalSteps > 0 {
		return *c.TotalSteps
	}
	switch c.CampaignType {
	case CampaignTypeMegawari:
		return MegawariTotalSteps
	case CampaignTypeFourWeek:
		return FourWeekChallengeSteps
	default:
		return 1
	}
}

// IsSocialProofOnlyStep reports whether the step collects SNS proof without
// its own video upload. Only the final megawari step behaves this way.
func (c *Campaign) IsSocialProofOnlyStep(step int) bool {
	return c.CampaignType == CampaignTypeMegawari && step > MegawariVideoSteps
}
