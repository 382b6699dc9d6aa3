package services

import (
	"time"

	"creator-campaign-api/models"
)

// Urgency buckets for a resolved deadline, display-only.
const (
	UrgencyExpired = "expired"
	UrgencyUrgent  = "urgent"
	UrgencySoon    = "soon"
	UrgencyNormal  = "normal"
)

// StepDeadlines is the resolved pair of due dates for one step. Either may
// be nil, meaning no constraint.
type StepDeadlines struct {
	Video *time.Time `json:"video_deadline,omitempty"`
	SNS   *time.Time `json:"sns_deadline,omitempty"`
}

// ResolveStepDeadlines returns the applicable deadlines for a step by
// trying, in order: the snapshot frozen on the submission at guide
// confirmation, the campaign's structured per-step list, the weekly columns
// of the four-week archetype, and finally the flat campaign columns. A miss
// at every level is valid and yields empty deadlines.
func ResolveStepDeadlines(campaign *models.Campaign, sub *models.StepSubmission, step int) StepDeadlines {
	if sub != nil && (sub.VideoDeadline != nil || sub.SNSDeadline != nil) {
		return StepDeadlines{Video: sub.VideoDeadline, SNS: sub.SNSDeadline}
	}
	if campaign == nil {
		return StepDeadlines{}
	}

	for i := range campaign.StepDeadlines {
		d := &campaign.StepDeadlines[i]
		if d.StepNumber == step && (d.VideoDeadline != nil || d.SNSDeadline != nil) {
			return StepDeadlines{Video: d.VideoDeadline, SNS: d.SNSDeadline}
		}
	}

	if campaign.CampaignType == models.CampaignTypeFourWeek {
		if dl := weeklyDeadlines(campaign, step); dl.Video != nil || dl.SNS != nil {
			return dl
		}
	}

	if campaign.VideoDeadline != nil || campaign.SNSDeadline != nil {
		return StepDeadlines{Video: campaign.VideoDeadline, SNS: campaign.SNSDeadline}
	}

	return StepDeadlines{}
}

func weeklyDeadlines(campaign *models.Campaign, step int) StepDeadlines {
	switch step {
	case 1:
		return StepDeadlines{Video: campaign.Week1Deadline, SNS: campaign.Week1SNSDeadline}
	case 2:
		return StepDeadlines{Video: campaign.Week2Deadline, SNS: campaign.Week2SNSDeadline}
	case 3:
		return StepDeadlines{Video: campaign.Week3Deadline, SNS: campaign.Week3SNSDeadline}
	case 4:
		return StepDeadlines{Video: campaign.Week4Deadline, SNS: campaign.Week4SNSDeadline}
	}
	return StepDeadlines{}
}

// DaysUntil returns the whole calendar-day difference between now and the
// deadline, negative when the deadline has passed.
func DaysUntil(deadline, now time.Time) int {
	d := startOfDay(deadline)
	n := startOfDay(now)
	return int(d.Sub(n).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ClassifyUrgency buckets a deadline by calendar-day distance from now.
func ClassifyUrgency(deadline, now time.Time) string {
	days := DaysUntil(deadline, now)
	switch {
	case days < 0:
		return UrgencyExpired
	case days <= 3:
		return UrgencyUrgent
	case days <= 7:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}
