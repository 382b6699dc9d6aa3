package services

import (
	"math"
	"time"

	"creator-campaign-api/models"
)

// Deadline kinds reported by NearestDeadline.
const (
	DeadlineKindVideo = "video"
	DeadlineKindSNS   = "sns"
)

// UpcomingDeadline is the soonest future due date across a campaign's steps.
type UpcomingDeadline struct {
	StepNumber int       `json:"step_number"`
	Kind       string    `json:"kind"`
	Due        time.Time `json:"due"`
	Urgency    string    `json:"urgency"`
}

// CampaignProgress is the per-campaign roll-up shown on the campaign card.
type CampaignProgress struct {
	TotalSteps        int               `json:"total_steps"`
	CompletedSteps    int               `json:"completed_steps"`
	CompletionPercent int               `json:"completion_percent"`
	NearestDeadline   *UpcomingDeadline `json:"nearest_deadline,omitempty"`
}

// CompletionPercent computes completed/total as a whole percentage, rounded
// to the nearest integer.
func CompletionPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// CompletedStepCount counts submissions whose status finishes the step.
func CompletedStepCount(subs []models.StepSubmission) int {
	count := 0
	for i := range subs {
		if IsStepDone(WorkflowStatus(subs[i].WorkflowStatus)) {
			count++
		}
	}
	return count
}

// NearestDeadline scans every step's resolved video and SNS deadlines and
// returns the single soonest strictly-future one, or nil when every
// deadline is absent or already past. Read-only; nothing is mutated.
func NearestDeadline(campaign *models.Campaign, subs []models.StepSubmission, now time.Time) *UpcomingDeadline {
	totalSteps := campaign.ResolvedTotalSteps()
	byStep := make(map[int]*models.StepSubmission, len(subs))
	for i := range subs {
		byStep[subs[i].StepNumber] = &subs[i]
	}

	var nearest *UpcomingDeadline
	consider := func(step int, kind string, due *time.Time) {
		if due == nil || !due.After(now) {
			return
		}
		if nearest == nil || due.Before(nearest.Due) {
			nearest = &UpcomingDeadline{
				StepNumber: step,
				Kind:       kind,
				Due:        *due,
				Urgency:    ClassifyUrgency(*due, now),
			}
		}
	}

	for step := 1; step <= totalSteps; step++ {
		dl := ResolveStepDeadlines(campaign, byStep[step], step)
		consider(step, DeadlineKindVideo, dl.Video)
		consider(step, DeadlineKindSNS, dl.SNS)
	}
	return nearest
}

// BuildProgress assembles the campaign-card roll-up for one application.
func BuildProgress(campaign *models.Campaign, subs []models.StepSubmission, now time.Time) CampaignProgress {
	total := campaign.ResolvedTotalSteps()
	completed := CompletedStepCount(subs)
	return CampaignProgress{
		TotalSteps:        total,
		CompletedSteps:    completed,
		CompletionPercent: CompletionPercent(completed, total),
		NearestDeadline:   NearestDeadline(campaign, subs, now),
	}
}
