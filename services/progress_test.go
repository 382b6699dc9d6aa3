package services

import (
	"testing"
	"time"

	"creator-campaign-api/models"
)

func TestCompletionPercentRounding(t *testing.T) {
	tests := []struct {
		completed int
		total     int
		want      int
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 4, 25},
		{1, 1, 100},
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := CompletionPercent(tt.completed, tt.total); got != tt.want {
			t.Fatalf("CompletionPercent(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestCompletedStepCount(t *testing.T) {
	subs := []models.StepSubmission{
		{StepNumber: 1, WorkflowStatus: string(StatusPointsPaid)},
		{StepNumber: 2, WorkflowStatus: string(StatusCompleted)},
		{StepNumber: 3, WorkflowStatus: string(StatusVideoUploaded)},
		{StepNumber: 4, WorkflowStatus: string(StatusGuidePending)},
	}
	if got := CompletedStepCount(subs); got != 2 {
		t.Fatalf("expected 2 completed steps, got %d", got)
	}
}

func TestNearestDeadlinePicksSoonestFutureAcrossSteps(t *testing.T) {
	now := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	campaign := &models.Campaign{
		CampaignType:     models.CampaignTypeFourWeek,
		Week1Deadline:    datePtr(2025, 3, 1), // past, skipped
		Week1SNSDeadline: datePtr(2025, 3, 4), // past, skipped
		Week2Deadline:    datePtr(2025, 3, 20),
		Week2SNSDeadline: datePtr(2025, 3, 22),
		Week3Deadline:    datePtr(2025, 3, 12),
		Week4Deadline:    datePtr(2025, 4, 1),
	}

	nearest := NearestDeadline(campaign, nil, now)
	if nearest == nil {
		t.Fatal("expected an upcoming deadline")
	}
	if nearest.StepNumber != 3 || nearest.Kind != DeadlineKindVideo {
		t.Fatalf("expected step 3 video deadline, got step %d %s", nearest.StepNumber, nearest.Kind)
	}
	if !nearest.Due.Equal(*campaign.Week3Deadline) {
		t.Fatalf("expected due %v, got %v", campaign.Week3Deadline, nearest.Due)
	}
}

func TestNearestDeadlineNilWhenAllPastOrAbsent(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	campaign := &models.Campaign{
		CampaignType:  models.CampaignTypeRegular,
		VideoDeadline: datePtr(2025, 3, 1),
		SNSDeadline:   datePtr(2025, 3, 8),
	}

	if nearest := NearestDeadline(campaign, nil, now); nearest != nil {
		t.Fatalf("expected nil, got %+v", nearest)
	}
}

func TestNearestDeadlineUsesSubmissionSnapshots(t *testing.T) {
	now := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	campaign := &models.Campaign{
		CampaignType:  models.CampaignTypeRegular,
		VideoDeadline: datePtr(2025, 3, 30),
	}
	subs := []models.StepSubmission{
		{StepNumber: 1, WorkflowStatus: string(StatusGuideConfirmed), VideoDeadline: datePtr(2025, 3, 10)},
	}

	nearest := NearestDeadline(campaign, subs, now)
	if nearest == nil {
		t.Fatal("expected an upcoming deadline")
	}
	if !nearest.Due.Equal(*subs[0].VideoDeadline) {
		t.Fatalf("expected snapshot deadline %v, got %v", subs[0].VideoDeadline, nearest.Due)
	}
	if nearest.Urgency != UrgencyUrgent {
		t.Fatalf("expected %s, got %s", UrgencyUrgent, nearest.Urgency)
	}
}

func TestBuildProgressThreeStepCampaign(t *testing.T) {
	now := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	campaign := &models.Campaign{CampaignType: models.CampaignTypeMegawari}
	subs := []models.StepSubmission{
		{StepNumber: 1, WorkflowStatus: string(StatusPointsPaid)},
		{StepNumber: 2, WorkflowStatus: string(StatusVideoUploaded)},
		{StepNumber: 3, WorkflowStatus: string(StatusGuidePending)},
	}

	progress := BuildProgress(campaign, subs, now)
	if progress.TotalSteps != 3 {
		t.Fatalf("expected 3 total steps, got %d", progress.TotalSteps)
	}
	if progress.CompletedSteps != 1 {
		t.Fatalf("expected 1 completed step, got %d", progress.CompletedSteps)
	}
	if progress.CompletionPercent != 33 {
		t.Fatalf("expected 33 percent, got %d", progress.CompletionPercent)
	}
}
