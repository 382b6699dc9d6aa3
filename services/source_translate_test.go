package services

import (
	"testing"
	"time"

	"creator-campaign-api/models"
)

func strPtr(s string) *string { return &s }

func TestLegacyStatusToWorkflow(t *testing.T) {
	tests := []struct {
		legacy string
		want   WorkflowStatus
	}{
		{models.VideoSubmissionStatusSubmitted, StatusVideoUploaded},
		{models.VideoSubmissionStatusApproved, StatusSNSPending},
		{models.VideoSubmissionStatusRevisionRequested, StatusRevisionRequired},
		{models.VideoSubmissionStatusResubmitted, StatusVideoUploaded},
		{models.VideoSubmissionStatusCompleted, StatusPointsPaid},
		{"garbage", StatusGuidePending},
	}

	for _, tt := range tests {
		if got := LegacyStatusToWorkflow(tt.legacy); got != tt.want {
			t.Fatalf("LegacyStatusToWorkflow(%s) = %s, want %s", tt.legacy, got, tt.want)
		}
	}
}

func TestTranslateVideoSubmissionsFieldRenames(t *testing.T) {
	submitted := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	rows := []models.VideoSubmission{
		{
			VideoSubmissionID: 7,
			ApplicationID:     42,
			StepNumber:        1,
			Status:            models.VideoSubmissionStatusApproved,
			VideoURL:          strPtr("https://cdn.example.com/v1.mp4"),
			CleanVideoURL:     strPtr("https://cdn.example.com/v1_clean.mp4"),
			SNSUploadURL:      strPtr("https://www.tiktok.com/@a/video/1"),
			PartnershipCode:   strPtr("PC-001"),
			SubmittedAt:       &submitted,
		},
	}

	subs := TranslateVideoSubmissions(rows)
	if len(subs) != 1 {
		t.Fatalf("expected 1 canonical submission, got %d", len(subs))
	}

	sub := subs[0]
	if sub.WorkflowStatus != string(StatusSNSPending) {
		t.Fatalf("expected %s, got %s", StatusSNSPending, sub.WorkflowStatus)
	}
	if sub.CleanVideoFileURL == nil || *sub.CleanVideoFileURL != "https://cdn.example.com/v1_clean.mp4" {
		t.Fatalf("clean_video_url not mapped: %v", sub.CleanVideoFileURL)
	}
	if sub.SNSURL == nil || *sub.SNSURL != "https://www.tiktok.com/@a/video/1" {
		t.Fatalf("sns_upload_url not mapped: %v", sub.SNSURL)
	}
	// partnership_code backfills ad_code when ad_code is empty
	if sub.AdCode == nil || *sub.AdCode != "PC-001" {
		t.Fatalf("partnership_code not mapped to ad_code: %v", sub.AdCode)
	}
}

func TestTranslateVideoSubmissionsFoldsFileRowsIntoVersions(t *testing.T) {
	rows := []models.VideoSubmission{
		{VideoSubmissionID: 3, ApplicationID: 42, StepNumber: 1,
			Status: models.VideoSubmissionStatusSubmitted, VideoURL: strPtr("https://cdn/v1.mp4")},
		{VideoSubmissionID: 9, ApplicationID: 42, StepNumber: 1,
			Status: models.VideoSubmissionStatusResubmitted, VideoURL: strPtr("https://cdn/v2.mp4")},
		{VideoSubmissionID: 5, ApplicationID: 42, StepNumber: 2,
			Status: models.VideoSubmissionStatusSubmitted, VideoURL: strPtr("https://cdn/s2.mp4")},
	}

	subs := TranslateVideoSubmissions(rows)
	if len(subs) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(subs))
	}
	if subs[0].StepNumber != 1 || subs[1].StepNumber != 2 {
		t.Fatalf("steps out of order: %d, %d", subs[0].StepNumber, subs[1].StepNumber)
	}

	step1 := subs[0]
	if len(step1.VideoVersions) != 2 {
		t.Fatalf("expected 2 versions for step 1, got %d", len(step1.VideoVersions))
	}
	if step1.VideoVersions[0].Version != 1 || step1.VideoVersions[1].Version != 2 {
		t.Fatalf("version numbering wrong: %+v", step1.VideoVersions)
	}
	// The newest row supplies the current fields and status.
	if step1.VideoFileURL == nil || *step1.VideoFileURL != "https://cdn/v2.mp4" {
		t.Fatalf("expected newest video url, got %v", step1.VideoFileURL)
	}
	if step1.WorkflowStatus != string(StatusVideoUploaded) {
		t.Fatalf("resubmitted must translate to %s, got %s", StatusVideoUploaded, step1.WorkflowStatus)
	}
}

func TestSynthesizeFromApplicationVideoSubmitted(t *testing.T) {
	app := &models.CampaignApplication{
		ApplicationID: 42,
		Status:        models.ApplicationStatusVideoSubmitted,
		VideoFileURL:  strPtr("https://cdn/v1.mp4"),
	}
	campaign := &models.Campaign{CampaignType: models.CampaignTypeRegular}

	subs := SynthesizeFromApplication(app, campaign)
	if len(subs) != 1 {
		t.Fatalf("expected 1 synthesized submission, got %d", len(subs))
	}
	if subs[0].WorkflowStatus != string(StatusVideoUploaded) {
		t.Fatalf("expected %s, got %s", StatusVideoUploaded, subs[0].WorkflowStatus)
	}
	if len(subs[0].VideoVersions) != 1 || subs[0].VideoVersions[0].Version != 1 {
		t.Fatalf("expected a single synthesized version entry, got %+v", subs[0].VideoVersions)
	}
}

func TestSynthesizeFromApplicationStatusDerivation(t *testing.T) {
	campaign := &models.Campaign{CampaignType: models.CampaignTypeRegular}

	tests := []struct {
		name string
		app  models.CampaignApplication
		want WorkflowStatus
	}{
		{
			"no artifacts",
			models.CampaignApplication{Status: models.ApplicationStatusApproved},
			StatusGuidePending,
		},
		{
			"video only",
			models.CampaignApplication{Status: models.ApplicationStatusFilming, VideoFileURL: strPtr("https://cdn/v.mp4")},
			StatusVideoUploaded,
		},
		{
			"video and sns",
			models.CampaignApplication{
				Status:       models.ApplicationStatusSNSSubmitted,
				VideoFileURL: strPtr("https://cdn/v.mp4"),
				SNSURL:       strPtr("https://www.tiktok.com/@a/video/1"),
			},
			StatusSNSSubmitted,
		},
		{
			"completed wins over artifacts",
			models.CampaignApplication{Status: models.ApplicationStatusCompleted, VideoFileURL: strPtr("https://cdn/v.mp4")},
			StatusPointsPaid,
		},
	}

	for _, tt := range tests {
		subs := SynthesizeFromApplication(&tt.app, campaign)
		if got := subs[0].WorkflowStatus; got != string(tt.want) {
			t.Fatalf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestSynthesizeFromApplicationFourWeekSteps(t *testing.T) {
	app := &models.CampaignApplication{
		ApplicationID: 42,
		Status:        models.ApplicationStatusFilming,
		Week1URL:      strPtr("https://cdn/w1.mp4"),
		Week2URL:      strPtr("https://cdn/w2.mp4"),
	}
	campaign := &models.Campaign{CampaignType: models.CampaignTypeFourWeek}

	subs := SynthesizeFromApplication(app, campaign)
	if len(subs) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(subs))
	}
	if subs[0].WorkflowStatus != string(StatusVideoUploaded) ||
		subs[1].WorkflowStatus != string(StatusVideoUploaded) {
		t.Fatalf("weeks with uploads must be %s", StatusVideoUploaded)
	}
	if subs[2].WorkflowStatus != string(StatusGuidePending) ||
		subs[3].WorkflowStatus != string(StatusGuidePending) {
		t.Fatalf("weeks without uploads must be %s", StatusGuidePending)
	}
}

func TestVersionHistoryMonotonicity(t *testing.T) {
	sub := &models.StepSubmission{}
	for i := 1; i <= 5; i++ {
		sub.VideoVersions = append(sub.VideoVersions, models.VideoVersion{
			Version: sub.NextVersionNumber(),
			FileURL: "https://cdn/upload.mp4",
		})
	}

	if len(sub.VideoVersions) != 5 {
		t.Fatalf("expected 5 versions, got %d", len(sub.VideoVersions))
	}
	for i, v := range sub.VideoVersions {
		if v.Version != i+1 {
			t.Fatalf("expected strictly increasing versions 1..5, got %+v", sub.VideoVersions)
		}
	}
}

func TestLatestVersionByNumberNotPosition(t *testing.T) {
	sub := &models.StepSubmission{
		VideoVersions: []models.VideoVersion{
			{Version: 3, FileURL: "https://cdn/v3.mp4"},
			{Version: 1, FileURL: "https://cdn/v1.mp4"},
			{Version: 2, FileURL: "https://cdn/v2.mp4"},
		},
	}

	latest := sub.LatestVersion()
	if latest == nil || latest.Version != 3 {
		t.Fatalf("expected version 3 regardless of array order, got %+v", latest)
	}
	if sub.NextVersionNumber() != 4 {
		t.Fatalf("expected next version 4, got %d", sub.NextVersionNumber())
	}
}
