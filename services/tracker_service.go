package services

import (
	"errors"
	"fmt"
	"time"

	"creator-campaign-api/models"

	"gorm.io/gorm"
)

// Validation failures surfaced to the caller before any write happens.
var (
	ErrSNSURLRequired     = errors.New("sns url is required")
	ErrCleanVideoRequired = errors.New("clean video file is required for this campaign")
	ErrAdCodeRequired     = errors.New("ad code is required for this campaign")
	ErrFileTooLarge       = errors.New("file exceeds the 2GB upload limit")
	ErrStepOutOfRange     = errors.New("step number out of range for this campaign")
	ErrApplicationClosed  = errors.New("application is not active")
)

// StepView is the display state for one step on the tracker page.
type StepView struct {
	Submission   models.StepSubmission `json:"submission"`
	Stage        int                   `json:"stage"`
	Deadlines    StepDeadlines         `json:"deadlines"`
	VideoUrgency *string               `json:"video_urgency,omitempty"`
	SNSUrgency   *string               `json:"sns_urgency,omitempty"`
}

// TrackerView is what the my-page tracker renders: every campaign the user
// applied to, the ordered canonical submissions per application, and the
// per-campaign roll-up.
type TrackerView struct {
	Applications []models.CampaignApplication `json:"applications"`
	Campaigns    map[int]*models.Campaign     `json:"campaigns"`
	Steps        map[int][]StepView           `json:"steps"`
	Progress     map[int]CampaignProgress     `json:"progress"`
	Source       string                       `json:"source"`
}

// TrackerService orchestrates the campaign tracker: loading the roll-up
// view and applying the creator-driven workflow mutations.
type TrackerService struct {
	db    *gorm.DB
	store *SubmissionStore
}

func NewTrackerService(db *gorm.DB) *TrackerService {
	return &TrackerService{db: db, store: NewSubmissionStore(db)}
}

// Store exposes the underlying submission store, mainly for tests.
func (t *TrackerService) Store() *SubmissionStore {
	return t.store
}

// LoadTracker builds the full tracker view for a user.
func (t *TrackerService) LoadTracker(userID int) (*TrackerView, error) {
	var apps []models.CampaignApplication
	if err := t.db.Where("user_id = ? AND delete_at IS NULL", userID).
		Order("create_at DESC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}

	campaigns, err := t.loadCampaigns(apps)
	if err != nil {
		return nil, err
	}

	submissions := t.store.Load(apps, campaigns)

	now := time.Now()
	view := &TrackerView{
		Applications: apps,
		Campaigns:    campaigns,
		Steps:        make(map[int][]StepView, len(apps)),
		Progress:     make(map[int]CampaignProgress, len(apps)),
		Source:       t.store.Mode().String(),
	}

	for i := range apps {
		app := &apps[i]
		campaign := campaigns[app.CampaignID]
		if campaign == nil {
			continue
		}
		subs := submissions[app.ApplicationID]
		view.Steps[app.ApplicationID] = buildStepViews(campaign, subs, now)
		view.Progress[app.ApplicationID] = BuildProgress(campaign, subs, now)
	}
	return view, nil
}

func buildStepViews(campaign *models.Campaign, subs []models.StepSubmission, now time.Time) []StepView {
	views := make([]StepView, 0, len(subs))
	for i := range subs {
		sub := subs[i]
		snsOnly := campaign.IsSocialProofOnlyStep(sub.StepNumber)
		dl := ResolveStepDeadlines(campaign, &sub, sub.StepNumber)
		view := StepView{
			Submission: sub,
			Stage:      StageFor(WorkflowStatus(sub.WorkflowStatus), snsOnly),
			Deadlines:  dl,
		}
		if dl.Video != nil {
			u := ClassifyUrgency(*dl.Video, now)
			view.VideoUrgency = &u
		}
		if dl.SNS != nil {
			u := ClassifyUrgency(*dl.SNS, now)
			view.SNSUrgency = &u
		}
		views = append(views, view)
	}
	return views
}

func (t *TrackerService) loadCampaigns(apps []models.CampaignApplication) (map[int]*models.Campaign, error) {
	ids := make([]int, 0, len(apps))
	seen := make(map[int]bool, len(apps))
	for i := range apps {
		if !seen[apps[i].CampaignID] {
			seen[apps[i].CampaignID] = true
			ids = append(ids, apps[i].CampaignID)
		}
	}
	campaigns := make(map[int]*models.Campaign, len(ids))
	if len(ids) == 0 {
		return campaigns, nil
	}

	var rows []models.Campaign
	if err := t.db.Preload("StepDeadlines").
		Where("campaign_id IN ? AND delete_at IS NULL", ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load campaigns: %w", err)
	}
	for i := range rows {
		campaigns[rows[i].CampaignID] = &rows[i]
	}
	return campaigns, nil
}

// loadStep fetches one application with its campaign and the canonical
// submission for the given step, creating the in-memory default when no
// source has a row yet.
func (t *TrackerService) loadStep(userID, appID, step int) (*models.CampaignApplication, *models.Campaign, *models.StepSubmission, error) {
	var app models.CampaignApplication
	query := t.db.Where("application_id = ? AND delete_at IS NULL", appID)
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.First(&app).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("application not found: %w", err)
	}
	if !app.IsActive() {
		return nil, nil, nil, ErrApplicationClosed
	}

	apps := []models.CampaignApplication{app}
	campaigns, err := t.loadCampaigns(apps)
	if err != nil {
		return nil, nil, nil, err
	}
	campaign := campaigns[app.CampaignID]
	if campaign == nil {
		return nil, nil, nil, fmt.Errorf("campaign %d not found", app.CampaignID)
	}
	if step < 1 || step > campaign.ResolvedTotalSteps() {
		return nil, nil, nil, ErrStepOutOfRange
	}

	submissions := t.store.Load(apps, campaigns)
	for _, sub := range submissions[app.ApplicationID] {
		if sub.StepNumber == step {
			found := sub
			return &app, campaign, &found, nil
		}
	}
	sub := newStepSubmission(app.ApplicationID, step)
	return &app, campaign, &sub, nil
}

// StepInfo returns the application, campaign and canonical submission for
// one step. Callers use it to build storage paths before an upload.
func (t *TrackerService) StepInfo(userID, appID, step int) (*models.CampaignApplication, *models.Campaign, *models.StepSubmission, error) {
	return t.loadStep(userID, appID, step)
}

// ConfirmGuide acknowledges the shooting guide for a step and freezes the
// deadlines the creator agreed to onto the submission.
func (t *TrackerService) ConfirmGuide(userID, appID, step int) (WriteResult, error) {
	app, campaign, sub, err := t.loadStep(userID, appID, step)
	if err != nil {
		return WriteResult{}, err
	}

	next, err := NextStatus(WorkflowStatus(sub.WorkflowStatus), EventConfirmGuide, TransitionContext{
		SocialProofOnly: campaign.IsSocialProofOnlyStep(step),
	})
	if err != nil {
		return WriteResult{}, err
	}

	now := time.Now()
	sub.WorkflowStatus = string(next)
	sub.GuideConfirmedAt = &now
	if sub.VideoDeadline == nil && sub.SNSDeadline == nil {
		dl := ResolveStepDeadlines(campaign, nil, step)
		sub.VideoDeadline = dl.Video
		sub.SNSDeadline = dl.SNS
	}
	return t.store.SaveSubmission(app, sub)
}

// UploadedFile describes a stored video file, plus the optional clean-video
// companion stored alongside it.
type UploadedFile struct {
	FilePath     string
	FileURL      string
	FileName     string
	FileSize     int64
	CleanFileURL *string
}

// UploadVideo records a new video upload for a step. The store callback
// performs the actual disk write and runs only after the workflow
// transition is validated, so a rejected upload leaves nothing behind.
// Each successful upload appends a version entry; version numbers are
// never reused. Uploads during the social-proof phase keep the current
// status.
func (t *TrackerService) UploadVideo(userID, appID, step int, size int64, store func(app *models.CampaignApplication, campaign *models.Campaign, sub *models.StepSubmission) (UploadedFile, error)) (WriteResult, error) {
	if size > MaxVideoFileSize {
		return WriteResult{}, ErrFileTooLarge
	}

	app, campaign, sub, err := t.loadStep(userID, appID, step)
	if err != nil {
		return WriteResult{}, err
	}

	next, err := NextStatus(WorkflowStatus(sub.WorkflowStatus), EventUploadVideo, TransitionContext{
		SocialProofOnly: campaign.IsSocialProofOnlyStep(step),
	})
	if err != nil {
		return WriteResult{}, err
	}

	file, err := store(app, campaign, sub)
	if err != nil {
		return WriteResult{}, fmt.Errorf("failed to store video: %w", err)
	}

	now := time.Now()
	version := models.VideoVersion{
		Version:    sub.NextVersionNumber(),
		FilePath:   file.FilePath,
		FileURL:    file.FileURL,
		FileName:   file.FileName,
		FileSize:   file.FileSize,
		UploadedAt: now,
	}
	sub.VideoVersions = append(sub.VideoVersions, version)
	sub.WorkflowStatus = string(next)
	sub.VideoFileURL = &version.FileURL
	sub.VideoFileName = &version.FileName
	sub.VideoFileSize = &version.FileSize
	sub.VideoUploadedAt = &now
	if file.CleanFileURL != nil {
		sub.CleanVideoFileURL = file.CleanFileURL
	}
	return t.store.SaveSubmission(app, sub)
}

// SubmitSocialProof records the SNS post URL for a step, together with the
// clean video file and ad code when the campaign requires them.
func (t *TrackerService) SubmitSocialProof(userID, appID, step int, snsURL string, cleanFileURL, adCode *string) (WriteResult, error) {
	if snsURL == "" {
		return WriteResult{}, ErrSNSURLRequired
	}

	app, campaign, sub, err := t.loadStep(userID, appID, step)
	if err != nil {
		return WriteResult{}, err
	}

	snsOnly := campaign.IsSocialProofOnlyStep(step)
	if campaign.RequiresCleanVideo && !snsOnly && cleanFileURL == nil && sub.CleanVideoFileURL == nil {
		return WriteResult{}, ErrCleanVideoRequired
	}
	if campaign.RequiresAdCode && adCode == nil && sub.AdCode == nil {
		return WriteResult{}, ErrAdCodeRequired
	}

	next, err := NextStatus(WorkflowStatus(sub.WorkflowStatus), EventSubmitSocialProof, TransitionContext{
		SocialProofOnly: snsOnly,
	})
	if err != nil {
		return WriteResult{}, err
	}

	now := time.Now()
	sub.WorkflowStatus = string(next)
	sub.SNSURL = &snsURL
	sub.SNSSubmittedAt = &now
	if cleanFileURL != nil {
		sub.CleanVideoFileURL = cleanFileURL
	}
	if adCode != nil {
		sub.AdCode = adCode
	}
	return t.store.SaveSubmission(app, sub)
}

// RequestRevision flags an uploaded video for rework. Operator-driven.
func (t *TrackerService) RequestRevision(appID, step int, comment string, commentJa *string) (WriteResult, error) {
	app, campaign, sub, err := t.loadStep(0, appID, step)
	if err != nil {
		return WriteResult{}, err
	}

	next, err := NextStatus(WorkflowStatus(sub.WorkflowStatus), EventRequestRevision, TransitionContext{
		SocialProofOnly: campaign.IsSocialProofOnlyStep(step),
	})
	if err != nil {
		return WriteResult{}, err
	}

	sub.WorkflowStatus = string(next)
	sub.RevisionRequests = append(sub.RevisionRequests, models.RevisionRequest{
		Comment:   comment,
		CommentJa: commentJa,
		CreatedAt: time.Now(),
	})
	return t.store.SaveSubmission(app, sub)
}

// PayPoints marks a reviewed step as paid out. Operator-driven.
func (t *TrackerService) PayPoints(appID, step, amount int) (WriteResult, error) {
	app, campaign, sub, err := t.loadStep(0, appID, step)
	if err != nil {
		return WriteResult{}, err
	}

	next, err := NextStatus(WorkflowStatus(sub.WorkflowStatus), EventPayPoints, TransitionContext{
		SocialProofOnly: campaign.IsSocialProofOnlyStep(step),
	})
	if err != nil {
		return WriteResult{}, err
	}

	now := time.Now()
	sub.WorkflowStatus = string(next)
	sub.PointsAmount = &amount
	sub.PointsPaidAt = &now
	return t.store.SaveSubmission(app, sub)
}
