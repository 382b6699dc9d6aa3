package services

import (
	"fmt"
	"log"
	"sort"
	"time"

	"creator-campaign-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SourceMode identifies which backing representation holds submission data
// for the current batch of applications.
type SourceMode int

const (
	SourceUnknown SourceMode = iota
	SourceStepTable
	SourceVideoTable
	SourceApplicationFallback
)

func (m SourceMode) String() string {
	switch m {
	case SourceStepTable:
		return "step_submissions"
	case SourceVideoTable:
		return "video_submissions"
	case SourceApplicationFallback:
		return "application_fallback"
	default:
		return "unknown"
	}
}

// WriteResult reports the outcome of a submission write. The primary write
// either succeeded or SaveSubmission returned an error; the application
// mirror is best-effort and its failure is carried here without failing
// the call.
type WriteResult struct {
	Submission *models.StepSubmission
	MirrorErr  error
}

// SubmissionStore presents one canonical submission shape over the three
// backing representations (step_submissions, the legacy video_submissions
// table, and flat columns on campaign_applications). The source is resolved
// once per batch and cached for the life of the store instance; writes go
// to the detected source and are mirrored onto the application row.
type SubmissionStore struct {
	db   *gorm.DB
	mode SourceMode
}

func NewSubmissionStore(db *gorm.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

// Mode returns the backing source detected by the last Load.
func (s *SubmissionStore) Mode() SourceMode {
	return s.mode
}

// Load returns the canonical submissions for every given application,
// keyed by application id and ordered by step number. Sources are tried in
// priority order; a query error counts as "table unusable" and falls
// through to the next source. An empty result is valid, not an error.
func (s *SubmissionStore) Load(apps []models.CampaignApplication, campaigns map[int]*models.Campaign) map[int][]models.StepSubmission {
	if len(apps) == 0 {
		return map[int][]models.StepSubmission{}
	}

	if result, ok := s.loadFromStepTable(apps, campaigns); ok {
		s.mode = SourceStepTable
		return result
	}
	if result, ok := s.loadFromVideoTable(apps); ok {
		s.mode = SourceVideoTable
		return result
	}

	s.mode = SourceApplicationFallback
	result := make(map[int][]models.StepSubmission, len(apps))
	for i := range apps {
		app := &apps[i]
		if !app.IsActive() {
			continue
		}
		result[app.ApplicationID] = SynthesizeFromApplication(app, campaigns[app.CampaignID])
	}
	return result
}

func applicationIDs(apps []models.CampaignApplication) []int {
	ids := make([]int, 0, len(apps))
	for i := range apps {
		ids = append(ids, apps[i].ApplicationID)
	}
	return ids
}

func (s *SubmissionStore) loadFromStepTable(apps []models.CampaignApplication, campaigns map[int]*models.Campaign) (map[int][]models.StepSubmission, bool) {
	var rows []models.StepSubmission
	if err := s.db.Where("application_id IN ?", applicationIDs(apps)).
		Order("application_id, step_number").
		Find(&rows).Error; err != nil {
		log.Printf("step_submissions unavailable, falling back: %v", err)
		return nil, false
	}
	if len(rows) == 0 {
		return nil, false
	}

	result := make(map[int][]models.StepSubmission, len(apps))
	for _, row := range rows {
		result[row.ApplicationID] = append(result[row.ApplicationID], row)
	}

	// Provision missing step rows for active applications so every
	// expected step 1..totalSteps exists. Duplicate inserts are ignored.
	for i := range apps {
		app := &apps[i]
		if !app.IsActive() {
			continue
		}
		total := 1
		if campaign := campaigns[app.CampaignID]; campaign != nil {
			total = campaign.ResolvedTotalSteps()
		}
		existing := make(map[int]bool, len(result[app.ApplicationID]))
		for _, sub := range result[app.ApplicationID] {
			existing[sub.StepNumber] = true
		}
		for step := 1; step <= total; step++ {
			if existing[step] {
				continue
			}
			sub := newStepSubmission(app.ApplicationID, step)
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub).Error; err != nil {
				log.Printf("failed to provision step %d for application %d: %v", step, app.ApplicationID, err)
				continue
			}
			result[app.ApplicationID] = append(result[app.ApplicationID], sub)
		}
		sortByStep(result[app.ApplicationID])
	}

	return result, true
}

func (s *SubmissionStore) loadFromVideoTable(apps []models.CampaignApplication) (map[int][]models.StepSubmission, bool) {
	var rows []models.VideoSubmission
	if err := s.db.Where("application_id IN ?", applicationIDs(apps)).
		Order("application_id, step_number, video_submission_id").
		Find(&rows).Error; err != nil {
		log.Printf("video_submissions unavailable, falling back: %v", err)
		return nil, false
	}
	if len(rows) == 0 {
		return nil, false
	}

	byApp := make(map[int][]models.VideoSubmission, len(apps))
	for _, row := range rows {
		byApp[row.ApplicationID] = append(byApp[row.ApplicationID], row)
	}

	result := make(map[int][]models.StepSubmission, len(byApp))
	for appID, appRows := range byApp {
		result[appID] = TranslateVideoSubmissions(appRows)
	}
	return result, true
}

func newStepSubmission(appID, step int) models.StepSubmission {
	now := time.Now()
	return models.StepSubmission{
		ApplicationID:  appID,
		StepNumber:     step,
		WorkflowStatus: string(StatusGuidePending),
		CreateAt:       &now,
		UpdateAt:       &now,
	}
}

func sortByStep(subs []models.StepSubmission) {
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].StepNumber < subs[j].StepNumber
	})
}

// LegacyStatusToWorkflow translates a video_submissions status code into
// the canonical workflow status.
func LegacyStatusToWorkflow(status string) WorkflowStatus {
	switch status {
	case models.VideoSubmissionStatusSubmitted:
		return StatusVideoUploaded
	case models.VideoSubmissionStatusApproved:
		return StatusSNSPending
	case models.VideoSubmissionStatusRevisionRequested:
		return StatusRevisionRequired
	case models.VideoSubmissionStatusResubmitted:
		return StatusVideoUploaded
	case models.VideoSubmissionStatusCompleted:
		return StatusPointsPaid
	default:
		return StatusGuidePending
	}
}

// WorkflowToLegacyStatus translates a canonical workflow status back into
// the nearest video_submissions status code for writes in legacy mode.
func WorkflowToLegacyStatus(status WorkflowStatus, version int) string {
	switch status {
	case StatusRevisionRequired:
		return models.VideoSubmissionStatusRevisionRequested
	case StatusSNSPending, StatusSNSSubmitted, StatusReviewPending:
		return models.VideoSubmissionStatusApproved
	case StatusPointsPaid, StatusCompleted:
		return models.VideoSubmissionStatusCompleted
	default:
		if version > 1 {
			return models.VideoSubmissionStatusResubmitted
		}
		return models.VideoSubmissionStatusSubmitted
	}
}

// TranslateVideoSubmissions folds the per-file legacy rows of one
// application into canonical per-step submissions. Every file row becomes a
// version entry; the newest row per step supplies the current fields and
// status.
func TranslateVideoSubmissions(rows []models.VideoSubmission) []models.StepSubmission {
	byStep := make(map[int][]models.VideoSubmission)
	for _, row := range rows {
		byStep[row.StepNumber] = append(byStep[row.StepNumber], row)
	}

	steps := make([]int, 0, len(byStep))
	for step := range byStep {
		steps = append(steps, step)
	}
	sort.Ints(steps)

	subs := make([]models.StepSubmission, 0, len(steps))
	for _, step := range steps {
		stepRows := byStep[step]
		sort.Slice(stepRows, func(i, j int) bool {
			return stepRows[i].VideoSubmissionID < stepRows[j].VideoSubmissionID
		})

		latest := stepRows[len(stepRows)-1]
		sub := models.StepSubmission{
			ApplicationID:     latest.ApplicationID,
			StepNumber:        step,
			WorkflowStatus:    string(LegacyStatusToWorkflow(latest.Status)),
			VideoFileURL:      latest.VideoURL,
			VideoFileName:     latest.FileName,
			VideoFileSize:     latest.FileSize,
			VideoUploadedAt:   latest.SubmittedAt,
			CleanVideoFileURL: latest.CleanVideoURL,
			SNSURL:            latest.SNSUploadURL,
			AdCode:            coalesce(latest.AdCode, latest.PartnershipCode),
			CreateAt:          latest.CreateAt,
			UpdateAt:          latest.UpdateAt,
		}
		for i, row := range stepRows {
			if row.VideoURL == nil {
				continue
			}
			version := models.VideoVersion{
				Version: i + 1,
				FileURL: *row.VideoURL,
			}
			if row.FileName != nil {
				version.FileName = *row.FileName
			}
			if row.FileSize != nil {
				version.FileSize = *row.FileSize
			}
			if row.SubmittedAt != nil {
				version.UploadedAt = *row.SubmittedAt
			}
			sub.VideoVersions = append(sub.VideoVersions, version)
		}
		subs = append(subs, sub)
	}
	return subs
}

func coalesce(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}

// SynthesizeFromApplication derives per-step submissions from the flat
// artifact columns on the application row. Used when neither first-class
// table has any data.
func SynthesizeFromApplication(app *models.CampaignApplication, campaign *models.Campaign) []models.StepSubmission {
	total := 1
	if campaign != nil {
		total = campaign.ResolvedTotalSteps()
	}

	subs := make([]models.StepSubmission, 0, total)
	for step := 1; step <= total; step++ {
		videoURL := app.WeekURL(step)
		sub := models.StepSubmission{
			ApplicationID:     app.ApplicationID,
			StepNumber:        step,
			VideoFileURL:      videoURL,
			SNSURL:            app.SNSURL,
			CleanVideoFileURL: app.CleanVideoURL,
			AdCode:            app.PartnershipCode,
		}

		switch {
		case app.Status == models.ApplicationStatusCompleted:
			sub.WorkflowStatus = string(StatusPointsPaid)
		case videoURL == nil || *videoURL == "":
			sub.WorkflowStatus = string(StatusGuidePending)
		case app.SNSURL == nil || *app.SNSURL == "":
			sub.WorkflowStatus = string(StatusVideoUploaded)
		default:
			sub.WorkflowStatus = string(StatusSNSSubmitted)
		}

		if videoURL != nil && *videoURL != "" {
			sub.VideoVersions = []models.VideoVersion{{Version: 1, FileURL: *videoURL}}
		}
		subs = append(subs, sub)
	}
	return subs
}

// SaveSubmission writes the canonical submission to the active backing
// source and then best-effort mirrors a subset of its fields onto the
// application row. A primary failure is returned as the error; a mirror
// failure only surfaces through WriteResult.MirrorErr. In fallback mode
// the application row is the primary store, so its failure is the
// primary failure.
func (s *SubmissionStore) SaveSubmission(app *models.CampaignApplication, sub *models.StepSubmission) (WriteResult, error) {
	if s.mode == SourceApplicationFallback {
		if err := s.mirrorToApplication(app, sub); err != nil {
			return WriteResult{}, fmt.Errorf("failed to save submission: %w", err)
		}
		return WriteResult{Submission: sub}, nil
	}

	var err error
	switch s.mode {
	case SourceVideoTable:
		err = s.saveToVideoTable(sub)
	default:
		err = s.saveToStepTable(sub)
	}
	if err != nil {
		return WriteResult{}, fmt.Errorf("failed to save submission: %w", err)
	}

	result := WriteResult{Submission: sub}
	if mirrorErr := s.mirrorToApplication(app, sub); mirrorErr != nil {
		log.Printf("application mirror write failed for application %d step %d: %v",
			app.ApplicationID, sub.StepNumber, mirrorErr)
		result.MirrorErr = mirrorErr
	}
	return result, nil
}

func (s *SubmissionStore) saveToStepTable(sub *models.StepSubmission) error {
	now := time.Now()
	sub.UpdateAt = &now
	if sub.SubmissionID != 0 {
		return s.db.Save(sub).Error
	}
	if sub.CreateAt == nil {
		sub.CreateAt = &now
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "application_id"}, {Name: "step_number"}},
		UpdateAll: true,
	}).Create(sub).Error
}

func (s *SubmissionStore) saveToVideoTable(sub *models.StepSubmission) error {
	status := WorkflowStatus(sub.WorkflowStatus)
	// The legacy table has no pre-upload representation; a row written for
	// these statuses would read back as an uploaded video. Only the
	// application mirror records guide confirmation in this mode.
	if status == StatusGuidePending || status == StatusGuideConfirmed {
		return nil
	}

	version := 1
	if latest := sub.LatestVersion(); latest != nil {
		version = latest.Version
	}
	row := models.VideoSubmission{
		ApplicationID: sub.ApplicationID,
		StepNumber:    sub.StepNumber,
		Status:        WorkflowToLegacyStatus(status, version),
		VideoURL:      sub.VideoFileURL,
		CleanVideoURL: sub.CleanVideoFileURL,
		SNSUploadURL:  sub.SNSURL,
		AdCode:        sub.AdCode,
		FileName:      sub.VideoFileName,
		FileSize:      sub.VideoFileSize,
		SubmittedAt:   sub.VideoUploadedAt,
	}

	var existing models.VideoSubmission
	err := s.db.Where("application_id = ? AND step_number = ?", sub.ApplicationID, sub.StepNumber).
		Order("video_submission_id DESC").
		First(&existing).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	// The legacy table keeps one row per uploaded file, so a save carrying
	// a file the newest row does not know yet appends a row; status-only
	// changes update the newest row in place.
	newUpload := sub.VideoFileURL != nil &&
		(existing.VideoURL == nil || *existing.VideoURL != *sub.VideoFileURL)
	if err == gorm.ErrRecordNotFound || newUpload {
		now := time.Now()
		row.CreateAt = &now
		return s.db.Create(&row).Error
	}
	row.VideoSubmissionID = existing.VideoSubmissionID
	row.CreateAt = existing.CreateAt
	return s.db.Save(&row).Error
}

// mirrorToApplication keeps the flat artifact columns and lifecycle status
// on campaign_applications current for legacy readers.
func (s *SubmissionStore) mirrorToApplication(app *models.CampaignApplication, sub *models.StepSubmission) error {
	updates := map[string]interface{}{}

	if sub.VideoFileURL != nil {
		switch sub.StepNumber {
		case 1:
			updates["video_file_url"] = *sub.VideoFileURL
			updates["week1_url"] = *sub.VideoFileURL
		case 2:
			updates["week2_url"] = *sub.VideoFileURL
		case 3:
			updates["week3_url"] = *sub.VideoFileURL
		case 4:
			updates["week4_url"] = *sub.VideoFileURL
		}
	}
	if sub.SNSURL != nil {
		updates["sns_url"] = *sub.SNSURL
	}
	if sub.CleanVideoFileURL != nil {
		updates["clean_video_url"] = *sub.CleanVideoFileURL
	}
	if sub.AdCode != nil {
		updates["partnership_code"] = *sub.AdCode
	}

	switch WorkflowStatus(sub.WorkflowStatus) {
	case StatusVideoUploaded:
		if app.Status != models.ApplicationStatusSNSSubmitted && app.Status != models.ApplicationStatusCompleted {
			updates["status"] = models.ApplicationStatusVideoSubmitted
		}
	case StatusSNSSubmitted:
		if app.Status != models.ApplicationStatusCompleted {
			updates["status"] = models.ApplicationStatusSNSSubmitted
		}
	case StatusPointsPaid, StatusCompleted:
		updates["status"] = models.ApplicationStatusCompleted
	}

	if len(updates) == 0 {
		return nil
	}
	updates["update_at"] = time.Now()

	err := s.db.Model(&models.CampaignApplication{}).
		Where("application_id = ?", app.ApplicationID).
		Updates(updates).Error
	if err != nil {
		return err
	}
	if status, ok := updates["status"].(string); ok {
		app.Status = status
	}
	return nil
}
