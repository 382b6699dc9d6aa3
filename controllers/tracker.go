package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"creator-campaign-api/config"
	"creator-campaign-api/models"
	"creator-campaign-api/services"
	"creator-campaign-api/utils"

	"github.com/gin-gonic/gin"
)

// ===================== MY-PAGE CAMPAIGN TRACKER =====================

// GetTracker returns the full my-page tracker view: campaigns, canonical
// submissions per application and the per-campaign roll-up
func GetTracker(c *gin.Context) {
	userID, _ := c.Get("userID")

	svc := services.NewTrackerService(config.DB)
	view, err := svc.LoadTracker(userID.(int))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tracker"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tracker": view,
	})
}

func trackerParams(c *gin.Context) (int, int, bool) {
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return 0, 0, false
	}
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step number"})
		return 0, 0, false
	}
	return appID, step, true
}

func trackerErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrSNSURLRequired),
		errors.Is(err, services.ErrCleanVideoRequired),
		errors.Is(err, services.ErrAdCodeRequired),
		errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, services.ErrStepOutOfRange),
		errors.Is(err, services.ErrApplicationClosed):
		return http.StatusBadRequest
	}
	var transitionErr *services.TransitionError
	if errors.As(err, &transitionErr) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func respondWriteResult(c *gin.Context, result services.WriteResult) {
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"submission":   result.Submission,
		"mirror_error": result.MirrorErr != nil,
	})
}

// ConfirmGuide acknowledges the shooting guide for a step
func ConfirmGuide(c *gin.Context) {
	userID, _ := c.Get("userID")
	appID, step, ok := trackerParams(c)
	if !ok {
		return
	}

	svc := services.NewTrackerService(config.DB)
	result, err := svc.ConfirmGuide(userID.(int), appID, step)
	if err != nil {
		c.JSON(trackerErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	respondWriteResult(c, result)
}

// UploadVideo stores a video file for a step and advances the workflow
func UploadVideo(c *gin.Context) {
	userID, _ := c.Get("userID")
	appID, step, ok := trackerParams(c)
	if !ok {
		return
	}

	file, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video file is required"})
		return
	}

	// Size cap checked before anything touches the disk.
	if file.Size > services.MaxVideoFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrFileTooLarge.Error()})
		return
	}

	svc := services.NewTrackerService(config.DB)

	// The disk writes happen inside the callback, after the service has
	// validated the workflow transition, so a rejected upload leaves no
	// orphan file behind.
	result, err := svc.UploadVideo(userID.(int), appID, step, file.Size,
		func(app *models.CampaignApplication, campaign *models.Campaign, sub *models.StepSubmission) (services.UploadedFile, error) {
			relPath := services.BuildStoragePath(
				app.UserID, app.CampaignID, sub.SubmissionID,
				sub.NextVersionNumber(), services.FileKindVideo, file.Filename,
			)
			fullPath := services.AbsoluteStoragePath(relPath)
			if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				return services.UploadedFile{}, err
			}
			if err := c.SaveUploadedFile(file, fullPath); err != nil {
				return services.UploadedFile{}, err
			}

			var cleanFileURL *string
			if cleanFile, err := c.FormFile("clean_video"); err == nil {
				cleanRel := services.BuildStoragePath(
					app.UserID, app.CampaignID, sub.SubmissionID,
					sub.NextVersionNumber(), services.FileKindClean, cleanFile.Filename,
				)
				cleanFull := services.AbsoluteStoragePath(cleanRel)
				if err := os.MkdirAll(filepath.Dir(cleanFull), 0755); err == nil {
					if err := c.SaveUploadedFile(cleanFile, cleanFull); err == nil {
						url := services.PublicURL(cleanRel)
						cleanFileURL = &url
					}
				}
			}

			return services.UploadedFile{
				FilePath:     relPath,
				FileURL:      services.PublicURL(relPath),
				FileName:     file.Filename,
				FileSize:     file.Size,
				CleanFileURL: cleanFileURL,
			}, nil
		})
	if err != nil {
		c.JSON(trackerErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	respondWriteResult(c, result)
}

// SubmitSocialProof records the SNS post URL (plus clean video / ad code
// when the campaign requires them) for a step
func SubmitSocialProof(c *gin.Context) {
	userID, _ := c.Get("userID")
	appID, step, ok := trackerParams(c)
	if !ok {
		return
	}

	snsURL := utils.SanitizeInput(c.PostForm("sns_url"))
	if snsURL != "" && !utils.ValidateSNSURL(snsURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "SNS URL must be a valid http(s) link"})
		return
	}
	var adCode *string
	if v := c.PostForm("ad_code"); v != "" {
		adCode = &v
	}

	svc := services.NewTrackerService(config.DB)

	var cleanFileURL *string
	if cleanFile, err := c.FormFile("clean_video"); err == nil {
		app, _, sub, infoErr := svc.StepInfo(userID.(int), appID, step)
		if infoErr != nil {
			c.JSON(trackerErrorStatus(infoErr), gin.H{"error": infoErr.Error()})
			return
		}
		cleanRel := services.BuildStoragePath(
			app.UserID, app.CampaignID, sub.SubmissionID,
			sub.NextVersionNumber(), services.FileKindClean, cleanFile.Filename,
		)
		cleanFull := services.AbsoluteStoragePath(cleanRel)
		if err := os.MkdirAll(filepath.Dir(cleanFull), 0755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store clean video"})
			return
		}
		if err := c.SaveUploadedFile(cleanFile, cleanFull); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store clean video"})
			return
		}
		url := services.PublicURL(cleanRel)
		cleanFileURL = &url
	}

	result, err := svc.SubmitSocialProof(userID.(int), appID, step, snsURL, cleanFileURL, adCode)
	if err != nil {
		c.JSON(trackerErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	respondWriteResult(c, result)
}

// ===================== OPERATOR REVIEW =====================

// RequestRevision flags a step's video for rework (admin only)
func RequestRevision(c *gin.Context) {
	appID, step, ok := trackerParams(c)
	if !ok {
		return
	}

	type RevisionRequestBody struct {
		Comment   string  `json:"comment" binding:"required"`
		CommentJa *string `json:"comment_ja"`
	}
	var req RevisionRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewTrackerService(config.DB)
	result, err := svc.RequestRevision(appID, step, req.Comment, req.CommentJa)
	if err != nil {
		c.JSON(trackerErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	notifyOwner(appID, func(user *models.User, campaign *models.Campaign) {
		services.NotifyRevisionRequested(user, campaign, step, req.Comment)
	})
	respondWriteResult(c, result)
}

// PayPoints marks a reviewed step as paid out (admin only)
func PayPoints(c *gin.Context) {
	appID, step, ok := trackerParams(c)
	if !ok {
		return
	}

	type PayPointsBody struct {
		Amount *int `json:"amount"`
	}
	// Amount is optional; an empty body falls back to the campaign reward.
	var req PayPointsBody
	_ = c.ShouldBindJSON(&req)

	svc := services.NewTrackerService(config.DB)

	amount := 0
	if req.Amount != nil {
		amount = *req.Amount
	} else {
		var application models.CampaignApplication
		if err := config.DB.Preload("Campaign").
			Where("application_id = ? AND delete_at IS NULL", appID).
			First(&application).Error; err == nil && application.Campaign != nil {
			amount = application.Campaign.RewardPoints
		}
	}

	result, err := svc.PayPoints(appID, step, amount)
	if err != nil {
		c.JSON(trackerErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	notifyOwner(appID, func(user *models.User, campaign *models.Campaign) {
		services.NotifyPointsPaid(user, campaign, step, amount)
	})
	respondWriteResult(c, result)
}

func notifyOwner(appID int, send func(*models.User, *models.Campaign)) {
	var application models.CampaignApplication
	if err := config.DB.Preload("User").Preload("Campaign").
		Where("application_id = ? AND delete_at IS NULL", appID).
		First(&application).Error; err != nil {
		return
	}
	if application.User != nil && application.Campaign != nil {
		send(application.User, application.Campaign)
	}
}
