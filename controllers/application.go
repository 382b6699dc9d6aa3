package controllers

import (
	"net/http"
	"time"

	"creator-campaign-api/config"
	"creator-campaign-api/models"
	"creator-campaign-api/services"

	"github.com/gin-gonic/gin"
)

// GetApplications returns the current user's campaign applications
func GetApplications(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	status := c.Query("status")
	campaignID := c.Query("campaign_id")

	var applications []models.CampaignApplication
	query := config.DB.Preload("Campaign").
		Where("delete_at IS NULL")

	// Filter by user if not admin
	if roleID.(int) != 3 {
		query = query.Where("user_id = ?", userID)
	} else {
		query = query.Preload("User")
	}

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if campaignID != "" {
		query = query.Where("campaign_id = ?", campaignID)
	}

	if err := query.Order("create_at DESC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"applications": applications,
		"total":        len(applications),
	})
}

// CreateApplication applies the current user to a campaign
func CreateApplication(c *gin.Context) {
	userID, _ := c.Get("userID")

	type ApplyRequest struct {
		CampaignID int     `json:"campaign_id" binding:"required"`
		Message    *string `json:"message"`
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var campaign models.Campaign
	if err := config.DB.Where("campaign_id = ? AND delete_at IS NULL", req.CampaignID).
		First(&campaign).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	if campaign.Status != "active" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign is not open for application"})
		return
	}

	var existing models.CampaignApplication
	if err := config.DB.Where("campaign_id = ? AND user_id = ? AND delete_at IS NULL",
		req.CampaignID, userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already applied to this campaign"})
		return
	}

	now := time.Now()
	application := models.CampaignApplication{
		CampaignID: req.CampaignID,
		UserID:     userID.(int),
		Status:     models.ApplicationStatusPending,
		Message:    req.Message,
		AppliedAt:  &now,
		CreateAt:   &now,
		UpdateAt:   &now,
	}

	if err := config.DB.Create(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"application": application,
	})
}

// ApproveApplication marks an application as approved (admin only)
func ApproveApplication(c *gin.Context) {
	applicationID := c.Param("id")

	var application models.CampaignApplication
	if err := config.DB.Preload("Campaign").Preload("User").
		Where("application_id = ? AND delete_at IS NULL", applicationID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if application.Status != models.ApplicationStatusPending &&
		application.Status != models.ApplicationStatusVirtualSelected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Application cannot be approved from its current status"})
		return
	}

	now := time.Now()
	application.Status = models.ApplicationStatusApproved
	application.ApprovedAt = &now
	application.UpdateAt = &now

	if err := config.DB.Save(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve application"})
		return
	}

	if application.User != nil && application.Campaign != nil {
		services.NotifyApplicationApproved(application.User, application.Campaign)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"application": application,
	})
}

// RejectApplication marks an application as rejected (admin only)
func RejectApplication(c *gin.Context) {
	applicationID := c.Param("id")

	var application models.CampaignApplication
	if err := config.DB.Where("application_id = ? AND delete_at IS NULL", applicationID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	now := time.Now()
	application.Status = models.ApplicationStatusRejected
	application.UpdateAt = &now

	if err := config.DB.Save(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"application": application,
	})
}
