package controllers

import (
	"net/http"

	"creator-campaign-api/config"
	"creator-campaign-api/models"

	"github.com/gin-gonic/gin"
)

// GetCampaigns lists campaigns open for application
func GetCampaigns(c *gin.Context) {
	campaignType := c.Query("campaign_type")
	status := c.DefaultQuery("status", "active")

	var campaigns []models.Campaign
	query := config.DB.Preload("StepDeadlines").
		Where("delete_at IS NULL")

	if status != "all" {
		query = query.Where("status = ?", status)
	}
	if campaignType != "" {
		query = query.Where("campaign_type = ?", campaignType)
	}

	if err := query.Order("create_at DESC").Find(&campaigns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch campaigns"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"campaigns": campaigns,
		"total":     len(campaigns),
	})
}

// GetCampaign returns a specific campaign
func GetCampaign(c *gin.Context) {
	campaignID := c.Param("id")

	var campaign models.Campaign
	if err := config.DB.Preload("StepDeadlines").
		Where("campaign_id = ? AND delete_at IS NULL", campaignID).
		First(&campaign).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"campaign":    campaign,
		"total_steps": campaign.ResolvedTotalSteps(),
	})
}
