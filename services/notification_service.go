package services

import (
	"fmt"
	"log"

	"creator-campaign-api/config"
	"creator-campaign-api/models"
)

// Notification mails are best-effort: a delivery failure is logged and
// never fails the request that triggered it.

func NotifyApplicationApproved(user *models.User, campaign *models.Campaign) {
	subject := fmt.Sprintf("You were selected for %s", campaign.Title)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations! You have been selected for the campaign <b>%s</b> by %s.</p>
		<p>Open your my-page tracker to confirm the shooting guide and get started.</p>`,
		user.DisplayName, campaign.Title, campaign.BrandName)
	sendNotification(user.Email, subject, body)
}

func NotifyRevisionRequested(user *models.User, campaign *models.Campaign, step int, comment string) {
	subject := fmt.Sprintf("Revision requested for %s (step %d)", campaign.Title, step)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>The brand reviewed your video for <b>%s</b> step %d and asked for a revision:</p>
		<blockquote>%s</blockquote>
		<p>Please upload a new version from your my-page tracker.</p>`,
		user.DisplayName, campaign.Title, step, comment)
	sendNotification(user.Email, subject, body)
}

func NotifyPointsPaid(user *models.User, campaign *models.Campaign, step, amount int) {
	subject := fmt.Sprintf("Points awarded for %s", campaign.Title)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your submission for <b>%s</b> step %d passed review and <b>%d points</b> were added to your account.</p>`,
		user.DisplayName, campaign.Title, step, amount)
	sendNotification(user.Email, subject, body)
}

func sendNotification(to, subject, body string) {
	if to == "" {
		return
	}
	if err := config.SendMail([]string{to}, subject, body); err != nil {
		log.Printf("failed to send notification mail %q to %s: %v", subject, to, err)
	}
}
