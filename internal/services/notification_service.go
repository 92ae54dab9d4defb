// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sokoline/soko-backend/internal/config"
	"github.com/sokoline/soko-backend/internal/models"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

func (s *NotificationService) SendWelcomeEmail(user *models.User) error {
	template := s.getEmailTemplate("welcome")

	data := map[string]interface{}{
		"FirstName":    user.FirstName,
		"ProfileURL":   fmt.Sprintf("%s/account", s.config.Frontend.BaseURL),
		"PlatformName": "Soko Marketplace",
	}

	subject := "Welcome to Soko Marketplace"
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, subject, body)
}

// SendNewReviewNotification mails the shop owner when a customer
// leaves a review.
func (s *NotificationService) SendNewReviewNotification(shop *models.Shop, review *models.ShopReview) error {
	var owner models.User
	if err := s.db.First(&owner, shop.OwnerID).Error; err != nil {
		return fmt.Errorf("failed to load shop owner: %w", err)
	}

	data := map[string]interface{}{
		"OwnerName": owner.FirstName,
		"ShopName":  shop.Name,
		"Rating":    review.Rating,
		"ShopURL":   fmt.Sprintf("%s/shops/%s", s.config.Frontend.BaseURL, shop.Slug),
	}

	subject := "New Review - " + shop.Name
	template := s.getEmailTemplate("new_review")
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(owner.Email, subject, body)
}

func (s *NotificationService) SendNewFollowerNotification(shop *models.Shop, followerID uint) error {
	var owner models.User
	if err := s.db.First(&owner, shop.OwnerID).Error; err != nil {
		return fmt.Errorf("failed to load shop owner: %w", err)
	}

	var follower models.User
	if err := s.db.First(&follower, followerID).Error; err != nil {
		return fmt.Errorf("failed to load follower: %w", err)
	}

	data := map[string]interface{}{
		"OwnerName":    owner.FirstName,
		"FollowerName": follower.FirstName + " " + follower.LastName,
		"ShopName":     shop.Name,
		"ShopURL":      fmt.Sprintf("%s/shops/%s", s.config.Frontend.BaseURL, shop.Slug),
	}

	subject := "New Follower - " + shop.Name
	template := s.getEmailTemplate("new_follower")
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(owner.Email, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email skipped, SMTP not configured")
		return nil
	}

	// Setup authentication
	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	// Compose message
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	// Send email
	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	// In a real implementation, these would be loaded from files or database
	templates := map[string]EmailTemplate{
		"welcome": {
			Subject: "Welcome to Soko Marketplace",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Welcome {{.FirstName}}!</h2>
	<p>Thank you for joining Soko Marketplace. You can manage your account here:</p>
	<a href="{{.ProfileURL}}">My Account</a>
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`,
		},
		"new_review": {
			Subject: "New Review",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>New Review</h2>
	<p>Hello {{.OwnerName}},</p>
	<p>Your shop "{{.ShopName}}" received a new {{.Rating}}-star review.</p>
	<a href="{{.ShopURL}}">View Shop</a>
	<p>Best regards,<br>Soko Marketplace Team</p>
</body>
</html>`,
		},
		"new_follower": {
			Subject: "New Follower",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>New Follower</h2>
	<p>Hello {{.OwnerName}},</p>
	<p>{{.FollowerName}} is now following "{{.ShopName}}".</p>
	<a href="{{.ShopURL}}">View Shop</a>
	<p>Best regards,<br>Soko Marketplace Team</p>
</body>
</html>`,
		},
	}

	if template, exists := templates[templateType]; exists {
		return template
	}

	// Default template
	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
