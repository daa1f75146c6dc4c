// internal/services/notification_service.go
package services

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kartloop/dropship-backend/internal/config"
	"github.com/kartloop/dropship-backend/internal/models"
	"github.com/kartloop/dropship-backend/internal/utils"
)

// NotificationService owns the append-only notification feed and the outbound
// email collaborator. Everything here is best-effort: callers invoke it after
// their transaction commits and surface failures as warnings, never rollbacks.
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

// Append writes one notification row. Never called inside a transaction.
func (s *NotificationService) Append(title, description, link string) error {
	notification := &models.Notification{
		Title:       title,
		Description: description,
		Link:        link,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (s *NotificationService) List(params utils.PaginationParams, unreadOnly bool) ([]models.Notification, int64, error) {
	query := s.db.Model(&models.Notification{})
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at"})
	query = utils.ApplyPagination(query, params)

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return notifications, total, nil
}

func (s *NotificationService) MarkRead(id uuid.UUID) error {
	now := time.Now()
	result := s.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"read": true, "read_at": &now})

	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *NotificationService) MarkAllRead() error {
	now := time.Now()
	return s.db.Model(&models.Notification{}).
		Where("read = ?", false).
		Updates(map[string]interface{}{"read": true, "read_at": &now}).Error
}

// Order notifications

func (s *NotificationService) NotifyOrderPlaced(order *models.Order) error {
	title := "New order " + order.OrderNumber
	description := fmt.Sprintf("Order %s for ₹%.2f placed via store %s", order.OrderNumber, order.TotalAmount, order.StoreID)
	link := fmt.Sprintf("%s/admin/orders/%s", s.config.Frontend.BaseURL, order.ID)

	if err := s.Append(title, description, link); err != nil {
		return err
	}

	data := map[string]interface{}{
		"OrderNumber": order.OrderNumber,
		"Amount":      order.TotalAmount,
		"Status":      order.Status,
		"OrderURL":    link,
	}
	return s.sendTemplatedEmail(order.StoreContactEmail, "order_status", "New order "+order.OrderNumber, data)
}

// NotifyOrderStatus emits exactly one notification describing the new status,
// keyed by order id and status text, plus a status email to the snapshotted
// store contact address.
func (s *NotificationService) NotifyOrderStatus(order *models.Order) error {
	title := fmt.Sprintf("Order %s %s", order.OrderNumber, order.Status)
	description := fmt.Sprintf("Order %s changed status to %s", order.OrderNumber, order.Status)
	link := fmt.Sprintf("%s/admin/orders/%s", s.config.Frontend.BaseURL, order.ID)

	if err := s.Append(title, description, link); err != nil {
		return err
	}

	data := map[string]interface{}{
		"OrderNumber": order.OrderNumber,
		"Amount":      order.TotalAmount,
		"Status":      order.Status,
		"OrderURL":    link,
	}
	subject := fmt.Sprintf("Order %s is now %s", order.OrderNumber, order.Status)
	return s.sendTemplatedEmail(order.StoreContactEmail, "order_status", subject, data)
}

// Withdrawal notifications

func (s *NotificationService) NotifyWithdrawalPaid(request *models.WithdrawalRequest, creator *models.CreatorProfile) error {
	title := "Withdrawal paid"
	description := fmt.Sprintf("₹%.2f paid out to %s", request.Amount, creator.DisplayName)
	link := fmt.Sprintf("%s/dashboard/withdrawals", s.config.Frontend.BaseURL)

	if err := s.Append(title, description, link); err != nil {
		return err
	}

	data := map[string]interface{}{
		"Name":    creator.DisplayName,
		"Amount":  request.Amount,
		"UPIID":   request.UPIID,
		"Balance": creator.TotalEarnings,
	}
	return s.sendTemplatedEmail(creator.ContactEmail, "withdrawal_paid", "Your withdrawal has been paid", data)
}

func (s *NotificationService) NotifyWithdrawalRejected(request *models.WithdrawalRequest) error {
	title := "Withdrawal rejected"
	description := fmt.Sprintf("Withdrawal request for ₹%.2f was rejected", request.Amount)
	link := fmt.Sprintf("%s/dashboard/withdrawals", s.config.Frontend.BaseURL)

	return s.Append(title, description, link)
}

// Helper methods

func (s *NotificationService) sendTemplatedEmail(to, templateType, subject string, data map[string]interface{}) error {
	if to == "" {
		return nil
	}

	tmpl := s.getEmailTemplate(templateType)
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(to, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email skipped (SMTP not configured)")
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
	templates := map[string]EmailTemplate{
		"order_status": {
			Subject: "Order update",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Order {{.OrderNumber}}</h2>
	<p>Your order for ₹{{printf "%.2f" .Amount}} is now <strong>{{.Status}}</strong>.</p>
	<a href="{{.OrderURL}}">View order</a>
	<p>Best regards,<br>Kartloop Team</p>
</body>
</html>`,
		},
		"withdrawal_paid": {
			Subject: "Withdrawal paid",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Payout sent</h2>
	<p>Hello {{.Name}},</p>
	<p>₹{{printf "%.2f" .Amount}} has been transferred to {{.UPIID}}.</p>
	<p>Remaining balance: ₹{{printf "%.2f" .Balance}}</p>
	<p>Best regards,<br>Kartloop Team</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	// Default template
	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}

// sideEffect wraps a best-effort post-commit action's failure.
func sideEffect(action string, err error) error {
	if err == nil {
		return nil
	}
	logrus.WithError(err).WithField("action", action).Warn("Post-commit side effect failed")
	return &SideEffectError{Action: action, Err: err}
}

func notFoundOr(err error, wrap string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf(wrap+": %w", err)
}
