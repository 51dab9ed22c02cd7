// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/loanpro-backend/internal/config"
	"github.com/javajoker/loanpro-backend/internal/logger"
	"github.com/javajoker/loanpro-backend/internal/models"
)

type NotificationService struct {
	config *config.Config
	log    *logrus.Entry

	mu   sync.Mutex
	sent []SentEmail
}

type EmailTemplate struct {
	Subject string
	Body    string
}

// SentEmail is kept for emails that were logged instead of delivered.
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{
		config: config,
		log:    logger.WithComponent("notifications"),
	}
}

func (s *NotificationService) SendWelcomeEmail(user *models.User) error {
	data := map[string]interface{}{
		"Name":         user.FullName(),
		"Username":     user.Username,
		"ProfileURL":   fmt.Sprintf("%s/profile", s.config.Frontend.BaseURL),
		"PlatformName": s.config.Email.FromName,
	}
	return s.send(user.Email, "welcome", data)
}

func (s *NotificationService) SendLoanDecisionNotification(app *models.LoanApplication, customer *models.User) error {
	data := map[string]interface{}{
		"Name":     customer.FullName(),
		"Purpose":  app.Purpose,
		"Amount":   fmt.Sprintf("%.2f", app.Amount),
		"Duration": app.Duration,
		"EMI":      fmt.Sprintf("%.0f", app.EMI),
		"Reason":   app.Reason,
		"LoanURL":  fmt.Sprintf("%s/loans/%s", s.config.Frontend.BaseURL, app.ID),
	}

	templateType := "loan_approved"
	if app.Status == models.ApplicationStatusRejected {
		templateType = "loan_rejected"
	}
	return s.send(customer.Email, templateType, data)
}

func (s *NotificationService) SendPaymentReceipt(app *models.LoanApplication, customer *models.User, payments []models.LoanPayment, total float64) error {
	months := make([]int, 0, len(payments))
	reference := ""
	for _, p := range payments {
		months = append(months, p.EMIMonth)
		reference = p.Reference
	}

	data := map[string]interface{}{
		"Name":      customer.FullName(),
		"Purpose":   app.Purpose,
		"Months":    months,
		"Amount":    fmt.Sprintf("%.2f", total),
		"Currency":  s.config.Payment.Currency,
		"Reference": reference,
	}
	return s.send(customer.Email, "payment_receipt", data)
}

// Sent returns the emails logged while SMTP delivery is disabled.
func (s *NotificationService) Sent() []SentEmail {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SentEmail, len(s.sent))
	copy(out, s.sent)
	return out
}

// Helper methods
func (s *NotificationService) send(to, templateType string, data interface{}) error {
	tmpl, ok := emailTemplates[templateType]
	if !ok {
		return fmt.Errorf("unknown email template %q", templateType)
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(to, tmpl.Subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("no recipient for %q", subject)
	}

	if !s.config.Email.Enabled || s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		s.mu.Lock()
		s.sent = append(s.sent, SentEmail{To: to, Subject: subject, Body: body})
		s.mu.Unlock()

		s.log.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email delivery disabled, logged instead")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body))

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

var emailTemplates = map[string]EmailTemplate{
	"welcome": {
		Subject: "Welcome to LoanPro",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Welcome {{.Name}}!</h2>
	<p>Your account <strong>{{.Username}}</strong> is ready. Link your bank account to start applying for loans:</p>
	<a href="{{.ProfileURL}}">Complete your profile</a>
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`,
	},
	"loan_approved": {
		Subject: "Your loan application was approved",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Loan Approved!</h2>
	<p>Hello {{.Name}},</p>
	<p>Your {{.Purpose}} application for {{.Amount}} over {{.Duration}} months has been approved.</p>
	<p>Your monthly installment is {{.EMI}}.</p>
	<a href="{{.LoanURL}}">View repayment schedule</a>
	<p>Best regards,<br>LoanPro Team</p>
</body>
</html>`,
	},
	"loan_rejected": {
		Subject: "Update on your loan application",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Loan Application Update</h2>
	<p>Hello {{.Name}},</p>
	<p>Unfortunately your {{.Purpose}} application for {{.Amount}} was not approved.</p>
	<p>Reason: {{.Reason}}</p>
	<p>Best regards,<br>LoanPro Team</p>
</body>
</html>`,
	},
	"payment_receipt": {
		Subject: "Payment received",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Payment Received</h2>
	<p>Hello {{.Name}},</p>
	<p>We received {{.Amount}} {{.Currency}} for your {{.Purpose}} (installments {{range $i, $m := .Months}}{{if $i}}, {{end}}{{$m}}{{end}}).</p>
	<p>Reference: {{.Reference}}</p>
	<p>Best regards,<br>LoanPro Team</p>
</body>
</html>`,
	},
}
