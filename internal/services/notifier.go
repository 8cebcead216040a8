package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"hireflow/ats-engine/internal/config"
	"hireflow/ats-engine/internal/models"
)

// NotificationService dispatches candidate-facing emails. Delivery is always
// best-effort: a failed send is logged, never propagated, so notification
// problems cannot affect application processing.
type NotificationService interface {
	SendApplicationConfirmation(app *models.Application, job *models.Job)
	SendStatusUpdate(app *models.Application, job *models.Job, oldStatus, newStatus models.ApplicationStatus)
}

var statusMessages = map[models.ApplicationStatus]string{
	models.StatusShortlisted:        "Great news! Your application has been shortlisted.",
	models.StatusInterviewScheduled: "Your interview has been scheduled.",
	models.StatusRejected:           "Update on your application status.",
	models.StatusOfferExtended:      "Congratulations! You have received an offer.",
}

type emailNotifier struct {
	cfg config.SMTPConfig
}

func NewEmailNotifier(cfg config.SMTPConfig) NotificationService {
	if cfg.Host == "" {
		log.Println("⚠️  SMTP host not configured, notifications will be logged only")
	}
	return &emailNotifier{cfg: cfg}
}

func (n *emailNotifier) SendApplicationConfirmation(app *models.Application, job *models.Job) {
	subject := fmt.Sprintf("Application Received - %s", job.Title)
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for applying for the %s position. Your application has been received and is being reviewed.\n\nApplication ID: %s\n",
		app.CandidateName, job.Title, app.ID,
	)

	n.send(app.CandidateEmail, subject, body)
}

func (n *emailNotifier) SendStatusUpdate(app *models.Application, job *models.Job, oldStatus, newStatus models.ApplicationStatus) {
	message, ok := statusMessages[newStatus]
	if !ok {
		message = "Your application status has been updated."
	}

	subject := fmt.Sprintf("Application Update - %s", job.Title)
	body := fmt.Sprintf(
		"Dear %s,\n\n%s\n\nStatus: %s\nApplication ID: %s\n",
		app.CandidateName, message, newStatus, app.ID,
	)

	n.send(app.CandidateEmail, subject, body)
}

func (n *emailNotifier) send(to, subject, body string) {
	if n.cfg.Host == "" {
		log.Printf("📧 [notification] to=%s subject=%q\n", to, subject)
		return
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", n.cfg.From),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", n.cfg.Host, n.cfg.Port)
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, n.cfg.From, []string{to}, []byte(msg)); err != nil {
		log.Printf("⚠️  Failed to send notification email to %s: %v\n", to, err)
		return
	}

	log.Printf("📧 Notification email sent to %s\n", to)
}
