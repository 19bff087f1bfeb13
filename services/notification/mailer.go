package notification

import (
	"html/template"
	"time"

	"hormelys/config"
	"hormelys/models"
	"hormelys/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// sendPause spaces the two sequential sends to stay clear of relay rate
// limits.
const sendPause = 2 * time.Second

const clientSubject = "Confirmation de votre rendez-vous découverte - Hormelys"
const practitionerSubject = "Nouveau rendez-vous découverte réservé"

// SMTPMailer implements Mailer over an authenticated SMTP relay.
type SMTPMailer struct {
	dialer         *gomail.Dialer
	from           string
	practitionerTo string
	frontendURL    string
	pauseBetween   time.Duration
}

// NewSMTPMailer builds the mailer from the application configuration.
func NewSMTPMailer() *SMTPMailer {
	cfg := config.AppConfig
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	// Implicit TLS on the usual SMTPS port.
	dialer.SSL = cfg.SMTPPort == 465

	return &SMTPMailer{
		dialer:         dialer,
		from:           cfg.SMTPFrom,
		practitionerTo: cfg.NaturopathEmail,
		frontendURL:    cfg.FrontendURL,
		pauseBetween:   sendPause,
	}
}

// Verify dials the relay and closes the connection. Callers log the outcome
// only.
func (m *SMTPMailer) Verify() error {
	closer, err := m.dialer.Dial()
	if err != nil {
		return err
	}
	return closer.Close()
}

// SendConfirmation sends the customer confirmation, pauses, then sends the
// practitioner notice. Any failure makes the overall result false; the error
// is logged here and goes no further.
func (m *SMTPMailer) SendConfirmation(appt *models.Appointment) bool {
	logger := utils.GetLogger()

	startsAt, err := appt.StartsAt()
	if err != nil {
		logger.Error("confirmation email: bad slot on persisted appointment",
			zap.String("appointmentID", appt.ID), zap.Error(err))
		return false
	}

	data := mailData{
		FirstName:     appt.FirstName,
		LastName:      appt.LastName,
		Email:         appt.Email,
		Phone:         appt.Phone,
		FormattedDate: FormatFrenchDate(startsAt),
		Time:          appt.Time,
		Duration:      appt.Duration,
		FrontendURL:   m.frontendURL,
	}

	if err := m.send(appt.Email, clientSubject, clientTemplate, data); err != nil {
		logger.Error("failed to send client confirmation email",
			zap.String("appointmentID", appt.ID), zap.Error(err))
		return false
	}
	logger.Info("client confirmation email sent", zap.String("to", appt.Email))

	time.Sleep(m.pauseBetween)

	if err := m.send(m.practitionerTo, practitionerSubject, practitionerTemplate, data); err != nil {
		logger.Error("failed to send practitioner notification email",
			zap.String("appointmentID", appt.ID), zap.Error(err))
		return false
	}
	logger.Info("practitioner notification email sent", zap.String("to", m.practitionerTo))

	return true
}

func (m *SMTPMailer) send(to, subject string, tmpl *template.Template, data mailData) error {
	body, err := renderTemplate(tmpl, data)
	if err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}
