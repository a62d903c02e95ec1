package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"servimart/models"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// ResendEmailService delivers booking emails through Resend. It runs inside
// the dispatch worker, never on the request path.
type ResendEmailService struct {
	client    *resend.Client
	logger    *zap.Logger
	fromEmail string
	fromName  string
}

func NewResendEmailService(apiKey, fromEmail, fromName string, logger *zap.Logger) *ResendEmailService {
	return &ResendEmailService{
		client:    resend.NewClient(apiKey),
		logger:    logger,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

var confirmationTmpl = template.Must(template.New("booking_confirmation").Parse(`
<p>Hi {{.Username}},</p>
<p>Your booking for <strong>{{.ServiceName}}</strong> with {{.ProviderName}} has been received.</p>
<p>Scheduled for: {{.FormattedDateTime}}<br>Price: {{.FormattedPrice}}</p>
<p>Booking reference: {{.BookingID}}</p>
`))

var completionTmpl = template.Must(template.New("booking_completion").Parse(`
<p>Hi {{.Username}},</p>
<p>Your booking for <strong>{{.ServiceName}}</strong> was completed on {{.CompletionTime}}.</p>
<p>Booking reference: {{.BookingID}}</p>
<p>We'd love to hear how it went.</p>
`))

func (s *ResendEmailService) send(p models.EmailTaskPayload, subject string, tmpl *template.Template) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, p); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail),
		To:      []string{p.To},
		Subject: subject,
		Html:    body.String(),
		Tags: []resend.Tag{
			{Name: "category", Value: "booking"},
			{Name: "template", Value: p.Template},
		},
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send booking email",
			zap.Error(err),
			zap.String("to", p.To),
			zap.String("template", p.Template))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("booking email sent",
		zap.String("email_id", sent.Id),
		zap.String("to", p.To),
		zap.String("template", p.Template))
	return nil
}

func (s *ResendEmailService) SendBookingConfirmation(ctx context.Context, p models.EmailTaskPayload) error {
	subject := fmt.Sprintf("Booking received: %s", p.ServiceName)
	return s.send(p, subject, confirmationTmpl)
}

func (s *ResendEmailService) SendBookingCompletion(ctx context.Context, p models.EmailTaskPayload) error {
	subject := fmt.Sprintf("Booking completed: %s", p.ServiceName)
	return s.send(p, subject, completionTmpl)
}
