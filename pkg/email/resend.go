package email

import (
	"fmt"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	log      *zap.Logger
}

func NewEmailService(apiKey, fromAddress, fromName string, log *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(apiKey),
		from:     fromAddress,
		fromName: fromName,
		log:      log,
	}
}

func (s *EmailService) send(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.from),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	if _, err := s.client.Emails.Send(params); err != nil {
		s.log.Warn("email send failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return err
	}
	return nil
}

func (s *EmailService) SendWelcomeEmail(to, fullName string) error {
	html := fmt.Sprintf(
		`<h2>Welcome to Toonify, %s!</h2>
<p>Your account is ready and comes with 5 free credits. Upload a photo and turn it into a toon.</p>`,
		fullName)
	return s.send(to, "Welcome to Toonify", html)
}

// SendBillingIssueEmail notifies the user that a renewal charge failed.
// Benefits continue during the store's grace period while payment retries.
func (s *EmailService) SendBillingIssueEmail(to, fullName string) error {
	html := fmt.Sprintf(
		`<h2>Hi %s,</h2>
<p>We couldn't renew your Toonify Pro subscription. Your benefits continue for now, but please update
your payment method in your app store account to keep them.</p>`,
		fullName)
	return s.send(to, "Problem renewing your Toonify Pro subscription", html)
}
