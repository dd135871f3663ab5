package services

import (
	"fmt"
	"log"

	"github.com/CareLoop-AI/CareLoopAI/models"

	gomail "gopkg.in/gomail.v2"
)

const submittedAtFormat = "02 Jan 2006, 03:04 PM"

// Mail is a rendered message ready for the transport.
type Mail struct {
	To       []string
	Subject  string
	HTMLBody string
}

// MailSender is the outbound transport boundary. Delivery is best effort;
// failures come back as error values and are absorbed by the caller.
type MailSender interface {
	Send(mail *Mail) error
}

// SMTPSender delivers through an SMTP relay via gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(mail *Mail) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", mail.To...)
	m.SetHeader("Subject", mail.Subject)
	m.SetBody("text/html", mail.HTMLBody)
	return s.dialer.DialAndSend(m)
}

// EmailService renders and dispatches the two notifications that follow a
// new question: a staff alert and a submitter confirmation. Both are meant
// to run off the request path, and neither reports failure to the caller
// that triggered the submission - the submission has already succeeded.
type EmailService struct {
	sender        MailSender
	supportEmails []string
	appName       string
}

func NewEmailService(sender MailSender, supportEmails []string, appName string) *EmailService {
	return &EmailService{
		sender:        sender,
		supportEmails: supportEmails,
		appName:       appName,
	}
}

// SendNewQuestionNotification alerts the support team about a new question.
// Each configured support address gets its own delivery attempt; a failure
// for one address does not stop the others.
func (e *EmailService) SendNewQuestionNotification(question *models.Question) {
	userIP := question.UserIP
	if userIP == "" {
		userIP = "N/A"
	}

	body := e.buildNewQuestionEmailHTML(question, userIP)
	subject := fmt.Sprintf("[%s] New Question from %s", e.appName, question.Email)

	for _, to := range e.supportEmails {
		err := e.sender.Send(&Mail{
			To:       []string{to},
			Subject:  subject,
			HTMLBody: body,
		})
		if err != nil {
			log.Printf("Failed to send new question notification email for question ID %d: %v", question.ID, err)
			continue
		}
		log.Printf("New question notification email sent successfully to %s for question ID: %d", to, question.ID)
	}
}

// SendConfirmationToUser acknowledges the submission to the submitter.
func (e *EmailService) SendConfirmationToUser(question *models.Question) {
	err := e.sender.Send(&Mail{
		To:       []string{question.Email},
		Subject:  fmt.Sprintf("We received your question - %s", e.appName),
		HTMLBody: e.buildUserConfirmationEmailHTML(question),
	})
	if err != nil {
		log.Printf("Failed to send confirmation email to user %s for question ID %d: %v", question.Email, question.ID, err)
		return
	}
	log.Printf("Confirmation email sent successfully to %s for question ID: %d", question.Email, question.ID)
}

func (e *EmailService) buildNewQuestionEmailHTML(question *models.Question, userIP string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body>
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; font-family: Arial, sans-serif;">
    <h1>New Question Received!</h1>
    <p>A new question has been submitted through the %s FAQ system.</p>
    <div style="background: white; padding: 20px; border-left: 4px solid #667eea;">
      <h3>Question Details</h3>
      <p><strong>Question ID:</strong> #%d</p>
      <p><strong>From:</strong> %s</p>
      <p><strong>Submitted:</strong> %s</p>
      <p><strong>IP Address:</strong> %s</p>
      <hr>
      <p><strong>Question:</strong></p>
      <p>%s</p>
    </div>
    <p><strong>Action Required:</strong> Please review and respond to this question
       at your earliest convenience. The user is expecting a response.</p>
    <div style="color: #666; font-size: 12px;">
      <p>This is an automated notification from %s FAQ System</p>
      <p>Please do not reply to this email directly.</p>
    </div>
  </div>
</body>
</html>`,
		e.appName,
		question.ID,
		question.Email,
		question.CreatedAt.Format(submittedAtFormat),
		userIP,
		question.Question,
		e.appName,
	)
}

func (e *EmailService) buildUserConfirmationEmailHTML(question *models.Question) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body>
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; font-family: Arial, sans-serif;">
    <h1>Question Received!</h1>
    <p>Hi there,</p>
    <p>Thank you for reaching out to %s! We've received your question and our team
       will review it shortly.</p>
    <div style="background: white; padding: 20px; border-left: 4px solid #667eea;">
      <p><strong>Your Question:</strong></p>
      <p>%s</p>
      <p style="font-size: 13px; color: #999;">Submitted on: %s</p>
    </div>
    <p><strong>What happens next?</strong></p>
    <ul>
      <li>Our team will review your question within 24-48 hours</li>
      <li>You'll receive a personalized response via email</li>
      <li>For urgent matters, please contact us directly</li>
    </ul>
    <p>In the meantime, you can check out our FAQ section for quick answers to common questions.</p>
    <div style="color: #666; font-size: 12px;">
      <p><strong>%s - Your AI-Driven Healthcare Ecosystem</strong></p>
    </div>
  </div>
</body>
</html>`,
		e.appName,
		question.Question,
		question.CreatedAt.Format(submittedAtFormat),
		e.appName,
	)
}
