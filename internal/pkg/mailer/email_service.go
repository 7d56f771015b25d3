package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendReport(toEmail, reportTitle, pdfPath string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendReport(toEmail, reportTitle, pdfPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your report: %s", reportTitle))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<p>Your session report is attached as a PDF.</p>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`, reportTitle)

	m.SetBody("text/html", body)
	m.Attach(pdfPath)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send report to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Report sent to %s\n", toEmail)
	return nil
}
