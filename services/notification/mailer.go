package notification

import (
	"fmt"

	"smartpark/config"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends booking emails over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer builds the SMTP mailer from the app config.
func NewMailer() *Mailer {
	cfg := config.AppConfig
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

// Send renders and delivers the email described by the payload.
func (m *Mailer) Send(p EmailPayload) error {
	var subject, body string
	switch p.Kind {
	case KindConfirmation:
		subject = "Parking Booking Confirmed - Smart Parking"
		body = confirmationBody(p)
	case KindCancellation:
		subject = "Booking Cancelled - Smart Parking"
		body = cancellationBody(p)
	default:
		return fmt.Errorf("unknown email kind %q", p.Kind)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", p.UserEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send %s email to %s: %w", p.Kind, p.UserEmail, err)
	}
	return nil
}

func confirmationBody(p EmailPayload) string {
	return fmt.Sprintf(`<h2>Booking Confirmed!</h2>
<p>Hi %s,</p>
<p>Your parking spot has been successfully reserved.</p>
<table>
<tr><td>Booking ID:</td><td><b>%s</b></td></tr>
<tr><td>Parking Spot:</td><td><b>%s</b></td></tr>
<tr><td>Floor:</td><td><b>%s</b></td></tr>
<tr><td>Vehicle:</td><td><b>%s</b></td></tr>
<tr><td>Start Time:</td><td><b>%s</b></td></tr>
<tr><td>End Time:</td><td><b>%s</b></td></tr>
<tr><td>Total Amount:</td><td><b>%.2f</b></td></tr>
</table>
<p>Present your QR code at the parking entrance and arrive within 15 minutes of your start time.</p>`,
		p.UserName, p.BookingID, p.SpotNumber, p.Floor, p.VehicleNumber,
		p.StartTime.Format("Jan 2, 2006 15:04"), p.EndTime.Format("Jan 2, 2006 15:04"),
		p.TotalAmount)
}

func cancellationBody(p EmailPayload) string {
	return fmt.Sprintf(`<h2>Booking Cancelled</h2>
<p>Hi %s,</p>
<p>Your parking booking has been cancelled.</p>
<p>Booking ID: <b>%s</b><br>Spot: <b>%s</b><br>Vehicle: <b>%s</b></p>
<p>If you didn't cancel this booking, please contact us immediately.</p>`,
		p.UserName, p.BookingID, p.SpotNumber, p.VehicleNumber)
}
