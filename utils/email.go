package utils

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func emailConfigFromEnv() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an HTML email over SMTP
func SendEmail(to, subject, body string) error {
	config := emailConfigFromEnv()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendPoolConfirmation sends the entry confirmation email with the
// participant's referral link and the pool close date.
func SendPoolConfirmation(to, firstName, referralCode string, weekEnd time.Time) error {
	referralLink := fmt.Sprintf("%s/pool?ref=%s", os.Getenv("PORTAL_URL"), referralCode)
	closes := weekEnd.In(PoolLocation()).Format("Monday, January 2 at 3:04 PM")

	subject := "You're in this week's pool!"
	body := fmt.Sprintf(`
		<h2>Thanks for joining, %s!</h2>
		<p>Your entry for this week's community lottery pool is confirmed.</p>
		<p>This week's pool closes on <b>%s</b>.</p>
		<p>Share your referral link and earn $1.00 in credit for every friend who joins:</p>
		<p><a href="%s">%s</a></p>
	`, firstName, closes, referralLink, referralLink)

	return SendEmail(to, subject, body)
}

// SendPoolNumbers sends the published ticket numbers to a participant
func SendPoolNumbers(to, firstName, numbers string, weekEnd time.Time) error {
	drawWeek := weekEnd.In(PoolLocation()).Format("January 2, 2006")

	subject := "This week's pool numbers are in"
	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>The ticket numbers for the pool week ending %s have been purchased:</p>
		<pre style="font-size: 16px;">%s</pre>
		<p>Good luck!</p>
	`, firstName, drawWeek, numbers)

	return SendEmail(to, subject, body)
}
