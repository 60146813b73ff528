package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// BookingEmailData carries everything the confirmation email needs.
type BookingEmailData struct {
	BookingRef   string
	HotelName    string
	HotelAddress string
	CheckInDate  string
	CheckOutDate string
	TotalPrice   float64
	Currency     string
}

// SendBookingConfirmationEmail sends a multipart confirmation email.
// Falls back to a mock log line when SMTP is not configured so dev
// environments keep working without a mail server.
func SendBookingConfirmationEmail(recipientEmail, guestName string, data BookingEmailData) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := EnvOrDefault("SMTP_FROM_NAME", "QuickStay")

	if data.Currency == "" {
		data.Currency = EnvOrDefault("CURRENCY", "$")
	}

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s booking:%s hotel:%s amount:%s%.2f",
			recipientEmail, data.BookingRef, data.HotelName, data.Currency, data.TotalPrice)
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}
	guestName = safe(guestName)
	data.BookingRef = safe(data.BookingRef)
	data.HotelName = safe(data.HotelName)
	data.HotelAddress = safe(data.HotelAddress)

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{recipientEmail}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	subject := fmt.Sprintf("Hotel Booking Details — %s", data.BookingRef)
	boundary := "----=_QUICKSTAY_EMAIL_BOUNDARY"

	plainBody := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Thank you for your booking! Here are your details:\n\n"+
			"Booking ID: %s\n"+
			"Hotel Name: %s\n"+
			"Location: %s\n"+
			"Check-In: %s\n"+
			"Check-Out: %s\n"+
			"Booking Amount: %s%.2f\n\n"+
			"We look forward to welcoming you!\n\n"+
			"Best regards,\n%s",
		guestName,
		data.BookingRef,
		data.HotelName,
		data.HotelAddress,
		data.CheckInDate,
		data.CheckOutDate,
		data.Currency,
		data.TotalPrice,
		fromName,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Booking Confirmation</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:700px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
.label { font-weight:700; width:160px; display:inline-block; vertical-align:top; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>Your Booking Details</h2>
    <p>Dear %s,</p>
    <p>Thank you for your booking! Here are your details:</p>

    <p><span class="label">Booking ID:</span> %s</p>
    <p><span class="label">Hotel Name:</span> %s</p>
    <p><span class="label">Location:</span> %s</p>
    <p><span class="label">Check-In:</span> %s</p>
    <p><span class="label">Check-Out:</span> %s</p>
    <p><span class="label">Booking Amount:</span> %s%.2f</p>

    <p>We look forward to welcoming you! If you need to make any changes, feel free to contact us.</p>
    <p>Best regards,<br>%s</p>
  </div>
</div>
</body>
</html>`,
		htmlEscape(guestName),
		htmlEscape(data.BookingRef),
		htmlEscape(data.HotelName),
		htmlEscape(data.HotelAddress),
		data.CheckInDate,
		data.CheckOutDate,
		htmlEscape(data.Currency),
		data.TotalPrice,
		htmlEscape(fromName),
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipientEmail))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpUser, to, []byte(sb.String())); err != nil {
		log.Printf("❌ Failed to send email to %s: %v", recipientEmail, err)
		return err
	}

	log.Printf("📨 Booking confirmation sent to %s (booking %s)", recipientEmail, data.BookingRef)
	return nil
}

// minimal html escaper for the small strings we use
func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}
