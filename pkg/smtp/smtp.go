package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"os"
)

type ItfSmtp interface {
	SendOTP(userEmail string, otp string) error
	SendAdminInvite(adminEmail string, setupURL string) error
	SendOrderReceipt(customerEmail string, orderID string, total float64) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
	host string
	addr string
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	auth := smtpPkg.PlainAuth("", mail, password, host)

	return &smtp{auth: auth, mail: mail, host: host, addr: host + ":587"}
}

func (s *smtp) SendOTP(userEmail string, otp string) error {
	message := []byte(fmt.Sprintf("To: %s\r\nSubject: Your Lulai verification code\r\n\r\nHello, your verification code is: %s\r\nIt expires in 10 minutes.",
		userEmail, otp))

	return smtpPkg.SendMail(s.addr, s.auth, s.mail, []string{userEmail}, message)
}

func (s *smtp) SendAdminInvite(adminEmail string, setupURL string) error {
	message := []byte(fmt.Sprintf("To: %s\r\nSubject: You have been invited as a Lulai admin\r\n\r\nFinish setting up your admin account here: %s\r\nThe link expires in 24 hours.",
		adminEmail, setupURL))

	return smtpPkg.SendMail(s.addr, s.auth, s.mail, []string{adminEmail}, message)
}

func (s *smtp) SendOrderReceipt(customerEmail string, orderID string, total float64) error {
	message := []byte(fmt.Sprintf("To: %s\r\nSubject: Your order %s\r\n\r\nThank you for your purchase! Your order %s for $%.2f has been received.",
		customerEmail, orderID, orderID, total))

	return smtpPkg.SendMail(s.addr, s.auth, s.mail, []string{customerEmail}, message)
}
