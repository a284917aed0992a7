package service

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// sesAPI is the part of the SES client the email service uses
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     sesAPI
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service. An empty fromEmail returns a
// disabled service that accepts and drops every message.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, debug: debug}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service with AWS SES: region=%s from=%s", awsRegion, fromEmail)
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return newEmailServiceWithClient(sesv2.NewFromConfig(cfg), fromEmail, fromName, appBaseURL, debug), nil
}

func newEmailServiceWithClient(client sesAPI, fromEmail, fromName, appBaseURL string, debug bool) *EmailService {
	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail greets a newly registered parent
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail string) error {
	if !s.enabled {
		if s.debug {
			log.Printf("[DEBUG] Skipping welcome email to %s (service disabled)", toEmail)
		}
		return nil
	}

	subject := "Selamat datang di BinaKata"
	textBody := fmt.Sprintf(`Halo,

Akun BinaKata Anda sudah aktif. Tambahkan profil anak lalu mulai skrining pertama:
%s/dashboard

---
Email ini dikirim otomatis oleh BinaKata. Mohon tidak membalas.
`, s.appBaseURL)
	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h1>Selamat datang di BinaKata</h1>
	<p>Akun BinaKata Anda sudah aktif. Tambahkan profil anak lalu mulai skrining pertama.</p>
	<p><a href="%s/dashboard">Buka dasbor</a></p>
	<p style="font-size: 12px; color: #666;">Email ini dikirim otomatis oleh BinaKata. Mohon tidak membalas.</p>
</body>
</html>
`, html.EscapeString(s.appBaseURL))

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendRiskAlert tells a parent that a screening came back high risk
func (s *EmailService) SendRiskAlert(ctx context.Context, toEmail, childName string, assessmentID int64, riskScore float64, recommendation string) error {
	if !s.enabled {
		if s.debug {
			log.Printf("[DEBUG] Skipping risk alert to %s for assessment %d (service disabled)", toEmail, assessmentID)
		}
		return nil
	}

	resultLink := fmt.Sprintf("%s/results?id=%d", s.appBaseURL, assessmentID)
	percent := riskScore * 100

	subject := fmt.Sprintf("Hasil skrining %s: perlu perhatian", childName)
	textBody := fmt.Sprintf(`Halo,

Skrining terbaru untuk %s menunjukkan skor risiko %.0f%%.

%s

Lihat hasil lengkap: %s

Hasil ini bukan diagnosis. Konsultasikan dengan tenaga profesional untuk evaluasi lebih lanjut.

---
Email ini dikirim otomatis oleh BinaKata. Mohon tidak membalas.
`, childName, percent, recommendation, resultLink)
	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h1>Hasil skrining %s</h1>
	<p>Skrining terbaru menunjukkan skor risiko <strong>%.0f%%</strong>.</p>
	<p>%s</p>
	<p><a href="%s">Lihat hasil lengkap</a></p>
	<p>Hasil ini bukan diagnosis. Konsultasikan dengan tenaga profesional untuk evaluasi lebih lanjut.</p>
	<p style="font-size: 12px; color: #666;">Email ini dikirim otomatis oleh BinaKata. Mohon tidak membalas.</p>
</body>
</html>
`, html.EscapeString(childName), percent, html.EscapeString(recommendation), html.EscapeString(resultLink))

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] SES message ID: %s", *result.MessageId)
	}
	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
