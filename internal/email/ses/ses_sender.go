package ses

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/nordbooks/lineflow/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendRunSummary(ctx context.Context, toAddress string, summary port.RunSummary) error {
	subject := fmt.Sprintf("Invoice ETL run: %d processed, %d failed", summary.Processed, summary.Failed)
	textBody := fmt.Sprintf(
		"Run started %s, took %s.\n\nDocuments swept: %d\nProcessed: %d\nFailed: %d\nInvoice lines inserted: %d\n",
		summary.StartedAt.Format("2006-01-02 15:04:05 MST"), summary.Duration.Round(time.Second),
		summary.Documents, summary.Processed, summary.Failed, summary.LinesInserted)
	htmlBody := buildRunSummaryHTML(summary)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toAddress},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildRunSummaryHTML(summary port.RunSummary) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice ETL run summary</h2>
  <p>Run started %s and took %s.</p>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px 4px 0;">Documents swept</td><td>%d</td></tr>
    <tr><td style="padding: 4px 12px 4px 0;">Processed</td><td>%d</td></tr>
    <tr><td style="padding: 4px 12px 4px 0;">Failed</td><td>%d</td></tr>
    <tr><td style="padding: 4px 12px 4px 0;">Invoice lines inserted</td><td>%d</td></tr>
  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Lineflow - Invoice Line Normalization</p>
</body>
</html>`,
		summary.StartedAt.Format("2006-01-02 15:04:05 MST"), summary.Duration.Round(time.Second),
		summary.Documents, summary.Processed, summary.Failed, summary.LinesInserted)
}
