// internal/notify/notifier.go
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"scholarship-portal/internal/common/config"
	"scholarship-portal/internal/common/logger"
	"scholarship-portal/internal/common/metrics"
	"scholarship-portal/internal/models"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Notifier sends the post-submission confirmation over email and SMS.
// Delivery is best effort: a failed send is logged and counted but never
// fails the submission that triggered it.
type Notifier struct {
	config    config.NotificationConfig
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewNotifier(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*Notifier, error) {
	n := &Notifier{config: cfg, logger: log}
	if !cfg.Email.Enabled && !cfg.SMS.Enabled {
		return n, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	n.sesClient = ses.NewFromConfig(awsCfg)
	n.snsClient = sns.NewFromConfig(awsCfg)
	return n, nil
}

const (
	confirmationSubject = "Scholarship Application Received"
	confirmationBody    = "Dear {{name}},\n\nYour scholarship application has been received. " +
		"Your application number is {{applicationId}}. Keep it safe; you will need it together " +
		"with a registered mobile number to check your status.\n\nRegards,\nScholarship Office"
	confirmationSMS = "Scholarship application {{applicationId}} received. Use this number with a registered mobile to check status."
)

// SendConfirmation dispatches the receipt confirmation for a persisted
// application on every enabled channel.
func (n *Notifier) SendConfirmation(ctx context.Context, app *models.Application) {
	data := map[string]string{
		"name":          app.FullName(),
		"applicationId": app.ApplicationID,
	}

	if n.config.Email.Enabled && app.StudentEmail != "" {
		if err := n.sendEmail(ctx, app.StudentEmail, confirmationSubject, renderTemplate(confirmationBody, data)); err != nil {
			metrics.NotificationFailures.WithLabelValues("email").Inc()
			n.logger.Error("confirmation email failed", map[string]interface{}{
				"applicationId": app.ApplicationID,
				"error":         err.Error(),
			})
		}
	}

	if n.config.SMS.Enabled && app.StudentMobile != "" {
		if err := n.sendSMS(ctx, app.StudentMobile, renderTemplate(confirmationSMS, data)); err != nil {
			metrics.NotificationFailures.WithLabelValues("sms").Inc()
			n.logger.Error("confirmation SMS failed", map[string]interface{}{
				"applicationId": app.ApplicationID,
				"error":         err.Error(),
			})
		}
	}
}

func (n *Notifier) sendEmail(ctx context.Context, to, subject, body string) error {
	if n.sesClient == nil {
		return nil
	}
	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.config.Email.FromEmail),
	})
	return err
}

func (n *Notifier) sendSMS(ctx context.Context, to, message string) error {
	if n.snsClient == nil {
		return nil
	}
	input := &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	}
	if n.config.SMS.SenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(n.config.SMS.SenderID),
			},
		}
	}
	_, err := n.snsClient.Publish(ctx, input)
	return err
}

// renderTemplate substitutes {{key}} placeholders; unknown placeholders
// are stripped rather than leaked.
func renderTemplate(tmpl string, data map[string]string) string {
	result := tmpl
	for k, v := range data {
		result = strings.ReplaceAll(result, "{{"+k+"}}", v)
	}
	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}
	return result
}
