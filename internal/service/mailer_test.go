package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go_climb_keep/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSES は送信内容を記録する sesAPI です
type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	fake := &fakeSES{}
	mailer := newSESMailerWithClient(fake, "noreply@example.com")

	require.NoError(t, mailer.Send(context.Background(), "climber@example.com", "Hello", "Body text"))
	require.NotNil(t, fake.input)
	assert.Equal(t, "noreply@example.com", aws.ToString(fake.input.FromEmailAddress))
	assert.Equal(t, []string{"climber@example.com"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, "Hello", aws.ToString(fake.input.Content.Simple.Subject.Data))
	assert.Equal(t, "Body text", aws.ToString(fake.input.Content.Simple.Body.Text.Data))
}

func TestSESMailer_SendError(t *testing.T) {
	sendErr := errors.New("throttled")
	mailer := newSESMailerWithClient(&fakeSES{err: sendErr}, "noreply@example.com")

	err := mailer.Send(context.Background(), "climber@example.com", "Hello", "Body")
	assert.ErrorIs(t, err, sendErr)
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("from@example.com", "to@example.com", "Subject", "line1\nline2")

	assert.True(t, strings.HasPrefix(msg, "From: from@example.com\r\nTo: to@example.com\r\nSubject: Subject\r\n"))
	assert.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	assert.True(t, strings.HasSuffix(msg, "line1\r\nline2\r\n"))
}

func TestNewMailer(t *testing.T) {
	ctx := context.Background()

	t.Run("log", func(t *testing.T) {
		m, err := NewMailer(ctx, &config.Config{Mailer: config.MailerConfig{Type: MailerTypeLog}})
		require.NoError(t, err)
		assert.IsType(t, &LogMailer{}, m)
		assert.NoError(t, m.Send(ctx, "a@example.com", "s", "b"))
	})

	t.Run("未知のタイプは log", func(t *testing.T) {
		m, err := NewMailer(ctx, &config.Config{Mailer: config.MailerConfig{Type: "carrier-pigeon"}})
		require.NoError(t, err)
		assert.IsType(t, &LogMailer{}, m)
	})

	t.Run("smtp", func(t *testing.T) {
		m, err := NewMailer(ctx, &config.Config{Mailer: config.MailerConfig{Type: MailerTypeSMTP}})
		require.NoError(t, err)
		assert.IsType(t, &SmtpMailer{}, m)
	})

	t.Run("ses 静的認証", func(t *testing.T) {
		cfg := &config.Config{
			Mailer: config.MailerConfig{Type: MailerTypeSES},
			SES: config.SESConfig{
				Region:          "ap-northeast-1",
				AuthType:        "static_credentials",
				AccessKeyID:     "AKIDEXAMPLE",
				SecretAccessKey: "secret",
				From:            "noreply@example.com",
			},
		}
		m, err := NewMailer(ctx, cfg)
		require.NoError(t, err)
		assert.IsType(t, &SESMailer{}, m)
	})

	t.Run("ses 認証情報不足", func(t *testing.T) {
		cfg := &config.Config{
			Mailer: config.MailerConfig{Type: MailerTypeSES},
			SES:    config.SESConfig{Region: "ap-northeast-1", AuthType: "static_credentials"},
		}
		_, err := NewMailer(ctx, cfg)
		assert.Error(t, err)
	})
}
