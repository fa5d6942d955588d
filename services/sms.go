package services

import (
	"context"
	"fmt"

	"github.com/ishanbagra18/artfolio-server/config"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSMS sends plain text messages.
type TwilioSMS struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSMS(cfg config.TwilioConfig) *TwilioSMS {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioSMS{client: client, from: cfg.From}
}

func (t *TwilioSMS) Name() string { return "sms" }

func (t *TwilioSMS) Send(ctx context.Context, phone, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(t.from)
	params.SetBody(text)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}
