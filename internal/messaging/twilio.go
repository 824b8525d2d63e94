package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const whatsappScheme = "whatsapp:"

// TwilioOpts holds configuration options for the Twilio WhatsApp client.
type TwilioOpts struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// TwilioOption defines a configuration option for the Twilio WhatsApp client.
type TwilioOption func(*TwilioOpts)

// WithAccountSID sets the Twilio account SID.
func WithAccountSID(sid string) TwilioOption {
	return func(o *TwilioOpts) { o.AccountSID = sid }
}

// WithAuthToken sets the Twilio auth token.
func WithAuthToken(token string) TwilioOption {
	return func(o *TwilioOpts) { o.AuthToken = token }
}

// WithFromNumber sets the sending WhatsApp number, with or without the "whatsapp:" prefix.
func WithFromNumber(from string) TwilioOption {
	return func(o *TwilioOpts) { o.FromNumber = from }
}

// messageCreator is the part of the Twilio REST API used for sending.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSender sends WhatsApp messages through the Twilio REST API.
type TwilioSender struct {
	api  messageCreator
	from string
}

// NewTwilioSender creates a sender. Account SID, auth token and from number are required.
func NewTwilioSender(opts ...TwilioOption) (*TwilioSender, error) {
	var cfg TwilioOpts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("messaging.NewTwilioSender: config loaded",
		"AccountSID_set", cfg.AccountSID != "",
		"AuthToken_set", cfg.AuthToken != "",
		"FromNumber_set", cfg.FromNumber != "")

	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("account SID and auth token must be provided")
	}
	if cfg.FromNumber == "" {
		return nil, fmt.Errorf("from number must be provided")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioSender{api: client.Api, from: whatsappAddress(cfg.FromNumber)}, nil
}

// SendMessage sends a WhatsApp message to a phone number.
func (s *TwilioSender) SendMessage(ctx context.Context, to string, body string) error {
	canonical, err := CanonicalizeRecipient(strings.TrimPrefix(to, whatsappScheme))
	if err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(whatsappScheme + canonical)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.api.CreateMessage(params); err != nil {
		slog.Error("TwilioSender.SendMessage: send failed", "to", canonical, "error", err)
		return fmt.Errorf("failed to send message to %s: %w", canonical, err)
	}
	slog.Debug("TwilioSender.SendMessage: message sent", "to", canonical)
	return nil
}

func whatsappAddress(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, whatsappScheme) {
		return number
	}
	return whatsappScheme + number
}
