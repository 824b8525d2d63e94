// Package messaging delivers plan summaries to users over WhatsApp.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
)

// minRecipientDigits is the shortest phone number accepted.
const minRecipientDigits = 6

var nonDigits = regexp.MustCompile(`\D`)

// ErrInvalidRecipient is returned for phone numbers that cannot be canonicalised.
var ErrInvalidRecipient = errors.New("invalid recipient")

// Sender sends a text message to a phone number.
type Sender interface {
	SendMessage(ctx context.Context, to string, body string) error
}

// CanonicalizeRecipient strips everything but digits from a phone number and
// returns it in E.164 form with a leading "+".
func CanonicalizeRecipient(recipient string) (string, error) {
	if recipient == "" {
		return "", fmt.Errorf("%w: recipient cannot be empty", ErrInvalidRecipient)
	}
	digits := nonDigits.ReplaceAllString(recipient, "")
	if len(digits) < minRecipientDigits {
		return "", fmt.Errorf("%w: %q is too short (minimum %d digits required)", ErrInvalidRecipient, recipient, minRecipientDigits)
	}
	canonical := "+" + digits
	if canonical != recipient {
		slog.Debug("messaging.CanonicalizeRecipient: canonicalized recipient", "original", recipient, "canonical", canonical)
	}
	return canonical, nil
}
