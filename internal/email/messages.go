package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const sendTimeout = 5 * time.Second

// Message is a rendered email ready for delivery.
type Message struct {
	Subject string
	Body    string
}

// InvitationMessage renders the roster invitation email. The accept link
// carries the raw token; only its hash is stored server side.
func InvitationMessage(teamName, inviterName, acceptURL string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi,\n\n")
	if inviterName != "" {
		fmt.Fprintf(&b, "%s has invited you to join %s on TennisNav.\n\n", inviterName, teamName)
	} else {
		fmt.Fprintf(&b, "You have been invited to join %s on TennisNav.\n\n", teamName)
	}
	fmt.Fprintf(&b, "Accept the invitation here:\n%s\n\n", acceptURL)
	b.WriteString("If you weren't expecting this email you can ignore it.\n")

	return Message{
		Subject: fmt.Sprintf("You're invited to join %s", teamName),
		Body:    b.String(),
	}
}

// LineupPublishedMessage renders the notification sent to assigned players
// when a captain publishes a lineup.
func LineupPublishedMessage(teamName, opponentName, matchDate, matchTime, assignment string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi,\n\n")
	fmt.Fprintf(&b, "The lineup for %s vs %s on %s at %s has been published.\n\n", teamName, opponentName, matchDate, matchTime)
	if assignment != "" {
		fmt.Fprintf(&b, "Your assignment: %s\n\n", assignment)
	}
	b.WriteString("See the full lineup in TennisNav.\n")

	return Message{
		Subject: fmt.Sprintf("Lineup published: %s vs %s on %s", teamName, opponentName, matchDate),
		Body:    b.String(),
	}
}

// AvailabilityReminderMessage renders the nudge sent to players who have not
// marked availability for an upcoming match.
func AvailabilityReminderMessage(teamName, opponentName, matchDate, matchTime string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi,\n\n")
	fmt.Fprintf(&b, "%s plays %s on %s at %s and you haven't marked your availability yet.\n\n", teamName, opponentName, matchDate, matchTime)
	b.WriteString("Please open TennisNav and let your captain know if you can play.\n")

	return Message{
		Subject: fmt.Sprintf("Availability needed: %s on %s", teamName, matchDate),
		Body:    b.String(),
	}
}

// SendAsync delivers msg to recipient on a detached goroutine. Handler paths
// use this so delivery failures never fail the request.
func SendAsync(ctx context.Context, client EmailSender, recipient string, msg Message, logger *zerolog.Logger) {
	if client == nil {
		return
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" || msg.Subject == "" || msg.Body == "" {
		return
	}

	go func() {
		sendCtx, cancel := newEmailContext(ctx, sendTimeout)
		defer cancel()
		if err := client.Send(sendCtx, recipient, msg.Subject, msg.Body); err != nil && logger != nil {
			logger.Error().Err(err).Str("recipient", recipient).Msg("Failed to send email")
		}
	}()
}
