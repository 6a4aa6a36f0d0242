package email

import (
	"strings"
	"testing"
)

func TestInvitationMessage(t *testing.T) {
	msg := InvitationMessage("Net Setters", "Casey Captain", "https://app.example.com/invites/accept?token=abc")
	if !strings.Contains(msg.Subject, "Net Setters") {
		t.Errorf("subject missing team name: %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Casey Captain") {
		t.Errorf("body missing inviter: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "token=abc") {
		t.Errorf("body missing accept link: %q", msg.Body)
	}

	anon := InvitationMessage("Net Setters", "", "https://app.example.com/invites/accept?token=abc")
	if strings.Contains(anon.Body, "has invited you") {
		t.Errorf("anonymous invite should not name an inviter: %q", anon.Body)
	}
}

func TestLineupPublishedMessage(t *testing.T) {
	msg := LineupPublishedMessage("Net Setters", "Baseline Bandits", "2026-04-12", "09:00", "Court 2, doubles")
	if !strings.Contains(msg.Subject, "Baseline Bandits") || !strings.Contains(msg.Subject, "2026-04-12") {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Court 2, doubles") {
		t.Errorf("body missing assignment: %q", msg.Body)
	}

	bench := LineupPublishedMessage("Net Setters", "Baseline Bandits", "2026-04-12", "09:00", "")
	if strings.Contains(bench.Body, "Your assignment") {
		t.Errorf("unassigned notification should omit assignment line: %q", bench.Body)
	}
}

func TestAvailabilityReminderMessage(t *testing.T) {
	msg := AvailabilityReminderMessage("Net Setters", "Baseline Bandits", "2026-04-12", "09:00")
	if !strings.Contains(msg.Subject, "2026-04-12") {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "haven't marked your availability") {
		t.Errorf("body = %q", msg.Body)
	}
}
