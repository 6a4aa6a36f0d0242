package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tennisnav/tennisnav/internal/calendar"
	"github.com/tennisnav/tennisnav/internal/db"
	dbgen "github.com/tennisnav/tennisnav/internal/db/generated"
	"github.com/tennisnav/tennisnav/internal/email"
)

const reminderJobTimeout = 2 * time.Minute

// RegisterReminderJobs registers the availability reminder task. It runs on
// cronExpr and nudges every active roster member who has not marked
// availability for a match daysBefore days out.
func RegisterReminderJobs(database *db.DB, emailClient email.EmailSender, cronExpr string, daysBefore int) error {
	if database == nil {
		return fmt.Errorf("reminder jobs require database")
	}
	if daysBefore < 0 {
		return fmt.Errorf("reminder days before must not be negative")
	}

	jobName := "availability_reminders"
	jobLogger := log.With().
		Str("component", "availability_reminders_job").
		Str("job_name", jobName).
		Str("cron", cronExpr).
		Logger()

	_, err := AddJob(jobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reminderJobTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		if emailClient == nil {
			jobLogger.Debug().Msg("Reminder job skipped: email client not configured")
			return
		}

		targetDate := time.Now().AddDate(0, 0, daysBefore).Format(calendar.DateLayout)
		runAvailabilityReminders(ctx, database.Queries, emailClient, targetDate, &jobLogger)
	})
	return err
}

func runAvailabilityReminders(ctx context.Context, q *dbgen.Queries, emailClient email.EmailSender, targetDate string, logger *zerolog.Logger) {
	matches, err := q.ListMatchesOnDate(ctx, targetDate)
	if err != nil {
		logger.Error().Err(err).Str("match_date", targetDate).Msg("Failed to load matches for reminder job")
		return
	}

	for _, match := range matches {
		matchLogger := logger.With().Str("match_id", match.ID).Logger()

		team, err := q.GetTeam(ctx, match.TeamID)
		if err != nil {
			matchLogger.Error().Err(err).Str("team_id", match.TeamID).Msg("Failed to load team for reminder job")
			continue
		}

		members, err := q.ListRosterMembersWithoutAvailability(ctx, dbgen.ListRosterMembersWithoutAvailabilityParams{
			TeamID: team.ID,
			ItemID: match.ID,
		})
		if err != nil {
			matchLogger.Error().Err(err).Msg("Failed to load unanswered roster members")
			continue
		}

		sent := 0
		for _, member := range members {
			if !member.Email.Valid || member.Email.String == "" {
				continue
			}
			msg := email.AvailabilityReminderMessage(team.Name, match.OpponentName, match.MatchDate, match.MatchTime)
			if err := emailClient.Send(ctx, member.Email.String, msg.Subject, msg.Body); err != nil {
				matchLogger.Error().Err(err).Str("member_id", member.ID).Msg("Failed to send availability reminder")
				continue
			}
			sent++
		}

		if sent > 0 {
			matchLogger.Info().Int("sent", sent).Msg("Availability reminders sent")
		}
	}
}
