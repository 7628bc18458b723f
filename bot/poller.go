package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"hourglass/dal"
	"hourglass/models"
)

// PollReminders delivers due reminders on each tick of the given ticker.
func (b *Bot) PollReminders(ticker *time.Ticker, done chan bool) {
	for {
		select {
		case <-done:
			b.log.Info().Msg("stopped reminder poller")
			return
		case <-ticker.C:
			b.deliverDue()
		}
	}
}

func (b *Bot) deliverDue() {
	now := time.Now().Unix()

	due, err := dal.DueReminders(now, b.db)
	if err != nil {
		b.log.Error().Err(err).Msg("failed to query due reminders")
		return
	}

	for _, reminder := range due {
		if err := b.deliver(&reminder); err != nil {
			b.log.Warn().
				Err(err).
				Uint("reminder", reminder.ID).
				Str("channel", reminder.Channel.DiscordID).
				Msg("failed to deliver reminder")
		}

		if err := b.reschedule(&reminder, now); err != nil {
			b.log.Error().Err(err).Uint("reminder", reminder.ID).Msg("failed to reschedule reminder")
		}
	}
}

// deliver sends one reminder through the channel's webhook when a
// handle is attached, falling back to a plain channel message.
func (b *Bot) deliver(reminder *models.Reminder) error {
	embed := &discordgo.MessageEmbed{
		Description: reminder.Message.Content,
		Color:       themeColor,
	}

	if reminder.Channel.WebhookID != "" && reminder.Channel.WebhookToken != "" {
		_, err := b.session.WebhookExecute(
			reminder.Channel.WebhookID,
			reminder.Channel.WebhookToken,
			false,
			&discordgo.WebhookParams{Embeds: []*discordgo.MessageEmbed{embed}},
		)
		return err
	}

	_, err := b.session.ChannelMessageSendEmbed(reminder.Channel.DiscordID, embed)
	return err
}

// reschedule advances a recurring reminder past now, or retires a
// one-shot. Delivery and rescheduling are deliberately decoupled: a
// failed send still consumes the occurrence, so a dead channel cannot
// wedge the poller.
func (b *Bot) reschedule(reminder *models.Reminder, now int64) error {
	if reminder.Interval == nil {
		return b.db.Model(reminder).UpdateColumn("enabled", false).Error
	}

	next := reminder.Time
	for next <= now {
		next += *reminder.Interval
	}
	return b.db.Model(reminder).UpdateColumn("time", next).Error
}
