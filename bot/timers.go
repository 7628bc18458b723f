package bot

import (
	"fmt"
	"strings"
	"time"

	"hourglass/dal"
	"hourglass/models"
)

func (b *Bot) cmdTimer(c *Context) error {
	// Guild timers are shared; in DMs each user keeps their own set.
	owner := c.Message.Author.ID
	if c.InGuild() {
		owner = c.Guild.DiscordID
	}

	stripped := strings.TrimSpace(c.Args())
	word, rest := splitWord(stripped)

	switch word {
	case "list":
		timers, err := dal.TimersForOwner(owner, c.Tx)
		if err != nil {
			return err
		}
		if len(timers) == 0 {
			return c.Reply(c.Stringf("timer/help", c.Prefs.Prefix()))
		}
		now := time.Now().Unix()
		lines := make([]string, 0, len(timers))
		for _, timer := range timers {
			lines = append(lines, fmt.Sprintf("%s: `%s`", timer.Name, elapsed(now-timer.StartTime)))
		}
		return b.sendChunked(c, lines)

	case "start":
		timers, err := dal.TimersForOwner(owner, c.Tx)
		if err != nil {
			return err
		}
		if len(timers) >= models.MaxTimersPerOwner {
			return c.Reply(c.String("timer/limit"))
		}
		name := strings.TrimSpace(rest)
		if name == "" {
			name = fmt.Sprintf("New timer #%d", len(timers)+1)
		}
		if len(name) > models.MaxTimerNameLength {
			return c.Reply(c.Stringf("timer/name_length", len(name)))
		}
		for _, timer := range timers {
			if timer.Name == name {
				return c.Reply(c.String("timer/unique"))
			}
		}
		if err := dal.CreateTimer(owner, name, time.Now().Unix(), c.Tx); err != nil {
			return err
		}
		return c.Reply(c.String("timer/success"))

	case "delete":
		name := strings.TrimSpace(rest)
		deleted, err := dal.DeleteTimer(owner, name, c.Tx)
		if err != nil {
			return err
		}
		if !deleted {
			return c.Reply(c.String("timer/not_found"))
		}
		return c.Reply(c.String("timer/deleted"))

	default:
		return c.Reply(c.Stringf("timer/help", c.Prefs.Prefix()))
	}
}

// elapsed renders a second count as HH:MM:SS.
func elapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
