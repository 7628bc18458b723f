package bot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
)

const botListURL = "https://discordbots.org/api/bots/stats"

// StartStatsReporter schedules an hourly guild count report to the bot
// list. Returns nil when no list token is configured.
func (b *Bot) StartStatsReporter() *cron.Cron {
	if b.botListToken == "" {
		return nil
	}

	c := cron.New()
	c.AddFunc("@every 1h", func() {
		if err := b.reportStats(); err != nil {
			b.log.Warn().Err(err).Msg("failed to report guild count")
		}
	})
	c.Start()
	return c
}

func (b *Bot) reportStats() error {
	payload, err := json.Marshal(map[string]int{
		"server_count": len(b.session.State.Guilds),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, botListURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", b.botListToken)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("bot list returned %s", resp.Status)
	}
	return nil
}
