package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gorm.io/gorm"

	"hourglass/dal"
	"hourglass/discordutils"
	"hourglass/models"
	"hourglass/times"
)

// Temporal bounds on reminders.
const (
	// MaxTime is how far into the future a reminder or interval may
	// reach, in seconds (about fifty years). The bound is inclusive.
	MaxTime int64 = 1576800000
	// MinInterval is the smallest allowed recurrence, in seconds.
	MinInterval int64 = 800
	// MaxTimeDays is MaxTime in whole days, for display.
	MaxTimeDays = MaxTime / 86400

	// Requests this many seconds in the past are clamped to now rather
	// than rejected; it tolerates clock and parse skew, not deliberate
	// backdating.
	pastGraceSeconds int64 = 10
)

// ReminderStatus is the outcome of a create-reminder request.
type ReminderStatus int

const (
	StatusOK ReminderStatus = iota
	StatusPastTime
	StatusLongTime
	StatusShortInterval
	StatusLongInterval
	StatusInvalidTag
)

var remindStrings = map[ReminderStatus]string{
	StatusOK:            "remind/success",
	StatusPastTime:      "remind/past_time",
	StatusLongTime:      "remind/long_time",
	StatusShortInterval: "interval/short_interval",
	StatusLongInterval:  "interval/long_interval",
	StatusInvalidTag:    "remind/invalid_tag",
}

// naturalStrings overrides per-status replies for the natural command.
var naturalStrings = map[ReminderStatus]string{
	StatusOK: "natural/success",
}

// ReminderInfo reports the resolved delivery target and final time of a
// successful creation.
type ReminderInfo struct {
	Status  ReminderStatus
	Mention string
	Time    int64
}

// createReminder validates the request and persists the reminder
// against the resolved delivery target. Validation order: long-time
// bound, past-time grace, target resolution (guild channel first, then
// member DM), interval bounds.
func (b *Bot) createReminder(c *Context, targetID, text string, at int64, interval *int64, method string) (ReminderInfo, error) {
	now := b.now().Unix()

	if at > now+MaxTime {
		return ReminderInfo{Status: StatusLongTime}, nil
	}
	if at < now {
		if now-at < pastGraceSeconds {
			at = now
		} else {
			return ReminderInfo{Status: StatusPastTime}, nil
		}
	}

	var (
		channelRow *models.Channel
		mention    string
	)

	if c.InGuild() {
		if dch, err := c.Session.State.Channel(targetID); err == nil && dch.GuildID == c.Message.GuildID {
			row, _, cerr := dal.GetOrCreateChannel(targetID, &c.Guild.ID, c.Tx)
			if cerr != nil {
				return ReminderInfo{}, cerr
			}
			b.ensureWebhook(row)
			channelRow = row
			// The channel's nudge shifts every reminder created in it.
			at += int64(row.Nudge)
			mention = "<#" + targetID + ">"
		} else {
			user, uerr := b.findAndCreateMember(targetID, c)
			if uerr != nil {
				return ReminderInfo{}, uerr
			}
			if user == nil {
				return ReminderInfo{Status: StatusInvalidTag}, nil
			}
			channelRow = &user.DMChannel
			mention = "<@" + targetID + ">"
		}
	} else {
		channelRow = &c.User.DMChannel
		mention = "<@" + c.User.DiscordID + ">"
	}

	if interval != nil {
		if *interval < MinInterval {
			return ReminderInfo{Status: StatusShortInterval}, nil
		}
		if *interval > MaxTime {
			return ReminderInfo{Status: StatusLongInterval}, nil
		}
	}

	reminder := models.Reminder{
		Message:   models.Message{Content: text},
		ChannelID: channelRow.ID,
		Time:      at,
		Enabled:   true,
		Method:    method,
		Interval:  interval,
	}
	if err := c.Tx.Create(&reminder).Error; err != nil {
		return ReminderInfo{}, err
	}

	return ReminderInfo{Status: StatusOK, Mention: mention, Time: at}, nil
}

// findAndCreateMember resolves targetID as a member of the invoking
// guild, lazily creating their user row and DM channel. Returns
// (nil, nil) when the id doesn't name a known member.
func (b *Bot) findAndCreateMember(targetID string, c *Context) (*models.User, error) {
	user, err := dal.FindUser(targetID, c.Tx)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	member, err := c.Session.State.Member(c.Message.GuildID, targetID)
	if err != nil {
		member, err = c.Session.GuildMember(c.Message.GuildID, targetID)
		if err != nil {
			return nil, nil
		}
	}

	dm, err := b.session.UserChannelCreate(targetID)
	if err != nil {
		return nil, nil
	}
	return dal.CreateUser(targetID, member.User.String(), dm.ID, c.Tx)
}

// ensureWebhook attaches the outbound delivery handle to a guild
// channel the first time a reminder targets it. Failure is tolerated;
// delivery falls back to plain sends.
func (b *Bot) ensureWebhook(channel *models.Channel) {
	if channel.WebhookID != "" {
		return
	}
	wh, err := b.session.WebhookCreate(channel.DiscordID, "reminders", "")
	if err != nil {
		b.log.Warn().Err(err).Str("channel", channel.DiscordID).Msg("webhook create")
		return
	}
	channel.WebhookID = wh.ID
	channel.WebhookToken = wh.Token
	if err := b.db.Model(channel).
		Updates(map[string]interface{}{"webhook_id": wh.ID, "webhook_token": wh.Token}).Error; err != nil {
		b.log.Error().Err(err).Str("channel", channel.DiscordID).Msg("webhook save")
	}
}

func (b *Bot) replyReminderStatus(c *Context, info ReminderInfo, natural bool) error {
	key := remindStrings[info.Status]
	if natural {
		if override, ok := naturalStrings[info.Status]; ok {
			key = override
		}
	}

	switch info.Status {
	case StatusOK:
		return c.ReplyEmbed(c.Stringf(key, info.Mention, humanize.Time(time.Unix(info.Time, 0))))
	case StatusLongTime, StatusLongInterval:
		return c.ReplyEmbed(c.Stringf(key, MaxTimeDays))
	case StatusShortInterval:
		return c.ReplyEmbed(c.Stringf(key, MinInterval))
	default:
		return c.ReplyEmbed(c.String(key))
	}
}

func (b *Bot) cmdRemind(c *Context) error { return b.remind(c, false) }

func (b *Bot) cmdInterval(c *Context) error { return b.remind(c, true) }

func (b *Bot) remind(c *Context, isInterval bool) error {
	args := strings.Fields(c.Args())

	usageKey := "remind/no_argument"
	if isInterval {
		usageKey = "interval/no_argument"
	}
	if len(args) < 2 {
		return c.ReplyEmbed(c.Stringf(usageKey, c.Prefs.Prefix()))
	}

	if isInterval {
		elevated, err := b.members.IsElevated(c, c.Message.Author.ID)
		if err != nil {
			return err
		}
		if !elevated {
			return c.ReplyEmbed(c.Stringf("interval/donor", c.Prefs.Prefix()))
		}
	}

	targetID := c.Message.ChannelID
	if strings.HasPrefix(args[0], "<") && c.InGuild() {
		targetID = discordutils.DigitsOnly(args[0])
		args = args[1:]
	}

	extractor := times.New(args[0], c.Prefs.Location())
	extractor.Pool = b.parsePool
	args = args[1:]

	at, err := extractor.ExtractExact(c)
	if errors.Is(err, times.ErrInvalidTime) {
		return c.ReplyEmbed(c.String("remind/invalid_time"))
	}
	if err != nil {
		return err
	}

	var interval *int64
	if isInterval {
		// The message text may be empty; only the interval token is
		// required here.
		if len(args) < 1 {
			return c.ReplyEmbed(c.Stringf(usageKey, c.Prefs.Prefix()))
		}
		ix := times.New(args[0], c.Prefs.Location())
		ix.Pool = b.parsePool
		d, derr := ix.ExtractDisplacement(c)
		if errors.Is(derr, times.ErrInvalidTime) {
			return c.ReplyEmbed(c.String("interval/invalid_interval"))
		}
		if derr != nil {
			return derr
		}
		interval = &d
		args = args[1:]
	}

	info, err := b.createReminder(c, targetID, strings.Join(args, " "), at, interval, models.MethodRemind)
	if err != nil {
		return err
	}
	return b.replyReminderStatus(c, info, false)
}

func (b *Bot) cmdNatural(c *Context) error {
	sendSep := c.String("natural/send")
	parts := strings.SplitN(c.Args(), sendSep, 2)
	if len(parts) < 2 {
		return c.ReplyEmbed(c.Stringf("natural/no_argument", c.Prefs.Prefix()))
	}
	timeCrop, messageCrop := parts[0], parts[1]

	extractor := times.New(timeCrop, c.Prefs.Location())
	extractor.Pool = b.parsePool
	at, err := extractor.ExtractExact(c)
	if errors.Is(err, times.ErrInvalidTime) {
		return c.ReplyEmbed(c.String("natural/invalid_time"))
	}
	if err != nil {
		return err
	}

	targets := []string{c.Message.ChannelID}
	if c.InGuild() {
		if ids, rest, ok := splitTargets(messageCrop, c.String("natural/to")); ok {
			targets = ids
			messageCrop = rest
		}
	}

	var interval *int64
	everySep := c.String("natural/every")
	if idx := strings.LastIndex(messageCrop, everySep); idx >= 0 {
		ix := times.New(messageCrop[idx+len(everySep):], c.Prefs.Location())
		ix.Pool = b.parsePool
		if d, derr := ix.ExtractDisplacement(c); derr == nil {
			elevated, merr := b.members.IsElevated(c, c.Message.Author.ID)
			if merr != nil {
				return merr
			}
			if !elevated {
				return c.ReplyEmbed(c.Stringf("interval/donor", c.Prefs.Prefix()))
			}
			interval = &d
			messageCrop = messageCrop[:idx]
		}
		// An unparseable "every" tail stays part of the message text.
	}

	text := strings.TrimSpace(messageCrop)
	infos := make([]ReminderInfo, 0, len(targets))
	for _, target := range targets {
		info, cerr := b.createReminder(c, target, text, at, interval, models.MethodNatural)
		if cerr != nil {
			return cerr
		}
		infos = append(infos, info)
	}

	// One destination gets the status-specific message; several get
	// only the aggregate success count.
	if len(infos) == 1 {
		return b.replyReminderStatus(c, infos[0], true)
	}
	successes := 0
	for _, info := range infos {
		if info.Status == StatusOK {
			successes++
		}
	}
	return c.ReplyEmbed(c.Stringf("natural/bulk_set", successes))
}

// splitTargets interprets the tail after the last "to" separator as a
// list of channel/user tags when every token in it carries digits.
func splitTargets(messageCrop, sep string) ([]string, string, bool) {
	idx := strings.LastIndex(messageCrop, sep)
	if idx < 0 {
		return nil, "", false
	}

	fields := strings.Fields(messageCrop[idx+len(sep):])
	if len(fields) == 0 {
		return nil, "", false
	}

	ids := make([]string, 0, len(fields))
	for _, field := range fields {
		id := discordutils.DigitsOnly(field)
		if id == "" {
			return nil, "", false
		}
		ids = append(ids, id)
	}
	return ids, messageCrop[:idx], true
}

func (b *Bot) cmdOffset(c *Context) error {
	extractor := times.New(c.Args(), c.Prefs.Location())
	extractor.Pool = b.parsePool

	delta, err := extractor.ExtractDisplacement(c)
	if errors.Is(err, times.ErrInvalidTime) {
		return c.ReplyEmbed(c.String("offset/invalid_time"))
	}
	if err != nil {
		return err
	}
	if delta == 0 {
		p := c.Prefs.Prefix()
		return c.ReplyEmbed(c.Stringf("offset/help", p, p, p))
	}

	if c.InGuild() {
		err = dal.OffsetGuildReminders(c.Guild.ID, delta, c.Tx)
	} else {
		err = dal.OffsetChannelReminders(c.User.DMChannelID, delta, c.Tx)
	}
	if err != nil {
		return err
	}
	return c.ReplyEmbed(c.Stringf("offset/success", times.FormatDisplacement(delta)))
}

func (b *Bot) cmdNudge(c *Context) error {
	extractor := times.New(c.Args(), c.Prefs.Location())
	extractor.Pool = b.parsePool

	delta, err := extractor.ExtractDisplacement(c)
	if errors.Is(err, times.ErrInvalidTime) {
		return c.ReplyEmbed(c.String("nudge/invalid_time"))
	}
	if err != nil {
		return err
	}
	if delta <= -models.NudgeBound || delta >= models.NudgeBound {
		return c.ReplyEmbed(c.String("nudge/invalid_time"))
	}

	var guildRowID *uint
	if c.InGuild() {
		guildRowID = &c.Guild.ID
	}
	channel, _, err := dal.GetOrCreateChannel(c.Message.ChannelID, guildRowID, c.Tx)
	if err != nil {
		return err
	}
	if err := c.Tx.Model(channel).UpdateColumn("nudge", delta).Error; err != nil {
		return err
	}
	return c.ReplyEmbed(c.Stringf("nudge/success", times.FormatDisplacement(delta)))
}

func (b *Bot) cmdLook(c *Context) error {
	args := c.Args()

	limit := 0
	if numbers := digitsTokenRe.FindString(args); numbers != "" {
		limit = atoiSafe(numbers)
	}
	onlyEnabled := strings.Contains(args, "enabled")

	var (
		channel *models.Channel
		created bool
		err     error
	)
	if c.InGuild() {
		channelID := c.Message.ChannelID
		if id, ok := discordutils.FirstChannelMention(args); ok {
			channelID = id
		}
		channel, created, err = dal.GetOrCreateChannel(channelID, &c.Guild.ID, c.Tx)
		if err != nil {
			return err
		}
	} else {
		channel = &c.User.DMChannel
	}

	if created {
		return c.Reply(c.String("look/no_reminders"))
	}

	reminders, err := dal.RemindersForChannel(channel.ID, onlyEnabled, limit, c.Tx)
	if err != nil {
		return err
	}
	if len(reminders) == 0 {
		return c.Reply(c.String("look/no_reminders"))
	}

	if limit > 0 {
		if err := c.Reply(c.Stringf("look/listing_limited", len(reminders))); err != nil {
			return err
		}
	} else if err := c.Reply(c.String("look/listing")); err != nil {
		return err
	}

	loc := c.Prefs.Location()
	lines := make([]string, 0, len(reminders))
	for _, reminder := range reminders {
		state := ""
		if !reminder.Enabled {
			state = " `disabled`"
		}
		lines = append(lines, "'"+reminder.Message.Content+"' *"+c.String("look/inter")+"* **"+
			time.Unix(reminder.Time, 0).In(loc).Format("2006-01-02 15:04:05")+"**"+state)
	}
	return b.sendChunked(c, lines)
}

func (b *Bot) cmdDelete(c *Context) error {
	var (
		reminders []models.Reminder
		err       error
	)
	if c.InGuild() {
		reminders, err = dal.RemindersForGuild(c.Guild.ID, c.Tx)
	} else {
		reminders, err = dal.RemindersForUser(c.User, c.Tx)
	}
	if err != nil {
		return err
	}

	if err := c.Reply(c.String("del/listing")); err != nil {
		return err
	}

	lines := make([]string, 0, len(reminders))
	for i, reminder := range reminders {
		lines = append(lines, "**"+itoa(i+1)+"**: '"+reminder.Message.Content+
			"' *<#"+reminder.Channel.DiscordID+">*")
	}
	if err := b.sendChunked(c, lines); err != nil {
		return err
	}
	if err := c.Reply(c.String("del/listed")); err != nil {
		return err
	}

	channelID := c.Message.ChannelID
	authorID := c.Message.Author.ID
	session := c.Session
	prefs := c.Prefs

	// The reply can be a minute coming, so the wait must not hold the
	// command's unit of work open. The handler returns (committing the
	// listing reads) and the selection applies in a fresh transaction
	// once the reply arrives. Nothing is deleted on timeout.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), confirmTimeout)
		defer cancel()
		reply, err := b.awaiter.wait(ctx, channelID, authorID)
		if err != nil {
			if _, serr := session.ChannelMessageSend(channelID, prefs.String("del/timeout")); serr != nil {
				b.log.Warn().Err(serr).Str("channel", channelID).Msg("del timeout notice")
			}
			return
		}

		ids := selectReminderIDs(reminders, reply.Content)
		err = b.db.Transaction(func(tx *gorm.DB) error {
			return dal.DeleteReminders(ids, tx)
		})
		if err != nil {
			b.log.Error().Err(err).Str("channel", channelID).Msg("delete reminders")
			return
		}
		if _, err := session.ChannelMessageSend(channelID, prefs.Stringf("del/count", len(ids))); err != nil {
			b.log.Warn().Err(err).Str("channel", channelID).Msg("del confirmation")
		}
	}()
	return nil
}

// selectReminderIDs maps the 1-based numbers in a confirmation reply
// onto reminder row ids, in listing order. Numbers may be separated by
// spaces or commas; out-of-range numbers are ignored.
func selectReminderIDs(reminders []models.Reminder, content string) []uint {
	wanted := map[int]bool{}
	for _, token := range digitsTokenRe.FindAllString(strings.ReplaceAll(content, ",", " "), -1) {
		wanted[atoiSafe(token)] = true
	}

	var ids []uint
	for i, reminder := range reminders {
		if wanted[i+1] {
			ids = append(ids, reminder.ID)
		}
	}
	return ids
}

// sendChunked sends lines batched under the platform's message length
// cap.
func (b *Bot) sendChunked(c *Context, lines []string) error {
	const maxLen = 2000

	var chunk strings.Builder
	for _, line := range lines {
		if chunk.Len()+len(line)+1 > maxLen {
			if err := c.Reply(chunk.String()); err != nil {
				return err
			}
			chunk.Reset()
		}
		chunk.WriteString(line)
		chunk.WriteByte('\n')
	}
	if chunk.Len() > 0 {
		return c.Reply(chunk.String())
	}
	return nil
}
