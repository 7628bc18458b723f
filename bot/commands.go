package bot

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"hourglass/dal"
	"hourglass/discordutils"
	"hourglass/lang"
	"hourglass/models"
)

const clockFormat = "15:04:05"

func (b *Bot) cmdHelp(c *Context) error {
	return c.ReplyEmbed(c.String("help"))
}

func (b *Bot) cmdInfo(c *Context) error {
	return c.ReplyEmbed(c.Stringf("info",
		c.Session.State.User.Username, c.Prefs.Prefix(), c.Prefs.Prefix()))
}

func (b *Bot) cmdDonate(c *Context) error {
	return c.ReplyEmbed(c.String("donate"))
}

func (b *Bot) cmdPing(c *Context) error {
	uptime := time.Since(b.startTime)

	sent, err := c.Session.ChannelMessageSend(c.Message.ChannelID, ".")
	if err != nil {
		return err
	}
	ping := sent.Timestamp.Sub(c.Message.Timestamp)

	_, err = c.Session.ChannelMessageEdit(c.Message.ChannelID, sent.ID,
		"Uptime: "+humanize.RelTime(b.startTime, time.Now(), "", "")+
			" ("+itoa(int(uptime.Seconds()))+"s)\n"+
			"Ping: "+itoa(int(ping.Milliseconds()))+"ms")
	return err
}

func (b *Bot) cmdPrefix(c *Context) error {
	stripped := strings.TrimSpace(c.Args())
	if stripped == "" {
		return c.Reply(c.Stringf("prefix/no_argument", c.Prefs.Prefix()))
	}

	next, _ := splitWord(stripped)
	if len([]rune(next)) > models.MaxPrefixLength {
		return c.Reply(c.String("prefix/too_long"))
	}

	c.Guild.Prefix = next
	if err := c.Tx.Model(c.Guild).UpdateColumn("prefix", next).Error; err != nil {
		return err
	}
	return c.Reply(c.Stringf("prefix/success", next))
}

func (b *Bot) cmdBlacklist(c *Context) error {
	channelID := c.Message.ChannelID
	if id, ok := discordutils.FirstChannelMention(c.Args()); ok {
		channelID = id
	}

	channel, _, err := dal.GetOrCreateChannel(channelID, &c.Guild.ID, c.Tx)
	if err != nil {
		return err
	}

	channel.Blacklisted = !channel.Blacklisted
	if err := c.Tx.Model(channel).UpdateColumn("blacklisted", channel.Blacklisted).Error; err != nil {
		return err
	}

	if channel.Blacklisted {
		return c.ReplyEmbed(c.String("blacklist/added"))
	}
	return c.ReplyEmbed(c.String("blacklist/removed"))
}

func (b *Bot) cmdRestrict(c *Context) error {
	stripped := c.Args()

	roleID, hasRole := discordutils.FirstRoleMention(stripped)
	words := wordRe.FindAllString(strings.ToLower(stripped), -1)

	switch {
	case len(words) == 0 && !hasRole:
		rows, err := dal.ListRestrictions(c.Guild.ID, c.Tx)
		if err != nil {
			return err
		}
		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, "<@&"+row.RoleID+"> can use `"+row.Command+"`")
		}
		return c.ReplyEmbed(c.Stringf("restrict/allowed", strings.Join(lines, "\n")))

	case len(words) == 0:
		if err := dal.DeleteRestrictionsForRole(c.Guild.ID, roleID, c.Tx); err != nil {
			return err
		}
		return c.ReplyEmbed(c.String("restrict/disabled"))

	case !hasRole:
		p := c.Prefs.Prefix()
		return c.ReplyEmbed(c.Stringf("restrict/help", p, p, p))

	default:
		for _, word := range words {
			cmd := b.commands[word]
			if cmd == nil || cmd.Tier != TierManaged {
				if err := c.ReplyEmbed(c.Stringf("restrict/failure", word)); err != nil {
					return err
				}
				continue
			}
			if err := dal.CreateRestriction(c.Guild.ID, cmd.Name, roleID, c.Tx); err != nil {
				return err
			}
		}
		return c.ReplyEmbed(c.String("restrict/enabled"))
	}
}

func (b *Bot) cmdTimezone(c *Context) error {
	stripped := strings.TrimSpace(c.Args())

	// Guild managers set the server timezone; everyone else sets their
	// personal one.
	admin := c.InGuild() &&
		discordutils.MemberCanManageGuild(c.DGuild, c.Member, c.Message.Author.ID)

	if stripped == "" {
		return c.ReplyEmbed(c.Stringf("timezone/no_argument",
			c.Prefs.Prefix(), c.Prefs.Location().String()))
	}

	loc, err := time.LoadLocation(stripped)
	if err != nil {
		return c.ReplyEmbed(c.String("timezone/no_timezone"))
	}

	key := "timezone/set_p"
	if admin {
		key = "timezone/set"
		c.Guild.Timezone = stripped
		if err := c.Tx.Model(c.Guild).UpdateColumn("timezone", stripped).Error; err != nil {
			return err
		}
	} else {
		c.User.Timezone = stripped
		if err := c.Tx.Model(c.User).UpdateColumn("timezone", stripped).Error; err != nil {
			return err
		}
	}

	return c.ReplyEmbed(c.Stringf(key, stripped, time.Now().In(loc).Format(clockFormat)))
}

func (b *Bot) cmdLang(c *Context) error {
	stripped := strings.TrimSpace(c.Args())

	language, err := dal.FindLanguage(stripped, c.Tx)
	if err != nil {
		return err
	}

	if language == nil {
		languages, lerr := dal.ListLanguages(c.Tx)
		if lerr != nil {
			return lerr
		}
		lines := make([]string, 0, len(languages))
		for _, l := range languages {
			lines = append(lines, title(l.Name)+" ("+l.Code+")")
		}
		return c.ReplyEmbed(c.Stringf("lang/invalid", strings.Join(lines, "\n")))
	}

	c.User.Language = language.Code
	if err := c.Tx.Model(c.User).UpdateColumn("language", language.Code).Error; err != nil {
		return err
	}
	// Confirm in the language just chosen.
	return c.ReplyEmbed(lang.Get(language.Code, "lang/set_p"))
}

func (b *Bot) cmdClock(c *Context) error {
	now := time.Now().In(c.Prefs.Location())
	return c.Reply(c.Stringf("clock/time", now.Format(clockFormat)))
}
