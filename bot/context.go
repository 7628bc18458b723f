package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"hourglass/discordutils"
	"hourglass/lang"
	"hourglass/models"
)

const themeColor = 0x8fb677

// Context carries everything one command execution needs: the unit of
// work (Tx), the resolved guild/user rows, preferences, and the raw
// platform objects. Guild, DGuild and Member are nil for DM
// invocations.
type Context struct {
	context.Context

	Bot     *Bot
	Session *discordgo.Session
	Message *discordgo.Message
	Tx      *gorm.DB
	Inv     *Invocation

	Guild  *models.Guild
	User   *models.User
	DGuild *discordgo.Guild
	Member *discordgo.Member
	Prefs  *lang.Preferences
}

// InGuild reports whether the command was issued in a guild channel.
func (c *Context) InGuild() bool { return c.Guild != nil }

// Args is the raw argument remainder of the invocation.
func (c *Context) Args() string { return c.Inv.Args }

// Reply sends plain text to the invoking channel.
func (c *Context) Reply(text string) error {
	_, err := c.Session.ChannelMessageSend(c.Message.ChannelID, text)
	return err
}

// ReplyEmbed sends a themed single-description embed to the invoking
// channel.
func (c *Context) ReplyEmbed(description string) error {
	return discordutils.SendEmbed(c.Session, c.Message.ChannelID, description, themeColor)
}

// String resolves a localized string for the invoking user.
func (c *Context) String(key string) string { return c.Prefs.String(key) }

// Stringf resolves and formats a localized string.
func (c *Context) Stringf(key string, args ...interface{}) string {
	return c.Prefs.Stringf(key, args...)
}
