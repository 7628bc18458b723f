// Package bot implements the dispatch pipeline: router, permission
// gate, command handlers, reminder service and the delivery poller.
package bot

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"hourglass/config"
	"hourglass/dal"
	"hourglass/discordutils"
	"hourglass/lang"
	"hourglass/membership"
	"hourglass/models"
	"hourglass/times"
)

// Bot is one running instance of the reminder bot.
type Bot struct {
	session   *discordgo.Session
	db        *gorm.DB
	log       zerolog.Logger
	commands  map[string]*Command
	router    atomic.Pointer[Router]
	awaiter   *awaiter
	parsePool *times.Pool
	members   membership.Checker
	localLoc  *time.Location

	botListToken string
	startTime    time.Time

	// now is a test hook.
	now func() time.Time
}

// New creates the bot, registers its event handlers and opens the
// gateway session.
func New(cfg *config.Config, db *gorm.DB, log zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsAll

	b := &Bot{
		session:      session,
		db:           db,
		log:          log,
		awaiter:      newAwaiter(),
		parsePool:    times.NewPool(cfg.ParseWorkers),
		localLoc:     cfg.Location(),
		botListToken: cfg.BotListToken,
		startTime:    time.Now(),
		now:          time.Now,
	}
	b.commands = buildCommands(b)

	if cfg.Patreon.Enabled {
		b.members = membership.NewRoleChecker(session, cfg.Patreon.GuildID, cfg.Patreon.RoleID)
		log.Info().Str("guild", cfg.Patreon.GuildID).Msg("donor checks enabled")
	} else {
		b.members = membership.AllowAll{}
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onGuildCreate)
	session.AddHandler(b.onChannelDelete)

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("open discord session: %w", err)
	}

	return b, nil
}

// Session exposes the underlying gateway session.
func (b *Bot) Session() *discordgo.Session { return b.session }

// Shutdown closes the gateway session and the parse pool.
func (b *Bot) Shutdown() {
	b.log.Info().Msg("shutting down")
	b.parsePool.Close()
	if err := b.session.Close(); err != nil {
		b.log.Error().Err(err).Msg("close session")
	}
}

func (b *Bot) onReady(s *discordgo.Session, _ *discordgo.Ready) {
	// The router needs the bot's own id for mention lead-ins, so it is
	// built here rather than at construction.
	b.router.Store(NewRouter(s.State.User.ID, b.commands))
	b.log.Info().
		Str("user", s.State.User.Username).
		Str("id", s.State.User.ID).
		Msg("bot is up")
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	var known int64
	err := b.db.Model(&models.Guild{}).
		Where("discord_id = ?", g.ID).
		Count(&known).Error
	if err != nil {
		b.log.Error().Err(err).Str("guild", g.ID).Msg("guild lookup")
		return
	}

	if _, err := dal.GetOrCreateGuild(g.ID, b.db); err != nil {
		b.log.Error().Err(err).Str("guild", g.ID).Msg("guild create")
		return
	}

	if known == 0 {
		b.welcome(s, g.Guild)
	}
}

func (b *Bot) welcome(s *discordgo.Session, g *discordgo.Guild) {
	for _, channel := range g.Channels {
		if channel.Type != discordgo.ChannelTypeGuildText || channel.NSFW {
			continue
		}
		perms, err := s.State.UserChannelPermissions(s.State.User.ID, channel.ID)
		if err != nil || perms&discordgo.PermissionSendMessages == 0 {
			continue
		}
		if _, err := s.ChannelMessageSend(channel.ID, lang.Get(lang.DefaultCode, "welcome")); err == nil {
			return
		}
	}
}

func (b *Bot) onChannelDelete(_ *discordgo.Session, c *discordgo.ChannelDelete) {
	if err := dal.DeleteChannel(c.ID, b.db); err != nil {
		b.log.Error().Err(err).Str("channel", c.ID).Msg("channel cleanup")
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	// Commands waiting on a follow-up reply see the message first; it
	// still flows through normal dispatch below.
	b.awaiter.feed(m.Message)

	router := b.router.Load()
	if router == nil {
		return
	}

	if m.GuildID == "" {
		b.dispatchDM(s, m, router)
	} else {
		b.dispatchGuild(s, m, router)
	}
}

// dispatchGuild runs the guild pipeline: route, prefix check, lazy
// guild/user resolution, permission gate, blacklist, then the handler.
// The whole unit runs in one transaction committed on success and
// rolled back on error.
func (b *Bot) dispatchGuild(s *discordgo.Session, m *discordgo.MessageCreate, router *Router) {
	inv, ok := router.RouteGuild(m.Content)
	if !ok {
		return
	}

	if perms, err := s.State.UserChannelPermissions(s.State.User.ID, m.ChannelID); err == nil {
		if perms&discordgo.PermissionSendMessages == 0 || perms&discordgo.PermissionEmbedLinks == 0 {
			return
		}
	}

	err := b.db.Transaction(func(tx *gorm.DB) error {
		guildRow, err := dal.GetOrCreateGuild(m.GuildID, tx)
		if err != nil {
			return err
		}

		// A mention lead-in carries no prefix and is always accepted.
		if inv.LeadIn == LeadInPrefix && inv.Prefix != guildRow.EffectivePrefix() {
			return nil
		}

		user, err := b.getOrCreateUser(m.Author, tx)
		if err != nil {
			return err
		}
		if err := dal.EnsureMembership(guildRow, user, tx); err != nil {
			return err
		}

		prefs := lang.NewPreferences(guildRow, user)
		prefs.Fallback = b.localLoc

		dguild, _ := s.State.Guild(m.GuildID)
		member := b.member(s, m)

		allowed, denialKey, err := checkPermissions(inv.Command, dguild, member, m.Author.ID, guildRow, tx)
		if err != nil {
			return err
		}
		if !allowed {
			return b.sendEmbed(m.ChannelID, prefs.Stringf(denialKey, prefs.Prefix()))
		}

		if inv.Command.Blacklists {
			channel, _, err := dal.GetOrCreateChannel(m.ChannelID, &guildRow.ID, tx)
			if err != nil {
				return err
			}
			if channel.Blacklisted {
				return b.sendEmbed(m.ChannelID, prefs.String("blacklisted"))
			}
		}

		if perms, err := s.State.UserChannelPermissions(s.State.User.ID, m.ChannelID); err == nil {
			if perms&discordgo.PermissionManageWebhooks == 0 {
				_, err := s.ChannelMessageSend(m.ChannelID, prefs.String("no_perms_webhook"))
				return err
			}
		}

		c := &Context{
			Context: context.Background(),
			Bot:     b,
			Session: s,
			Message: m.Message,
			Tx:      tx,
			Inv:     inv,
			Guild:   guildRow,
			User:    user,
			DGuild:  dguild,
			Member:  member,
			Prefs:   prefs,
		}
		b.log.Debug().
			Str("command", inv.Command.Name).
			Str("guild", m.GuildID).
			Str("author", m.Author.ID).
			Msg("dispatch")
		return inv.Command.Handler(c)
	})
	if err != nil {
		b.log.Error().Err(err).
			Str("command", inv.Command.Name).
			Str("guild", m.GuildID).
			Msg("command failed, rolled back")
	}
}

func (b *Bot) dispatchDM(s *discordgo.Session, m *discordgo.MessageCreate, router *Router) {
	inv, ok := router.RouteDM(m.Content)
	if !ok || !inv.Command.AllowDM {
		return
	}

	err := b.db.Transaction(func(tx *gorm.DB) error {
		user, err := b.getOrCreateUser(m.Author, tx)
		if err != nil {
			return err
		}

		prefs := lang.NewPreferences(nil, user)
		prefs.Fallback = b.localLoc

		c := &Context{
			Context: context.Background(),
			Bot:     b,
			Session: s,
			Message: m.Message,
			Tx:      tx,
			Inv:     inv,
			User:    user,
			Prefs:   prefs,
		}
		b.log.Debug().
			Str("command", inv.Command.Name).
			Str("author", m.Author.ID).
			Msg("dispatch dm")
		return inv.Command.Handler(c)
	})
	if err != nil {
		b.log.Error().Err(err).
			Str("command", inv.Command.Name).
			Msg("dm command failed, rolled back")
	}
}

// getOrCreateUser resolves the author's user row, creating it (and
// their DM channel, platform side included) on first contact.
func (b *Bot) getOrCreateUser(author *discordgo.User, tx *gorm.DB) (*models.User, error) {
	user, err := dal.FindUser(author.ID, tx)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	dm, err := b.session.UserChannelCreate(author.ID)
	if err != nil {
		return nil, fmt.Errorf("create dm channel: %w", err)
	}
	return dal.CreateUser(author.ID, author.String(), dm.ID, tx)
}

func (b *Bot) member(s *discordgo.Session, m *discordgo.MessageCreate) *discordgo.Member {
	if m.Member != nil {
		member := *m.Member
		if member.User == nil {
			member.User = m.Author
		}
		return &member
	}
	member, err := s.State.Member(m.GuildID, m.Author.ID)
	if err != nil {
		return nil
	}
	return member
}

func (b *Bot) sendEmbed(channelID, description string) error {
	return discordutils.SendEmbed(b.session, channelID, description, themeColor)
}
