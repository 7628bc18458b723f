// Package membership answers whether a user holds elevated (donor)
// status, which gates recurring reminders.
package membership

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"hourglass/discordutils"
)

// Checker reports recurring-reminder eligibility for a user.
type Checker interface {
	IsElevated(ctx context.Context, userID string) (bool, error)
}

// AllowAll is the checker used when the donor programme is disabled:
// everyone is eligible.
type AllowAll struct{}

func (AllowAll) IsElevated(context.Context, string) (bool, error) { return true, nil }

const cacheTTL = 10 * time.Minute

type cacheEntry struct {
	elevated bool
	expires  time.Time
}

// RoleChecker resolves eligibility by fetching the user's membership in
// the donor guild and looking for the donor role. Lookups are rate
// limited and cached; a user who isn't a member simply isn't elevated.
type RoleChecker struct {
	session *discordgo.Session
	guildID string
	roleID  string
	limiter *rate.Limiter

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewRoleChecker builds a checker against the given donor guild/role.
func NewRoleChecker(session *discordgo.Session, guildID, roleID string) *RoleChecker {
	return &RoleChecker{
		session: session,
		guildID: guildID,
		roleID:  roleID,
		limiter: rate.NewLimiter(rate.Limit(2), 4),
		cache:   make(map[string]cacheEntry),
	}
}

func (c *RoleChecker) IsElevated(ctx context.Context, userID string) (bool, error) {
	c.mu.Lock()
	if entry, ok := c.cache[userID]; ok && time.Now().Before(entry.expires) {
		c.mu.Unlock()
		return entry.elevated, nil
	}
	c.mu.Unlock()

	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	elevated := false
	member, err := c.session.GuildMember(c.guildID, userID)
	if err == nil {
		elevated = discordutils.MemberHasRole(member, c.roleID)
	}
	// A failed fetch (not a member, or API error) counts as not
	// elevated rather than an error; the command reports the denial.

	c.mu.Lock()
	c.cache[userID] = cacheEntry{elevated: elevated, expires: time.Now().Add(cacheTTL)}
	c.mu.Unlock()

	return elevated, nil
}
