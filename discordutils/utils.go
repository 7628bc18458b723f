package discordutils

import (
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// RoleAllowsGuildManagement returns true if the given role grants admin
// or manage-server permissions.
func RoleAllowsGuildManagement(role *discordgo.Role) bool {
	return role.Permissions&(discordgo.PermissionAdministrator|discordgo.PermissionManageServer) > 0
}

// MemberCanManageGuild returns true if the member holds the Manage
// Server capability: guild owner, administrator, or a role with the
// manage-guild permission.
func MemberCanManageGuild(guild *discordgo.Guild, member *discordgo.Member, userID string) bool {
	if guild == nil || member == nil {
		return false
	}
	if guild.OwnerID == userID {
		return true
	}

	guildRoles := make(map[string]*discordgo.Role)
	for _, role := range guild.Roles {
		guildRoles[role.ID] = role
	}

	for _, roleID := range member.Roles {
		if role, ok := guildRoles[roleID]; ok {
			if RoleAllowsGuildManagement(role) {
				return true
			}
		}
	}

	return false
}

// MemberHasRole returns true if the given member holds the given role.
func MemberHasRole(member *discordgo.Member, roleID string) bool {
	for _, id := range member.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}

// SendEmbed sends a single-description embed to the channel.
func SendEmbed(session *discordgo.Session, channelID, description string, color int) error {
	_, err := session.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Description: description,
		Color:       color,
	})
	return err
}

var (
	channelMentionRe = regexp.MustCompile(`<#(\d+)>`)
	roleMentionRe    = regexp.MustCompile(`<@&(\d+)>`)
	digitsRe         = regexp.MustCompile(`\d+`)
)

// FirstChannelMention extracts the first <#id> mention from content.
func FirstChannelMention(content string) (string, bool) {
	m := channelMentionRe.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// FirstRoleMention extracts the first <@&id> mention from content.
func FirstRoleMention(content string) (string, bool) {
	m := roleMentionRe.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DigitsOnly strips everything but digits, e.g. a raw mention token
// down to the snowflake it carries.
func DigitsOnly(s string) string {
	return strings.Join(digitsRe.FindAllString(s, -1), "")
}
