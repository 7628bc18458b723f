package bot

import (
	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"hourglass/dal"
	"hourglass/discordutils"
	"hourglass/models"
)

// checkPermissions resolves whether the member may run cmd in the
// guild. It returns the localized denial key when not. The blacklist
// check is separate (see dispatch): it runs strictly after these tier
// checks so administrative commands keep working in blacklisted
// channels.
func checkPermissions(
	cmd *Command,
	guild *discordgo.Guild,
	member *discordgo.Member,
	userID string,
	guildRow *models.Guild,
	tx *gorm.DB,
) (bool, string, error) {
	manager := discordutils.MemberCanManageGuild(guild, member, userID)

	switch cmd.Tier {
	case TierRestricted:
		if !manager {
			return false, "denied/restricted", nil
		}

	case TierManaged:
		if manager {
			break
		}
		var roles []string
		if member != nil {
			roles = member.Roles
		}
		granted, err := dal.RestrictionExists(guildRow.ID, cmd.Name, roles, tx)
		if err != nil {
			return false, "", err
		}
		if !granted {
			return false, "denied/managed", nil
		}
	}

	return true, "", nil
}
