package bot

// Tier is a command's minimum required privilege level.
type Tier int

const (
	// TierOpen commands are usable by anyone.
	TierOpen Tier = iota
	// TierManaged commands are usable by guild managers, and by anyone
	// holding a role granted the command via `restrict`.
	TierManaged
	// TierRestricted commands require the Manage Server capability.
	TierRestricted
)

// HandlerFunc executes one command invocation.
type HandlerFunc func(c *Context) error

// Command describes one entry of the command surface: its privilege
// tier, whether it works in DMs, and whether blacklist checks apply.
type Command struct {
	Name       string
	Tier       Tier
	AllowDM    bool
	Blacklists bool
	Handler    HandlerFunc
}

// buildCommands assembles the command registry, aliases included.
func buildCommands(b *Bot) map[string]*Command {
	table := []*Command{
		{Name: "help", Tier: TierOpen, AllowDM: true, Blacklists: false, Handler: b.cmdHelp},
		{Name: "info", Tier: TierOpen, AllowDM: true, Blacklists: true, Handler: b.cmdInfo},
		{Name: "donate", Tier: TierOpen, AllowDM: true, Blacklists: true, Handler: b.cmdDonate},

		{Name: "prefix", Tier: TierRestricted, AllowDM: false, Blacklists: false, Handler: b.cmdPrefix},
		{Name: "blacklist", Tier: TierRestricted, AllowDM: false, Blacklists: false, Handler: b.cmdBlacklist},
		{Name: "restrict", Tier: TierRestricted, AllowDM: false, Blacklists: true, Handler: b.cmdRestrict},

		{Name: "timezone", Tier: TierOpen, AllowDM: true, Blacklists: true, Handler: b.cmdTimezone},
		{Name: "lang", Tier: TierOpen, AllowDM: true, Blacklists: true, Handler: b.cmdLang},
		{Name: "clock", Tier: TierOpen, AllowDM: true, Blacklists: true, Handler: b.cmdClock},

		{Name: "offset", Tier: TierRestricted, AllowDM: true, Blacklists: true, Handler: b.cmdOffset},
		{Name: "nudge", Tier: TierRestricted, AllowDM: true, Blacklists: true, Handler: b.cmdNudge},

		{Name: "natural", Tier: TierManaged, AllowDM: true, Blacklists: true, Handler: b.cmdNatural},
		{Name: "remind", Tier: TierManaged, AllowDM: true, Blacklists: true, Handler: b.cmdRemind},
		{Name: "interval", Tier: TierManaged, AllowDM: true, Blacklists: true, Handler: b.cmdInterval},
		{Name: "timer", Tier: TierManaged, AllowDM: false, Blacklists: true, Handler: b.cmdTimer},
		{Name: "del", Tier: TierManaged, AllowDM: true, Blacklists: true, Handler: b.cmdDelete},
		{Name: "look", Tier: TierManaged, AllowDM: true, Blacklists: true, Handler: b.cmdLook},

		{Name: "todos", Tier: TierManaged, AllowDM: false, Blacklists: true, Handler: b.cmdTodo},
		{Name: "todo", Tier: TierOpen, AllowDM: true, Blacklists: true, Handler: b.cmdTodo},

		{Name: "ping", Tier: TierOpen, AllowDM: true, Blacklists: true, Handler: b.cmdPing},
	}

	commands := make(map[string]*Command, len(table)+2)
	for _, cmd := range table {
		commands[cmd.Name] = cmd
	}
	commands["n"] = commands["natural"]
	commands["r"] = commands["remind"]

	return commands
}
