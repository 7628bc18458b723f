package lang

var en = Bundle{
	"blacklisted":      "This channel is blacklisted from commands.",
	"no_perms_webhook": "I need the **Manage Webhooks** permission to deliver reminders here.",
	"denied/restricted": "You need the **Manage Server** permission to use this command. `%vhelp` lists the ones you can.",
	"denied/managed":    "You don't have permission to use this command. A server manager can grant it to one of your roles with `%vrestrict`.",

	"welcome": "Thank you for adding hourglass! To begin, type `$help`!",

	"help": "`$remind 10m water the plants` sets a one-off reminder.\n" +
		"`$interval 10m 1h check the oven` repeats it.\n" +
		"`$natural remind me to stretch in 2 hours` if you'd rather just say it.\n" +
		"Other commands: `todo`, `timer`, `look`, `del`, `offset`, `nudge`, `timezone`, `clock`, `prefix`, `restrict`, `blacklist`, `lang`, `info`, `ping`.",
	"info":   "Hello! I'm %v. My prefix here is `%v`. Type `%vhelp` for commands.",
	"donate": "If you find the bot useful, you can support development at the donate page. Donors can create repeating reminders with `interval`.",

	"prefix/no_argument": "Current prefix: `%v`. Provide a new one to change it.",
	"prefix/too_long":    "Prefixes must be 5 characters or fewer.",
	"prefix/success":     "Prefix changed to `%v`.",

	"timezone/no_argument": "Usage: `%vtimezone <region/city>`. Current timezone: `%v`.",
	"timezone/no_timezone": "That isn't a timezone I know. Use an IANA name like `Europe/London`.",
	"timezone/set":         "Server timezone set to `%v`. Local time there is %v.",
	"timezone/set_p":       "Your personal timezone is now `%v`. Local time there is %v.",

	"lang/set_p":   "Language updated.",
	"lang/invalid": "I don't speak that (yet). Available languages:\n%v",

	"clock/time": "The time is %v.",

	"natural/no_argument":  "Usage: `%vnatural <time> send <message> [to <targets>] [every <interval>]`.",
	"natural/invalid_time": "I couldn't work out when you meant. Try something like `tomorrow at 9am`.",
	"natural/send":         " send ",
	"natural/to":           " to ",
	"natural/every":        " every ",
	"natural/bulk_set":     "Set %v reminders.",
	"natural/success":      "Got it. I'll send the reminder to %v %v.",

	"remind/no_argument":  "Usage: `%vremind <time> <message>`.",
	"remind/invalid_time": "I couldn't parse that time. Try `10m`, `16:45` or `2006-01-02 15:04`.",
	"remind/success":      "Reminder set for %v, %v.",
	"remind/past_time":    "That time is in the past.",
	"remind/long_time":    "Reminders can be at most %v days in the future.",
	"remind/invalid_tag":  "I couldn't find that channel or user.",

	"interval/no_argument":      "Usage: `%vinterval <time> <interval> <message>`.",
	"interval/donor":            "Repeating reminders are a donor perk. See `%vdonate`.",
	"interval/invalid_interval": "I couldn't parse that interval. Try `1h` or `2 days`.",
	"interval/short_interval":   "Intervals must be at least %v seconds.",
	"interval/long_interval":    "Intervals can be at most %v days.",

	"timer/help":        "Usage: `%vtimer [list | start [name] | delete <name>]`.",
	"timer/limit":       "You can have at most 25 timers.",
	"timer/name_length": "Timer names are capped at 32 characters (yours was %v).",
	"timer/unique":      "A timer with that name already exists.",
	"timer/success":     "Timer started.",
	"timer/not_found":   "No timer goes by that name.",
	"timer/deleted":     "Timer deleted.",

	"del/listing": "Your reminders:",
	"del/listed":  "Reply with the numbers of the reminders to delete, separated by spaces or commas.",
	"del/count":   "Deleted %v reminders.",
	"del/timeout": "No reply received; nothing was deleted.",

	"look/no_reminders":    "This channel has no reminders.",
	"look/listing":         "Reminders for this channel:",
	"look/listing_limited": "Showing %v reminders:",
	"look/inter":           "occurs",

	"todo/help":        "Usage: `%v%v [add <text> | remove <number> | clear]`.",
	"todo/add":         "The list is empty. Add something with `%v%v add <text>`.",
	"todo/added":       "Added `%v` to the list.",
	"todo/removed":     "Removed `%v` from the list.",
	"todo/error_value": "That wasn't a number. Usage: `%v%v remove <number>`.",
	"todo/error_index": "There's no item at that position.",
	"todo/cleared":     "List cleared.",

	"offset/help":         "Usage: `%voffset <displacement>`, e.g. `%voffset 1h` or `%voffset -10m`.",
	"offset/invalid_time": "I couldn't parse that displacement.",
	"offset/success":      "All reminders shifted by %v.",

	"nudge/invalid_time": "Nudges must parse as a displacement under ~9 hours either way.",
	"nudge/success":      "Reminders created in this channel will now be shifted by %v.",

	"restrict/allowed":  "Current restrictions:\n%v",
	"restrict/disabled": "Removed all restrictions for that role.",
	"restrict/help":     "Usage: `%vrestrict <@role> <commands...>` to grant, `%vrestrict <@role>` to revoke, `%vrestrict` to list.",
	"restrict/failure":  "`%v` can't be restricted (only managed commands can).",
	"restrict/enabled":  "Restrictions updated.",

	"blacklist/added":   "Channel blacklisted. Most commands will be ignored here.",
	"blacklist/removed": "Channel removed from the blacklist.",
}
