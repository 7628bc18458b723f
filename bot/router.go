package bot

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LeadIn says how a command invocation was introduced.
type LeadIn int

const (
	// LeadInMention: the message opened with a mention of the bot.
	LeadInMention LeadIn = iota
	// LeadInPrefix: a short free-text prefix directly preceded the
	// command word.
	LeadInPrefix
	// LeadInDM: the message arrived in a direct-message channel.
	LeadInDM
)

// Invocation is a recognized command plus its argument remainder.
// Prefix is the captured lead-in prefix; it is empty for mention and DM
// lead-ins, and the dispatcher compares it against the guild's
// configured prefix before executing anything.
type Invocation struct {
	LeadIn  LeadIn
	Command *Command
	Prefix  string
	Args    string
}

// Router recognizes command invocations in one scan of the message
// text: the lead-in kind, the command, and the remainder come out of a
// single pass rather than a per-command probe loop.
type Router struct {
	mentions []string
	commands map[string]*Command
}

// NewRouter builds a router for the given bot user id over the command
// registry.
func NewRouter(botUserID string, commands map[string]*Command) *Router {
	return &Router{
		mentions: []string{"<@" + botUserID + ">", "<@!" + botUserID + ">"},
		commands: commands,
	}
}

// RouteGuild matches a guild message. Accepted lead-ins are a mention
// of the bot followed by whitespace, or a 1-5 rune prefix glued onto a
// known command name. Matching is case-insensitive and the args
// remainder may span lines.
func (r *Router) RouteGuild(content string) (*Invocation, bool) {
	for _, mention := range r.mentions {
		rest, ok := strings.CutPrefix(content, mention)
		if !ok || rest == "" || !startsWithSpace(rest) {
			continue
		}
		word, args := splitWord(strings.TrimLeftFunc(rest, unicode.IsSpace))
		cmd, ok := r.commands[strings.ToLower(word)]
		if !ok {
			return nil, false
		}
		return &Invocation{LeadIn: LeadInMention, Command: cmd, Args: args}, true
	}

	word, args := splitWord(strings.TrimLeftFunc(content, unicode.IsSpace))
	if word == "" {
		return nil, false
	}

	// The shortest viable prefix wins, i.e. the longest command name
	// that is a suffix of the lead token.
	var (
		best       *Command
		bestName   string
		bestPrefix string
	)
	for name, cmd := range r.commands {
		if len(word) <= len(name) {
			continue
		}
		if !strings.EqualFold(word[len(word)-len(name):], name) {
			continue
		}
		prefix := word[:len(word)-len(name)]
		if n := utf8.RuneCountInString(prefix); n < 1 || n > 5 {
			continue
		}
		if best == nil || len(name) > len(bestName) {
			best, bestName, bestPrefix = cmd, name, prefix
		}
	}
	if best == nil {
		return nil, false
	}
	return &Invocation{LeadIn: LeadInPrefix, Command: best, Prefix: bestPrefix, Args: args}, true
}

// RouteDM matches a direct message: the first whitespace-delimited
// token is the command word, optionally sigil-prefixed; no prefix
// configuration applies.
func (r *Router) RouteDM(content string) (*Invocation, bool) {
	word, args := splitWord(strings.TrimSpace(content))
	word = strings.TrimPrefix(strings.ToLower(word), "$")

	cmd, ok := r.commands[word]
	if !ok {
		return nil, false
	}
	return &Invocation{LeadIn: LeadInDM, Command: cmd, Args: args}, true
}

// splitWord cuts the first whitespace-delimited token off content and
// returns it with the trimmed remainder. Internal newlines in the
// remainder are preserved.
func splitWord(content string) (string, string) {
	idx := strings.IndexFunc(content, unicode.IsSpace)
	if idx < 0 {
		return content, ""
	}
	return content[:idx], strings.TrimSpace(content[idx:])
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}
