package bot

import (
	"strconv"
	"strings"

	"hourglass/dal"
	"hourglass/models"
)

// cmdTodo serves both `todo` (user-owned list) and `todos`
// (guild-owned list); the invoked name selects the scope.
func (b *Bot) cmdTodo(c *Context) error {
	command := c.Inv.Command.Name
	guildScope := command == "todos"

	var (
		todos []models.Todo
		err   error
	)
	if guildScope {
		todos, err = dal.TodosForGuild(c.Guild.ID, c.Tx)
	} else {
		todos, err = dal.TodosForUser(c.User.ID, c.Tx)
	}
	if err != nil {
		return err
	}

	stripped := strings.TrimSpace(c.Args())
	splits := strings.Fields(stripped)

	switch {
	case len(splits) == 0:
		return b.listTodos(c, todos, command)

	case len(splits) >= 2 && splits[0] == "add":
		value := strings.TrimSpace(strings.TrimPrefix(stripped, "add"))
		if guildScope {
			err = dal.AddTodo(nil, &c.Guild.ID, value, c.Tx)
		} else {
			err = dal.AddTodo(&c.User.ID, nil, value, c.Tx)
		}
		if err != nil {
			return err
		}
		return c.Reply(c.Stringf("todo/added", value))

	case len(splits) >= 2 && splits[0] == "remove":
		// Numeric-format and out-of-range failures get distinct
		// messages.
		index, aerr := strconv.Atoi(splits[1])
		if aerr != nil {
			return c.Reply(c.Stringf("todo/error_value", c.Prefs.Prefix(), command))
		}
		if index < 1 || index > len(todos) {
			return c.Reply(c.String("todo/error_index"))
		}
		todo := todos[index-1]
		if err := dal.DeleteTodo(todo.ID, c.Tx); err != nil {
			return err
		}
		return c.Reply(c.Stringf("todo/removed", todo.Value))

	case stripped == "clear":
		if guildScope {
			err = dal.ClearTodosForGuild(c.Guild.ID, c.Tx)
		} else {
			err = dal.ClearTodosForUser(c.User.ID, c.Tx)
		}
		if err != nil {
			return err
		}
		return c.Reply(c.String("todo/cleared"))

	default:
		return c.Reply(c.Stringf("todo/help", c.Prefs.Prefix(), command))
	}
}

func (b *Bot) listTodos(c *Context, todos []models.Todo, command string) error {
	if len(todos) == 0 {
		return c.Reply(c.Stringf("todo/add", c.Prefs.Prefix(), command))
	}

	lines := make([]string, 0, len(todos))
	for i, todo := range todos {
		lines = append(lines, itoa(i+1)+": "+todo.Value)
	}
	return b.sendChunked(c, lines)
}
