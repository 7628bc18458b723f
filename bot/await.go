package bot

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// awaiter correlates follow-up messages with commands waiting for one,
// keyed by (channel, author). At most one waiter per key; a newer
// waiter replaces an older one.
type awaiter struct {
	mu      sync.Mutex
	waiters map[string]chan *discordgo.Message
}

func newAwaiter() *awaiter {
	return &awaiter{waiters: make(map[string]chan *discordgo.Message)}
}

func awaitKey(channelID, authorID string) string {
	return channelID + "/" + authorID
}

// wait blocks until the author's next message in the channel, or until
// the context expires. The wait is always bounded by the caller's
// deadline; there is no indefinite stall.
func (a *awaiter) wait(ctx context.Context, channelID, authorID string) (*discordgo.Message, error) {
	key := awaitKey(channelID, authorID)
	ch := make(chan *discordgo.Message, 1)

	a.mu.Lock()
	a.waiters[key] = ch
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		if a.waiters[key] == ch {
			delete(a.waiters, key)
		}
		a.mu.Unlock()
	}()

	select {
	case m := <-ch:
		return m, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// feed offers a message to a matching waiter, if any. The message still
// flows through normal dispatch afterwards.
func (a *awaiter) feed(m *discordgo.Message) {
	if m.Author == nil {
		return
	}

	a.mu.Lock()
	ch, ok := a.waiters[awaitKey(m.ChannelID, m.Author.ID)]
	if ok {
		delete(a.waiters, awaitKey(m.ChannelID, m.Author.ID))
	}
	a.mu.Unlock()

	if ok {
		ch <- m
	}
}
