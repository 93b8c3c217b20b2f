package command

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/command-core/internal/config"
	"github.com/keshon/command-core/internal/storage"
	"github.com/keshon/command-core/pkg/cmd"
	"github.com/keshon/command-core/pkg/pager"
)

// ErrNoContext is returned when an invocation does not carry a *Context.
var ErrNoContext = errors.New("invocation has no discord context")

// Context is what the Discord runtime hands a command body. Exactly one of
// Interaction (slash and context-menu invocations) and Message (prefix
// invocations) is set.
type Context struct {
	Session     *discordgo.Session
	Interaction *discordgo.Interaction
	Message     *discordgo.Message

	Tree        *cmd.Tree
	Prefix      string
	PrefixKnown bool
	Permissions cmd.PermissionsInfo

	Config  *config.Config
	Storage *storage.Storage
	Pager   *pager.Engine
	Logger  *zap.Logger

	mu        sync.Mutex
	responded bool
}

// FromInvocation returns the Discord context stored in inv.Data.
func FromInvocation(inv *cmd.Invocation) (*Context, error) {
	if inv == nil {
		return nil, ErrNoContext
	}
	c, ok := inv.Data.(*Context)
	if !ok || c == nil {
		return nil, ErrNoContext
	}
	return c, nil
}

func (c *Context) GuildID() string {
	if c.Interaction != nil {
		return c.Interaction.GuildID
	}
	if c.Message != nil {
		return c.Message.GuildID
	}
	return ""
}

func (c *Context) ChannelID() string {
	if c.Interaction != nil {
		return c.Interaction.ChannelID
	}
	if c.Message != nil {
		return c.Message.ChannelID
	}
	return ""
}

// Author returns the invoking user. Guild interactions carry the user inside
// Member, DM interactions in User.
func (c *Context) Author() *discordgo.User {
	if c.Interaction != nil {
		if c.Interaction.Member != nil && c.Interaction.Member.User != nil {
			return c.Interaction.Member.User
		}
		if c.Interaction.User != nil {
			return c.Interaction.User
		}
	}
	if c.Message != nil && c.Message.Author != nil {
		return c.Message.Author
	}
	return &discordgo.User{ID: "unknown", Username: "Unknown"}
}

// DisplayName returns the author's global name, falling back to the username.
func (c *Context) DisplayName() string {
	u := c.Author()
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// Log returns a logger annotated with the invocation's guild and author.
func (c *Context) Log() *zap.Logger {
	l := c.Logger
	if l == nil {
		l = zap.NewNop()
	}
	return l.With(zap.String("guild_id", c.GuildID()), zap.String("user_id", c.Author().ID))
}

// Paginate shows text as a paged message and blocks until the display ends.
func (c *Context) Paginate(ctx context.Context, text string, pageSize int, ephemeral bool) error {
	if c.Pager == nil {
		return fmt.Errorf("paginate: no pager configured")
	}
	return c.Pager.Run(ctx, text, pageSize, c.PagerSink(ephemeral))
}

// markResponded records that the interaction has been answered and reports
// whether it already had been.
func (c *Context) markResponded() (already bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	already = c.responded
	c.responded = true
	return already
}
