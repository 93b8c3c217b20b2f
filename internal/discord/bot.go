// Package discord connects the command tree to a Discord gateway session:
// it dispatches slash, prefix and context-menu invocations, routes pager
// button presses and registers application commands per guild.
package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/keshon/command-core/internal/config"
	"github.com/keshon/command-core/internal/storage"
	"github.com/keshon/command-core/pkg/cmd"
	"github.com/keshon/command-core/pkg/pager"
	"github.com/keshon/command-core/pkg/retrylimit"
)

const expiredComponentNotice = "This menu has expired."

// Bot is a Discord bot
type Bot struct {
	dg          *discordgo.Session
	cfg         *config.Config
	storage     *storage.Storage
	tree        *cmd.Tree
	prefix      cmd.Prefix
	middlewares []cmd.Middleware
	router      *componentRouter
	pager       *pager.Engine
	limiter     *retrylimit.Limiter
	logger      *zap.Logger
	ctx         context.Context
}

// New creates a bot serving tree. Prefix commands use the per-guild prefix
// from store, falling back to the configured one.
func New(cfg *config.Config, store *storage.Storage, tree *cmd.Tree, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := newComponentRouter()
	return &Bot{
		cfg:     cfg,
		storage: store,
		tree:    tree,
		prefix:  cmd.DynamicPrefix(store.PrefixFunc(cfg.CommandPrefix)),
		router:  router,
		pager: &pager.Engine{
			Source:  router,
			Timeout: cfg.PagerTimeout,
			Logger:  logger.Named("pager"),
		},
		limiter: retrylimit.NewLimiter(rate.Every(200*time.Millisecond), rate.Every(2*time.Second), 10),
		logger:  logger,
		ctx:     context.Background(),
	}
}

// Use appends middlewares; the first one added runs outermost.
func (b *Bot) Use(mws ...cmd.Middleware) {
	b.middlewares = append(b.middlewares, mws...)
}

// Run opens the gateway session and serves events until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg
	b.ctx = ctx

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	b.logger.Info("Shutdown signal received, closing session")
	return nil
}

// configureIntents configures the Discord intents
func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("Discord bot is running",
		zap.String("user", r.User.Username),
		zap.Int("guilds", len(r.Guilds)),
	)
}

// onGuildCreate fires for every guild once the session is ready and whenever
// the bot joins a new one.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log := b.logger.With(zap.String("guild_id", g.ID), zap.String("guild", g.Name))

	if b.cfg.IsGuildBlacklisted(g.ID) {
		log.Info("Leaving blacklisted guild")
		if err := s.GuildLeave(g.ID); err != nil {
			log.Error("Failed to leave guild", zap.Error(err))
		}
		return
	}

	if !b.cfg.RegisterCommands {
		log.Debug("Command registration disabled")
		return
	}
	if err := b.registerCommands(b.ctx, g.ID); err != nil {
		log.Error("Failed to register commands", zap.Error(err))
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.GuildID != "" && b.cfg.IsGuildBlacklisted(m.GuildID) {
		return
	}

	ctx := b.ctx
	prefix, ok := b.prefix.Resolve(ctx, m.GuildID)
	if !ok || !strings.HasPrefix(m.Content, prefix) {
		return
	}

	match, ok := b.tree.Resolve(strings.TrimPrefix(m.Content, prefix), true)
	if !ok || !match.Command.HasPrefix() {
		return
	}

	c := b.newContext(s, prefix, true)
	c.Message = m.Message
	b.execute(ctx, c, match, cmd.SurfacePrefix, match.Rest, newMessagePermissions(s, m.Message))
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.onApplicationCommand(s, i.Interaction)
	case discordgo.InteractionMessageComponent:
		b.onComponent(s, i.Interaction)
	default:
		b.logger.Debug("Unhandled interaction type", zap.Int("type", int(i.Type)))
	}
}

func (b *Bot) onApplicationCommand(s *discordgo.Session, i *discordgo.Interaction) {
	ctx := b.ctx
	data := i.ApplicationCommandData()

	var (
		match   cmd.Match
		ok      bool
		surface cmd.Surface
		args    []string
	)
	switch data.CommandType {
	case discordgo.ChatApplicationCommand:
		path, opts := slashPath(data)
		match, ok = b.tree.Resolve(strings.Join(path, " "), true)
		ok = ok && match.Command.HasSlash() && len(match.Rest) == 0
		surface = cmd.SurfaceSlash
		if ok {
			args = slashArgs(match.Command, opts)
		}
	case discordgo.UserApplicationCommand, discordgo.MessageApplicationCommand:
		match, ok = b.tree.Resolve(data.Name, false)
		ok = ok && match.Command.HasContextMenu()
		surface = cmd.SurfaceContextMenu
		if ok {
			args = []string{data.TargetID}
		}
	}

	prefix, known := b.prefix.Resolve(ctx, i.GuildID)
	c := b.newContext(s, prefix, known)
	c.Interaction = i

	if !ok {
		c.Log().Warn("Unknown command", zap.String("command", data.Name))
		if err := c.Reply("Unknown command.", true); err != nil {
			c.Log().Warn("Failed to answer unknown command", zap.Error(err))
		}
		return
	}
	b.execute(ctx, c, match, surface, args, interactionPermissions{i: i})
}

// onComponent hands a button press to the pager loop that owns the message.
func (b *Bot) onComponent(s *discordgo.Session, i *discordgo.Interaction) {
	if i.Message == nil {
		return
	}
	resp := b.routeComponent(i.Message.ID, i.MessageComponentData().CustomID, i)
	if resp == nil {
		return
	}
	if err := s.InteractionRespond(i, resp); err != nil {
		b.logger.Warn("Failed to answer component", zap.Error(err))
	}
}

// routeComponent delivers a press and returns the answer the adapter still
// owes Discord, or nil when the pager loop answers it. Presses the loop would
// ignore and presses it is too busy to take are acknowledged without change.
func (b *Bot) routeComponent(messageID, customID string, data interface{}) *discordgo.InteractionResponse {
	unchanged := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate}
	if !pager.IsControl(customID) {
		return unchanged
	}

	switch b.router.deliver(messageID, pager.Event{ControlID: customID, Data: data}) {
	case delivered:
		return nil
	case deliverBusy:
		b.logger.Debug("Pager busy, press dropped", zap.String("message_id", messageID))
		return unchanged
	default:
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: expiredComponentNotice,
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		}
	}
}
