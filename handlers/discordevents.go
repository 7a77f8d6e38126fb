package handlers

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"

	"rolebot/clients"
	"rolebot/core/log"
	"rolebot/models"
	"rolebot/services/eventqueue"
	"rolebot/usecases"
)

const (
	watchingActivity = "for role reactions"
	welcomeColor     = 0x3498DB
)

// DiscordEventsHandler turns gateway events into serialized tasks
type DiscordEventsHandler struct {
	session         *discordgo.Session
	discordClient   clients.DiscordClient
	rolesUseCase    usecases.RolesUseCaseInterface
	commandsHandler *CommandsHandler
	queue           *eventqueue.Queue
	scanOnReady     bool

	// knownGuilds is only touched from queue tasks
	knownGuilds map[string]bool
	disconnects atomic.Int64
}

func NewDiscordEventsHandler(
	session *discordgo.Session,
	discordClient clients.DiscordClient,
	rolesUseCase usecases.RolesUseCaseInterface,
	commandsHandler *CommandsHandler,
	queue *eventqueue.Queue,
	scanOnReady bool,
) *DiscordEventsHandler {
	handler := &DiscordEventsHandler{
		session:         session,
		discordClient:   discordClient,
		rolesUseCase:    rolesUseCase,
		commandsHandler: commandsHandler,
		queue:           queue,
		scanOnReady:     scanOnReady,
		knownGuilds:     make(map[string]bool),
	}

	// Register event handlers
	session.AddHandler(handler.handleReady)
	session.AddHandler(handler.handleGuildCreate)
	session.AddHandler(handler.handleReactionAdded)
	session.AddHandler(handler.handleReactionRemoved)
	session.AddHandler(handler.handleMessageCreated)
	session.AddHandler(handler.handleConnect)
	session.AddHandler(handler.handleDisconnect)
	session.AddHandler(handler.handleResumed)

	// Handlers only enqueue, so running them inline keeps gateway order
	session.SyncEvents = true

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	return handler
}

// StartBot opens the Discord connection and starts listening for events
func (h *DiscordEventsHandler) StartBot() error {
	if err := h.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Info("🤖 Discord bot is now running and listening for events")
	return nil
}

// StopBot closes the Discord connection. Queued tasks are left to the queue owner.
func (h *DiscordEventsHandler) StopBot() {
	if err := h.session.Close(); err != nil {
		log.Warn("⚠️ Failed to close Discord session", "error", err)
	}
}

// Disconnects returns how many times the gateway connection was lost
func (h *DiscordEventsHandler) Disconnects() int64 {
	return h.disconnects.Load()
}

func (h *DiscordEventsHandler) handleReady(_ *discordgo.Session, r *discordgo.Ready) {
	guildIDs := make([]string, 0, len(r.Guilds))
	for _, guild := range r.Guilds {
		guildIDs = append(guildIDs, guild.ID)
	}
	username := ""
	if r.User != nil {
		username = r.User.Username
	}
	log.Info("🤖 Connected to Discord", "user", username, "guilds", len(guildIDs))

	h.queue.Submit("ready", func(ctx context.Context) {
		for _, guildID := range guildIDs {
			h.knownGuilds[guildID] = true
		}
		if err := h.discordClient.UpdateWatchingStatus(watchingActivity); err != nil {
			log.Warn("⚠️ Failed to set presence", "error", err)
		}
	})

	if !h.scanOnReady {
		return
	}
	h.queue.Submit("startup_scan", func(ctx context.Context) {
		results := h.rolesUseCase.ScanAll(ctx, guildIDs)
		total := 0
		for _, count := range results {
			total += count
		}
		if total > 0 {
			log.Info("✅ Reconnected role messages", "messages", total, "guilds", len(results))
			return
		}
		log.Info("📋 No existing role messages found to reconnect")
	})
}

func (h *DiscordEventsHandler) handleGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Guild == nil || g.Unavailable {
		return
	}
	event := models.DiscordGuildJoinEvent{
		GuildID:         g.ID,
		GuildName:       g.Name,
		SystemChannelID: g.SystemChannelID,
	}

	h.queue.Submit("guild_create", func(ctx context.Context) {
		if h.knownGuilds[event.GuildID] {
			return
		}
		h.knownGuilds[event.GuildID] = true
		h.welcome(ctx, event)
	})
}

func (h *DiscordEventsHandler) welcome(ctx context.Context, event models.DiscordGuildJoinEvent) {
	log.Info("🤖 Joined a new guild", "guild", event.GuildName, "guild_id", event.GuildID)
	if event.SystemChannelID == "" {
		return
	}

	if _, err := h.discordClient.SendEmbed(ctx, event.SystemChannelID, welcomeEmbed(h.commandsHandler.Prefix())); err != nil {
		log.Warn("⚠️ Failed to send welcome message", "guild_id", event.GuildID, "error", err)
	}
}

func (h *DiscordEventsHandler) handleReactionAdded(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
	h.submitReaction(r.MessageReaction, true)
}

func (h *DiscordEventsHandler) handleReactionRemoved(_ *discordgo.Session, r *discordgo.MessageReactionRemove) {
	h.submitReaction(r.MessageReaction, false)
}

func (h *DiscordEventsHandler) submitReaction(r *discordgo.MessageReaction, added bool) {
	event, ok := mapToReactionEvent(r, added)
	if !ok {
		return
	}

	h.queue.Submit("reaction", func(ctx context.Context) {
		outcome := h.rolesUseCase.OnReaction(ctx, event)
		log.Debug("📋 Reaction handled",
			"message_id", event.MessageID, "user_id", event.UserID, "symbol", event.Symbol,
			"added", event.Added, "outcome", outcome.String())
	})
}

func (h *DiscordEventsHandler) handleMessageCreated(_ *discordgo.Session, m *discordgo.MessageCreate) {
	event, ok := mapToMessageEvent(m)
	if !ok {
		return
	}

	botUser, err := h.discordClient.GetBotUser()
	if err != nil {
		log.Error("❌ Failed to get bot user", "error", err)
		return
	}
	detected, ok := h.commandsHandler.Detect(event, botUser.ID)
	if !ok {
		return
	}

	h.queue.Submit("command", func(ctx context.Context) {
		h.commandsHandler.HandleCommand(ctx, event, detected)
	})
}

func (h *DiscordEventsHandler) handleConnect(_ *discordgo.Session, _ *discordgo.Connect) {
	log.Info("🔌 Bot connected to Discord")
}

func (h *DiscordEventsHandler) handleDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	count := h.disconnects.Add(1)
	log.Warn("⚠️ Bot disconnected from Discord, will attempt to reconnect", "disconnects", count)
}

func (h *DiscordEventsHandler) handleResumed(_ *discordgo.Session, _ *discordgo.Resumed) {
	log.Info("🔌 Session resumed successfully")
}

// mapToReactionEvent maps a gateway reaction to our domain model. Direct
// message reactions are dropped.
func mapToReactionEvent(r *discordgo.MessageReaction, added bool) (models.ReactionEvent, bool) {
	if r == nil || r.GuildID == "" {
		return models.ReactionEvent{}, false
	}
	return models.ReactionEvent{
		GuildID:   r.GuildID,
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		UserID:    r.UserID,
		Symbol:    r.Emoji.MessageFormat(),
		Added:     added,
	}, true
}

// mapToMessageEvent maps a gateway message to our domain model
func mapToMessageEvent(m *discordgo.MessageCreate) (models.DiscordMessageEvent, bool) {
	if m == nil || m.Message == nil || m.Author == nil || m.GuildID == "" {
		return models.DiscordMessageEvent{}, false
	}
	return models.DiscordMessageEvent{
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		MessageID:   m.ID,
		UserID:      m.Author.ID,
		Content:     m.Content,
		AuthorIsBot: m.Author.Bot,
	}, true
}

func welcomeEmbed(prefix string) models.Embed {
	return models.Embed{
		Title: "👋 Hello!",
		Description: "Thanks for adding me to your server! " +
			"I'm designed to help manage roles through reactions.\n\n" +
			"**Commands**:\n" +
			fmt.Sprintf("• `%ssetup_roles` - Creates all the roles\n", prefix) +
			fmt.Sprintf("• `%screate_role_messages [channel]` - Creates all reaction role messages\n", prefix) +
			fmt.Sprintf("• `%ssetup_category [category] [channel]` - Sets up roles for a specific category\n", prefix) +
			fmt.Sprintf("• `%srepost_category [category] [channel]` - Replaces a category's role message\n", prefix) +
			fmt.Sprintf("• `%sscan_roles [channel]` - Reconnects existing role messages\n\n", prefix) +
			"You need admin permissions to use these commands.",
		Color: welcomeColor,
	}
}
