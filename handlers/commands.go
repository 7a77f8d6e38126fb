package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rolebot/catalog"
	"rolebot/clients"
	"rolebot/core"
	"rolebot/core/log"
	"rolebot/models"
	"rolebot/usecases"
	"rolebot/utils"
)

const (
	msgNoPermission     = "❌ You don't have permission to use this command."
	msgChannelNotFound  = "❌ Could not find the specified channel. Please mention a valid channel."
	msgErrorOccurredFmt = "❌ An error occurred: %v"
)

var errChannelNotFound = errors.New("channel not found")

type commandFunc func(ctx context.Context, cmd *commandContext) error

// commandContext carries one admin command invocation
type commandContext struct {
	ID      string
	Name    string
	Args    []string
	GuildID string
	// ChannelID is where the command was typed and where replies go
	ChannelID string
	UserID    string
}

// CommandsHandler executes the admin command surface. Every accepted command
// posts a progress message followed by exactly one result message.
type CommandsHandler struct {
	discordClient clients.DiscordClient
	rolesUseCase  usecases.RolesUseCaseInterface
	catalog       *catalog.Catalog
	prefix        string
	commands      map[string]commandFunc
}

func NewCommandsHandler(
	discordClient clients.DiscordClient,
	rolesUseCase usecases.RolesUseCaseInterface,
	roleCatalog *catalog.Catalog,
	prefix string,
) *CommandsHandler {
	h := &CommandsHandler{
		discordClient: discordClient,
		rolesUseCase:  rolesUseCase,
		catalog:       roleCatalog,
		prefix:        prefix,
	}
	h.commands = map[string]commandFunc{
		"setup_roles":          h.setupRoles,
		"create_role_messages": h.createRoleMessages,
		"setup_category":       h.setupCategory,
		"repost_category":      h.repostCategory,
		"scan_roles":           h.scanRoles,
	}
	return h
}

// Prefix returns the text prefix commands start with
func (h *CommandsHandler) Prefix() string {
	return h.prefix
}

// Detect reports whether a message invokes a known command
func (h *CommandsHandler) Detect(event models.DiscordMessageEvent, botUserID string) (utils.CommandDetectionResult, bool) {
	if event.AuthorIsBot || event.GuildID == "" {
		return utils.CommandDetectionResult{}, false
	}
	result := utils.DetectCommand(event.Content, h.prefix, botUserID)
	if !result.IsCommand {
		return result, false
	}
	_, known := h.commands[result.Name]
	return result, known
}

// HandleCommand runs a detected command. Errors are reported to the invoking
// channel and never returned.
func (h *CommandsHandler) HandleCommand(
	ctx context.Context,
	event models.DiscordMessageEvent,
	detected utils.CommandDetectionResult,
) {
	run, ok := h.commands[detected.Name]
	if !ok {
		return
	}

	cmd := &commandContext{
		ID:        core.NewID("cmd"),
		Name:      detected.Name,
		Args:      detected.Args,
		GuildID:   event.GuildID,
		ChannelID: event.ChannelID,
		UserID:    event.UserID,
	}
	log.Info("📋 Starting to handle command",
		"command", cmd.Name, "command_id", cmd.ID, "guild_id", cmd.GuildID, "user_id", cmd.UserID)

	isAdmin, err := h.discordClient.IsAdministrator(ctx, event.ChannelID, event.UserID)
	if err != nil {
		log.Error("❌ Failed to check permissions", "command_id", cmd.ID, "error", err)
		h.reply(ctx, cmd, fmt.Sprintf(msgErrorOccurredFmt, err))
		return
	}
	if !isAdmin {
		log.Warn("⚠️ Command rejected, user is not an administrator", "command_id", cmd.ID, "user_id", cmd.UserID)
		h.reply(ctx, cmd, msgNoPermission)
		return
	}

	if err := run(ctx, cmd); err != nil {
		log.Error("❌ Command failed", "command", cmd.Name, "command_id", cmd.ID, "error", err)
		return
	}
	log.Info("📋 Completed successfully - handled command", "command", cmd.Name, "command_id", cmd.ID)
}

func (h *CommandsHandler) setupRoles(ctx context.Context, cmd *commandContext) error {
	h.reply(ctx, cmd, "📋 Setting up roles... This may take a moment.")

	roles, err := h.rolesUseCase.EnsureRoles(ctx, cmd.GuildID)
	if err != nil {
		h.replyError(ctx, cmd, err, "❌ I don't have permission to manage roles. Please check my permissions and try again.")
		return err
	}

	total := 0
	for _, categoryRoles := range roles {
		total += len(categoryRoles)
	}
	h.reply(ctx, cmd, fmt.Sprintf("✅ Successfully set up %d roles across %d categories!", total, len(roles)))
	return nil
}

func (h *CommandsHandler) createRoleMessages(ctx context.Context, cmd *commandContext) error {
	channel, err := h.resolveChannel(ctx, cmd, argAt(cmd.Args, 0))
	if err != nil {
		return err
	}

	h.reply(ctx, cmd, fmt.Sprintf("📝 Creating role messages in %s...", channel.Mention()))

	const permissionText = "❌ I don't have permission to send messages or manage roles. " +
		"Please check my permissions and try again."
	roles, err := h.rolesUseCase.EnsureRoles(ctx, cmd.GuildID)
	if err != nil {
		h.replyError(ctx, cmd, err, permissionText)
		return err
	}

	sent := 0
	for _, categoryID := range h.catalog.IDs() {
		binding, err := h.rolesUseCase.Publish(ctx, channel.ID, categoryID, roles[categoryID])
		if err != nil {
			h.replyError(ctx, cmd, err, permissionText)
			return err
		}
		if binding.IsPresent() {
			sent++
		}
	}

	h.reply(ctx, cmd, fmt.Sprintf("✅ Successfully created %d role selection messages!", sent))
	return nil
}

func (h *CommandsHandler) setupCategory(ctx context.Context, cmd *commandContext) error {
	categoryID := argAt(cmd.Args, 0)
	if categoryID == "" {
		h.reply(ctx, cmd, "❌ Missing required argument: `category`.")
		return nil
	}
	if h.catalog.Lookup(categoryID).IsAbsent() {
		h.reply(ctx, cmd, fmt.Sprintf("❌ Category '%s' not found. Available categories: %s",
			categoryID, strings.Join(h.catalog.IDs(), ", ")))
		return nil
	}

	channel, err := h.resolveChannel(ctx, cmd, argAt(cmd.Args, 1))
	if err != nil {
		return err
	}

	h.reply(ctx, cmd, fmt.Sprintf("📝 Setting up %s roles and message in %s...", categoryID, channel.Mention()))

	const permissionText = "❌ I don't have permission to send messages or manage roles. " +
		"Please check my permissions and try again."
	roles, err := h.rolesUseCase.EnsureRoles(ctx, cmd.GuildID)
	if err != nil {
		h.replyError(ctx, cmd, err, permissionText)
		return err
	}

	binding, err := h.rolesUseCase.Publish(ctx, channel.ID, categoryID, roles[categoryID])
	if err != nil {
		h.replyError(ctx, cmd, err, permissionText)
		return err
	}
	if binding.IsAbsent() {
		h.reply(ctx, cmd, fmt.Sprintf("❌ Failed to set up %s message.", categoryID))
		return nil
	}

	h.reply(ctx, cmd, fmt.Sprintf("✅ Successfully set up %s roles and reaction message!", categoryID))
	return nil
}

func (h *CommandsHandler) repostCategory(ctx context.Context, cmd *commandContext) error {
	categoryID := argAt(cmd.Args, 0)
	if categoryID == "" {
		h.reply(ctx, cmd, fmt.Sprintf(
			"❌ Please specify a category and optionally a channel.\n"+
				"Usage: `%srepost_category [category] #channel`\n"+
				"Available categories: %s",
			h.prefix, h.quotedCategoryIDs()))
		return nil
	}
	if h.catalog.Lookup(categoryID).IsAbsent() {
		h.reply(ctx, cmd, fmt.Sprintf("❌ Category '%s' not found.\nAvailable categories: %s",
			categoryID, h.quotedCategoryIDs()))
		return nil
	}

	channel, err := h.resolveChannel(ctx, cmd, argAt(cmd.Args, 1))
	if err != nil {
		return err
	}

	h.reply(ctx, cmd, fmt.Sprintf("🔄 Reposting %s roles message in %s...", categoryID, channel.Mention()))

	binding, err := h.rolesUseCase.RepostCategory(ctx, cmd.GuildID, channel.ID, categoryID)
	if err != nil {
		h.replyError(ctx, cmd, err,
			"❌ I don't have permission to manage messages or roles. Please check my permissions and try again.")
		return err
	}
	if binding.IsAbsent() {
		h.reply(ctx, cmd, fmt.Sprintf("❌ Failed to repost %s message.", categoryID))
		return nil
	}

	h.reply(ctx, cmd, fmt.Sprintf("✅ Successfully reposted %s roles message in %s!", categoryID, channel.Mention()))
	return nil
}

func (h *CommandsHandler) scanRoles(ctx context.Context, cmd *commandContext) error {
	channel, err := h.resolveChannel(ctx, cmd, argAt(cmd.Args, 0))
	if err != nil {
		return err
	}

	h.reply(ctx, cmd, fmt.Sprintf("🔍 Scanning %s for role messages...", channel.Mention()))

	count, err := h.rolesUseCase.ScanChannel(ctx, channel.ID)
	if err != nil {
		h.replyError(ctx, cmd, err, "❌ I don't have permission to read message history or add reactions.")
		return err
	}
	if count == 0 {
		h.reply(ctx, cmd, "❌ No matching role messages found in this channel.")
		return nil
	}

	h.reply(ctx, cmd, fmt.Sprintf("✅ Successfully reconnected %d role messages!", count))
	return nil
}

// resolveChannel finds the target channel from a mention, a raw id or a
// channel name. An empty argument selects the invoking channel.
func (h *CommandsHandler) resolveChannel(
	ctx context.Context,
	cmd *commandContext,
	arg string,
) (*models.Channel, error) {
	if arg == "" {
		return &models.Channel{ID: cmd.ChannelID, GuildID: cmd.GuildID}, nil
	}

	if channelID, ok := utils.ParseChannelReference(arg); ok {
		channel, err := h.discordClient.GetChannel(ctx, channelID)
		if err == nil && channel.GuildID == cmd.GuildID {
			return channel, nil
		}
		if err != nil && !core.IsNotFoundError(err) {
			log.Warn("⚠️ Failed to resolve channel", "command_id", cmd.ID, "channel_id", channelID, "error", err)
		}
		h.reply(ctx, cmd, msgChannelNotFound)
		return nil, errChannelNotFound
	}

	channels, err := h.discordClient.GetGuildTextChannels(ctx, cmd.GuildID)
	if err != nil {
		h.reply(ctx, cmd, fmt.Sprintf(msgErrorOccurredFmt, err))
		return nil, err
	}
	name := strings.TrimPrefix(arg, "#")
	for _, channel := range channels {
		if strings.EqualFold(channel.Name, name) {
			return &channel, nil
		}
	}

	h.reply(ctx, cmd, msgChannelNotFound)
	return nil, errChannelNotFound
}

func (h *CommandsHandler) quotedCategoryIDs() string {
	ids := h.catalog.IDs()
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = "`" + id + "`"
	}
	return strings.Join(quoted, ", ")
}

// replyError reports a failed command, using permissionText when the platform refused the call
func (h *CommandsHandler) replyError(ctx context.Context, cmd *commandContext, err error, permissionText string) {
	if core.IsPermissionDenied(err) {
		h.reply(ctx, cmd, permissionText)
		return
	}
	h.reply(ctx, cmd, fmt.Sprintf(msgErrorOccurredFmt, err))
}

func (h *CommandsHandler) reply(ctx context.Context, cmd *commandContext, content string) {
	if _, err := h.discordClient.SendMessage(ctx, cmd.ChannelID, content); err != nil {
		log.Error("❌ Failed to send command reply", "command_id", cmd.ID, "channel_id", cmd.ChannelID, "error", err)
	}
}

func argAt(args []string, idx int) string {
	if idx < len(args) {
		return args[idx]
	}
	return ""
}
