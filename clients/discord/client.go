package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"rolebot/clients"
	"rolebot/models"
)

// maxMessagesPerPage is the Discord API cap for one message history request
const maxMessagesPerPage = 100

// DiscordClient implements the clients.DiscordClient interface on top of a discordgo session
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient wraps an existing discordgo session
func NewDiscordClient(session *discordgo.Session) clients.DiscordClient {
	return &DiscordClient{
		session: session,
	}
}

// GetBotUser returns the bot account, preferring the user cached by the Ready event
func (c *DiscordClient) GetBotUser() (*models.DiscordBotUser, error) {
	if c.session.State != nil && c.session.State.User != nil {
		return toModelBotUser(c.session.State.User), nil
	}

	user, err := c.session.User("@me")
	if err != nil {
		return nil, wrapError("get bot user", err)
	}
	return toModelBotUser(user), nil
}

// UpdateWatchingStatus sets the bot presence to "Watching <activity>"
func (c *DiscordClient) UpdateWatchingStatus(activity string) error {
	if err := c.session.UpdateWatchStatus(0, activity); err != nil {
		return fmt.Errorf("failed to update presence: %w", err)
	}
	return nil
}

// GetGuildRoles lists the roles of a guild
func (c *DiscordClient) GetGuildRoles(ctx context.Context, guildID string) ([]models.Role, error) {
	roles, err := c.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, wrapError("list guild roles", err)
	}

	result := make([]models.Role, 0, len(roles))
	for _, role := range roles {
		result = append(result, toModelRole(role))
	}
	return result, nil
}

// CreateRole creates a new guild role
func (c *DiscordClient) CreateRole(
	ctx context.Context,
	guildID string,
	params models.RoleParams,
) (*models.Role, error) {
	color := params.Color
	mentionable := params.Mentionable
	role, err := c.session.GuildRoleCreate(guildID, &discordgo.RoleParams{
		Name:        params.Name,
		Color:       &color,
		Mentionable: &mentionable,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, wrapError(fmt.Sprintf("create role %q", params.Name), err)
	}

	result := toModelRole(role)
	return &result, nil
}

// GetGuildTextChannels lists the text channels of a guild in position order
func (c *DiscordClient) GetGuildTextChannels(ctx context.Context, guildID string) ([]models.Channel, error) {
	channels, err := c.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, wrapError("list guild channels", err)
	}

	result := make([]models.Channel, 0, len(channels))
	for _, channel := range channels {
		if !isTextChannel(channel.Type) {
			continue
		}
		result = append(result, toModelChannel(channel))
	}
	return result, nil
}

// GetChannel fetches one channel
func (c *DiscordClient) GetChannel(ctx context.Context, channelID string) (*models.Channel, error) {
	channel, err := c.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, wrapError("get channel", err)
	}

	result := toModelChannel(channel)
	return &result, nil
}

// SendEmbed posts a message with a single embed
func (c *DiscordClient) SendEmbed(ctx context.Context, channelID string, embed models.Embed) (*models.Message, error) {
	sdkEmbed := &discordgo.MessageEmbed{
		Title:       embed.Title,
		Description: embed.Description,
		Color:       embed.Color,
	}
	if embed.Footer != "" {
		sdkEmbed.Footer = &discordgo.MessageEmbedFooter{Text: embed.Footer}
	}

	message, err := c.session.ChannelMessageSendEmbed(channelID, sdkEmbed, discordgo.WithContext(ctx))
	if err != nil {
		return nil, wrapError("send embed", err)
	}

	result := toModelMessage(message)
	return &result, nil
}

// SendMessage posts a plain text message
func (c *DiscordClient) SendMessage(ctx context.Context, channelID, content string) (*models.Message, error) {
	message, err := c.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return nil, wrapError("send message", err)
	}

	result := toModelMessage(message)
	return &result, nil
}

// GetMessage fetches one message
func (c *DiscordClient) GetMessage(ctx context.Context, channelID, messageID string) (*models.Message, error) {
	message, err := c.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, wrapError("get message", err)
	}

	result := toModelMessage(message)
	return &result, nil
}

// GetRecentMessages returns up to limit messages, newest first
func (c *DiscordClient) GetRecentMessages(ctx context.Context, channelID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		return nil, nil
	}
	result := make([]models.Message, 0, limit)
	beforeID := ""

	for len(result) < limit {
		pageSize := min(limit-len(result), maxMessagesPerPage)
		messages, err := c.session.ChannelMessages(channelID, pageSize, beforeID, "", "", discordgo.WithContext(ctx))
		if err != nil {
			return nil, wrapError("read message history", err)
		}

		for _, message := range messages {
			result = append(result, toModelMessage(message))
		}
		if len(messages) < pageSize {
			break
		}
		beforeID = messages[len(messages)-1].ID
	}

	return result, nil
}

// DeleteMessage deletes a message
func (c *DiscordClient) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	err := c.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
	return wrapError("delete message", err)
}

// AddReaction reacts to a message as the bot
func (c *DiscordClient) AddReaction(ctx context.Context, channelID, messageID, symbol string) error {
	err := c.session.MessageReactionAdd(channelID, messageID, apiEmoji(symbol), discordgo.WithContext(ctx))
	return wrapError(fmt.Sprintf("add reaction %s", symbol), err)
}

// GetMember resolves a guild member, using the state cache before the REST API
func (c *DiscordClient) GetMember(ctx context.Context, guildID, userID string) (*models.Member, error) {
	if c.session.State != nil {
		if member, err := c.session.State.Member(guildID, userID); err == nil {
			return toModelMember(guildID, member), nil
		}
	}

	member, err := c.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, wrapError("get member", err)
	}
	return toModelMember(guildID, member), nil
}

// AddMemberRole grants a role to a member
func (c *DiscordClient) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	err := c.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
	return wrapError("add member role", err)
}

// RemoveMemberRole revokes a role from a member
func (c *DiscordClient) RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	err := c.session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx))
	return wrapError("remove member role", err)
}

// IsAdministrator reports whether the user holds the Administrator permission in the channel
func (c *DiscordClient) IsAdministrator(ctx context.Context, channelID, userID string) (bool, error) {
	permissions, err := c.session.UserChannelPermissions(userID, channelID, discordgo.WithContext(ctx))
	if err != nil {
		return false, wrapError("resolve permissions", err)
	}
	return permissions&discordgo.PermissionAdministrator != 0, nil
}

// isTextChannel checks if the channel accepts regular messages
func isTextChannel(channelType discordgo.ChannelType) bool {
	return channelType == discordgo.ChannelTypeGuildText ||
		channelType == discordgo.ChannelTypeGuildNews
}

// apiEmoji converts a rendered emoji (<:name:id>, <a:name:id> or unicode) to the
// name:id form the reactions endpoint expects
func apiEmoji(symbol string) string {
	if !strings.HasPrefix(symbol, "<") || !strings.HasSuffix(symbol, ">") {
		return symbol
	}
	trimmed := strings.TrimSuffix(strings.TrimPrefix(symbol, "<"), ">")
	trimmed = strings.TrimPrefix(trimmed, "a:")
	return strings.TrimPrefix(trimmed, ":")
}

func toModelBotUser(user *discordgo.User) *models.DiscordBotUser {
	return &models.DiscordBotUser{
		ID:       user.ID,
		Username: user.Username,
	}
}

func toModelRole(role *discordgo.Role) models.Role {
	return models.Role{
		ID:          role.ID,
		Name:        role.Name,
		Color:       role.Color,
		Mentionable: role.Mentionable,
	}
}

func toModelChannel(channel *discordgo.Channel) models.Channel {
	return models.Channel{
		ID:      channel.ID,
		Name:    channel.Name,
		GuildID: channel.GuildID,
		Type:    int(channel.Type),
	}
}

func toModelMember(guildID string, member *discordgo.Member) *models.Member {
	userID := ""
	if member.User != nil {
		userID = member.User.ID
	}
	return &models.Member{
		GuildID: guildID,
		UserID:  userID,
		RoleIDs: member.Roles,
	}
}

func toModelMessage(message *discordgo.Message) models.Message {
	result := models.Message{
		ID:        message.ID,
		ChannelID: message.ChannelID,
		Content:   message.Content,
	}
	if message.Author != nil {
		result.AuthorID = message.Author.ID
	}

	for _, embed := range message.Embeds {
		if embed == nil {
			continue
		}
		modelEmbed := models.Embed{
			Title:       embed.Title,
			Description: embed.Description,
			Color:       embed.Color,
		}
		if embed.Footer != nil {
			modelEmbed.Footer = embed.Footer.Text
		}
		result.Embeds = append(result.Embeds, modelEmbed)
	}

	for _, reaction := range message.Reactions {
		if reaction == nil || reaction.Emoji == nil {
			continue
		}
		result.Reactions = append(result.Reactions, reaction.Emoji.MessageFormat())
	}

	return result
}
