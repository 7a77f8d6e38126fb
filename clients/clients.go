package clients

import (
	"context"

	"rolebot/models"
)

// DiscordClient defines the Discord operations the bot depends on
type DiscordClient interface {
	// Bot operations
	GetBotUser() (*models.DiscordBotUser, error)
	UpdateWatchingStatus(activity string) error

	// Role operations
	GetGuildRoles(ctx context.Context, guildID string) ([]models.Role, error)
	CreateRole(ctx context.Context, guildID string, params models.RoleParams) (*models.Role, error)

	// Channel operations
	GetGuildTextChannels(ctx context.Context, guildID string) ([]models.Channel, error)
	GetChannel(ctx context.Context, channelID string) (*models.Channel, error)

	// Message operations
	SendEmbed(ctx context.Context, channelID string, embed models.Embed) (*models.Message, error)
	SendMessage(ctx context.Context, channelID, content string) (*models.Message, error)
	GetMessage(ctx context.Context, channelID, messageID string) (*models.Message, error)
	GetRecentMessages(ctx context.Context, channelID string, limit int) ([]models.Message, error)
	DeleteMessage(ctx context.Context, channelID, messageID string) error

	// Reaction operations
	AddReaction(ctx context.Context, channelID, messageID, symbol string) error

	// Member operations
	GetMember(ctx context.Context, guildID, userID string) (*models.Member, error)
	AddMemberRole(ctx context.Context, guildID, userID, roleID string) error
	RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error
	IsAdministrator(ctx context.Context, channelID, userID string) (bool, error)
}
