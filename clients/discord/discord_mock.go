package discord

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rolebot/models"
)

// MockDiscordClient implements the clients.DiscordClient interface for testing
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) GetBotUser() (*models.DiscordBotUser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscordBotUser), args.Error(1)
}

func (m *MockDiscordClient) UpdateWatchingStatus(activity string) error {
	args := m.Called(activity)
	return args.Error(0)
}

func (m *MockDiscordClient) GetGuildRoles(ctx context.Context, guildID string) ([]models.Role, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Role), args.Error(1)
}

func (m *MockDiscordClient) CreateRole(
	ctx context.Context,
	guildID string,
	params models.RoleParams,
) (*models.Role, error) {
	args := m.Called(ctx, guildID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockDiscordClient) GetGuildTextChannels(ctx context.Context, guildID string) ([]models.Channel, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Channel), args.Error(1)
}

func (m *MockDiscordClient) GetChannel(ctx context.Context, channelID string) (*models.Channel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Channel), args.Error(1)
}

func (m *MockDiscordClient) SendEmbed(
	ctx context.Context,
	channelID string,
	embed models.Embed,
) (*models.Message, error) {
	args := m.Called(ctx, channelID, embed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockDiscordClient) SendMessage(ctx context.Context, channelID, content string) (*models.Message, error) {
	args := m.Called(ctx, channelID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockDiscordClient) GetMessage(ctx context.Context, channelID, messageID string) (*models.Message, error) {
	args := m.Called(ctx, channelID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockDiscordClient) GetRecentMessages(
	ctx context.Context,
	channelID string,
	limit int,
) ([]models.Message, error) {
	args := m.Called(ctx, channelID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockDiscordClient) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	args := m.Called(ctx, channelID, messageID)
	return args.Error(0)
}

func (m *MockDiscordClient) AddReaction(ctx context.Context, channelID, messageID, symbol string) error {
	args := m.Called(ctx, channelID, messageID, symbol)
	return args.Error(0)
}

func (m *MockDiscordClient) GetMember(ctx context.Context, guildID, userID string) (*models.Member, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockDiscordClient) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	args := m.Called(ctx, guildID, userID, roleID)
	return args.Error(0)
}

func (m *MockDiscordClient) RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	args := m.Called(ctx, guildID, userID, roleID)
	return args.Error(0)
}

func (m *MockDiscordClient) IsAdministrator(ctx context.Context, channelID, userID string) (bool, error) {
	args := m.Called(ctx, channelID, userID)
	return args.Bool(0), args.Error(1)
}
