package roles

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"rolebot/models"
)

// MockRolesUseCase is a mock implementation of the RolesUseCase
type MockRolesUseCase struct {
	mock.Mock
}

func (m *MockRolesUseCase) EnsureRoles(ctx context.Context, guildID string) (map[string][]models.Role, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]models.Role), args.Error(1)
}

func (m *MockRolesUseCase) Publish(
	ctx context.Context,
	channelID, categoryID string,
	roles []models.Role,
) (mo.Option[*models.RoleBinding], error) {
	args := m.Called(ctx, channelID, categoryID, roles)
	return args.Get(0).(mo.Option[*models.RoleBinding]), args.Error(1)
}

func (m *MockRolesUseCase) RepostCategory(
	ctx context.Context,
	guildID, channelID, categoryID string,
) (mo.Option[*models.RoleBinding], error) {
	args := m.Called(ctx, guildID, channelID, categoryID)
	return args.Get(0).(mo.Option[*models.RoleBinding]), args.Error(1)
}

func (m *MockRolesUseCase) OnReaction(ctx context.Context, event models.ReactionEvent) models.ReactionOutcome {
	args := m.Called(ctx, event)
	return args.Get(0).(models.ReactionOutcome)
}

func (m *MockRolesUseCase) ScanChannel(ctx context.Context, channelID string) (int, error) {
	args := m.Called(ctx, channelID)
	return args.Int(0), args.Error(1)
}

func (m *MockRolesUseCase) ScanAll(ctx context.Context, guildIDs []string) map[string]int {
	args := m.Called(ctx, guildIDs)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]int)
}

func (m *MockRolesUseCase) Bindings() []models.RoleBinding {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.RoleBinding)
}
