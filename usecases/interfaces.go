package usecases

import (
	"context"

	"github.com/samber/mo"

	"rolebot/models"
)

// RolesUseCaseInterface defines the reaction-role reconciliation operations
type RolesUseCaseInterface interface {
	EnsureRoles(ctx context.Context, guildID string) (map[string][]models.Role, error)
	Publish(
		ctx context.Context,
		channelID, categoryID string,
		roles []models.Role,
	) (mo.Option[*models.RoleBinding], error)
	RepostCategory(
		ctx context.Context,
		guildID, channelID, categoryID string,
	) (mo.Option[*models.RoleBinding], error)
	OnReaction(ctx context.Context, event models.ReactionEvent) models.ReactionOutcome
	ScanChannel(ctx context.Context, channelID string) (int, error)
	ScanAll(ctx context.Context, guildIDs []string) map[string]int
	Bindings() []models.RoleBinding
}
