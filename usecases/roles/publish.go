package roles

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/mo"

	"rolebot/catalog"
	"rolebot/core/log"
	"rolebot/models"
	"rolebot/utils"
)

// Publish posts the selection message of a category, attaches one reaction
// per symbol and binds the message. Returns None for an unknown category.
func (u *RolesUseCase) Publish(
	ctx context.Context,
	channelID, categoryID string,
	roles []models.Role,
) (mo.Option[*models.RoleBinding], error) {
	category, ok := u.catalog.Lookup(categoryID).Get()
	if !ok {
		log.Warn("⚠️ Cannot publish unknown category", "category", categoryID)
		return mo.None[*models.RoleBinding](), nil
	}

	log.Info("📋 Starting to publish role message", "category", categoryID, "channel_id", channelID)

	message, err := u.discordClient.SendEmbed(ctx, channelID, buildRoleEmbed(category))
	if err != nil {
		return mo.None[*models.RoleBinding](), fmt.Errorf("failed to publish %s: %w", categoryID, err)
	}

	u.attachReactions(ctx, channelID, message.ID, symbolsOf(category.Roles))

	binding := models.NewRoleBinding(message.ID, channelID, category.ID, withRoleIDs(category.Roles, roles))
	u.bindings.Put(binding)

	log.Info("📋 Completed successfully - published role message",
		"category", categoryID, "channel_id", channelID, "message_id", message.ID)
	return mo.Some(binding), nil
}

// attachReactions adds the symbols in order. Failures are logged and skipped.
func (u *RolesUseCase) attachReactions(ctx context.Context, channelID, messageID string, symbols []string) int {
	pacer := utils.NewPacer(u.options.ReactionPacing)
	attached := 0

	for _, symbol := range symbols {
		if err := pacer.Wait(ctx); err != nil {
			return attached
		}
		if err := u.discordClient.AddReaction(ctx, channelID, messageID, symbol); err != nil {
			log.Warn("⚠️ Failed to add reaction", "message_id", messageID, "symbol", symbol, "error", err)
			continue
		}
		attached++
	}
	return attached
}

func buildRoleEmbed(category catalog.Category) models.Embed {
	lines := make([]string, 0, len(category.Roles))
	for _, mapping := range category.Roles {
		lines = append(lines, fmt.Sprintf("%s - %s", mapping.Symbol, mapping.RoleName))
	}

	return models.Embed{
		Title:       category.Title,
		Description: strings.Join(lines, "\n"),
		Footer:      RoleMessageFooter,
		Color:       category.Color,
	}
}

func symbolsOf(mappings []models.RoleMapping) []string {
	symbols := make([]string, 0, len(mappings))
	for _, mapping := range mappings {
		symbols = append(symbols, mapping.Symbol)
	}
	return symbols
}

// withRoleIDs copies the mappings and records the id of each known role handle
func withRoleIDs(mappings []models.RoleMapping, roles []models.Role) []models.RoleMapping {
	result := make([]models.RoleMapping, len(mappings))
	for i, mapping := range mappings {
		if role, ok := findRoleByName(roles, mapping.RoleName); ok {
			mapping.RoleID = role.ID
		}
		result[i] = mapping
	}
	return result
}
