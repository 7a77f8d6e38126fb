package roles

import (
	"context"
	"fmt"

	"github.com/samber/mo"

	"rolebot/core"
	"rolebot/core/log"
	"rolebot/models"
)

// RepostCategory replaces the selection message of a category in a channel.
// The old message is deleted and unbound so its reactions stop dispatching.
func (u *RolesUseCase) RepostCategory(
	ctx context.Context,
	guildID, channelID, categoryID string,
) (mo.Option[*models.RoleBinding], error) {
	if u.catalog.Lookup(categoryID).IsAbsent() {
		return mo.None[*models.RoleBinding](), fmt.Errorf("%w: %s", core.ErrUnknownCategory, categoryID)
	}

	for _, binding := range u.bindings.ForCategory(categoryID) {
		if binding.ChannelID != channelID {
			continue
		}
		if _, err := u.discordClient.GetMessage(ctx, channelID, binding.MessageID); err != nil {
			if core.IsNotFoundError(err) {
				u.bindings.Delete(binding.MessageID)
			}
			log.Warn("⚠️ Old role message not available", "message_id", binding.MessageID, "error", err)
			continue
		}
		if err := u.discordClient.DeleteMessage(ctx, channelID, binding.MessageID); err != nil {
			log.Warn("⚠️ Failed to delete old role message", "message_id", binding.MessageID, "error", err)
			continue
		}
		u.bindings.Delete(binding.MessageID)
		log.Info("📋 Removed old role message", "category", categoryID, "message_id", binding.MessageID)
		break
	}

	roles, err := u.EnsureRoles(ctx, guildID)
	if err != nil {
		return mo.None[*models.RoleBinding](), err
	}
	return u.Publish(ctx, channelID, categoryID, roles[categoryID])
}
