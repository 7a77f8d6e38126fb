package roles

import (
	"context"

	"rolebot/core"
	"rolebot/core/log"
	"rolebot/models"
)

// OnReaction applies at most one role change for a reaction event. Failures
// are reported through the outcome and never returned as errors.
func (u *RolesUseCase) OnReaction(ctx context.Context, event models.ReactionEvent) models.ReactionOutcome {
	binding, ok := u.bindings.Get(event.MessageID).Get()
	if !ok {
		return models.ReactionOutcome{Status: models.ReactionStatusUnbound}
	}

	roleName, ok := binding.RoleFor(event.Symbol).Get()
	if !ok {
		return models.ReactionOutcome{Status: models.ReactionStatusForeignSymbol}
	}

	guildRoles, err := u.discordClient.GetGuildRoles(ctx, event.GuildID)
	if err != nil {
		if core.IsNotFoundError(err) {
			log.Warn("⚠️ Guild not available for reaction", "guild_id", event.GuildID, "error", err)
			return models.ReactionOutcome{Status: models.ReactionStatusGuildMissing, RoleName: roleName, Err: err}
		}
		log.Error("❌ Failed to list guild roles for reaction", "guild_id", event.GuildID, "error", err)
		return models.ReactionOutcome{Status: models.ReactionStatusFailed, RoleName: roleName, Err: err}
	}
	role, ok := findRoleByName(guildRoles, roleName)
	if !ok {
		log.Warn("⚠️ Bound role no longer exists", "guild_id", event.GuildID, "role", roleName)
		return models.ReactionOutcome{Status: models.ReactionStatusRoleMissing, RoleName: roleName}
	}

	outcome := models.ReactionOutcome{RoleName: role.Name, RoleID: role.ID}

	// An unknown bot identity must not let the bot grant roles to itself
	isBot, err := u.isBotUser(event.UserID)
	if err != nil {
		log.Error("❌ Failed to resolve bot user for reaction", "user_id", event.UserID, "error", err)
		outcome.Status = models.ReactionStatusFailed
		outcome.Err = err
		return outcome
	}
	if isBot {
		outcome.Status = models.ReactionStatusSelfReaction
		return outcome
	}

	member, err := u.discordClient.GetMember(ctx, event.GuildID, event.UserID)
	if err != nil {
		log.Warn("⚠️ Member not available for reaction",
			"guild_id", event.GuildID, "user_id", event.UserID, "error", err)
		outcome.Status = models.ReactionStatusMemberMissing
		outcome.Err = err
		return outcome
	}

	if event.Added {
		err = u.discordClient.AddMemberRole(ctx, member.GuildID, member.UserID, role.ID)
		outcome.Status = models.ReactionStatusGranted
	} else {
		err = u.discordClient.RemoveMemberRole(ctx, member.GuildID, member.UserID, role.ID)
		outcome.Status = models.ReactionStatusRevoked
	}
	if err != nil {
		log.Error("❌ Failed to update member role",
			"guild_id", event.GuildID, "user_id", event.UserID, "role", role.Name, "added", event.Added, "error", err)
		outcome.Status = models.ReactionStatusFailed
		outcome.Err = err
		return outcome
	}

	log.Info("✅ Updated member role",
		"guild_id", event.GuildID, "user_id", event.UserID, "role", role.Name, "status", outcome.Status)
	return outcome
}

func (u *RolesUseCase) isBotUser(userID string) (bool, error) {
	botUser, err := u.discordClient.GetBotUser()
	if err != nil {
		return false, err
	}
	return botUser.ID == userID, nil
}
