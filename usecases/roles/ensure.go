package roles

import (
	"context"
	"fmt"

	"rolebot/core/log"
	"rolebot/models"
	"rolebot/utils"
)

// EnsureRoles makes sure every role named in the catalog exists in the guild.
// Existing roles are matched by exact name and left untouched. The result maps
// each category id to its roles in catalog order.
func (u *RolesUseCase) EnsureRoles(ctx context.Context, guildID string) (map[string][]models.Role, error) {
	log.Info("📋 Starting to ensure roles", "guild_id", guildID)

	existing, err := u.discordClient.GetGuildRoles(ctx, guildID)
	if err != nil {
		return nil, err
	}

	pacer := utils.NewPacer(u.options.RolePacing)
	result := make(map[string][]models.Role)
	created := 0

	for _, category := range u.catalog.Categories() {
		categoryRoles := make([]models.Role, 0, len(category.Roles))

		for _, mapping := range category.Roles {
			if role, ok := findRoleByName(existing, mapping.RoleName); ok {
				categoryRoles = append(categoryRoles, role)
				continue
			}

			if err := pacer.Wait(ctx); err != nil {
				return nil, err
			}
			role, err := u.discordClient.CreateRole(ctx, guildID, models.RoleParams{
				Name:        mapping.RoleName,
				Color:       u.catalog.RoleColor(category, mapping.RoleName),
				Mentionable: true,
			})
			if err != nil {
				log.Error("❌ Failed to create role",
					"guild_id", guildID, "role", mapping.RoleName, "created", created, "error", err)
				return nil, fmt.Errorf("failed to ensure role %q: %w", mapping.RoleName, err)
			}

			log.Info("✅ Created role", "guild_id", guildID, "role", role.Name, "role_id", role.ID)
			existing = append(existing, *role)
			categoryRoles = append(categoryRoles, *role)
			created++
		}

		result[category.ID] = categoryRoles
	}

	log.Info("📋 Completed successfully - ensured roles",
		"guild_id", guildID, "categories", len(result), "created", created)
	return result, nil
}

// findRoleByName returns the first role with exactly this name. Role names
// are the identity key, so duplicate names resolve to the earliest role.
func findRoleByName(roles []models.Role, name string) (models.Role, bool) {
	for _, role := range roles {
		if role.Name == name {
			return role, true
		}
	}
	return models.Role{}, false
}
