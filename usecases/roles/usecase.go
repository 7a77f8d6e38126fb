package roles

import (
	"rolebot/catalog"
	"rolebot/clients"
	"rolebot/models"
	"rolebot/services/bindings"
	"rolebot/utils"
)

const (
	// DefaultHistoryLimit is how many recent messages a channel scan reads
	DefaultHistoryLimit = 100

	// RoleMessageFooter is shown under every selection message
	RoleMessageFooter = "React to get your roles!"
)

// DefaultChannelKeywords select the channels a startup sweep looks at first
var DefaultChannelKeywords = []string{"role", "select", "assign", "reaction", "class", "profession"}

// Options tunes the reconciliation engine
type Options struct {
	HistoryLimit    int
	ChannelKeywords []string
	RolePacing      utils.Pacing
	ReactionPacing  utils.Pacing
}

// RolesUseCase creates roles, publishes selection messages, reconciles
// reactions into role changes and rebuilds message bindings after a restart.
// It owns the binding table; callers must serialize calls.
type RolesUseCase struct {
	discordClient clients.DiscordClient
	catalog       *catalog.Catalog
	bindings      *bindings.Table
	options       Options
}

// NewRolesUseCase creates a new instance of RolesUseCase
func NewRolesUseCase(
	discordClient clients.DiscordClient,
	roleCatalog *catalog.Catalog,
	table *bindings.Table,
	options Options,
) *RolesUseCase {
	if options.HistoryLimit <= 0 {
		options.HistoryLimit = DefaultHistoryLimit
	}
	if len(options.ChannelKeywords) == 0 {
		options.ChannelKeywords = DefaultChannelKeywords
	}

	return &RolesUseCase{
		discordClient: discordClient,
		catalog:       roleCatalog,
		bindings:      table,
		options:       options,
	}
}

// Bindings returns a copy of the live bindings ordered by message id
func (u *RolesUseCase) Bindings() []models.RoleBinding {
	all := u.bindings.All()
	result := make([]models.RoleBinding, 0, len(all))
	for _, binding := range all {
		result = append(result, *models.NewRoleBinding(binding.MessageID, binding.ChannelID, binding.CategoryID, binding.Roles))
	}
	return result
}
