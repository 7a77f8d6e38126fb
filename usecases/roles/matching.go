package roles

import (
	"github.com/samber/mo"

	"rolebot/catalog"
	"rolebot/models"
)

// matchCategory identifies which category a previously published message
// belongs to. Messages are recognized by the exact title of their first embed.
func matchCategory(roleCatalog *catalog.Catalog, message models.Message) mo.Option[catalog.Category] {
	if !message.HasEmbeds() {
		return mo.None[catalog.Category]()
	}
	return roleCatalog.LookupByTitle(message.Embeds[0].Title)
}
