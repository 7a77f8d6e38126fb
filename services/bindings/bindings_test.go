package bindings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rolebot/models"
)

func testBinding(messageID, categoryID string) *models.RoleBinding {
	return models.NewRoleBinding(messageID, "chan-1", categoryID, []models.RoleMapping{
		{Symbol: "A", RoleName: "Casual"},
	})
}

func TestTable_PutGetDelete(t *testing.T) {
	table := NewTable()
	assert.Equal(t, 0, table.Len())
	assert.False(t, table.Get("100").IsPresent())

	table.Put(testBinding("100", "player_types"))

	binding, ok := table.Get("100").Get()
	assert.True(t, ok)
	assert.Equal(t, "player_types", binding.CategoryID)
	assert.Equal(t, 1, table.Len())

	assert.True(t, table.Delete("100"))
	assert.False(t, table.Delete("100"))
	assert.False(t, table.Get("100").IsPresent())
	assert.Equal(t, 0, table.Len())
}

func TestTable_PutOverwrites(t *testing.T) {
	table := NewTable()
	table.Put(testBinding("100", "player_types"))
	table.Put(testBinding("100", "classes"))

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "classes", table.Get("100").MustGet().CategoryID)
}

func TestTable_ForCategoryAndAll(t *testing.T) {
	table := NewTable()
	table.Put(testBinding("1000", "player_types"))
	table.Put(testBinding("999", "player_types"))
	table.Put(testBinding("1001", "classes"))

	forCategory := table.ForCategory("player_types")
	assert.Len(t, forCategory, 2)
	assert.Equal(t, "999", forCategory[0].MessageID)
	assert.Equal(t, "1000", forCategory[1].MessageID)

	assert.Empty(t, table.ForCategory("timezones"))

	all := table.All()
	assert.Len(t, all, 3)
	assert.Equal(t, []string{"999", "1000", "1001"}, []string{all[0].MessageID, all[1].MessageID, all[2].MessageID})
}

func TestTable_PutRequiresMessageID(t *testing.T) {
	table := NewTable()

	assert.Panics(t, func() {
		table.Put(testBinding("", "player_types"))
	})
	assert.Equal(t, 0, table.Len())
}
