package bindings

import (
	"sort"

	"github.com/samber/mo"

	"rolebot/models"
	"rolebot/utils"
)

// Table maps message ids to the role binding that makes the message a
// reaction-role dispatcher. It is not safe for concurrent use: the owner
// serializes all access through the event queue.
type Table struct {
	entries map[string]*models.RoleBinding
}

// NewTable creates an empty binding table
func NewTable() *Table {
	return &Table{
		entries: make(map[string]*models.RoleBinding),
	}
}

// Put inserts or overwrites the binding for binding.MessageID
func (t *Table) Put(binding *models.RoleBinding) {
	utils.AssertInvariant(binding != nil && binding.MessageID != "", "binding must have a message id")
	t.entries[binding.MessageID] = binding
}

// Get returns the binding for a message
func (t *Table) Get(messageID string) mo.Option[*models.RoleBinding] {
	if binding, ok := t.entries[messageID]; ok {
		return mo.Some(binding)
	}
	return mo.None[*models.RoleBinding]()
}

// Delete removes the binding for a message and reports whether one existed
func (t *Table) Delete(messageID string) bool {
	if _, ok := t.entries[messageID]; !ok {
		return false
	}
	delete(t.entries, messageID)
	return true
}

// ForCategory returns the bindings of a category ordered by message id
func (t *Table) ForCategory(categoryID string) []*models.RoleBinding {
	var result []*models.RoleBinding
	for _, binding := range t.entries {
		if binding.CategoryID == categoryID {
			result = append(result, binding)
		}
	}
	sortByMessageID(result)
	return result
}

// All returns every binding ordered by message id
func (t *Table) All() []*models.RoleBinding {
	result := make([]*models.RoleBinding, 0, len(t.entries))
	for _, binding := range t.entries {
		result = append(result, binding)
	}
	sortByMessageID(result)
	return result
}

// Len returns the number of live bindings
func (t *Table) Len() int {
	return len(t.entries)
}

// Snowflakes grow over time, so shorter ids sort first.
func sortByMessageID(bindings []*models.RoleBinding) {
	sort.Slice(bindings, func(i, j int) bool {
		a, b := bindings[i].MessageID, bindings[j].MessageID
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
}
