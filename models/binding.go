package models

import (
	"strings"

	"github.com/samber/mo"
)

// RoleMapping pairs a trigger symbol with the name of the role it grants
type RoleMapping struct {
	Symbol   string `json:"symbol" yaml:"symbol"`
	RoleName string `json:"role" yaml:"role"`
	// RoleID is filled when the role handle was known at publish time
	RoleID string `json:"role_id,omitempty" yaml:"-"`
}

// RoleBinding links a published message to its category and a snapshot of
// the category's symbol to role-name mapping.
type RoleBinding struct {
	MessageID  string        `json:"message_id"`
	ChannelID  string        `json:"channel_id"`
	CategoryID string        `json:"category_id"`
	Roles      []RoleMapping `json:"roles"`
}

// NewRoleBinding copies mappings so later catalog changes do not leak into the binding
func NewRoleBinding(messageID, channelID, categoryID string, mappings []RoleMapping) *RoleBinding {
	roles := make([]RoleMapping, len(mappings))
	copy(roles, mappings)
	return &RoleBinding{
		MessageID:  messageID,
		ChannelID:  channelID,
		CategoryID: categoryID,
		Roles:      roles,
	}
}

// RoleFor returns the role name bound to symbol. Exact matches win; otherwise
// symbols are compared without emoji variation selectors.
func (b *RoleBinding) RoleFor(symbol string) mo.Option[string] {
	for _, mapping := range b.Roles {
		if mapping.Symbol == symbol {
			return mo.Some(mapping.RoleName)
		}
	}
	normalized := NormalizeSymbol(symbol)
	for _, mapping := range b.Roles {
		if NormalizeSymbol(mapping.Symbol) == normalized {
			return mo.Some(mapping.RoleName)
		}
	}
	return mo.None[string]()
}

// Symbols returns the bound trigger symbols in display order
func (b *RoleBinding) Symbols() []string {
	symbols := make([]string, 0, len(b.Roles))
	for _, mapping := range b.Roles {
		symbols = append(symbols, mapping.Symbol)
	}
	return symbols
}

// NormalizeSymbol strips U+FE0F variation selectors, which the gateway
// does not always echo back for unicode emoji.
func NormalizeSymbol(symbol string) string {
	return strings.ReplaceAll(symbol, "\uFE0F", "")
}
