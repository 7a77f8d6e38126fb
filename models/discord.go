package models

// DiscordBotUser represents the bot's own account
type DiscordBotUser struct {
	ID       string
	Username string
}

// Role is a guild role as seen by the reconciliation engine
type Role struct {
	ID          string
	Name        string
	Color       int
	Mentionable bool
}

// RoleParams holds the attributes of a role to create
type RoleParams struct {
	Name        string
	Color       int
	Mentionable bool
}

// Channel represents Discord channel information
type Channel struct {
	ID      string
	Name    string
	GuildID string
	Type    int
}

// Mention renders the channel as a clickable mention
func (c Channel) Mention() string {
	return "<#" + c.ID + ">"
}

// Member is a guild member reference
type Member struct {
	GuildID string
	UserID  string
	RoleIDs []string
}

// Embed is the rendered body of a message
type Embed struct {
	Title       string
	Description string
	Footer      string
	Color       int
}

// Message represents a Discord message with the parts the engine reads
type Message struct {
	ID        string
	ChannelID string
	AuthorID  string
	Content   string
	Embeds    []Embed
	// Reactions holds the symbols currently attached to the message, in display order
	Reactions []string
}

// HasEmbeds reports whether the message carries a rendered body
func (m Message) HasEmbeds() bool {
	return len(m.Embeds) > 0
}
