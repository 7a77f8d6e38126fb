package models

// DiscordMessageEvent is a guild text message that may carry an admin command
type DiscordMessageEvent struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
	Content   string
	// AuthorIsBot is true for messages from any bot account
	AuthorIsBot bool
}

// ReactionEvent is a reaction added to or removed from a message
type ReactionEvent struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
	Symbol    string
	Added     bool
}

// DiscordGuildJoinEvent is emitted when the bot is added to a guild
type DiscordGuildJoinEvent struct {
	GuildID         string
	GuildName       string
	SystemChannelID string
}
