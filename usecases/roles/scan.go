package roles

import (
	"context"
	"fmt"
	"strings"

	"rolebot/core/log"
	"rolebot/models"
)

// ScanChannel rebinds the bot's selection messages among the most recent
// messages of a channel and attaches any reactions they are missing.
// It returns the number of messages reconnected.
func (u *RolesUseCase) ScanChannel(ctx context.Context, channelID string) (int, error) {
	botUser, err := u.discordClient.GetBotUser()
	if err != nil {
		return 0, fmt.Errorf("failed to get bot user: %w", err)
	}

	messages, err := u.discordClient.GetRecentMessages(ctx, channelID, u.options.HistoryLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to read history of channel %s: %w", channelID, err)
	}

	reconnected := 0
	for _, message := range messages {
		if message.AuthorID != botUser.ID || !message.HasEmbeds() {
			continue
		}

		category, ok := matchCategory(u.catalog, message).Get()
		if !ok {
			continue
		}

		binding := models.NewRoleBinding(message.ID, channelID, category.ID, category.Roles)
		u.bindings.Put(binding)
		reconnected++

		missing := missingSymbols(binding.Symbols(), message.Reactions)
		if len(missing) > 0 {
			attached := u.attachReactions(ctx, channelID, message.ID, missing)
			log.Info("📋 Restored missing reactions",
				"message_id", message.ID, "missing", len(missing), "attached", attached)
		}

		log.Info("✅ Reconnected role message",
			"channel_id", channelID, "message_id", message.ID, "category", category.ID)
	}

	return reconnected, nil
}

// ScanAll sweeps every guild and returns the reconnected totals of the guilds
// where at least one message was found. Channel failures are logged and skipped.
func (u *RolesUseCase) ScanAll(ctx context.Context, guildIDs []string) map[string]int {
	log.Info("📋 Starting to scan guilds for role messages", "guilds", len(guildIDs))

	results := make(map[string]int)
	for _, guildID := range guildIDs {
		if ctx.Err() != nil {
			break
		}

		channels, err := u.discordClient.GetGuildTextChannels(ctx, guildID)
		if err != nil {
			log.Error("❌ Failed to list channels", "guild_id", guildID, "error", err)
			continue
		}

		scanned := make(map[string]bool)
		total := 0
		for _, channel := range u.candidateChannels(channels) {
			if scanned[channel.ID] {
				continue
			}
			scanned[channel.ID] = true

			count, err := u.ScanChannel(ctx, channel.ID)
			if err != nil {
				log.Warn("⚠️ Failed to scan channel",
					"guild_id", guildID, "channel", channel.Name, "channel_id", channel.ID, "error", err)
				continue
			}
			total += count
		}

		if total > 0 {
			results[guildID] = total
		}
	}

	log.Info("📋 Completed successfully - scanned guilds", "guilds_with_messages", len(results))
	return results
}

// candidateChannels prefers channels whose name mentions a keyword and falls
// back to every text channel when none does.
func (u *RolesUseCase) candidateChannels(channels []models.Channel) []models.Channel {
	var matched []models.Channel
	for _, channel := range channels {
		name := strings.ToLower(channel.Name)
		for _, keyword := range u.options.ChannelKeywords {
			if strings.Contains(name, strings.ToLower(keyword)) {
				matched = append(matched, channel)
				break
			}
		}
	}
	if len(matched) == 0 {
		return channels
	}
	return matched
}

func missingSymbols(required, present []string) []string {
	have := make(map[string]bool, len(present))
	for _, symbol := range present {
		have[models.NormalizeSymbol(symbol)] = true
	}

	var missing []string
	for _, symbol := range required {
		if !have[models.NormalizeSymbol(symbol)] {
			missing = append(missing, symbol)
		}
	}
	return missing
}
