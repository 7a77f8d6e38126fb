package utils

import (
	"regexp"
	"strings"
)

var (
	channelMentionRegex = regexp.MustCompile(`^<#([0-9]+)>$`)
	snowflakeRegex      = regexp.MustCompile(`^[0-9]{15,21}$`)
)

// CommandDetectionResult represents the result of command detection
type CommandDetectionResult struct {
	IsCommand bool
	Name      string
	Args      []string
}

// DetectCommand checks if a message starts with the command prefix or a
// mention of the bot, and splits the rest into a command name and arguments.
func DetectCommand(messageText, prefix, botUserID string) CommandDetectionResult {
	text := strings.TrimSpace(messageText)

	rest, ok := stripBotMention(text, botUserID)
	if !ok {
		if prefix == "" || !strings.HasPrefix(text, prefix) {
			return CommandDetectionResult{}
		}
		rest = strings.TrimPrefix(text, prefix)
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return CommandDetectionResult{}
	}

	return CommandDetectionResult{
		IsCommand: true,
		Name:      strings.ToLower(fields[0]),
		Args:      fields[1:],
	}
}

// stripBotMention removes a leading <@id> or <@!id> mention of the bot
func stripBotMention(text, botUserID string) (string, bool) {
	if botUserID == "" {
		return "", false
	}
	for _, mention := range []string{"<@" + botUserID + ">", "<@!" + botUserID + ">"} {
		if strings.HasPrefix(text, mention) {
			return strings.TrimSpace(strings.TrimPrefix(text, mention)), true
		}
	}
	return "", false
}

// ParseChannelReference extracts a channel id from a <#id> mention or a raw id
func ParseChannelReference(arg string) (string, bool) {
	if match := channelMentionRegex.FindStringSubmatch(arg); match != nil {
		return match[1], true
	}
	if snowflakeRegex.MatchString(arg) {
		return arg, true
	}
	return "", false
}
