package discord

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"rolebot/core"
)

// wrapError maps discordgo REST failures onto the core error taxonomy
func wrapError(action string, err error) error {
	if err == nil {
		return nil
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusForbidden:
			return fmt.Errorf("failed to %s: %w: %w", action, core.ErrPermissionDenied, err)
		case http.StatusNotFound:
			return fmt.Errorf("failed to %s: %w: %w", action, core.ErrNotFound, err)
		}
	}

	return fmt.Errorf("failed to %s: %w", action, err)
}
