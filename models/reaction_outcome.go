package models

import "fmt"

// ReactionStatus describes what the reconciler did with a reaction event
type ReactionStatus string

const (
	ReactionStatusUnbound       ReactionStatus = "unbound"
	ReactionStatusForeignSymbol ReactionStatus = "foreign_symbol"
	ReactionStatusGuildMissing  ReactionStatus = "guild_missing"
	ReactionStatusRoleMissing   ReactionStatus = "role_missing"
	ReactionStatusSelfReaction  ReactionStatus = "self_reaction"
	ReactionStatusMemberMissing ReactionStatus = "member_missing"
	ReactionStatusGranted       ReactionStatus = "granted"
	ReactionStatusRevoked       ReactionStatus = "revoked"
	ReactionStatusFailed        ReactionStatus = "failed"
)

// ReactionOutcome is the result of reconciling one reaction event. Callers
// may discard it: reaction handling never reports back to the reacting user.
type ReactionOutcome struct {
	Status   ReactionStatus
	RoleName string
	RoleID   string
	Err      error
}

// Mutated reports whether a role was granted or revoked
func (o ReactionOutcome) Mutated() bool {
	return o.Status == ReactionStatusGranted || o.Status == ReactionStatusRevoked
}

func (o ReactionOutcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("%s (%s): %v", o.Status, o.RoleName, o.Err)
	}
	if o.RoleName != "" {
		return fmt.Sprintf("%s (%s)", o.Status, o.RoleName)
	}
	return string(o.Status)
}
