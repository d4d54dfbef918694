package model

import "errors"

// Reaction is a per-user, per-post signal. A user's current reaction is one
// of "up" or "down"; no row exists when the user has no active reaction.
type Reaction string

const (
	ReactionUp   Reaction = "up"
	ReactionDown Reaction = "down"

	// ReactionNone is the absent state. It is never stored and never appears
	// on the wire; clients retract a reaction by re-sending the current one
	// or by sending null.
	ReactionNone Reaction = ""
)

// ReactionRequest is the body for the like route. A nil Reaction retracts
// whatever reaction the caller currently has.
type ReactionRequest struct {
	Reaction *Reaction `json:"reaction"`
}

// ReactionResult is returned after a reaction is applied: the post's new
// aggregate counter and the caller's resulting reaction (null when retracted).
type ReactionResult struct {
	Likes        int       `json:"likes"`
	UserReaction *Reaction `json:"userReaction"`
}

// ErrInvalidReaction is returned for any literal other than "up", "down" or null.
var ErrInvalidReaction = errors.New("invalid reaction")

// ParseReaction validates a wire value. Nil means ReactionNone.
func ParseReaction(r *Reaction) (Reaction, error) {
	if r == nil {
		return ReactionNone, nil
	}
	switch *r {
	case ReactionUp, ReactionDown:
		return *r, nil
	case ReactionNone, "none":
		return ReactionNone, nil
	}
	return ReactionNone, ErrInvalidReaction
}
