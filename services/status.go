package services

import (
	"menuboard-api/models"
)

// Transition defines a valid publication state change
type Transition struct {
	From models.MenuStatus
	To   models.MenuStatus
}

// validTransitions is the authoritative state machine definition: a single
// owner-triggered toggle in either direction, no terminal state.
var validTransitions = []Transition{
	{From: models.StatusDraft, To: models.StatusLive},
	{From: models.StatusLive, To: models.StatusDraft},
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// ValidStatus reports whether s is one of the two publication states
func ValidStatus(s models.MenuStatus) bool {
	return s == models.StatusDraft || s == models.StatusLive
}

// CanTransition checks whether an owner may move an item between states.
// Setting the current state again is allowed and is a no-op.
func CanTransition(from, to models.MenuStatus) error {
	if from == to && ValidStatus(to) {
		return nil
	}
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return invalid("status", "must be 'draft' or 'live'")
}
