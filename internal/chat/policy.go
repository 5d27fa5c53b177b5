package chat

import "strings"

// ShouldOfferProductMenu reports whether the product quick-reply menu should
// accompany this turn's reply.
//
// The menu is offered exactly once, on the second assistant reply (the
// history holds one assistant turn at that point), and only while the
// prospect has not yet named a cataloged product in any user turn
// (case-insensitive substring match).
func ShouldOfferProductMenu(messages []Message) bool {
	assistantTurns := 0
	for _, m := range messages {
		if m.Role == RoleAssistant {
			assistantTurns++
		}
	}
	if assistantTurns != 1 {
		return false
	}

	names := ProductNames()
	for _, m := range messages {
		if m.Role != RoleUser {
			continue
		}
		content := strings.ToLower(m.Content)
		for _, name := range names {
			if strings.Contains(content, strings.ToLower(name)) {
				return false
			}
		}
	}

	return true
}
