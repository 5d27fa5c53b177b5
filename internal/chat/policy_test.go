package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldOfferProductMenu(t *testing.T) {
	tests := []struct {
		name     string
		messages []Message
		want     bool
	}{
		{
			name:     "empty history",
			messages: nil,
			want:     false,
		},
		{
			name: "first user turn, no assistant reply yet",
			messages: []Message{
				{Role: RoleUser, Content: "hi"},
			},
			want: false,
		},
		{
			name: "second reply incoming, no product mentioned",
			messages: []Message{
				{Role: RoleAssistant, Content: Greeting},
				{Role: RoleUser, Content: "I'm in property management"},
			},
			want: true,
		},
		{
			name: "user already named a product",
			messages: []Message{
				{Role: RoleAssistant, Content: Greeting},
				{Role: RoleUser, Content: "Tell me about LeasingAI"},
			},
			want: false,
		},
		{
			name: "product match is case-insensitive",
			messages: []Message{
				{Role: RoleAssistant, Content: Greeting},
				{Role: RoleUser, Content: "what does elisecrm do?"},
			},
			want: false,
		},
		{
			name: "product mention inside a longer sentence",
			messages: []Message{
				{Role: RoleAssistant, Content: Greeting},
				{Role: RoleUser, Content: "A friend mentioned maintenanceai helped them"},
			},
			want: false,
		},
		{
			name: "assistant mentioning a product does not suppress the menu",
			messages: []Message{
				{Role: RoleAssistant, Content: "Have you heard of LeasingAI?"},
				{Role: RoleUser, Content: "not yet"},
			},
			want: true,
		},
		{
			name: "later in the conversation",
			messages: []Message{
				{Role: RoleAssistant, Content: Greeting},
				{Role: RoleUser, Content: "property management"},
				{Role: RoleAssistant, Content: "Great, what size portfolio?"},
				{Role: RoleUser, Content: "about 2000 units"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldOfferProductMenu(tt.messages))
		})
	}
}
