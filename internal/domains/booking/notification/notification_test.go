package notification_test

import (
	"hotel/internal/domains/booking/notification"
	"hotel/internal/domains/booking/summary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields() []summary.Field {
	return []summary.Field{
		{Label: "Client Name", Value: "Guest"},
		{Label: "Room Name", Value: "Deluxe Suite"},
		{Label: "Total Price", Value: "$300.00"},
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name        string
		audience    notification.Audience
		contains    []string
		notContains []string
	}{
		{
			name:     "guest",
			audience: notification.AudienceGuest,
			contains: []string{
				"color: #4a90e2;",
				"Booking Confirmation",
				"Dear Ada,",
				"We look forward to hosting you!",
				"Best Regards,<br/>Your Hotel Team",
			},
			notContains: []string{"HELLO ADMIN", "#e94e1b"},
		},
		{
			name:        "admin",
			audience:    notification.AudienceAdmin,
			contains:    []string{"color: #e94e1b;", "HELLO ADMIN", "A new booking has been made"},
			notContains: []string{"Dear Ada", "We look forward to hosting you!"},
		},
	}

	composer := notification.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := composer.Compose(tt.audience, "Ada", fields())
			require.NoError(t, err)

			for _, want := range tt.contains {
				assert.Contains(t, html, want)
			}

			for _, unwanted := range tt.notContains {
				assert.NotContains(t, html, unwanted)
			}
		})
	}
}

func TestCompose_SharedRowsInOrder(t *testing.T) {
	composer := notification.New()

	guest, err := composer.Compose(notification.AudienceGuest, "Ada", fields())
	require.NoError(t, err)

	admin, err := composer.Compose(notification.AudienceAdmin, "", fields())
	require.NoError(t, err)

	for _, html := range []string{guest, admin} {
		client := strings.Index(html, "<td style=\"padding: 8px;\">Client Name</td>")
		room := strings.Index(html, "<td style=\"padding: 8px;\">Deluxe Suite</td>")
		price := strings.Index(html, "<td style=\"padding: 8px;\">$300.00</td>")

		require.Positive(t, client)
		assert.Less(t, client, room)
		assert.Less(t, room, price)
	}
}

func TestCompose_EscapesValues(t *testing.T) {
	html, err := notification.New().Compose(notification.AudienceGuest, "<b>Ada</b>", []summary.Field{
		{Label: "Message", Value: "<script>alert(1)</script>"},
	})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;b&gt;Ada&lt;/b&gt;")
}

func TestCompose_UnknownAudience(t *testing.T) {
	_, err := notification.New().Compose("staff", "Ada", fields())

	assert.ErrorIs(t, err, notification.ErrUnknownAudience)
}
