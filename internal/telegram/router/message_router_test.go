package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"
)

func TestMessageRoutesCoverNonTextKinds(t *testing.T) {
	routes := MessageRoutes(nil, nil, TextOptions{})

	endpoints := make(map[any]bool, len(routes))
	for _, r := range routes {
		require.NotNil(t, r.Handler)
		endpoints[r.Endpoint] = true
	}

	// Every inbound message kind must reach a handler so the payment
	// step can reprompt when the update carries no usable attachment.
	for _, ep := range []string{
		tele.OnText,
		tele.OnPhoto,
		tele.OnDocument,
		tele.OnMedia,
		tele.OnContact,
		tele.OnLocation,
		tele.OnVenue,
		tele.OnDice,
	} {
		assert.True(t, endpoints[ep], "missing route for %q", ep)
	}
}
