package signaling

import (
	"context"

	"golang.org/x/time/rate"
)

// callContext is the per-connection state carried by the JSON-RPC layer.
// The participant id is minted at accept time and never reused; room id is
// bound by a successful join.
type callContext struct {
	participantID string
	reqCtx        context.Context
	limiter       *rate.Limiter

	roomID string
	joined bool
}
