package assistant

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/issac8080/aurashop/pkg/assistantwire"
)

// Effects is the storefront surface the dispatcher drives. Implementations
// belong to the embedding application (router integration, test doubles).
type Effects interface {
	// Navigate routes the storefront to a relative path.
	Navigate(path string) error
}

// dispatcher maps each action discriminant to exactly one client-side effect.
// It holds no state: an action is mapped, executed, and discarded.
type dispatcher struct {
	effects       Effects
	resubmit      func(ctx context.Context, message string) error
	discountsPath string
	log           zerolog.Logger
}

// Dispatch executes the effect for one action. Unknown types are a forward-
// compatible no-op, and no effect failure escapes the dispatcher: the protocol
// consumes no return value from effects.
func (d *dispatcher) Dispatch(ctx context.Context, a assistantwire.Action) {
	var err error
	switch a.Type {
	case assistantwire.ActionNavigate:
		if strings.TrimSpace(a.Payload) == "" {
			return
		}
		err = d.effects.Navigate(a.Payload)
	case assistantwire.ActionQuickOrderOption:
		err = d.resubmit(ctx, a.Label)
	case assistantwire.ActionQuickOrderConfirm:
		err = d.resubmit(ctx, assistantwire.ConfirmOrderMessage)
	case assistantwire.ActionQuickOrderChange:
		err = d.resubmit(ctx, assistantwire.ChangeOrderMessage)
	case assistantwire.ActionSpinWheel:
		err = d.effects.Navigate(d.discountsPath)
	default:
		d.log.Debug().Str("type", a.Type).Msg("ignoring unknown action type")
		return
	}
	if err != nil {
		d.log.Warn().Err(err).Str("type", a.Type).Str("label", a.Label).Msg("action effect failed")
	}
}
