package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/issac8080/aurashop/pkg/assistantwire"
)

type recordingEffects struct {
	paths  []string
	navErr error
}

func (r *recordingEffects) Navigate(path string) error {
	r.paths = append(r.paths, path)
	return r.navErr
}

func newTestDispatcher(effects Effects, resubmit func(context.Context, string) error) *dispatcher {
	if resubmit == nil {
		resubmit = func(context.Context, string) error { return nil }
	}
	return &dispatcher{
		effects:       effects,
		resubmit:      resubmit,
		discountsPath: DefaultDiscountsPath,
		log:           zerolog.Nop(),
	}
}

func TestDispatchNavigate(t *testing.T) {
	effects := &recordingEffects{}
	d := newTestDispatcher(effects, nil)

	d.Dispatch(context.Background(), assistantwire.Action{
		Type: assistantwire.ActionNavigate, Label: "View", Payload: "/products/P001",
	})
	assert.Equal(t, []string{"/products/P001"}, effects.paths)
}

func TestDispatchNavigateEmptyPayload(t *testing.T) {
	effects := &recordingEffects{}
	d := newTestDispatcher(effects, nil)

	d.Dispatch(context.Background(), assistantwire.Action{Type: assistantwire.ActionNavigate, Label: "View"})
	assert.Empty(t, effects.paths)
}

func TestDispatchQuickOrderResubmissions(t *testing.T) {
	var sent []string
	d := newTestDispatcher(&recordingEffects{}, func(_ context.Context, msg string) error {
		sent = append(sent, msg)
		return nil
	})

	d.Dispatch(context.Background(), assistantwire.Action{Type: assistantwire.ActionQuickOrderOption, Label: "Deliver home"})
	d.Dispatch(context.Background(), assistantwire.Action{Type: assistantwire.ActionQuickOrderConfirm, Label: "anything"})
	d.Dispatch(context.Background(), assistantwire.Action{Type: assistantwire.ActionQuickOrderChange, Label: "anything"})

	// Option resubmits its label; confirm and change resubmit fixed texts
	// regardless of label.
	assert.Equal(t, []string{
		"Deliver home",
		assistantwire.ConfirmOrderMessage,
		assistantwire.ChangeOrderMessage,
	}, sent)
}

func TestDispatchSpinWheelRoutesToDiscounts(t *testing.T) {
	effects := &recordingEffects{}
	d := newTestDispatcher(effects, nil)

	d.Dispatch(context.Background(), assistantwire.Action{Type: assistantwire.ActionSpinWheel, Label: "Spin"})
	assert.Equal(t, []string{DefaultDiscountsPath}, effects.paths)
}

func TestDispatchUnknownTypeIsNoOp(t *testing.T) {
	effects := &recordingEffects{}
	called := false
	d := newTestDispatcher(effects, func(context.Context, string) error {
		called = true
		return nil
	})

	d.Dispatch(context.Background(), assistantwire.Action{Type: "hologram_preview", Label: "Preview"})
	assert.Empty(t, effects.paths)
	assert.False(t, called)
}

func TestDispatchSwallowsEffectErrors(t *testing.T) {
	effects := &recordingEffects{navErr: errors.New("router detached")}
	d := newTestDispatcher(effects, nil)

	// Must not panic or propagate.
	d.Dispatch(context.Background(), assistantwire.Action{
		Type: assistantwire.ActionNavigate, Label: "View", Payload: "/x",
	})
	assert.Len(t, effects.paths, 1)
}
