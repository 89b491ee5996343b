package web

import (
	"context"
	"time"

	"github.com/melba-ui/melba/pkg/anim"
)

// ackGrace is added to a transition's duration when waiting for the
// client's done frame. A client that never acks (old page, dropped
// frame) must not wedge the orchestrator.
const ackGrace = 250 * time.Millisecond

// remoteElement adapts one client-side toast node to anim.Element.
// Apply and Animate translate to apply/animate frames on the wire;
// completion is the client's done ack, with a wall-clock fallback.
type remoteElement struct {
	sess  *session
	id    string
	phase string // "enter" or "leave", echoed to the client
}

func (e *remoteElement) Apply(f anim.Frame) {
	frame := f
	e.sess.enqueue(outFrame{Type: frameApply, ID: e.id, Frame: &frame})
}

func (e *remoteElement) Animate(ctx context.Context, tr anim.Transition) error {
	seq := e.sess.seq.Add(1)
	ack := e.sess.registerAck(seq)
	defer e.sess.dropAck(seq)

	transition := tr
	if err := e.sess.enqueue(outFrame{
		Type:       frameAnimate,
		ID:         e.id,
		Seq:        seq,
		Phase:      e.phase,
		Transition: &transition,
	}); err != nil {
		return err
	}

	grace := tr.Duration + ackGrace
	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-ack:
		return nil
	case <-timer.C:
		// No ack within the transition window; assume the client
		// finished and moved on.
		return nil
	case <-e.sess.done:
		return ErrConnClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}
