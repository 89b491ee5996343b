package web

import (
	"time"

	"github.com/melba-ui/melba/pkg/anim"
	"github.com/melba-ui/melba/pkg/position"
	"github.com/melba-ui/melba/pkg/toast"
)

// Frame type tags on the wire. Outbound frames are produced by the
// bridge, inbound frames by the client.
const (
	frameSync    = "sync"    // outbound: full visible window
	frameAnimate = "animate" // outbound: run a transition on one toast
	frameApply   = "apply"   // outbound: set a terminal frame, no transition
	frameHover   = "hover"   // inbound: pointer entered/left a toast
	frameDismiss = "dismiss" // inbound: close affordance activated
	frameAction  = "action"  // inbound: action button activated
	frameShow    = "show"    // inbound: create a toast (demo pages)
	frameDone    = "done"    // inbound: animate frame finished
)

// ClientEvent is one inbound frame after decoding. Which fields are
// meaningful depends on Type.
type ClientEvent struct {
	Type    string       `json:"type"`
	ID      string       `json:"id,omitempty"`
	State   string       `json:"state,omitempty"` // hover: "enter" or "leave"
	Index   int          `json:"index,omitempty"` // action: index into the toast's actions
	Seq     uint64       `json:"seq,omitempty"`   // done: sequence of the finished animate frame
	Payload *ShowPayload `json:"payload,omitempty"`
}

// ShowPayload carries the fields a demo page may set when it asks the
// bridge to create a toast.
type ShowPayload struct {
	Message    string `json:"message"`
	Title      string `json:"title,omitempty"`
	Type       string `json:"toastType,omitempty"`
	DurationMs int64  `json:"durationMs,omitempty"`
	Sticky     bool   `json:"sticky,omitempty"`
	Position   string `json:"position,omitempty"`
}

// outFrame is the envelope for every frame the bridge writes. Unused
// fields are omitted per frame type.
type outFrame struct {
	Type       string                 `json:"type"`
	Containers map[string][]toastJSON `json:"containers,omitempty"`
	ID         string                 `json:"id,omitempty"`
	Seq        uint64                 `json:"seq,omitempty"`
	Phase      string                 `json:"phase,omitempty"`
	Transition *anim.Transition       `json:"transition,omitempty"`
	Frame      *anim.Frame            `json:"frame,omitempty"`
}

// toastJSON is the wire shape of a toast. Callback and handle fields
// never cross the wire; actions are referenced back by index.
type toastJSON struct {
	ID          string       `json:"id"`
	CreatedAt   int64        `json:"createdAt"` // unix milliseconds
	Message     string       `json:"message"`
	Title       string       `json:"title,omitempty"`
	Type        string       `json:"type"`
	Theme       string       `json:"theme"`
	DurationMs  int64        `json:"durationMs"`
	Dismissible bool         `json:"dismissible"`
	Actions     []actionJSON `json:"actions,omitempty"`
	StyleClass  string       `json:"styleClass,omitempty"`
	ProgressBar bool         `json:"progressBar,omitempty"`
	Progress    float64      `json:"progress,omitempty"`
	Icon        iconJSON     `json:"icon"`
	Position    string       `json:"position"`
}

type actionJSON struct {
	Label   string `json:"label"`
	Variant string `json:"variant"`
}

type iconJSON struct {
	Kind string `json:"kind"`
	URL  string `json:"url,omitempty"`
}

func encodeToast(t toast.Toast) toastJSON {
	out := toastJSON{
		ID:          t.ID,
		CreatedAt:   t.CreatedAt.UnixMilli(),
		Message:     t.Message,
		Title:       t.Title,
		Type:        string(t.Type),
		Theme:       string(t.Theme),
		DurationMs:  t.Duration.Milliseconds(),
		Dismissible: t.Dismissible,
		StyleClass:  t.StyleClass,
		ProgressBar: t.ProgressBar,
		Progress:    t.Progress,
		Icon:        iconJSON{Kind: string(t.Icon.Kind), URL: t.Icon.URL},
		Position:    string(t.Position),
	}
	for _, a := range t.Actions {
		out.Actions = append(out.Actions, actionJSON{Label: a.Label, Variant: string(a.Variant)})
	}
	return out
}

func encodeContainers(buckets map[position.Position][]toast.Toast) map[string][]toastJSON {
	out := make(map[string][]toastJSON, len(buckets))
	for pos, group := range buckets {
		encoded := make([]toastJSON, 0, len(group))
		for _, t := range group {
			encoded = append(encoded, encodeToast(t))
		}
		out[string(pos)] = encoded
	}
	return out
}

func decodeShow(p *ShowPayload) toast.Payload {
	out := toast.Payload{
		Message:  p.Message,
		Title:    p.Title,
		Type:     toast.Type(p.Type),
		Sticky:   p.Sticky,
		Position: position.Position(p.Position),
	}
	if p.DurationMs > 0 {
		out.Duration = time.Duration(p.DurationMs) * time.Millisecond
	}
	return out
}
