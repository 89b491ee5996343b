package web

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/melba-ui/melba/pkg/position"
	"github.com/melba-ui/melba/pkg/toast"
)

func TestEncodeToast(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	in := toast.Toast{
		ID:          "t-1",
		CreatedAt:   created,
		Message:     "saved",
		Title:       "Profile",
		Type:        toast.TypeSuccess,
		Theme:       toast.ThemeDark,
		Duration:    3 * time.Second,
		Dismissible: true,
		Actions: []toast.Action{
			{Label: "Undo", Variant: toast.ActionPrimary, OnSelect: func() {}},
			{Label: "View", Variant: toast.ActionSecondary},
		},
		StyleClass:  "wide",
		ProgressBar: true,
		Progress:    40,
		Icon:        toast.Icon{Kind: toast.IconAvatar, URL: "https://cdn.example/a.png"},
		Position:    position.TopRight,
	}

	out := encodeToast(in)

	if out.ID != "t-1" || out.Message != "saved" || out.Title != "Profile" {
		t.Errorf("identity fields = %q/%q/%q", out.ID, out.Message, out.Title)
	}
	if out.CreatedAt != created.UnixMilli() {
		t.Errorf("CreatedAt = %d, want %d", out.CreatedAt, created.UnixMilli())
	}
	if out.Type != "success" || out.Theme != "dark" {
		t.Errorf("type/theme = %q/%q", out.Type, out.Theme)
	}
	if out.DurationMs != 3000 {
		t.Errorf("DurationMs = %d, want 3000", out.DurationMs)
	}
	if !out.Dismissible {
		t.Error("Dismissible not carried")
	}
	if len(out.Actions) != 2 {
		t.Fatalf("len(Actions) = %d, want 2", len(out.Actions))
	}
	if out.Actions[0].Label != "Undo" || out.Actions[0].Variant != "primary" {
		t.Errorf("Actions[0] = %+v", out.Actions[0])
	}
	if out.Icon.Kind != "avatar" || out.Icon.URL != "https://cdn.example/a.png" {
		t.Errorf("Icon = %+v", out.Icon)
	}
	if out.Position != "top-right" {
		t.Errorf("Position = %q", out.Position)
	}
	if !out.ProgressBar || out.Progress != 40 {
		t.Errorf("progress = %v/%v", out.ProgressBar, out.Progress)
	}
}

func TestEncodeToastOmitsCallbacks(t *testing.T) {
	in := toast.Toast{
		ID:      "t-2",
		Message: "hi",
		Actions: []toast.Action{{Label: "Go", OnSelect: func() { t.Fatal("must never run") }}},
		Icon:    toast.Icon{Kind: toast.IconCustom, Handle: struct{ X int }{1}},
	}

	raw, err := json.Marshal(encodeToast(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(raw)
	if strings.Contains(s, "OnSelect") || strings.Contains(s, "Handle") {
		t.Errorf("wire shape leaks host-only fields: %s", s)
	}
}

func TestDecodeShow(t *testing.T) {
	p := decodeShow(&ShowPayload{
		Message:    "deploy finished",
		Title:      "CI",
		Type:       "success",
		DurationMs: 2500,
		Position:   "top-left",
	})

	if p.Message != "deploy finished" || p.Title != "CI" {
		t.Errorf("message/title = %q/%q", p.Message, p.Title)
	}
	if p.Type != toast.TypeSuccess {
		t.Errorf("Type = %q", p.Type)
	}
	if p.Duration != 2500*time.Millisecond {
		t.Errorf("Duration = %v", p.Duration)
	}
	if p.Position != position.TopLeft {
		t.Errorf("Position = %q", p.Position)
	}
	if p.Sticky {
		t.Error("Sticky should default to false")
	}
}

func TestDecodeShowSticky(t *testing.T) {
	p := decodeShow(&ShowPayload{Message: "pinned", Sticky: true})
	if !p.Sticky {
		t.Error("Sticky not carried")
	}
	if p.Duration != 0 {
		t.Errorf("Duration = %v, want 0", p.Duration)
	}
}

func TestSyncFrameOmitsEmptyContainers(t *testing.T) {
	raw, err := json.Marshal(outFrame{Type: frameSync})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "containers") {
		t.Errorf("empty sync frame should omit containers: %s", raw)
	}

	raw, err = json.Marshal(outFrame{
		Type:       frameSync,
		Containers: map[string][]toastJSON{"top-left": {{ID: "a"}}},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"top-left"`) {
		t.Errorf("populated sync frame missing container key: %s", raw)
	}
}
