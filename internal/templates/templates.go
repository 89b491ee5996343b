package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/melba-ui/melba/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// ModulePath is the Go module path.
	ModulePath string

	// Description is a short project description.
	Description string

	// AllowShow wires the demo page's show form to the bridge.
	AllowShow bool
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"demo":    demoTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E023").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: minimal, demo")
	}
	return tmpl, nil
}

// List returns all available template names.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	return names
}

// Create generates a project from the template.
func (t *Template) Create(dir string, cfg Config) error {
	for relPath, content := range t.Files {
		rendered, err := render(relPath, content, cfg)
		if err != nil {
			return err
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}

		if err := os.WriteFile(fullPath, rendered, 0644); err != nil {
			return err
		}
	}

	return nil
}

// DemoPage renders the interactive demo page for serving in-process.
// The demo template writes the same page to public/index.html.
func DemoPage(cfg Config) ([]byte, error) {
	return render("index.html", demoPageHTML, cfg)
}

func render(name, content string, cfg Config) ([]byte, error) {
	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return nil, errors.Newf(errors.CategoryCLI, "invalid template %s: %v", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return nil, errors.Newf(errors.CategoryCLI, "template execute error %s: %v", name, err)
	}

	return buf.Bytes(), nil
}

// minimalTemplate returns the minimal template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "A bare host program wired to the toast engine",
		Files: map[string]string{
			"main.go": `package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/melba-ui/melba/pkg/config"
	"github.com/melba-ui/melba/pkg/toast"
	"github.com/melba-ui/melba/pkg/web"
)

type appConfig struct {
	Addr  string ` + "`" + `env:"ADDR" envDefault:"localhost:8620"` + "`" + `
	Debug bool   ` + "`" + `env:"DEBUG"` + "`" + `
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	mgr := toast.New(toast.DefaultConfig().WithLogger(log))
	defer mgr.Close()

	mgr.Success("{{.ProjectName}} is running", toast.WithTitle("Welcome"), toast.Sticky())

	mux := http.NewServeMux()
	mux.Handle("/", web.Handler(mgr, web.WithLogger(log)))

	log.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
`,
			"go.mod": `module {{.ModulePath}}

go 1.23

require github.com/melba-ui/melba v0.1.0
`,
			"README.md": `# {{.ProjectName}}

{{.Description}}

The bridge is mounted at the server root:

- GET /toasts - JSON snapshot of the visible window, grouped by container
- GET /ws - WebSocket endpoint for live rendering surfaces
- GET /healthz - liveness probe

## Run

    go mod tidy
    go run .

The listen address comes from the environment (ADDR, default
localhost:8620). Set DEBUG=true for verbose logs.
`,
		},
	}
}

// demoTemplate returns the demo template: the minimal host plus the
// interactive demo page served from public/.
func demoTemplate() *Template {
	return &Template{
		Name:        "demo",
		Description: "The minimal host plus the interactive demo page",
		Files: map[string]string{
			"main.go": `package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/melba-ui/melba/pkg/config"
	"github.com/melba-ui/melba/pkg/toast"
	"github.com/melba-ui/melba/pkg/web"
)

type appConfig struct {
	Addr  string ` + "`" + `env:"ADDR" envDefault:"localhost:8620"` + "`" + `
	Debug bool   ` + "`" + `env:"DEBUG"` + "`" + `
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	mgr := toast.New(toast.DefaultConfig().WithLogger(log))
	defer mgr.Close()

	mgr.Success("{{.ProjectName}} is running", toast.WithTitle("Welcome"))

	opts := []web.HandlerOption{web.WithLogger(log)}
{{- if .AllowShow}}
	opts = append(opts, web.WithShowEnabled())
{{- end}}

	mux := http.NewServeMux()
	mux.Handle("/melba/", http.StripPrefix("/melba", web.Handler(mgr, opts...)))
	mux.Handle("/", http.FileServer(http.Dir("public")))

	log.Info("listening", "url", "http://"+cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
`,
			"go.mod": `module {{.ModulePath}}

go 1.23

require github.com/melba-ui/melba v0.1.0
`,
			"README.md": `# {{.ProjectName}}

{{.Description}}

The demo page is served from public/ and connects to the bridge at
/melba/ws. melba.yaml carries the engine defaults the melba CLI reads;
edit it and run melba demo from the project root to preview changes
without touching this program.

## Run

    go mod tidy
    go run .

Then open http://localhost:8620. The listen address comes from the
environment (ADDR); set DEBUG=true for verbose logs.
`,
			"public/index.html": demoPageHTML,
		},
	}
}

// demoPageHTML is the interactive demo client. It renders every
// container position, mirrors sync frames into the DOM, plays animate
// frames through the Web Animations API, and acks them with done
// frames so the bridge can sequence leave removal.
const demoPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.ProjectName}} demo</title>
<style>
  * { box-sizing: border-box; }
  body { margin: 0; font-family: system-ui, sans-serif; background: #f4f4f5; color: #18181b; }
  main { max-width: 560px; margin: 0 auto; padding: 40px 24px; }
  h1 { margin: 0 0 4px; font-size: 28px; }
  .tagline { margin: 0 0 24px; color: #52525b; }
  .panel { background: #fff; border-radius: 12px; padding: 20px; box-shadow: 0 1px 4px rgba(0, 0, 0, 0.08); }
  .panel h2 { margin: 0 0 16px; font-size: 16px; }
  .field { margin-bottom: 12px; }
  .field label { display: block; font-size: 13px; color: #52525b; margin-bottom: 4px; }
  .field input[type="text"], .field input[type="number"], .field select {
    width: 100%; padding: 8px 10px; border: 1px solid #d4d4d8; border-radius: 8px; font: inherit;
  }
  .field.check { display: flex; align-items: center; gap: 8px; margin-top: 22px; }
  .field.check label { margin: 0; }
  .row { display: flex; gap: 12px; }
  .row .field { flex: 1; }
  button[type="submit"] {
    padding: 9px 18px; border: 0; border-radius: 8px; background: #18181b; color: #fff;
    font: inherit; cursor: pointer;
  }
  .conn { font-size: 12px; color: #a1a1aa; margin: 16px 0 0; }

  .melba-container {
    position: fixed; z-index: 9999; display: flex; flex-direction: column; gap: 8px;
    padding: 16px; width: 100%; max-width: 380px; pointer-events: none;
  }
  .melba-container[data-position="top-left"] { top: 0; left: 0; }
  .melba-container[data-position="top-center"] { top: 0; left: 50%; transform: translateX(-50%); }
  .melba-container[data-position="top-right"] { top: 0; right: 0; }
  .melba-container[data-position="bottom-left"] { bottom: 0; left: 0; flex-direction: column-reverse; }
  .melba-container[data-position="bottom-center"] { bottom: 0; left: 50%; transform: translateX(-50%); flex-direction: column-reverse; }
  .melba-container[data-position="bottom-right"] { bottom: 0; right: 0; flex-direction: column-reverse; }

  .melba-toast {
    pointer-events: auto; position: relative; overflow: hidden;
    display: flex; gap: 10px; align-items: flex-start;
    background: #fff; color: #18181b; border-left: 4px solid #3b82f6;
    border-radius: 10px; padding: 12px 14px; box-shadow: 0 6px 24px rgba(0, 0, 0, 0.12);
  }
  .melba-toast[data-theme="dark"] { background: #27272a; color: #fafafa; }
  .melba-toast[data-type="success"] { border-left-color: #22c55e; }
  .melba-toast[data-type="warning"] { border-left-color: #f59e0b; }
  .melba-toast[data-type="danger"] { border-left-color: #ef4444; }

  .melba-icon { flex: 0 0 auto; width: 20px; text-align: center; color: #3b82f6; }
  .melba-toast[data-type="success"] .melba-icon { color: #22c55e; }
  .melba-toast[data-type="warning"] .melba-icon { color: #f59e0b; }
  .melba-toast[data-type="danger"] .melba-icon { color: #ef4444; }
  .melba-avatar { width: 24px; height: 24px; border-radius: 50%; background-size: cover; background-position: center; }

  .melba-body { flex: 1 1 auto; min-width: 0; }
  .melba-title { margin: 0 0 2px; font-size: 14px; font-weight: 600; }
  .melba-message { margin: 0; font-size: 14px; line-height: 1.4; }
  .melba-actions { display: flex; gap: 8px; margin-top: 8px; }
  .melba-action {
    border: 1px solid #d4d4d8; background: none; color: inherit;
    border-radius: 6px; padding: 4px 10px; font-size: 12px; cursor: pointer;
  }
  .melba-action[data-variant="primary"] { background: #18181b; border-color: #18181b; color: #fff; }
  .melba-toast[data-theme="dark"] .melba-action[data-variant="primary"] { background: #fafafa; border-color: #fafafa; color: #18181b; }

  .melba-close {
    flex: 0 0 auto; border: 0; background: none; color: inherit;
    opacity: 0.5; cursor: pointer; font-size: 16px; line-height: 1; padding: 0 2px;
  }
  .melba-close:hover { opacity: 1; }

  .melba-progress { position: absolute; left: 0; bottom: 0; height: 3px; background: #3b82f6; }
  .melba-toast[data-type="success"] .melba-progress { background: #22c55e; }
  .melba-toast[data-type="warning"] .melba-progress { background: #f59e0b; }
  .melba-toast[data-type="danger"] .melba-progress { background: #ef4444; }
</style>
</head>
<body>
<main>
  <h1>{{.ProjectName}}</h1>
  <p class="tagline">{{.Description}}</p>
  <section class="panel">
{{- if .AllowShow}}
    <h2>Fire a toast</h2>
    <form id="show-form">
      <div class="field">
        <label for="f-message">Message</label>
        <input id="f-message" name="message" type="text" value="Deploy finished" required>
      </div>
      <div class="field">
        <label for="f-title">Title</label>
        <input id="f-title" name="title" type="text" placeholder="optional">
      </div>
      <div class="row">
        <div class="field">
          <label for="f-type">Type</label>
          <select id="f-type" name="toastType">
            <option value="info">info</option>
            <option value="success" selected>success</option>
            <option value="warning">warning</option>
            <option value="danger">danger</option>
          </select>
        </div>
        <div class="field">
          <label for="f-position">Position</label>
          <select id="f-position" name="position">
            <option value="">default</option>
            <option value="top-left">top-left</option>
            <option value="top-center">top-center</option>
            <option value="top-right">top-right</option>
            <option value="bottom-left">bottom-left</option>
            <option value="bottom-center">bottom-center</option>
            <option value="bottom-right">bottom-right</option>
          </select>
        </div>
      </div>
      <div class="row">
        <div class="field">
          <label for="f-duration">Duration (seconds)</label>
          <input id="f-duration" name="duration" type="number" value="5" min="0" step="0.5">
        </div>
        <div class="field check">
          <input id="f-sticky" name="sticky" type="checkbox">
          <label for="f-sticky">Sticky</label>
        </div>
      </div>
      <button type="submit">Show toast</button>
    </form>
{{- else}}
    <h2>Server-driven toasts</h2>
    <p>Client-created toasts are disabled on this bridge. Toasts appear
    here when the server publishes them.</p>
{{- end}}
    <p id="conn" class="conn">connecting...</p>
  </section>
</main>
<div class="melba-container" data-position="top-left"></div>
<div class="melba-container" data-position="top-center"></div>
<div class="melba-container" data-position="top-right"></div>
<div class="melba-container" data-position="bottom-left"></div>
<div class="melba-container" data-position="bottom-center"></div>
<div class="melba-container" data-position="bottom-right"></div>
<script>
(function () {
  var positions = ['top-left', 'top-center', 'top-right', 'bottom-left', 'bottom-center', 'bottom-right'];
  var stacks = {};
  positions.forEach(function (pos) {
    stacks[pos] = document.querySelector('.melba-container[data-position="' + pos + '"]');
  });

  var glyphs = { info: '\u2139', success: '\u2713', warning: '\u26a0', danger: '\u2715' };

  // id -> {el, data, leaving, timer}. Leaving toasts stay in the DOM
  // until their leave transition lands or the fallback timer fires.
  var nodes = new Map();

  var reduced = window.matchMedia && window.matchMedia('(prefers-reduced-motion: reduce)').matches;
  var scheme = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var wsURL = scheme + location.host + '/melba/ws' + (reduced ? '?reducedMotion=1' : '');
  var ws = null;
  var retry = null;

  function status(text) {
    var el = document.getElementById('conn');
    if (el) el.textContent = text;
  }

  function send(frame) {
    if (ws && ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(frame));
  }

  function connect() {
    status('connecting...');
    ws = new WebSocket(wsURL);
    ws.onopen = function () { status('connected'); };
    ws.onmessage = onMessage;
    ws.onclose = function () {
      status('disconnected, retrying...');
      clearTimeout(retry);
      retry = setTimeout(connect, 2000);
    };
  }

  function onMessage(evt) {
    var m;
    try { m = JSON.parse(evt.data); } catch (e) { return; }
    if (m.type === 'sync') reconcile(m.containers || {});
    else if (m.type === 'animate') runTransition(m);
    else if (m.type === 'apply') runApply(m);
  }

  function reconcile(containers) {
    var want = {};
    positions.forEach(function (pos) {
      var list = containers[pos] || [];
      var parent = stacks[pos];
      list.forEach(function (t) {
        want[t.id] = true;
        var rec = nodes.get(t.id);
        if (!rec) {
          rec = { el: buildToast(t), data: t, leaving: false, timer: null };
          nodes.set(t.id, rec);
        } else {
          updateToast(rec, t);
        }
        parent.appendChild(rec.el);
      });
    });
    nodes.forEach(function (rec, id) {
      if (want[id] || rec.leaving) return;
      rec.leaving = true;
      rec.timer = setTimeout(function () { removeToast(id); }, 2000);
    });
  }

  function buildToast(t) {
    var el = document.createElement('div');
    el.className = 'melba-toast' + (t.styleClass ? ' ' + t.styleClass : '');
    el.dataset.id = t.id;
    el.dataset.type = t.type;
    el.dataset.theme = t.theme;
    el.setAttribute('role', t.type === 'warning' || t.type === 'danger' ? 'alert' : 'status');

    var icon = document.createElement('div');
    icon.className = 'melba-icon';
    if (t.icon && t.icon.kind === 'avatar' && t.icon.url) {
      icon.classList.add('melba-avatar');
      icon.style.backgroundImage = 'url(' + t.icon.url + ')';
    } else {
      icon.textContent = glyphs[t.type] || glyphs.info;
    }
    el.appendChild(icon);

    var body = document.createElement('div');
    body.className = 'melba-body';
    if (t.title) {
      var title = document.createElement('p');
      title.className = 'melba-title';
      title.textContent = t.title;
      body.appendChild(title);
    }
    var message = document.createElement('p');
    message.className = 'melba-message';
    message.textContent = t.message;
    body.appendChild(message);
    if (t.actions && t.actions.length) {
      var actions = document.createElement('div');
      actions.className = 'melba-actions';
      t.actions.forEach(function (a, i) {
        var btn = document.createElement('button');
        btn.className = 'melba-action';
        btn.dataset.variant = a.variant;
        btn.textContent = a.label;
        btn.addEventListener('click', function () {
          send({ type: 'action', id: t.id, index: i });
        });
        actions.appendChild(btn);
      });
      body.appendChild(actions);
    }
    el.appendChild(body);

    if (t.dismissible) {
      var close = document.createElement('button');
      close.className = 'melba-close';
      close.setAttribute('aria-label', 'Dismiss');
      close.textContent = '\u00d7';
      close.addEventListener('click', function () {
        send({ type: 'dismiss', id: t.id });
      });
      el.appendChild(close);
    }

    if (t.progressBar) {
      var bar = document.createElement('div');
      bar.className = 'melba-progress';
      bar.style.width = (t.progress || 0) + '%';
      el.appendChild(bar);
    }

    el.addEventListener('mouseenter', function () {
      send({ type: 'hover', id: t.id, state: 'enter' });
    });
    el.addEventListener('mouseleave', function () {
      send({ type: 'hover', id: t.id, state: 'leave' });
    });

    return el;
  }

  function updateToast(rec, t) {
    rec.data = t;
    rec.el.dataset.type = t.type;
    rec.el.dataset.theme = t.theme;
    var message = rec.el.querySelector('.melba-message');
    if (message && message.textContent !== t.message) message.textContent = t.message;
    var bar = rec.el.querySelector('.melba-progress');
    if (bar) bar.style.width = (t.progress || 0) + '%';
  }

  function removeToast(id) {
    var rec = nodes.get(id);
    if (!rec) return;
    if (rec.timer) clearTimeout(rec.timer);
    nodes.delete(id);
    if (rec.el.parentNode) rec.el.parentNode.removeChild(rec.el);
  }

  function toKeyframes(frames) {
    return frames.map(function (f) {
      var kf = { offset: f.at };
      if (f.opacity !== undefined) kf.opacity = f.opacity;
      var parts = [];
      if (f.translateX !== undefined || f.translateY !== undefined) {
        parts.push('translate(' + (f.translateX || 0) + 'px, ' + (f.translateY || 0) + 'px)');
      }
      if (f.scale !== undefined) parts.push('scale(' + f.scale + ')');
      if (parts.length) kf.transform = parts.join(' ');
      return kf;
    });
  }

  // The bridge waits for a done ack per animate frame, so one is sent
  // on every path, including a toast the DOM no longer has.
  function runTransition(m) {
    var rec = nodes.get(m.id);
    var tr = m.transition;
    if (!rec || !tr || !tr.keyframes || !tr.keyframes.length) {
      send({ type: 'done', seq: m.seq });
      if (rec && m.phase === 'leave') removeToast(m.id);
      return;
    }
    var anim = rec.el.animate(toKeyframes(tr.keyframes), {
      duration: tr.durationMs || 0,
      easing: tr.easing || 'ease-in-out',
      fill: 'forwards'
    });
    var settled = false;
    anim.onfinish = anim.oncancel = function () {
      if (settled) return;
      settled = true;
      send({ type: 'done', seq: m.seq });
      if (m.phase === 'leave') removeToast(m.id);
    };
  }

  function runApply(m) {
    var rec = nodes.get(m.id);
    if (!rec || !m.frame) return;
    var f = m.frame;
    if (f.opacity !== undefined) rec.el.style.opacity = f.opacity;
    var parts = [];
    if (f.translateX !== undefined || f.translateY !== undefined) {
      parts.push('translate(' + (f.translateX || 0) + 'px, ' + (f.translateY || 0) + 'px)');
    }
    if (f.scale !== undefined) parts.push('scale(' + f.scale + ')');
    if (parts.length) rec.el.style.transform = parts.join(' ');
    if (f.opacity === 0) removeToast(m.id);
  }

  var form = document.getElementById('show-form');
  if (form) {
    form.addEventListener('submit', function (evt) {
      evt.preventDefault();
      var payload = {
        message: form.message.value,
        title: form.title.value,
        toastType: form.toastType.value,
        position: form.position.value,
        sticky: form.sticky.checked
      };
      var secs = parseFloat(form.duration.value);
      if (!payload.sticky && !isNaN(secs) && secs > 0) {
        payload.durationMs = Math.round(secs * 1000);
      }
      send({ type: 'show', payload: payload });
    });
  }

  connect();
})();
</script>
</body>
</html>
`
