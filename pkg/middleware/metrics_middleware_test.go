package middleware

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/melba-ui/melba/pkg/toast"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestMetricsConfig(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		config := defaultMetricsConfig()
		if config.Namespace != "melba" {
			t.Errorf("Namespace = %q, want %q", config.Namespace, "melba")
		}
		if config.Subsystem != "" {
			t.Errorf("Subsystem = %q, want empty", config.Subsystem)
		}
		if config.Registry != prometheus.DefaultRegisterer {
			t.Error("Registry should be DefaultRegisterer")
		}
		if len(config.Buckets) == 0 {
			t.Error("Buckets should have a default")
		}
	})

	t.Run("with options", func(t *testing.T) {
		config := defaultMetricsConfig()
		WithNamespace("myapp")(&config)
		WithSubsystem("ui")(&config)
		WithBuckets([]float64{0.1, 0.5, 1.0})(&config)
		WithConstLabels(prometheus.Labels{"region": "eu"})(&config)

		if config.Namespace != "myapp" {
			t.Errorf("Namespace = %q, want %q", config.Namespace, "myapp")
		}
		if config.Subsystem != "ui" {
			t.Errorf("Subsystem = %q, want %q", config.Subsystem, "ui")
		}
		if len(config.Buckets) != 3 {
			t.Errorf("len(Buckets) = %d, want 3", len(config.Buckets))
		}
		if config.ConstLabels["region"] != "eu" {
			t.Errorf("ConstLabels = %v", config.ConstLabels)
		}
	})
}

func TestMetricsObserve(t *testing.T) {
	config := defaultMetricsConfig()
	config.Registry = prometheus.NewRegistry()
	mx := initMetrics(config)

	created := time.Now().Add(-3 * time.Second)
	shown := toast.Toast{ID: "a", Type: toast.TypeInfo, CreatedAt: created}

	mx.observe(toast.Event{Kind: toast.EventShown, Toast: shown})
	mx.observe(toast.Event{Kind: toast.EventShown, Toast: toast.Toast{ID: "b", Type: toast.TypeDanger}})

	if got := metricCounterValue(t, mx.shown.WithLabelValues("info")); got != 1 {
		t.Errorf("toasts_shown_total(info) = %v, want 1", got)
	}
	if got := metricCounterValue(t, mx.shown.WithLabelValues("danger")); got != 1 {
		t.Errorf("toasts_shown_total(danger) = %v, want 1", got)
	}
	if got := metricGaugeValue(t, mx.active); got != 2 {
		t.Errorf("active_toasts = %v, want 2", got)
	}

	mx.observe(toast.Event{
		Kind:   toast.EventDismissed,
		Toast:  shown,
		Reason: toast.ReasonManual,
		At:     time.Now(),
	})

	if got := metricCounterValue(t, mx.dismissed.WithLabelValues("manual")); got != 1 {
		t.Errorf("toasts_dismissed_total(manual) = %v, want 1", got)
	}
	if got := metricGaugeValue(t, mx.active); got != 1 {
		t.Errorf("active_toasts = %v, want 1 after dismissal", got)
	}
	if got := metricHistogramCount(t, mx.lifetime); got != 1 {
		t.Errorf("toast_lifetime_seconds count = %v, want 1", got)
	}

	// Pause, resume, and progress events carry no metric weight.
	mx.observe(toast.Event{Kind: toast.EventPaused, Toast: shown})
	mx.observe(toast.Event{Kind: toast.EventResumed, Toast: shown})
	mx.observe(toast.Event{Kind: toast.EventProgress, Toast: shown})

	if got := metricGaugeValue(t, mx.active); got != 1 {
		t.Errorf("active_toasts = %v, want 1 after timer events", got)
	}
}

func TestMetricsSubscription(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := toast.New(toast.DefaultConfig())
	defer m.Close()

	stop := Metrics(m, WithRegistry(reg))

	if _, err := m.Info("one"); err != nil {
		t.Fatalf("show: %v", err)
	}
	id, err := m.Success("two")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	m.Dismiss(id)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	want := map[string]bool{
		"melba_toasts_shown_total":     false,
		"melba_toasts_dismissed_total": false,
		"melba_active_toasts":          false,
		"melba_toast_lifetime_seconds": false,
	}
	for _, f := range families {
		if _, ok := want[f.GetName()]; ok {
			want[f.GetName()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("metric %s not registered", name)
		}
	}

	for _, f := range families {
		switch f.GetName() {
		case "melba_toasts_shown_total":
			var total float64
			for _, metric := range f.GetMetric() {
				total += metric.GetCounter().GetValue()
			}
			if total != 2 {
				t.Errorf("toasts_shown_total sum = %v, want 2", total)
			}
		case "melba_active_toasts":
			if got := f.GetMetric()[0].GetGauge().GetValue(); got != 1 {
				t.Errorf("active_toasts = %v, want 1", got)
			}
		}
	}

	// Stop unsubscribes and unregisters, so the instruments disappear
	// and later engine activity is invisible.
	stop()

	families, err = reg.Gather()
	if err != nil {
		t.Fatalf("gather after stop: %v", err)
	}
	if len(families) != 0 {
		t.Errorf("families after stop = %d, want 0", len(families))
	}

	if _, err := m.Info("after stop"); err != nil {
		t.Fatalf("show after stop: %v", err)
	}
}

func TestMetricsSeparateRegistries(t *testing.T) {
	m := toast.New(toast.DefaultConfig())
	defer m.Close()

	regA := prometheus.NewRegistry()
	regB := prometheus.NewRegistry()

	stopA := Metrics(m, WithRegistry(regA))
	defer stopA()
	stopB := Metrics(m, WithRegistry(regB), WithConstLabels(prometheus.Labels{"copy": "b"}))
	defer stopB()

	if _, err := m.Warning("fan out"); err != nil {
		t.Fatalf("show: %v", err)
	}

	for name, reg := range map[string]*prometheus.Registry{"a": regA, "b": regB} {
		families, err := reg.Gather()
		if err != nil {
			t.Fatalf("gather %s: %v", name, err)
		}
		found := false
		for _, f := range families {
			if f.GetName() == "melba_toasts_shown_total" {
				found = true
			}
		}
		if !found {
			t.Errorf("registry %s missing shown counter", name)
		}
	}
}
