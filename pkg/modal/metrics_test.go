package modal

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegisterer(reg), WithSubsystem("test"))
	c := NewController(NewRegistry(WithMetrics(m)))

	a := c.ShowModal(nil, nil)
	b := c.ShowModal(nil, nil, DestroyOnClose(true))
	c.ShowModal(nil, nil)

	a.Hide()
	b.Hide()
	c.HideModal("")

	if got := testutil.ToFloat64(m.shownTotal); got != 3 {
		t.Errorf("shown = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.hiddenTotal); got != 2 {
		t.Errorf("hidden = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.destroyedTotal); got != 1 {
		t.Errorf("destroyed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.active); got != 2 {
		t.Errorf("active = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.open); got != 1 {
		t.Errorf("open = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.diagnostics.WithLabelValues("hide")); got != 1 {
		t.Errorf("diagnostics{op=hide} = %v, want 1", got)
	}

	count, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count == 0 {
		t.Error("expected registered metrics")
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.shown()
	m.hidden()
	m.destroyed(2)
	m.diagnostic("add")
	m.track(State{}, State{"a": {}})
}

func TestMetrics_SharedBetweenRegistries(t *testing.T) {
	m := NewMetrics(WithRegisterer(prometheus.NewRegistry()))
	a := NewController(NewRegistry(WithMetrics(m)))
	b := NewController(NewRegistry(WithMetrics(m)))

	a.ShowModal(nil, nil)
	ha := a.ShowModal(nil, nil)
	hb := b.ShowModal(nil, nil)

	if got := testutil.ToFloat64(m.active); got != 3 {
		t.Fatalf("active = %v, want 3 across both registries", got)
	}

	ha.Hide()
	if got := testutil.ToFloat64(m.open); got != 2 {
		t.Errorf("open = %v, want 2", got)
	}

	hb.Destroy()
	b.DestroyModalsByRootID(a.RootID())
	if got := testutil.ToFloat64(m.active); got != 2 {
		t.Errorf("active = %v, want 2", got)
	}

	a.DestroyModalsByRootID(a.RootID())
	if got := testutil.ToFloat64(m.active); got != 0 {
		t.Errorf("active = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.open); got != 0 {
		t.Errorf("open = %v, want 0", got)
	}
}
