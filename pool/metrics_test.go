package pool

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(m *dto.Metric, want map[string]string) bool {
	found := 0
	for _, lp := range m.GetLabel() {
		if v, ok := want[lp.GetName()]; ok && v == lp.GetValue() {
			found++
		}
	}
	return found == len(want)
}

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New(WithWorkerCount(2), WithName("m"), WithPrometheus(reg))

	for i := range 10 {
		_, _ = Go(p, func(int) error {
			if i%5 == 0 {
				return errors.New("fail")
			}
			return nil
		})
	}
	p.Wait()

	pool := map[string]string{"pool": "m"}
	if got := counterValue(t, reg, "parpool_tasks_submitted_total", pool); got != 10 {
		t.Errorf("expected 10 submitted, got %v", got)
	}
	ok := map[string]string{"pool": "m", "outcome": "ok"}
	if got := counterValue(t, reg, "parpool_tasks_completed_total", ok); got != 8 {
		t.Errorf("expected 8 ok, got %v", got)
	}
	failed := map[string]string{"pool": "m", "outcome": "error"}
	if got := counterValue(t, reg, "parpool_tasks_completed_total", failed); got != 2 {
		t.Errorf("expected 2 errors, got %v", got)
	}

	p.Close()
}

func TestPrometheusMetrics_Dropped(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New(WithWorkerCount(1), WithName("d"), WithPrometheus(reg))

	release, _ := blockWorker(t, poolUnderTest{submit: func(fn func(int) error) (*Future[struct{}], error) {
		return Go(p, fn)
	}})
	for range 3 {
		_, _ = Go(p, func(int) error { return nil })
	}

	closed := make(chan struct{})
	go func() {
		p.Close()
		close(closed)
	}()
	// let Close drain before the blocker finishes
	deadline := time.Now().Add(2 * time.Second)
	for counterValue(t, reg, "parpool_tasks_dropped_total", map[string]string{"pool": "d"}) < 3 {
		if time.Now().After(deadline) {
			release()
			t.Fatal("dropped tasks were never counted")
		}
		time.Sleep(time.Millisecond)
	}
	release()
	<-closed
}

func TestPrometheusMetrics_SameName(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := New(WithWorkerCount(1), WithName("x"), WithPrometheus(reg))
	defer a.Close()
	b := NewPriority(WithWorkerCount(1), WithName("x"), WithPrometheus(reg))
	defer b.Close()

	_, _ = Go(a, func(int) error { return nil })
	_, _ = GoPriority(b, 1, func(int) error { return nil })
	a.Wait()
	b.Wait()

	if got := counterValue(t, reg, "parpool_tasks_submitted_total", map[string]string{"pool": "x"}); got != 2 {
		t.Errorf("expected 2 submitted across both pools, got %v", got)
	}
}
