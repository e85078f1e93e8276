package predict

import "testing"

const epsilon = 1e-8

func near(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

func TestAvgTP(t *testing.T) {
	got := avgTP([]float64{1, 2, 3, 4, 5}, 3)
	if got != 4.0 {
		t.Fatalf("avgTP = %v, want 4.0", got)
	}
}

func TestEMAStep(t *testing.T) {
	got := emaStep([]float64{1, 2, 3, 4, 5}, 0.1, 4.0)
	if got != 4.1 {
		t.Fatalf("emaStep = %v, want 4.1", got)
	}
}

func TestGAEMAStep(t *testing.T) {
	got, _ := gaemaStep([]float64{1, 2, 3, 4, 5}, 0.1, 4.0)
	if !near(got, 4.251188643, epsilon) {
		t.Fatalf("gaemaStep = %v, want 4.251188643", got)
	}
}

func TestLPEMAStep(t *testing.T) {
	got := lpemaStep([]float64{1, 2, 3, 4, 5}, 4.0)
	if got != 4.375 {
		t.Fatalf("lpemaStep = %v, want 4.375", got)
	}
}

func TestKAMAStep(t *testing.T) {
	history := []float64{15, 20, 110, 60, 50, 60, 70, 80, 90, 100}
	preds := []float64{15, 15, 17.22222222, 58.45679012, 58.55431659, 58.2104803, 58.30411071, 59.05727784, 60.65356491, 63.22673683}
	got := kamaStep(history, preds)
	if !near(got, 66.85678339, epsilon) {
		t.Fatalf("kamaStep = %v, want 66.85678339", got)
	}
}

func TestSimpleRunningAverage(t *testing.T) {
	p := NewSimpleRunningAverage(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		p.Add(v)
	}
	got, ok := p.Predict()
	if !ok || got != 4.0 {
		t.Fatalf("Predict() = %v, %v; want 4.0, true", got, ok)
	}
}

func TestEMAPredictorMatchesScenario(t *testing.T) {
	p := NewEMA(0.1)
	p.seed(4.0)
	p.Add(5.0)
	got, ok := p.Predict()
	if !ok || got != 4.1 {
		t.Fatalf("Predict() = %v, %v; want 4.1, true", got, ok)
	}
}

func TestGAEMAPredictorMatchesScenario(t *testing.T) {
	p := NewGAEMA(0.1)
	p.seed(4.0)
	p.history = []float64{1, 2, 3, 4}
	p.Add(5.0)
	got, ok := p.Predict()
	if !ok || !near(got, 4.251188643, epsilon) {
		t.Fatalf("Predict() = %v, %v; want ~4.251188643, true", got, ok)
	}
}

func TestLastValue(t *testing.T) {
	p := NewLastValue()
	if _, ok := p.Predict(); ok {
		t.Fatalf("expected no prediction before any sample")
	}
	p.Add(42)
	got, ok := p.Predict()
	if !ok || got != 42 {
		t.Fatalf("Predict() = %v, %v; want 42, true", got, ok)
	}
}
