package predict

// GAEMA is the gradient-adaptive EMA: alpha is recomputed from the ratio of
// m_norm to m_inst before each EMA step, letting the smoothing factor widen
// when the signal is volatile.
type GAEMA struct {
	alpha   float64
	p       float64
	has     bool
	history []float64
}

// NewGAEMA returns a GAEMA predictor seeded with the initial smoothing
// factor alpha0 (QUETRA's default is 0.1).
func NewGAEMA(alpha0 float64) *GAEMA {
	return &GAEMA{alpha: alpha0}
}

func (p *GAEMA) seed(value float64) {
	p.p = value
	p.has = true
}

func (p *GAEMA) Add(sample float64) {
	p.history = pushBounded(p.history, sample, maxHistory)
	if !p.has {
		p.p = sample
		p.has = true
		return
	}
	if len(p.history) < 2 {
		return
	}
	p.p, p.alpha = gaemaStep(p.history, p.alpha, p.p)
}

func (p *GAEMA) Predict() (float64, bool) {
	return p.p, p.has
}
