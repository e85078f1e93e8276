package predict

// LPEMA is the low-pass EMA: alpha is derived purely from the ratio of
// m_inst to m_norm on each step (no persistent alpha state to carry).
type LPEMA struct {
	p       float64
	has     bool
	history []float64
}

// NewLPEMA returns an LPEMA predictor.
func NewLPEMA() *LPEMA { return &LPEMA{} }

func (p *LPEMA) seed(value float64) {
	p.p = value
	p.has = true
}

func (p *LPEMA) Add(sample float64) {
	p.history = pushBounded(p.history, sample, maxHistory)
	if !p.has {
		p.p = sample
		p.has = true
		return
	}
	if len(p.history) < 2 {
		return
	}
	p.p = lpemaStep(p.history, p.p)
}

func (p *LPEMA) Predict() (float64, bool) {
	return p.p, p.has
}
