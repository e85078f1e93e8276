package predict

// KAMA is Kaufman's adaptive moving average, using a window of at most the
// last 10 samples and predictions. It is not part of the core's required
// config enum but is wired in as an additional selectable predictor, since
// the original source implements and exercises it.
type KAMA struct {
	p           float64
	has         bool
	history     []float64
	predictions []float64
}

// NewKAMA returns a KAMA predictor.
func NewKAMA() *KAMA { return &KAMA{} }

func (p *KAMA) Add(sample float64) {
	p.history = pushBounded(p.history, sample, 10)
	if !p.has {
		p.p = sample
		p.has = true
		p.predictions = pushBounded(p.predictions, p.p, 10)
		return
	}
	if len(p.history) >= 2 {
		p.p = kamaStep(p.history, p.predictions)
	}
	p.predictions = pushBounded(p.predictions, p.p, 10)
}

func (p *KAMA) Predict() (float64, bool) {
	return p.p, p.has
}
