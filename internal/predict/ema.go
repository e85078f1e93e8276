package predict

// maxHistory bounds the raw-sample window the EMA family keeps for
// computing m_inst/m_norm; the core's predictor state is bounded (spec:
// "single previous value plus α for the EMA family"), so only a short tail
// of recent samples is retained rather than the whole stream.
const maxHistory = 16

// EMA is the exponential moving average predictor: p <- (1-alpha)*p + alpha*x.
type EMA struct {
	alpha   float64
	p       float64
	has     bool
	history []float64
}

// NewEMA returns an EMA predictor with the given smoothing factor.
func NewEMA(alpha float64) *EMA { return &EMA{alpha: alpha} }

// seed lets a predictor be constructed with an explicit starting
// prediction, matching scenarios that specify p_last directly.
func (p *EMA) seed(value float64) {
	p.p = value
	p.has = true
}

func (p *EMA) Add(sample float64) {
	p.history = pushBounded(p.history, sample, maxHistory)
	if !p.has {
		p.p = sample
		p.has = true
		return
	}
	p.p = emaStep(p.history, p.alpha, p.p)
}

func (p *EMA) Predict() (float64, bool) {
	return p.p, p.has
}

func pushBounded(history []float64, sample float64, max int) []float64 {
	history = append(history, sample)
	if len(history) > max {
		history = history[len(history)-max:]
	}
	return history
}
