package predict

// LastValue predicts the most recently observed sample.
type LastValue struct {
	last float64
	has  bool
}

// NewLastValue returns a LastValue predictor with no history.
func NewLastValue() *LastValue { return &LastValue{} }

func (p *LastValue) Add(sample float64) {
	p.last = sample
	p.has = true
}

func (p *LastValue) Predict() (float64, bool) {
	return p.last, p.has
}
