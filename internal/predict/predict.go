// Package predict implements the throughput predictors shared by the ABR
// selectors: last-value, simple running average, EMA, gradient adaptive EMA,
// low-pass EMA, and Kaufman's adaptive moving average. Every predictor
// satisfies Predictor: add a sample, then ask for the current estimate.
// Viewport prediction lives in camtrace.PosePredictor.
package predict

import "fmt"

// Predictor is the shared contract for throughput predictors.
// Predict reports ok=false until enough history has accumulated.
type Predictor interface {
	Add(sample float64)
	Predict() (value float64, ok bool)
}

// Kind enumerates the configured throughput predictor.
type Kind string

const (
	KindLast  Kind = "last"
	KindAvg   Kind = "avg"
	KindEMA   Kind = "ema"
	KindGAEMA Kind = "gaema"
	KindLPEMA Kind = "lpema"
	KindKAMA  Kind = "kama"
)

// simpleRunningAverageWindow is the core's fixed window size for the
// average predictor (spec.md §4.5: "ring buffer of N, N=3").
const simpleRunningAverageWindow = 3

// New builds a Predictor for the given configuration. alpha parameterises
// the EMA and GAEMA variants; it is ignored by the others.
func New(kind Kind, alpha float64) (Predictor, error) {
	switch kind {
	case KindLast:
		return NewLastValue(), nil
	case KindAvg:
		return NewSimpleRunningAverage(simpleRunningAverageWindow), nil
	case KindEMA:
		return NewEMA(alpha), nil
	case KindGAEMA:
		return NewGAEMA(alpha), nil
	case KindLPEMA:
		return NewLPEMA(), nil
	case KindKAMA:
		return NewKAMA(), nil
	default:
		return nil, fmt.Errorf("unknown predictor kind %q", kind)
	}
}
