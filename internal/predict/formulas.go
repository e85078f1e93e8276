package predict

import "math"

// avgTP returns the arithmetic mean of the last n samples in history.
func avgTP(history []float64, n int) float64 {
	var sum float64
	for _, v := range history[len(history)-n:] {
		sum += v
	}
	return sum / float64(n)
}

// emaStep applies one exponential-moving-average update.
func emaStep(history []float64, alpha, lastPredicted float64) float64 {
	x := history[len(history)-1]
	return (1-alpha)*lastPredicted + alpha*x
}

// mInst and mNorm are the gradient terms shared by GAEMA and LPEMA:
// m_inst = |x_n - x_n-1|, m_norm = (sum history) / n^2.
func mInst(history []float64) float64 {
	n := len(history)
	d := history[n-1] - history[n-2]
	if d < 0 {
		d = -d
	}
	return d
}

func mNorm(history []float64) float64 {
	var sum float64
	for _, v := range history {
		sum += v
	}
	return sum / float64(len(history)*len(history))
}

// gaemaStep applies one gradient-adaptive-EMA update, returning the updated
// alpha alongside the new prediction.
func gaemaStep(history []float64, alphaLast, lastPredicted float64) (prediction, alpha float64) {
	mi, mn := mInst(history), mNorm(history)
	alpha = alphaLast
	if mi != 0 {
		alpha = math.Pow(alphaLast, mn/mi)
	}
	x := history[len(history)-1]
	return (1-alpha)*lastPredicted + alpha*x, alpha
}

// lpemaStep applies one low-pass-EMA update.
func lpemaStep(history []float64, lastPredicted float64) float64 {
	mi, mn := mInst(history), mNorm(history)
	alpha := 1.0
	if mi != 0 || mn != 0 {
		alpha = 1.0 / (1.0 + mi/mn)
	}
	x := history[len(history)-1]
	return (1-alpha)*lastPredicted + alpha*x
}

// kamaStep applies one step of Kaufman's adaptive moving average over a
// window of at most the last 10 samples and predictions.
func kamaStep(history, pastPredictions []float64) float64 {
	windowSize := min(10, len(pastPredictions))
	preds := pastPredictions
	if windowSize <= 1 {
		preds = []float64{0, 0}
	}

	numer := math.Abs(history[len(history)-1] - history[len(history)-windowSize])
	var denom float64
	for x := windowSize - 1; x > 0; x-- {
		denom += math.Abs(history[x] - history[x-1])
	}

	e := numer / denom
	sc := math.Pow(e*((2.0/3.0)-(2.0/31.0))+(2.0/31.0), 2.0)

	last := preds[len(preds)-1]
	return last + sc*(history[len(history)-1]-last)
}
