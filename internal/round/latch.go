package round

import "time"

// thresholdLatch is an ordered set of timer thresholds, each with a fired bit.
// Bits are only cleared by reset, so every threshold fires at most once per round.
type thresholdLatch struct {
	thresholds []time.Duration // largest first
	fired      []bool
}

func newThresholdLatch(thresholds []time.Duration) *thresholdLatch {
	return &thresholdLatch{
		thresholds: thresholds,
		fired:      make([]bool, len(thresholds)),
	}
}

// reset re-arms every threshold.
func (l *thresholdLatch) reset() {
	for i := range l.fired {
		l.fired[i] = false
	}
}

// cross marks and returns the thresholds that remaining has reached for the first time.
func (l *thresholdLatch) cross(remaining time.Duration) []time.Duration {
	var crossed []time.Duration
	for i, th := range l.thresholds {
		if l.fired[i] || remaining > th {
			continue
		}
		l.fired[i] = true
		crossed = append(crossed, th)
	}
	return crossed
}
