package service

// Samples are expected once per minute of open time. Observed samples are
// treated as a representative subset of that expected total.
const expectedSampleIntervalMinutes = 1.0

// ExtrapolateUptime converts discrete active/inactive sample counts into a
// continuous uptime/downtime split covering totalDuration minutes. The
// missing sample mass is distributed proportionally across the observed
// counts, so uptime + downtime equals totalDuration by construction. With no
// samples at all, the policy is to assume full downtime.
func ExtrapolateUptime(totalDuration float64, activeCount, inactiveCount int) (uptime, downtime float64) {
	if totalDuration <= 0 {
		return 0, 0
	}

	observed := activeCount + inactiveCount
	if observed == 0 {
		return 0, totalDuration
	}

	expectedSamples := totalDuration / expectedSampleIntervalMinutes
	missingSamples := expectedSamples - float64(observed)
	factor := missingSamples / float64(observed)

	totalActive := float64(activeCount) + float64(activeCount)*factor
	totalInactive := float64(inactiveCount) + float64(inactiveCount)*factor

	uptime = totalDuration * totalActive / (totalActive + totalInactive)
	downtime = totalDuration - uptime
	return uptime, downtime
}
