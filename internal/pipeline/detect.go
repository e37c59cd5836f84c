package pipeline

import "strings"

type DetectResult struct {
	IsDeliverySchedule bool
	Score              float64
	Reason             string
}

// DetectDeliverySchedule is a cheap rule check that an extracted fragment
// stream actually looks like the vendor's delivery schedule, so unrelated
// PDFs are journaled as skipped instead of parsing to empty documents.
func DetectDeliverySchedule(lines []string) DetectResult {
	score := 0.0
	slipMarkers := 0
	hasTitle, hasRange, hasOutput := false, false, false

	for i := range lines {
		if strings.Contains(lines[i], documentTitle) {
			hasTitle = true
		}
		if _, consumed := matchSlipBoundary(lines, i); consumed > 0 {
			slipMarkers++
		}
		if reDateRange.MatchString(lines[i]) {
			hasRange = true
		}
		if reOutputLabel.MatchString(lines[i]) {
			hasOutput = true
		}
	}

	if hasTitle {
		score += 0.5
	}
	if slipMarkers >= 1 {
		score += 0.3
	}
	if slipMarkers >= 2 {
		score += 0.1
	}
	if hasRange {
		score += 0.2
	}
	if hasOutput {
		score += 0.1
	}
	if score > 1 {
		score = 1
	}

	is := score >= 0.5
	reason := "rules_negative"
	if is {
		reason = "rules_positive"
	}
	return DetectResult{IsDeliverySchedule: is, Score: score, Reason: reason}
}
