// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package importer

import "strings"

// delimiterCandidates is the fixed list tried by Detect, in tie-break order.
var delimiterCandidates = []string{"|", ":", ";", ";;;", ";;", "\t", ","}

// detectSampleSize is how many data lines Detect inspects.
const detectSampleSize = 3

// Detect guesses the field delimiter of a dump. Each candidate is scored by
// how many of the first three non-comment, non-blank lines it splits into at
// least three parts; the highest score wins, ties resolved by candidate list
// order. Returns ok=false when every candidate scores zero.
func Detect(content string) (delimiter string, ok bool) {
	var sample []string
	for _, raw := range splitLines(content) {
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		sample = append(sample, text)
		if len(sample) == detectSampleSize {
			break
		}
	}

	best, bestScore := "", 0
	for _, cand := range delimiterCandidates {
		score := 0
		for _, line := range sample {
			if len(strings.Split(line, cand)) >= 3 {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = cand, score
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return best, true
}
