package evaluation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const maxCriterionScore = 10

var (
	ErrScoreBlockMissing = errors.New("score block missing from evaluation")
	ErrInvalidScores     = errors.New("invalid scores in evaluation")
)

var (
	scorePattern = regexp.MustCompile(`(\d+)/10`)
	blockPattern = regexp.MustCompile(`(?ms)^\s*` + regexp.QuoteMeta(scoresBegin) + `\s*$(.*?)^\s*` + regexp.QuoteMeta(scoresEnd) + `\s*$`)
)

// ExtractScore sums every "<n>/10" found anywhere in text and doubles it.
// Text without a match scores 0. Values are taken at face value, so "11/10"
// counts as 11.
func ExtractScore(text string) int {
	total := 0
	for _, n := range scoreValues(text) {
		total += n
	}
	return total * 2
}

// ParseScoreBlock reads the score only from the delimited SCORES block and
// requires one in-range score per criterion.
func ParseScoreBlock(text string) (int, error) {
	m := blockPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, ErrScoreBlockMissing
	}
	values := scoreValues(m[1])
	if len(values) != len(Criteria) {
		return 0, fmt.Errorf("%w: want %d scores, found %d", ErrInvalidScores, len(Criteria), len(values))
	}
	total := 0
	for _, n := range values {
		if n > maxCriterionScore {
			return 0, fmt.Errorf("%w: %d/10 out of range", ErrInvalidScores, n)
		}
		total += n
	}
	return total * 2, nil
}

func scoreValues(text string) []int {
	matches := scorePattern.FindAllStringSubmatch(text, -1)
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
