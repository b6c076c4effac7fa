package evaluation

import (
	"fmt"
	"strings"
)

// Criteria are scored out of 10 each.
var Criteria = []string{
	"Natural tone & slang usage",
	"Progressive upselling",
	"Emotional connection",
	"Pricing confidence",
	"Handling objections",
}

const (
	scoresBegin = "SCORES:"
	scoresEnd   = "END SCORES"
)

// Prompt builds the single grading request for a finished transcript.
func Prompt(transcript string) string {
	var b strings.Builder
	b.WriteString("You are a trainer at an OnlyFans agency. The following is a chat between a chatter and a fan.\n")
	b.WriteString("Rate the chatter on the following out of 10:\n")
	for _, c := range Criteria {
		b.WriteString("- " + c + "\n")
	}
	b.WriteString("\nThen give 3 suggestions for improvement in a professional but helpful tone.\n\n")
	b.WriteString("Finish your answer with the scores repeated in exactly this block, one criterion per line:\n")
	b.WriteString(scoresBegin + "\n")
	for _, c := range Criteria {
		fmt.Fprintf(&b, "%s: <score>/10\n", c)
	}
	b.WriteString(scoresEnd + "\n\n")
	b.WriteString("Conversation:\n")
	b.WriteString(transcript)
	b.WriteString("\n")
	return b.String()
}
