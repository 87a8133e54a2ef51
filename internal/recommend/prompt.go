package recommend

import (
	"fmt"
	"strings"

	"github.com/abhisek/pmoquiz/internal/quiz"
)

const systemPrompt = `You are an expert PMO (Project Management Office) consultant with a knack for delivering simple, powerful advice.`

func buildUserMessage(scores, maxScores quiz.Scores) string {
	var b strings.Builder

	b.WriteString("A user has completed a PMO maturity quiz. Their scores are as follows:\n")
	for _, c := range quiz.Categories() {
		fmt.Fprintf(&b, "- %s: %d out of %d", c, scores[c], maxScores[c])
		if maxScores[c] > 0 && scores[c] >= maxScores[c] {
			b.WriteString(" (maximum score)")
		}
		b.WriteString("\n")
	}

	b.WriteString(`
Your task is to provide concise, actionable feedback for each category, designed to spark internal conversations and guide their next move.

For each category, provide the following in a single string, with each part on a new line:
1. **Insight:** A single, sharp sentence summarizing their maturity.
2. **Follow-up Questions:** One or two thought-provoking questions for their team to discuss.
3. **Next Step:** The single most impactful action they can take next.

Use markdown bold for the labels (e.g., "**Insight:**").

IMPORTANT: If a user scores the maximum for a category, frame the feedback as a "Next Level" challenge. For example, the "Follow-up Questions" could be about leveraging AI, and the "Next Step" could be a cutting-edge practice. Do not just congratulate them.

Format your entire response as a JSON object where keys are the category names.
`)
	return b.String()
}
