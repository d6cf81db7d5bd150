package steps

import (
	"regexp"
	"strings"

	types "github.com/aulagen/aulagen-backend/internal/domain"
)

// The generation prompt instructs the model to emit exactly this shape:
//
//	Q: <question>? Opt1: <a> Opt2: <b> Opt3: <c> Opt4: <d>
//
// on a single line. Captures stop at newlines, and the question capture ends
// right before the literal "?".
var quizPattern = regexp.MustCompile(`Q: (.*)\? Opt1: (.*) Opt2: (.*) Opt3: (.*) Opt4: (.*)`)

// ParseQuiz extracts a question and four options from the LLM's
// semi-structured quiz text. Matching is all-or-nothing: any deviation from
// the expected pattern yields an all-empty QuizQuestion and ok=false rather
// than an error, so callers decide what a degraded parse means for them.
func ParseQuiz(raw string) (types.QuizQuestion, bool) {
	m := quizPattern.FindStringSubmatch(raw)
	if m == nil {
		return types.QuizQuestion{}, false
	}
	q := types.QuizQuestion{Question: strings.TrimSpace(m[1]) + "?"}
	for i := 0; i < 4; i++ {
		q.Options[i] = strings.TrimSpace(m[i+2])
	}
	return q, true
}
