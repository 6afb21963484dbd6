package scoring

import (
	"fmt"
	"strings"

	"github.com/spigell/hire-matcher/internal/marketplace"
)

const (
	maxQuestions          = 5
	maxTechnicalQuestions = 3

	learningQuestion   = "How do you typically approach learning new technologies?"
	motivationQuestion = "What motivates you to take on this role despite the experience gap?"
	challengeQuestion  = "Tell us about a challenging project you worked on and how you overcame obstacles."
)

// InterviewQuestions builds up to five questions: technical ones from the first three job
// requirements, probes for the first recorded gap, then two behavioural questions.
// Only the first gap is inspected. With three requirements the last behavioural question
// is cut by the limit.
func InterviewQuestions(job *marketplace.Job, strengths, gaps []string) []string {
	questions := make([]string, 0, maxQuestions+1)

	requirements := job.Requirements[:min(len(job.Requirements), maxTechnicalQuestions)]
	for _, requirement := range requirements {
		questions = append(questions, fmt.Sprintf("Can you describe your experience with %s?", requirement))
	}

	if len(gaps) > 0 {
		first := strings.ToLower(gaps[0])
		if strings.Contains(first, "skill") {
			questions = append(questions, learningQuestion)
		}
		if strings.Contains(first, "experience") {
			questions = append(questions, motivationQuestion)
		}
	}

	questions = append(questions,
		challengeQuestion,
		fmt.Sprintf("Why are you interested in joining %s?", job.Company),
	)

	return questions[:min(len(questions), maxQuestions)]
}
