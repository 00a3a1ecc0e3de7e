package services

import (
	"fmt"
	"strings"

	"github.com/careerforge/backend/internal/models"
)

// Prompt templates and canned fallback content for the interview flow.
// Data only, no logic.

const openingQuestionPrompt = `You are an experienced %s interviewer.
Generate ONE opening interview question for a candidate applying for the role of "%s".
%s
Return only the question text, no numbering, no commentary.`

const evaluateAnswerPrompt = `You are an experienced interviewer evaluating a candidate's answer.

Question: %s

Candidate's answer: %s

Evaluate the answer. Respond with valid JSON only, exactly this shape:
{
  "score": <integer 0-100>,
  "feedback": "<short constructive feedback, 1-2 sentences>",
  "strengths": ["<strength>", "<strength>"],
  "improvements": ["<improvement>", "<improvement>"]
}

Rules:
- score reflects relevance, depth, and clarity
- 2-3 strengths and 2-3 improvements, each a short phrase
- Return ONLY the JSON object.`

const nextQuestionPrompt = `You are an experienced %s interviewer running a mock interview for the role of "%s".
%s

Conversation so far:
%s

Generate the NEXT interview question. It must not repeat earlier questions and should
build on the candidate's previous answers where natural.
Return only the question text, no numbering, no commentary.`

const sessionSummaryPrompt = `You are an interview coach. A candidate just finished a %s mock interview for the role of "%s" with an overall score of %d/100.

Transcript:
%s

Write a short summary (4-6 sentences) covering overall performance, key strengths,
main improvement areas, and a closing line of encouragement. Plain text only.`

func modeGuidance(mode models.InterviewMode) string {
	switch mode {
	case models.ModeTechnical:
		return "Focus on coding, system architecture, and engineering trade-offs."
	case models.ModeBehavioral:
		return "Focus on past experience; questions should invite STAR-method answers (Situation, Task, Action, Result)."
	default:
		return "Focus on motivation, cultural fit, and career expectations."
	}
}

func formatTranscript(s *models.InterviewSession) string {
	var b strings.Builder
	for i, q := range s.Questions {
		fmt.Fprintf(&b, "Q%d: %s\n", i+1, q)
		if i < len(s.Answers) {
			fmt.Fprintf(&b, "A%d (score %d): %s\n", i+1, s.Answers[i].Score, s.Answers[i].Text)
		}
	}
	return b.String()
}

// fallbackEvaluation is substituted when the evaluation call fails; a turn
// never aborts because the model did.
func fallbackEvaluation() AnswerEvaluation {
	return AnswerEvaluation{
		Score:        75,
		Feedback:     "Good answer. You addressed the question clearly and structured your response well.",
		Strengths:    []string{"Clear communication", "Relevant to the question"},
		Improvements: []string{"Add a concrete example", "Quantify the impact where possible"},
	}
}

var fallbackQuestions = map[models.InterviewMode][]string{
	models.ModeTechnical: {
		"Walk me through the architecture of a system you designed recently. What were the main trade-offs?",
		"How would you debug a service whose latency suddenly doubled in production?",
		"Explain the difference between optimistic and pessimistic locking. When would you use each?",
		"How do you approach designing an API that other teams will depend on?",
		"Describe a time you had to optimize a slow database query. What did you do?",
	},
	models.ModeBehavioral: {
		"Tell me about a time you disagreed with a teammate. How did you resolve it?",
		"Describe a project that failed. What did you learn from it?",
		"Tell me about a time you had to deliver under a tight deadline.",
		"Give an example of when you took ownership of a problem outside your responsibilities.",
	},
	models.ModeHR: {
		"Why are you interested in this role?",
		"Where do you see yourself in five years?",
		"What kind of work environment helps you do your best work?",
		"What are your salary expectations, and how did you arrive at them?",
	},
}

func fallbackQuestion(mode models.InterviewMode, index int) string {
	list, ok := fallbackQuestions[mode]
	if !ok {
		list = fallbackQuestions[models.ModeHR]
	}
	return list[index%len(list)]
}

func fallbackSummary(mode models.InterviewMode, overallScore int) string {
	return fmt.Sprintf(
		"You completed the %s interview with an overall score of %d/100. "+
			"You communicated clearly and stayed on topic throughout the session. "+
			"To improve further, back up your answers with concrete examples and measurable results. "+
			"Keep practicing - consistency is what turns good interviews into offers.",
		mode, overallScore)
}
