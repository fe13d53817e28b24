package recommend

// unknownQuestionText is rendered for answers that reference no known question.
const unknownQuestionText = "Unknown question"

var questionTexts = [...]string{
	0:  "How do you prefer to solve problems?",
	1:  "What motivates you most in your career goals?",
	2:  "Which subjects fascinate you most?",
	3:  "What balance do you prefer between stability and innovation?",
	4:  "How do you learn best?",
	5:  "What kind of impact do you want to make in your career?",
	6:  "What are your strongest natural abilities?",
	7:  "How do you define career success?",
	8:  "What do you prefer working with?",
	9:  "Which activity sounds most fun to you?",
	10: "On a scale of 1 to 5: I enjoy planning or organizing events (like a class project or club activity).",
	11: "On a scale of 1 to 5: I enjoy looking at or creating art (painting, drawing, crafting).",
	12: "On a scale of 1 to 5: I enjoy helping or teaching other people (explaining, tutoring, volunteering).",
	13: "On a scale of 1 to 5: I enjoy experimenting with new technology or gadgets (like coding a simple program, building a model robot).",
	14: "On a scale of 1 to 5: I enjoy analyzing problems and finding logical solutions (solving puzzles, troubleshooting, researching).",
}

// Question is one entry of the aptitude quiz.
type Question struct {
	Index       int    `json:"index"`
	Text        string `json:"text"`
	RatingScale bool   `json:"rating_scale"`
}

// QuestionCount is the number of questions in the quiz.
func QuestionCount() int {
	return len(questionTexts)
}

// QuestionText returns the text of question q.
func QuestionText(q int) (string, bool) {
	if q < 0 || q >= len(questionTexts) {
		return "", false
	}
	return questionTexts[q], true
}

// ListQuestions returns the quiz in index order.
func ListQuestions() []Question {
	out := make([]Question, len(questionTexts))
	for i, text := range questionTexts {
		out[i] = Question{Index: i, Text: text, RatingScale: IsRatingQuestion(i)}
	}
	return out
}
