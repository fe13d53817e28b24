package recommend

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Answer is the option selected for one question.
type Answer struct {
	Question int `json:"question"`
	Option   int `json:"option"`
}

// AnswerSet holds at most one answer per question, ordered by question index.
// Build one with ParseAnswers or NewAnswerSet.
type AnswerSet []Answer

// NewAnswerSet sorts answers by question index and rejects duplicates.
func NewAnswerSet(answers ...Answer) (AnswerSet, error) {
	set := make(AnswerSet, len(answers))
	copy(set, answers)
	slices.SortStableFunc(set, byQuestion)
	for i := 1; i < len(set); i++ {
		if set[i].Question == set[i-1].Question {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("answers.%d", set[i].Question),
				Message: "question answered more than once",
			}
		}
	}
	return set, nil
}

// ParseAnswers converts the external representation (question index as
// decimal text, option as OptionValue) into an AnswerSet.
func ParseAnswers(raw map[string]OptionValue) (AnswerSet, error) {
	answers := make([]Answer, 0, len(raw))
	for key, option := range raw {
		q, err := parseIndex(key)
		if err != nil {
			return nil, &ValidationError{
				Field:   "answers",
				Message: fmt.Sprintf("question index %q is not an integer", key),
			}
		}
		answers = append(answers, Answer{Question: q, Option: int(option)})
	}
	return NewAnswerSet(answers...)
}

// ParseAnswerStrings is ParseAnswers for callers that hold options as text.
func ParseAnswerStrings(raw map[string]string) (AnswerSet, error) {
	converted := make(map[string]OptionValue, len(raw))
	for key, value := range raw {
		option, err := parseIndex(value)
		if err != nil {
			return nil, &ValidationError{
				Field:   "answers." + key,
				Message: fmt.Sprintf("option %q is not an integer", value),
			}
		}
		converted[key] = OptionValue(option)
	}
	return ParseAnswers(converted)
}

// ordered returns s sorted by question index, copying only when needed.
func (s AnswerSet) ordered() AnswerSet {
	if slices.IsSortedFunc(s, byQuestion) {
		return s
	}
	out := slices.Clone(s)
	slices.SortStableFunc(out, byQuestion)
	return out
}

func byQuestion(a, b Answer) int {
	return cmp.Compare(a.Question, b.Question)
}

func parseIndex(s string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// OptionValue is a selected option index that decodes from either a JSON
// integer (5, 5.0) or a decimal string ("5").
type OptionValue int

// UnmarshalJSON implements json.Unmarshaler.
func (v *OptionValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return &ValidationError{Field: "answers", Message: "option must not be null"}
	}

	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return &ValidationError{Field: "answers", Message: "option is not a valid string"}
		}
		n, err := parseIndex(s)
		if err != nil {
			return &ValidationError{Field: "answers", Message: fmt.Sprintf("option %q is not an integer", s)}
		}
		*v = OptionValue(n)
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return &ValidationError{Field: "answers", Message: fmt.Sprintf("option %s is not an integer", data)}
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return &ValidationError{Field: "answers", Message: fmt.Sprintf("option %s is not an integer", data)}
	}
	*v = OptionValue(int(f))
	return nil
}
