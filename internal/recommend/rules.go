// Package recommend scores aptitude quiz answers against a fixed rule table,
// picks the best-matching academic stream, and builds the prompt used to ask
// an LLM for a short explanation of the recommendation.
package recommend

// Stream labels a broad academic or career track.
type Stream string

// Stream labels awarded by the scoring rules, plus the sentinel returned when
// no answer matched any rule.
const (
	StreamScience       Stream = "Science"
	StreamCommerce      Stream = "Commerce"
	StreamArt           Stream = "Art"
	StreamPublicService Stream = "Public Service"
	StreamITIDiploma    Stream = "ITI/Diploma"
	StreamUnknown       Stream = "Unknown"
)

// Streams lists every stream a rule can award points to.
func Streams() []Stream {
	return []Stream{StreamScience, StreamCommerce, StreamArt, StreamPublicService, StreamITIDiploma}
}

// Award is the number of points a rule grants to a single stream.
type Award struct {
	Stream Stream `json:"stream"`
	Points int    `json:"points"`
}

type ruleKey struct {
	question int
	option   int
}

// Rating questions accept options 1..5; the option value is also the number of points.
const (
	minRating = 1
	maxRating = 5
)

// rules is populated once at init and never mutated afterwards.
var rules = buildRules()

func buildRules() map[ruleKey][]Award {
	table := make(map[ruleKey][]Award)

	// Questions 0-7 share the same five-way option layout.
	fiveWay := []Stream{StreamScience, StreamCommerce, StreamArt, StreamPublicService, StreamITIDiploma}
	for q := 0; q <= 7; q++ {
		choice(table, q, fiveWay...)
	}

	// 8: people, data, machines
	choice(table, 8, StreamArt, StreamCommerce, StreamScience)
	// 9: build a model, marketing plan, write/illustrate, organize a charity
	choice(table, 9, StreamScience, StreamCommerce, StreamArt, StreamPublicService)

	rating(table, 10, StreamPublicService) // planning events
	rating(table, 11, StreamArt)           // creating art
	rating(table, 12, StreamPublicService) // helping others
	rating(table, 13, StreamScience)       // experimenting with technology
	rating(table, 14, StreamScience)       // analytical problem solving

	return table
}

// choice maps option i of question q to 2 points for streams[i].
func choice(table map[ruleKey][]Award, q int, streams ...Stream) {
	for option, s := range streams {
		table[ruleKey{q, option}] = []Award{{Stream: s, Points: 2}}
	}
}

// rating maps options 1..5 of question q to that many points for s.
func rating(table map[ruleKey][]Award, q int, s Stream) {
	for v := minRating; v <= maxRating; v++ {
		table[ruleKey{q, v}] = []Award{{Stream: s, Points: v}}
	}
}

// RuleFor returns the awards configured for a (question, option) pair.
// The returned slice is a copy.
func RuleFor(question, option int) ([]Award, bool) {
	awards, ok := rules[ruleKey{question, option}]
	if !ok {
		return nil, false
	}
	out := make([]Award, len(awards))
	copy(out, awards)
	return out, true
}

// IsRatingQuestion reports whether q is a 1-5 rating-scale question.
func IsRatingQuestion(q int) bool {
	return q >= 10 && q <= 14
}
