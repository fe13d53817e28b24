package recommend

// Tally accumulates points per stream. Streams keep the order in which they
// first received points, which decides ties.
type Tally struct {
	order  []Stream
	scores map[Stream]int
}

func newTally() *Tally {
	return &Tally{scores: make(map[Stream]int)}
}

func (t *Tally) add(s Stream, points int) {
	if _, seen := t.scores[s]; !seen {
		t.order = append(t.order, s)
		t.scores[s] = 0
	}
	t.scores[s] += points
}

// Score returns the points accumulated for s.
func (t *Tally) Score(s Stream) int {
	return t.scores[s]
}

// Len returns the number of streams that received an award.
func (t *Tally) Len() int {
	return len(t.order)
}

// Streams returns the tallied streams in first-insertion order.
func (t *Tally) Streams() []Stream {
	out := make([]Stream, len(t.order))
	copy(out, t.order)
	return out
}

// Scores returns a copy of the per-stream totals.
func (t *Tally) Scores() map[Stream]int {
	out := make(map[Stream]int, len(t.scores))
	for s, p := range t.scores {
		out[s] = p
	}
	return out
}

// Winner returns the first stream, in insertion order, holding the maximum
// score, or StreamUnknown when the tally is empty.
func (t *Tally) Winner() Stream {
	if len(t.order) == 0 {
		return StreamUnknown
	}
	best := t.order[0]
	for _, s := range t.order[1:] {
		if t.scores[s] > t.scores[best] {
			best = s
		}
	}
	return best
}

// Score sums the rule awards matched by answers. Answers with no rule for
// their (question, option) pair contribute nothing.
func Score(answers AnswerSet) *Tally {
	tally := newTally()
	for _, a := range answers.ordered() {
		for _, award := range rules[ruleKey{a.Question, a.Option}] {
			tally.add(award.Stream, award.Points)
		}
	}
	return tally
}

// RecommendStream returns the best-matching stream for answers.
func RecommendStream(answers AnswerSet) Stream {
	return Score(answers).Winner()
}
