package scoring

// ErrorDensity is the number of flagged issues per 100 words.
func ErrorDensity(errorCount, wordCount int) float64 {
	if wordCount <= 0 {
		return 0
	}
	return float64(errorCount) / float64(wordCount) * 100
}

// GrammarScore estimates Grammatical Range & Accuracy from error density,
// adjusted for sentence length and task type.
func GrammarScore(density, avgSentenceLength float64, taskType TaskType, errorCount int) float64 {
	var score float64
	switch {
	case density == 0:
		score = 9
	case density <= 1:
		score = 8
	case density <= 2:
		score = 7
	case density <= 4:
		score = 6
	case density <= 6:
		score = 5
	default:
		score = 4
	}

	if avgSentenceLength < 10 {
		score--
	} else if avgSentenceLength > 25 {
		score = min(score+0.5, MaxBand)
	}

	if taskType == TaskLetter && errorCount > 2 {
		score -= 0.5
	}

	return RoundIELTS(Clamp(score))
}

// LexicalScore estimates Lexical Resource from the type-token ratio.
func LexicalScore(ttr float64, taskType TaskType) float64 {
	var score float64
	switch {
	case ttr >= 70:
		score = 9
	case ttr >= 65:
		score = 8
	case ttr >= 58:
		score = 7
	case ttr >= 50:
		score = 6
	case ttr >= 42:
		score = 5
	default:
		score = 4
	}

	if taskType == TaskReport && ttr < 55 {
		score -= 0.5
	}

	return RoundIELTS(Clamp(score))
}

// TaskAchievementScore is a word-count proxy for task achievement.
// Counts from 200 up keep the 7.0 default.
func TaskAchievementScore(wordCount int) float64 {
	score := 7.0
	switch {
	case wordCount < 150:
		score = 5.0
	case wordCount < 200:
		score = 6.0
	}
	return RoundIELTS(score)
}

// CoherenceScore estimates Coherence & Cohesion from sentence statistics.
func CoherenceScore(sentenceCount int, avgSentenceLength float64) float64 {
	score := 6.5
	if sentenceCount < 5 {
		score = 5.5
	} else if avgSentenceLength > 15 && avgSentenceLength < 25 {
		score = 7.0
	}
	return RoundIELTS(score)
}

// TaskScore is the rounded mean of the four criteria.
func TaskScore(ta, cc, lr, gra float64) float64 {
	return RoundIELTS((ta + cc + lr + gra) / 4)
}

// Estimate computes every band from the measured inputs.
func Estimate(in Inputs) Scores {
	density := ErrorDensity(in.ErrorCount, in.WordCount)

	s := Scores{
		TA:           TaskAchievementScore(in.WordCount),
		CC:           CoherenceScore(in.SentenceCount, in.AvgSentenceLength),
		LR:           LexicalScore(in.TypeTokenRatio, in.TaskType),
		GRA:          GrammarScore(density, in.AvgSentenceLength, in.TaskType, in.ErrorCount),
		ErrorDensity: density,
	}
	s.TaskScore = TaskScore(s.TA, s.CC, s.LR, s.GRA)
	return s
}
