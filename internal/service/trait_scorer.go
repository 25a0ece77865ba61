package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"persona-fit/internal/domain"
)

// TraitScorer convierte respuestas Likert crudas (1-5) en agregados por
// rasgo: media cruda y porcentaje 0-100. Los items reverse-coded se
// invierten con 6-raw antes de agregar.
type TraitScorer struct{}

// ParseAnswers valida el payload de respuestas tal como llega por el wire:
// valores "1".."5" como strings (forma del frontend original) o números
// JSON enteros. Cualquier otra cosa es ValidationError.
func (TraitScorer) ParseAnswers(raw map[string]interface{}) (map[string]int, error) {
	answers := make(map[string]int, len(raw))
	for qid, v := range raw {
		var val int
		switch typed := v.(type) {
		case string:
			parsed, err := strconv.Atoi(strings.TrimSpace(typed))
			if err != nil {
				return nil, domain.NewValidationError(qid, fmt.Sprintf("answer %q is not an integer", typed))
			}
			val = parsed
		case float64:
			if typed != math.Trunc(typed) {
				return nil, domain.NewValidationError(qid, fmt.Sprintf("answer %v is not an integer", typed))
			}
			val = int(typed)
		case int:
			val = typed
		default:
			return nil, domain.NewValidationError(qid, "answer is not an integer")
		}
		if val < 1 || val > 5 {
			return nil, domain.NewValidationError(qid, fmt.Sprintf("answer %d outside 1..5", val))
		}
		answers[qid] = val
	}
	return answers, nil
}

// Score agrega las respuestas contra el banco de preguntas. Todo rasgo que
// aparece en el banco se reporta, con 0.0 si no tuvo respuestas; rasgos
// desconocidos se descartan en silencio. Respuestas a ids inexistentes se
// ignoran, igual que en el flujo original.
func (TraitScorer) Score(answers map[string]int, questions []domain.Question) (domain.TraitScores, []domain.AnsweredQuestion, error) {
	effective := make(map[string][]int)
	var answered []domain.AnsweredQuestion

	for _, q := range questions {
		if !domain.KnownTrait(q.Trait) {
			continue
		}
		if _, ok := effective[q.Trait]; !ok {
			effective[q.Trait] = nil
		}
		raw, ok := answers[q.ID]
		if !ok {
			continue
		}
		if raw < 1 || raw > 5 {
			return domain.TraitScores{}, nil, domain.NewValidationError(q.ID, fmt.Sprintf("answer %d outside 1..5", raw))
		}
		val := raw
		if q.IsReverse {
			val = 6 - raw
		}
		effective[q.Trait] = append(effective[q.Trait], val)
		answered = append(answered, domain.AnsweredQuestion{
			QuestionText:   q.Text,
			Trait:          q.Trait,
			Answer:         raw,
			IsReverseCoded: q.IsReverse,
			EffectiveScore: val,
		})
	}

	scores := domain.TraitScores{
		RawMeans:    make(map[string]float64, len(effective)),
		Percentages: make(map[string]float64, len(effective)),
	}
	for trait, values := range effective {
		if len(values) == 0 {
			scores.RawMeans[trait] = 0
			scores.Percentages[trait] = 0
			continue
		}
		sum := 0
		for _, v := range values {
			sum += v
		}
		mean := float64(sum) / float64(len(values))
		scores.RawMeans[trait] = mean
		scores.Percentages[trait] = round2(mean / 5 * 100)
	}

	return scores, answered, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
