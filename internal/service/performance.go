package service

import (
	"strings"

	"persona-fit/internal/domain"
)

// Tablas de pesos de regresión, fijas. Neuroticism aporta negativo a los
// dos compuestos.
var (
	jobWeights = map[string]float64{
		"conscientiousness": 0.22,
		"neuroticism":       -0.15,
		"extraversion":      0.10,
		"agreeableness":     0.08,
		"openness":          0.05,
	}
	academicWeights = map[string]float64{
		"conscientiousness": 0.28,
		"agreeableness":     0.07,
		"openness":          0.15,
		"neuroticism":       -0.10,
		"extraversion":      0.05,
	}
)

// PerformancePredictor deriva los compuestos de Job y Academic performance
// a partir de las medias crudas 1-5. La desviación se mide contra el punto
// neutro 3.0 de la escala cruda, antes de la conversión a porcentaje; el
// resultado se lleva a 0-100 y se acota a [20,100].
//
// El match de nombres de rasgo es containment de substring en minúsculas,
// tolerando variantes tipo "openness_score" en datos upstream.
type PerformancePredictor struct{}

func (PerformancePredictor) Predict(rawMeans map[string]float64) domain.PerformancePrediction {
	job := 3.0
	acad := 3.0

	for trait, mean := range rawMeans {
		deviation := mean - 3.0
		lower := strings.ToLower(trait)
		for wTrait, weight := range jobWeights {
			if strings.Contains(lower, wTrait) {
				job += deviation * weight
			}
		}
		for wTrait, weight := range academicWeights {
			if strings.Contains(lower, wTrait) {
				acad += deviation * weight
			}
		}
	}

	return domain.PerformancePrediction{
		JobPerformance:      round2(clamp(job/5*100, 20, 100)),
		AcademicPerformance: round2(clamp(acad/5*100, 20, 100)),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
