package domain

import "time"

// Nombres canonicos de los cinco rasgos del modelo Big Five.
const (
	TraitOpenness          = "Openness"
	TraitConscientiousness = "Conscientiousness"
	TraitExtraversion      = "Extraversion"
	TraitAgreeableness     = "Agreeableness"
	TraitNeuroticism       = "Neuroticism"
)

// TraitNames lista los rasgos en orden canónico de reporte.
var TraitNames = []string{
	TraitOpenness,
	TraitConscientiousness,
	TraitExtraversion,
	TraitAgreeableness,
	TraitNeuroticism,
}

// KnownTrait indica si name es uno de los cinco rasgos canonicos.
func KnownTrait(name string) bool {
	for _, t := range TraitNames {
		if t == name {
			return true
		}
	}
	return false
}

// Question es un item del cuestionario. Datos de referencia inmutables:
// se cargan una vez y el core nunca los muta.
type Question struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Trait     string `json:"trait" yaml:"trait"`
	IsReverse bool   `json:"is_reverse" yaml:"reverse"`
	Position  int    `json:"-" yaml:"position"`
}

// AnsweredQuestion es la evidencia de una respuesta individual. Alimenta
// el reporte de justificación, no se persiste.
type AnsweredQuestion struct {
	QuestionText   string `json:"question_text"`
	Trait          string `json:"trait"`
	Answer         int    `json:"answer"`
	IsReverseCoded bool   `json:"is_reverse_coded"`
	EffectiveScore int    `json:"effective_score"`
}

// TraitScores agrupa los agregados por rasgo de una misma entrega.
// RawMeans queda en escala 1-5 (0 cuando el rasgo no tuvo respuestas);
// Percentages en 0-100 con dos decimales.
type TraitScores struct {
	RawMeans    map[string]float64
	Percentages map[string]float64
}

// PerformancePrediction son los dos compuestos derivados, en escala 0-100
// acotada a [20,100]. Se recalculan en cada entrega, nunca se editan.
type PerformancePrediction struct {
	JobPerformance      float64 `json:"JobPerformance"`
	AcademicPerformance float64 `json:"AcademicPerformance"`
}

// TraitScore es el registro persistido de un rasgo para la entrega más
// reciente de un participante.
type TraitScore struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	Trait         string    `json:"trait"`
	Percentage    float64   `json:"percentage"`
	CreatedAt     time.Time `json:"created_at"`
}

// Participant es el registro vivo por participant_id: a lo sumo uno por id,
// con los derivados de la última entrega reemplazados en cada upsert.
type Participant struct {
	ID            string                `json:"participant_id"`
	DisplayName   string                `json:"display_name"`
	Performance   PerformancePrediction `json:"performance"`
	Justification string                `json:"justification"`
	RoleFits      []string              `json:"role_fits,omitempty"`
	TraitScores   []TraitScore          `json:"trait_scores,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// TraitContribution detalla cuanto aporta un rasgo al fit de un rol.
// Closeness es proximity*100 redondeado a dos decimales.
type TraitContribution struct {
	Trait     string  `json:"trait"`
	Actual    float64 `json:"actual"`
	Target    float64 `json:"target"`
	Weight    float64 `json:"weight"`
	Closeness float64 `json:"closeness"`
}

// RoleFitResult es el fit 0-100 de un rol con sus contribuciones
// ordenadas por closeness descendente.
type RoleFitResult struct {
	Role          string              `json:"role"`
	Score         float64             `json:"score"`
	Contributions []TraitContribution `json:"contributions"`
}

// RoleExplanation es la narrativa por rol, venga del LLM o del fallback
// determinístico.
type RoleExplanation struct {
	Role           string   `json:"role"`
	Explanation    string   `json:"explanation"`
	Strengths      []string `json:"strengths"`
	Challenges     []string `json:"challenges"`
	Counterfactual string   `json:"counterfactual"`
	SkillGaps      []string `json:"skill_gaps"`
}

// SimilarParticipant es un vecino por distancia entre perfiles de rasgos.
type SimilarParticipant struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"name"`
	Distance    float64 `json:"distance"`
}
