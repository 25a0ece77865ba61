package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"persona-fit/internal/domain"
	"persona-fit/internal/repository"
)

// SubmitResult es la respuesta de una entrega: porcentajes formateados,
// predicción de performance y narrativa.
type SubmitResult struct {
	Scores      map[string]string            `json:"scores"`
	Performance domain.PerformancePrediction `json:"performance"`
	Analysis    string                       `json:"analysis"`
}

// PreviousResult es la lectura del último resultado persistido.
type PreviousResult struct {
	Found       bool
	Scores      map[string]string
	Performance domain.PerformancePrediction
	Analysis    string
}

// CareerFitRole es la vista por rol del endpoint de career fit.
type CareerFitRole struct {
	Score          float64                    `json:"score"`
	Explanation    string                     `json:"explanation"`
	Strengths      []string                   `json:"strengths"`
	Challenges     []string                   `json:"challenges"`
	SkillGaps      []string                   `json:"skill_gaps"`
	Counterfactual string                     `json:"counterfactual"`
	Traits         []domain.TraitContribution `json:"traits"`
}

// RoleRank es una posición del ranking de roles.
type RoleRank struct {
	Role     string  `json:"role"`
	Score    float64 `json:"score"`
	Position int     `json:"position"`
}

// CareerFitResult agrupa la respuesta completa de career fit.
type CareerFitResult struct {
	Found             bool
	Message           string
	Roles             map[string]CareerFitRole
	Ranking           []RoleRank
	TopRecommendation string
}

// AssessmentService orquesta el pipeline: respuestas -> scorer ->
// predictor + role fit -> explicaciones -> persistencia. La persistencia es
// best-effort respecto a la respuesta de scoring: un fallo del store se
// loguea y el participante igual recibe sus resultados calculados.
type AssessmentService struct {
	logger       *zap.Logger
	questions    repository.QuestionRepository
	participants repository.ParticipantRepository
	explanations *ExplanationService
	scorer       TraitScorer
	predictor    PerformancePredictor
	roleFit      RoleFitEngine
}

func NewAssessmentService(
	logger *zap.Logger,
	questions repository.QuestionRepository,
	participants repository.ParticipantRepository,
	explanations *ExplanationService,
) *AssessmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{
		logger:       logger,
		questions:    questions,
		participants: participants,
		explanations: explanations,
	}
}

// Questions devuelve el banco ordenado leyendo siempre el store.
func (s *AssessmentService) Questions(ctx context.Context) ([]domain.Question, error) {
	return s.questions.List(ctx)
}

// Submit procesa una entrega completa para participantID.
func (s *AssessmentService) Submit(ctx context.Context, participantID, name string, rawAnswers map[string]interface{}) (SubmitResult, error) {
	answers, err := s.scorer.ParseAnswers(rawAnswers)
	if err != nil {
		return SubmitResult{}, err
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return SubmitResult{}, err
	}

	scores, answered, err := s.scorer.Score(answers, questions)
	if err != nil {
		return SubmitResult{}, err
	}

	performance := s.predictor.Predict(scores.RawMeans)
	analysis := s.explanations.PersonalityNarrative(ctx, name, scores.Percentages)
	justification := s.explanations.JustificationReport(ctx, scores.Percentages, performance, answered)

	now := time.Now().UTC()
	participant := domain.Participant{
		ID:            participantID,
		DisplayName:   name,
		Performance:   performance,
		Justification: justification,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, trait := range domain.TraitNames {
		pct, ok := scores.Percentages[trait]
		if !ok {
			continue
		}
		participant.TraitScores = append(participant.TraitScores, domain.TraitScore{
			ID:            uuid.NewString(),
			ParticipantID: participantID,
			Trait:         trait,
			Percentage:    pct,
			CreatedAt:     now,
		})
	}

	// Errores inesperados de persistencia no tumban el request: el scoring
	// ya esta calculado y se devuelve igual.
	if err := s.participants.Upsert(ctx, participant); err != nil {
		s.logger.Error("participant upsert failed", zap.Error(err), zap.String("participant_id", participantID))
	}

	return SubmitResult{
		Scores:      formatPercentages(scores.Percentages),
		Performance: performance,
		Analysis:    analysis,
	}, nil
}

// ValidateUser rechaza un id ya registrado con otro nombre (comparación
// case-insensitive, como el flujo original).
func (s *AssessmentService) ValidateUser(ctx context.Context, participantID, name string) (bool, string, error) {
	participant, err := s.participants.Find(ctx, participantID)
	if errors.Is(err, domain.ErrNotFound) {
		return true, "", nil
	}
	if err != nil {
		return false, "", err
	}
	if participant.DisplayName != "" && !strings.EqualFold(participant.DisplayName, name) {
		return false, "ID '" + participantID + "' is already registered with a different name.", nil
	}
	return true, "", nil
}

// PreviousResult devuelve el último resultado persistido. La narrativa no
// se almacena, por lo que analysis vuelve vacío.
func (s *AssessmentService) PreviousResult(ctx context.Context, participantID string) (PreviousResult, error) {
	participant, err := s.participants.Find(ctx, participantID)
	if errors.Is(err, domain.ErrNotFound) {
		return PreviousResult{}, nil
	}
	if err != nil {
		return PreviousResult{}, err
	}

	scores := make(map[string]string, len(participant.TraitScores))
	for _, ts := range participant.TraitScores {
		scores[ts.Trait] = formatPercent(ts.Percentage)
	}

	return PreviousResult{
		Found:       true,
		Scores:      scores,
		Performance: participant.Performance,
		Analysis:    "",
	}, nil
}

// Justification devuelve el reporte persistido, o el texto por defecto si
// el participante existe pero aun no tiene reporte.
func (s *AssessmentService) Justification(ctx context.Context, participantID string) (string, bool, error) {
	participant, err := s.participants.Find(ctx, participantID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if participant.Justification == "" {
		return justificationAbsent, true, nil
	}
	return participant.Justification, true, nil
}

// CareerFit recalcula el fit de roles desde los porcentajes persistidos,
// pide las explicaciones y guarda los scores por rol en el participante.
func (s *AssessmentService) CareerFit(ctx context.Context, participantID string) (CareerFitResult, error) {
	participant, err := s.participants.Find(ctx, participantID)
	if errors.Is(err, domain.ErrNotFound) {
		return CareerFitResult{}, nil
	}
	if err != nil {
		return CareerFitResult{}, err
	}
	if len(participant.TraitScores) == 0 {
		return CareerFitResult{Message: "Trait scores unavailable for this participant"}, nil
	}

	percentages := make(map[string]float64, len(participant.TraitScores))
	for _, ts := range participant.TraitScores {
		percentages[ts.Trait] = ts.Percentage
	}

	results := s.roleFit.ScoreRoleFit(percentages)
	ranked := s.roleFit.Rank(results)
	explanations := s.explanations.RoleExplanations(ctx, participant.DisplayName, percentages, results)

	roles := make(map[string]CareerFitRole, len(results))
	roleFitStrings := make([]string, 0, len(results))
	for _, r := range results {
		expl := explanations[r.Role]
		roles[r.Role] = CareerFitRole{
			Score:          r.Score,
			Explanation:    expl.Explanation,
			Strengths:      expl.Strengths,
			Challenges:     expl.Challenges,
			SkillGaps:      expl.SkillGaps,
			Counterfactual: expl.Counterfactual,
			Traits:         r.Contributions,
		}
		roleFitStrings = append(roleFitStrings, FormatRoleFit(r))
	}

	if err := s.participants.SaveRoleFits(ctx, participantID, roleFitStrings); err != nil {
		s.logger.Warn("save role fits failed", zap.Error(err), zap.String("participant_id", participantID))
	}

	ranking := make([]RoleRank, 0, len(ranked))
	for i, r := range ranked {
		ranking = append(ranking, RoleRank{Role: r.Role, Score: r.Score, Position: i + 1})
	}

	top := ""
	if len(ranked) > 0 {
		top = ranked[0].Role
	}

	return CareerFitResult{
		Found:             true,
		Roles:             roles,
		Ranking:           ranking,
		TopRecommendation: top,
	}, nil
}

// Similar devuelve los k participantes con perfil de rasgos más cercano.
func (s *AssessmentService) Similar(ctx context.Context, participantID string, k int) ([]domain.SimilarParticipant, bool, error) {
	if _, err := s.participants.Find(ctx, participantID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	similar, err := s.participants.FindSimilar(ctx, participantID, k)
	if err != nil {
		return nil, false, err
	}
	return similar, true, nil
}

func formatPercentages(percentages map[string]float64) map[string]string {
	out := make(map[string]string, len(percentages))
	for trait, pct := range percentages {
		out[trait] = formatPercent(pct)
	}
	return out
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
