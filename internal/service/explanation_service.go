package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"persona-fit/internal/domain"
	"persona-fit/internal/llm"
)

// Textos de fallback determinísticos. El boundary con el servicio de texto
// degrada siempre de forma local: ninguna falla del proveedor llega al
// request.
const (
	narrativeFallback     = "AI analysis is currently unavailable. Your trait scores and performance predictions were computed and saved."
	justificationFallback = "Justification could not be generated at this time."
	justificationNoAPIKey = "Text-generation API key not configured; justification unavailable."
	justificationAbsent   = "Justification not available for this participant. Please re-run the assessment."
)

// ExplanationService traduce scores y predicciones en prompts para el LLM
// externo y parsea sus respuestas. Tres formas de llamada: narrativa libre,
// reporte de justificación y explicaciones estructuradas por rol.
type ExplanationService struct {
	client  llm.Client
	roleFit RoleFitEngine
	logger  *zap.Logger
}

func NewExplanationService(client llm.Client, logger *zap.Logger) *ExplanationService {
	if client == nil {
		client = llm.Disabled{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExplanationService{client: client, logger: logger}
}

// PersonalityNarrative pide el análisis libre en markdown. Nunca devuelve
// error: ante cualquier falla responde el texto fijo de fallback.
func (s *ExplanationService) PersonalityNarrative(ctx context.Context, name string, percentages map[string]float64) string {
	prompt := fmt.Sprintf(`Act as an expert Industrial-Organizational Psychologist and Personality Profiler.
Analyze the personality of '%s' based on the following Big Five trait scores (scale 0-100%%):
%s

Your goal is to provide a deep, empathetic, and actionable analysis.
Do not just list the traits one by one; analyze how they interact with each other.

Please structure your response in the following Markdown format:

### The Executive Summary
[A 2-3 sentence "elevator pitch" of their personality archetype. Give them a creative title, like "The Compassionate Architect" or "The Ambitious Driver".]

### Key Strengths (Superpowers)
* **[Strength 1]:** [Description based on high scoring traits]
* **[Strength 2]:** [Description]
* **[Strength 3]:** [Description]

### Potential Blind Spots
[Discuss 2 specific challenges they might face, such as burnout, conflict avoidance, or disorganization, based on their specific score combinations.]

### Performance & Work Style
* **Work Approach:** [How they handle tasks/deadlines]
* **Team Dynamics:** [How they interact with others]

### 3 Tailored Growth Strategies
1.  **[Strategy 1]:** [Actionable advice]
2.  **[Strategy 2]:** [Actionable advice]
3.  **[Strategy 3]:** [Actionable advice]`, name, formatTraitScores(percentages))

	out, err := s.client.Generate(ctx, llm.Request{User: prompt})
	if err != nil {
		if !errors.Is(err, llm.ErrDisabled) {
			s.logger.Warn("personality narrative fallback", zap.Error(err))
		}
		return narrativeFallback
	}
	return out
}

// JustificationReport pide la justificación trait-por-trait citando las
// respuestas como evidencia.
func (s *ExplanationService) JustificationReport(
	ctx context.Context,
	percentages map[string]float64,
	performance domain.PerformancePrediction,
	answered []domain.AnsweredQuestion,
) string {
	var evidence strings.Builder
	for i, q := range answered {
		reverseNote := ""
		if q.IsReverseCoded {
			reverseNote = " (reverse-coded)"
		}
		fmt.Fprintf(&evidence, "%d. %q | Trait: %s | Answer: %d%s -> effective score %d\n",
			i+1, q.QuestionText, q.Trait, q.Answer, reverseNote, q.EffectiveScore)
	}
	if evidence.Len() == 0 {
		evidence.WriteString("No responses provided\n")
	}

	system := "You are an Industrial-Organizational Psychologist providing explainable personality assessments."
	user := fmt.Sprintf(`USER TASK:
- Explain trait-by-trait why the user received each Big Five score.
- Reference patterns in the user's answers and cite example questions in natural language.
- Explain how traits influenced Academic and Job performance predictions.
- Avoid generic descriptions and do not invent data.

DATA CONTEXT:
- Big Five Scores (0-100): %s
- Performance Predictions: JobPerformance=%.2f, AcademicPerformance=%.2f
- Answered Questions:
%s
RESPONSE STRUCTURE (keep this order):
1. Trait-by-Trait Justification
2. Academic Performance Justification
3. Job Performance Justification
4. Plain-English Summary`,
		formatTraitScores(percentages), performance.JobPerformance, performance.AcademicPerformance, evidence.String())

	out, err := s.client.Generate(ctx, llm.Request{System: system, User: user, Temperature: 0.4})
	if err != nil {
		if errors.Is(err, llm.ErrDisabled) {
			return justificationNoAPIKey
		}
		s.logger.Warn("justification fallback", zap.Error(err))
		return justificationFallback
	}
	return out
}

// RoleExplanations pide un array JSON con la narrativa por rol. Respuesta
// inválida o transporte caído sintetizan los mismos campos de forma
// determinística desde las contribuciones.
func (s *ExplanationService) RoleExplanations(
	ctx context.Context,
	name string,
	percentages map[string]float64,
	results []domain.RoleFitResult,
) map[string]domain.RoleExplanation {
	var roleLines strings.Builder
	for _, r := range results {
		fmt.Fprintf(&roleLines, "- %s: %.2f\n", r.Role, r.Score)
	}

	system := "Return only JSON for career role fit."
	user := fmt.Sprintf(`You are a concise career coach. Summarize role fit for %s using the provided scores.

Trait scores (0-100): %s
Role fit scores:
%s
For each role (Software Engineer, Manager, Researcher), produce JSON with keys:
- role: role name
- explanation: 2-3 sentences on why it fits or not (mention strengths and challenges)
- strengths: array of 2 short bullet phrases
- challenges: array of 2 short bullet phrases
- counterfactual: one sentence on which trait change would most increase fit
- skill_gaps: array of 2 skill recommendations to grow fit

Keep total output compact and strictly valid JSON array.`, name, formatTraitScores(percentages), roleLines.String())

	raw, err := s.client.Generate(ctx, llm.Request{System: system, User: user, Temperature: 0.5})
	if err == nil {
		if mapped, ok := parseRoleExplanations(raw); ok {
			return s.fillMissingRoles(mapped, results)
		}
		s.logger.Warn("role explanations unparseable, using deterministic fallback")
	} else if !errors.Is(err, llm.ErrDisabled) {
		s.logger.Warn("role explanations fallback", zap.Error(err))
	}

	return s.fillMissingRoles(map[string]domain.RoleExplanation{}, results)
}

// fillMissingRoles completa todo rol sin explicación del LLM con la versión
// sintetizada desde sus contribuciones.
func (s *ExplanationService) fillMissingRoles(
	mapped map[string]domain.RoleExplanation,
	results []domain.RoleFitResult,
) map[string]domain.RoleExplanation {
	for _, r := range results {
		expl, ok := mapped[r.Role]
		if !ok {
			mapped[r.Role] = s.deterministicExplanation(r)
			continue
		}
		// Campos faltantes en una respuesta parcial también se sintetizan.
		if expl.Counterfactual == "" {
			expl.Counterfactual = s.roleFit.BuildCounterfactualInsight(r.Contributions)
		}
		if len(expl.SkillGaps) == 0 {
			expl.SkillGaps = s.roleFit.SuggestSkillGaps(r.Role, r.Contributions)
		}
		mapped[r.Role] = expl
	}
	return mapped
}

func (s *ExplanationService) deterministicExplanation(r domain.RoleFitResult) domain.RoleExplanation {
	strengths := make([]string, 0, 2)
	for _, c := range r.Contributions {
		strengths = append(strengths, c.Trait)
		if len(strengths) == 2 {
			break
		}
	}
	challenges := make([]string, 0, 2)
	if n := len(r.Contributions); n > 0 {
		start := n - 2
		if start < 0 {
			start = 0
		}
		for _, c := range r.Contributions[start:] {
			challenges = append(challenges, c.Trait)
		}
	}

	return domain.RoleExplanation{
		Role:           r.Role,
		Explanation:    fmt.Sprintf("Role fit at %g%%. Strongest traits: %s.", r.Score, strings.Join(strengths, ", ")),
		Strengths:      strengths,
		Challenges:     challenges,
		Counterfactual: s.roleFit.BuildCounterfactualInsight(r.Contributions),
		SkillGaps:      s.roleFit.SuggestSkillGaps(r.Role, r.Contributions),
	}
}

func parseRoleExplanations(raw string) (map[string]domain.RoleExplanation, bool) {
	cleaned := cleanLLMJSONResponse(raw)
	candidate := extractFirstJSONArray(cleaned)
	if candidate == "" {
		candidate = extractFirstJSONArray(raw)
	}
	if candidate == "" {
		return nil, false
	}

	var items []domain.RoleExplanation
	if err := json.Unmarshal([]byte(candidate), &items); err != nil {
		return nil, false
	}

	mapped := make(map[string]domain.RoleExplanation, len(items))
	for _, item := range items {
		if item.Role == "" {
			continue
		}
		mapped[item.Role] = item
	}
	if len(mapped) == 0 {
		return nil, false
	}
	return mapped, true
}

// formatTraitScores serializa los porcentajes en orden canónico para que el
// prompt sea estable entre ejecuciones.
func formatTraitScores(percentages map[string]float64) string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for _, trait := range domain.TraitNames {
		v, ok := percentages[trait]
		if !ok {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%s: %.2f", trait, v)
	}
	sb.WriteByte('}')
	return sb.String()
}
