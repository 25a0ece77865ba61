package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"persona-fit/internal/domain"
	"persona-fit/internal/llm"
)

func sampleResults() []domain.RoleFitResult {
	engine := RoleFitEngine{}
	return engine.ScoreRoleFit(map[string]float64{
		domain.TraitOpenness:          80,
		domain.TraitConscientiousness: 60,
		domain.TraitExtraversion:      55,
		domain.TraitAgreeableness:     70,
		domain.TraitNeuroticism:       40,
	})
}

func TestPersonalityNarrativeSuccess(t *testing.T) {
	mock := &llm.MockClient{Response: "### The Executive Summary\nGreat profile."}
	svc := NewExplanationService(mock, nil)

	out := svc.PersonalityNarrative(context.Background(), "Ada", map[string]float64{domain.TraitOpenness: 92})
	if out != mock.Response {
		t.Fatalf("expected raw model output, got %q", out)
	}
	if mock.Calls != 1 {
		t.Fatalf("expected one call, got %d", mock.Calls)
	}
	if !strings.Contains(mock.LastReq.User, "'Ada'") {
		t.Fatalf("prompt should include participant name: %q", mock.LastReq.User)
	}
	if !strings.Contains(mock.LastReq.User, "Openness: 92.00") {
		t.Fatalf("prompt should include formatted scores: %q", mock.LastReq.User)
	}
}

func TestPersonalityNarrativeFallsBackOnError(t *testing.T) {
	mock := &llm.MockClient{Err: errors.New("upstream 500")}
	svc := NewExplanationService(mock, nil)

	out := svc.PersonalityNarrative(context.Background(), "Ada", nil)
	if out != narrativeFallback {
		t.Fatalf("expected narrative fallback, got %q", out)
	}
}

func TestPersonalityNarrativeDisabledClient(t *testing.T) {
	svc := NewExplanationService(llm.Disabled{}, nil)
	out := svc.PersonalityNarrative(context.Background(), "Ada", nil)
	if out != narrativeFallback {
		t.Fatalf("expected narrative fallback without key, got %q", out)
	}
}

func TestJustificationReportUsesLowTemperature(t *testing.T) {
	mock := &llm.MockClient{Response: "Trait-by-trait report"}
	svc := NewExplanationService(mock, nil)

	answered := []domain.AnsweredQuestion{
		{QuestionText: "I don't talk a lot.", Trait: domain.TraitExtraversion, Answer: 2, IsReverseCoded: true, EffectiveScore: 4},
	}
	out := svc.JustificationReport(context.Background(), map[string]float64{domain.TraitExtraversion: 80},
		domain.PerformancePrediction{JobPerformance: 51.4, AcademicPerformance: 53.6}, answered)
	if out != mock.Response {
		t.Fatalf("expected raw model output, got %q", out)
	}
	if mock.LastReq.Temperature != 0.4 {
		t.Fatalf("expected temperature 0.4, got %v", mock.LastReq.Temperature)
	}
	if !strings.Contains(mock.LastReq.User, "(reverse-coded)") {
		t.Fatalf("evidence should mark reverse-coded items: %q", mock.LastReq.User)
	}
	if !strings.Contains(mock.LastReq.User, "JobPerformance=51.40") {
		t.Fatalf("prompt should include performance values: %q", mock.LastReq.User)
	}
}

func TestJustificationReportDisabledClient(t *testing.T) {
	svc := NewExplanationService(llm.Disabled{}, nil)
	out := svc.JustificationReport(context.Background(), nil, domain.PerformancePrediction{}, nil)
	if out != justificationNoAPIKey {
		t.Fatalf("expected no-api-key text, got %q", out)
	}
}

func TestJustificationReportTransportError(t *testing.T) {
	svc := NewExplanationService(&llm.MockClient{Err: errors.New("timeout")}, nil)
	out := svc.JustificationReport(context.Background(), nil, domain.PerformancePrediction{}, nil)
	if out != justificationFallback {
		t.Fatalf("expected justification fallback, got %q", out)
	}
}

func TestRoleExplanationsParsesFencedJSON(t *testing.T) {
	mock := &llm.MockClient{Response: "```json\n" + `[{"role":"Manager","explanation":"Strong people focus.","strengths":["empathy","drive"],"challenges":["detail"],"counterfactual":"Raise conscientiousness.","skill_gaps":["Prioritization"]}]` + "\n```"}
	svc := NewExplanationService(mock, nil)

	out := svc.RoleExplanations(context.Background(), "Ada", nil, sampleResults())
	if len(out) != len(domain.RoleBlueprints) {
		t.Fatalf("expected explanation per role, got %d", len(out))
	}
	manager := out["Manager"]
	if manager.Explanation != "Strong people focus." {
		t.Fatalf("expected model explanation kept, got %q", manager.Explanation)
	}
	if manager.Counterfactual != "Raise conscientiousness." {
		t.Fatalf("expected model counterfactual kept, got %q", manager.Counterfactual)
	}
	// Los roles que el modelo omitio se sintetizan
	se := out["Software Engineer"]
	if se.Explanation == "" || se.Counterfactual == "" || len(se.SkillGaps) == 0 {
		t.Fatalf("expected synthesized explanation for missing role: %+v", se)
	}
	if mock.LastReq.Temperature != 0.5 {
		t.Fatalf("expected temperature 0.5, got %v", mock.LastReq.Temperature)
	}
}

func TestRoleExplanationsFillsPartialFields(t *testing.T) {
	mock := &llm.MockClient{Response: `[{"role":"Researcher","explanation":"Curious profile."}]`}
	svc := NewExplanationService(mock, nil)

	out := svc.RoleExplanations(context.Background(), "Ada", nil, sampleResults())
	res := out["Researcher"]
	if res.Explanation != "Curious profile." {
		t.Fatalf("expected model explanation kept, got %q", res.Explanation)
	}
	if res.Counterfactual == "" {
		t.Fatalf("expected counterfactual synthesized for partial response")
	}
	if len(res.SkillGaps) == 0 {
		t.Fatalf("expected skill gaps synthesized for partial response")
	}
}

func TestRoleExplanationsMalformedResponse(t *testing.T) {
	mock := &llm.MockClient{Response: "sorry, I cannot produce JSON today"}
	svc := NewExplanationService(mock, nil)

	results := sampleResults()
	out := svc.RoleExplanations(context.Background(), "Ada", nil, results)
	if len(out) != len(results) {
		t.Fatalf("expected deterministic explanation per role, got %d", len(out))
	}
	for _, r := range results {
		expl, ok := out[r.Role]
		if !ok {
			t.Fatalf("missing explanation for %s", r.Role)
		}
		if !strings.Contains(expl.Explanation, "Role fit at ") {
			t.Fatalf("expected deterministic explanation, got %q", expl.Explanation)
		}
		if len(expl.Strengths) == 0 || len(expl.SkillGaps) == 0 {
			t.Fatalf("deterministic explanation incomplete: %+v", expl)
		}
	}
}

func TestRoleExplanationsDisabledClient(t *testing.T) {
	svc := NewExplanationService(llm.Disabled{}, nil)
	results := sampleResults()
	out := svc.RoleExplanations(context.Background(), "Ada", nil, results)
	if len(out) != len(results) {
		t.Fatalf("expected deterministic explanations, got %d", len(out))
	}
}

func TestFormatTraitScoresCanonicalOrder(t *testing.T) {
	got := formatTraitScores(map[string]float64{
		domain.TraitNeuroticism: 30,
		domain.TraitOpenness:    90,
	})
	if got != "{Openness: 90.00, Neuroticism: 30.00}" {
		t.Fatalf("unexpected formatting: %q", got)
	}
}
