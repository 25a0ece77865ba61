package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"persona-fit/internal/domain"
)

// MaintainBalanceMessage se usa cuando no hay contribuciones que corregir.
const MaintainBalanceMessage = "Maintain current balance to keep this fit strong."

// RoleFitEngine compara porcentajes de rasgos (0-100) contra los
// blueprints de rol y produce un fit 0-100 por rol con su desglose.
type RoleFitEngine struct{}

// ScoreRoleFit devuelve un resultado por blueprint, en el orden de la tabla
// de roles. proximity = max(0, 1 - |actual-target|/100); el score es la
// suma ponderada normalizada por el peso total, acotada y redondeada a dos
// decimales. Las contribuciones quedan ordenadas por closeness descendente.
func (RoleFitEngine) ScoreRoleFit(traitPercentages map[string]float64) []domain.RoleFitResult {
	results := make([]domain.RoleFitResult, 0, len(domain.RoleBlueprints))

	for _, bp := range domain.RoleBlueprints {
		totalWeight := 0.0
		for _, tt := range bp.TraitTargets {
			totalWeight += tt.Weight
		}
		if totalWeight == 0 {
			totalWeight = 1.0
		}

		weightedSum := 0.0
		contributions := make([]domain.TraitContribution, 0, len(bp.TraitTargets))
		for _, tt := range bp.TraitTargets {
			actual := traitPercentages[tt.Trait]
			proximity := math.Max(0, 1-math.Abs(actual-tt.Target)/100)
			weightedSum += proximity * tt.Weight
			contributions = append(contributions, domain.TraitContribution{
				Trait:     tt.Trait,
				Actual:    round2(actual),
				Target:    tt.Target,
				Weight:    tt.Weight,
				Closeness: round2(proximity * 100),
			})
		}

		sort.SliceStable(contributions, func(i, j int) bool {
			return contributions[i].Closeness > contributions[j].Closeness
		})

		results = append(results, domain.RoleFitResult{
			Role:          bp.Name,
			Score:         round2(clamp(weightedSum/totalWeight*100, 0, 100)),
			Contributions: contributions,
		})
	}

	return results
}

// Rank ordena una copia de results por score descendente; los empates
// conservan el orden de la tabla de roles (sort estable).
func (RoleFitEngine) Rank(results []domain.RoleFitResult) []domain.RoleFitResult {
	ranked := make([]domain.RoleFitResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// SuggestSkillGaps elige hasta dos habilidades a desarrollar partiendo de
// los rasgos con menor aporte; si la tabla de gaps se agota completa con la
// lista genérica de skills del rol.
func (RoleFitEngine) SuggestSkillGaps(role string, contributions []domain.TraitContribution) []string {
	ordered := make([]domain.TraitContribution, len(contributions))
	copy(ordered, contributions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Closeness < ordered[j].Closeness
	})

	skills := make([]string, 0, 2)
	appendSkill := func(s string) bool {
		for _, have := range skills {
			if have == s {
				return len(skills) >= 2
			}
		}
		skills = append(skills, s)
		return len(skills) >= 2
	}

	gaps := domain.RoleTraitSkillGaps[role]
	for _, c := range ordered {
		for _, s := range gaps[c.Trait] {
			if appendSkill(s) {
				return skills
			}
		}
	}

	if bp, ok := domain.BlueprintByName(role); ok {
		for _, s := range bp.Skills {
			if appendSkill(s) {
				break
			}
		}
	}
	return skills
}

// BuildCounterfactualInsight resume que ajuste de rasgos subiría más el
// fit: para los dos rasgos más débiles, subir o bajar el rasgo en
// |target-actual| puntos hacia el target.
func (RoleFitEngine) BuildCounterfactualInsight(contributions []domain.TraitContribution) string {
	if len(contributions) == 0 {
		return MaintainBalanceMessage
	}

	weakest := make([]domain.TraitContribution, len(contributions))
	copy(weakest, contributions)
	sort.SliceStable(weakest, func(i, j int) bool {
		return weakest[i].Closeness < weakest[j].Closeness
	})
	if len(weakest) > 2 {
		weakest = weakest[:2]
	}

	out := ""
	for i, c := range weakest {
		direction := "reduce"
		if c.Target > c.Actual {
			direction = "increase"
		}
		delta := strconv.FormatFloat(round1(math.Abs(c.Target-c.Actual)), 'f', 1, 64)
		if i > 0 {
			out += "; "
		}
		out += fmt.Sprintf("%s %s by ~%s points toward %g to lift this role", direction, c.Trait, delta, c.Target)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatRoleFit serializa un resultado como "Role:score" para persistirlo
// en el registro del participante.
func FormatRoleFit(r domain.RoleFitResult) string {
	return r.Role + ":" + strconv.FormatFloat(r.Score, 'f', -1, 64)
}
