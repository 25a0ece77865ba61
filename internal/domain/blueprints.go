package domain

// TraitTarget es el ideal de un rasgo dentro de un blueprint de rol:
// target en 0-100 y weight como importancia relativa.
type TraitTarget struct {
	Trait  string
	Target float64
	Weight float64
}

// RoleBlueprint es la configuración estática de un rol de carrera.
// Solo lectura en runtime.
type RoleBlueprint struct {
	Name         string
	TraitTargets []TraitTarget
	Skills       []string
}

// RoleBlueprints define los tres roles incorporados. El orden del slice es
// el orden de desempate del ranking.
var RoleBlueprints = []RoleBlueprint{
	{
		Name: "Software Engineer",
		TraitTargets: []TraitTarget{
			{Trait: TraitOpenness, Target: 82, Weight: 0.22},
			{Trait: TraitConscientiousness, Target: 88, Weight: 0.30},
			{Trait: TraitNeuroticism, Target: 28, Weight: 0.20},
			{Trait: TraitAgreeableness, Target: 58, Weight: 0.14},
			{Trait: TraitExtraversion, Target: 48, Weight: 0.14},
		},
		Skills: []string{"System Design", "Code Quality", "Problem Decomposition", "Stakeholder Communication"},
	},
	{
		Name: "Manager",
		TraitTargets: []TraitTarget{
			{Trait: TraitExtraversion, Target: 80, Weight: 0.28},
			{Trait: TraitAgreeableness, Target: 78, Weight: 0.24},
			{Trait: TraitConscientiousness, Target: 84, Weight: 0.26},
			{Trait: TraitOpenness, Target: 70, Weight: 0.12},
			{Trait: TraitNeuroticism, Target: 36, Weight: 0.10},
		},
		Skills: []string{"Coaching", "Decision Making", "Conflict Resolution", "Stakeholder Alignment"},
	},
	{
		Name: "Researcher",
		TraitTargets: []TraitTarget{
			{Trait: TraitOpenness, Target: 90, Weight: 0.32},
			{Trait: TraitConscientiousness, Target: 76, Weight: 0.26},
			{Trait: TraitExtraversion, Target: 38, Weight: 0.12},
			{Trait: TraitAgreeableness, Target: 64, Weight: 0.14},
			{Trait: TraitNeuroticism, Target: 34, Weight: 0.16},
		},
		Skills: []string{"Experimental Design", "Data Analysis", "Technical Writing", "Cross-team Collaboration"},
	},
}

// RoleTraitSkillGaps mapea rol -> rasgo -> habilidades a desarrollar cuando
// ese rasgo es el aporte más débil al fit.
var RoleTraitSkillGaps = map[string]map[string][]string{
	"Software Engineer": {
		TraitConscientiousness: {"Task Planning", "Test-Driven Development"},
		TraitOpenness:          {"System Design Patterns", "Technical Architecture"},
		TraitNeuroticism:       {"Stress Management", "Incident Response Playbooks"},
		TraitExtraversion:      {"Stakeholder Communication", "Team Demos"},
		TraitAgreeableness:     {"Code Review Facilitation", "Pair Programming"},
	},
	"Manager": {
		TraitExtraversion:      {"Executive Presence", "Facilitation"},
		TraitAgreeableness:     {"Conflict Mediation", "Coaching"},
		TraitConscientiousness: {"Operational Cadence", "Prioritization"},
		TraitOpenness:          {"Strategic Framing", "Innovation Workshops"},
		TraitNeuroticism:       {"Emotional Regulation", "Resilience Training"},
	},
	"Researcher": {
		TraitOpenness:          {"Exploratory Research Methods", "Creative Prototyping"},
		TraitConscientiousness: {"Study Planning", "Documentation Rigor"},
		TraitExtraversion:      {"Conference Presentations", "Interviewing"},
		TraitAgreeableness:     {"Cross-team Collaboration", "Stakeholder Alignment"},
		TraitNeuroticism:       {"Experiment Recovery Plans", "Mindfulness"},
	},
}

// BlueprintByName busca un blueprint por nombre de rol.
func BlueprintByName(name string) (RoleBlueprint, bool) {
	for _, bp := range RoleBlueprints {
		if bp.Name == name {
			return bp, true
		}
	}
	return RoleBlueprint{}, false
}
