// Package questionbank carga el banco de preguntas Big Five desde YAML:
// un banco por defecto embebido o un archivo externo vía QUESTION_BANK_PATH.
package questionbank

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"persona-fit/internal/domain"
)

//go:embed default_bank.yaml
var defaultBank []byte

type bankFile struct {
	Questions []domain.Question `yaml:"questions"`
}

// LoadDefault parsea el banco embebido.
func LoadDefault() ([]domain.Question, error) {
	return parse(defaultBank)
}

// LoadFile parsea un banco desde disco. Si path es vacío usa el default.
func LoadFile(path string) ([]domain.Question, error) {
	if path == "" {
		return LoadDefault()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank %s: %w", path, err)
	}
	return parse(raw)
}

func parse(raw []byte) ([]domain.Question, error) {
	var bank bankFile
	if err := yaml.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(bank.Questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}

	seen := make(map[string]bool, len(bank.Questions))
	for i, q := range bank.Questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question at index %d has no id", i)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if q.Text == "" {
			return nil, fmt.Errorf("question %s has no text", q.ID)
		}
		if !domain.KnownTrait(q.Trait) {
			return nil, fmt.Errorf("question %s measures unknown trait %q", q.ID, q.Trait)
		}
	}

	sort.SliceStable(bank.Questions, func(i, j int) bool {
		return bank.Questions[i].Position < bank.Questions[j].Position
	})
	return bank.Questions, nil
}
