package questionbank

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"persona-fit/internal/domain"
)

func writeBank(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write bank: %v", err)
	}
	return path
}

func TestLoadDefaultBank(t *testing.T) {
	questions, err := LoadDefault()
	if err != nil {
		t.Fatalf("load default bank: %v", err)
	}
	if len(questions) != 20 {
		t.Fatalf("expected 20 questions, got %d", len(questions))
	}

	perTrait := map[string]int{}
	reversePerTrait := map[string]int{}
	for i, q := range questions {
		perTrait[q.Trait]++
		if q.IsReverse {
			reversePerTrait[q.Trait]++
		}
		if i > 0 && questions[i].Position < questions[i-1].Position {
			t.Fatalf("questions not sorted by position at index %d", i)
		}
	}
	for _, trait := range domain.TraitNames {
		if perTrait[trait] != 4 {
			t.Fatalf("expected 4 items for %s, got %d", trait, perTrait[trait])
		}
		if reversePerTrait[trait] != 2 {
			t.Fatalf("expected 2 reverse-coded items for %s, got %d", trait, reversePerTrait[trait])
		}
	}
}

func TestLoadFileFallsBackToDefault(t *testing.T) {
	questions, err := LoadFile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 20 {
		t.Fatalf("expected embedded bank on empty path, got %d questions", len(questions))
	}
}

func TestLoadFileCustomBank(t *testing.T) {
	path := writeBank(t, `
questions:
  - id: c1
    text: "I plan ahead."
    trait: Conscientiousness
    position: 2
  - id: o1
    text: "I enjoy new ideas."
    trait: Openness
    reverse: true
    position: 1
`)
	questions, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load custom bank: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].ID != "o1" || questions[1].ID != "c1" {
		t.Fatalf("expected position ordering, got %s, %s", questions[0].ID, questions[1].ID)
	}
	if !questions[0].IsReverse {
		t.Fatalf("reverse flag not parsed")
	}
}

func TestLoadFileMissingPath(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadFileRejectsDuplicateIDs(t *testing.T) {
	path := writeBank(t, `
questions:
  - id: q1
    text: "a"
    trait: Openness
  - id: q1
    text: "b"
    trait: Openness
`)
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "duplicate question id") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestLoadFileRejectsUnknownTrait(t *testing.T) {
	path := writeBank(t, `
questions:
  - id: q1
    text: "a"
    trait: Charisma
`)
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "unknown trait") {
		t.Fatalf("expected unknown trait error, got %v", err)
	}
}

func TestLoadFileRejectsEmptyBank(t *testing.T) {
	path := writeBank(t, "questions: []\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected error for empty bank")
	}
}
