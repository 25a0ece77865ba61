// bankcheck valida un banco de preguntas YAML antes de desplegarlo: ids
// únicos, rasgos conocidos y cobertura de los cinco rasgos.
package main

import (
	"fmt"
	"log"
	"os"

	"persona-fit/internal/domain"
	"persona-fit/internal/questionbank"
)

func main() {
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	questions, err := questionbank.LoadFile(path)
	if err != nil {
		log.Fatalf("question bank invalid: %v", err)
	}

	perTrait := make(map[string]int)
	reversed := 0
	for _, q := range questions {
		perTrait[q.Trait]++
		if q.IsReverse {
			reversed++
		}
	}

	source := path
	if source == "" {
		source = "(embedded default)"
	}
	fmt.Printf("bank %s: %d questions, %d reverse-coded\n", source, len(questions), reversed)

	missing := 0
	for _, trait := range domain.TraitNames {
		fmt.Printf("  %-18s %d\n", trait, perTrait[trait])
		if perTrait[trait] == 0 {
			missing++
		}
	}

	if missing > 0 {
		log.Fatalf("%d trait(s) have no questions", missing)
	}
	fmt.Println("ok")
}
