// certo-inspect loads a rule file and a fact file, prints the resulting
// bases, and can persist them as a snapshot in a SQLite database.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/certolabs/certo/pkg/certo"
	"github.com/certolabs/certo/pkg/certo/config"
	"github.com/certolabs/certo/pkg/certo/report"
	"github.com/certolabs/certo/pkg/certo/store/sqlite"
)

func main() {
	rulesPath := flag.String("rules", "", "path to the rule file (required)")
	factsPath := flag.String("facts", "", "path to the fact file (required)")
	dialectPath := flag.String("dialect", "", "optional YAML keyword dialect")
	dbPath := flag.String("db", "", "optional SQLite database to persist a snapshot")
	label := flag.String("label", "", "snapshot label (defaults to the rule file path)")
	flag.Parse()

	if *rulesPath == "" || *factsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	loader := &config.Loader{
		RulesPath:   *rulesPath,
		FactsPath:   *factsPath,
		DialectPath: *dialectPath,
	}
	comp, err := loader.Load()
	if err != nil {
		log.Fatal("Load failed: ", err)
	}
	for _, w := range comp.Warnings {
		log.Print("Warning: ", w)
	}

	if err := report.KnowledgeBase(os.Stdout, comp.KB, comp.Dialect); err != nil {
		log.Fatal(err)
	}
	if err := report.FactBase(os.Stdout, comp.FB, comp.Dialect); err != nil {
		log.Fatal(err)
	}

	if *dbPath == "" {
		return
	}

	ctx := context.Background()
	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal("Open database: ", err)
	}
	c := certo.New(certo.Options{Store: st, Dialect: comp.Dialect})
	defer c.Close()

	name := *label
	if name == "" {
		name = *rulesPath
	}
	id, err := c.Save(ctx, name, certo.LoadResult{KB: comp.KB, FB: comp.FB})
	if err != nil {
		log.Fatal("Save snapshot: ", err)
	}
	log.Printf("Saved snapshot %s (%s) to %s", id, name, *dbPath)
}
