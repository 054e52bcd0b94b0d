package inference

import (
	"context"

	"github.com/certolabs/certo/pkg/certo/kb"
)

// Engine computes the certainty of a fact base's goal from a knowledge
// base. The loader side of the system only defines this contract;
// implementations (backward chaining, forward chaining, external
// reasoners) plug in through it.
type Engine interface {
	// Run evaluates the goal of facts against rules. Implementations must
	// not mutate the bases; derived certainties belong in the Result.
	Run(ctx context.Context, rules *kb.KnowledgeBase, facts *kb.FactBase) (Result, error)
}

// Result is the outcome of one inference run.
type Result struct {
	// Goal carries the goal name with its computed certainty.
	Goal kb.Fact
	// Derived is the working memory after the run, including every fact
	// whose certainty was established along the way.
	Derived map[string]float64
	// Trace records the rule applications that led to the goal.
	Trace []Step
}

// Step is one rule application in a proof trace.
type Step struct {
	RuleID string
	Fact   string  // the fact whose certainty this step established
	CF     float64 // certainty after combination
	Depth  int     // distance from the goal
}
