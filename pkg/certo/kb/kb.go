package kb

// Fact is a named proposition with a certainty factor. CF is meaningful
// only once assigned by file data or by derivation; a Fact inside an
// antecedent carries no certainty until it is resolved against working
// memory. Equal names denote the same proposition.
type Fact struct {
	Name string
	CF   float64
}

// Operator combines the conditions of an antecedent.
type Operator int

const (
	// OpNone means the antecedent has exactly one condition.
	OpNone Operator = iota
	OpAnd
	OpOr
)

func (o Operator) String() string {
	switch o {
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "none"
	}
}

// Antecedent is the "if" side of a rule: one or more literal facts joined
// by a single operator. Mixing and/or within one antecedent is not
// representable. Invariant: Conditions is non-empty, and OpNone implies
// exactly one condition.
type Antecedent struct {
	Conditions []Fact
	Operator   Operator
}

// Rule relates an antecedent to a single consequent fact. CF is the
// strength of the implication, by convention in [-1, 1]; negative values
// denote disconfirming evidence. Rules are built once at load time and
// not mutated afterwards.
type Rule struct {
	ID         string
	Antecedent Antecedent
	Consequent Fact
	CF         float64
}

// KnowledgeBase holds rules in file order. Order is preserved so that a
// future evaluation pass is deterministic.
type KnowledgeBase struct {
	Rules []Rule
}

// Add appends a rule, keeping insertion order.
func (b *KnowledgeBase) Add(r Rule) {
	b.Rules = append(b.Rules, r)
}

// FactBase holds the initial facts, the query goal, and the working
// memory an inference engine extends with derived certainties. Memory is
// seeded from Initial with last-write-wins on duplicate names. Goal.CF is
// unset at load time; the goal is a query target, not a known value.
type FactBase struct {
	Initial []Fact
	Goal    Fact
	Memory  map[string]float64
}

// NewFactBase returns an empty fact base with allocated working memory.
func NewFactBase() *FactBase {
	return &FactBase{Memory: make(map[string]float64)}
}

// Assert records a fact in both the initial list and working memory.
// A repeated name keeps both list entries but only the last certainty.
func (b *FactBase) Assert(f Fact) {
	b.Initial = append(b.Initial, f)
	if b.Memory == nil {
		b.Memory = make(map[string]float64)
	}
	b.Memory[f.Name] = f.CF
}

// Lookup returns the current certainty for a fact name, if known.
func (b *FactBase) Lookup(name string) (float64, bool) {
	cf, ok := b.Memory[name]
	return cf, ok
}
