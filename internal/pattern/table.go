package pattern

// Rule pairs a classification label with the pattern that selects it.
type Rule struct {
	Pattern *Pattern
	Label   string
}

// Table is a priority-ordered sequence of rules. Declaration order is
// the precedence contract: rules are evaluated top to bottom and the
// first match is authoritative, so broader rules (including any
// catch-all) must come after more specific ones.
type Table []Rule

// Match evaluates the rules in order and returns the first successful
// (label, fields) pair, or false when nothing matches.
func (t Table) Match(text string) (string, Fields, bool) {
	for _, rule := range t {
		if fields, ok := rule.Pattern.Match(text); ok {
			return rule.Label, fields, true
		}
	}
	return "", nil, false
}

// Labels returns the rule labels in evaluation order.
func (t Table) Labels() []string {
	labels := make([]string, len(t))
	for i, rule := range t {
		labels[i] = rule.Label
	}
	return labels
}
