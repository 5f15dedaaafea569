package lsystem

import "strings"

// Generate expands the axiom for the configured number of iterations.
func (l *LSystem) Generate() string {
	current := l.params.Axiom
	for i := 0; i < l.params.Iterations; i++ {
		current = l.applyRules(current)
	}
	return current
}

// applyRules performs one simultaneous rewrite of every symbol that has a rule.
func (l *LSystem) applyRules(input string) string {
	var out strings.Builder
	out.Grow(len(input) * 2)

	for i := 0; i < len(input); i++ {
		c := input[i]
		repl, ok := l.params.Rules[c]
		if !ok {
			out.WriteByte(c)
			continue
		}
		// One draw per rule application whenever variation is configured,
		// whether or not an alternate exists.
		if l.params.StochasticVariation > 0 && l.randomChance(l.params.StochasticVariation) {
			if alt, ok := l.params.AlternateRules[c]; ok {
				repl = alt
			}
		}
		out.WriteString(repl)
	}
	return out.String()
}
