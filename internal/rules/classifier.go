// Package rules classifies bill payees into ledger accounts.
package rules

import "fmt"

// Rule maps payees matching a predicate to one ledger account.
type Rule struct {
	Match   func(payee string) bool
	Account string
}

// UnknownPayeeError reports a payee no rule recognizes. The rule set is
// closed-world: an unrecognized payee must surface as an error rather than
// land in a default category.
type UnknownPayeeError struct {
	Payee string
}

func (e *UnknownPayeeError) Error() string {
	return fmt.Sprintf("unknown payee: %q", e.Payee)
}

// Classifier evaluates an ordered rule table, first match wins.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier over the given rules.
func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// NewDefaultClassifier creates a classifier with the built-in SJTU rule set.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultRules())
}

// Classify returns the ledger account for a payee. It is a pure function of
// the payee text; the same input always yields the same account.
func (c *Classifier) Classify(payee string) (string, error) {
	for _, rule := range c.rules {
		if rule.Match(payee) {
			return rule.Account, nil
		}
	}
	return "", &UnknownPayeeError{Payee: payee}
}
