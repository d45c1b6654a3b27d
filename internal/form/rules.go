package form

import "strings"

// Rule is one validation check. Check reports whether the values satisfy
// the rule; when it does not, Message is attributed to Field.
type Rule struct {
	Field   string
	Message string
	Check   func(Values) bool
}

// RuleSet is an ordered, immutable list of rules.
type RuleSet struct {
	rules []Rule
}

// Result is the outcome of one validation pass.
type Result struct {
	Errors map[string]string
	Valid  bool
}

// NewRuleSet copies rules into a new set.
func NewRuleSet(rules ...Rule) RuleSet {
	return RuleSet{rules: append([]Rule(nil), rules...)}
}

// Required fails when the field's trimmed value is empty.
func Required(field, message string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Check: func(v Values) bool {
			return strings.TrimSpace(v[field]) != ""
		},
	}
}

// Matches fails when field differs from other. The error belongs to field.
func Matches(field, other, message string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Check: func(v Values) bool {
			return v[field] == v[other]
		},
	}
}

// Len returns the number of rules.
func (rs RuleSet) Len() int { return len(rs.rules) }

// Validate runs every rule against values. For each field the first
// failing rule in declaration order wins; later rules for that field are
// not consulted.
func (rs RuleSet) Validate(values Values) Result {
	errs := make(map[string]string)
	for _, r := range rs.rules {
		if _, failed := errs[r.Field]; failed {
			continue
		}
		if r.Check != nil && !r.Check(values) {
			errs[r.Field] = r.Message
		}
	}
	return Result{Errors: errs, Valid: len(errs) == 0}
}
