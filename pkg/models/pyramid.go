package models

// Pyramid is the conclusion-first argument hierarchy: a single top message
// supported by one argument per framework category, each backed by evidence.
type Pyramid struct {
	TopMessage          string               `json:"top_message"`
	SupportingArguments []SupportingArgument `json:"supporting_arguments"`
}

// SupportingArgument backs the top message within one MECE category.
type SupportingArgument struct {
	Category string   `json:"category"`
	Argument string   `json:"argument"`
	Evidence []string `json:"evidence"`
}

// CategorySet returns the set of argument categories.
func (p *Pyramid) CategorySet() map[string]bool {
	set := make(map[string]bool, len(p.SupportingArguments))
	for _, arg := range p.SupportingArguments {
		set[arg.Category] = true
	}
	return set
}
