package core

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// OrderBy renders orderings as the terms of an ORDER BY clause.
func OrderBy(orderings ...DBOrdering) []string {
	terms := make([]string, 0, len(orderings))
	for _, ord := range orderings {
		terms = append(terms, ord.String())
	}
	return terms
}
