package vectorindex

// Result pairs an indexed id with its similarity score against a query.
type Result struct {
	ID    string
	Score float64
}
