package trello

// Action is one entry of a board's or card's activity.
type Action struct {
	resource[Action]
}

// NewAction returns an action holding fields. fields may be nil.
func NewAction(c *Client, fields *Record) *Action {
	a := &Action{}
	a.init(c, CollectionActions, fields, a, NewAction)
	return a
}
