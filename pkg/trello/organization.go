package trello

import (
	"context"
	"net/url"
)

// Organization is a Trello workspace.
type Organization struct {
	resource[Organization]
}

// NewOrganization returns an organization holding fields. fields may be nil.
func NewOrganization(c *Client, fields *Record) *Organization {
	o := &Organization{}
	o.init(c, CollectionOrganizations, fields, o, NewOrganization)
	return o
}

// GetBoards returns the organization's boards.
func (o *Organization) GetBoards(ctx context.Context, query url.Values) ([]*Board, error) {
	return listPath(ctx, &o.resource, "boards", query, NewBoard)
}
