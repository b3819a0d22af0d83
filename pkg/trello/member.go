package trello

import (
	"context"
	"net/url"
)

// Member is a Trello user.
type Member struct {
	resource[Member]
}

// NewMember returns a member holding fields. fields may be nil.
func NewMember(c *Client, fields *Record) *Member {
	m := &Member{}
	m.init(c, CollectionMembers, fields, m, NewMember)
	return m
}

// GetBoards returns the boards the member belongs to.
func (m *Member) GetBoards(ctx context.Context, query url.Values) ([]*Board, error) {
	return listPath(ctx, &m.resource, "boards", query, NewBoard)
}

// GetOrganizations returns the member's workspaces.
func (m *Member) GetOrganizations(ctx context.Context, query url.Values) ([]*Organization, error) {
	return listPath(ctx, &m.resource, "organizations", query, NewOrganization)
}

// GetCards returns the cards the member is assigned to.
func (m *Member) GetCards(ctx context.Context, query url.Values) ([]*Card, error) {
	return listPath(ctx, &m.resource, "cards", query, NewCard)
}
