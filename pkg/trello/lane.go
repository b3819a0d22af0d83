package trello

import (
	"context"
	"net/url"
)

// Lane is a list of cards on a board. The API calls it a list.
type Lane struct {
	resource[Lane]
}

// NewLane returns a list holding fields. fields may be nil for an empty list.
func NewLane(c *Client, fields *Record) *Lane {
	l := &Lane{}
	l.init(c, CollectionLists, fields, l, NewLane)
	return l
}

// SetPosition sets where the list sits on its board.
func (l *Lane) SetPosition(p Position) *Lane {
	return l.Set("pos", p.Value())
}

// Save creates or updates the list. name and idBoard are required; pos
// follows the same rules as Card.Save.
func (l *Lane) Save(ctx context.Context) (*Lane, error) {
	if err := requireField(l.record, "name", ""); err != nil {
		return nil, err
	}
	if err := requireField(l.record, "idBoard", "id of the board that the list should be added to"); err != nil {
		return nil, err
	}
	if err := normalizePosition(l.record); err != nil {
		return nil, err
	}

	return l.resource.Save(ctx)
}

// GetCards returns the cards on the list.
func (l *Lane) GetCards(ctx context.Context, query url.Values) ([]*Card, error) {
	return listPath(ctx, &l.resource, "cards", query, NewCard)
}
