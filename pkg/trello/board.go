package trello

import (
	"context"
	"net/url"
	"strings"
)

// Board is a Trello board.
type Board struct {
	resource[Board]
}

// NewBoard returns a board holding fields. fields may be nil for an empty board.
func NewBoard(c *Client, fields *Record) *Board {
	b := &Board{}
	b.init(c, CollectionBoards, fields, b, NewBoard)
	return b
}

// GetCards returns the cards on the board.
func (b *Board) GetCards(ctx context.Context, query url.Values) ([]*Card, error) {
	return listPath(ctx, &b.resource, "cards", query, NewCard)
}

// GetCard returns one card of the board.
func (b *Board) GetCard(ctx context.Context, cardID string, query url.Values) (*Card, error) {
	resp, err := b.GetPath(ctx, "cards/"+cardID, query)
	if err != nil {
		return nil, err
	}
	rec, err := resp.Record()
	if err != nil {
		return nil, err
	}
	return NewCard(b.client, rec), nil
}

// GetActions returns the board's activity.
func (b *Board) GetActions(ctx context.Context, query url.Values) ([]*Action, error) {
	return listPath(ctx, &b.resource, "actions", query, NewAction)
}

// GetLists returns the lists on the board.
func (b *Board) GetLists(ctx context.Context, query url.Values) ([]*Lane, error) {
	return listPath(ctx, &b.resource, "lists", query, NewLane)
}

// GetMembers returns the members of the board.
func (b *Board) GetMembers(ctx context.Context, query url.Values) ([]*Member, error) {
	return listPath(ctx, &b.resource, "members", query, NewMember)
}

// Copy creates a new board from this one. Without WithCopyName the copy is
// named "<name> Copy".
//
// A board without an id cannot be copied: Copy then returns nil, nil and
// makes no request.
func (b *Board) Copy(ctx context.Context, opts ...CopyOption) (*Board, error) {
	if b.ID() == "" {
		return nil, nil
	}
	o := applyCopyOptions(opts)

	dup := NewBoard(b.client, nil)
	if o.name == "" {
		dup.Set("name", b.GetString("name")+" Copy")
	} else {
		dup.Set("name", o.name)
	}
	dup.Set("idBoardSource", b.ID())
	if len(o.keepFields) > 0 {
		dup.Set("keepFromSource", strings.Join(o.keepFields, ","))
	}

	return dup.Save(ctx)
}
