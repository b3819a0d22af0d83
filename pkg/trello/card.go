package trello

import (
	"context"
	"net/url"
	"strings"
)

// Card is a Trello card.
type Card struct {
	resource[Card]
}

// NewCard returns a card holding fields. fields may be nil for an empty card.
func NewCard(c *Client, fields *Record) *Card {
	card := &Card{}
	card.init(c, CollectionCards, fields, card, NewCard)
	return card
}

// SetPosition sets where the card sits in its list.
func (c *Card) SetPosition(p Position) *Card {
	return c.Set("pos", p.Value())
}

// Save creates or updates the card.
//
// name and idList are required. pos defaults to bottom and must otherwise be
// top, bottom or a positive number. An unset due is sent as null.
func (c *Card) Save(ctx context.Context) (*Card, error) {
	if err := requireField(c.record, "name", ""); err != nil {
		return nil, err
	}
	if err := requireField(c.record, "idList", "id of the list that the card should be added to"); err != nil {
		return nil, err
	}
	if err := normalizePosition(c.record); err != nil {
		return nil, err
	}
	if isBlank(c.Get("due")) {
		c.Set("due", nil)
	}

	return c.resource.Save(ctx)
}

// Copy creates a new card from this one, on the same list unless
// WithTargetList is given. Without WithCopyName the copy is named "<name> Copy".
//
// A card without an id cannot be copied: Copy then returns nil, nil and makes
// no request.
func (c *Card) Copy(ctx context.Context, opts ...CopyOption) (*Card, error) {
	if c.ID() == "" {
		return nil, nil
	}
	o := applyCopyOptions(opts)

	dup := NewCard(c.client, nil)
	if o.name == "" {
		dup.Set("name", c.GetString("name")+" Copy")
	} else {
		dup.Set("name", o.name)
	}
	if o.listID == "" {
		dup.Set("idList", c.Get("idList"))
	} else {
		dup.Set("idList", o.listID)
	}
	dup.Set("idCardSource", c.ID())
	if len(o.keepFields) > 0 {
		dup.Set("keepFromSource", strings.Join(o.keepFields, ","))
	}

	return dup.Save(ctx)
}

// GetActions returns the card's activity.
func (c *Card) GetActions(ctx context.Context, query url.Values) ([]*Action, error) {
	return listPath(ctx, &c.resource, "actions", query, NewAction)
}

// GetChecklists returns the checklists on the card.
func (c *Card) GetChecklists(ctx context.Context, query url.Values) ([]*Checklist, error) {
	return listPath(ctx, &c.resource, "checklists", query, NewChecklist)
}

// GetMembers returns the members assigned to the card.
func (c *Card) GetMembers(ctx context.Context, query url.Values) ([]*Member, error) {
	return listPath(ctx, &c.resource, "members", query, NewMember)
}
