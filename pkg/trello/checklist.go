package trello

import (
	"context"
	"net/url"
)

// Checklist is a checklist attached to a card.
type Checklist struct {
	resource[Checklist]
}

// NewChecklist returns a checklist holding fields. fields may be nil.
func NewChecklist(c *Client, fields *Record) *Checklist {
	cl := &Checklist{}
	cl.init(c, CollectionChecklists, fields, cl, NewChecklist)
	return cl
}

// Save creates or updates the checklist. idCard is required.
func (cl *Checklist) Save(ctx context.Context) (*Checklist, error) {
	if err := requireField(cl.record, "idCard", "id of the card that the checklist should be added to"); err != nil {
		return nil, err
	}
	return cl.resource.Save(ctx)
}

// GetCheckItems returns the checklist's items.
func (cl *Checklist) GetCheckItems(ctx context.Context, query url.Values) ([]*Record, error) {
	resp, err := cl.GetPath(ctx, "checkItems", query)
	if err != nil {
		return nil, err
	}
	return resp.Records()
}
