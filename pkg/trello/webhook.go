package trello

import "context"

// Webhook asks the API to call a URL whenever a model changes.
// Receiving those calls is up to the application.
type Webhook struct {
	resource[Webhook]
}

// NewWebhook returns a webhook holding fields. fields may be nil.
func NewWebhook(c *Client, fields *Record) *Webhook {
	w := &Webhook{}
	w.init(c, CollectionWebhooks, fields, w, NewWebhook)
	return w
}

// Save registers or updates the webhook. idModel and callbackURL are required.
func (w *Webhook) Save(ctx context.Context) (*Webhook, error) {
	if err := requireField(w.record, "idModel", "id of the model to watch"); err != nil {
		return nil, err
	}
	if err := requireField(w.record, "callbackURL", ""); err != nil {
		return nil, err
	}
	return w.resource.Save(ctx)
}
