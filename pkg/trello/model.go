package trello

import (
	"context"
	"net/url"
)

// resource holds the behavior shared by every model: CRUD against one REST
// collection plus access to the entity's fields.
//
// T is the concrete model type. build constructs a T from a response so that
// Fetch, Save and Update return the caller's own type.
type resource[T any] struct {
	client     *Client
	collection string
	record     *Record
	self       *T
	build      func(*Client, *Record) *T
}

func (r *resource[T]) init(c *Client, collection string, rec *Record, self *T, build func(*Client, *Record) *T) {
	if rec == nil {
		rec = NewRecord()
	}
	r.client = c
	r.collection = collection
	r.record = rec
	r.self = self
	r.build = build
}

// Client returns the client the model issues requests through.
func (r *resource[T]) Client() *Client {
	return r.client
}

// Collection returns the REST collection name, e.g. "boards".
func (r *resource[T]) Collection() string {
	return r.collection
}

// ID returns the entity id, or "" if none is set.
func (r *resource[T]) ID() string {
	return r.record.GetString("id")
}

// SetID sets the entity id.
func (r *resource[T]) SetID(id string) *T {
	r.record.Set("id", id)
	return r.self
}

// Get returns the value of a field, or nil if it is not set.
func (r *resource[T]) Get(key string) any {
	return r.record.Get(key)
}

// GetString returns the value of a field as a string, or "" if it is not set.
func (r *resource[T]) GetString(key string) string {
	return r.record.GetString(key)
}

// Set sets a field.
func (r *resource[T]) Set(key string, value any) *T {
	r.record.Set(key, value)
	return r.self
}

// Has reports whether a field is set to a non-nil value.
func (r *resource[T]) Has(key string) bool {
	return r.record.Has(key)
}

// Remove deletes a field.
func (r *resource[T]) Remove(key string) *T {
	r.record.Remove(key)
	return r.self
}

// Keys returns the field names in insertion order.
func (r *resource[T]) Keys() []string {
	return r.record.Keys()
}

// Len returns the number of fields.
func (r *resource[T]) Len() int {
	return r.record.Len()
}

// Fields returns the underlying record. Changes to it change the model.
func (r *resource[T]) Fields() *Record {
	return r.record
}

// ToMap returns the fields as a plain map.
func (r *resource[T]) ToMap() map[string]any {
	return r.record.ToMap()
}

// Decode copies the fields into out, matching struct fields by json tag.
func (r *resource[T]) Decode(out any) error {
	return r.record.Decode(out)
}

// Fetch retrieves the entity by its id and returns a new model holding the
// API's copy. The receiver is left unchanged.
func (r *resource[T]) Fetch(ctx context.Context) (*T, error) {
	if r.ID() == "" {
		return nil, ErrNoID
	}
	resp, err := r.client.Get(ctx, r.path(), nil)
	if err != nil {
		return nil, err
	}
	return r.wrap(resp)
}

// Save creates the entity, or updates it if an id is already set.
func (r *resource[T]) Save(ctx context.Context) (*T, error) {
	if r.ID() != "" {
		return r.Update(ctx)
	}
	resp, err := r.client.Post(ctx, r.collection, r.record, nil)
	if err != nil {
		return nil, err
	}
	return r.wrap(resp)
}

// Update sends every field to the API and returns the updated entity.
func (r *resource[T]) Update(ctx context.Context) (*T, error) {
	if r.ID() == "" {
		return nil, ErrNoID
	}
	resp, err := r.client.Put(ctx, r.path(), r.record, nil)
	if err != nil {
		return nil, err
	}
	return r.wrap(resp)
}

// Delete removes the entity.
func (r *resource[T]) Delete(ctx context.Context) error {
	if r.ID() == "" {
		return ErrNoID
	}
	_, err := r.client.Delete(ctx, r.path())
	return err
}

// GetPath retrieves a path below the entity, e.g. "cards" for a board's cards.
func (r *resource[T]) GetPath(ctx context.Context, subpath string, query url.Values) (*Response, error) {
	if r.ID() == "" {
		return nil, ErrNoID
	}
	return r.client.Get(ctx, r.path()+"/"+subpath, query)
}

func (r *resource[T]) path() string {
	return r.collection + "/" + r.ID()
}

func (r *resource[T]) wrap(resp *Response) (*T, error) {
	rec, err := resp.Record()
	if err != nil {
		return nil, err
	}
	return r.build(r.client, rec), nil
}

// listPath fetches a sub-collection and wraps every item with build.
func listPath[T, U any](ctx context.Context, r *resource[T], subpath string, query url.Values, build func(*Client, *Record) *U) ([]*U, error) {
	resp, err := r.GetPath(ctx, subpath, query)
	if err != nil {
		return nil, err
	}
	recs, err := resp.Records()
	if err != nil {
		return nil, err
	}
	out := make([]*U, 0, len(recs))
	for _, rec := range recs {
		out = append(out, build(r.client, rec))
	}
	return out, nil
}

// requireField returns an argument error if field is blank. hint, if any,
// is appended to the message.
func requireField(r *Record, field, hint string) error {
	if !isBlank(r.Get(field)) {
		return nil
	}
	if hint != "" {
		return newArgumentError("Missing required field %q - %s", field, hint)
	}
	return newArgumentError("Missing required field %q", field)
}
