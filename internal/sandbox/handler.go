package sandbox

import (
	"context"
	"errors"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/airyra/trello/pkg/idgen"
	"github.com/airyra/trello/pkg/trello"
)

const (
	// posStep is the gap between consecutive bottom positions.
	posStep = 16384

	defaultUsername = "sandbox"
)

// actionTypes names the action recorded when an entity of a collection is created.
var actionTypes = map[string]string{
	trello.CollectionBoards:        "createBoard",
	trello.CollectionLists:         "createList",
	trello.CollectionCards:         "createCard",
	trello.CollectionChecklists:    "addChecklistToCard",
	trello.CollectionOrganizations: "createOrganization",
}

// Handler serves the emulated API from a Store.
type Handler struct {
	store  *Store
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a new Handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Create handles POST /1/{collection}.
func (h *Handler) Create(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := parseFields(r)
		if err != nil {
			Text(w, http.StatusBadRequest, "invalid request body")
			return
		}

		doc, err := h.create(r.Context(), collection, fields)
		if err != nil {
			h.fail(w, err)
			return
		}
		OK(w, doc)
	}
}

// Get handles GET /1/{collection}/{id}.
func (h *Handler) Get(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.load(r.Context(), collection, chi.URLParam(r, "id"))
		if err != nil {
			h.fail(w, err)
			return
		}
		OK(w, selectFields(doc, r.URL.Query().Get("fields")))
	}
}

// Update handles PUT /1/{collection}/{id}.
func (h *Handler) Update(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := parseFields(r)
		if err != nil {
			Text(w, http.StatusBadRequest, "invalid request body")
			return
		}

		doc, err := h.update(r.Context(), collection, chi.URLParam(r, "id"), fields)
		if err != nil {
			h.fail(w, err)
			return
		}
		OK(w, doc)
	}
}

// Delete handles DELETE /1/{collection}/{id}.
func (h *Handler) Delete(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := h.resolveID(r.Context(), collection, chi.URLParam(r, "id"))
		if err != nil {
			h.fail(w, err)
			return
		}
		if err := h.store.Delete(r.Context(), collection, id); err != nil {
			h.fail(w, err)
			return
		}
		OK(w, map[string]any{"_value": nil})
	}
}

// Related handles GET /1/{collection}/{id}/{sub}, listing the documents of
// target whose JSON path matches the parent's id.
func (h *Handler) Related(collection, target string, filter func(id string) Filter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parent, err := h.load(r.Context(), collection, chi.URLParam(r, "id"))
		if err != nil {
			h.fail(w, err)
			return
		}

		docs, err := h.store.List(r.Context(), target, filter(parent.GetString("id")))
		if err != nil {
			h.fail(w, err)
			return
		}
		h.list(w, r, target, docs)
	}
}

// Members handles GET /1/{collection}/{id}/members, resolving the parent's idMembers.
func (h *Handler) Members(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parent, err := h.load(r.Context(), collection, chi.URLParam(r, "id"))
		if err != nil {
			h.fail(w, err)
			return
		}

		docs := []Document{}
		for _, id := range parent.Strings("idMembers") {
			member, err := h.store.Get(r.Context(), trello.CollectionMembers, id)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				h.fail(w, err)
				return
			}
			docs = append(docs, member)
		}
		h.list(w, r, trello.CollectionMembers, docs)
	}
}

// BoardCard handles GET /1/boards/{id}/cards/{cardID}.
func (h *Handler) BoardCard(w http.ResponseWriter, r *http.Request) {
	board, err := h.load(r.Context(), trello.CollectionBoards, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	card, err := h.store.Get(r.Context(), trello.CollectionCards, chi.URLParam(r, "cardID"))
	if err != nil {
		h.fail(w, err)
		return
	}
	if card.GetString("idBoard") != board.GetString("id") {
		NotFound(w, r)
		return
	}
	OK(w, selectFields(card, r.URL.Query().Get("fields")))
}

// CheckItems handles GET /1/checklists/{id}/checkItems.
func (h *Handler) CheckItems(w http.ResponseWriter, r *http.Request) {
	checklist, err := h.load(r.Context(), trello.CollectionChecklists, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	items, _ := checklist["checkItems"].([]any)
	if items == nil {
		items = []any{}
	}
	OK(w, items)
}

// list writes docs after applying the filter and fields query parameters.
// Actions are listed newest first, cards and lists by position.
func (h *Handler) list(w http.ResponseWriter, r *http.Request, collection string, docs []Document) {
	query := r.URL.Query()

	switch collection {
	case trello.CollectionCards, trello.CollectionLists, trello.CollectionBoards:
		docs = filterClosed(docs, query.Get("filter"))
	}
	switch collection {
	case trello.CollectionCards, trello.CollectionLists, trello.CollectionChecklists:
		sort.SliceStable(docs, func(i, j int) bool {
			return position(docs[i]) < position(docs[j])
		})
	case trello.CollectionActions:
		for i, j := 0, len(docs)-1; i < j; i, j = i+1, j-1 {
			docs[i], docs[j] = docs[j], docs[i]
		}
	}

	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, selectFields(doc, query.Get("fields")))
	}
	OK(w, out)
}

// load fetches a document, resolving the "me" member alias.
func (h *Handler) load(ctx context.Context, collection, id string) (Document, error) {
	id, err := h.resolveID(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	return h.store.Get(ctx, collection, id)
}

func (h *Handler) resolveID(ctx context.Context, collection, id string) (string, error) {
	if collection != trello.CollectionMembers || id != "me" {
		return id, nil
	}
	me, err := h.me(ctx)
	if err != nil {
		return "", err
	}
	return me.GetString("id"), nil
}

// me returns the member owning every token, creating it on first use.
func (h *Handler) me(ctx context.Context) (Document, error) {
	me, err := h.store.First(ctx, trello.CollectionMembers)
	if !errors.Is(err, ErrNotFound) {
		return me, err
	}
	return h.store.Create(ctx, trello.CollectionMembers, Document{
		"username": defaultUsername,
		"fullName": "Sandbox User",
		"initials": "SU",
	})
}

func (h *Handler) create(ctx context.Context, collection string, fields Document) (Document, error) {
	doc, err := h.copySource(ctx, collection, fields)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		doc[k] = v
	}

	id, err := idgen.Generate()
	if err != nil {
		return nil, err
	}
	doc["id"] = id

	if err := h.prepare(ctx, collection, doc); err != nil {
		return nil, err
	}

	created, err := h.store.Create(ctx, collection, doc)
	if err != nil {
		return nil, err
	}
	if err := h.recordAction(ctx, collection, created); err != nil {
		return nil, err
	}
	return created, nil
}

// copySource starts a board or card from the one named by idBoardSource or
// idCardSource. keepFromSource, unless "all", limits the copied fields.
func (h *Handler) copySource(ctx context.Context, collection string, fields Document) (Document, error) {
	sourceField := map[string]string{
		trello.CollectionBoards: "idBoardSource",
		trello.CollectionCards:  "idCardSource",
	}[collection]

	sourceID := fields.GetString(sourceField)
	keep := fields.GetString("keepFromSource")
	delete(fields, "idBoardSource")
	delete(fields, "idCardSource")
	delete(fields, "keepFromSource")

	doc := Document{}
	if sourceField == "" || sourceID == "" {
		return doc, nil
	}

	source, err := h.store.Get(ctx, collection, sourceID)
	if errors.Is(err, ErrNotFound) {
		return nil, invalidValue(sourceField)
	}
	if err != nil {
		return nil, err
	}

	for k, v := range source {
		if keep == "" || keep == "all" || containsField(keep, k) {
			doc[k] = v
		}
	}
	delete(doc, "id")
	delete(doc, "url")
	return doc, nil
}

// prepare validates a new document and fills in the fields the API sets.
func (h *Handler) prepare(ctx context.Context, collection string, doc Document) error {
	id := doc.GetString("id")

	switch collection {
	case trello.CollectionBoards:
		if strings.TrimSpace(doc.GetString("name")) == "" {
			return invalidValue("name")
		}
		me, err := h.me(ctx)
		if err != nil {
			return err
		}
		setDefault(doc, "desc", "")
		setDefault(doc, "closed", false)
		setDefault(doc, "idOrganization", nil)
		doc["idMembers"] = []any{me.GetString("id")}
		doc["url"] = "https://trello.com/b/" + id

	case trello.CollectionLists:
		if strings.TrimSpace(doc.GetString("name")) == "" {
			return invalidValue("name")
		}
		if _, err := h.store.Get(ctx, trello.CollectionBoards, doc.GetString("idBoard")); err != nil {
			return notFoundAs(err, "idBoard")
		}
		setDefault(doc, "closed", false)
		return h.placeNew(ctx, trello.CollectionLists, doc, Filter{Path: "$.idBoard", Value: doc.GetString("idBoard")})

	case trello.CollectionCards:
		list, err := h.store.Get(ctx, trello.CollectionLists, doc.GetString("idList"))
		if err != nil {
			return notFoundAs(err, "idList")
		}
		doc["idBoard"] = list.GetString("idBoard")
		setDefault(doc, "name", "")
		setDefault(doc, "desc", "")
		setDefault(doc, "closed", false)
		setDefault(doc, "due", nil)
		setDefault(doc, "idMembers", []any{})
		setDefault(doc, "idLabels", []any{})
		doc["url"] = "https://trello.com/c/" + id
		return h.placeNew(ctx, trello.CollectionCards, doc, Filter{Path: "$.idList", Value: doc.GetString("idList")})

	case trello.CollectionChecklists:
		card, err := h.store.Get(ctx, trello.CollectionCards, doc.GetString("idCard"))
		if err != nil {
			return notFoundAs(err, "idCard")
		}
		doc["idBoard"] = card.GetString("idBoard")
		setDefault(doc, "name", "Checklist")
		doc["checkItems"] = []any{}
		return h.placeNew(ctx, trello.CollectionChecklists, doc, Filter{Path: "$.idCard", Value: doc.GetString("idCard")})

	case trello.CollectionOrganizations:
		display := strings.TrimSpace(doc.GetString("displayName"))
		if display == "" {
			display = strings.TrimSpace(doc.GetString("name"))
		}
		if display == "" {
			return invalidValue("displayName")
		}
		me, err := h.me(ctx)
		if err != nil {
			return err
		}
		doc["displayName"] = display
		setDefault(doc, "name", strings.ToLower(strings.Join(strings.Fields(display), "")))
		setDefault(doc, "desc", "")
		doc["idMembers"] = []any{me.GetString("id")}

	case trello.CollectionWebhooks:
		if doc.GetString("idModel") == "" {
			return invalidValue("idModel")
		}
		if doc.GetString("callbackURL") == "" {
			return invalidValue("callbackURL")
		}
		setDefault(doc, "description", "")
		setDefault(doc, "active", true)

	case trello.CollectionMembers:
		if strings.TrimSpace(doc.GetString("username")) == "" {
			return invalidValue("username")
		}
	}
	return nil
}

func (h *Handler) update(ctx context.Context, collection, rawID string, fields Document) (Document, error) {
	id, err := h.resolveID(ctx, collection, rawID)
	if err != nil {
		return nil, err
	}
	current, err := h.store.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	delete(fields, "id")

	switch collection {
	case trello.CollectionCards:
		if listID := fields.GetString("idList"); listID != "" && listID != current.GetString("idList") {
			list, err := h.store.Get(ctx, trello.CollectionLists, listID)
			if err != nil {
				return nil, notFoundAs(err, "idList")
			}
			fields["idBoard"] = list.GetString("idBoard")
		}
		if _, ok := fields["pos"]; ok {
			listID := fields.GetString("idList")
			if listID == "" {
				listID = current.GetString("idList")
			}
			if err := h.place(ctx, collection, id, fields, Filter{Path: "$.idList", Value: listID}); err != nil {
				return nil, err
			}
		}
	case trello.CollectionLists:
		if _, ok := fields["pos"]; ok {
			if err := h.place(ctx, collection, id, fields, Filter{Path: "$.idBoard", Value: current.GetString("idBoard")}); err != nil {
				return nil, err
			}
		}
	}

	return h.store.Update(ctx, collection, id, fields)
}

// placeNew resolves the pos of a new document among its siblings.
func (h *Handler) placeNew(ctx context.Context, collection string, doc Document, siblings Filter) error {
	return h.place(ctx, collection, doc.GetString("id"), doc, siblings)
}

// place replaces a symbolic or string pos in fields with a number.
// top goes before the first sibling, bottom (the default) after the last.
func (h *Handler) place(ctx context.Context, collection, id string, fields Document, siblings Filter) error {
	raw := fields.GetString("pos")
	if _, ok := fields["pos"].(float64); ok {
		return nil
	}
	if raw == "" {
		raw = "bottom"
	}

	if raw != "top" && raw != "bottom" {
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil || !(n > 0) || math.IsInf(n, 1) {
			return invalidValue("pos")
		}
		fields["pos"] = n
		return nil
	}

	docs, err := h.store.List(ctx, collection, siblings)
	if err != nil {
		return err
	}
	lowest, highest := math.Inf(1), 0.0
	for _, d := range docs {
		if d.GetString("id") == id {
			continue
		}
		p := position(d)
		lowest = math.Min(lowest, p)
		highest = math.Max(highest, p)
	}

	if raw == "top" {
		if math.IsInf(lowest, 1) {
			fields["pos"] = float64(posStep)
		} else {
			fields["pos"] = lowest / 2
		}
		return nil
	}
	fields["pos"] = highest + posStep
	return nil
}

// recordAction stores the action that announces a newly created document.
func (h *Handler) recordAction(ctx context.Context, collection string, doc Document) error {
	actionType, ok := actionTypes[collection]
	if !ok {
		return nil
	}

	data := map[string]any{}
	ref := func(id string) map[string]any { return map[string]any{"id": id} }

	switch collection {
	case trello.CollectionBoards:
		data["board"] = map[string]any{"id": doc.GetString("id"), "name": doc.GetString("name")}
	case trello.CollectionLists:
		data["list"] = map[string]any{"id": doc.GetString("id"), "name": doc.GetString("name")}
		data["board"] = ref(doc.GetString("idBoard"))
	case trello.CollectionCards:
		data["card"] = map[string]any{"id": doc.GetString("id"), "name": doc.GetString("name")}
		data["list"] = ref(doc.GetString("idList"))
		data["board"] = ref(doc.GetString("idBoard"))
	case trello.CollectionChecklists:
		data["checklist"] = map[string]any{"id": doc.GetString("id"), "name": doc.GetString("name")}
		data["card"] = ref(doc.GetString("idCard"))
		data["board"] = ref(doc.GetString("idBoard"))
	case trello.CollectionOrganizations:
		data["organization"] = map[string]any{"id": doc.GetString("id"), "name": doc.GetString("displayName")}
	}

	me, err := h.me(ctx)
	if err != nil {
		return err
	}

	_, err = h.store.Create(ctx, trello.CollectionActions, Document{
		"type":            actionType,
		"date":            h.now().UTC().Format("2006-01-02T15:04:05.000Z"),
		"idMemberCreator": me.GetString("id"),
		"data":            data,
	})
	return err
}

// fail writes err as the API would report it.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		Text(w, reqErr.status, reqErr.message)
	case errors.Is(err, ErrNotFound):
		Text(w, http.StatusNotFound, msgNotFound)
	default:
		h.logger.Error("request failed", zap.Error(err))
		Text(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// notFoundAs reports a missing referenced document as an invalid field value.
func notFoundAs(err error, field string) error {
	if errors.Is(err, ErrNotFound) {
		return invalidValue(field)
	}
	return err
}

func setDefault(doc Document, key string, value any) {
	if _, ok := doc[key]; !ok {
		doc[key] = value
	}
}

func position(doc Document) float64 {
	p, _ := doc["pos"].(float64)
	return p
}

// filterClosed applies the filter query parameter: open (the default), closed or all.
func filterClosed(docs []Document, filter string) []Document {
	if filter == "all" {
		return docs
	}
	wantClosed := filter == "closed"

	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		closed, _ := doc["closed"].(bool)
		if closed == wantClosed {
			out = append(out, doc)
		}
	}
	return out
}

// selectFields keeps only the comma-separated fields, plus id. Empty or
// "all" keeps everything.
func selectFields(doc Document, fields string) Document {
	if fields == "" || fields == "all" {
		return doc
	}
	out := Document{"id": doc["id"]}
	for _, f := range strings.Split(fields, ",") {
		f = strings.TrimSpace(f)
		if v, ok := doc[f]; ok {
			out[f] = v
		}
	}
	return out
}

func containsField(csv, field string) bool {
	for _, f := range strings.Split(csv, ",") {
		if strings.TrimSpace(f) == field {
			return true
		}
	}
	return false
}
