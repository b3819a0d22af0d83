package sandbox

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/airyra/trello/pkg/trello"
)

// collections are the REST collections served with plain CRUD routes.
var collections = []string{
	trello.CollectionActions,
	trello.CollectionBoards,
	trello.CollectionCards,
	trello.CollectionChecklists,
	trello.CollectionLists,
	trello.CollectionMembers,
	trello.CollectionOrganizations,
	trello.CollectionWebhooks,
}

// NewRouter creates and configures the HTTP router.
func NewRouter(store *Store, logger *zap.Logger) *chi.Mux {
	h := NewHandler(store, logger)
	r := chi.NewRouter()

	// Global middleware chain
	r.Use(Recovery(logger))
	r.Use(Logging(logger))
	r.Use(chimiddleware.RealIP)

	r.NotFound(NotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		Text(w, http.StatusMethodNotAllowed, "Cannot "+r.Method+" "+r.URL.Path)
	})

	r.Route("/1", func(r chi.Router) {
		r.Use(RequireKey)

		for _, c := range collections {
			r.Post("/"+c, h.Create(c))
			r.Get("/"+c+"/{id}", h.Get(c))
			r.Put("/"+c+"/{id}", h.Update(c))
			r.Delete("/"+c+"/{id}", h.Delete(c))
		}

		// Boards
		r.Get("/boards/{id}/cards", h.Related(trello.CollectionBoards, trello.CollectionCards, match("$.idBoard")))
		r.Get("/boards/{id}/cards/{cardID}", h.BoardCard)
		r.Get("/boards/{id}/lists", h.Related(trello.CollectionBoards, trello.CollectionLists, match("$.idBoard")))
		r.Get("/boards/{id}/actions", h.Related(trello.CollectionBoards, trello.CollectionActions, match("$.data.board.id")))
		r.Get("/boards/{id}/members", h.Members(trello.CollectionBoards))

		// Lists
		r.Get("/lists/{id}/cards", h.Related(trello.CollectionLists, trello.CollectionCards, match("$.idList")))

		// Cards
		r.Get("/cards/{id}/actions", h.Related(trello.CollectionCards, trello.CollectionActions, match("$.data.card.id")))
		r.Get("/cards/{id}/checklists", h.Related(trello.CollectionCards, trello.CollectionChecklists, match("$.idCard")))
		r.Get("/cards/{id}/members", h.Members(trello.CollectionCards))

		// Checklists
		r.Get("/checklists/{id}/checkItems", h.CheckItems)

		// Members
		r.Get("/members/{id}/boards", h.Related(trello.CollectionMembers, trello.CollectionBoards, contains("$.idMembers")))
		r.Get("/members/{id}/organizations", h.Related(trello.CollectionMembers, trello.CollectionOrganizations, contains("$.idMembers")))
		r.Get("/members/{id}/cards", h.Related(trello.CollectionMembers, trello.CollectionCards, contains("$.idMembers")))

		// Organizations
		r.Get("/organizations/{id}/boards", h.Related(trello.CollectionOrganizations, trello.CollectionBoards, match("$.idOrganization")))
	})

	return r
}

func match(path string) func(id string) Filter {
	return func(id string) Filter {
		return Filter{Path: path, Value: id}
	}
}

func contains(path string) func(id string) Filter {
	return func(id string) Filter {
		return Filter{Path: path, Value: id, Contains: true}
	}
}
