package trello

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestOperationsWithoutIDMakeNoRequest(t *testing.T) {
	server, hits := countingServer(t, `{}`)
	client := newTestClient(t, server)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"board fetch", func() error { _, err := NewBoard(client, nil).Fetch(ctx); return err }},
		{"board update", func() error { _, err := NewBoard(client, nil).Update(ctx); return err }},
		{"board delete", func() error { return NewBoard(client, nil).Delete(ctx) }},
		{"board cards", func() error { _, err := NewBoard(client, nil).GetCards(ctx, nil); return err }},
		{"card fetch", func() error { _, err := NewCard(client, nil).Fetch(ctx); return err }},
		{"card update", func() error { _, err := NewCard(client, nil).Update(ctx); return err }},
		{"lane fetch", func() error { _, err := NewLane(client, nil).Fetch(ctx); return err }},
		{"lane update", func() error { _, err := NewLane(client, nil).Update(ctx); return err }},
		{"member fetch", func() error { _, err := NewMember(client, nil).Fetch(ctx); return err }},
		{"member boards", func() error { _, err := NewMember(client, nil).GetBoards(ctx, nil); return err }},
		{"organization update", func() error { _, err := NewOrganization(client, nil).Update(ctx); return err }},
		{"action fetch", func() error { _, err := NewAction(client, nil).Fetch(ctx); return err }},
		{"checklist fetch", func() error { _, err := NewChecklist(client, nil).Fetch(ctx); return err }},
		{"webhook update", func() error { _, err := NewWebhook(client, nil).Update(ctx); return err }},
		{"get path", func() error { _, err := NewCard(client, nil).GetPath(ctx, "actions", nil); return err }},
		{"empty id", func() error { _, err := NewBoard(client, nil).SetID("").Fetch(ctx); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, ErrNoID) {
				t.Errorf("expected ErrNoID, got %v", err)
			}
			if !IsArgumentError(err) {
				t.Errorf("expected argument error, got %v", err)
			}
		})
	}

	if n := atomic.LoadInt32(hits); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestFieldAccess(t *testing.T) {
	client, _ := NewClient("abc")
	b := NewBoard(client, RecordOf("id", "b1", "name", "Demo"))

	if b.ID() != "b1" || b.GetString("name") != "Demo" {
		t.Errorf("unexpected fields %v", b.ToMap())
	}
	if b.Collection() != "boards" || b.Client() != client {
		t.Error("unexpected collection or client")
	}

	same := b.Set("desc", "text").Remove("name").SetID("b2")
	if same != b {
		t.Error("expected setters to return the receiver")
	}
	if b.Has("name") || !b.Has("desc") || b.ID() != "b2" {
		t.Errorf("unexpected fields %v", b.ToMap())
	}
	if b.Len() != 2 || b.Fields().Len() != 2 {
		t.Errorf("expected 2 fields, got %d", b.Len())
	}
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/1/lists/l1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"id":"l1","name":"Doing","idBoard":"b1"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	orig := NewLane(client, nil).SetID("l1")

	lane, err := orig.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lane == orig {
		t.Error("expected a new model")
	}
	if lane.GetString("name") != "Doing" || lane.Collection() != "lists" {
		t.Errorf("unexpected lane %v", lane.ToMap())
	}
	if orig.Has("name") {
		t.Error("expected receiver to be unchanged")
	}
}

func TestSaveCreatesOrUpdates(t *testing.T) {
	var calls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		r.ParseForm()
		switch r.Method {
		case http.MethodPost:
			io.WriteString(w, `{"id":"o1","name":"`+r.PostForm.Get("name")+`"}`)
		case http.MethodPut:
			io.WriteString(w, `{"id":"o1","name":"`+r.PostForm.Get("name")+`","displayName":"Team"}`)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	ctx := context.Background()

	org, err := NewOrganization(client, RecordOf("name", "team")).Save(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if org.ID() != "o1" {
		t.Fatalf("expected id o1, got %q", org.ID())
	}

	updated, err := org.Set("name", "team2").Save(ctx)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.GetString("displayName") != "Team" || updated.GetString("name") != "team2" {
		t.Errorf("unexpected update result %v", updated.ToMap())
	}

	want := []string{"POST /1/organizations", "PUT /1/organizations/o1"}
	if len(calls) != len(want) || calls[0] != want[0] || calls[1] != want[1] {
		t.Errorf("expected calls %v, got %v", want, calls)
	}
}

func TestDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/1/cards/c1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"_value":null}`)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if err := NewCard(client, nil).SetID("c1").Delete(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "The requested resource was not found.")
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.GetCard(context.Background(), "missing")
	if !IsAPIError(err) || StatusCode(err) != http.StatusNotFound {
		t.Fatalf("expected 404 API error, got %v", err)
	}
}

func TestRequireField(t *testing.T) {
	r := RecordOf("name", "  ", "idList", "l1")

	err := requireField(r, "name", "")
	if err == nil || err.Error() != `Missing required field "name"` {
		t.Errorf("unexpected error %v", err)
	}
	err = requireField(r, "idBoard", "id of the board")
	if err == nil || err.Error() != `Missing required field "idBoard" - id of the board` {
		t.Errorf("unexpected error %v", err)
	}
	if err := requireField(r, "idList", ""); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}
