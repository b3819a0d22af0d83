// Package trello provides a Go client for the Trello REST API.
//
// The package has two layers: a Client that authenticates and executes
// requests, and models (Board, Card, Lane, Member, Organization, Action,
// Checklist, Webhook) that wrap one entity's fields and navigate to related
// entities through the Client.
//
// # Getting Started
//
// Create a client with an application key and, once a user has authorized
// the application, their access token:
//
//	client, err := trello.NewClient(apiKey,
//	    trello.WithAccessToken(token),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
// Send users to the authorization page to obtain a token:
//
//	u, err := client.AuthorizationURL("My App", "https://example.com/callback",
//	    trello.WithScopes(trello.ScopeRead, trello.ScopeWrite),
//	)
//
// # Models
//
// Fetch a board and walk to its lists and cards:
//
//	board, err := client.GetBoard(ctx, "4d5ea62fd76aa1136000000c")
//	lists, err := board.GetLists(ctx, nil)
//	cards, err := lists[0].GetCards(ctx, nil)
//
// Fields are read and written by name. Models keep whatever the API returned:
//
//	name := board.GetString("name")
//	board.Set("desc", "Quarterly planning")
//	board, err = board.Update(ctx)
//
// Create a card:
//
//	card, err := trello.NewCard(client, nil).
//	    Set("name", "Write release notes").
//	    Set("idList", listID).
//	    SetPosition(trello.PositionTop).
//	    Save(ctx)
//
// Decode fields into your own struct:
//
//	var info struct {
//	    ID     string `json:"id"`
//	    Name   string `json:"name"`
//	    Closed bool   `json:"closed"`
//	}
//	err := board.Decode(&info)
//
// # Raw Requests
//
// Client.Get, Post, Put and Delete reach any endpoint. Each returns a
// Response with the decoded body, the raw body, the status code and the
// request duration:
//
//	resp, err := client.Get(ctx, "search", url.Values{"query": {"release"}})
//	rec, err := resp.Record()
//
// # Error Handling
//
// Every failure is an *Error. Helpers report its kind:
//
//	_, err := client.GetCard(ctx, id)
//	switch {
//	case trello.IsArgumentError(err):
//	    // invalid input, no request was made
//	case trello.IsAPIError(err):
//	    // the API answered with trello.StatusCode(err)
//	case trello.IsTransportError(err):
//	    // the API could not be reached
//	case trello.IsDecodeError(err):
//	    // the response was not JSON
//	}
//
// The package performs no retries and no logging.
package trello
