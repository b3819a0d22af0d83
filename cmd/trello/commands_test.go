package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/airyra/trello/internal/config"
	"github.com/airyra/trello/internal/sandbox"
	"github.com/airyra/trello/pkg/trello"
)

// newSandboxClient returns a client talking to an in-memory sandbox.
func newSandboxClient(t *testing.T) *trello.Client {
	t.Helper()

	store, err := sandbox.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	server := httptest.NewServer(sandbox.NewRouter(store, zap.NewNop()))
	t.Cleanup(server.Close)

	c, err := newClient(&config.ResolvedConfig{
		APIKey:  "abc",
		Token:   "token",
		BaseURL: server.URL + "/1",
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

// created decodes the JSON a create command printed and returns its id.
func created(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out), buf.String())
	buf.Reset()
	return out
}

func TestCommands_BoardListCardFlow(t *testing.T) {
	setJSONOutput(t, true)
	c := newSandboxClient(t)
	ctx := context.Background()
	var buf bytes.Buffer

	require.NoError(t, runBoardCreate(ctx, c, &buf, "Roadmap", "plans", ""))
	board := created(t, &buf)
	boardID := board["id"].(string)
	assert.Equal(t, "plans", board["desc"])

	require.NoError(t, runListCreate(ctx, c, &buf, "Todo", boardID, ""))
	todoID := created(t, &buf)["id"].(string)
	require.NoError(t, runListCreate(ctx, c, &buf, "Done", boardID, ""))
	doneID := created(t, &buf)["id"].(string)

	require.NoError(t, runCardCreate(ctx, c, &buf, "Second", todoID, "", ""))
	secondID := created(t, &buf)["id"].(string)
	require.NoError(t, runCardCreate(ctx, c, &buf, "First", todoID, "", "top"))
	firstID := created(t, &buf)["id"].(string)

	require.NoError(t, runListCards(ctx, c, &buf, todoID, ""))
	var cards []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &cards))
	buf.Reset()
	require.Len(t, cards, 2)
	assert.Equal(t, firstID, cards[0]["id"])
	assert.Equal(t, secondID, cards[1]["id"])

	require.NoError(t, runCardMove(ctx, c, &buf, secondID, doneID, ""))
	assert.Contains(t, buf.String(), doneID)
	buf.Reset()

	require.NoError(t, runBoardLists(ctx, c, &buf, boardID, ""))
	var lists []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &lists))
	buf.Reset()
	require.Len(t, lists, 2)
	assert.Equal(t, "Todo", lists[0]["name"])

	require.NoError(t, runBoardCards(ctx, c, &buf, boardID, ""))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &cards))
	buf.Reset()
	assert.Len(t, cards, 2)

	require.NoError(t, runCardCopy(ctx, c, &buf, firstID, doneID, "", nil))
	dup := created(t, &buf)
	assert.Equal(t, "First Copy", dup["name"])
	assert.Equal(t, doneID, dup["idList"])

	require.NoError(t, runBoardCopy(ctx, c, &buf, boardID, "Roadmap 2", []string{"desc"}))
	boardCopy := created(t, &buf)
	assert.Equal(t, "Roadmap 2", boardCopy["name"])
	assert.Equal(t, "plans", boardCopy["desc"])

	require.NoError(t, runCardDelete(ctx, c, &buf, firstID))
	buf.Reset()
	err := runCardShow(ctx, c, &buf, firstID)
	require.Error(t, err)
	assert.Equal(t, ExitNotFound, mapErrorToExitCode(err))
}

func TestCommands_TableOutput(t *testing.T) {
	setJSONOutput(t, false)
	c := newSandboxClient(t)
	ctx := context.Background()
	var buf bytes.Buffer

	require.NoError(t, runBoardList(ctx, c, &buf, "me", ""))
	assert.Equal(t, "No boards found\n", buf.String())
	buf.Reset()

	require.NoError(t, runBoardCreate(ctx, c, &buf, "Roadmap", "", ""))
	assert.Contains(t, buf.String(), "Roadmap")
	buf.Reset()

	require.NoError(t, runBoardList(ctx, c, &buf, "me", ""))
	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Roadmap")
	buf.Reset()

	require.NoError(t, runBoardList(ctx, c, &buf, "me", "closed"))
	assert.Equal(t, "No boards found\n", buf.String())
	buf.Reset()

	require.NoError(t, runMemberShow(ctx, c, &buf, "me"))
	assert.Contains(t, buf.String(), "sandbox")
}

func TestCommands_Validation(t *testing.T) {
	c := newSandboxClient(t)
	ctx := context.Background()
	var buf bytes.Buffer

	err := runListCreate(ctx, c, &buf, "Todo", "", "")
	assert.Equal(t, ExitInvalidArgs, mapErrorToExitCode(err), "missing board is caught locally")

	err = runCardCreate(ctx, c, &buf, "Card", "some-list", "", "sideways")
	assert.Equal(t, ExitInvalidArgs, mapErrorToExitCode(err))

	err = runCardMove(ctx, c, &buf, "abc", "", "")
	assert.Equal(t, ExitInvalidArgs, mapErrorToExitCode(err))

	err = runCardCreate(ctx, c, &buf, "Card", "missing-list", "", "")
	assert.Equal(t, ExitAPIError, mapErrorToExitCode(err), "the sandbox rejects unknown lists with 400")

	err = runAuthURL(c, &buf, "App", "https://example.com", []string{"read"}, "2days", "fragment")
	assert.Equal(t, ExitInvalidArgs, mapErrorToExitCode(err))
	assert.Empty(t, buf.String())
}

func TestCommands_OrgsChecklistsWebhooks(t *testing.T) {
	setJSONOutput(t, true)
	c := newSandboxClient(t)
	ctx := context.Background()
	var buf bytes.Buffer

	require.NoError(t, runOrgCreate(ctx, c, &buf, "Core Team", ""))
	org := created(t, &buf)
	assert.Equal(t, "coreteam", org["name"])

	require.NoError(t, runBoardCreate(ctx, c, &buf, "B", "", org["id"].(string)))
	boardID := created(t, &buf)["id"].(string)

	require.NoError(t, runOrgBoards(ctx, c, &buf, org["id"].(string)))
	var boards []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &boards))
	buf.Reset()
	assert.Len(t, boards, 1)

	require.NoError(t, runMemberOrgs(ctx, c, &buf, "me"))
	assert.Contains(t, buf.String(), "Core Team")
	buf.Reset()

	require.NoError(t, runListCreate(ctx, c, &buf, "L", boardID, "bottom"))
	listID := created(t, &buf)["id"].(string)
	require.NoError(t, runCardCreate(ctx, c, &buf, "C", listID, "details", ""))
	cardID := created(t, &buf)["id"].(string)

	require.NoError(t, runChecklistCreate(ctx, c, &buf, cardID, ""))
	checklist := created(t, &buf)
	assert.Equal(t, "Checklist", checklist["name"])

	require.NoError(t, runChecklistItems(ctx, c, &buf, checklist["id"].(string)))
	assert.JSONEq(t, `[]`, buf.String())
	buf.Reset()

	require.NoError(t, runCardActions(ctx, c, &buf, cardID))
	var actions []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &actions))
	buf.Reset()
	require.Len(t, actions, 2)
	assert.Equal(t, "addChecklistToCard", actions[0]["type"])

	require.NoError(t, runActionShow(ctx, c, &buf, actions[1]["id"].(string)))
	assert.Equal(t, "createCard", created(t, &buf)["type"])

	require.NoError(t, runWebhookCreate(ctx, c, &buf, boardID, "https://example.com/hook", "watch"))
	hook := created(t, &buf)
	assert.Equal(t, true, hook["active"])
	assert.Equal(t, "watch", hook["description"])
}

func TestRunAuthURL(t *testing.T) {
	setJSONOutput(t, false)
	c, err := trello.NewClient("abc")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runAuthURL(c, &buf, "App", "https://example.com/cb", []string{"read", "write"}, "never", "postMessage"))
	assert.Equal(t,
		"https://trello.com/1/authorize?callback_method=postMessage&return_url=https://example.com/cb&scope=read,write&expiration=never&name=App&key=abc\n",
		buf.String())
}

func TestRunConfigInit(t *testing.T) {
	setJSONOutput(t, false)
	path := filepath.Join(t.TempDir(), ".trello", "config.toml")
	cfg := &config.GlobalConfig{APIKey: "k", Token: "t", Timeout: 5 * time.Second}

	var buf bytes.Buffer
	require.NoError(t, runConfigInit(&buf, path, cfg, false))
	assert.True(t, strings.HasPrefix(buf.String(), "Wrote "))

	loaded, err := config.LoadGlobalConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, *cfg, *loaded)

	err = runConfigInit(&buf, path, cfg, false)
	assert.Equal(t, ExitInvalidArgs, mapErrorToExitCode(err), "existing file is kept")

	cfg.Token = "t2"
	require.NoError(t, runConfigInit(&buf, path, cfg, true))
	loaded, err = config.LoadGlobalConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "t2", loaded.Token)

	err = runConfigInit(&buf, filepath.Join(t.TempDir(), "x.toml"), &config.GlobalConfig{}, false)
	assert.Equal(t, ExitInvalidArgs, mapErrorToExitCode(err))

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}
