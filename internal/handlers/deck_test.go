package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/quiz-me/apiserver/config"
	"github.com/quiz-me/apiserver/internal/services"
	"github.com/quiz-me/apiserver/internal/store"
	"github.com/quiz-me/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// memDeckRepo keeps decks per user id, mirroring the embedded layout.
type memDeckRepo struct {
	decks map[string][]types.Deck
}

func newMemDeckRepo() *memDeckRepo {
	return &memDeckRepo{decks: make(map[string][]types.Deck)}
}

func (m *memDeckRepo) AddDeck(_ context.Context, userID bson.ObjectID, deck types.Deck) error {
	m.decks[userID.Hex()] = append(m.decks[userID.Hex()], deck)
	return nil
}

func (m *memDeckRepo) AddCard(_ context.Context, userID, deckID bson.ObjectID, card types.Card) error {
	decks := m.decks[userID.Hex()]
	for i := range decks {
		if decks[i].ID == deckID {
			decks[i].Cards = append(decks[i].Cards, card)
			m.decks[userID.Hex()] = decks
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memDeckRepo) ToggleMarked(_ context.Context, userID, deckID, cardID bson.ObjectID) (bool, error) {
	decks := m.decks[userID.Hex()]
	for i := range decks {
		if decks[i].ID != deckID {
			continue
		}
		for j := range decks[i].Cards {
			if decks[i].Cards[j].ID == cardID {
				decks[i].Cards[j].Marked = !decks[i].Cards[j].Marked
				return decks[i].Cards[j].Marked, nil
			}
		}
	}
	return false, store.ErrNotFound
}

type deckTestEnv struct {
	*testEnv
	deckRepo *memDeckRepo
	userID   string
	access   string
}

func newDeckTestEnv(t *testing.T) *deckTestEnv {
	t.Helper()

	env := newTestEnv(t, config.CredentialSourceHeader)
	deckRepo := newMemDeckRepo()
	deckHandler := NewDeckHandler(services.NewDeckService(deckRepo))
	env.router.Route("/api/users", func(r chi.Router) {
		DeckRouter(r, deckHandler, env.gate)
	})

	userID := register(t, env, "alice@x.com", "secret1")
	session, _ := login(t, env, "alice@x.com", "secret1")

	return &deckTestEnv{testEnv: env, deckRepo: deckRepo, userID: userID, access: session.AccessToken}
}

func (e *deckTestEnv) authorized(r *http.Request) {
	r.Header.Set("Authorization", "Bearer "+e.access)
}

func TestCreateDeck(t *testing.T) {
	env := newDeckTestEnv(t)

	rec := env.do(http.MethodPost, "/api/users/"+env.userID+"/decks", map[string]string{"title": "Spanish"}, env.authorized)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, _, data := decodeEnvelope(t, rec)
	assert.Contains(t, data, "deckId")

	require.Len(t, env.deckRepo.decks[env.userID], 1)
	deck := env.deckRepo.decks[env.userID][0]
	assert.Equal(t, "Spanish", deck.Title)
	assert.True(t, deck.Public)
	assert.Empty(t, deck.Cards)
}

func TestCreateDeck_MissingTitle(t *testing.T) {
	env := newDeckTestEnv(t)

	rec := env.do(http.MethodPost, "/api/users/"+env.userID+"/decks", map[string]string{}, env.authorized)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.deckRepo.decks[env.userID])
}

func TestCreateDeck_PathUserMismatch(t *testing.T) {
	env := newDeckTestEnv(t)

	other := bson.NewObjectID().Hex()
	rec := env.do(http.MethodPost, "/api/users/"+other+"/decks", map[string]string{"title": "Spanish"}, env.authorized)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	_, errMsg, _ := decodeEnvelope(t, rec)
	require.NotNil(t, errMsg)
	assert.Equal(t, "unable to verify user status", *errMsg)
	assert.Empty(t, env.deckRepo.decks[other])
}

func TestCreateDeck_Unauthenticated(t *testing.T) {
	env := newDeckTestEnv(t)

	rec := env.do(http.MethodPost, "/api/users/"+env.userID+"/decks", map[string]string{"title": "Spanish"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, env.deckRepo.decks[env.userID])
}

func TestCreateCard(t *testing.T) {
	env := newDeckTestEnv(t)

	deckID := bson.NewObjectID()
	env.deckRepo.decks[env.userID] = []types.Deck{{ID: deckID, Title: "Spanish", Public: true}}

	rec := env.do(http.MethodPost, "/api/users/"+env.userID+"/decks/"+deckID.Hex()+"/cards",
		map[string]string{"sideA": "hola", "sideB": "hello"}, env.authorized)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, _, data := decodeEnvelope(t, rec)
	assert.Contains(t, data, "cardId")

	cards := env.deckRepo.decks[env.userID][0].Cards
	require.Len(t, cards, 1)
	assert.Equal(t, "hola", cards[0].SideA)
	assert.False(t, cards[0].Marked)
}

func TestCreateCard_MissingSide(t *testing.T) {
	env := newDeckTestEnv(t)

	deckID := bson.NewObjectID()
	env.deckRepo.decks[env.userID] = []types.Deck{{ID: deckID}}

	rec := env.do(http.MethodPost, "/api/users/"+env.userID+"/decks/"+deckID.Hex()+"/cards",
		map[string]string{"sideA": "hola"}, env.authorized)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCard_UnknownDeck(t *testing.T) {
	env := newDeckTestEnv(t)

	rec := env.do(http.MethodPost, "/api/users/"+env.userID+"/decks/"+bson.NewObjectID().Hex()+"/cards",
		map[string]string{"sideA": "hola", "sideB": "hello"}, env.authorized)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	_, errMsg, _ := decodeEnvelope(t, rec)
	require.NotNil(t, errMsg)
	assert.Equal(t, "error creating card", *errMsg)
}

func TestToggleMarked(t *testing.T) {
	env := newDeckTestEnv(t)

	deckID := bson.NewObjectID()
	cardID := bson.NewObjectID()
	env.deckRepo.decks[env.userID] = []types.Deck{{
		ID:    deckID,
		Cards: []types.Card{{ID: cardID, SideA: "hola", SideB: "hello"}},
	}}

	path := "/api/users/" + env.userID + "/decks/" + deckID.Hex() + "/cards/" + cardID.Hex() + "/toggle-marked"

	rec := env.do(http.MethodPost, path, nil, env.authorized)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"marked":true`)

	rec = env.do(http.MethodPost, path, nil, env.authorized)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"marked":false`)
}

func TestToggleMarked_MalformedID(t *testing.T) {
	env := newDeckTestEnv(t)

	path := "/api/users/" + env.userID + "/decks/not-an-id/cards/also-bad/toggle-marked"
	rec := env.do(http.MethodPost, path, nil, env.authorized)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
