package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/quiz-me/apiserver/internal/apierr"
	"github.com/quiz-me/apiserver/internal/services"
	"github.com/quiz-me/apiserver/types"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// DeckHandler provides deck and card endpoints. All routes are protected and
// additionally require the path user id to match the authenticated user.
type DeckHandler struct {
	decks *services.DeckService
}

func NewDeckHandler(decks *services.DeckService) *DeckHandler {
	return &DeckHandler{decks: decks}
}

// DeckRouter registers deck/card routes on the given router behind the gate.
func DeckRouter(r chi.Router, handler *DeckHandler, gate *Gate) {
	r.Use(gate.RequireAuth)
	r.Post("/{userID}/decks", handler.CreateDeck)
	r.Post("/{userID}/decks/{deckID}/cards", handler.CreateCard)
	r.Post("/{userID}/decks/{deckID}/cards/{cardID}/toggle-marked", handler.ToggleMarked)
}

type CreateDeckRequest struct {
	Title string `json:"title"`
}

type CreateCardRequest struct {
	SideA string `json:"sideA"`
	SideB string `json:"sideB"`
}

// CreateDeck adds a new deck to the authenticated user.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	user, ok := requestOwner(w, r)
	if !ok {
		return
	}

	var req CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		writeErr(w, apierr.ErrInvalidInput)
		return
	}

	deckID, err := h.decks.CreateDeck(r.Context(), user.ID, req.Title)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"deckId": deckID})
}

// CreateCard adds a new card to one of the authenticated user's decks.
func (h *DeckHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	user, ok := requestOwner(w, r)
	if !ok {
		return
	}

	deckID, err := bson.ObjectIDFromHex(chi.URLParam(r, "deckID"))
	if err != nil {
		writeErr(w, apierr.ErrInvalidInput)
		return
	}

	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SideA == "" || req.SideB == "" {
		writeErr(w, apierr.ErrInvalidInput)
		return
	}

	cardID, err := h.decks.CreateCard(r.Context(), user.ID, deckID, req.SideA, req.SideB)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"cardId": cardID})
}

// ToggleMarked flips the marked flag on a card.
func (h *DeckHandler) ToggleMarked(w http.ResponseWriter, r *http.Request) {
	user, ok := requestOwner(w, r)
	if !ok {
		return
	}

	deckID, err := bson.ObjectIDFromHex(chi.URLParam(r, "deckID"))
	if err != nil {
		writeErr(w, apierr.ErrInvalidInput)
		return
	}
	cardID, err := bson.ObjectIDFromHex(chi.URLParam(r, "cardID"))
	if err != nil {
		writeErr(w, apierr.ErrInvalidInput)
		return
	}

	marked, err := h.decks.ToggleMarked(r.Context(), user.ID, deckID, cardID)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]bool{"marked": marked})
}

// requestOwner returns the authenticated user after checking that the path
// user id matches. On failure it writes the error and reports false.
func requestOwner(w http.ResponseWriter, r *http.Request) (types.User, bool) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeErr(w, apierr.ErrInvalidToken)
		return types.User{}, false
	}
	if chi.URLParam(r, "userID") != user.ID.Hex() {
		writeErr(w, apierr.ErrUnableToVerify)
		return types.User{}, false
	}
	return user, true
}
