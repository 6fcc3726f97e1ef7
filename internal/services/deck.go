package services

import (
	"context"
	"errors"

	"github.com/quiz-me/apiserver/internal/apierr"
	"github.com/quiz-me/apiserver/internal/store"
	"github.com/quiz-me/apiserver/types"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// DeckRepository defines the sub-document operations for decks and cards.
type DeckRepository interface {
	AddDeck(ctx context.Context, userID bson.ObjectID, deck types.Deck) error
	AddCard(ctx context.Context, userID, deckID bson.ObjectID, card types.Card) error
	ToggleMarked(ctx context.Context, userID, deckID, cardID bson.ObjectID) (bool, error)
}

// DeckService encapsulates deck and card use-cases.
type DeckService struct {
	repo DeckRepository
}

func NewDeckService(repo DeckRepository) *DeckService {
	return &DeckService{repo: repo}
}

// CreateDeck adds an empty deck to the user and returns its id.
func (s *DeckService) CreateDeck(ctx context.Context, userID bson.ObjectID, title string) (string, error) {
	deck := types.Deck{
		ID:     bson.NewObjectID(),
		Title:  title,
		Public: true,
		Cards:  []types.Card{},
	}
	if err := s.repo.AddDeck(ctx, userID, deck); err != nil {
		return "", apierr.ErrCreatingDeck
	}
	return deck.ID.Hex(), nil
}

// CreateCard adds an unmarked card to the given deck and returns its id.
func (s *DeckService) CreateCard(ctx context.Context, userID, deckID bson.ObjectID, sideA, sideB string) (string, error) {
	card := types.Card{
		ID:    bson.NewObjectID(),
		SideA: sideA,
		SideB: sideB,
	}
	if err := s.repo.AddCard(ctx, userID, deckID, card); err != nil {
		return "", apierr.ErrCreatingCard
	}
	return card.ID.Hex(), nil
}

// ToggleMarked flips a card's marked flag and returns the new state.
func (s *DeckService) ToggleMarked(ctx context.Context, userID, deckID, cardID bson.ObjectID) (bool, error) {
	marked, err := s.repo.ToggleMarked(ctx, userID, deckID, cardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, apierr.ErrUpdatingCard
		}
		return false, apierr.ErrStoreUnavailable
	}
	return marked, nil
}
