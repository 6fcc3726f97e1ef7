package store

import (
	"context"
	"errors"

	"github.com/quiz-me/apiserver/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DeckRepository mutates the deck and card sub-documents embedded in user
// documents. It shares the users collection with UserRepository.
type DeckRepository struct {
	col *mongo.Collection
}

func NewDeckRepository(database *mongo.Database) *DeckRepository {
	return &DeckRepository{col: database.Collection(usersCollection)}
}

// AddDeck pushes a new deck onto the user's decks array.
func (r *DeckRepository) AddDeck(ctx context.Context, userID bson.ObjectID, deck types.Deck) error {
	if deck.Cards == nil {
		deck.Cards = []types.Card{}
	}

	result, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"decks": deck}},
	)
	if err != nil {
		return err
	}
	if result.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddCard pushes a new card onto the matched deck's cards array. The filter
// matches on both user and deck so a deck id belonging to another user is
// reported as not found.
func (r *DeckRepository) AddCard(ctx context.Context, userID, deckID bson.ObjectID, card types.Card) error {
	result, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID, "decks.id": deckID},
		bson.M{"$push": bson.M{"decks.$.cards": card}},
	)
	if err != nil {
		return err
	}
	if result.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleMarked flips the marked flag on a card and returns the new state.
// The current state is read first, then written back with array filters
// addressing the deck and card by id.
func (r *DeckRepository) ToggleMarked(ctx context.Context, userID, deckID, cardID bson.ObjectID) (bool, error) {
	var user types.User
	err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, ErrNotFound
		}
		return false, err
	}

	card := findCard(user.Decks, deckID, cardID)
	if card == nil {
		return false, ErrNotFound
	}
	next := !card.Marked

	result, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"decks.$[d].cards.$[c].marked": next}},
		options.UpdateOne().SetArrayFilters([]any{
			bson.M{"d.id": deckID},
			bson.M{"c.id": cardID},
		}),
	)
	if err != nil {
		return false, err
	}
	if result.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return next, nil
}

func findCard(decks []types.Deck, deckID, cardID bson.ObjectID) *types.Card {
	for i := range decks {
		if decks[i].ID != deckID {
			continue
		}
		for j := range decks[i].Cards {
			if decks[i].Cards[j].ID == cardID {
				return &decks[i].Cards[j]
			}
		}
	}
	return nil
}
