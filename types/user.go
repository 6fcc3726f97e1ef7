package types

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents an account document in the users collection.
// Decks and their cards are embedded sub-documents of the owning user.
type User struct {
	// ID is the store-generated identifier of the user.
	ID bson.ObjectID `json:"id" bson:"_id,omitempty"`

	// Email is the user's login email, unique across all users.
	Email string `json:"email" bson:"email"`

	// PasswordHash stores the PBKDF2-derived hash of the user's password.
	// Never exposed in API responses.
	PasswordHash string `json:"-" bson:"passwordHash"`

	// Salt is the per-user random salt the hash was derived with.
	// Never exposed in API responses.
	Salt string `json:"-" bson:"salt"`

	// FirstName and LastName are optional profile fields supplied at
	// registration.
	FirstName string `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty" bson:"lastName,omitempty"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`

	// Decks holds the user's flashcard decks.
	Decks []Deck `json:"decks" bson:"decks"`
}

// Deck is a named collection of flashcards embedded in a user document.
type Deck struct {
	ID     bson.ObjectID `json:"id" bson:"id"`
	Title  string        `json:"title" bson:"title"`
	Public bool          `json:"public" bson:"public"`
	Cards  []Card        `json:"cards" bson:"cards"`
}

// Card is a single two-sided flashcard embedded in a deck.
type Card struct {
	ID     bson.ObjectID `json:"id" bson:"id"`
	SideA  string        `json:"sideA" bson:"sideA"`
	SideB  string        `json:"sideB" bson:"sideB"`
	Marked bool          `json:"marked" bson:"marked"`
}

// Profile carries the optional registration fields a caller may supply
// alongside email and password.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
