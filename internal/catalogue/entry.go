package catalogue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind tags which variant a catalogue Entry holds.
type Kind string

const (
	KindIngredient Kind = "ingredient"
	KindRecipe     Kind = "recipe"
)

// Valid reports whether k is one of the known entry kinds.
func (k Kind) Valid() bool {
	return k == KindIngredient || k == KindRecipe
}

// RequiredItem is one line of a recipe: a referenced entry name and how many
// units of it the recipe needs.
type RequiredItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Entry is either an ingredient or a recipe, selected by Kind. CookTime is only
// meaningful for ingredients and RequiredItems only for recipes.
type Entry struct {
	ID            uuid.UUID
	Name          string
	Kind          Kind
	CookTime      int
	RequiredItems []RequiredItem
	CreatedAt     time.Time
}

type entryHeader struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Kind      Kind      `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// MarshalJSON writes only the fields of e's variant.
func (e Entry) MarshalJSON() ([]byte, error) {
	header := entryHeader{ID: e.ID, Name: e.Name, Kind: e.Kind, CreatedAt: e.CreatedAt}
	if e.IsIngredient() {
		return json.Marshal(struct {
			entryHeader
			CookTime int `json:"cookTime"`
		}{header, e.CookTime})
	}
	items := e.RequiredItems
	if items == nil {
		items = []RequiredItem{}
	}
	return json.Marshal(struct {
		entryHeader
		RequiredItems []RequiredItem `json:"requiredItems"`
	}{header, items})
}

// NewIngredient builds an ingredient entry with a fresh ID.
func NewIngredient(name string, cookTime int) Entry {
	return Entry{
		ID:        uuid.New(),
		Name:      name,
		Kind:      KindIngredient,
		CookTime:  cookTime,
		CreatedAt: time.Now().UTC(),
	}
}

// NewRecipe builds a recipe entry with a fresh ID. items is copied.
func NewRecipe(name string, items []RequiredItem) Entry {
	return Entry{
		ID:            uuid.New(),
		Name:          name,
		Kind:          KindRecipe,
		RequiredItems: append([]RequiredItem{}, items...),
		CreatedAt:     time.Now().UTC(),
	}
}

func (e Entry) IsRecipe() bool     { return e.Kind == KindRecipe }
func (e Entry) IsIngredient() bool { return e.Kind == KindIngredient }

func (e Entry) clone() Entry {
	if e.RequiredItems != nil {
		e.RequiredItems = append([]RequiredItem{}, e.RequiredItems...)
	}
	return e
}
