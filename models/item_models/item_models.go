package item_models

import (
	"time"

	"github.com/Irina-Gavrilina/shareit/models/booking_models"
	"github.com/google/uuid"
)

// Item is a thing offered for loan by its owner.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     uuid.UUID `json:"-"`
	CreatedAt   time.Time `json:"-"`
}

func NewItem(ownerID uuid.UUID, name, description string, available bool) (*Item, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	return &Item{
		ID:          id,
		Name:        name,
		Description: description,
		Available:   available,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
	}, nil
}

// ItemView is an item with its last and next booking, as shown to its owner.
type ItemView struct {
	ID          uuid.UUID               `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Available   bool                    `json:"available"`
	LastBooking *booking_models.Summary `json:"lastBooking"`
	NextBooking *booking_models.Summary `json:"nextBooking"`
}
