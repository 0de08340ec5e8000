package item_service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Irina-Gavrilina/shareit/logger"
	"github.com/Irina-Gavrilina/shareit/models/item_models"
	"github.com/Irina-Gavrilina/shareit/models/user_models"
	"github.com/Irina-Gavrilina/shareit/repository"
	"github.com/Irina-Gavrilina/shareit/utils"
	"github.com/google/uuid"
)

// ItemService renders item views and stands in for the external catalog and
// account services so the booking API can be used on its own.
type ItemService struct {
	repo  repository.Repository
	clock utils.Clock
}

func NewItemService(repo repository.Repository, clock utils.Clock) *ItemService {
	if clock == nil {
		clock = utils.RealClock{}
	}
	return &ItemService{repo: repo, clock: clock}
}

type CreateItemRequest struct {
	Name        string
	Description string
	Available   bool
}

func (s *ItemService) CreateItem(ctx context.Context, req CreateItemRequest, ownerID uuid.UUID) (*item_models.Item, error) {
	if _, err := s.getUser(ctx, ownerID); err != nil {
		return nil, err
	}
	item, err := item_models.NewItem(ownerID, strings.TrimSpace(req.Name), strings.TrimSpace(req.Description), req.Available)
	if err != nil {
		return nil, fmt.Errorf("failed to build item: %w", err)
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	logger.InfoLogger.Infof("Item %s registered by user %s", item.ID, ownerID)
	return item, nil
}

func (s *ItemService) CreateUser(ctx context.Context, name, email string) (*user_models.User, error) {
	user, err := user_models.NewUser(strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to build user: %w", err)
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.Conflict("user with email %s already exists", user.Email)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	logger.InfoLogger.Infof("User %s registered", user.ID)
	return user, nil
}

// ListOwnerItems returns every item of ownerID with its last and next booking.
// Bookings for all items are loaded in one batch.
func (s *ItemService) ListOwnerItems(ctx context.Context, ownerID uuid.UUID) ([]*item_models.ItemView, error) {
	if _, err := s.getUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items of user %s: %w", ownerID, err)
	}
	views := make([]*item_models.ItemView, 0, len(items))
	if len(items) == 0 {
		return views, nil
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID.String() < items[j].ID.String() })

	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	bookings, err := s.repo.ListBookingsByItemIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings of items: %w", err)
	}
	byItem := GroupByItem(bookings)

	now := s.clock.Now()
	for _, it := range items {
		views = append(views, view(it, Summarize(byItem[it.ID], now)))
	}
	return views, nil
}

// GetItem returns one item. Booking summaries are included only for its owner.
func (s *ItemService) GetItem(ctx context.Context, itemID, requesterID uuid.UUID) (*item_models.ItemView, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("item with id %s does not exist", itemID)
		}
		return nil, fmt.Errorf("failed to load item %s: %w", itemID, err)
	}
	if item.OwnerID != requesterID {
		return view(item, Availability{}), nil
	}

	bookings, err := s.repo.ListBookingsByItem(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings of item %s: %w", item.ID, err)
	}
	return view(item, Summarize(bookings, s.clock.Now())), nil
}

func view(item *item_models.Item, a Availability) *item_models.ItemView {
	return &item_models.ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		LastBooking: a.Last,
		NextBooking: a.Next,
	}
}

func (s *ItemService) getUser(ctx context.Context, id uuid.UUID) (*user_models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("user with id %s does not exist", id)
		}
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	return user, nil
}
