package service

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/repository"
	"github.com/chaatgpt/till/pkg/apperror"
	"github.com/google/uuid"
)

// MenuEventType tells subscribers what happened to a menu item
type MenuEventType string

const (
	MenuItemUpdated MenuEventType = "updated"
	MenuItemDeleted MenuEventType = "deleted"
)

// MenuEvent is delivered to subscribers after a menu change is applied
type MenuEvent struct {
	Type MenuEventType   `json:"type"`
	Item entity.MenuItem `json:"item"`
}

// MenuUpdate carries optional edits; nil fields are left unchanged
type MenuUpdate struct {
	Name  *string
	Price *string
}

// MenuService is the menu repository of the till. Items are addressed by
// a stable ID; edits affect new order lines only.
type MenuService struct {
	mu          sync.RWMutex
	repo        repository.MenuRepository
	items       []entity.MenuItem
	subscribers map[int]func(MenuEvent)
	nextSubID   int
}

// NewMenuService creates a menu service over the seeded items
func NewMenuService(repo repository.MenuRepository, seed []entity.MenuItem) *MenuService {
	items := make([]entity.MenuItem, len(seed))
	copy(items, seed)
	return &MenuService{
		repo:        repo,
		items:       items,
		subscribers: make(map[int]func(MenuEvent)),
	}
}

// Load applies the saved overrides onto the seed. Overrides for items no
// longer seeded are ignored.
func (s *MenuService) Load(ctx context.Context) error {
	overrides, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[uuid.UUID]entity.MenuItem, len(overrides))
	for _, o := range overrides {
		byID[o.ID] = o
	}
	for i := range s.items {
		if o, ok := byID[s.items[i].ID]; ok {
			s.items[i].Name = o.Name
			s.items[i].Price = o.Price
			s.items[i].Deleted = o.Deleted
		}
	}
	return nil
}

// List returns the items still on the menu, in seed order
func (s *MenuService) List() []entity.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entity.MenuItem, 0, len(s.items))
	for _, item := range s.items {
		if !item.Deleted {
			items = append(items, item)
		}
	}
	return items
}

// Get returns a single live item
func (s *MenuService) Get(id uuid.UUID) (*entity.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	item := s.items[idx]
	return &item, nil
}

// Update edits the name and/or price of an item and returns the result.
// A blank name keeps the current one; a negative or non-numeric price
// becomes zero.
func (s *MenuService) Update(ctx context.Context, id uuid.UUID, in MenuUpdate) (*entity.MenuItem, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, apperror.NewNotFoundError("Menu item")
	}

	item := &s.items[idx]
	before := *item
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			item.Name = name
		}
	}
	if in.Price != nil {
		item.Price = entity.ParseMoney(*in.Price)
	}
	updated := *item
	err := s.persistLocked(ctx)
	if err != nil {
		*item = before
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	s.publish(MenuEvent{Type: MenuItemUpdated, Item: updated})
	return &updated, nil
}

// Delete removes an item from the menu. It must be confirmed.
func (s *MenuService) Delete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return apperror.NewConfirmationRequiredError("Are you sure you want to delete this menu item?")
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return apperror.NewNotFoundError("Menu item")
	}
	s.items[idx].Deleted = true
	deleted := s.items[idx]
	err := s.persistLocked(ctx)
	if err != nil {
		s.items[idx].Deleted = false
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.publish(MenuEvent{Type: MenuItemDeleted, Item: deleted})
	return nil
}

// Subscribe registers fn for change notifications and returns a function
// that cancels the subscription
func (s *MenuService) Subscribe(fn func(MenuEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *MenuService) publish(ev MenuEvent) {
	s.mu.RLock()
	subs := make([]func(MenuEvent), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// persistLocked saves every item that differs from its seed. The caller
// holds s.mu.
func (s *MenuService) persistLocked(ctx context.Context) error {
	overrides := make([]entity.MenuItem, 0)
	for _, item := range s.items {
		if item.Deleted || item.Name != item.OriginalName || item.Price != item.OriginalPrice {
			overrides = append(overrides, item)
		}
	}
	if err := s.repo.Save(ctx, overrides); err != nil {
		log.Printf("Failed to save menu data: %v", err)
		return err
	}
	return nil
}

func (s *MenuService) indexOf(id uuid.UUID) int {
	for i := range s.items {
		if s.items[i].ID == id && !s.items[i].Deleted {
			return i
		}
	}
	return -1
}
