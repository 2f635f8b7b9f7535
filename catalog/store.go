package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/padipos/models"
)

// ErrNotConfirmed is returned when the operator declines a delete.
var ErrNotConfirmed = errors.New("deletion not confirmed")

// API is the slice of the backend the catalog needs.
type API interface {
	GetProducts(ctx context.Context, token string) ([]models.Product, error)
	CreateProduct(ctx context.Context, token string, form models.ProductForm) (*models.Product, string, error)
	EditProduct(ctx context.Context, token string, id models.ID, patch models.ProductPatch) (*models.Product, string, error)
	DeleteProduct(ctx context.Context, token string, id models.ID) (string, error)
}

// SessionSource exposes the current operator.
type SessionSource interface {
	Current() models.Session
}

// Store serializes catalog transitions and notifies subscribers with a
// snapshot after each one. Network calls never hold the lock; local state
// changes only after the backend confirms.
type Store struct {
	api      API
	sessions SessionSource

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

func NewStore(api API, sessions SessionSource) *Store {
	return &Store{
		api:      api,
		sessions: sessions,
		state:    InitialState(),
		subs:     make(map[int]func(State)),
	}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and notifies subscribers in registration order.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snapshot := s.state
	subs := make([]func(State), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// Subscribe registers fn for every later transition. The returned function
// removes it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Visible is the catalog query over the current state.
func (s *Store) Visible() []models.Product {
	st := s.State()
	return Filter(st.Products, st.Search, st.Category)
}

func (s *Store) Cart() []models.CartLine {
	return s.State().Cart
}

func (s *Store) Product(id models.ID) (models.Product, bool) {
	for _, p := range s.State().Products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *Store) SetSearch(search string) {
	s.Dispatch(SetSearch{Search: search})
}

func (s *Store) SetCategory(c models.Category) {
	s.Dispatch(SetCategory{Category: c})
}

func (s *Store) AddToCart(p models.Product) {
	s.Dispatch(AddToCart{Product: p})
}

// AddToCartByID adds a product from the loaded catalog.
func (s *Store) AddToCartByID(id models.ID) error {
	p, ok := s.Product(id)
	if !ok {
		return fmt.Errorf("product %s not found", id)
	}
	s.AddToCart(p)
	return nil
}

func (s *Store) UpdateQuantity(id models.ID, delta int) {
	s.Dispatch(UpdateQuantity{ProductID: id, Delta: delta})
}

func (s *Store) ClearCart() {
	s.Dispatch(ClearCart{})
}

// HandleSession reacts to a session change: an established session loads
// the catalog, a cleared one empties products and cart.
func (s *Store) HandleSession(ctx context.Context, sess models.Session) error {
	if !sess.IsAuthenticated() {
		s.Dispatch(ClearCart{})
		s.Dispatch(SetProducts{})
		return nil
	}
	return s.fetch(ctx, sess.Token)
}

// Refresh reloads the product list wholesale.
func (s *Store) Refresh(ctx context.Context) error {
	sess := s.sessions.Current()
	if !sess.IsAuthenticated() {
		s.Dispatch(SetLoading{Loading: false})
		return models.ErrUnauthenticated
	}
	return s.fetch(ctx, sess.Token)
}

func (s *Store) fetch(ctx context.Context, token string) error {
	s.Dispatch(SetLoading{Loading: true})
	products, err := s.api.GetProducts(ctx, token)
	if err != nil {
		logrus.WithError(err).Error("failed to fetch products")
		s.Dispatch(SetError{Err: err.Error()})
		return err
	}
	s.Dispatch(SetProducts{Products: products})
	return nil
}

func (s *Store) admin() (models.Session, error) {
	sess := s.sessions.Current()
	if !sess.IsAuthenticated() {
		return sess, models.ErrUnauthenticated
	}
	if sess.Role != models.RoleAdmin {
		return sess, models.ErrForbidden
	}
	return sess, nil
}

// AddMenuItem creates a product and appends the backend's canonical record.
// The returned message is the backend's confirmation text.
func (s *Store) AddMenuItem(ctx context.Context, form models.ProductForm) (*models.Product, string, error) {
	sess, err := s.admin()
	if err != nil {
		return nil, "", err
	}
	if err := ValidateNew(form); err != nil {
		return nil, "", err
	}

	product, msg, err := s.api.CreateProduct(ctx, sess.Token, form)
	if err != nil {
		logrus.WithError(err).Error("failed to add menu item")
		return nil, "", err
	}
	s.Dispatch(AddMenuItem{Product: *product})
	return product, msg, nil
}

// EditMenuItem sends only the fields of form that differ from original and
// replaces the local record with the backend's canonical one.
func (s *Store) EditMenuItem(ctx context.Context, original models.Product, form models.ProductForm) (*models.Product, string, error) {
	sess, err := s.admin()
	if err != nil {
		return nil, "", err
	}
	patch := Diff(original, form)
	if patch.IsEmpty() {
		return nil, "", models.Invalid("", "nothing changed")
	}
	if err := validateEdit(patch); err != nil {
		return nil, "", err
	}

	product, msg, err := s.api.EditProduct(ctx, sess.Token, original.ID, patch)
	if err != nil {
		logrus.WithError(err).WithField("product_id", original.ID).Error("failed to edit menu item")
		return nil, "", err
	}
	s.Dispatch(EditMenuItem{Product: *product})
	return product, msg, nil
}

// DeleteMenuItem removes a product after confirm approves it. Deletion is
// irreversible, so a nil or declining confirm makes no call.
func (s *Store) DeleteMenuItem(ctx context.Context, id models.ID, confirm func(models.Product) bool) (string, error) {
	sess, err := s.admin()
	if err != nil {
		return "", err
	}
	product, ok := s.Product(id)
	if !ok {
		return "", fmt.Errorf("product %s not found", id)
	}
	if confirm == nil || !confirm(product) {
		return "", ErrNotConfirmed
	}

	msg, err := s.api.DeleteProduct(ctx, sess.Token, id)
	if err != nil {
		logrus.WithError(err).WithField("product_id", id).Error("failed to delete menu item")
		return "", err
	}
	s.Dispatch(DeleteMenuItem{ProductID: id})
	return msg, nil
}
