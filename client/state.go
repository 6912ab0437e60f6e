package client

import (
	"sync"

	"github.com/Jeevankiran1503/Prodigy-FS-03/models"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

// State groups the client-side containers. It is created by New and reached
// through Client.State; there is no shared global instance.
type State struct {
	Auth     *AuthState
	Cart     *CartState
	Products *ProductState
}

func NewState() *State {
	return &State{Auth: &AuthState{}, Cart: &CartState{}, Products: &ProductState{}}
}

// AuthState holds the identity returned by register/login and the session
// confirmed by the last check-auth.
type AuthState struct {
	mu      sync.RWMutex
	user    *models.PublicUser
	session *services.Session
}

func (s *AuthState) User() *models.PublicUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *AuthState) Session() *services.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	sess := *s.session
	return &sess
}

// SignedIn reports whether either a login or a session check has succeeded
// since the last reset.
func (s *AuthState) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil || s.session != nil
}

func (s *AuthState) setUser(u models.PublicUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	s.session = &services.Session{UserID: u.ID, Role: u.Role}
}

func (s *AuthState) setSession(sess services.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &sess
}

func (s *AuthState) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.session = nil
}

// CartState is the last resolved cart the server returned.
type CartState struct {
	mu    sync.RWMutex
	lines []models.CartLine
}

func (s *CartState) Lines() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CartLine(nil), s.lines...)
}

// Count is the total quantity across all lines.
func (s *CartState) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, line := range s.lines {
		n += line.Quantity
	}
	return n
}

func (s *CartState) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, line := range s.lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

func (s *CartState) set(lines []models.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = lines
}

// ProductState is the last fetched product list with its loading flag and
// error message.
type ProductState struct {
	mu       sync.RWMutex
	products []models.Product
	loading  bool
	err      string
}

func (s *ProductState) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...)
}

func (s *ProductState) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err is the message of the last failed product call, or "".
func (s *ProductState) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *ProductState) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

func (s *ProductState) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorMessage(err)
	}
}

func (s *ProductState) set(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

// apply replaces the product with p's id, appending it when absent.
func (s *ProductState) apply(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			return
		}
	}
	s.products = append(s.products, p)
}

func (s *ProductState) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
}
