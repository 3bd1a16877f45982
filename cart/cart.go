// Package cart holds the shopping cart line items for one owner and
// enforces the stock and quantity invariants before any mutation is
// accepted. Every successful mutation persists the whole collection
// through a Storage so the cart survives restarts.
package cart

import (
	"encoding/json"
	"fmt"
)

// Product is the denormalized snapshot embedded in a cart line. It is a
// copy taken at add-to-cart time and deliberately not kept in sync with
// the live catalog; stock is revalidated again at order submission.
type Product struct {
	ID     uint     `json:"id"`
	Name   string   `json:"name"`
	Price  float64  `json:"price"`
	Images []string `json:"images"`
	Stock  int      `json:"stock"`
}

type Line struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

// InsufficientStockError reports a rejected mutation together with the
// quantity still available for the product.
type InsufficientStockError struct {
	ProductID uint
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// Store is the authoritative in-memory cart for one owner. It is owned by
// a single session and is not safe for concurrent use; callers serialize
// access the same way a browser session serializes user actions.
type Store struct {
	owner   string
	storage Storage
	lines   []Line
}

// New loads the last persisted cart for owner, or starts empty when none
// was saved yet.
func New(owner string, storage Storage) (*Store, error) {
	if owner == "" {
		return nil, fmt.Errorf("cart owner is empty")
	}

	s := &Store{owner: owner, storage: storage}

	data, err := storage.Load(owner)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.lines); err != nil {
			return nil, fmt.Errorf("decode cart: %w", err)
		}
	}

	return s, nil
}

// AddItem merges quantity into an existing line for the product or appends
// a new line preserving insertion order. The whole operation is rejected,
// leaving the cart untouched, when the resulting quantity would exceed the
// product's stock.
func (s *Store) AddItem(product Product, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	for i := range s.lines {
		if s.lines[i].ProductID == product.ID {
			newQuantity := s.lines[i].Quantity + quantity
			if newQuantity > product.Stock {
				return &InsufficientStockError{
					ProductID: product.ID,
					Available: product.Stock,
					Requested: newQuantity,
				}
			}
			s.lines[i].Quantity = newQuantity
			s.lines[i].Product = product
			return s.persist()
		}
	}

	if quantity > product.Stock {
		return &InsufficientStockError{
			ProductID: product.ID,
			Available: product.Stock,
			Requested: quantity,
		}
	}

	s.lines = append(s.lines, Line{ProductID: product.ID, Quantity: quantity, Product: product})
	return s.persist()
}

// RemoveItem deletes the line for productID; absent ids are a no-op.
func (s *Store) RemoveItem(productID uint) error {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// UpdateQuantity replaces the quantity of an existing line. A quantity of
// zero or less removes the line. The update is rejected when it exceeds
// the line's product stock snapshot.
func (s *Store) UpdateQuantity(productID uint, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(productID)
	}

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			if quantity > s.lines[i].Product.Stock {
				return &InsufficientStockError{
					ProductID: productID,
					Available: s.lines[i].Product.Stock,
					Requested: quantity,
				}
			}
			s.lines[i].Quantity = quantity
			return s.persist()
		}
	}
	return nil
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() error {
	s.lines = nil
	return s.persist()
}

// Total is computed fresh from the current lines on every call.
func (s *Store) Total() float64 {
	var total float64
	for _, line := range s.lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

func (s *Store) ItemCount() int {
	var count int
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns a copy of the current line items in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// persist writes the full collection under the owner's key. The in-memory
// state is already applied when persistence fails; the error only tells
// the caller durability lagged.
func (s *Store) persist() error {
	data, err := json.Marshal(s.lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Save(s.owner, data); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
