package memory

import (
	"sync"

	"github.com/pt-labs/product-inventory-api/internal/domain/entity"
)

// Store es el estado compartido del driver en memoria. Implementa los mismos
// contratos que el adaptador PostgreSQL (versión optimista incluida) para el
// modo demo y para las pruebas, sin depender de una base de datos.
type Store struct {
	mu         sync.RWMutex
	txMu       sync.Mutex
	products   map[string]entity.Product
	categories map[string]entity.Category
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]entity.Product),
		categories: make(map[string]entity.Category),
	}
}

func cloneProduct(p entity.Product) entity.Product {
	if p.CategoryID != nil {
		cid := *p.CategoryID
		p.CategoryID = &cid
	}
	return p
}

// txJournal registra el estado previo de cada fila que una transacción toca.
// Un valor nil marca que la llave no existía antes de la transacción. El
// rollback revierte únicamente esas llaves, de modo que las escrituras de
// escritores concurrentes sobre otras filas quedan intactas.
type txJournal struct {
	products   map[string]*entity.Product
	categories map[string]*entity.Category
}

func newTxJournal() *txJournal {
	return &txJournal{
		products:   make(map[string]*entity.Product),
		categories: make(map[string]*entity.Category),
	}
}

// recordProduct guarda el estado previo de la fila la primera vez que la
// transacción la toca. El llamador sostiene s.mu en escritura.
func (j *txJournal) recordProduct(s *Store, id string) {
	if _, seen := j.products[id]; seen {
		return
	}
	if p, ok := s.products[id]; ok {
		prev := cloneProduct(p)
		j.products[id] = &prev
	} else {
		j.products[id] = nil
	}
}

// recordCategory guarda el estado previo de la fila la primera vez que la
// transacción la toca. El llamador sostiene s.mu en escritura.
func (j *txJournal) recordCategory(s *Store, id string) {
	if _, seen := j.categories[id]; seen {
		return
	}
	if c, ok := s.categories[id]; ok {
		prev := c
		j.categories[id] = &prev
	} else {
		j.categories[id] = nil
	}
}

// rollback restaura el estado previo de las filas tocadas por la transacción.
func (j *txJournal) rollback(s *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, prev := range j.products {
		if prev == nil {
			delete(s.products, id)
		} else {
			s.products[id] = cloneProduct(*prev)
		}
	}
	for id, prev := range j.categories {
		if prev == nil {
			delete(s.categories, id)
		} else {
			s.categories[id] = *prev
		}
	}
}
