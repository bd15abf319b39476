package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/sizing-assistant/internal/schemas"
	"github.com/jonathan/sizing-assistant/internal/types"
	embedded "github.com/jonathan/sizing-assistant/schemas"
)

// Catalog file names inside the data directory
const (
	ClientsFile  = "client_profiles.json"
	ProductsFile = "product_catalog.json"
)

// Store is an immutable, in-memory view of clients and products.
// It is safe for concurrent reads.
type Store struct {
	clients     []*types.Client
	products    []*types.Product
	clientByID  map[string]*types.Client
	productByID map[string]*types.Product
}

// NewStore builds a store from in-memory records, keeping their order.
func NewStore(clients []types.Client, products []types.Product) (*Store, error) {
	s := &Store{
		clients:     make([]*types.Client, 0, len(clients)),
		products:    make([]*types.Product, 0, len(products)),
		clientByID:  make(map[string]*types.Client, len(clients)),
		productByID: make(map[string]*types.Product, len(products)),
	}

	for i := range clients {
		c := clients[i]
		if _, exists := s.clientByID[c.ClientID]; exists {
			return nil, fmt.Errorf("duplicate client id %s", c.ClientID)
		}
		s.clients = append(s.clients, &c)
		s.clientByID[c.ClientID] = &c
	}

	for i := range products {
		p := products[i]
		if _, exists := s.productByID[p.ProductID]; exists {
			return nil, fmt.Errorf("duplicate product id %s", p.ProductID)
		}
		s.products = append(s.products, &p)
		s.productByID[p.ProductID] = &p
	}

	return s, nil
}

// Load reads and validates both catalog files from dir.
func Load(ctx context.Context, dir string) (*Store, error) {
	var clients []types.Client
	var products []types.Product

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		clients, err = loadFile[types.Client](filepath.Join(dir, ClientsFile), embedded.ClientProfiles)
		if err != nil {
			return err
		}
		for i := range clients {
			if err := clients[i].Validate(); err != nil {
				return &LoadError{Message: fmt.Sprintf("invalid client at index %d", i), Cause: err}
			}
		}
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		products, err = loadFile[types.Product](filepath.Join(dir, ProductsFile), embedded.ProductCatalog)
		if err != nil {
			return err
		}
		for i := range products {
			if err := products[i].Validate(); err != nil {
				return &LoadError{Message: fmt.Sprintf("invalid product at index %d", i), Cause: err}
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	store, err := NewStore(clients, products)
	if err != nil {
		return nil, &LoadError{Message: "inconsistent catalog", Cause: err}
	}
	return store, nil
}

// loadFile reads a JSON array file, checks it against an embedded schema and decodes it.
func loadFile[T any](path, schemaName string) ([]T, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	if err := schemas.ValidateDocument(schemaName, content); err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("file %s does not match schema", path),
			Cause:   err,
		}
	}

	var records []T
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	if len(records) == 0 {
		return nil, &LoadError{Message: fmt.Sprintf("file %s is empty", path)}
	}

	return records, nil
}

// GetClient returns the client with id, or nil.
func (s *Store) GetClient(id string) *types.Client {
	return s.clientByID[id]
}

// GetProduct returns the product with id, or nil.
func (s *Store) GetProduct(id string) *types.Product {
	return s.productByID[id]
}

// AllClients returns every client in file order.
func (s *Store) AllClients() []*types.Client {
	out := make([]*types.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// AllProducts returns every product in file order.
func (s *Store) AllProducts() []*types.Product {
	out := make([]*types.Product, len(s.products))
	copy(out, s.products)
	return out
}
