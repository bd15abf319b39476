package avatar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"

	"github.com/jonathan/sizing-assistant/internal/types"
)

// Rendered images stay cached this long.
const cacheTTL = 30 * time.Minute

const keySeparator = "|"

var (
	// ErrUnknownClient is returned when the client id is not in the catalog.
	ErrUnknownClient = errors.New("unknown client")
	// ErrUnknownProduct is returned when the product id is not in the catalog.
	ErrUnknownProduct = errors.New("unknown product")
)

// Lookup resolves catalog entities for rendering.
type Lookup interface {
	GetClient(id string) *types.Client
	GetProduct(id string) *types.Product
}

// Image is a rendered avatar.
type Image struct {
	ClientID  string     `json:"client_id"`
	ProductID string     `json:"product_id"`
	Size      types.Size `json:"size"`
	Color     string     `json:"color"`
	PNG       []byte     `json:"png_base64"`
}

// Service renders avatars and caches them by client, product, size and color.
type Service struct {
	lookup Lookup
	cache  *cache.LoadableCache[[]byte]
	logger *slog.Logger
}

// NewService creates a Service backed by an in-memory Ristretto cache.
func NewService(lookup Lookup, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     64 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	s := &Service{lookup: lookup, logger: logger}
	s.cache = cache.NewLoadable[[]byte](
		s.load,
		cache.New[[]byte](ristretto_store.NewRistretto(ristrettoCache)),
	)
	return s, nil
}

// Generate returns the avatar of clientID wearing productID in the given size and color.
// An empty color selects DefaultColor.
func (s *Service) Generate(ctx context.Context, clientID, productID string, size types.Size, colorName string) (*Image, error) {
	if !size.IsValid() {
		return nil, fmt.Errorf("invalid size %q", size)
	}
	colorName = strings.ToLower(strings.TrimSpace(colorName))
	if colorName == "" {
		colorName = DefaultColor
	}

	key := strings.Join([]string{clientID, productID, string(size), colorName}, keySeparator)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	return &Image{
		ClientID:  clientID,
		ProductID: productID,
		Size:      size,
		Color:     colorName,
		PNG:       data,
	}, nil
}

func (s *Service) load(ctx context.Context, key any) ([]byte, []store.Option, error) {
	k, ok := key.(string)
	if !ok {
		return nil, nil, fmt.Errorf("invalid key type provided to avatar cache: expected string, got %T", key)
	}
	parts := strings.Split(k, keySeparator)
	if len(parts) != 4 {
		return nil, nil, fmt.Errorf("malformed avatar cache key %q", k)
	}

	client := s.lookup.GetClient(parts[0])
	if client == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownClient, parts[0])
	}
	product := s.lookup.GetProduct(parts[1])
	if product == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownProduct, parts[1])
	}

	s.logger.Debug("rendering avatar", "client_id", client.ClientID, "product_id", product.ProductID, "size", parts[2], "color", parts[3])
	data, err := Render(client, product, types.Size(parts[2]), parts[3])
	if err != nil {
		return nil, nil, err
	}
	return data, []store.Option{store.WithExpiration(cacheTTL), store.WithCost(int64(len(data)))}, nil
}
