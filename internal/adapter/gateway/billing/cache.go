package billing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/paymatch/paymatch/internal/usecase"
)

const clientRosterKey = "billing:clients"

// CachedGateway decorates an InvoiceGateway with a cached client roster. The
// Description generator asks for the full roster on every match run; the
// roster changes rarely, so a short TTL takes that load off the billing API.
// All other calls pass straight through.
type CachedGateway struct {
	usecase.InvoiceGateway

	cache usecase.Cache
	ttl   time.Duration
}

// NewCachedGateway creates a new CachedGateway.
func NewCachedGateway(gateway usecase.InvoiceGateway, cache usecase.Cache, ttl time.Duration) *CachedGateway {
	return &CachedGateway{
		InvoiceGateway: gateway,
		cache:          cache,
		ttl:            ttl,
	}
}

// ListClients serves the roster from cache when fresh, falling back to the
// wrapped gateway. Cache failures degrade to a direct call.
func (g *CachedGateway) ListClients(ctx context.Context) (map[string]string, error) {
	if cached, err := g.cache.Get(ctx, clientRosterKey); err == nil {
		var clients map[string]string
		if err := json.Unmarshal([]byte(cached), &clients); err == nil {
			return clients, nil
		}
	}

	clients, err := g.InvoiceGateway.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(clients); err == nil {
		_ = g.cache.Set(ctx, clientRosterKey, string(encoded), g.ttl)
	}

	return clients, nil
}

var (
	_ usecase.InvoiceGateway = (*CachedGateway)(nil)
	_ usecase.InvoiceGateway = (*Client)(nil)
)
