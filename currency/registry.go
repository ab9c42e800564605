package currency

import (
	"sort"
	"strings"
	"sync"

	"github.com/breadncircus/cryptocoin-tradelib/models"
)

// Registry maps currency codes to currency descriptions. It is shared
// between exchange clients and the file store; pass it into
// constructors explicitly instead of relying on a process global.
type Registry struct {
	mtx        sync.RWMutex
	currencies map[string]*models.Currency
}

func NewRegistry() *Registry {
	return &Registry{
		currencies: make(map[string]*models.Currency),
	}
}

// Lookup returns the currency registered for code, matching
// case-insensitively.
func (r *Registry) Lookup(code string) (*models.Currency, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	c, ok := r.currencies[strings.ToUpper(code)]
	return c, ok
}

// Register adds c to the registry, replacing any previous entry with
// the same code.
func (r *Registry) Register(c *models.Currency) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.currencies[strings.ToUpper(c.Code)] = c
}

// LookupOrRegister returns the currency for code, creating and
// registering a bare cryptocurrency entry when the code is unknown.
// Pair discovery uses this so codes seen on an exchange for the first
// time still resolve.
func (r *Registry) LookupOrRegister(code string) *models.Currency {
	code = strings.ToUpper(code)

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if c, ok := r.currencies[code]; ok {
		return c
	}
	c := models.NewCurrency(code, "", "", models.Cryptocurrency)
	r.currencies[code] = c
	return c
}

// Registered returns a snapshot of all currencies sorted by code.
func (r *Registry) Registered() []*models.Currency {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]*models.Currency, 0, len(r.currencies))
	for _, c := range r.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})
	return out
}

func (r *Registry) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return len(r.currencies)
}
