package currency

import (
	"testing"

	"github.com/breadncircus/cryptocoin-tradelib/models"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	r.Register(models.NewCurrency("btc", "Bitcoin", "", models.Cryptocurrency))

	c, ok := r.Lookup("BTC")
	if !ok {
		t.Fatalf("BTC not found")
	}
	if c.Code != "BTC" || c.Name != "Bitcoin" {
		t.Errorf("bad currency: %+v", c)
	}

	if c2, ok := r.Lookup("btc"); !ok || c2 != c {
		t.Errorf("lookup must be case-insensitive")
	}
	if _, ok := r.Lookup("DOGE"); ok {
		t.Errorf("DOGE must be absent")
	}
}

func TestRegistryLookupOrRegister(t *testing.T) {
	r := NewRegistry()

	c := r.LookupOrRegister("nxt")
	if c.Code != "NXT" || c.Type != models.Cryptocurrency {
		t.Errorf("bad auto-registered currency: %+v", c)
	}
	if r.LookupOrRegister("NXT") != c {
		t.Errorf("second LookupOrRegister must return the same entry")
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 registered currency, got %d", r.Len())
	}
}

func TestRegistryRegisteredSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(models.NewCurrency("XMR", "Monero", "", models.Cryptocurrency))
	r.Register(models.NewCurrency("BTC", "Bitcoin", "", models.Cryptocurrency))
	r.Register(models.NewCurrency("EUR", "Euro", "", models.Fiat))

	all := r.Registered()
	if len(all) != 3 {
		t.Fatalf("expected 3 currencies, got %d", len(all))
	}
	for i, code := range []string{"BTC", "EUR", "XMR"} {
		if all[i].Code != code {
			t.Errorf("position %d: expected %s, got %s", i, code, all[i].Code)
		}
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register(models.NewCurrency("BTC", "", "", models.Cryptocurrency))
	r.Register(models.NewCurrency("BTC", "Bitcoin", "the original cryptocurrency", models.Cryptocurrency))

	c, _ := r.Lookup("BTC")
	if c.Name != "Bitcoin" {
		t.Errorf("register must replace the previous entry, got %+v", c)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", r.Len())
	}
}
