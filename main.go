package main

import (
	"flag"
	"fmt"
	"sync"
	"time"

	"github.com/breadncircus/cryptocoin-tradelib/api/public"
	"github.com/breadncircus/cryptocoin-tradelib/config"
	"github.com/breadncircus/cryptocoin-tradelib/currency"
	"github.com/breadncircus/cryptocoin-tradelib/logger"
	"github.com/breadncircus/cryptocoin-tradelib/models"
)

func main() {
	configPath := flag.String("config", "", "path to an ini config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Get().Fatalf("cannot load config: %v", err)
		}
		cfg = loaded
	}
	if err := config.Validate(cfg); err != nil {
		logger.Get().Fatalf("invalid config: %v", err)
	}
	if err := logger.SetMode(cfg.Logging.Mode); err != nil {
		logger.Get().Fatalf("cannot configure logging: %v", err)
	}

	registry := currency.NewRegistry()
	cli, err := public.NewPoloniexApiUsingConfigFunc(registry, func(c *public.PoloniexApiConfig) {
		c.BaseURL = cfg.Poloniex.BaseURL
		c.Timeout = time.Duration(cfg.Poloniex.TimeoutSeconds) * time.Second
	})
	if err != nil {
		logger.Get().Fatalf("cannot init poloniex client: %v", err)
	}

	pairs, err := cli.CurrencyPairs()
	if err != nil {
		logger.Get().Fatalf("cannot list currency pairs: %v", err)
	}
	fmt.Printf("%d supported pairs, %d registered currencies\n", len(pairs), registry.Len())

	var (
		wg           sync.WaitGroup
		mtx          sync.Mutex
		emptyCounter int
	)
	for _, pair := range pairs {
		wg.Add(1)
		go func(pair models.CurrencyPair) {
			defer wg.Done()
			depth, err := cli.Depth(pair)
			if err != nil {
				logger.Get().Warnf("depth %v: %v", pair, err)
				return
			}
			if depth.BestBidPrice() == 0 {
				mtx.Lock()
				emptyCounter++
				mtx.Unlock()
			}
		}(pair)
	}
	wg.Wait()
	fmt.Printf("%d pairs with an empty bid side\n", emptyCounter)

	store := currency.NewFileStore(cfg.Store.DataDir, registry)
	store.SetFilename(cfg.Store.Filename)
	if err := store.Save(); err != nil {
		logger.Get().Errorf("cannot save currency registry: %v", err)
	}
}
