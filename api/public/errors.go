package public

import "github.com/pkg/errors"

// Error kinds surfaced by exchange clients. Returned errors wrap these
// with call context; match with errors.Cause.
var (
	// ErrCurrencyPairNotSupported: the requested pair was absent from
	// the last successful pair discovery.
	ErrCurrencyPairNotSupported = errors.New("currency pair is not supported")

	// ErrTradeDataUnavailable: the exchange returned no response or a
	// response that failed to parse.
	ErrTradeDataUnavailable = errors.New("trade data is not available")

	// ErrNotImplemented: the operation is intentionally absent for the
	// exchange.
	ErrNotImplemented = errors.New("not implemented")
)
