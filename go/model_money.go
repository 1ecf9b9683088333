package shopserver

import "github.com/shopspring/decimal"

func init() {
	// prix and montantTotal are JSON numbers on the wire
	decimal.MarshalJSONWithoutQuotes = true
}
