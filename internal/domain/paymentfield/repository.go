package paymentfield

import "context"

// PaymentFieldRepository reads payment field configuration. It never writes.
type PaymentFieldRepository interface {
	// LoadCatalog returns every field with its value rows and references linked.
	LoadCatalog(ctx context.Context) (*Catalog, error)
}
