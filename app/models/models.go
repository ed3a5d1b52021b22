// Package models defines the POS entities shared by every tier. Each tier
// (store, HQ, logistics) owns a fully independent schema instance holding
// the same tables.
package models

// All returns every model in migration order (parents before children).
func All() []any {
	return []any{
		&Store{},
		&Product{},
		&Sale{},
		&SaleItem{},
		&CentralStock{},
		&LogisticsStock{},
		&RestockRequest{},
	}
}
