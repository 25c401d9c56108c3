package entity

import "time"

// Estados derivados del stock de un producto (no se persisten).
const (
	StockStatusOK  = "OK"
	StockStatusLow = "LOW_STOCK"
)

// Product representa un producto del inventario con su stock actual
// y su umbral mínimo de reposición.
type Product struct {
	ID              string
	Name            string
	Quantity        int // stock actual, nunca negativo
	MinimumQuantity int // umbral de reposición
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StockStatus deriva el estado del producto comparando stock y mínimo.
// Es un cálculo de lectura: quantity >= minimum => OK, si no LOW_STOCK.
func (p *Product) StockStatus() string {
	if p.Quantity >= p.MinimumQuantity {
		return StockStatusOK
	}
	return StockStatusLow
}
