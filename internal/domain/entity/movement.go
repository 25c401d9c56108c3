package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementEntrada = "entrada" // entrada: suma stock
	MovementSaida   = "saida"   // salida: resta stock
)

// ValidMovementType indica si el tipo es entrada o saida.
func ValidMovementType(t string) bool {
	return t == MovementEntrada || t == MovementSaida
}

// MovementLabel devuelve la etiqueta de presentación del tipo.
func MovementLabel(t string) string {
	if t == MovementEntrada {
		return "ENTRADA"
	}
	return "SAÍDA"
}

// Movement es el registro histórico inmutable de una entrada o salida.
// Solo se crea en el alta de producto (entrada inicial) o al procesar un
// movimiento; nunca se edita y solo se borra en cascada con su producto.
type Movement struct {
	ID        string
	ProductID string
	Type      string // entrada, saida
	Quantity  int    // siempre positivo
	Date      time.Time
	Username  string // usuario que registró el movimiento
}

// MovementRecord es la fila del historial: movimiento + nombre del producto
// (join de lectura; Movement no incrusta el producto).
type MovementRecord struct {
	Movement
	ProductName string
}
