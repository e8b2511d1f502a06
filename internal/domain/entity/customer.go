package entity

import "time"

// Customer cliente de la tienda. Requerido en ventas a cuenta corriente.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
}

// Pet mascota de un cliente; las citas se agendan por mascota.
type Pet struct {
	ID         string
	CustomerID string
	Name       string
	Species    string
	Breed      string
	CreatedAt  time.Time
}
