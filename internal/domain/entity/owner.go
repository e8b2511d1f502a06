package entity

import "time"

// Owner representa un proveedor en consignación: dueño de productos que la tienda
// vende por él. Su saldo neto se deriva de ventas pagadas no liquidadas y ajustes,
// nunca se almacena.
type Owner struct {
	ID        string
	Name      string
	Document  string // cédula o NIT
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
