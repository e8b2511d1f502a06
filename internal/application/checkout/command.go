package checkout

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/petshop-pro/internal/application/dto"
	"github.com/tu-usuario/petshop-pro/internal/domain"
	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
)

// ProductLine línea de producto: descuenta stock al precio de la variante.
type ProductLine struct {
	VariantID string
	Quantity  int64
}

// ServiceLine línea de servicio: precio manual, atada a una cita.
type ServiceLine struct {
	AppointmentID string
	Price         decimal.Decimal
	Quantity      int64
	Description   string
}

// CartLine variante etiquetada: exactamente uno de Product o Service es no-nil.
// El decode de CommandFromRequest garantiza la combinación válida; el resto del
// código no vuelve a comprobar nils.
type CartLine struct {
	Product *ProductLine
	Service *ServiceLine
}

// Command carrito validado en la frontera.
type Command struct {
	PaymentMethod string
	CustomerID    *string
	Lines         []CartLine
}

// CommandFromRequest decodifica y valida la forma del carrito una sola vez:
// carrito no vacío, cantidades enteras > 0, precio manual ≥ 0, y cliente
// obligatorio en cuenta corriente. Rechaza antes de cualquier regla de negocio.
func CommandFromRequest(in dto.CheckoutRequest) (*Command, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	switch in.PaymentMethod {
	case entity.PaymentMethodCash, entity.PaymentMethodTransfer, entity.PaymentMethodCheckingAccount:
	default:
		return nil, domain.ErrInvalidInput
	}
	cmd := &Command{PaymentMethod: in.PaymentMethod}
	if in.PaymentMethod == entity.PaymentMethodCheckingAccount {
		if in.CustomerID == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.CustomerID != "" {
		customerID := in.CustomerID
		cmd.CustomerID = &customerID
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		switch item.Type {
		case entity.SaleItemKindProduct:
			if item.VariantID == "" || item.AppointmentID != "" {
				return nil, domain.ErrInvalidInput
			}
			cmd.Lines = append(cmd.Lines, CartLine{Product: &ProductLine{
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
			}})
		case entity.SaleItemKindService:
			if item.AppointmentID == "" || item.VariantID != "" {
				return nil, domain.ErrInvalidInput
			}
			if item.Price.LessThan(decimal.Zero) {
				return nil, domain.ErrInvalidInput
			}
			cmd.Lines = append(cmd.Lines, CartLine{Service: &ServiceLine{
				AppointmentID: item.AppointmentID,
				Price:         item.Price,
				Quantity:      item.Quantity,
				Description:   item.Description,
			}})
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	return cmd, nil
}
