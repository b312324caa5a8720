package ports

import "github.com/jhoicas/supermall-api/internal/domain/entity"

// ReceiptPDFGenerator genera el comprobante de un pedido en PDF.
type ReceiptPDFGenerator interface {
	GenerateOrderReceipt(order *entity.Order, vendor *entity.Vendor, customer *entity.User) ([]byte, error)
}
