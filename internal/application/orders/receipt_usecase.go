package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/application/ports"
	"github.com/jhoicas/supermall-api/internal/domain"
	"github.com/jhoicas/supermall-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de un pedido.
type ReceiptUseCase struct {
	orderRepo  repository.OrderRepository
	vendorRepo repository.VendorRepository
	userRepo   repository.UserRepository
	generator  ports.ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	orderRepo repository.OrderRepository,
	vendorRepo repository.VendorRepository,
	userRepo repository.UserRepository,
	generator ports.ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		orderRepo:  orderRepo,
		vendorRepo: vendorRepo,
		userRepo:   userRepo,
		generator:  generator,
	}
}

// Download devuelve (pdfBytes, filename). El pedido debe ser visible para el actor.
func (uc *ReceiptUseCase) Download(ctx context.Context, actor dto.Actor, orderID string) ([]byte, string, error) {
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener pedido: %w", err)
	}
	if o == nil {
		return nil, "", domain.ErrNotFound
	}
	if !canSee(actor, o) {
		return nil, "", domain.ErrForbidden
	}

	vendor, err := uc.vendorRepo.GetByID(ctx, o.VendorID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener tienda: %w", err)
	}
	if vendor == nil {
		return nil, "", fmt.Errorf("%w: tienda del pedido", domain.ErrNotFound)
	}
	customer, err := uc.userRepo.GetByID(ctx, o.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrUserNotFound
	}

	pdf, err := uc.generator.GenerateOrderReceipt(o, vendor, customer)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generar PDF: %w", err)
	}
	return pdf, fmt.Sprintf("%s.pdf", o.OrderNumber), nil
}
