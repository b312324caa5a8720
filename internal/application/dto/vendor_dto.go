package dto

import "time"

// CreateVendorRequest solicitud de apertura de tienda.
type CreateVendorRequest struct {
	ShopName    string `json:"shop_name" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Village     string `json:"village" validate:"required,max=120"`
	District    string `json:"district" validate:"max=120"`
	State       string `json:"state" validate:"max=120"`
	Phone       string `json:"phone" validate:"required,max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
}

// UpdateVendorRequest actualización parcial de la tienda.
type UpdateVendorRequest struct {
	ShopName    *string `json:"shop_name" validate:"omitempty,min=2,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Village     *string `json:"village" validate:"omitempty,max=120"`
	District    *string `json:"district" validate:"omitempty,max=120"`
	State       *string `json:"state" validate:"omitempty,max=120"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	Email       *string `json:"email" validate:"omitempty,email"`
	LogoURL     *string `json:"logo_url" validate:"omitempty,url"`
}

// UpdateVendorStatusRequest decisión del admin sobre la tienda.
type UpdateVendorStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected suspended"`
}

// VendorResponse salida de una tienda.
type VendorResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	ShopName    string    `json:"shop_name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Village     string    `json:"village"`
	District    string    `json:"district"`
	State       string    `json:"state"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	LogoURL     string    `json:"logo_url"`
	Status      string    `json:"status"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VendorListResponse lista paginada de tiendas.
type VendorListResponse struct {
	Items []VendorResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
