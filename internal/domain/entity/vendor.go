package entity

import "time"

// Estados de Vendor. Solo las tiendas approved publican productos.
const (
	VendorStatusPending   = "pending"
	VendorStatusApproved  = "approved"
	VendorStatusRejected  = "rejected"
	VendorStatusSuspended = "suspended"
)

// ValidVendorStatus indica si s es un estado de tienda conocido.
func ValidVendorStatus(s string) bool {
	switch s {
	case VendorStatusPending, VendorStatusApproved, VendorStatusRejected, VendorStatusSuspended:
		return true
	}
	return false
}

// Vendor representa la tienda de un vendedor rural (una por usuario).
type Vendor struct {
	ID          string
	OwnerID     string // User.ID con rol vendor
	ShopName    string
	Slug        string
	Description string
	Village     string
	District    string
	State       string
	Phone       string
	Email       string
	LogoURL     string // Cloudinary
	Status      string // pending, approved, rejected, suspended
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsApproved indica si la tienda puede vender.
func (v *Vendor) IsApproved() bool {
	return v.Status == VendorStatusApproved
}
