package domain

import "errors"

// Errores de dominio (sin dependencias externas). La capa HTTP los traduce a códigos de estado.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrVendorNotApproved  = errors.New("la tienda no está aprobada")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrPaymentUnavailable = errors.New("pasarela de pago no configurada")
	ErrAIUnavailable      = errors.New("asistente IA no configurado")
)
