// Package mail envía los avisos del marketplace por SMTP (gomail).
package mail

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/supermall-api/internal/application/ports"
	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/pkg/config"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

// Sender lo cumple *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

var _ ports.Notifier = (*Notifier)(nil)

// Notifier arma los correos con plantillas de texto y los envía por SMTP.
type Notifier struct {
	sender Sender
	from   string
	log    *logger.Logger
}

// NewNotifier construye el notificador SMTP a partir de la configuración.
func NewNotifier(cfg config.SMTPConfig, log *logger.Logger) *Notifier {
	return NewNotifierWithSender(gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), cfg.From, log)
}

// NewNotifierWithSender permite inyectar el transporte.
func NewNotifierWithSender(sender Sender, from string, log *logger.Logger) *Notifier {
	return &Notifier{sender: sender, from: from, log: log.Component("mail")}
}

var (
	orderPlacedTmpl = template.Must(template.New("order_placed").Parse(
		`Hola {{.Customer.Name}},

Recibimos tu pedido {{.Order.OrderNumber}}.
{{range .Order.Items}}
  {{.Quantity}} x {{.ProductName}}  {{.Subtotal.StringFixed 2}}{{end}}

Envío: {{.Order.ShippingFee.StringFixed 2}}
Total: {{.Order.Total.StringFixed 2}}

Te avisaremos cuando la tienda lo despache.
SuperMall
`))

	orderStatusTmpl = template.Must(template.New("order_status").Parse(
		`Hola {{.Customer.Name}},

Tu pedido {{.Order.OrderNumber}} ahora está: {{.Order.Status}}.

SuperMall
`))

	vendorStatusTmpl = template.Must(template.New("vendor_status").Parse(
		`Hola {{.Owner.Name}},

El estado de tu tienda "{{.Vendor.ShopName}}" cambió a: {{.Vendor.Status}}.
{{if eq .Vendor.Status "approved"}}Ya puedes publicar productos.{{end}}
SuperMall
`))
)

func (n *Notifier) OrderPlaced(ctx context.Context, order *entity.Order, customer *entity.User) error {
	return n.send(ctx, customer.Email, "Pedido "+order.OrderNumber+" recibido", orderPlacedTmpl,
		map[string]any{"Order": order, "Customer": customer})
}

func (n *Notifier) OrderStatusChanged(ctx context.Context, order *entity.Order, customer *entity.User) error {
	return n.send(ctx, customer.Email, "Pedido "+order.OrderNumber+": "+order.Status, orderStatusTmpl,
		map[string]any{"Order": order, "Customer": customer})
}

func (n *Notifier) VendorStatusChanged(ctx context.Context, vendor *entity.Vendor, owner *entity.User) error {
	return n.send(ctx, owner.Email, "Tu tienda "+vendor.ShopName+": "+vendor.Status, vendorStatusTmpl,
		map[string]any{"Vendor": vendor, "Owner": owner})
}

func (n *Notifier) send(ctx context.Context, to, subject string, tmpl *template.Template, data any) error {
	if to == "" {
		return fmt.Errorf("mail: destinatario vacío")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("mail: plantilla %s: %w", tmpl.Name(), err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body.String())

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: enviar a %s: %w", to, err)
	}
	n.log.Debug().Str("to", to).Str("template", tmpl.Name()).Msg("correo enviado")
	return nil
}

// LogNotifier solo registra los avisos (SMTP sin configurar).
type LogNotifier struct {
	log *logger.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

// NewLogNotifier construye el notificador de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Component("mail")}
}

func (n *LogNotifier) OrderPlaced(_ context.Context, order *entity.Order, customer *entity.User) error {
	n.log.Info().Str("to", customer.Email).Str("order", order.OrderNumber).Msg("aviso: pedido recibido")
	return nil
}

func (n *LogNotifier) OrderStatusChanged(_ context.Context, order *entity.Order, customer *entity.User) error {
	n.log.Info().Str("to", customer.Email).Str("order", order.OrderNumber).Str("status", order.Status).Msg("aviso: estado de pedido")
	return nil
}

func (n *LogNotifier) VendorStatusChanged(_ context.Context, vendor *entity.Vendor, owner *entity.User) error {
	n.log.Info().Str("to", owner.Email).Str("vendor", vendor.ShopName).Str("status", vendor.Status).Msg("aviso: estado de tienda")
	return nil
}
