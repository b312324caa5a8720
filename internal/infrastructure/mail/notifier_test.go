package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/supermall-api/internal/domain/entity"
	"github.com/jhoicas/supermall-api/pkg/logger"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func body(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestOrderPlaced(t *testing.T) {
	s := &fakeSender{}
	n := NewNotifierWithSender(s, "SuperMall <no-reply@supermall.local>", logger.Nop())
	o := &entity.Order{
		OrderNumber: "ORDER-1-ABC",
		ShippingFee: decimal.RequireFromString("40"),
		Total:       decimal.RequireFromString("650"),
		Items: []entity.OrderItem{
			{ProductName: "Bamboo Basket", Quantity: 2, Subtotal: decimal.RequireFromString("610")},
		},
	}

	require.NoError(t, n.OrderPlaced(context.Background(), o, &entity.User{Name: "Ravi", Email: "ravi@test.in"}))
	require.Len(t, s.sent, 1)
	assert.Equal(t, []string{"ravi@test.in"}, s.sent[0].GetHeader("To"))
	raw := body(t, s.sent[0])
	assert.Contains(t, raw, "ORDER-1-ABC")
	assert.Contains(t, raw, "Bamboo Basket")
	assert.Contains(t, raw, "650.00")
}

func TestVendorStatusChanged(t *testing.T) {
	s := &fakeSender{}
	n := NewNotifierWithSender(s, "no-reply@supermall.local", logger.Nop())
	v := &entity.Vendor{ShopName: "Lakshmi Crafts", Status: entity.VendorStatusApproved}

	require.NoError(t, n.VendorStatusChanged(context.Background(), v, &entity.User{Name: "Lakshmi", Email: "lakshmi@test.in"}))
	require.Len(t, s.sent, 1)
	assert.Contains(t, body(t, s.sent[0]), "Ya puedes publicar productos")
}

func TestSend_Errores(t *testing.T) {
	n := NewNotifierWithSender(&fakeSender{err: errors.New("smtp caído")}, "x@y.z", logger.Nop())
	o := &entity.Order{OrderNumber: "ORDER-1", Status: entity.OrderStatusShipped}

	assert.Error(t, n.OrderStatusChanged(context.Background(), o, &entity.User{Email: "ravi@test.in"}))
	assert.Error(t, n.OrderStatusChanged(context.Background(), o, &entity.User{}), "sin destinatario")
}

func TestLogNotifier(t *testing.T) {
	n := NewLogNotifier(logger.Nop())
	assert.NoError(t, n.OrderPlaced(context.Background(), &entity.Order{}, &entity.User{}))
}
