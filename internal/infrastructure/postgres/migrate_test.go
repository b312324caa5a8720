package postgres

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermall-api/internal/domain/entity"
)

// checkValues devuelve los valores del CHECK (column IN (...)) dentro de la tabla indicada.
func checkValues(t *testing.T, schema, table, column string) []string {
	t.Helper()
	start := strings.Index(schema, "CREATE TABLE IF NOT EXISTS "+table+" (")
	require.GreaterOrEqual(t, start, 0, "tabla %s", table)
	body := schema[start:]
	body = body[:strings.Index(body, ");")]

	re := regexp.MustCompile(`CHECK \(` + column + ` IN \(([^)]*)\)\)`)
	m := re.FindStringSubmatch(body)
	require.NotNil(t, m, "%s.%s sin CHECK", table, column)
	var out []string
	for _, v := range strings.Split(m[1], ",") {
		out = append(out, strings.Trim(strings.TrimSpace(v), "'"))
	}
	return out
}

func TestMigracionInicial_EnumsConCheck(t *testing.T) {
	raw, err := migrationsFS.ReadFile("migrations/000001_init.up.sql")
	require.NoError(t, err)
	schema := string(raw)

	cases := []struct {
		table, column string
		want          []string
	}{
		{"users", "role", []string{entity.RoleAdmin, entity.RoleVendor, entity.RoleCustomer}},
		{"users", "status", []string{entity.UserStatusActive, entity.UserStatusSuspended}},
		{"categories", "status", []string{entity.CategoryStatusActive, entity.CategoryStatusInactive}},
		{"vendors", "status", []string{entity.VendorStatusPending, entity.VendorStatusApproved, entity.VendorStatusRejected, entity.VendorStatusSuspended}},
		{"products", "status", []string{entity.ProductStatusActive, entity.ProductStatusInactive}},
		{"stock_movements", "reason", []string{entity.StockReasonOrder, entity.StockReasonCancel, entity.StockReasonRestock, entity.StockReasonAdjustment}},
		{"orders", "status", []string{entity.OrderStatusPending, entity.OrderStatusConfirmed, entity.OrderStatusProcessing,
			entity.OrderStatusShipped, entity.OrderStatusDelivered, entity.OrderStatusCancelled}},
		{"orders", "payment_status", []string{entity.PaymentStatusPending, entity.PaymentStatusPaid, entity.PaymentStatusFailed, entity.PaymentStatusRefunded}},
		{"orders", "payment_method", []string{entity.PaymentMethodCard, entity.PaymentMethodCOD}},
	}
	for _, tc := range cases {
		t.Run(tc.table+"."+tc.column, func(t *testing.T) {
			assert.ElementsMatch(t, tc.want, checkValues(t, schema, tc.table, tc.column))
		})
	}
}
