package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercial-api/internal/application/apptest"
	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/domain/entity"
	"github.com/jhoicas/comercial-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/comercial-api/internal/interfaces/http"
	"github.com/jhoicas/comercial-api/pkg/dgii"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

type apiFixture struct {
	env     *apptest.Env
	app     *fiber.App
	metrics *metrics.Recorder
}

func newAPI(t *testing.T) apiFixture {
	t.Helper()
	rec := metrics.NewRecorder()
	env := apptest.NewWithMetrics(t, rec)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Documents:   env.Documents,
		Accounts:    env.Accounts,
		Payments:    env.Payments,
		Catalog:     env.Catalog,
		Ledger:      env.Ledger,
		Adjustments: env.Adjustments,
		Sequences:   env.Sequences,
		JWTSecret:   authSecret,
		Observer:    rec,
	})
	return apiFixture{env: env, app: app, metrics: rec}
}

// call hace la petición con el rol dado y decodifica la respuesta JSON en out (si no es nil).
func (f apiFixture) call(t *testing.T, method, path, role string, body any, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, role))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func saleBody(customerID, productID, qty string) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		CustomerID: customerID,
		Lines: []dto.DocumentLineRequest{
			{ProductID: productID, Quantity: apptest.Dec(qty), UnitPrice: apptest.Dec("100")},
		},
	}
}

// ── Flujo venta a crédito y pagos ─────────────────────────────────────────────

func TestAPI_VentaCreditoYPagos(t *testing.T) {
	f := newAPI(t)
	f.env.Sequence(t, dgii.TypeConsumo, 100)
	customer := f.env.Customer(t, 30, "")
	p := f.env.Product(t, "A", entity.TaxCategoryITBIS18, "100", "60", "10")

	var sale dto.DocumentResponse
	status := f.call(t, http.MethodPost, "/api/sales", apphttp.RoleVendedor, saleBody(customer.ID, p.ID, "2"), &sale)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "B0200000001", sale.FiscalNumber)
	assert.True(t, apptest.Dec("236").Equal(sale.Total))
	require.NotNil(t, sale.Account)

	accPath := "/api/accounts/receivable/" + sale.Account.ID

	var errResp dto.ErrorResponse
	status = f.call(t, http.MethodPost, accPath+"/payments", apphttp.RoleVendedor,
		dto.PayRequest{Amount: apptest.Dec("500")}, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EXCESS_PAYMENT", errResp.Code)

	var pay dto.PaymentResponse
	status = f.call(t, http.MethodPost, accPath+"/payments", apphttp.RoleVendedor,
		dto.PayRequest{Amount: apptest.Dec("236"), Method: "transferencia"}, &pay)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, entity.PaymentTransfer, pay.Method)
	require.NotNil(t, pay.Account)
	assert.Equal(t, entity.AccountPaid, pay.Account.State)

	// Solo admin anula pagos.
	status = f.call(t, http.MethodPost, "/api/payments/"+pay.ID+"/void", apphttp.RoleVendedor, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var voided dto.PaymentResponse
	status = f.call(t, http.MethodPost, "/api/payments/"+pay.ID+"/void", apphttp.RoleAdmin, nil, &voided)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.PaymentVoid, voided.State)

	var acc dto.AccountResponse
	status = f.call(t, http.MethodGet, accPath, apphttp.RoleVendedor, nil, &acc)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.AccountPending, acc.State)
	assert.True(t, apptest.Dec("236").Equal(acc.PendingAmount))

	n := testCounter(t, f, "comercial_http_requests_total")
	assert.Positive(t, n)
}

// ── Mapeo de errores ──────────────────────────────────────────────────────────

func TestAPI_VentaSinSecuencia_404(t *testing.T) {
	f := newAPI(t)
	customer := f.env.Customer(t, 0, "")
	p := f.env.Product(t, "A", entity.TaxCategoryITBIS18, "100", "60", "10")

	var errResp dto.ErrorResponse
	status := f.call(t, http.MethodPost, "/api/sales", apphttp.RoleAdmin, saleBody(customer.ID, p.ID, "1"), &errResp)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NO_ACTIVE_SEQUENCE", errResp.Code)
}

func TestAPI_StockInsuficiente_422(t *testing.T) {
	f := newAPI(t)
	f.env.Sequence(t, dgii.TypeConsumo, 100)
	customer := f.env.Customer(t, 0, "")
	p := f.env.Product(t, "A", entity.TaxCategoryITBIS18, "100", "60", "1")

	var errResp dto.ErrorResponse
	status := f.call(t, http.MethodPost, "/api/sales", apphttp.RoleAdmin, saleBody(customer.ID, p.ID, "5"), &errResp)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)
}

func TestAPI_IdInvalido_404(t *testing.T) {
	f := newAPI(t)

	var errResp dto.ErrorResponse
	status := f.call(t, http.MethodGet, "/api/documents/no-es-uuid", apphttp.RoleAdmin, nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errResp.Code)
}

func TestAPI_CuerpoInvalido_400(t *testing.T) {
	f := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, apphttp.RoleAdmin))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ── Secuencias fiscales ───────────────────────────────────────────────────────

func TestAPI_SecuenciasSoloAdmin(t *testing.T) {
	f := newAPI(t)
	body := dto.CreateSequenceRequest{
		DocumentType: dgii.TypeCreditoFiscal,
		Series:       dgii.SeriesPrinted,
		RangeStart:   1,
		RangeEnd:     500,
		Expiry:       apptest.Start.AddDate(1, 0, 0),
	}

	status := f.call(t, http.MethodPost, "/api/fiscal-sequences", apphttp.RoleVendedor, body, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var seq dto.SequenceResponse
	status = f.call(t, http.MethodPost, "/api/fiscal-sequences", apphttp.RoleAdmin, body, &seq)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "B01", seq.Prefix)

	var errResp dto.ErrorResponse
	status = f.call(t, http.MethodPost, "/api/fiscal-sequences", apphttp.RoleAdmin, body, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "SEQUENCE_EXISTS", errResp.Code)
}

func TestAPI_ValidarNCF(t *testing.T) {
	f := newAPI(t)

	var out dto.ValidateFiscalNumberResponse
	status := f.call(t, http.MethodPost, "/api/fiscal-numbers/validate", apphttp.RoleVendedor,
		dto.ValidateFiscalNumberRequest{Number: "B0100000010", Last: "B0100000011"}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, out.Valid)
	assert.Equal(t, "FISCAL_NUMBER_NOT_INCREASING", out.Code)
}

// ── Comprobante impreso ───────────────────────────────────────────────────────

func TestAPI_DescargarPDF(t *testing.T) {
	f := newAPI(t)
	s := f.env.Sale413(t)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/"+s.Sale.ID+"/pdf", nil)
	req.Header.Set("Authorization", bearer(t, apphttp.RoleVendedor))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "comprobante_B0200000001.pdf")
}

func testCounter(t *testing.T, f apiFixture, name string) int {
	t.Helper()
	families, err := f.metrics.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return len(mf.GetMetric())
		}
	}
	return 0
}
