package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	apphttp "github.com/jhoicas/comercial-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/comercial-api/pkg/jwt"
)

const (
	authSecret = "secreto-de-pruebas"
	authUser   = "caja01"
)

// guardedApp expone /caja con la misma política que las rutas de ventas
// y /bodega con la de compras y ajustes.
func guardedApp() *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	}
	api := app.Group("", apphttp.AuthMiddleware(authSecret))
	api.Get("/caja", apphttp.RequireRole(apphttp.RoleAdmin, apphttp.RoleVendedor), ok)
	api.Get("/bodega", apphttp.RequireRole(apphttp.RoleAdmin, apphttp.RoleBodeguero), ok)
	api.Get("/admin", apphttp.RequireRole(apphttp.RoleAdmin), ok)
	return app
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(authSecret, authUser, role, "comercial-api-test", 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

func get(t *testing.T, app *fiber.App, path, auth string) (int, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

// ── Matriz de roles ──

func TestRequireRole_Matriz(t *testing.T) {
	app := guardedApp()
	cases := []struct {
		path, role string
		want       int
	}{
		{"/caja", apphttp.RoleVendedor, http.StatusOK},
		{"/caja", apphttp.RoleAdmin, http.StatusOK},
		{"/caja", apphttp.RoleBodeguero, http.StatusForbidden},
		{"/bodega", apphttp.RoleBodeguero, http.StatusOK},
		{"/bodega", apphttp.RoleVendedor, http.StatusForbidden},
		{"/admin", apphttp.RoleAdmin, http.StatusOK},
		{"/admin", apphttp.RoleVendedor, http.StatusForbidden},
		{"/admin", apphttp.RoleBodeguero, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.path+"/"+tc.role, func(t *testing.T) {
			status, body := get(t, app, tc.path, bearer(t, tc.role))
			assert.Equal(t, tc.want, status)
			if tc.want == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", body.Code)
			}
		})
	}
}

// ── Token ──

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := guardedApp()

	status, body := get(t, app, "/caja", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body.Code)

	status, body = get(t, app, "/caja", "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body.Code)

	status, body = get(t, app, "/caja", "Bearer no.es.jwt")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body.Code)

	status, body = get(t, app, "/caja", bearer(t, ""))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", body.Code)
}

func TestAuthMiddleware_CargaUsuarioYRol(t *testing.T) {
	app := guardedApp()
	req := httptest.NewRequest(http.MethodGet, "/bodega", nil)
	req.Header.Set("Authorization", bearer(t, apphttp.RoleBodeguero))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, authUser, body["user_id"])
	assert.Equal(t, apphttp.RoleBodeguero, body["role"])
}
