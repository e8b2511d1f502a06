package http_test

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/petshop-pro/internal/domain/entity"
	httpiface "github.com/tu-usuario/petshop-pro/internal/interfaces/http"
	"github.com/tu-usuario/petshop-pro/pkg/jwt"
)

const (
	testJWTSecret = "secreto-de-prueba-no-usar-en-produccion"
	testIssuer    = "petshop-pro-test"
	testUserID    = "user-123"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// buildTestApp arma una app Fiber mínima con el middleware de auth
// y una ruta protegida por rol que devuelve el UserID y Role del contexto.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	grp := app.Group("/protegida", httpiface.AuthMiddleware(testJWTSecret))
	if len(allowedRoles) > 0 {
		grp.Use(httpiface.RequireRole(allowedRoles...))
	}
	grp.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": httpiface.GetUserID(c),
			"role":    httpiface.GetRole(c),
		})
	})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := jwt.Generate(testJWTSecret, testUserID, role, testIssuer, 60)
	require.NoError(t, err, "generar token de prueba no debe fallar")
	return tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (*nethttp.Response, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, "/protegida/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]string
	if len(body) > 0 {
		_ = json.Unmarshal(body, &parsed)
	}
	return resp, parsed
}

// ─────────────────────────────────────────────
// AuthMiddleware
// ─────────────────────────────────────────────

func TestAuth_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuth_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "Basic abc123")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuth_TokenMalformado_Retorna401(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "Bearer esto-no-es-un-jwt")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuth_TokenValido_ExponeClaimsEnContexto(t *testing.T) {
	app := buildTestApp()
	tok := tokenForRole(t, entity.RoleVendedor)

	resp, body := doRequest(t, app, "Bearer "+tok)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, entity.RoleVendedor, body["role"])
}

// ─────────────────────────────────────────────
// RequireRole
// ─────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	tok := tokenForRole(t, entity.RoleAdmin)

	resp, _ := doRequest(t, app, "Bearer "+tok)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_VendedorBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	tok := tokenForRole(t, entity.RoleVendedor)

	resp, body := doRequest(t, app, "Bearer "+tok)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireRole_VariosRolesPermitidos(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleVendedor)
	tok := tokenForRole(t, entity.RoleVendedor)

	resp, _ := doRequest(t, app, "Bearer "+tok)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ─────────────────────────────────────────────
// JWT generate/parse
// ─────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := jwt.Generate(testJWTSecret, testUserID, entity.RoleAdmin, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := jwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := jwt.Generate(testJWTSecret, testUserID, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	// pequeño margen para que la expiración sea inequívoca
	time.Sleep(10 * time.Millisecond)

	_, _, err = jwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "un token expirado debe ser rechazado")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := jwt.Generate(testJWTSecret, testUserID, entity.RoleAdmin, testIssuer, 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro-secreto", tok)
	assert.Error(t, err, "la firma debe validarse contra el secret correcto")
}
