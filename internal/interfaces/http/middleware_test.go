package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kanyapat-samee/Bakeria/internal/application/auth"
	apphttp "github.com/Kanyapat-samee/Bakeria/internal/interfaces/http"
	"github.com/Kanyapat-samee/Bakeria/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeProvider proveedor de sesiones en memoria: token -> sesión.
type fakeProvider struct {
	sessions map[string]*auth.Session
}

func (f *fakeProvider) FetchSession(_ context.Context, token string, _ bool) (*auth.Session, error) {
	return f.sessions[token], nil
}

func (f *fakeProvider) SignIn(_ context.Context, _, _ string) (*auth.SignInOutcome, error) {
	return nil, nil
}

func (f *fakeProvider) ConfirmChallenge(_ context.Context, _, _, _ string) (*auth.SignInOutcome, error) {
	return nil, nil
}

func (f *fakeProvider) SignOut(_ context.Context, _ string) error { return nil }

// testResolver resolver sobre un proveedor con tres sesiones fijas: un admin,
// un employee y una clienta sin roles.
func testResolver() *auth.Resolver {
	p := &fakeProvider{sessions: map[string]*auth.Session{
		"tok-admin": {
			Claims:      map[string]interface{}{"email": "boss@bakeria.test", "name": "Boss", "groups": []interface{}{"Admin"}},
			AccessToken: "acc-admin",
		},
		"tok-employee": {
			Claims:      map[string]interface{}{"email": "horno@bakeria.test", "name": "Horno", "groups": "Employee"},
			AccessToken: "acc-employee",
		},
		"tok-cliente": {
			Claims:      map[string]interface{}{"email": "ana@example.com", "name": "Ana"},
			AccessToken: "acc-cliente",
		},
	}}
	return auth.NewResolver("admin", p, logger.Nop())
}

// buildTestApp aplicación Fiber mínima con SessionContext + RequireRole y un
// handler dummy que devuelve la identidad resuelta.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.SessionContext(testResolver()),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			ident := apphttp.GetIdentity(c)
			return c.JSON(fiber.Map{
				"ok":       true,
				"username": ident.Username,
				"session":  apphttp.GetSessionKey(c),
			})
		},
	)
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: admin accede a ruta restringida a admin → HTTP 200.
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "Bearer tok-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Boss", body["username"])
	assert.Equal(t, "user:Boss", body["session"], "la clave de sesión debe derivar del username")
}

// Caso 1b: employee accede a ruta que permite admin o employee → HTTP 200.
func TestRequireRole_EmployeeAccedeRutaMultiRol(t *testing.T) {
	app := buildTestApp("admin", "employee")
	resp := doRequest(t, app, "Bearer tok-employee")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"employee debe poder acceder a ruta que permite admin o employee")
}

// Caso 2: clienta sin roles bloqueada en ruta admin → HTTP 403.
func TestRequireRole_ClienteBloqueadaEnRutaAdmin(t *testing.T) {
	app := buildTestApp("admin", "employee")
	resp := doRequest(t, app, "Bearer tok-cliente")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Caso 3: sin header Authorization → HTTP 401.
func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

// Caso 4: token desconocido degrada a sin identidad → HTTP 401, no 500.
func TestRequireRole_TokenDesconocido_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "Bearer token-invalido")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SessionContext — sesión de invitados
// ──────────────────────────────────────────────────────────────────────────────

// Una petición sin token en una ruta pública recibe cookie de sesión y una
// clave de sesión de invitado.
func TestSessionContext_Invitado_RecibeCookieDeSesion(t *testing.T) {
	app := fiber.New()
	app.Get("/public", apphttp.SessionContext(testResolver()), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"session": apphttp.GetSessionKey(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var hasCookie bool
	for _, c := range resp.Cookies() {
		if c.Name == "bakeria_session" {
			hasCookie = true
			assert.NotEmpty(t, c.Value)
		}
	}
	assert.True(t, hasCookie, "el invitado debe recibir la cookie de sesión")

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["session"], "guest:")
}

// Con cookie previa, la clave de sesión es estable entre peticiones.
func TestSessionContext_Invitado_ClaveEstableConCookie(t *testing.T) {
	app := fiber.New()
	app.Get("/public", apphttp.SessionContext(testResolver()), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"session": apphttp.GetSessionKey(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.AddCookie(&http.Cookie{Name: "bakeria_session", Value: "sid-fijo"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "guest:sid-fijo", body["session"])
}
