package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kanyapat-samee/Bakeria/internal/application/auth"
	"github.com/Kanyapat-samee/Bakeria/internal/application/order"
	"github.com/Kanyapat-samee/Bakeria/internal/application/session"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerResolver *auth.Resolver
	AdminResolver    *auth.Resolver
	Registrar        registrar
	Sessions         *session.Manager
	Products         repository.ProductRepository
	Orders           *order.UseCase
	Board            *order.Board
	Receipts         receiptGenerator
}

// Router registra las rutas de la API. La tienda resuelve identidad contra el
// pool de clientes; el grupo /admin usa el pool de staff y exige rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Tienda: toda petición pasa por el contexto de sesión de clientes
	// (identidad opcional, cookie de invitado cuando no hay token).
	store := api.Group("/", SessionContext(deps.CustomerResolver))

	// Auth (pool de clientes)
	authGroup := store.Group("/auth")
	authHandler := NewAuthHandler(deps.CustomerResolver, deps.Registrar, deps.Sessions)
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/signin", authHandler.SignIn)
	authGroup.Post("/signout", authHandler.SignOut)
	authGroup.Get("/session", authHandler.Session)

	// Catálogo (público)
	productHandler := NewProductHandler(deps.Products)
	store.Get("/products", productHandler.List)
	store.Get("/products/:id", productHandler.GetByID)

	// Carrito (invitados incluidos)
	carts := store.Group("/cart")
	cartHandler := NewCartHandler(deps.Sessions)
	carts.Get("/", cartHandler.Get)
	carts.Post("/items", cartHandler.AddItem)
	carts.Put("/items/:id", cartHandler.SetQuantity)
	carts.Delete("/items/:id", cartHandler.RemoveItem)
	carts.Delete("/", cartHandler.Clear)

	// Checkout y órdenes del comprador
	orderHandler := NewOrderHandler(deps.Orders, deps.Sessions)
	store.Post("/checkout", orderHandler.Checkout)
	myOrders := store.Group("/orders", RequireIdentity())
	myOrders.Get("/", orderHandler.List)
	myOrders.Get("/:orderId", orderHandler.GetByID)

	// Consola admin: pool de staff, roles admin o employee.
	admin := api.Group("/admin",
		SessionContext(deps.AdminResolver),
		RequireRole(entity.RoleAdmin, entity.RoleEmployee))

	adminAuth := api.Group("/admin/auth", SessionContext(deps.AdminResolver))
	adminAuthHandler := NewAuthHandler(deps.AdminResolver, nil, deps.Sessions)
	adminAuth.Post("/signin", adminAuthHandler.SignIn)
	adminAuth.Post("/signout", adminAuthHandler.SignOut)
	adminAuth.Get("/session", adminAuthHandler.Session)

	adminOrderHandler := NewAdminOrderHandler(deps.Board, deps.Orders, deps.Receipts, deps.AdminResolver)
	admin.Get("/orders", adminOrderHandler.List)
	admin.Put("/orders/:userId/:orderId/status", adminOrderHandler.SetStatus)
	admin.Get("/orders/:userId/:orderId/receipt", adminOrderHandler.Receipt)
}
