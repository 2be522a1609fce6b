package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/easybill-co/caja-api/internal/application/auth"
	appbilling "github.com/easybill-co/caja-api/internal/application/billing"
	apprecognition "github.com/easybill-co/caja-api/internal/application/recognition"
	"github.com/easybill-co/caja-api/internal/domain/entity"
	"github.com/easybill-co/caja-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	InvoiceUC     *appbilling.InvoiceUseCase
	DocumentUC    *appbilling.DocumentUseCase
	RecognitionUC *apprecognition.UseCase
	ClientRepo    repository.ClientRepository
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Health (público, lo consulta el front de la caja)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Reconocimiento (protegido: solo la caja autenticada)
	recognitionHandler := NewRecognitionHandler(deps.RecognitionUC)
	protected.Post("/recognize", recognitionHandler.Recognize)
	protected.Get("/recognized/last", recognitionHandler.LastRecognized)
	protected.Delete("/recognized/last", recognitionHandler.ClearLast)

	// Clients (protegido; el alta manual es solo para administradores)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientRepo)
	clients.Post("/", RequireRole(entity.RoleAdmin), clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:document", clientHandler.GetByDocument)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.DocumentUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/xml", invoiceHandler.GetXML)
	invoices.Get("/:id/pdf", invoiceHandler.GetPDF)
}
