package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/easybill-co/caja-api/internal/application/auth"
	appbilling "github.com/easybill-co/caja-api/internal/application/billing"
	apprecognition "github.com/easybill-co/caja-api/internal/application/recognition"
	domainbilling "github.com/easybill-co/caja-api/internal/domain/billing"
	"github.com/easybill-co/caja-api/internal/domain/entity"
	domainrec "github.com/easybill-co/caja-api/internal/domain/recognition"
	infradian "github.com/easybill-co/caja-api/internal/infrastructure/dian"
	"github.com/easybill-co/caja-api/internal/infrastructure/mail"
	"github.com/easybill-co/caja-api/internal/infrastructure/pdf"
	"github.com/easybill-co/caja-api/internal/infrastructure/postgres"
	infrarec "github.com/easybill-co/caja-api/internal/infrastructure/recognition"
	httpapi "github.com/easybill-co/caja-api/internal/interfaces/http"
	"github.com/easybill-co/caja-api/pkg/config"
	"github.com/easybill-co/caja-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("error cargando configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Info().Str("env", cfg.App.Env).Msg("iniciando " + cfg.App.Name)

	ctx := context.Background()

	// PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("conexión a PostgreSQL establecida")

	// Repositorios
	clientRepo := postgres.NewClientRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// Emisor y resolución de numeración
	issuer, err := issuerFromConfig(cfg.DIAN)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración DIAN inválida")
	}

	// Correo: sin host o remitente configurado, las facturas no se envían
	var mailSender appbilling.MailSender
	if cfg.SMTP.Host != "" && cfg.SMTP.From != "" {
		mailSender = mail.NewGomailSender(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP no configurado: las facturas no se enviarán por correo")
	}

	// Facturación
	builder := infradian.NewBuilder()
	invoiceUC := appbilling.NewInvoiceUseCase(clientRepo, invoiceRepo, builder, mailSender, issuer, log)
	pdfGen := pdf.NewMarotoPDFGenerator(cfg.DIAN.SupplierName, cfg.DIAN.SupplierDocumentNumber)
	documentUC := appbilling.NewDocumentUseCase(invoiceRepo, clientRepo, pdfGen)

	// Reconocimiento
	gallery, err := infrarec.LoadGallery(cfg.Recognition.GalleryPath, cfg.Recognition.Tolerance)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Recognition.GalleryPath).Msg("no se pudo cargar la galería")
	}
	log.Info().Int("personas", gallery.Size()).Msg("galería de reconocimiento cargada")

	encoder := infrarec.NewHTTPEncoder(cfg.Recognition.EncoderURL)
	cache := domainrec.NewLastMatchCache()
	purchases := apprecognition.NewPurchaseGenerator()
	recognitionUC := apprecognition.NewUseCase(encoder, gallery, cache, clientRepo, purchases, invoiceUC, log)

	// Auth
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	app.Use(recover.New())
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Caja API - Documentación",
	}))

	httpapi.Router(app, httpapi.RouterDeps{
		AuthUC:        authUC,
		InvoiceUC:     invoiceUC,
		DocumentUC:    documentUC,
		RecognitionUC: recognitionUC,
		ClientRepo:    clientRepo,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		addr := cfg.HTTP.Addr()
		log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("error en el servidor HTTP")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error durante el apagado")
	}
	log.Info().Msg("servidor detenido")
}

// issuerFromConfig arma los datos fijos del emisor a partir de la
// configuración: parsea la tarifa y las fechas de la resolución y valida el
// rango autorizado.
func issuerFromConfig(dian config.DIANConfig) (appbilling.IssuerConfig, error) {
	taxRate, err := decimal.NewFromString(dian.TaxRate)
	if err != nil {
		return appbilling.IssuerConfig{}, err
	}

	start, err := time.Parse("2006-01-02", dian.AuthorizationStart)
	if err != nil {
		return appbilling.IssuerConfig{}, err
	}
	end, err := time.Parse("2006-01-02", dian.AuthorizationEnd)
	if err != nil {
		return appbilling.IssuerConfig{}, err
	}

	window := entity.AuthorizationWindow{
		AuthorizationNumber: dian.AuthorizationNumber,
		Prefix:              dian.AuthorizationPrefix,
		RangeFrom:           dian.RangeFrom,
		RangeTo:             dian.RangeTo,
		StartDate:           start,
		EndDate:             end,
	}
	if err := window.Validate(); err != nil {
		return appbilling.IssuerConfig{}, err
	}

	return appbilling.IssuerConfig{
		Supplier: domainbilling.PartyInfo{
			RegistrationName: dian.SupplierRegistrationName,
			LegalName:        dian.SupplierName,
			DocumentType:     dian.SupplierDocumentType,
			DocumentNumber:   dian.SupplierDocumentNumber,
			CityName:         dian.SupplierCity,
			CountrySubentity: dian.SupplierSubentity,
			PostalZone:       dian.SupplierPostalZone,
			CountryCode:      dian.SupplierCountryCode,
		},
		Authorization:      window,
		Currency:           dian.Currency,
		TaxRate:            taxRate,
		ProfileExecutionID: dian.ProfileExecutionID,
	}, nil
}
