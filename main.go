package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/janseva-labs/aadhaar-form-assist/client"
	"github.com/janseva-labs/aadhaar-form-assist/config"
	"github.com/janseva-labs/aadhaar-form-assist/handler"
	"github.com/janseva-labs/aadhaar-form-assist/logger"
	"github.com/janseva-labs/aadhaar-form-assist/service"
	"github.com/janseva-labs/aadhaar-form-assist/utils/fieldmatch"
)

func main() {
	// A missing .env is fine; environment variables alone work too.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}

	// Initialize OCR client
	ocrClient := client.NewTesseractClient(cfg.TesseractDataPath, cfg.OCRLanguages)
	defer ocrClient.Close()

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// The alias table is built once and shared read-only.
	matcher := fieldmatch.New()

	// Initialize service layer
	identityService := service.NewIdentityService(ocrClient, pdfProcessor)
	formService := service.NewFormService(matcher)

	// Initialize handler layer
	identityHandler := handler.NewIdentityHandler(identityService, cfg.MaxFileSize)
	fieldHandler := handler.NewFieldHandler(matcher)
	formHandler := handler.NewFormHandler(formService)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Aadhaar Form Assist",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		identity := api.Group("/identity")
		{
			identity.POST("/extract", identityHandler.Extract)
		}

		fields := api.Group("/fields")
		{
			fields.POST("/match", fieldHandler.Match)
			fields.POST("/matches", fieldHandler.AllMatches)
		}

		forms := api.Group("/forms")
		{
			forms.GET("", formHandler.ListTemplates)
			forms.POST("/:id/autofill", formHandler.Autofill)
		}
	}

	log.Info().Str("port", cfg.ServerPort).Msg("starting Aadhaar Form Assist service")
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
