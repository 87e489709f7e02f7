package main

import (
	"context"
	"log"
	"os"
	"strings"

	_ "backend/api/swagger" // swagger docs
	"backend/internal/auth"
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// @title           Temple Management API
// @version         1.0
// @description     Multi-tenant temple management backend with role-based page permissions.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.basic BasicAuth
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPassword := envOr("DB_PASSWORD", "postgres")
	dbName := envOr("DB_NAME", "temple")
	dbSslMode := envOr("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Authorization settings
	publicEndpoints := strings.Split(envOr("PUBLIC_ENDPOINTS",
		"/api/auth/login,/api/auth/register,/api/auth/verify,/health,/swagger"), ",")
	for i := range publicEndpoints {
		publicEndpoints[i] = strings.TrimSpace(publicEndpoints[i])
	}
	permissionAuthEnabled := envOr("PERMISSION_AUTH_ENABLED", "true") != "false"

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	grantRepo := repository.NewGrantRepository(db)
	txManager := repository.NewTransactionManager(db)

	authService := service.NewAuthService(userRepo, roleRepo, grantRepo)
	roleService := service.NewRoleService(roleRepo, userRepo, txManager)
	userService := service.NewUserService(userRepo, roleRepo)
	templeService := service.NewTempleService(db)
	devoteeService := service.NewDevoteeService(db)
	donationService := service.NewDonationService(db, wsHub)
	eventService := service.NewEventService(db)
	inventoryService := service.NewInventoryService(db, wsHub)
	saleService := service.NewSaleService(db)
	poojaService := service.NewPoojaService(db)
	contributionService := service.NewContributionService(db)

	authz := middleware.NewAuthorizer(authService, grantRepo, auth.NewPolicyRegistry(), middleware.Config{
		PublicEndpoints:       publicEndpoints,
		PermissionAuthEnabled: permissionAuthEnabled,
	})

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService, authz)
	roleHandler := handler.NewRoleHandler(roleService, authz)
	userHandler := handler.NewUserHandler(userService, authz)
	templeHandler := handler.NewTempleHandler(templeService, authz)
	devoteeHandler := handler.NewDevoteeHandler(devoteeService, authz)
	donationHandler := handler.NewDonationHandler(donationService, authz)
	eventHandler := handler.NewEventHandler(eventService, authz)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, authz)
	saleHandler := handler.NewSaleHandler(saleService, authz)
	poojaHandler := handler.NewPoojaHandler(poojaService, authz)
	contributionHandler := handler.NewContributionHandler(contributionService, authz)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Every request gets one identity resolution pass; route middlewares
	// decide what that identity may do.
	router.Use(authz.ResolveIdentity())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, authService)
	})

	// Register API Routes
	authHandler.RegisterRoutes(router.Group(""))
	roleHandler.RegisterRoutes(router.Group(""))
	userHandler.RegisterRoutes(router.Group(""))
	templeHandler.RegisterRoutes(router.Group(""))
	devoteeHandler.RegisterRoutes(router.Group(""))
	donationHandler.RegisterRoutes(router.Group(""))
	eventHandler.RegisterRoutes(router.Group(""))
	inventoryHandler.RegisterRoutes(router.Group(""))
	saleHandler.RegisterRoutes(router.Group(""))
	poojaHandler.RegisterRoutes(router.Group(""))
	contributionHandler.RegisterRoutes(router.Group(""))

	// Seed page permissions, built-in roles and the bootstrap admin
	ctx := context.Background()
	if err := roleService.SeedDefaults(ctx); err != nil {
		log.Fatalf("Seeding roles and permissions failed: %v", err)
	}
	if err := userService.EnsureAdminUser(ctx,
		os.Getenv("ADMIN_USERNAME"), os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatalf("Admin bootstrap failed: %v", err)
	}

	port := envOr("PORT", "8080")

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
