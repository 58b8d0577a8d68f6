package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pericos457/botica/internal/config"
	"github.com/pericos457/botica/internal/handler"
	"github.com/pericos457/botica/internal/infra"
	"github.com/pericos457/botica/internal/middleware"
	"github.com/pericos457/botica/internal/repository"
	"github.com/pericos457/botica/internal/service"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	reniec := infra.NewReniecClient(cfg.ReniecAPIURL, cfg.ReniecToken)

	// ── Repositories ─────────────────────────────────────────────────────────
	clienteRepo := repository.NewClienteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	compraRepo := repository.NewCompraRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	clienteSvc := service.NewClienteService(clienteRepo, reniec, rdb, log.With().Str("component", "clientes").Logger())
	productoSvc := service.NewProductoService(productoRepo, log.With().Str("component", "productos").Logger())
	compraSvc := service.NewCompraService(compraRepo, nil, log.With().Str("component", "compras").Logger())

	// ── Handlers ─────────────────────────────────────────────────────────────
	clientesH := handler.NewClientesHandler(clienteSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	comprasH := handler.NewComprasHandler(compraSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	compras := r.Group("/compras")
	{
		// Static segments registered before :cod_compra
		compras.GET("/generar-pdf", comprasH.GenerarPDF)
		compras.GET("/detalles", comprasH.ListarDetalles)
		compras.GET("", comprasH.Listar)
		compras.GET("/:cod_compra", comprasH.ObtenerPorCodigo)
		compras.POST("", comprasH.Registrar)
		compras.PUT("/:id", comprasH.Actualizar)
		compras.DELETE("/:id", comprasH.Eliminar)
	}

	clientes := r.Group("/clientes")
	{
		clientes.GET("/reniec/:dni", clientesH.ConsultarReniec)
		clientes.GET("", clientesH.Listar)
		clientes.GET("/:id", clientesH.ObtenerPorID)
		clientes.POST("", clientesH.Crear)
		clientes.PUT("/:id", clientesH.Actualizar)
		clientes.DELETE("/:id", clientesH.Eliminar)
	}

	productos := r.Group("/productos")
	{
		productos.GET("", productosH.Listar)
		productos.GET("/:id", productosH.ObtenerPorID)
		productos.POST("", productosH.Crear)
		productos.PUT("/:id", productosH.Actualizar)
		productos.DELETE("/:id", productosH.Eliminar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
