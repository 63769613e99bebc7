package router

import (
	"time"

	"github.com/elKevin24/proyectos-inmobiliarios/internal/config"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/handler"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/middleware"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/repository"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/service"
	"github.com/elKevin24/proyectos-inmobiliarios/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the cross-cutting pieces the router shares with main: the
// services that background goroutines also need.
type Deps struct {
	ApartadoSvc service.ApartadoService
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) (*gin.Engine, *Deps) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	proyectoRepo := repository.NewProyectoRepository(db)
	terrenoRepo := repository.NewTerrenoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	cotizacionRepo := repository.NewCotizacionRepository(db)
	apartadoRepo := repository.NewApartadoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	planRepo := repository.NewPlanPagoRepository(db)
	amortRepo := repository.NewAmortizacionRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	proyectoSvc := service.NewProyectoService(proyectoRepo, terrenoRepo)
	terrenoSvc := service.NewTerrenoService(terrenoRepo, proyectoRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	cotizacionSvc := service.NewCotizacionService(cotizacionRepo, terrenoRepo)
	ventaSvc := service.NewVentaService(ventaRepo, terrenoRepo, clienteRepo, proyectoRepo, planRepo, amortRepo)
	apartadoSvc := service.NewApartadoService(apartadoRepo, terrenoRepo, clienteRepo, proyectoRepo, ventaRepo, planRepo, amortRepo)
	planSvc := service.NewPlanPagoService(planRepo, amortRepo, pagoRepo, ventaRepo, cfg.PDFStoragePath, cfg.EmpresaNombre)
	pagoSvc := service.NewPagoService(pagoRepo, planRepo, amortRepo, ventaRepo, dispatcher)
	reporteSvc := service.NewReporteService(reporteRepo, pagoRepo, apartadoRepo, cotizacionRepo, amortRepo, planRepo, ventaRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	proyectosH := handler.NewProyectosHandler(proyectoSvc)
	terrenosH := handler.NewTerrenosHandler(terrenoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	cotizacionesH := handler.NewCotizacionesHandler(cotizacionSvc)
	apartadosH := handler.NewApartadosHandler(apartadoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	planesH := handler.NewPlanesPagoHandler(planSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("vendedor", "supervisor", "administrador")
	supervisores := middleware.RequireRole("supervisor", "administrador")
	admins := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		proyectos := v1.Group("/proyectos")
		{
			proyectos.GET("", todos, proyectosH.Listar)
			proyectos.GET("/:id", todos, proyectosH.Obtener)
			proyectos.POST("", admins, proyectosH.Crear)
			proyectos.PUT("/:id", admins, proyectosH.Actualizar)
			proyectos.DELETE("/:id", admins, proyectosH.Eliminar)
		}

		terrenos := v1.Group("/terrenos")
		{
			terrenos.GET("", todos, terrenosH.Listar)
			terrenos.GET("/:id", todos, terrenosH.Obtener)
			terrenos.POST("", supervisores, terrenosH.Crear)
			terrenos.PUT("/:id", supervisores, terrenosH.Actualizar)
			terrenos.DELETE("/:id", admins, terrenosH.Eliminar)
		}

		clientes := v1.Group("/clientes")
		{
			clientes.GET("", todos, clientesH.Listar)
			clientes.GET("/:id", todos, clientesH.Obtener)
			clientes.POST("", todos, clientesH.Crear)
			clientes.PUT("/:id", todos, clientesH.Actualizar)
			clientes.DELETE("/:id", supervisores, clientesH.Eliminar)
		}

		cotizaciones := v1.Group("/cotizaciones")
		{
			cotizaciones.GET("", todos, cotizacionesH.Listar)
			cotizaciones.GET("/:id", todos, cotizacionesH.Obtener)
			cotizaciones.POST("", todos, cotizacionesH.Crear)
			cotizaciones.DELETE("/:id", supervisores, cotizacionesH.Eliminar)
		}

		apartados := v1.Group("/apartados")
		{
			apartados.GET("", todos, apartadosH.Listar)
			apartados.GET("/:id", todos, apartadosH.Obtener)
			apartados.POST("", todos, apartadosH.Crear)
			apartados.POST("/:id/convertir", todos, apartadosH.Convertir)
			apartados.DELETE("/:id", supervisores, apartadosH.Cancelar)
		}

		ventas := v1.Group("/ventas")
		{
			ventas.GET("", todos, ventasH.Listar)
			ventas.GET("/:id", todos, ventasH.Obtener)
			ventas.GET("/:id/plan-pago", todos, planesH.ObtenerPorVenta)
			ventas.POST("", todos, ventasH.Crear)
			ventas.DELETE("/:id", supervisores, ventasH.Cancelar)
		}

		planes := v1.Group("/planes-pago")
		{
			planes.GET("", todos, planesH.Listar)
			planes.GET("/:id", todos, planesH.Obtener)
			planes.GET("/:id/amortizaciones", todos, planesH.Amortizaciones)
			planes.GET("/:id/estado-cuenta", todos, planesH.EstadoCuenta)
			planes.GET("/:id/estado-cuenta/pdf", todos, planesH.EstadoCuentaPDF)
			planes.POST("", supervisores, planesH.Crear)
			planes.PUT("/:id", supervisores, planesH.Actualizar)
			planes.DELETE("/:id", admins, planesH.Eliminar)
		}

		// Condonación is a write against the plan, supervised roles only.
		v1.POST("/amortizaciones/:id/condonar", supervisores, planesH.Condonar)

		pagos := v1.Group("/pagos")
		{
			pagos.GET("", todos, pagosH.Listar)
			pagos.GET("/:id", todos, pagosH.Obtener)
			pagos.POST("", todos, pagosH.Registrar)
			pagos.DELETE("/:id", supervisores, pagosH.Cancelar)
		}

		reportes := v1.Group("/reportes", supervisores)
		{
			reportes.GET("/dashboard", reportesH.Dashboard)
			reportes.GET("/cuotas-vencidas", reportesH.CuotasVencidas)
			reportes.GET("/ventas/export", reportesH.ExportVentas)
		}

		usuarios := v1.Group("/usuarios", admins)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, &Deps{ApartadoSvc: apartadoSvc}
}
