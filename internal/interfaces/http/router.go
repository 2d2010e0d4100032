package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ittest-team/device-accounting/internal/application/audit"
	"github.com/ittest-team/device-accounting/internal/application/auth"
	"github.com/ittest-team/device-accounting/internal/application/report"
	"github.com/ittest-team/device-accounting/internal/application/usecase"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
)

// RouterDeps — зависимости роутера.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	DeviceUC     *usecase.DeviceUseCase
	EmployeeUC   *usecase.EmployeeUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	LocationUC   *usecase.LocationUseCase
	DeviceTypeUC *usecase.DeviceTypeUseCase
	UserUC       *usecase.UserUseCase
	TrashUC      *usecase.TrashUseCase
	DashboardUC  *usecase.DashboardUseCase
	ReportUC     *report.Usecase
	AuditSvc     *audit.Service
	JWTSecret    string
}

// Router регистрирует маршруты API. Три яруса доступа: чтение — любой
// аутентифицированный, мутации — admin и super_admin, управление
// пользователями / аудит / раздел «Удалено» — только super_admin.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (публично)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Всё остальное — только с Bearer-токеном
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin)
	superOnly := RequireRole(entity.RoleSuperAdmin)

	// Dashboard и отчёты
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/devices", reportHandler.DevicesPDF)

	// Devices
	devices := protected.Group("/devices")
	deviceHandler := NewDeviceHandler(deps.DeviceUC)
	devices.Get("/", deviceHandler.List)
	devices.Get("/:id", deviceHandler.GetByID)
	devices.Get("/:id/history", deviceHandler.History)
	devices.Post("/", adminOnly, deviceHandler.Create)
	devices.Put("/:id", adminOnly, deviceHandler.Update)
	devices.Post("/:id/assign", adminOnly, deviceHandler.Assign)
	devices.Post("/:id/transfer", adminOnly, deviceHandler.Transfer)
	devices.Delete("/:id", adminOnly, deviceHandler.Delete)

	// Employees
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Post("/", adminOnly, employeeHandler.Create)
	employees.Put("/:id", adminOnly, employeeHandler.Update)
	employees.Delete("/:id", adminOnly, employeeHandler.Delete)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Locations
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Post("/", adminOnly, locationHandler.Create)
	locations.Put("/:id", adminOnly, locationHandler.Update)
	locations.Delete("/:id", adminOnly, locationHandler.Delete)

	// Device types
	deviceTypes := protected.Group("/device-types")
	deviceTypeHandler := NewDeviceTypeHandler(deps.DeviceTypeUC)
	deviceTypes.Get("/", deviceTypeHandler.List)
	deviceTypes.Get("/:id", deviceTypeHandler.GetByID)
	deviceTypes.Post("/", adminOnly, deviceTypeHandler.Create)
	deviceTypes.Put("/:id", adminOnly, deviceTypeHandler.Update)
	deviceTypes.Delete("/:id", adminOnly, deviceTypeHandler.Delete)

	// Users (только супер-админ)
	users := protected.Group("/users", superOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id/role", userHandler.ChangeRole)
	users.Post("/:id/activate", userHandler.Activate)
	users.Post("/:id/deactivate", userHandler.Deactivate)
	users.Delete("/:id", userHandler.Delete)

	// Audit-лог (только супер-админ)
	auditHandler := NewAuditHandler(deps.AuditSvc)
	protected.Get("/audit", superOnly, auditHandler.Query)

	// Раздел «Удалено» (только супер-админ)
	trash := protected.Group("/trash", superOnly)
	trashHandler := NewTrashHandler(deps.TrashUC)
	trash.Get("/", trashHandler.List)
	trash.Post("/:entity_type/:id/restore", trashHandler.Restore)
	trash.Delete("/:entity_type/:id", trashHandler.PermanentDelete)
}
