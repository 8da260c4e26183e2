package handlers

import (
	portssvc "github.com/shelfdesk/shelfdesk_backend/internal/core/ports/services"
	"github.com/shelfdesk/shelfdesk_backend/internal/platform/clock"
	"github.com/shelfdesk/shelfdesk_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	clk clock.Clock,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, services, clk)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	clk clock.Clock,
) {
	v1 := r.Group("/api/v1")

	registerBranchRoutes(v1, services.Branch, services.Ledger, services.Capacity)
	registerMemberRoutes(v1, services.Member, services.Transactions, clk)
	registerTransactionRoutes(v1, services.Sales, services.Transactions)
	registerReportingRoutes(v1, services.Reporting)

	// Destructive batch operations live under /admin, away from the
	// day-to-day front desk surface.
	admin := v1.Group("/admin")
	registerAdminRoutes(admin, services.Member)
}
