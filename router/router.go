package router

import (
	"github.com/labstack/echo/v4"

	adminCtrl "alphafarm/pkg/admin/controller"
	authCtrl "alphafarm/pkg/auth/controller"
	farmerCtrl "alphafarm/pkg/farmer/controller"
	landCtrl "alphafarm/pkg/land/controller"
	locationCtrl "alphafarm/pkg/location/controller"
	newsCtrl "alphafarm/pkg/news/controller"
	planCtrl "alphafarm/pkg/plan/controller"
	yieldCtrl "alphafarm/pkg/yield/controller"
)

type Controllers struct {
	Auth     authCtrl.AuthController
	Farmer   farmerCtrl.FarmerController
	Land     landCtrl.LandController
	Plan     planCtrl.PlanController
	Admin    adminCtrl.AdminController
	News     newsCtrl.NewsController
	Yield    yieldCtrl.YieldController
	Location locationCtrl.LocationController
	Health   interface{ Health(echo.Context) error }
	Metrics  echo.HandlerFunc
}

// Guards are the auth middleware chains for the two protected areas.
type Guards struct {
	Farmer []echo.MiddlewareFunc
	Admin  []echo.MiddlewareFunc
}

// New registers every route. Paths are written without trailing slashes;
// the server strips them before routing.
func New(e *echo.Echo, c Controllers, g Guards) *echo.Echo {
	e.GET("/health", c.Health.Health)
	if c.Metrics != nil {
		e.GET("/metrics", c.Metrics)
	}

	// public
	e.POST("/farmer/send-otp", c.Auth.SendOTP)
	e.POST("/farmer/verify-otp", c.Auth.VerifyOTP)
	e.GET("/farmer/news", c.News.Published)
	e.GET("/farmer/yield-estimate", c.Yield.Estimate)
	e.POST("/admin/api/login", c.Auth.AdminLogin)

	loc := e.Group("/locations")
	loc.GET("/states", c.Location.States)
	loc.GET("/districts", c.Location.Districts)
	loc.GET("/villages", c.Location.Villages)

	// farmer
	f := e.Group("/farmer", g.Farmer...)
	f.GET("/whoami", c.Auth.WhoAmI)
	f.POST("/cancel-signup", c.Auth.CancelSignup)
	f.GET("/profile", c.Farmer.Profile)
	f.PUT("/profile", c.Farmer.UpdateProfile)
	f.GET("/recommendations", c.Farmer.Recommendations)

	f.GET("/land", c.Land.List)
	f.POST("/land", c.Land.Create)
	f.GET("/land/:id", c.Land.Get)
	f.PUT("/land/:id", c.Land.Update)
	f.PATCH("/land/:id", c.Land.Update)
	f.DELETE("/land/:id", c.Land.Delete)

	f.GET("/crop-plan", c.Plan.List)
	f.POST("/crop-plan", c.Plan.Create)
	f.GET("/crop-plan/calendar", c.Plan.Calendar)
	f.GET("/crop-plan/:id", c.Plan.Get)
	f.DELETE("/crop-plan/:id", c.Plan.Delete)

	f.GET("/location/pincode-lookup", c.Location.PincodeLookup)
	f.GET("/location/reverse-geocode", c.Location.ReverseGeocode)

	// admin
	a := e.Group("/admin/api", g.Admin...)
	a.GET("/whoami", c.Auth.WhoAmI)
	a.GET("/dashboard", c.Admin.Dashboard)
	a.GET("/approvals/lands", c.Admin.Lands)
	a.PATCH("/approvals/lands/:id", c.Admin.DecideLand)
	a.GET("/approvals/crop-plans", c.Admin.CropPlans)
	a.PATCH("/approvals/crop-plans/:id", c.Admin.DecidePlan)

	a.GET("/news", c.News.List)
	a.POST("/news", c.News.Create)
	a.POST("/news/import", c.News.Import)
	a.DELETE("/news/:id", c.News.Delete)
	a.POST("/news/:id/approve", c.News.Approve)
	a.POST("/news/:id/reject", c.News.Reject)

	a.GET("/yield-configs", c.Yield.Configs)
	a.POST("/yield-configs/import", c.Yield.Import)
	return e
}
