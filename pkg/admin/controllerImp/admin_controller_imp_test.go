package controllerImp

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"alphafarm/entities"
	"alphafarm/internal/testutil"
	adminRepoImp "alphafarm/pkg/admin/repositoryImp"
	"alphafarm/pkg/admin/service"
	"alphafarm/pkg/admin/serviceImp"
	"alphafarm/pkg/event"
	landRepoImp "alphafarm/pkg/land/repositoryImp"
	"alphafarm/pkg/metrics"
	"alphafarm/pkg/middleware"
	planRepoImp "alphafarm/pkg/plan/repositoryImp"
)

type fixture struct {
	e       *echo.Echo
	db      *gorm.DB
	auth    string
	events  *event.Recorder
	metrics *metrics.Metrics
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	admin := entities.Account{Phone: "9000000000", Name: "Admin", Role: entities.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	rec := &event.Recorder{}
	m := metrics.New()
	svc := serviceImp.NewAdminService(adminRepoImp.New(db), landRepoImp.New(db), planRepoImp.New(db), rec, m, zap.NewNop())
	h := New(svc)

	e := testutil.NewEcho()
	g := e.Group("/admin/api", middleware.TokenAuth(testutil.Tokens), middleware.RequireRole(entities.RoleAdmin))
	g.GET("/dashboard", h.Dashboard)
	g.GET("/approvals/lands", h.Lands)
	g.PATCH("/approvals/lands/:id", h.DecideLand)
	g.GET("/approvals/crop-plans", h.CropPlans)
	g.PATCH("/approvals/crop-plans/:id", h.DecidePlan)
	return fixture{
		e: e, db: db, events: rec, metrics: m,
		auth: testutil.AuthHeader(t, admin.AccountID, 0, entities.RoleAdmin),
	}
}

func farmerStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var f entities.Farmer
	require.NoError(t, db.First(&f, "farmer_id = ?", id).Error)
	return f.ApprovalStatus
}

func TestFarmerTokenRejected(t *testing.T) {
	fx := setup(t)
	acc, f := testutil.SeedFarmer(t, fx.db, "9876543210", "Ravi")
	auth := testutil.AuthHeader(t, acc.AccountID, f.FarmerID, entities.RoleFarmer)
	rec := testutil.Do(fx.e, http.MethodGet, "/admin/api/dashboard", auth, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDashboard(t *testing.T) {
	fx := setup(t)
	_, ravi := testutil.SeedFarmer(t, fx.db, "9876543210", "Ravi")
	_, uma := testutil.SeedFarmer(t, fx.db, "9876543211", "Uma")
	testutil.SeedFarmer(t, fx.db, "9876543212", "Landless")
	require.NoError(t, fx.db.Model(&entities.Farmer{}).Where("farmer_id IN ?", []uint{ravi.FarmerID, uma.FarmerID}).
		Updates(map[string]any{"district": "Kolar", "village": "Malur"}).Error)
	testutil.SeedLand(t, fx.db, ravi.FarmerID, 2, entities.StatusPending)
	testutil.SeedLand(t, fx.db, ravi.FarmerID, 3, entities.StatusApproved)
	testutil.SeedLand(t, fx.db, uma.FarmerID, 1, entities.StatusRejected)

	var d service.Dashboard
	testutil.DecodeJSON(t, testutil.Do(fx.e, http.MethodGet, "/admin/api/dashboard", fx.auth, ""), &d)
	assert.Equal(t, int64(4), d.TotalUsers)
	assert.Equal(t, int64(2), d.TotalFarmers)
	assert.Equal(t, int64(2), d.ProfilesCompleted)
	assert.Equal(t, []string{"Kolar"}, d.ChartLabels)
	assert.Equal(t, []int64{2}, d.ChartValues)
	assert.Equal(t, map[string]int64{"Pending": 1, "Approved": 1, "Rejected": 1}, d.LandApprovalSummary)
	require.Len(t, d.PendingFarmers, 1)
	assert.Equal(t, "Ravi", d.PendingFarmers[0].Name)
}

func TestLandDecisionSyncsFarmer(t *testing.T) {
	fx := setup(t)
	_, f := testutil.SeedFarmer(t, fx.db, "9876543210", "Ravi")
	a := testutil.SeedLand(t, fx.db, f.FarmerID, 2, entities.StatusPending)
	b := testutil.SeedLand(t, fx.db, f.FarmerID, 3, entities.StatusPending)

	var rows []service.LandApproval
	testutil.DecodeJSON(t, testutil.Do(fx.e, http.MethodGet, "/admin/api/approvals/lands?status=pending", fx.auth, ""), &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ravi", rows[0].FarmerName)

	patch := func(id uint, body string) int {
		return testutil.Do(fx.e, http.MethodPatch, fmt.Sprintf("/admin/api/approvals/lands/%d", id), fx.auth, body).Code
	}
	require.Equal(t, http.StatusOK, patch(a.LandID, `{"approval_status":"approved"}`))
	assert.Equal(t, entities.StatusPending, farmerStatus(t, fx.db, f.FarmerID), "one land still pending")

	require.Equal(t, http.StatusOK, patch(b.LandID, `{"approval_status":"approved","admin_remark":"ok"}`))
	assert.Equal(t, entities.StatusApproved, farmerStatus(t, fx.db, f.FarmerID))

	require.Equal(t, http.StatusOK, patch(b.LandID, `{"approval_status":"rejected"}`))
	assert.Equal(t, entities.StatusRejected, farmerStatus(t, fx.db, f.FarmerID))

	var land entities.Land
	require.NoError(t, fx.db.First(&land, "land_id = ?", b.LandID).Error)
	assert.Equal(t, "ok", land.AdminRemark, "remark kept when omitted")

	assert.Equal(t, http.StatusBadRequest, patch(b.LandID, `{"approval_status":"maybe"}`))
	assert.Equal(t, http.StatusNotFound, patch(999, `{"approval_status":"approved"}`))

	assert.Equal(t, 2.0, promtest.ToFloat64(fx.metrics.Decisions.WithLabelValues(event.KindLand, entities.StatusApproved)))
	var kinds []string
	for _, ev := range fx.events.Events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []string{"land", "farmer", "land", "farmer", "land", "farmer"}, kinds)
	assert.Equal(t, entities.StatusRejected, fx.events.Events[5].Status)
}

func TestCropPlanApprovals(t *testing.T) {
	fx := setup(t)
	_, f := testutil.SeedFarmer(t, fx.db, "9876543210", "Ravi")
	land := testutil.SeedLand(t, fx.db, f.FarmerID, 5, entities.StatusApproved)
	plan := entities.CropPlan{
		FarmerID: f.FarmerID, LandID: land.LandID, Season: "Kharif (Monsoon)", TotalAcresAllocated: 3,
		ApprovalStatus: entities.StatusPending,
		Crops:          []entities.CropAllocation{{CropName: "Ragi", Acres: 1}, {CropName: "Maize", Acres: 2}},
	}
	require.NoError(t, fx.db.Create(&plan).Error)

	var rows []service.PlanApproval
	testutil.DecodeJSON(t, testutil.Do(fx.e, http.MethodGet, "/admin/api/approvals/crop-plans", fx.auth, ""), &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "Maize + Ragi", rows[0].CropName)
	assert.Equal(t, "Kolar", rows[0].District)
	assert.Equal(t, 3.0, rows[0].PlannedArea)

	rec := testutil.Do(fx.e, http.MethodPatch, fmt.Sprintf("/admin/api/approvals/crop-plans/%d", plan.PlanID), fx.auth,
		`{"approval_status":"approved","admin_remark":"good"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var res service.DecisionResult
	testutil.DecodeJSON(t, rec, &res)
	assert.Equal(t, service.DecisionResult{Message: "Crop plan approval updated", ApprovalStatus: "approved", AdminRemark: "good"}, res)

	testutil.DecodeJSON(t, testutil.Do(fx.e, http.MethodGet, "/admin/api/approvals/crop-plans?status=pending", fx.auth, ""), &rows)
	assert.Empty(t, rows)

	rec = testutil.Do(fx.e, http.MethodPatch, "/admin/api/approvals/crop-plans/42", fx.auth, `{"approval_status":"approved"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Crop plan not found")

	require.Len(t, fx.events.Events, 1)
	assert.Equal(t, event.KindCropPlan, fx.events.Events[0].Kind)
}

func TestReapprovingRejectedPlanMustFit(t *testing.T) {
	fx := setup(t)
	_, f := testutil.SeedFarmer(t, fx.db, "9876543210", "Ravi")
	land := testutil.SeedLand(t, fx.db, f.FarmerID, 5, entities.StatusApproved)

	first := entities.CropPlan{FarmerID: f.FarmerID, LandID: land.LandID, TotalAcresAllocated: 5, ApprovalStatus: entities.StatusRejected}
	second := entities.CropPlan{FarmerID: f.FarmerID, LandID: land.LandID, TotalAcresAllocated: 5, ApprovalStatus: entities.StatusPending}
	require.NoError(t, fx.db.Create(&first).Error)
	require.NoError(t, fx.db.Create(&second).Error)

	path := fmt.Sprintf("/admin/api/approvals/crop-plans/%d", first.PlanID)
	rec := testutil.Do(fx.e, http.MethodPatch, path, fx.auth, `{"approval_status":"approved"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	var body map[string]any
	testutil.DecodeJSON(t, rec, &body)
	assert.Equal(t, "Total crop allocation exceeds limit", body["detail"])
	assert.Equal(t, 0.0, body["allowed_remaining"])
	assert.Equal(t, 5.0, body["requested"])
	assert.Equal(t, 5.0, body["already_planned"])
	assert.Empty(t, fx.events.Events)

	var stored entities.CropPlan
	require.NoError(t, fx.db.First(&stored, "plan_id = ?", first.PlanID).Error)
	assert.Equal(t, entities.StatusRejected, stored.ApprovalStatus)

	// remark-only edits on a rejected plan do not need room
	rec = testutil.Do(fx.e, http.MethodPatch, path, fx.auth, `{"admin_remark":"soil test pending"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, fx.db.Model(&second).Update("approval_status", entities.StatusRejected).Error)
	rec = testutil.Do(fx.e, http.MethodPatch, path, fx.auth, `{"approval_status":"approved"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
