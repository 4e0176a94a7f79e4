package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"alphafarm/entities"
	"alphafarm/internal/testutil"
	"alphafarm/pkg/catalog"
	"alphafarm/pkg/draft"
	landCtrlImp "alphafarm/pkg/land/controllerImp"
	landRepoImp "alphafarm/pkg/land/repositoryImp"
	landSvcImp "alphafarm/pkg/land/serviceImp"
	"alphafarm/pkg/middleware"
	planCtrlImp "alphafarm/pkg/plan/controllerImp"
	planRepoImp "alphafarm/pkg/plan/repositoryImp"
	planSvcImp "alphafarm/pkg/plan/serviceImp"
	"alphafarm/pkg/plan/types"
	yieldCtrlImp "alphafarm/pkg/yield/controllerImp"
	yieldRepoImp "alphafarm/pkg/yield/repositoryImp"
	yieldSvcImp "alphafarm/pkg/yield/serviceImp"
)

type fixture struct {
	client *Client
	landID uint
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := zaptest.NewLogger(t)
	acc, farmer := testutil.SeedFarmer(t, db, "9876543210", "Ravi")
	land := testutil.SeedLand(t, db, farmer.FarmerID, 5, entities.StatusApproved)
	testutil.SeedLand(t, db, farmer.FarmerID, 3, entities.StatusPending)

	lr := landRepoImp.New(db)
	pr := planRepoImp.New(db)
	lands := landCtrlImp.New(landSvcImp.NewLandService(lr))
	plans := planCtrlImp.NewPlanCtrl(planSvcImp.NewPlanService(pr, lr, nil, log))
	yields := yieldCtrlImp.New(yieldSvcImp.NewYieldService(yieldRepoImp.New(db), nil, catalog.DefaultFactors(), nil, log))

	e := testutil.NewEcho()
	e.GET("/farmer/yield-estimate", yields.Estimate)
	f := e.Group("/farmer", middleware.TokenAuth(testutil.Tokens))
	f.GET("/land", lands.List)
	f.GET("/crop-plan", plans.List)
	f.POST("/crop-plan", plans.Create)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	raw, err := testutil.Tokens.Issue(acc.AccountID, farmer.FarmerID, entities.RoleFarmer)
	require.NoError(t, err)
	return fixture{client: New(srv.URL, raw, srv.Client()), landID: land.LandID}
}

func TestLandsOnlyApprovedWithCommittedArea(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	lands, err := fx.client.Lands(ctx)
	require.NoError(t, err)
	require.Len(t, lands, 1)
	assert.Equal(t, fx.landID, lands[0].ID)
	assert.Equal(t, 5.0, lands[0].TotalArea)
	assert.Zero(t, lands[0].CommittedArea)
	assert.Equal(t, "Red", lands[0].SoilType)

	err = fx.client.SubmitPlan(ctx, types.CreatePlanRequest{
		LandID: fx.landID, IrrigationType: "Drip", TotalAcresAllocated: 2,
		Crops: []types.CropEntry{{CropName: "Ragi", Acres: 2, SowingDate: "2024-07-01"}},
	})
	require.NoError(t, err)

	lands, err = fx.client.Lands(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, lands[0].CommittedArea)
}

func TestSessionRoundTrip(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	lands, err := fx.client.Lands(ctx)
	require.NoError(t, err)

	s := draft.NewSession(ctx, lands, fx.client, fx.client, zaptest.NewLogger(t))
	s.SelectLand(fx.landID)
	s.SetIrrigationType("Drip")
	s.UpdateRowField(0, draft.FieldCrop, "Maize")
	s.UpdateRowField(0, draft.FieldSowingDate, "2024-06-10")
	s.UpdateRowField(0, draft.FieldAcres, "3")
	s.Wait()

	d := s.Draft()
	require.NotNil(t, d.Rows[0].ExpectedYield)
	assert.Greater(t, *d.Rows[0].ExpectedYield, 0.0)

	require.NoError(t, s.Submit(ctx))
	assert.Nil(t, s.Draft().Land)

	lands, err = fx.client.Lands(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.0, lands[0].CommittedArea)
}

func TestSubmitPlanReturnsDetail(t *testing.T) {
	fx := setup(t)
	err := fx.client.SubmitPlan(context.Background(), types.CreatePlanRequest{
		LandID: fx.landID, IrrigationType: "Drip", TotalAcresAllocated: 6,
		Crops: []types.CropEntry{{CropName: "Maize", Acres: 6, SowingDate: "2024-06-10"}},
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Total crop allocation exceeds limit", apiErr.Error())
}

func TestEstimateRequiresAcres(t *testing.T) {
	fx := setup(t)
	_, err := fx.client.EstimateYield(context.Background(), draft.YieldQuery{Crop: "Ragi"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	fx := setup(t)
	fx.client.token = ""
	_, err := fx.client.Lands(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
