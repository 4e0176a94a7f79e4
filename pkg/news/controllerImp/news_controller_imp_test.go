package controllerImp

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alphafarm/entities"
	"alphafarm/internal/testutil"
	"alphafarm/pkg/event"
	"alphafarm/pkg/middleware"
	"alphafarm/pkg/news/repositoryImp"
	"alphafarm/pkg/news/scrape"
	"alphafarm/pkg/news/serviceImp"
)

type fixture struct {
	e      *echo.Echo
	admin  string
	farmer string
	events *event.Recorder
}

func setup(t *testing.T, fetcher *scrape.Fetcher) fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	acc, f := testutil.SeedFarmer(t, db, "9876543210", "Ravi")
	rec := &event.Recorder{}
	if fetcher == nil {
		fetcher = scrape.NewFetcher(nil, nil)
	}
	h := New(serviceImp.NewNewsService(repositoryImp.New(db), fetcher, rec, nil, zap.NewNop()))

	e := testutil.NewEcho()
	admin := e.Group("/admin/api/news", middleware.TokenAuth(testutil.Tokens), middleware.RequireRole(entities.RoleAdmin))
	admin.GET("", h.List)
	admin.POST("", h.Create)
	admin.POST("/import", h.Import)
	admin.DELETE("/:id", h.Delete)
	admin.POST("/:id/approve", h.Approve)
	admin.POST("/:id/reject", h.Reject)
	e.GET("/farmer/news", h.Published, middleware.TokenAuth(testutil.Tokens))

	return fixture{
		e:      e,
		admin:  testutil.AuthHeader(t, 1000, 0, entities.RoleAdmin),
		farmer: testutil.AuthHeader(t, acc.AccountID, f.FarmerID, entities.RoleFarmer),
		events: rec,
	}
}

func (fx fixture) create(t *testing.T, body string) entities.News {
	t.Helper()
	rec := testutil.Do(fx.e, http.MethodPost, "/admin/api/news", fx.admin, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var n entities.News
	testutil.DecodeJSON(t, rec, &n)
	return n
}

func TestFarmerFeedShowsApprovedOnly(t *testing.T) {
	fx := setup(t, nil)
	plain := fx.create(t, `{"title":"Mandi prices"}`)
	important := fx.create(t, `{"title":"Rain alert","is_important":true}`)
	rejected := fx.create(t, `{"title":"Spam"}`)
	fx.create(t, `{"title":"Still pending"}`)
	assert.Equal(t, entities.StatusPending, plain.Status)
	assert.True(t, plain.IsActive)

	for _, id := range []uint{plain.NewsID, important.NewsID} {
		rec := testutil.Do(fx.e, http.MethodPost, fmt.Sprintf("/admin/api/news/%d/approve", id), fx.admin, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := testutil.Do(fx.e, http.MethodPost, fmt.Sprintf("/admin/api/news/%d/reject", rejected.NewsID), fx.admin, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var feed []entities.News
	testutil.DecodeJSON(t, testutil.Do(fx.e, http.MethodGet, "/farmer/news", fx.farmer, ""), &feed)
	require.Len(t, feed, 2)
	assert.Equal(t, "Rain alert", feed[0].Title)
	assert.Equal(t, "Mandi prices", feed[1].Title)

	var all []entities.News
	testutil.DecodeJSON(t, testutil.Do(fx.e, http.MethodGet, "/admin/api/news", fx.admin, ""), &all)
	assert.Len(t, all, 4)
	require.Len(t, fx.events.Events, 3)
	assert.Equal(t, entities.StatusRejected, fx.events.Events[2].Status)
}

func TestCreateDeleteErrors(t *testing.T) {
	fx := setup(t, nil)
	rec := testutil.Do(fx.e, http.MethodPost, "/admin/api/news", fx.admin, `{"summary":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	n := fx.create(t, `{"title":"Seed mela","is_active":false}`)
	assert.False(t, n.IsActive)
	path := fmt.Sprintf("/admin/api/news/%d", n.NewsID)
	assert.Equal(t, http.StatusNoContent, testutil.Do(fx.e, http.MethodDelete, path, fx.admin, "").Code)
	assert.Equal(t, http.StatusNotFound, testutil.Do(fx.e, http.MethodDelete, path, fx.admin, "").Code)
	assert.Equal(t, http.StatusNotFound, testutil.Do(fx.e, http.MethodPost, path+"/approve", fx.admin, "").Code)

	assert.Equal(t, http.StatusForbidden, testutil.Do(fx.e, http.MethodPost, "/admin/api/news", fx.farmer, `{"title":"x"}`).Code)
}

func TestImport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Drip subsidy extended</title>
<meta name="description" content="State extends drip irrigation subsidy."></head>
<body><main><p>Farmers can apply until March.</p></main></body></html>`))
	}))
	defer srv.Close()
	fx := setup(t, scrape.NewFetcher([]string{"127.0.0.1"}, srv.Client()))

	rec := testutil.Do(fx.e, http.MethodPost, "/admin/api/news/import", fx.admin,
		fmt.Sprintf(`{"url":%q,"tags":"irrigation"}`, srv.URL+"/drip"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var n entities.News
	testutil.DecodeJSON(t, rec, &n)
	assert.Equal(t, "Drip subsidy extended", n.Title)
	assert.Equal(t, "State extends drip irrigation subsidy.", n.Summary)
	assert.Equal(t, "Farmers can apply until March.", n.Content)
	assert.Equal(t, "irrigation", n.Tags)
	assert.Equal(t, entities.StatusPending, n.Status)
	require.NotNil(t, n.AuthorID)
	assert.Equal(t, uint(1000), *n.AuthorID)

	rec = testutil.Do(fx.e, http.MethodPost, "/admin/api/news/import", fx.admin, `{"url":"https://example.com/x"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = testutil.Do(fx.e, http.MethodPost, "/admin/api/news/import", fx.admin, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = testutil.Do(fx.e, http.MethodPost, "/admin/api/news/import", fx.admin, fmt.Sprintf(`{"url":%q}`, srv.URL+"/missing"))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
