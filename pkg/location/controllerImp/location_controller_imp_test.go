package controllerImp

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alphafarm/database"
	"alphafarm/entities"
	"alphafarm/internal/testutil"
	"alphafarm/pkg/location/lookup"
	"alphafarm/pkg/location/repositoryImp"
)

type stubResolver struct{ err error }

func (s stubResolver) Pincode(_ context.Context, pin string) (*lookup.Pincode, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &lookup.Pincode{Pincode: pin, District: "Kolar", State: "Karnataka"}, nil
}

func (s stubResolver) Reverse(_ context.Context, lat, lng float64) (*lookup.Address, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &lookup.Address{District: "Kolar", Latitude: lat, Longitude: lng}, nil
}

func setup(t *testing.T, res Resolver) *echo.Echo {
	t.Helper()
	db := testutil.NewTestDB(t)
	path := filepath.Join(t.TempDir(), "locations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`states:
  - name: Karnataka
    districts:
      - name: Kolar
        villages: [Malur, Bangarapet]
      - name: Mandya
        villages: [Maddur]
  - name: Kerala
`), 0o644))
	require.NoError(t, database.SeedLocations(db, path))

	h := New(repositoryImp.New(db), res, zap.NewNop())
	e := testutil.NewEcho()
	e.GET("/locations/states", h.States)
	e.GET("/locations/districts", h.Districts)
	e.GET("/locations/villages", h.Villages)
	e.GET("/farmer/location/pincode-lookup", h.PincodeLookup)
	e.GET("/farmer/location/reverse-geocode", h.ReverseGeocode)
	return e
}

func TestLocationLists(t *testing.T) {
	e := setup(t, stubResolver{})

	var states []entities.State
	testutil.DecodeJSON(t, testutil.Do(e, http.MethodGet, "/locations/states", "", ""), &states)
	require.Len(t, states, 2)
	assert.Equal(t, "Karnataka", states[0].Name)

	var districts []entities.District
	testutil.DecodeJSON(t, testutil.Do(e, http.MethodGet, "/locations/districts?state=2", "", ""), &districts)
	assert.Empty(t, districts)
	testutil.DecodeJSON(t, testutil.Do(e, http.MethodGet, "/locations/districts?state=1", "", ""), &districts)
	require.Len(t, districts, 2)
	assert.Equal(t, "Kolar", districts[0].Name)

	var villages []entities.Village
	testutil.DecodeJSON(t, testutil.Do(e, http.MethodGet, "/locations/villages?district=1", "", ""), &villages)
	require.Len(t, villages, 2)
	assert.Equal(t, "Bangarapet", villages[0].Name)
	testutil.DecodeJSON(t, testutil.Do(e, http.MethodGet, "/locations/villages", "", ""), &villages)
	assert.Len(t, villages, 3)
}

func TestPincodeLookup(t *testing.T) {
	e := setup(t, stubResolver{})
	assert.Equal(t, http.StatusBadRequest, testutil.Do(e, http.MethodGet, "/farmer/location/pincode-lookup?pincode=12", "", "").Code)
	rec := testutil.Do(e, http.MethodGet, "/farmer/location/pincode-lookup?pincode=563101", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pincode":"563101","district":"Kolar","state":"Karnataka"}`, rec.Body.String())

	e = setup(t, stubResolver{err: lookup.ErrNotFound})
	assert.Equal(t, http.StatusNotFound, testutil.Do(e, http.MethodGet, "/farmer/location/pincode-lookup?pincode=999999", "", "").Code)

	e = setup(t, stubResolver{err: errors.New("dial tcp: timeout")})
	rec = testutil.Do(e, http.MethodGet, "/farmer/location/pincode-lookup?pincode=571401", "", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"detail":"Lookup failed"}`, rec.Body.String())
}

func TestReverseGeocode(t *testing.T) {
	e := setup(t, stubResolver{})
	assert.Equal(t, http.StatusBadRequest, testutil.Do(e, http.MethodGet, "/farmer/location/reverse-geocode?lat=13.1", "", "").Code)
	rec := testutil.Do(e, http.MethodGet, "/farmer/location/reverse-geocode?lat=13.1&lng=78.1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"latitude":13.1`)

	e = setup(t, stubResolver{err: errors.New("boom")})
	assert.Equal(t, http.StatusBadGateway, testutil.Do(e, http.MethodGet, "/farmer/location/reverse-geocode?lat=1&lng=2", "", "").Code)
}
