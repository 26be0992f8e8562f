package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/farmtech/farmtech-api/internal/application/inventory"
	applistings "github.com/farmtech/farmtech-api/internal/application/listings"
	appsoil "github.com/farmtech/farmtech-api/internal/application/soil"
	apptransport "github.com/farmtech/farmtech-api/internal/application/transport"
	appusers "github.com/farmtech/farmtech-api/internal/application/users"
	appweather "github.com/farmtech/farmtech-api/internal/application/weather"
	dominventory "github.com/farmtech/farmtech-api/internal/domain/inventory"
	domlistings "github.com/farmtech/farmtech-api/internal/domain/listings"
	domsoil "github.com/farmtech/farmtech-api/internal/domain/soil"
	domtransport "github.com/farmtech/farmtech-api/internal/domain/transport"
	domusers "github.com/farmtech/farmtech-api/internal/domain/users"
	domweather "github.com/farmtech/farmtech-api/internal/domain/weather"
	"github.com/farmtech/farmtech-api/internal/infra/ai/prompt"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

//
// in-memory fakes, one per port the handlers touch
//

type memSoilRepo struct{ saved []*domsoil.Analysis }

func (r *memSoilRepo) Save(_ context.Context, a *domsoil.Analysis) error {
	r.saved = append(r.saved, a)
	return nil
}

func (r *memSoilRepo) Get(_ context.Context, id domsoil.AnalysisID) (*domsoil.Analysis, error) {
	for _, a := range r.saved {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domsoil.ErrNotFound
}

func (r *memSoilRepo) Paginate(_ context.Context, userID string, _, _ int) ([]*domsoil.Analysis, error) {
	var out []*domsoil.Analysis
	for _, a := range r.saved {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type advisorFunc func(req domsoil.AdviceRequest) (string, error)

func (f advisorFunc) Advise(_ context.Context, req domsoil.AdviceRequest) (string, error) {
	return f(req)
}

type memStager struct{}

func (memStager) Stage(_ []byte, mime string) (domsoil.StagedEvidence, error) {
	return memEvidence{mime: mime}, nil
}

type memEvidence struct{ mime string }

func (memEvidence) Path() string       { return "/tmp/soil-evidence-mem.jpg" }
func (e memEvidence) MIMEType() string { return e.mime }
func (memEvidence) Release() error     { return nil }

type memUserRepo struct{ users []*domusers.User }

func (r *memUserRepo) Save(_ context.Context, u *domusers.User) error {
	r.users = append(r.users, u)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id domusers.UserID) (*domusers.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByPhone(_ context.Context, phone string) (*domusers.User, error) {
	for _, u := range r.users {
		if u.PhoneNumber == phone {
			return u, nil
		}
	}
	return nil, nil
}

type memOTPRepo struct{ codes []*domusers.OTPChallenge }

func (r *memOTPRepo) Save(_ context.Context, c *domusers.OTPChallenge) error {
	r.codes = append(r.codes, c)
	return nil
}

func (r *memOTPRepo) Find(_ context.Context, phone, code string) (*domusers.OTPChallenge, error) {
	for i := len(r.codes) - 1; i >= 0; i-- {
		if r.codes[i].PhoneNumber == phone && r.codes[i].Code == code {
			return r.codes[i], nil
		}
	}
	return nil, nil
}

type memManpowerRepo struct{ items []*domlistings.Manpower }

func (r *memManpowerRepo) Save(_ context.Context, m *domlistings.Manpower) error {
	r.items = append(r.items, m)
	return nil
}

func (r *memManpowerRepo) Active(_ context.Context, _ int) ([]*domlistings.Manpower, error) {
	return r.items, nil
}

type memEquipmentRepo struct{ items []*domlistings.Equipment }

func (r *memEquipmentRepo) Save(_ context.Context, e *domlistings.Equipment) error {
	r.items = append(r.items, e)
	return nil
}

func (r *memEquipmentRepo) Available(_ context.Context, _ int) ([]*domlistings.Equipment, error) {
	return r.items, nil
}

type memBookingRepo struct{ items []*domtransport.Booking }

func (r *memBookingRepo) Save(_ context.Context, b *domtransport.Booking) error {
	r.items = append(r.items, b)
	return nil
}

func (r *memBookingRepo) Get(_ context.Context, _ domtransport.BookingID) (*domtransport.Booking, error) {
	return nil, nil
}

func (r *memBookingRepo) ByFarmer(_ context.Context, _ string, _ int) ([]*domtransport.Booking, error) {
	return r.items, nil
}

type memInventoryRepo struct{ items []*dominventory.Item }

func (r *memInventoryRepo) Save(_ context.Context, it *dominventory.Item) error {
	r.items = append(r.items, it)
	return nil
}

func (r *memInventoryRepo) ByUser(_ context.Context, userID string, _ int) ([]*dominventory.Item, error) {
	var out []*dominventory.Item
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memInventoryRepo) Marketplace(_ context.Context, _ int) ([]*dominventory.Item, error) {
	return r.items, nil
}

type providerFunc func(lat, lon float64) (*domweather.Report, error)

func (f providerFunc) Current(_ context.Context, lat, lon float64) (*domweather.Report, error) {
	return f(lat, lon)
}

type testEnv struct {
	handler  http.Handler
	soilRepo *memSoilRepo
}

func newTestEnv(advise advisorFunc) *testEnv {
	clock := fixedClock{t: time.Date(2025, 9, 5, 10, 0, 0, 0, time.UTC)}
	soilRepo := &memSoilRepo{}

	if advise == nil {
		advise = func(domsoil.AdviceRequest) (string, error) { return "live advice", nil }
	}

	deps := Deps{
		Soil: &appsoil.Service{
			Repo:    soilRepo,
			Advisor: advise,
			Stager:  memStager{},
			Clock:   clock,
		},
		Users:     &appusers.Service{Repo: &memUserRepo{}, OTP: &memOTPRepo{}, Clock: clock},
		Listings:  &applistings.Service{Manpower: &memManpowerRepo{}, Equipment: &memEquipmentRepo{}, Clock: clock},
		Transport: &apptransport.Service{Repo: &memBookingRepo{}, Clock: clock},
		Inventory: &appinventory.Service{Repo: &memInventoryRepo{}, Clock: clock},
		Weather: &appweather.Service{Provider: providerFunc(func(float64, float64) (*domweather.Report, error) {
			return nil, errors.New("provider down")
		})},
	}
	return &testEnv{handler: NewRouter(deps), soilRepo: soilRepo}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSoilAnalyzeLive(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	rec := env.do(t, http.MethodPost, "/api/soil/analyze", map[string]any{
		"user_id":          "user-1",
		"soil_description": "red laterite",
		"location":         map[string]any{"state": "Karnataka"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "live advice", body["result"])
	assert.NotEmpty(t, body["analysis_id"])
	require.Len(t, env.soilRepo.saved, 1)
}

func TestSoilAnalyzeAlways200OnAdvisorFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(func(domsoil.AdviceRequest) (string, error) {
		return "", errors.New("advisory service down")
	})
	rec := env.do(t, http.MethodPost, "/api/soil/analyze", map[string]any{
		"user_id": "user-2",
	})

	// advisory failures never surface as HTTP errors
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, prompt.FallbackAdvisory, body["result"])

	require.Len(t, env.soilRepo.saved, 1)
	assert.Equal(t, domsoil.SourceFallback, env.soilRepo.saved[0].Source)
}

func TestSoilAnalyzeRequiresUserID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	rec := env.do(t, http.MethodPost, "/api/soil/analyze", map[string]any{
		"soil_description": "no user",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.soilRepo.saved)
}

func TestSoilHistoryAndGet(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	rec := env.do(t, http.MethodPost, "/api/soil/analyze", map[string]any{"user_id": "user-3"})
	require.Equal(t, http.StatusOK, rec.Code)
	id := decode(t, rec)["analysis_id"].(string)

	rec = env.do(t, http.MethodGet, "/api/soil/analyses?user_id=user-3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = env.do(t, http.MethodGet, "/api/soil/analyses/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/soil/analyses/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/soil/analyses", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	phone := "+919812345678"

	rec := env.do(t, http.MethodPost, "/api/auth/request-otp", map[string]any{"phone_number": phone})
	require.Equal(t, http.StatusOK, rec.Code)
	otp := decode(t, rec)["mock_otp"].(string)
	assert.Equal(t, appusers.MockOTP, otp)

	rec = env.do(t, http.MethodPost, "/api/auth/verify-otp", map[string]any{
		"phone_number": phone, "otp": otp,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "new_user", decode(t, rec)["status"])

	rec = env.do(t, http.MethodPost, "/api/auth/verify-otp", map[string]any{
		"phone_number": phone, "otp": "999999",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"phone_number": phone,
		"name":         "Asha",
		"user_types":   []string{"farmer"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	userID := decode(t, rec)["id"].(string)

	// duplicate registration rejected
	rec = env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"phone_number": phone,
		"name":         "Asha",
		"user_types":   []string{"farmer"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users/"+userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Asha", decode(t, rec)["name"])

	rec = env.do(t, http.MethodGet, "/api/users/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)

	rec := env.do(t, http.MethodPost, "/api/auth/request-otp", map[string]any{"phone_number": "abc"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"phone_number": "+919812345678",
		"user_types":   []string{"wizard"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWeatherDegradesToDefault(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	rec := env.do(t, http.MethodPost, "/api/weather/current", map[string]any{
		"latitude": 18.52, "longitude": 73.85,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Demo Location", body["location"])

	rec = env.do(t, http.MethodPost, "/api/weather/current", map[string]any{
		"latitude": 120.0, "longitude": 0.0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarketplaceFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)

	rec := env.do(t, http.MethodPost, "/api/manpower/create", map[string]any{
		"user_id": "u-1", "title": "Harvest help needed", "payment": 500.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/manpower/listings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var jobs []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 1)

	rec = env.do(t, http.MethodPost, "/api/equipment/create", map[string]any{
		"user_id": "u-1", "equipment_name": "Tractor", "daily_rate": 1200.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/equipment/listings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// missing required fields
	rec = env.do(t, http.MethodPost, "/api/manpower/create", map[string]any{"user_id": "u-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransportEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)

	rec := env.do(t, http.MethodPost, "/api/transport/calculate-price", map[string]any{"distance": 100.0})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, 300+100*15+100.0, body["total_price"])

	rec = env.do(t, http.MethodPost, "/api/transport/book", map[string]any{
		"farmer_id": "f-1", "distance": 40.0, "vehicle_type": "tempo",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", decode(t, rec)["status"])

	rec = env.do(t, http.MethodPost, "/api/transport/book", map[string]any{"distance": 40.0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInventoryEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)

	rec := env.do(t, http.MethodPost, "/api/inventory/add", map[string]any{
		"user_id": "u-9", "item_name": "Wheat", "quantity": 100.0,
		"unit": "kg", "action": "sell", "price_per_unit": 22.5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/inventory/add", map[string]any{
		"user_id": "u-9", "item_name": "Rice", "action": "teleport",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/inventory/u-9", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 1)

	rec = env.do(t, http.MethodGet, "/api/marketplace/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStaticCatalogs(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)

	rec := env.do(t, http.MethodGet, "/api/schemes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var schemes []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schemes))
	assert.NotEmpty(t, schemes)

	rec = env.do(t, http.MethodGet, "/api/insurance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthWithoutChecks(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
