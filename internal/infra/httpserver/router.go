package httpserver

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appinventory "github.com/farmtech/farmtech-api/internal/application/inventory"
	applistings "github.com/farmtech/farmtech-api/internal/application/listings"
	appsoil "github.com/farmtech/farmtech-api/internal/application/soil"
	apptransport "github.com/farmtech/farmtech-api/internal/application/transport"
	appusers "github.com/farmtech/farmtech-api/internal/application/users"
	appweather "github.com/farmtech/farmtech-api/internal/application/weather"
	"github.com/farmtech/farmtech-api/internal/domain/schemes"
	domsoil "github.com/farmtech/farmtech-api/internal/domain/soil"
	domusers "github.com/farmtech/farmtech-api/internal/domain/users"
	"github.com/farmtech/farmtech-api/internal/middleware"
)

// ImageStore uploads raw image bytes and returns a public URL.
type ImageStore interface {
	PutBytes(ctx context.Context, data []byte, key, contentType string) (string, error)
}

// Deps bundles everything the router needs.
type Deps struct {
	Soil      *appsoil.Service
	Users     *appusers.Service
	Listings  *applistings.Service
	Transport *apptransport.Service
	Inventory *appinventory.Service
	Weather   *appweather.Service

	Images ImageStore // optional; nil keeps image fields as-is
	Log    *zap.Logger

	CORSOrigins  []string
	RateCapacity int
	RateRefill   int
	HealthChecks map[string]middleware.HealthChecker
}

type Router struct {
	d Deps
}

func NewRouter(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	r := &Router{d: d}
	mux := chi.NewRouter()

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	mux.Use(middleware.Logging(d.Log))
	mux.Use(middleware.MetricsMiddleware)
	if d.RateCapacity > 0 && d.RateRefill > 0 {
		mux.Use(middleware.RateLimitMiddleware(d.RateCapacity, d.RateRefill))
	}

	if len(d.HealthChecks) > 0 {
		mux.Get("/health", middleware.HealthHandler(d.HealthChecks))
	} else {
		mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		})
	}
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/auth/request-otp", r.wrap(r.handleRequestOTP))
		rt.Post("/auth/verify-otp", r.wrap(r.handleVerifyOTP))
		rt.Post("/auth/register", r.wrap(r.handleRegister))
		rt.Get("/users/{id}", r.wrap(r.handleGetUser))

		rt.Post("/weather/current", r.wrap(r.handleWeather))

		rt.Post("/soil/analyze", r.wrap(r.handleSoilAnalyze))
		rt.Get("/soil/analyses", r.wrap(r.handleSoilHistory))
		rt.Get("/soil/analyses/{id}", r.wrap(r.handleSoilGet))

		rt.Post("/manpower/create", r.wrap(r.handleManpowerCreate))
		rt.Get("/manpower/listings", r.wrap(r.handleManpowerList))

		rt.Post("/equipment/create", r.wrap(r.handleEquipmentCreate))
		rt.Get("/equipment/listings", r.wrap(r.handleEquipmentList))

		rt.Post("/transport/calculate-price", r.wrap(r.handleTransportPrice))
		rt.Post("/transport/book", r.wrap(r.handleTransportBook))

		rt.Post("/inventory/add", r.wrap(r.handleInventoryAdd))
		rt.Get("/inventory/{user_id}", r.wrap(r.handleInventoryByUser))
		rt.Get("/marketplace/items", r.wrap(r.handleMarketplace))

		rt.Get("/schemes", r.wrap(r.handleSchemes))
		rt.Get("/insurance", r.wrap(r.handleInsurance))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows),
				errors.Is(err, domusers.ErrNotFound),
				errors.Is(err, domsoil.ErrNotFound):
				http.Error(w, err.Error(), http.StatusNotFound)
			case errors.Is(err, domusers.ErrInvalidOTP),
				errors.Is(err, domusers.ErrAlreadyExists),
				errors.Is(err, errBadRequest):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, domsoil.ErrQuotaExceeded):
				http.Error(w, "advisory quota exceeded", http.StatusTooManyRequests)
			default:
				r.d.Log.Error("handler error",
					zap.String("path", req.URL.Path), zap.Error(err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

var errBadRequest = errors.New("bad request")

func badRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errBadRequest}, args...)...)
}

func decodeBody(req *http.Request, v any) error {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return badRequestf("invalid JSON body: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

//
// ==== AUTH ====
//

// POST /api/auth/request-otp
func (r *Router) handleRequestOTP(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		PhoneNumber string `json:"phone_number"`
	}
	if err := decodeBody(req, &body); err != nil {
		return err
	}
	if err := middleware.ValidatePhone(body.PhoneNumber); err != nil {
		return badRequestf("%v", err)
	}

	c, err := r.d.Users.RequestOTP(req.Context(), body.PhoneNumber)
	if err != nil {
		return err
	}
	// mock_otp is exposed on purpose while SMS delivery is not integrated
	return writeJSON(w, map[string]any{
		"message":  "OTP sent successfully",
		"mock_otp": c.Code,
	})
}

// POST /api/auth/verify-otp
func (r *Router) handleVerifyOTP(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		PhoneNumber string `json:"phone_number"`
		OTP         string `json:"otp"`
	}
	if err := decodeBody(req, &body); err != nil {
		return err
	}

	res, err := r.d.Users.VerifyOTP(req.Context(), body.PhoneNumber, body.OTP)
	if err != nil {
		return err
	}
	return writeJSON(w, res)
}

// POST /api/auth/register
func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		PhoneNumber string   `json:"phone_number"`
		Name        string   `json:"name"`
		Gender      string   `json:"gender"`
		DateOfBirth string   `json:"date_of_birth"`
		UserTypes   []string `json:"user_types"`
	}
	if err := decodeBody(req, &body); err != nil {
		return err
	}
	if err := middleware.ValidatePhone(body.PhoneNumber); err != nil {
		return badRequestf("%v", err)
	}
	if err := middleware.ValidateUserTypes(body.UserTypes); err != nil {
		return badRequestf("%v", err)
	}

	u, err := r.d.Users.Register(req.Context(), appusers.RegisterCommand{
		PhoneNumber: body.PhoneNumber,
		Name:        middleware.SanitizeString(body.Name),
		Gender:      body.Gender,
		DateOfBirth: body.DateOfBirth,
		UserTypes:   body.UserTypes,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, u)
}

// GET /api/users/{id}
func (r *Router) handleGetUser(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	u, err := r.d.Users.Get(req.Context(), domusers.UserID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, u)
}

//
// ==== WEATHER ====
//

// POST /api/weather/current
func (r *Router) handleWeather(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := decodeBody(req, &body); err != nil {
		return err
	}
	if err := middleware.ValidateCoordinates(body.Latitude, body.Longitude); err != nil {
		return badRequestf("%v", err)
	}
	return writeJSON(w, r.d.Weather.Current(req.Context(), body.Latitude, body.Longitude))
}

//
// ==== SOIL ====
//

// POST /api/soil/analyze
// Always answers 200 with advisory content; internal failures resolve to
// the fallback advisory inside the service.
func (r *Router) handleSoilAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		UserID          string         `json:"user_id"`
		SoilImageBase64 string         `json:"soil_image_base64"`
		SoilDescription string         `json:"soil_description"`
		Location        map[string]any `json:"location"`
	}
	if err := decodeBody(req, &body); err != nil {
		return err
	}
	if body.UserID == "" {
		return badRequestf("user_id is required")
	}
	if err := middleware.ValidateImagePayload(body.SoilImageBase64); err != nil {
		return badRequestf("%v", err)
	}

	res, err := r.d.Soil.Analyze(req.Context(), appsoil.AnalyzeCommand{
		UserID:      body.UserID,
		ImageBase64: body.SoilImageBase64,
		Description: body.SoilDescription,
		Location:    body.Location,
	})
	if err != nil {
		return err
	}

	middleware.IncrementAnalyses()
	if res.Source == domsoil.SourceFallback {
		middleware.IncrementAnalysesFallback()
	}
	return writeJSON(w, res)
}

// GET /api/soil/analyses?user_id=&page=&page_size=
func (r *Router) handleSoilHistory(w http.ResponseWriter, req *http.Request) error {
	userID := req.URL.Query().Get("user_id")
	if userID == "" {
		return badRequestf("user_id is required")
	}
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.d.Soil.History(req.Context(), userID, page, size)
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// GET /api/soil/analyses/{id}
func (r *Router) handleSoilGet(w http.ResponseWriter, req *http.Request) error {
	a, err := r.d.Soil.Get(req.Context(), domsoil.AnalysisID(chi.URLParam(req, "id")))
	if err != nil {
		return err
	}
	return writeJSON(w, a)
}

//
// ==== MARKETPLACE ====
//

// POST /api/manpower/create
func (r *Router) handleManpowerCreate(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		UserID      string         `json:"user_id"`
		Title       string         `json:"title"`
		Description string         `json:"description"`
		Location    map[string]any `json:"location"`
		Payment     float64        `json:"payment"`
		Duration    string         `json:"duration"`
	}
	if err := decodeBody(req, &body); err != nil {
		return err
	}
	if body.UserID == "" || body.Title == "" {
		return badRequestf("user_id and title are required")
	}

	m, err := r.d.Listings.CreateManpower(req.Context(), applistings.CreateManpowerCommand{
		UserID:      body.UserID,
		Title:       middleware.SanitizeString(body.Title),
		Description: middleware.SanitizeString(body.Description),
		Location:    body.Location,
		Payment:     body.Payment,
		Duration:    body.Duration,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, m)
}

// GET /api/manpower/listings
func (r *Router) handleManpowerList(w http.ResponseWriter, req *http.Request) error {
	list, err := r.d.Listings.ActiveManpower(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// POST /api/equipment/create
func (r *Router) handleEquipmentCreate(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		UserID           string         `json:"user_id"`
		EquipmentName    string         `json:"equipment_name"`
		Description      string         `json:"description"`
		DailyRate        float64        `json:"daily_rate"`
		RequiresOperator bool           `json:"requires_operator"`
		Location         map[string]any `json:"location"`
		EquipmentImages  []string       `json:"equipment_images"`
	}
	if err := decodeBody(req, &body); err != nil {
		return err
	}
	if body.UserID == "" || body.EquipmentName == "" {
		return badRequestf("user_id and equipment_name are required")
	}

	urls := r.archiveImages(req.Context(), "equipment", body.UserID, body.EquipmentImages)

	e, err := r.d.Listings.CreateEquipment(req.Context(), applistings.CreateEquipmentCommand{
		UserID:           body.UserID,
		EquipmentName:    middleware.SanitizeString(body.EquipmentName),
		Description:      middleware.SanitizeString(body.Description),
		DailyRate:        body.DailyRate,
		RequiresOperator: body.RequiresOperator,
		Location:         body.Location,
		ImageURLs:        urls,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, e)
}

// GET /api/equipment/listings
func (r *Router) handleEquipmentList(w http.ResponseWriter, req *http.Request) error {
	list, err := r.d.Listings.AvailableEquipment(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

//
// ==== TRANSPORT ====
//

// POST /api/transport/calculate-price
func (r *Router) handleTransportPrice(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Distance float64 `json:"distance"`
	}
	if err := decodeBody(req, &body); err != nil {
		return err
	}
	return writeJSON(w, r.d.Transport.Quote(body.Distance))
}

// POST /api/transport/book
func (r *Router) handleTransportBook(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		FarmerID         string         `json:"farmer_id"`
		TransporterID    string         `json:"transporter_id"`
		PickupLocation   map[string]any `json:"pickup_location"`
		DeliveryLocation map[string]any `json:"delivery_location"`
		Distance         float64        `json:"distance"`
		VehicleType      string         `json:"vehicle_type"`
	}
	if err := decodeBody(req, &body); err != nil {
		return err
	}
	if body.FarmerID == "" {
		return badRequestf("farmer_id is required")
	}

	b, err := r.d.Transport.Book(req.Context(), apptransport.BookCommand{
		FarmerID:         body.FarmerID,
		TransporterID:    body.TransporterID,
		PickupLocation:   body.PickupLocation,
		DeliveryLocation: body.DeliveryLocation,
		DistanceKM:       body.Distance,
		VehicleType:      body.VehicleType,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, b)
}

//
// ==== INVENTORY ====
//

// POST /api/inventory/add
func (r *Router) handleInventoryAdd(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		UserID       string   `json:"user_id"`
		ItemName     string   `json:"item_name"`
		Quantity     float64  `json:"quantity"`
		Unit         string   `json:"unit"`
		Action       string   `json:"action"`
		PricePerUnit float64  `json:"price_per_unit"`
		Images       []string `json:"images"`
	}
	if err := decodeBody(req, &body); err != nil {
		return err
	}
	if body.UserID == "" || body.ItemName == "" {
		return badRequestf("user_id and item_name are required")
	}
	if err := middleware.ValidateAction(body.Action); err != nil {
		return badRequestf("%v", err)
	}

	urls := r.archiveImages(req.Context(), "inventory", body.UserID, body.Images)

	it, err := r.d.Inventory.Add(req.Context(), appinventory.AddItemCommand{
		UserID:       body.UserID,
		ItemName:     middleware.SanitizeString(body.ItemName),
		Quantity:     body.Quantity,
		Unit:         body.Unit,
		Action:       strings.ToLower(body.Action),
		PricePerUnit: body.PricePerUnit,
		ImageURLs:    urls,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, it)
}

// GET /api/inventory/{user_id}
func (r *Router) handleInventoryByUser(w http.ResponseWriter, req *http.Request) error {
	items, err := r.d.Inventory.ByUser(req.Context(), chi.URLParam(req, "user_id"))
	if err != nil {
		return err
	}
	return writeJSON(w, items)
}

// GET /api/marketplace/items
func (r *Router) handleMarketplace(w http.ResponseWriter, req *http.Request) error {
	items, err := r.d.Inventory.Marketplace(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, items)
}

//
// ==== STATIC CATALOGS ====
//

// GET /api/schemes
func (r *Router) handleSchemes(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, schemes.GovernmentSchemes())
}

// GET /api/insurance
func (r *Router) handleInsurance(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, schemes.CropInsurance())
}

// archiveImages uploads base64 image payloads to the image store and
// returns their URLs. Entries that are not base64 (already URLs) pass
// through untouched; upload failures keep the listing usable without
// the image.
func (r *Router) archiveImages(ctx context.Context, kind, userID string, images []string) []string {
	if len(images) == 0 {
		return nil
	}
	out := make([]string, 0, len(images))
	for _, img := range images {
		if strings.HasPrefix(img, "http://") || strings.HasPrefix(img, "https://") {
			out = append(out, img)
			continue
		}
		if r.d.Images == nil {
			out = append(out, img)
			continue
		}
		data, err := base64.StdEncoding.DecodeString(img)
		if err != nil {
			out = append(out, img)
			continue
		}
		key := fmt.Sprintf("%s/%s/%s.jpg", kind, userID, uuid.New().String())
		url, err := r.d.Images.PutBytes(ctx, data, key, "image/jpeg")
		if err != nil {
			r.d.Log.Warn("failed to archive listing image", zap.String("key", key), zap.Error(err))
			continue
		}
		out = append(out, url)
	}
	return out
}
