package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"delivery_api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAddressService records whether a write reached the service layer.
type stubAddressService struct {
	created bool
}

func (s *stubAddressService) Create(_ context.Context, userID int64, req model.CreateAddressRequest) (*model.Address, error) {
	s.created = true
	return &model.Address{
		ID:          1,
		UserID:      userID,
		AddressText: req.AddressText,
		Lat:         *req.Lat,
		Lng:         *req.Lng,
		IsDefault:   req.IsDefault,
	}, nil
}

func (s *stubAddressService) List(context.Context, int64) ([]model.Address, error) { return nil, nil }
func (s *stubAddressService) Get(context.Context, int64) (*model.Address, error)  { return nil, nil }
func (s *stubAddressService) SetDefault(context.Context, int64) (*model.Address, error) {
	return nil, nil
}
func (s *stubAddressService) Update(context.Context, int64, model.UpdateAddressRequest) (*model.Address, error) {
	return nil, nil
}
func (s *stubAddressService) Delete(context.Context, int64) error { return nil }

func newAddressRouter(svc *stubAddressService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAddressHandler(svc).RegisterAddressRoutes(router.Group("/api/v1"))
	return router
}

func TestCreateForUser_MissingCoordinatesFailBinding(t *testing.T) {
	svc := new(stubAddressService)
	router := newAddressRouter(svc)

	body := `{"address_text": "123 Main St"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/7/addresses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FIELD")
	assert.False(t, svc.created, "nothing should reach the service on a bind failure")
}

func TestCreateForUser_ExplicitZeroCoordinatesAccepted(t *testing.T) {
	svc := new(stubAddressService)
	router := newAddressRouter(svc)

	body := `{"address_text": "Null Island Pier", "lat": 0, "lng": 0}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/7/addresses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, svc.created)
}

func TestAddressRoutes_MalformedIDParam(t *testing.T) {
	svc := new(stubAddressService)
	router := newAddressRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/addresses/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_ID")
	assert.NotContains(t, w.Body.String(), "MISSING_FIELD")
}
