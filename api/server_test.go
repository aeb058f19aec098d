package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/citypulse/citypoints-api/api/mocks"
	"github.com/citypulse/citypoints-api/schema"
)

func testRouter(s *Server, requester string, isAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("requester", requester)
		c.Set("isAdmin", isAdmin)
	})
	router.GET("/submissions", s.listSubmissions)
	router.GET("/healthz", s.healthz)
	return router
}

func fuelEvents() []schema.PointEvent {
	t0 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	name := "Total Bonamoussadi"
	available := true
	return []schema.PointEvent{
		{
			ID:        "ev-1",
			PointID:   "pt-1",
			EventType: schema.EventTypeCreate,
			UserID:    "user-a",
			Category:  schema.CategoryFuelStation,
			Location:  schema.Location{Latitude: 4.0866, Longitude: 9.7403},
			Details: schema.PointDetails{
				FuelStation: &schema.FuelStationDetails{Name: &name, HasFuelAvailable: &available},
			},
			CreatedAt: t0,
		},
		{
			ID:        "ev-2",
			PointID:   "pt-1",
			EventType: schema.EventTypeEnrich,
			UserID:    "user-b",
			Category:  schema.CategoryFuelStation,
			Location:  schema.Location{Latitude: 4.0866, Longitude: 9.7403},
			Details: schema.PointDetails{
				FuelStation: &schema.FuelStationDetails{PricesByFuel: map[string]float64{"Super": 845}},
			},
			CreatedAt: t0.Add(time.Hour),
		},
	}
}

func TestListProjectedPoints(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockCityPoints(ctl)
	m.EXPECT().GetPointEvents().Return(fuelEvents(), nil).Times(1)
	m.EXPECT().GetLegacySubmissions().Return(nil, nil).Times(1)

	s := &Server{store: m}
	router := testRouter(s, "user-a", false)

	req := httptest.NewRequest("GET", "/submissions?view=points&scope=bonamoussadi", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Points []schema.ProjectedPoint `json:"points"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Len(t, resp.Points, 1)
	assert.Equal(t, 2, resp.Points[0].EventsCount)
	assert.Equal(t, "Total Bonamoussadi", *resp.Points[0].Details.FuelStation.Name)
}

func TestListProjectedPointsContinuesWithoutLegacy(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockCityPoints(ctl)
	m.EXPECT().GetPointEvents().Return(fuelEvents(), nil).Times(1)
	m.EXPECT().GetLegacySubmissions().Return(nil, errors.New("mongo down")).Times(1)

	s := &Server{store: m}
	router := testRouter(s, "user-a", false)

	req := httptest.NewRequest("GET", "/submissions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
}

func TestListEventsScopedToRequester(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockCityPoints(ctl)
	m.EXPECT().GetUserPointEvents("user-a").Return(fuelEvents()[:1], nil).Times(1)

	s := &Server{store: m}
	router := testRouter(s, "user-a", false)

	req := httptest.NewRequest("GET", "/submissions?view=events", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Events []schema.PointEvent `json:"events"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Len(t, resp.Events, 1)
	assert.Equal(t, "user-a", resp.Events[0].UserID)
}

func TestListEventsAdminSeesAll(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockCityPoints(ctl)
	m.EXPECT().GetPointEvents().Return(fuelEvents(), nil).Times(1)

	s := &Server{store: m}
	router := testRouter(s, "admin-user", true)

	req := httptest.NewRequest("GET", "/submissions?view=events", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
}

func TestListAdminEventsForbiddenForNonAdmin(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockCityPoints(ctl)

	s := &Server{store: m}
	router := testRouter(s, "user-a", false)

	req := httptest.NewRequest("GET", "/submissions?view=admin_events", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code, "wrong status code")

	var resp ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Equal(t, int64(1002), resp.Code)
}

func TestListSubmissionsRejectsUnknownView(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := &Server{store: mocks.NewMockCityPoints(ctl)}
	router := testRouter(s, "user-a", false)

	req := httptest.NewRequest("GET", "/submissions?view=everything", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")
}

func TestHealthzReportsStoreOutage(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockCityPoints(ctl)
	m.EXPECT().Ping().Return(errors.New("connection reset")).Times(1)

	s := &Server{store: m}
	router := testRouter(s, "user-a", false)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "wrong status code")
}
