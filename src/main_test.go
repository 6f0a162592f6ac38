package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"lrs/src/controllers"
	"lrs/src/db"
	"lrs/src/middlewares"
	"lrs/src/models"
	"lrs/src/types"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	Token *string
}

func NewMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	mockdb, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockdb}), &gorm.Config{
		ConnPool: mockdb,
	})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

func (s *TestSuite) SetupSuite() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookabledate", bookableDateValidatorFunc)
		v.RegisterValidation("gtdate", gtfield)
	}

	d, mock := NewMockDB()
	db.NewDB(d)
	s.DB = d
	s.Mock = mock

	user := models.User{
		ID:    1,
		Name:  "Test User",
		Email: "someone@example.com",
		Role:  types.ROLE_USER,
	}
	token, err := controllers.CreateToken(&user)
	if err != nil {
		log.Fatalf("Error generating token: %s\n", err.Error())
	}
	s.Token = &token
}

func (s *TestSuite) TearDownSuite() {
	inner, err := s.DB.DB()
	if err != nil {
		log.Printf("Error accessing inner db instance: %s\n", err.Error())
		return
	}
	inner.Close()
}

func (s *TestSuite) expectAuthUser(role types.UserRole) {
	rows := sqlmock.
		NewRows([]string{"id", "name", "email", "role"}).
		AddRow(1, "Test User", "someone@example.com", string(role))
	s.Mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(rows)
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Setenv("MAINTENANCE_MODE", "false")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestAuthRoutes() {
	router := setupRouter()
	guestAuthRoutes(router)

	s.Run("Should return 404 for an unknown email", func() {
		s.Mock.
			ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role"}))

		w := httptest.NewRecorder()
		jbody := map[string]any{
			"email": "nobody@example.com",
		}
		sbody, _ := json.Marshal(&jbody)
		loginReq, _ := http.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, loginReq)

		assert.Equal(s.T(), 404, w.Code)
	})

	s.Run("Should reject register without a name", func() {
		w := httptest.NewRecorder()
		jbody := map[string]any{
			"email": "someone@example.com",
		}
		sbody, _ := json.Marshal(&jbody)
		registerReq, _ := http.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, registerReq)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestBookings() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	apiv1.Use(middlewares.AuthMiddleware)
	bookingHandlers(apiv1)

	token := *s.Token
	s.Run("Should return list of own Bookings with 200 status", func() {
		s.expectAuthUser(types.ROLE_USER)
		s.Mock.
			ExpectQuery(`SELECT \* FROM "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "user_id", "status"}))

		w := httptest.NewRecorder()
		listReq, _ := http.NewRequest("GET", "/api/v1/bookings", nil)
		listReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, listReq)

		assert.Equal(s.T(), 200, w.Code)
		resbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		count := gjson.Get(string(resbytes), "count").Int()
		assert.Equal(s.T(), int64(0), count)
	})

	s.Run("Should filter own listing by status", func() {
		s.expectAuthUser(types.ROLE_USER)
		s.Mock.
			ExpectQuery(`SELECT \* FROM "bookings" WHERE .*"user_id" = \$1 AND .*"status" = \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "user_id", "status"}))

		w := httptest.NewRecorder()
		listReq, _ := http.NewRequest("GET", "/api/v1/bookings?status=pending", nil)
		listReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, listReq)

		assert.Equal(s.T(), 200, w.Code)
	})

	s.Run("Should return a 400 error response for an incomplete body", func() {
		s.expectAuthUser(types.ROLE_USER)

		w := httptest.NewRecorder()
		reqBody := map[string]any{
			"room_id": 1,
		}
		rbytes, _ := json.Marshal(&reqBody)
		bookingReq, _ := http.NewRequest("POST", "/api/v1/bookings", strings.NewReader(string(rbytes)))
		bookingReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, bookingReq)

		assert.Equal(s.T(), 400, w.Code)

		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		errMsg := gjson.Get(string(rbytes), "error").String()
		assert.NotEmpty(s.T(), errMsg)
	})

	s.Run("Should reject a range that ends before it starts", func() {
		s.expectAuthUser(types.ROLE_USER)

		start := time.Now().Add(48 * time.Hour)
		end := start.Add(-2 * time.Hour)
		w := httptest.NewRecorder()
		reqBody := types.CreateBookingRequestBody{
			RoomID:    1,
			StartTime: start.Format("2006-01-02 15:04:05 -07:00"),
			EndTime:   end.Format("2006-01-02 15:04:05 -07:00"),
		}
		rbytes, _ := json.Marshal(&reqBody)
		bookingReq, _ := http.NewRequest("POST", "/api/v1/bookings", strings.NewReader(string(rbytes)))
		bookingReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, bookingReq)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject requests without a token", func() {
		w := httptest.NewRecorder()
		listReq, _ := http.NewRequest("GET", "/api/v1/bookings", nil)
		router.ServeHTTP(w, listReq)

		assert.Equal(s.T(), 401, w.Code)
	})
}

func (s *TestSuite) TestAdminCancelPendingBooking() {
	router := setupRouter()
	admin := router.Group("/api/v1/admin")
	admin.Use(middlewares.AuthMiddleware, middlewares.AdminOnly)
	adminBookingHandlers(admin)

	token := *s.Token
	s.expectAuthUser(types.ROLE_ADMIN)
	s.Mock.ExpectBegin()
	rows := sqlmock.
		NewRows([]string{"id", "room_id", "user_id", "status"}).
		AddRow(5, 1, 2, "pending")
	s.Mock.
		ExpectQuery(`SELECT \* FROM "bookings" WHERE .*"id" = \$1.*FOR UPDATE`).
		WillReturnRows(rows)
	s.Mock.ExpectRollback()

	w := httptest.NewRecorder()
	body := `{"status":"cancelled"}`
	req, _ := http.NewRequest("PUT", "/api/v1/admin/bookings/5/status", strings.NewReader(body))
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 403, w.Code)
}

func (s *TestSuite) TestAdminGuard() {
	router := setupRouter()
	admin := router.Group("/api/v1/admin")
	admin.Use(middlewares.AuthMiddleware, middlewares.AdminOnly)
	dashboardHandlers(admin)

	token := *s.Token
	s.expectAuthUser(types.ROLE_USER)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/admin/dashboard/stats", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 403, w.Code)
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
