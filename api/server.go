package api

import (
	"context"
	"crypto/rsa"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/citypulse/citypoints-api/external/geoinfo"
	"github.com/citypulse/citypoints-api/external/ipgeo"
	"github.com/citypulse/citypoints-api/logmodule"
	"github.com/citypulse/citypoints-api/photostore"
	"github.com/citypulse/citypoints-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store  store.CityPoints
	photos photostore.PhotoStore

	// JWT private key
	jwtPrivateKey *rsa.PrivateKey

	// External services
	ipGeoClient   ipgeo.IPGeo
	geoInfoClient geoinfo.GeoInfo
}

// NewServer new instance of server
func NewServer(
	cityStore store.CityPoints,
	photos photostore.PhotoStore,
	ipGeoClient ipgeo.IPGeo,
	geoInfoClient geoinfo.GeoInfo,
	jwtKey *rsa.PrivateKey) *Server {
	return &Server{
		store:         cityStore,
		photos:        photos,
		ipGeoClient:   ipGeoClient,
		geoInfoClient: geoInfoClient,
		jwtPrivateKey: jwtKey,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Idempotency-Key", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(s.authMiddleware())

	submissionRoute := apiRoute.Group("/submissions")
	{
		submissionRoute.POST("", s.createSubmission)
		submissionRoute.GET("", s.listSubmissions)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if err != nil {
		log.Error(err)
		abortWithEncoding(c, http.StatusServiceUnavailable, errorTemporarilyUnavailable)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	c.JSON(code, obj)
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
