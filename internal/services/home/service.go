package home

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coreselect/internal/shared/server/respond"
)

// Greeting is the body of GET /.
type Greeting struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// Service serves the landing and health endpoints.
type Service struct{}

// NewService constructs a new home service.
func NewService() *Service {
	return &Service{}
}

// Greeting returns the landing payload.
func (s *Service) Greeting() Greeting {
	return Greeting{Location: "home", Message: "Welcome to PC Part Recommender!"}
}

// Status returns a simple health payload.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true}
}

// RegisterRoutes attaches GET / and GET /health.
func (s *Service) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/", func(c *gin.Context) {
		respond.OK(c, s.Greeting())
	})
	rg.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, s.Status())
	})
}
