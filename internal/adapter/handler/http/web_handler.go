package http

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sm8ta/carsharing_microservice/internal/core/domain"
	"github.com/sm8ta/carsharing_microservice/internal/core/ports"
)

//go:embed templates/*.html
var templatesFS embed.FS

// WebHandler serves the HTML search pages and the date endpoint.
type WebHandler struct {
	carService ports.CarService
	logger     ports.LoggerPort
	metrics    ports.MetricsPort
	now        func() time.Time
}

type SearchForm struct {
	Size  string `form:"size" binding:"required"`
	Doors *int   `form:"doors" binding:"required"`
}

type DateResponse struct {
	Date string `json:"date" example:"18/10/2026"`
}

func NewWebHandler(
	carService ports.CarService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *WebHandler {
	return &WebHandler{
		carService: carService,
		logger:     logger,
		metrics:    metrics,
		now:        time.Now,
	}
}

func loadTemplates() (*template.Template, error) {
	return template.New("").ParseFS(templatesFS, "templates/*.html")
}

func (h *WebHandler) Home(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	c.HTML(http.StatusOK, "home.html", gin.H{})
}

func (h *WebHandler) Search(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var form SearchForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("Invalid search form", map[string]interface{}{
			"error": err.Error(),
		})
		c.HTML(http.StatusUnprocessableEntity, "home.html", gin.H{
			"Error": "Size and an integer number of doors are required.",
		})
		return
	}

	cars, err := h.carService.ListCars(c.Request.Context(), domain.CarFilter{
		Size:  form.Size,
		Doors: form.Doors,
	})
	if err != nil {
		h.logger.Error("Search failed", map[string]interface{}{
			"error": err.Error(),
		})
		c.HTML(http.StatusInternalServerError, "home.html", gin.H{
			"Error": "Search failed, try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "search_results.html", gin.H{
		"Size":  form.Size,
		"Doors": *form.Doors,
		"Cars":  cars,
	})
}

// @Summary Current date
// @Description Today's date on the server, formatted dd/mm/yyyy
// @Tags misc
// @Produce json
// @Success 200 {object} DateResponse
// @Router /api/date [get]
func (h *WebHandler) Date(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	c.JSON(http.StatusOK, DateResponse{Date: h.now().Format("02/01/2006")})
}
