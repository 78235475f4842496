package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sm8ta/carsharing_microservice/internal/core/domain"
	"github.com/sm8ta/carsharing_microservice/internal/core/ports"
)

type CarHandler struct {
	carService ports.CarService
	logger     ports.LoggerPort
	metrics    ports.MetricsPort
}

// CarRequest is the body of create and update. Omitted or null fields
// take their defaults.
type CarRequest struct {
	Size         *string `json:"size" example:"s"`
	Fuel         *string `json:"fuel" example:"gasoline"`
	Doors        *int    `json:"doors" example:"3"`
	Transmission *string `json:"transmission" example:"auto"`
}

type TripRequest struct {
	Start       *int    `json:"start" binding:"required" example:"10"`
	End         *int    `json:"end" binding:"required" example:"20"`
	Description *string `json:"description" example:"trip A"`
}

type CarQuery struct {
	Size         string `form:"size"`
	Fuel         string `form:"fuel"`
	Doors        string `form:"doors"`
	Transmission string `form:"transmission"`
}

type TripResponse struct {
	ID          int     `json:"id" example:"1"`
	Start       int     `json:"start" example:"10"`
	End         int     `json:"end" example:"20"`
	Description *string `json:"description" example:"trip A"`
}

type CarResponse struct {
	ID           int            `json:"id" example:"1"`
	Size         string         `json:"size" example:"s"`
	Fuel         string         `json:"fuel" example:"gasoline"`
	Doors        int            `json:"doors" example:"3"`
	Transmission string         `json:"transmission" example:"auto"`
	Trips        []TripResponse `json:"trips"`
}

func NewCarHandler(
	carService ports.CarService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *CarHandler {
	return &CarHandler{
		carService: carService,
		logger:     logger,
		metrics:    metrics,
	}
}

func (r CarRequest) toInput() domain.CarInput {
	in := domain.DefaultCarInput()
	if r.Size != nil {
		in.Size = *r.Size
	}
	if r.Fuel != nil {
		in.Fuel = *r.Fuel
	}
	if r.Doors != nil {
		in.Doors = *r.Doors
	}
	if r.Transmission != nil {
		in.Transmission = *r.Transmission
	}
	return in
}

func (r TripRequest) toInput() domain.TripInput {
	return domain.TripInput{
		Start:       *r.Start,
		End:         *r.End,
		Description: r.Description,
	}
}

func (q CarQuery) toFilter() (domain.CarFilter, error) {
	filter := domain.CarFilter{
		Size:         q.Size,
		Fuel:         q.Fuel,
		Transmission: q.Transmission,
	}
	if q.Doors != "" {
		doors, err := strconv.Atoi(q.Doors)
		if err != nil {
			return filter, domain.NewValidationError("doors", "must be an integer")
		}
		filter.Doors = &doors
	}
	return filter, nil
}

func parseCarID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

func newTripResponse(t domain.Trip) TripResponse {
	return TripResponse{
		ID:          t.ID,
		Start:       t.Start,
		End:         t.End,
		Description: t.Description,
	}
}

func newCarResponse(car *domain.Car) CarResponse {
	trips := make([]TripResponse, len(car.Trips))
	for i, t := range car.Trips {
		trips[i] = newTripResponse(t)
	}
	return CarResponse{
		ID:           car.ID,
		Size:         car.Size,
		Fuel:         car.Fuel,
		Doors:        car.Doors,
		Transmission: car.Transmission,
		Trips:        trips,
	}
}

// @Summary List cars
// @Description List cars, optionally narrowed by exact-match filters
// @Tags cars
// @Produce json
// @Param size query string false "Size" example:"s"
// @Param fuel query string false "Fuel" example:"electric"
// @Param doors query int false "Number of doors" example:"5"
// @Param transmission query string false "Transmission" example:"auto"
// @Success 200 {array} CarResponse "Matching cars"
// @Failure 422 {object} errorResponse "Invalid filter"
// @Router /api/cars [get]
func (h *CarHandler) ListCars(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var query CarQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		newValidationErrorResponse(c, err)
		return
	}
	filter, err := query.toFilter()
	if err != nil {
		h.logger.Warn("Invalid car filter", map[string]interface{}{
			"error": err.Error(),
		})
		newValidationErrorResponse(c, err)
		return
	}

	cars, err := h.carService.ListCars(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err, "Failed to list cars")
		return
	}

	response := make([]CarResponse, len(cars))
	for i, car := range cars {
		response[i] = newCarResponse(car)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get car
// @Description Get a car with its trips by ID
// @Tags cars
// @Produce json
// @Param id path int true "Car ID" example:"1"
// @Success 200 {object} CarResponse "Car found"
// @Failure 404 {object} errorResponse "Car not found"
// @Failure 422 {object} errorResponse "Invalid ID"
// @Router /api/cars/{id} [get]
func (h *CarHandler) GetCar(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	carID, err := parseCarID(c)
	if err != nil {
		newValidationErrorResponse(c, err)
		return
	}

	car, err := h.carService.GetCar(c.Request.Context(), carID)
	if err != nil {
		writeServiceError(c, err, "Failed to get car")
		return
	}

	c.JSON(http.StatusOK, newCarResponse(car))
}

// @Summary Create car
// @Description Create a car; omitted fields default to size=m, fuel=electric, doors=5, transmission=auto
// @Tags cars
// @Accept json
// @Produce json
// @Param request body CarRequest true "Car data"
// @Success 201 {object} CarResponse "Car created"
// @Failure 422 {object} errorResponse "Invalid body"
// @Router /api/cars [post]
func (h *CarHandler) CreateCar(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed JSON parse in create car", map[string]interface{}{
			"error": err.Error(),
		})
		newValidationErrorResponse(c, err)
		return
	}

	car, err := h.carService.CreateCar(c.Request.Context(), req.toInput())
	if err != nil {
		writeServiceError(c, err, "Failed to create car")
		return
	}

	c.JSON(http.StatusCreated, newCarResponse(car))
}

// @Summary Update car
// @Description Replace the size, fuel, doors and transmission of a car; trips are kept
// @Tags cars
// @Accept json
// @Produce json
// @Param id path int true "Car ID" example:"1"
// @Param request body CarRequest true "Car data"
// @Success 200 {object} CarResponse "Car updated"
// @Failure 404 {object} errorResponse "Car not found"
// @Failure 422 {object} errorResponse "Invalid body"
// @Router /api/cars/{id} [put]
func (h *CarHandler) UpdateCar(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	carID, err := parseCarID(c)
	if err != nil {
		newValidationErrorResponse(c, err)
		return
	}

	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed JSON parse in update car", map[string]interface{}{
			"error":  err.Error(),
			"car_id": carID,
		})
		newValidationErrorResponse(c, err)
		return
	}

	car, err := h.carService.UpdateCar(c.Request.Context(), carID, req.toInput())
	if err != nil {
		writeServiceError(c, err, "Update failed")
		return
	}

	c.JSON(http.StatusOK, newCarResponse(car))
}

// @Summary Delete car
// @Description Delete a car and its trips
// @Tags cars
// @Param id path int true "Car ID" example:"1"
// @Success 204 "Car deleted"
// @Failure 404 {object} errorResponse "Car not found"
// @Failure 422 {object} errorResponse "Invalid ID"
// @Router /api/cars/{id} [delete]
func (h *CarHandler) DeleteCar(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	carID, err := parseCarID(c)
	if err != nil {
		newValidationErrorResponse(c, err)
		return
	}

	if err := h.carService.DeleteCar(c.Request.Context(), carID); err != nil {
		writeServiceError(c, err, "Delete failed")
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Add trip
// @Description Add a trip to a car; start must not be after end
// @Tags trips
// @Accept json
// @Produce json
// @Param id path int true "Car ID" example:"1"
// @Param request body TripRequest true "Trip data"
// @Success 201 {object} TripResponse "Trip created"
// @Failure 404 {object} errorResponse "Car not found"
// @Failure 422 {object} errorResponse "Invalid trip"
// @Router /api/cars/{id}/trips [post]
func (h *CarHandler) AddTrip(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	carID, err := parseCarID(c)
	if err != nil {
		newValidationErrorResponse(c, err)
		return
	}

	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed JSON parse in add trip", map[string]interface{}{
			"error":  err.Error(),
			"car_id": carID,
		})
		newValidationErrorResponse(c, err)
		return
	}

	trip, err := h.carService.AddTrip(c.Request.Context(), carID, req.toInput())
	if err != nil {
		writeServiceError(c, err, "Failed to add trip")
		return
	}

	c.JSON(http.StatusCreated, newTripResponse(*trip))
}
