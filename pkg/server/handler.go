package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/melatron/hft-service/pkg/apperror"
	"github.com/melatron/hft-service/pkg/symbolstore"
)

// Handler holds the dependencies for the public add_batch/stats routes.
type Handler struct {
	store        *symbolstore.Store
	maxBatchSize int
}

// NewHandler builds a Handler. maxBatchSize is enforced here, not inside
// the store, per the service shim's responsibilities.
func NewHandler(store *symbolstore.Store, maxBatchSize int) *Handler {
	return &Handler{store: store, maxBatchSize: maxBatchSize}
}

type addBatchRequest struct {
	Symbol string    `json:"symbol"`
	Values []float64 `json:"values"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// AddBatch handles POST /add_batch/.
func (h *Handler) AddBatch(c echo.Context) error {
	var req addBatchRequest
	if err := c.Bind(&req); err != nil {
		return apperror.BadRequest("malformed request body: %s", err)
	}

	if len(req.Values) > h.maxBatchSize {
		return apperror.BadRequest("batch size exceeded (max %d)", h.maxBatchSize)
	}

	for _, v := range req.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return apperror.BadRequest("values must be finite numbers")
		}
	}

	if err := h.store.AddBatch(req.Symbol, req.Values); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{Status: "success"})
}

type statsResponse struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Last float64 `json:"last"`
	Avg  float64 `json:"avg"`
	Var  float64 `json:"var"`
}

// Stats handles GET /stats/.
func (h *Handler) Stats(c echo.Context) error {
	symbol := c.QueryParam("symbol")

	exponent, err := parseExponent(c.QueryParam("exponent"))
	if err != nil {
		return err
	}

	windowSize := 1
	for i := 0; i < exponent; i++ {
		windowSize *= 10
	}

	stats, err := h.store.GetStats(symbol, windowSize)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statsResponse{
		Min:  stats.Min,
		Max:  stats.Max,
		Last: stats.Last,
		Avg:  stats.Avg,
		Var:  stats.Var,
	})
}

func parseExponent(raw string) (int, error) {
	if raw == "" {
		return 0, apperror.BadRequest("exponent is required")
	}

	exponent, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.BadRequest("exponent must be an integer")
	}

	if exponent < 1 || exponent > 8 {
		return 0, apperror.BadRequest("exponent must be in [1, 8]")
	}

	return exponent, nil
}
