package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cryptopulse/internal/domain/dto"
	"github.com/guttosm/cryptopulse/internal/logger"
	"github.com/guttosm/cryptopulse/internal/service"
)

// dateLayout is the canonical form of the `date` query parameter.
const dateLayout = "2006-01-02"

// Handler provides HTTP handlers for the crypto statistics endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP parameters
//   - Invoke the service layer
//   - Translate domain errors into error codes and HTTP status codes
//   - Return structured JSON responses
type Handler struct {
	stats service.CryptoStatsService
	rng   service.NormalizedRangeService
}

// NewHandler constructs a new Handler instance.
func NewHandler(stats service.CryptoStatsService, rng service.NormalizedRangeService) *Handler {
	return &Handler{stats: stats, rng: rng}
}

// ListByNormalizedRange handles GET /cryptos/list-by-normalized-range requests.
//
// ListByNormalizedRange godoc
// @Summary      List cryptos sorted by normalized range
// @Description  Returns a descending sorted list of all cryptos by normalized range (max-min)/min
// @Tags         cryptos
// @Produce      json
// @Success      200  {object}  dto.NormalizedCryptosResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse              "Internal Error"
// @Router       /cryptos/list-by-normalized-range [get]
func (h *Handler) ListByNormalizedRange(c *gin.Context) {
	ranking, err := h.rng.ListByNormalizedRange(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NormalizedCryptosResponse{NormalizedCryptos: ranking})
}

// GetStats handles GET /cryptos/{symbol}/stats requests.
//
// GetStats godoc
// @Summary      Get statistics for a crypto
// @Description  Returns the oldest, newest, minimum and maximum price points of a crypto
// @Tags         cryptos
// @Produce      json
// @Param        symbol  path      string  true  "Crypto symbol (case-insensitive)"  example(BTC)
// @Success      200     {object}  dto.CryptoStatsResponse  "Success"
// @Failure      404     {object}  dto.ErrorResponse        "Not Found"
// @Failure      500     {object}  dto.ErrorResponse        "Internal Error"
// @Router       /cryptos/{symbol}/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	symbol := c.Param("symbol")

	stats, err := h.stats.GetStats(c.Request.Context(), symbol)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CryptoStatsResponse{Stats: *stats})
}

// GetHighestNormalizedRange handles GET /cryptos/highest-normalized-range requests.
//
// GetHighestNormalizedRange godoc
// @Summary      Get highest normalized range
// @Description  Returns the crypto with the highest normalized range for the requested day
// @Tags         cryptos
// @Produce      json
// @Param        date  query     string  true  "Requested day in YYYY-MM-DD"  example(2022-01-01)
// @Success      200   {object}  dto.HighestNormalizedRangeResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse                   "Bad Request"
// @Failure      404   {object}  dto.ErrorResponse                   "Not Found"
// @Failure      500   {object}  dto.ErrorResponse                   "Internal Error"
// @Router       /cryptos/highest-normalized-range [get]
func (h *Handler) GetHighestNormalizedRange(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("date"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeMissingParameter, "Required parameter 'date' is missing."))
		return
	}

	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeInvalidParameter, "An invalid value was provided for 'date' parameter."))
		return
	}

	highest, err := h.rng.GetHighestNormalizedRange(c.Request.Context(), date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.HighestNormalizedRangeResponse{HighestNormalizedRangeCrypto: *highest})
}

// respondError maps service errors to HTTP responses. NotFound becomes a
// 404 that echoes the service message; anything else is logged in full and
// answered with a generic 500 so storage details never reach clients.
func (h *Handler) respondError(c *gin.Context, err error) {
	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.ErrorCodeCryptoDataNotFound, notFound.Error()))
		return
	}

	logger.L().Error().Err(err).Msg("request failed")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.ErrorCodeInternalError, "An unexpected error occurred"))
}
