package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"dispatch-console/internal/console"
	"dispatch-console/internal/http/middleware"
	"dispatch-console/internal/session"
	"dispatch-console/internal/upstream"
)

type Handler struct {
	monitor *console.Monitor
	client  *upstream.Client
	log     zerolog.Logger
}

func NewHandler(monitor *console.Monitor, client *upstream.Client, log zerolog.Logger) *Handler {
	return &Handler{
		monitor: monitor,
		client:  client,
		log:     log,
	}
}

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	_, resp, err := h.client.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(resp))
}

func (h *Handler) activeOrders(c *gin.Context) {
	crit, err := parseCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	h.monitor.SetFilters(crit.Phone, crit.Bucket, crit.From, crit.To)
	c.JSON(http.StatusOK, successResponse(h.monitor.ActiveView()))
}

func (h *Handler) archiveOrders(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("session missing"))
		return
	}

	crit, err := parseCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	view, err := h.monitor.Archive(c.Request.Context(), s, crit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(view))
}

func (h *Handler) cancelOrder(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("session missing"))
		return
	}

	orderID, err := parseOrderID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	var req struct {
		Confirmed bool `json:"confirmed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	cancelled, err := h.monitor.Cancel(c.Request.Context(), s, orderID, req.Confirmed)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !cancelled {
		c.JSON(http.StatusOK, successResponse(gin.H{"status": "declined"}))
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "cancelled"}))
}

func (h *Handler) assignDriver(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("session missing"))
		return
	}

	orderID, err := parseOrderID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	updated, err := h.monitor.Assign(c.Request.Context(), s, orderID, c.Query("driverId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(updated))
}

func (h *Handler) selectOrder(c *gin.Context) {
	orderID, err := parseOrderID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	state, err := h.monitor.ToggleSelect(orderID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"selectedId": state.SelectedID}))
}

func (h *Handler) clearSelection(c *gin.Context) {
	state := h.monitor.ClearSelection()
	c.JSON(http.StatusOK, successResponse(gin.H{"selectedId": state.SelectedID}))
}

func (h *Handler) mapView(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(h.monitor.MapSnapshot()))
}

func (h *Handler) onlineDrivers(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(gin.H{"items": h.monitor.Drivers()}))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var apiErr *upstream.APIError
	switch {
	case errors.Is(err, console.ErrInvalidInput), errors.Is(err, console.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, console.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, console.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, upstream.ErrUnauthorized), errors.Is(err, session.ErrInvalidated):
		c.JSON(http.StatusUnauthorized, errorResponse("session expired"))
	case errors.As(err, &apiErr):
		// Business error from the dispatch backend, e.g. driver busy.
		// The message is what the operator needs to see.
		c.JSON(apiErr.Status, errorResponse(apiErr.Message))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusBadGateway, errorResponse("dispatch api unavailable"))
	}
}

func parseOrderID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
}

func parseCriteria(c *gin.Context) (console.Criteria, error) {
	crit := console.Criteria{
		Phone:  strings.TrimSpace(c.Query("phone")),
		Bucket: console.BucketAll,
	}

	if bucket := strings.TrimSpace(c.Query("bucket")); bucket != "" {
		switch b := console.StatusBucket(strings.ToUpper(bucket)); b {
		case console.BucketAll, console.BucketRequested, console.BucketActive:
			crit.Bucket = b
		default:
			return crit, errors.New("invalid bucket")
		}
	}

	if from := strings.TrimSpace(c.Query("from")); from != "" {
		ts, err := time.Parse("2006-01-02", from)
		if err != nil {
			return crit, err
		}
		crit.From = &ts
	}
	if to := strings.TrimSpace(c.Query("to")); to != "" {
		ts, err := time.Parse("2006-01-02", to)
		if err != nil {
			return crit, err
		}
		crit.To = &ts
	}

	return crit, nil
}

func successResponse(data any) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
