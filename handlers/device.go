package handlers

import (
	"errors"
	"net/http"

	"equiptrack/models"
	"equiptrack/services/device"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DeviceHandler exposes device CRUD and statistics endpoints.
type DeviceHandler struct {
	Service device.DeviceService
}

// NewDeviceHandler creates a DeviceHandler backed by the given service.
func NewDeviceHandler(svc device.DeviceService) *DeviceHandler {
	return &DeviceHandler{Service: svc}
}

type createDeviceRequest struct {
	Name       string `json:"name" binding:"required"`
	ExpiryDate string `json:"expiryDate" binding:"required"`
	Building   string `json:"building" binding:"required"`
	Room       string `json:"room" binding:"required"`
}

type updateDeviceRequest struct {
	Name       *string `json:"name"`
	ExpiryDate *string `json:"expiryDate"`
	Building   *string `json:"building"`
	Room       *string `json:"room"`
}

// CreateDeviceHandler registers a new device.
func (h *DeviceHandler) CreateDeviceHandler(c *gin.Context) {
	logger := getLogger(c)

	var req createDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.Service.CreateDevice(device.CreateDeviceInput{
		Name:       req.Name,
		ExpiryDate: req.ExpiryDate,
		Building:   req.Building,
		Room:       req.Room,
	})
	if err != nil {
		if errors.Is(err, device.ErrMissingField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		logger.Error("Device creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Device creation failed"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListDevicesHandler returns devices newest-first, optionally filtered by
// status and a case-insensitive name/location search.
func (h *DeviceHandler) ListDevicesHandler(c *gin.Context) {
	logger := getLogger(c)

	filter := models.DeviceFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	devices, err := h.Service.ListDevices(filter)
	if err != nil {
		logger.Error("Device listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Device listing failed"})
		return
	}
	c.JSON(http.StatusOK, devices)
}

// GetDeviceHandler returns a single device by ID.
func (h *DeviceHandler) GetDeviceHandler(c *gin.Context) {
	logger := getLogger(c)

	dev, err := h.Service.GetDeviceByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, device.ErrDeviceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
			return
		}
		logger.Error("Device fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Device fetch failed"})
		return
	}
	c.JSON(http.StatusOK, dev)
}

// UpdateDeviceHandler applies a partial update.
func (h *DeviceHandler) UpdateDeviceHandler(c *gin.Context) {
	logger := getLogger(c)

	var req updateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Service.UpdateDevice(c.Param("id"), device.UpdateDeviceInput{
		Name:       req.Name,
		ExpiryDate: req.ExpiryDate,
		Building:   req.Building,
		Room:       req.Room,
	})
	if err != nil {
		if errors.Is(err, device.ErrDeviceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
			return
		}
		logger.Error("Device update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Device update failed"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteDeviceHandler removes a device.
func (h *DeviceHandler) DeleteDeviceHandler(c *gin.Context) {
	logger := getLogger(c)

	if err := h.Service.DeleteDevice(c.Param("id")); err != nil {
		if errors.Is(err, device.ErrDeviceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
			return
		}
		logger.Error("Device deletion failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Device deletion failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "device deleted"})
}

// GetDeviceStatsHandler returns aggregate counts by derived status.
func (h *DeviceHandler) GetDeviceStatsHandler(c *gin.Context) {
	logger := getLogger(c)

	stats, err := h.Service.GetDeviceStats()
	if err != nil {
		logger.Error("Device stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Device stats failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
