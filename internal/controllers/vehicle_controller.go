package controllers

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleetlink/internal/config"
	"fleetlink/internal/models"
	"fleetlink/internal/ride"
	"fleetlink/internal/services"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// LocationResponse mirrors models.Location with the position as a GeoJSON
// string for API output.
type LocationResponse struct {
	CurrentPincode string `json:"current_pincode,omitempty"`
	Position       string `json:"position,omitempty"`
}

// VehicleResponse mirrors models.Vehicle for API output.
type VehicleResponse struct {
	ID                  uint                       `json:"ID"`
	CreatedAt           time.Time                  `json:"CreatedAt"`
	UpdatedAt           time.Time                  `json:"UpdatedAt"`
	DeletedAt           gorm.DeletedAt             `json:"DeletedAt,omitempty"`
	Name                string                     `json:"name"`
	CapacityKg          int                        `json:"capacity_kg"`
	Tyres               int                        `json:"tyres"`
	VehicleType         models.VehicleType         `json:"vehicle_type"`
	FuelType            models.FuelType            `json:"fuel_type"`
	RegistrationNumber  *string                    `json:"registration_number,omitempty"`
	IsActive            bool                       `json:"is_active"`
	DriverInfo          models.DriverInfo          `json:"driver_info"`
	MaintenanceSchedule models.MaintenanceSchedule `json:"maintenance_schedule"`
	InsuranceInfo       models.InsuranceInfo       `json:"insurance_info"`
	Location            LocationResponse           `json:"location"`
}

// AvailableVehicleResponse augments a vehicle with the trip estimates for the
// searched route.
type AvailableVehicleResponse struct {
	VehicleResponse
	EstimatedRideDurationHours int `json:"estimated_ride_duration_hours"`
	RealisticRideDurationHours int `json:"realistic_ride_duration_hours"`
}

func toVehicleResponse(v models.Vehicle) VehicleResponse {
	jsonPos, _ := convertWKBToGeoJSON(v.Location.Position)
	return VehicleResponse{
		ID:                  v.ID,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
		DeletedAt:           v.DeletedAt,
		Name:                v.Name,
		CapacityKg:          v.CapacityKg,
		Tyres:               v.Tyres,
		VehicleType:         v.VehicleType,
		FuelType:            v.FuelType,
		RegistrationNumber:  v.RegistrationNumber,
		IsActive:            v.IsActive,
		DriverInfo:          v.DriverInfo,
		MaintenanceSchedule: v.MaintenanceSchedule,
		InsuranceInfo:       v.InsuranceInfo,
		Location: LocationResponse{
			CurrentPincode: v.Location.CurrentPincode,
			Position:       jsonPos,
		},
	}
}

// parseAndConvertPosition parses a GeoJSON point into WKB bytes for storage.
func parseAndConvertPosition(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts stored WKB bytes back into a GeoJSON string.
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AddVehicle registers a new fleet vehicle; active by default.
func AddVehicle(c *gin.Context) {
	var input struct {
		Name                string                     `json:"name" binding:"required,max=100"`
		CapacityKg          int                        `json:"capacity_kg" binding:"required,min=1"`
		Tyres               int                        `json:"tyres" binding:"required,min=2"`
		VehicleType         models.VehicleType         `json:"vehicle_type" binding:"omitempty,oneof=truck van pickup trailer"`
		FuelType            models.FuelType            `json:"fuel_type" binding:"omitempty,oneof=diesel petrol electric hybrid"`
		RegistrationNumber  *string                    `json:"registration_number" binding:"omitempty,max=20"`
		DriverInfo          models.DriverInfo          `json:"driver_info"`
		MaintenanceSchedule models.MaintenanceSchedule `json:"maintenance_schedule"`
		InsuranceInfo       models.InsuranceInfo       `json:"insurance_info"`
		Location            struct {
			CurrentPincode string `json:"current_pincode"`
			Position       string `json:"position"` // GeoJSON point
		} `json:"location"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid vehicle input: " + err.Error()})
		return
	}

	position, err := parseAndConvertPosition(input.Location.Position)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid location position: " + err.Error()})
		return
	}

	vehicle := models.Vehicle{
		Name:                input.Name,
		CapacityKg:          input.CapacityKg,
		Tyres:               input.Tyres,
		VehicleType:         input.VehicleType,
		FuelType:            input.FuelType,
		RegistrationNumber:  input.RegistrationNumber,
		IsActive:            true,
		DriverInfo:          input.DriverInfo,
		MaintenanceSchedule: input.MaintenanceSchedule,
		InsuranceInfo:       input.InsuranceInfo,
		Location: models.Location{
			CurrentPincode: input.Location.CurrentPincode,
			Position:       position,
		},
	}

	if err := config.DB.Create(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Vehicle with this registration number already exists"})
			return
		}
		logrus.WithError(err).Error("AddVehicle: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add vehicle"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Vehicle added successfully",
		"data":    toVehicleResponse(vehicle),
	})
}

// FindAvailableVehicles searches active vehicles by capacity and time window.
// An empty result is a normal 200 response, with the estimated duration still
// populated.
func FindAvailableVehicles(c *gin.Context) {
	var query struct {
		CapacityRequired int    `form:"capacityRequired" binding:"required,min=1"`
		FromPincode      string `form:"fromPincode" binding:"required"`
		ToPincode        string `form:"toPincode" binding:"required"`
		StartTime        string `form:"startTime" binding:"required"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid search input: " + err.Error()})
		return
	}
	if !ride.IsValidPincode(query.FromPincode) || !ride.IsValidPincode(query.ToPincode) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Pincodes must be 6-digit numbers"})
		return
	}
	startTime, err := time.Parse(time.RFC3339, query.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Start time must be in ISO 8601 format"})
		return
	}
	if startTime.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Start time cannot be in the past"})
		return
	}

	svc := services.NewAvailabilityService(config.DB)
	result, err := svc.FindAvailable(c.Request.Context(), query.CapacityRequired, query.FromPincode, query.ToPincode, startTime)
	if err != nil {
		logrus.WithError(err).Error("FindAvailableVehicles: search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to search available vehicles"})
		return
	}

	data := make([]AvailableVehicleResponse, 0, len(result.Vehicles))
	for _, v := range result.Vehicles {
		data = append(data, AvailableVehicleResponse{
			VehicleResponse:            toVehicleResponse(v.Vehicle),
			EstimatedRideDurationHours: v.EstimatedRideDurationHours,
			RealisticRideDurationHours: v.RealisticRideDurationHours,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":                    true,
		"message":                    fmt.Sprintf("Found %d available vehicles", len(data)),
		"data":                       data,
		"estimatedRideDurationHours": result.EstimatedRideDurationHours,
		"searchParams": gin.H{
			"capacityRequired": query.CapacityRequired,
			"fromPincode":      query.FromPincode,
			"toPincode":        query.ToPincode,
			"startTime":        startTime,
		},
	})
}

// GetAllVehicles lists the active fleet.
func GetAllVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := config.DB.Where("is_active = ?", true).Find(&vehicles).Error; err != nil {
		logrus.WithError(err).Error("GetAllVehicles: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve vehicles"})
		return
	}

	data := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		data = append(data, toVehicleResponse(v))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Vehicles retrieved successfully",
		"data":    data,
		"count":   len(data),
	})
}

// GetSingleVehicle fetches one vehicle by id.
func GetSingleVehicle(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid vehicle ID")
	if !ok {
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Vehicle not found"})
			return
		}
		logrus.WithError(err).Error("GetSingleVehicle: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve vehicle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Vehicle retrieved successfully",
		"data":    toVehicleResponse(vehicle),
	})
}
