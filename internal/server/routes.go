package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// registerRoutes sets up the read-only table API on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB, h *holder) {
	router.GET("/healthz", handleHealth(h))

	api := router.Group("/api")
	api.GET("/params", handleParams(h))
	api.GET("/reserved", handleReserved(h))
	api.GET("/apps", handleApps(h))
	api.GET("/groups", handleGroups(h))
	api.GET("/defines", handleDefines(h))
	api.GET("/msgtable", handleMessageTable(h))
	api.GET("/schedule", handleSchedule(h))
	api.GET("/schedule/:row", handleScheduleRow(h))
	api.POST("/refresh", handleRefresh(db, h))
}

func handleHealth(h *holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"built_at": h.get().BuiltAt,
		})
	}
}

func handleParams(h *holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := h.get()
		c.JSON(http.StatusOK, gin.H{
			"max_msgs_per_slot":   snap.Params.MaxMsgsPerSlot,
			"max_msgs_per_second": snap.Params.MaxMsgsPerSecond,
			"max_msgs_per_cycle":  snap.Params.MaxMsgsPerCycle,
			"slot_count":          snap.Params.SlotCount,
		})
	}
}

func handleReserved(h *holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, orEmpty(h.get().Reserved))
	}
}

func handleApps(h *holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, orEmpty(h.get().Apps))
	}
}

func handleGroups(h *holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, orEmpty(h.get().Groups))
	}
}

func handleDefines(h *holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, orEmpty(h.get().Defines))
	}
}

func handleMessageTable(h *holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, orEmpty(h.get().IndexTable))
	}
}

func handleSchedule(h *holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := h.get()
		c.JSON(http.StatusOK, gin.H{
			"slot_count": snap.Params.SlotCount,
			"rows":       orEmpty(snap.Rows),
			"warnings":   orEmpty(snap.Warnings),
		})
	}
}

func handleScheduleRow(h *holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, err := strconv.Atoi(c.Param("row"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "row index must be an integer"})
			return
		}
		snap := h.get()
		if idx < 0 || idx >= len(snap.Rows) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "row " + c.Param("row") + " out of range",
				"rows":  len(snap.Rows),
			})
			return
		}
		c.JSON(http.StatusOK, snap.Rows[idx])
	}
}

func handleRefresh(db *gorm.DB, h *holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := BuildSnapshot(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		h.set(snap)
		c.JSON(http.StatusOK, gin.H{
			"built_at": snap.BuiltAt,
			"rows":     len(snap.Rows),
			"warnings": len(snap.Warnings),
		})
	}
}

// orEmpty keeps empty collections rendering as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
