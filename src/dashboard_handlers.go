package main

import (
	"lrs/src/db"
	"lrs/src/models"
	"lrs/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func dashboardHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/dashboard/stats", func(ctx *gin.Context) {
			stats, err := utils.GetBookingStats()
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			usage, err := utils.GetRoomUsage()
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var runs []models.SweepRun
			if err := db.
				Model(&models.SweepRun{}).
				Order("ran_at DESC").
				Limit(10).
				Find(&runs).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"bookings":   stats,
				"rooms":      usage,
				"sweep_runs": runs,
			})
		})
	return g
}

func notificationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/notifications", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var notifications []models.Notification
			if err := db.
				Model(&models.Notification{}).
				Where(&models.Notification{UserID: userId}).
				Order("created_at DESC").
				Limit(50).
				Find(&notifications).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": notifications, "count": len(notifications)})
		})
	return g
}
