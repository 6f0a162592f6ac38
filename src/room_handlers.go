package main

import (
	"log"
	"lrs/src/config"
	"lrs/src/db"
	"lrs/src/lib"
	"lrs/src/models"
	"lrs/src/types"
	"lrs/src/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func roomHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/rooms", func(ctx *gin.Context) {
			db := db.GetDb()
			var rooms []models.Room
			if err := db.
				Where(&models.Room{Kind: types.ROOM_KIND_ROOM, IsActive: true}).
				Order("name asc").
				Find(&rooms).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rooms, "count": len(rooms)})
		}).
		GET("/tours", func(ctx *gin.Context) {
			db := db.GetDb()
			var tours []models.Room
			if err := db.
				Where(&models.Room{Kind: types.ROOM_KIND_TOUR, IsActive: true}).
				Order("name asc").
				Find(&tours).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tours, "count": len(tours)})
		}).
		GET("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var room models.Room
			if err := db.
				Where(&models.Room{ID: params.ID}).
				First(&room).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": room})
		}).
		GET("/rooms/:id/availability", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var query types.AvailabilityQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			from, err := time.Parse(config.TIME_PARSE_FORMAT, query.From)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			to, err := time.Parse(config.TIME_PARSE_FORMAT, query.To)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			bookings, err := utils.GetRoomAvailability(params.ID, from, to, query.From, query.To)
			if err != nil {
				log.Printf("Error loading availability for room [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		})
	return g
}

func adminRoomHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/rooms", func(ctx *gin.Context) {
			var body types.CreateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			id, err := utils.CreateNewRoom(&body)
			if err != nil {
				log.Printf("Could not create room: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": id})
		}).
		PUT("/rooms/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateRoomStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.
				Model(&models.Room{}).
				Where(&models.Room{ID: params.ID}).
				Update("is_active", *body.IsActive)
			if res.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
				return
			}
			go lib.InvalidateRoomAvailability(params.ID)
			ctx.Status(http.StatusNoContent)
		})
	return g
}
