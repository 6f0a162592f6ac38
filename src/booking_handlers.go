package main

import (
	"errors"
	"log"
	"lrs/src/common"
	"lrs/src/db"
	"lrs/src/models"
	"lrs/src/types"
	"lrs/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func bookingErrorResponse(ctx *gin.Context, err error) {
	var conflictErr *common.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		ctx.JSON(http.StatusConflict, gin.H{
			"error":     conflictErr.Error(),
			"conflicts": common.ConflictResponses(conflictErr.Conflicts),
		})
	case errors.Is(err, common.ErrInvalidRange):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrNotPending):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrIllegalTransition),
		errors.Is(err, common.ErrRoomUnavailable),
		errors.Is(err, common.ErrCapacityExceeded):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			booking, err := utils.CreateNewBooking(&body, userId)
			if err != nil {
				log.Printf("Could not create booking: %s\n", err.Error())
				bookingErrorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			var filters types.BookingsQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			bookings, err := utils.GetOwnBookings(userId, &filters)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			db := db.GetDb()
			var booking models.Booking
			if err := db.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				Preload("Room").
				Preload("User").
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": common.ErrNotFound.Error()})
				return
			}
			if booking.UserID != userId && role != string(types.ROLE_ADMIN) {
				ctx.JSON(http.StatusForbidden, gin.H{"error": common.ErrForbidden.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			booking, err := utils.CancelBooking(params.ID, userId)
			if err != nil {
				log.Printf("Could not cancel Booking [%d]: %s\n", params.ID, err.Error())
				bookingErrorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		})
	return g
}

func adminBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			var filters types.BookingsQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			// Reap stale approvals before the reviewer sees the list
			if _, err := common.SweepExpired(db, "dashboard"); err != nil {
				log.Printf("Sweep before listing failed: %s\n", err.Error())
			}
			cond := models.Booking{}
			if filters.Status != "" {
				cond.Status = types.BookingStatus(filters.Status)
			}
			if filters.RoomID > 0 {
				cond.RoomID = filters.RoomID
			}
			if filters.Mine {
				cond.UserID = ctx.GetUint("id")
			}
			var bookings []models.Booking
			if err := db.
				Model(&models.Booking{}).
				Where(&cond).
				Preload("Room").
				Preload("User").
				Order("created_at DESC").
				Limit(200).
				Find(&bookings).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		PUT("/bookings/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateBookingStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.SetBookingStatus(params.ID, types.BookingStatus(body.Status))
			if err != nil {
				log.Printf("Could not update status for Booking [%d]: %s\n", params.ID, err.Error())
				bookingErrorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		POST("/bookings/sweep", func(ctx *gin.Context) {
			db := db.GetDb()
			swept, err := common.SweepExpired(db, "manual")
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": swept, "count": len(swept)})
		})
	return g
}
