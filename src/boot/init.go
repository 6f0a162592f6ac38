package boot

import (
	"log"
	"lrs/src/common"
	"lrs/src/db"
	"lrs/src/lib"
	"lrs/src/models"
	"lrs/src/types"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.Notification{},
		&models.SweepRun{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	// The conflict detector is only the fast path; this constraint is the
	// authoritative guard against two racing approvals of overlapping
	// requests on the same room.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist;`).Error; err != nil {
		log.Printf("Error creating EXTENSION btree_gist: %s\n", err.Error())
	}
	if err := db.Exec(`
	ALTER TABLE bookings ADD CONSTRAINT bookings_no_approved_overlap
	EXCLUDE USING gist (
		room_id WITH =,
		tsrange(start_time, end_time) WITH &&
	) WHERE (status = 'approved');
	`).Error; err != nil {
		log.Printf("Error creating CONSTRAINT bookings_no_approved_overlap: %s\n", err.Error())
	}

	return db
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	j, err := sched.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(func() {
			db := db.GetDb()
			if _, err := common.SweepExpired(db, "cron"); err != nil {
				log.Printf("Periodic sweep failed: %s\n", err.Error())
			}
		}),
	)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	jobsWaitingInQueue := len(sched.Jobs())
	log.Println("Jobs in queue:", jobsWaitingInQueue)
	log.Printf("Job ID: %s %s\n", j.Name(), j.ID().String())
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}

func InitBroker() {
	topics := []string{}
	for _, event := range []types.BookingEvent{
		types.BOOKING_EVENT_CREATED,
		types.BOOKING_EVENT_APPROVED,
		types.BOOKING_EVENT_REJECTED,
	} {
		topics = append(topics, "bookings-"+string(event))
	}
	go lib.KafkaCreateTopics(topics...)
	go common.BookingNotificationsConsumer()
}
