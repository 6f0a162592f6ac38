package common

import (
	"log"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	mockdb, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockdb}), &gorm.Config{
		ConnPool: mockdb,
	})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	t.Run("overlapping ranges", func(t *testing.T) {
		assert.True(t, Overlaps(at(0), at(2), at(1), at(3)))
		assert.True(t, Overlaps(at(1), at(3), at(0), at(2)))
		assert.True(t, Overlaps(at(0), at(4), at(1), at(2)))
		assert.True(t, Overlaps(at(1), at(2), at(0), at(4)))
		assert.True(t, Overlaps(at(0), at(2), at(0), at(2)))
	})

	t.Run("back to back ranges do not overlap", func(t *testing.T) {
		assert.False(t, Overlaps(at(0), at(2), at(2), at(4)))
		assert.False(t, Overlaps(at(2), at(4), at(0), at(2)))
	})

	t.Run("disjoint ranges", func(t *testing.T) {
		assert.False(t, Overlaps(at(0), at(1), at(2), at(3)))
		assert.False(t, Overlaps(at(2), at(3), at(0), at(1)))
	})

	t.Run("symmetry", func(t *testing.T) {
		cases := [][4]int{{0, 2, 1, 3}, {0, 1, 2, 3}, {0, 4, 1, 2}, {0, 2, 2, 4}}
		for _, c := range cases {
			a := Overlaps(at(c[0]), at(c[1]), at(c[2]), at(c[3]))
			b := Overlaps(at(c[2]), at(c[3]), at(c[0]), at(c[1]))
			assert.Equal(t, a, b)
		}
	})
}

func TestFindConflictsQuery(t *testing.T) {
	gdb, mock := newMockDB()
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	t.Run("scans approved bookings with half-open bounds", func(t *testing.T) {
		rows := sqlmock.
			NewRows([]string{"id", "room_id", "status", "start_time", "end_time"}).
			AddRow(7, 1, "approved", start, end)
		mock.
			ExpectQuery(`SELECT \* FROM "bookings" WHERE .*"room_id" = \$1 AND .*"status" = \$2.* AND \(start_time < \$3 AND end_time > \$4\) AND "bookings"\."deleted_at" IS NULL`).
			WillReturnRows(rows)

		conflicts, err := FindConflicts(gdb, 1, start, end, 0)
		assert.Nil(t, err)
		assert.Len(t, conflicts, 1)
		assert.Equal(t, uint(7), conflicts[0].ID)
	})

	t.Run("excludes the booking being re-validated", func(t *testing.T) {
		mock.
			ExpectQuery(`start_time < \$3 AND end_time > \$4\) AND id <> \$5`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "status"}))

		conflicts, err := FindConflicts(gdb, 1, start, end, 7)
		assert.Nil(t, err)
		assert.Empty(t, conflicts)
	})

	assert.Nil(t, mock.ExpectationsWereMet())
}
