package attendance

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"SIAKAD/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.Migrate(db))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, id int64) *models.Student {
	t.Helper()
	s := &models.Student{Id: id, FullName: fmt.Sprintf("Student %d", id), RegNo: fmt.Sprintf("R-%03d", id), ClassSectionId: 4}
	require.NoError(t, db.Create(s).Error)
	return s
}

func countRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Attendance{}).Count(&n).Error)
	return n
}

func TestMarkPresentIdempotent(t *testing.T) {
	db := newTestDB(t)
	r := NewRecorder(db)
	student := seedStudent(t, db, 1)

	already, err := r.MarkPresent(student, "2026-08-31", 87.5)
	require.NoError(t, err)
	assert.False(t, already)

	already, err = r.MarkPresent(student, "2026-08-31", 91.0)
	require.NoError(t, err)
	assert.True(t, already, "second mark on the same day must be a no-op")

	assert.EqualValues(t, 1, countRows(t, db))

	var rec models.Attendance
	require.NoError(t, db.First(&rec).Error)
	assert.Equal(t, StatusPresent, rec.Status)
	assert.Equal(t, MethodFace, rec.Method)
	assert.Equal(t, SystemActor, rec.MarkedBy)
	assert.Equal(t, 87.5, rec.Confidence, "confidence comes from the first successful mark")
	assert.Equal(t, student.ClassSectionId, rec.ClassSectionId)
}

func TestMarkPresentConcurrent(t *testing.T) {
	db := newTestDB(t)
	r := NewRecorder(db)
	student := seedStudent(t, db, 2)

	const polls = 12
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0

	for i := 0; i < polls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			already, err := r.MarkPresent(student, "2026-08-31", 75)
			assert.NoError(t, err)
			if !already {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created, "exactly one poll may create the record")
	assert.EqualValues(t, 1, countRows(t, db))
}

func TestMarkPresentSeparateKeys(t *testing.T) {
	db := newTestDB(t)
	r := NewRecorder(db)
	s1 := seedStudent(t, db, 1)
	s2 := seedStudent(t, db, 2)

	already, err := r.MarkPresent(s1, "2026-08-30", 80)
	require.NoError(t, err)
	assert.False(t, already)

	// Same student, next day: new record.
	already, err = r.MarkPresent(s1, "2026-08-31", 80)
	require.NoError(t, err)
	assert.False(t, already)

	// Different student, same day: new record.
	already, err = r.MarkPresent(s2, "2026-08-31", 80)
	require.NoError(t, err)
	assert.False(t, already)

	assert.EqualValues(t, 3, countRows(t, db))
}

func TestDayKey(t *testing.T) {
	ts, err := time.Parse(time.RFC3339, "2026-08-31T23:59:59Z")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", DayKey(ts))
}
