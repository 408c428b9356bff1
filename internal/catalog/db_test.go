package catalog

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDSN(t *testing.T) {
	dsn := DSN("/var/lib/mentora/app.db")
	assert.True(t, strings.HasPrefix(dsn, "file:/var/lib/mentora/app.db?"))
	assert.Contains(t, dsn, "journal_mode(WAL)")
	assert.Contains(t, dsn, "busy_timeout(5000)")
}

func TestOpenMigrates(t *testing.T) {
	db := testDB(t)

	for _, table := range []string{
		"users", "coaches", "programs", "sessions",
		"messages", "invoices", "leads", "enrollments",
	} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
}

func TestNestedContentRoundTrip(t *testing.T) {
	db := testDB(t)

	in := Program{
		ID:         "p1",
		Title:      "Interview prep",
		CoverImage: &MediaRef{ID: "programs/p1/cover"},
		Modules: []Module{{
			Title: "Module one",
			Lessons: []Lesson{{
				Title: "Lesson one",
				Content: &LessonContent{
					Files: []MediaRef{{ID: "programs/p1/worksheet", Kind: "raw"}},
					Presentation: &Presentation{
						Slides: []Slide{{
							ImageID:  "programs/p1/slide0",
							AudioID:  "programs/p1/narration0",
							Overlays: []Overlay{{ImageID: "programs/p1/overlay0", X: 10, Y: 20}},
						}},
					},
				},
			}},
		}},
	}
	require.NoError(t, db.Create(&in).Error)

	var out Program
	require.NoError(t, db.First(&out, "id = ?", "p1").Error)

	require.Len(t, out.Modules, 1)
	require.Len(t, out.Modules[0].Lessons, 1)
	content := out.Modules[0].Lessons[0].Content
	require.NotNil(t, content)
	assert.Equal(t, "raw", content.Files[0].Kind)
	require.NotNil(t, content.Presentation)
	require.Len(t, content.Presentation.Slides, 1)
	slide := content.Presentation.Slides[0]
	assert.Equal(t, "programs/p1/narration0", slide.AudioID)
	require.Len(t, slide.Overlays, 1)
	assert.Equal(t, 20, slide.Overlays[0].Y)
}
