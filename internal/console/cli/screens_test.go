package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCasperSolangi/arc-fun-front/internal/console/api"
	"github.com/TheCasperSolangi/arc-fun-front/internal/console/catalog"
	"github.com/TheCasperSolangi/arc-fun-front/internal/console/pipeline"
	"github.com/TheCasperSolangi/arc-fun-front/internal/logging"
)

type scriptedRecords struct {
	list    []catalog.Record
	created []catalog.Record
	updated []catalog.Record
	deleted []string
}

func (s *scriptedRecords) List(_ context.Context, _ string, _ bool) ([]catalog.Record, error) {
	return s.list, nil
}
func (s *scriptedRecords) Create(_ context.Context, _ string, rec catalog.Record) error {
	s.created = append(s.created, rec)
	return nil
}
func (s *scriptedRecords) Update(_ context.Context, _, _ string, rec catalog.Record) error {
	s.updated = append(s.updated, rec)
	return nil
}
func (s *scriptedRecords) Delete(_ context.Context, _, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type scriptedStorage struct {
	url     string
	uploads []api.UploadRequest
}

func (s *scriptedStorage) Upload(_ context.Context, req api.UploadRequest) (string, error) {
	if req.Body != nil {
		_, _ = io.Copy(io.Discard, req.Body)
	}
	s.uploads = append(s.uploads, req)
	return s.url, nil
}
func (s *scriptedStorage) Remove(_ context.Context, _ string) error { return nil }

type alwaysConfirm struct{ answer bool }

func (c alwaysConfirm) Confirm(string) bool { return c.answer }

// scriptAnswers replaces the interactive input seams with a single queue of
// answers, consumed in prompt order regardless of which helper asks.
func scriptAnswers(t *testing.T, answers ...string) {
	t.Helper()
	pop := func() (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		next := answers[0]
		answers = answers[1:]
		return next, nil
	}

	origText, origMulti := getSimpleText, getMultiline
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return pop() }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return pop() }
	t.Cleanup(func() { getSimpleText, getMultiline = origText, origMulti })
}

func newTestApp(desc *catalog.Descriptor, records *scriptedRecords, storage *scriptedStorage, confirm pipeline.Confirmer) *App {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	p := pipeline.New(desc, records, storage, confirm, log, pipeline.Options{})
	return &App{
		log:       log,
		pipelines: map[string]*pipeline.Pipeline{desc.Collection: p},
		current:   desc.Collection,
		reader:    bufio.NewReader(strings.NewReader("")),
	}
}

func TestAdd_TestimonialWithManualURL(t *testing.T) {
	silencePrintln(t)
	records := &scriptedRecords{}
	app := newTestApp(catalog.Testimonials(), records, &scriptedStorage{}, nil)

	// Fields walk in descriptor order; asset fields take a mode choice first.
	scriptAnswers(t,
		"Jane",                // student
		"34",                  // age
		"Austin, TX",          // location
		"",                    // timeframe
		"",                    // revenue
		"",                    // growth
		"u",                   // video_url: direct URL
		"https://cdn.x/v.mp4", // video_url value
		"",                    // thumbnail: keep empty
		"",                    // duration
		"Changed my career.",  // testimonial
		"",                    // beforeJob
		"",                    // afterStatus
		"5",                   // rating
		"",                    // joinDate
	)

	require.NoError(t, app.Add(context.Background()))

	require.Len(t, records.created, 1)
	rec := records.created[0]
	assert.Equal(t, "Jane", rec["student"])
	assert.Equal(t, 34, rec["age"])
	assert.Equal(t, 5, rec["rating"])
	assert.Equal(t, "https://cdn.x/v.mp4", rec["video_url"])
	assert.Equal(t, int64(1), rec["id"])
}

func TestAdd_TestimonialBodyCollectedMultiline(t *testing.T) {
	silencePrintln(t)
	records := &scriptedRecords{}
	app := newTestApp(catalog.Testimonials(), records, &scriptedStorage{}, nil)

	// Every single-line prompt except the testimonial body, which goes
	// through the multiline helper.
	scriptAnswers(t,
		"Jane",       // student
		"34",         // age
		"Austin, TX", // location
		"", "", "",   // timeframe, revenue, growth
		"", "",       // video_url, thumbnail: keep empty
		"",           // duration
		"", "",       // beforeJob, afterStatus
		"5",          // rating
		"",           // joinDate
	)
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		return "First line.\nSecond line.", nil
	}

	require.NoError(t, app.Add(context.Background()))

	require.Len(t, records.created, 1)
	assert.Equal(t, "First line.\nSecond line.", records.created[0]["testimonial"])
}

func TestAdd_StagedFileIsUploaded(t *testing.T) {
	silencePrintln(t)
	records := &scriptedRecords{}
	storage := &scriptedStorage{url: "https://cdn.x/videos/1_clip.mp4"}
	app := newTestApp(catalog.Videos(), records, storage, nil)

	origStage := openStaged
	openStaged = func(path string) (*pipeline.StagedFile, error) {
		return &pipeline.StagedFile{
			Name:      "clip.mp4",
			MIMEType:  "video/mp4",
			SizeBytes: 16,
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader("0123456789abcdef")), nil
			},
		}, nil
	}
	t.Cleanup(func() { openStaged = origStage })

	scriptAnswers(t,
		"Demo run",       // title
		"",               // thumbnail: keep empty
		"Demo",           // category
		"",               // views (defaults to 0)
		"f",              // video_url: file upload
		"/tmp/clip.mp4",  // path
	)

	require.NoError(t, app.Add(context.Background()))

	require.Len(t, storage.uploads, 1)
	assert.Equal(t, "clip.mp4", storage.uploads[0].FileName)
	assert.True(t, strings.HasPrefix(storage.uploads[0].Key, "videos/"))

	require.Len(t, records.created, 1)
	assert.Equal(t, "https://cdn.x/videos/1_clip.mp4", records.created[0]["video_url"])
}

func TestAdd_ReadOnlyScreenRefuses(t *testing.T) {
	lines := silencePrintln(t)
	records := &scriptedRecords{}
	app := newTestApp(catalog.Responses(), records, &scriptedStorage{}, nil)

	require.NoError(t, app.Add(context.Background()))
	assert.Empty(t, records.created)
	assert.Contains(t, strings.Join(*lines, "\n"), "read-only")
}

func TestEdit_UnknownID(t *testing.T) {
	lines := silencePrintln(t)
	records := &scriptedRecords{list: []catalog.Record{{"id": float64(1)}}}
	app := newTestApp(catalog.Testimonials(), records, &scriptedStorage{}, nil)

	require.NoError(t, app.Edit(context.Background(), "99"))
	assert.Empty(t, records.updated)
	assert.Contains(t, strings.Join(*lines, "\n"), "No record with id 99")
}

func TestEdit_UpdatesExistingRecord(t *testing.T) {
	silencePrintln(t)
	records := &scriptedRecords{list: []catalog.Record{{
		"id": float64(3), "student": "Jane", "age": float64(34),
		"location": "Austin, TX", "testimonial": "Good.", "rating": float64(3),
	}}}
	app := newTestApp(catalog.Testimonials(), records, &scriptedStorage{}, nil)

	// Enter keeps every prefilled value except the rating.
	scriptAnswers(t,
		"", "", "", "", "", "", // student..growth
		"",       // video_url: keep
		"",       // thumbnail: keep
		"", "",   // duration, testimonial
		"", "",   // beforeJob, afterStatus
		"5",      // rating
		"",       // joinDate
	)

	require.NoError(t, app.Edit(context.Background(), "3"))

	require.Len(t, records.updated, 1)
	assert.Equal(t, int64(3), records.updated[0]["id"])
	assert.Equal(t, "Jane", records.updated[0]["student"])
	assert.Equal(t, 5, records.updated[0]["rating"])
	assert.Empty(t, records.created)
}

func TestDelete_PromptsForMissingID(t *testing.T) {
	silencePrintln(t)
	records := &scriptedRecords{}
	app := newTestApp(catalog.Testimonials(), records, &scriptedStorage{}, alwaysConfirm{answer: true})

	scriptAnswers(t, "12")

	require.NoError(t, app.Delete(context.Background(), ""))
	assert.Equal(t, []string{"12"}, records.deleted)
}

func TestDelete_DeclinedConfirmation(t *testing.T) {
	silencePrintln(t)
	records := &scriptedRecords{}
	app := newTestApp(catalog.Testimonials(), records, &scriptedStorage{}, alwaysConfirm{answer: false})

	require.NoError(t, app.Delete(context.Background(), "12"))
	assert.Empty(t, records.deleted)
}

func TestList_PrintsRecords(t *testing.T) {
	lines := silencePrintln(t)
	records := &scriptedRecords{list: []catalog.Record{
		{"id": float64(1), "student": "Jane", "rating": float64(5)},
	}}
	app := newTestApp(catalog.Testimonials(), records, &scriptedStorage{}, nil)

	require.NoError(t, app.List(context.Background()))
	out := strings.Join(*lines, "\n")
	assert.Contains(t, out, "id=1")
	assert.Contains(t, out, "student=Jane")
}

func TestUse_SwitchesAndRejectsUnknown(t *testing.T) {
	lines := silencePrintln(t)
	app := newTestApp(catalog.Testimonials(), &scriptedRecords{}, &scriptedStorage{}, nil)
	app.pipelines["videos"] = pipeline.New(catalog.Videos(), &scriptedRecords{}, &scriptedStorage{}, nil,
		logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), pipeline.Options{})

	require.NoError(t, app.Use(context.Background(), "videos"))
	assert.Equal(t, "videos", app.current)

	require.NoError(t, app.Use(context.Background(), "nope"))
	assert.Equal(t, "videos", app.current)
	assert.Contains(t, strings.Join(*lines, "\n"), "Unknown screen")
}
