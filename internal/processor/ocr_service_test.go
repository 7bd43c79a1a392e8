package processor

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adverant/nexus/nid-worker/internal/cache"
	"github.com/adverant/nexus/nid-worker/internal/errors"
	"github.com/adverant/nexus/nid-worker/internal/logging"
	"github.com/adverant/nexus/nid-worker/internal/nid"
)

// fakeRecognizer returns canned tokens keyed by image content.
type fakeRecognizer struct {
	results map[string][]nid.Token
	err     error
	block   bool
	calls   atomic.Int32
}

func (f *fakeRecognizer) Name() string        { return "fake" }
func (f *fakeRecognizer) Languages() []string { return []string{"eng"} }

func (f *fakeRecognizer) Recognize(ctx context.Context, imageData []byte) ([]nid.Token, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.results[string(imageData)], nil
}

func tokens(texts ...string) []nid.Token {
	out := make([]nid.Token, len(texts))
	for i, t := range texts {
		out[i] = nid.Token{Text: t, Confidence: 0.9}
	}
	return out
}

func quietLogger() *logging.Logger {
	return logging.NewWithHandler("test", slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, rec Recognizer, maxSize int) *OCRService {
	t.Helper()

	c, err := cache.New[nid.TokenStream](cache.Options{Enabled: true, MaxSize: maxSize, TTL: time.Hour})
	require.NoError(t, err)

	svc, err := NewOCRService(&OCRServiceConfig{
		Recognizer:          rec,
		Cache:               c,
		MaxFileSize:         64,
		AllowedExtensions:   []string{".JPG", "png"},
		ConfidenceThreshold: 0.3,
		Logger:              quietLogger(),
	})
	require.NoError(t, err)
	return svc
}

func TestNewOCRServiceRequiresRecognizerAndCache(t *testing.T) {
	_, err := NewOCRService(nil)
	assert.Error(t, err)

	_, err = NewOCRService(&OCRServiceConfig{})
	assert.Error(t, err)

	_, err = NewOCRService(&OCRServiceConfig{Recognizer: &fakeRecognizer{}})
	assert.Error(t, err)
}

func TestExtractTextCachesByContent(t *testing.T) {
	rec := &fakeRecognizer{results: map[string][]nid.Token{"img-a": tokens("Name: JOHN")}}
	svc := newTestService(t, rec, 10)
	ctx := context.Background()

	first, err := svc.ExtractText(ctx, "job-1", Image{Filename: "a.jpg", Data: []byte("img-a")}, true)
	require.NoError(t, err)
	assert.True(t, first.Success)

	// same bytes under a different name is still a hit
	second, err := svc.ExtractText(ctx, "job-2", Image{Filename: "copy.png", Data: []byte("img-a")}, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), rec.calls.Load())
	assert.Equal(t, 1, svc.CacheStats().Size)
}

func TestExtractTextWithoutCache(t *testing.T) {
	rec := &fakeRecognizer{results: map[string][]nid.Token{"img-a": tokens("x")}}
	svc := newTestService(t, rec, 10)

	for i := 0; i < 2; i++ {
		_, err := svc.ExtractText(context.Background(), "job", Image{Filename: "a.jpg", Data: []byte("img-a")}, false)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(2), rec.calls.Load())
	assert.Equal(t, 0, svc.CacheStats().Size)
}

func TestExtractTextFiltersLowConfidence(t *testing.T) {
	rec := &fakeRecognizer{results: map[string][]nid.Token{
		"img": {
			{Text: "keep", Confidence: 0.3},
			{Text: "drop", Confidence: 0.29},
			{Text: "also keep", Confidence: 1},
		},
	}}
	svc := newTestService(t, rec, 10)

	got, err := svc.ExtractText(context.Background(), "job", Image{Filename: "a.jpg", Data: []byte("img")}, true)
	require.NoError(t, err)

	require.Len(t, got.Tokens, 2)
	assert.Equal(t, "keep", got.Tokens[0].Text)
	assert.Equal(t, "also keep", got.Tokens[1].Text)
}

func TestExtractTextRecognizerFailure(t *testing.T) {
	rec := &fakeRecognizer{err: stderrors.New("corrupt image")}
	svc := newTestService(t, rec, 10)

	got, err := svc.ExtractText(context.Background(), "job", Image{Filename: "a.jpg", Data: []byte("img")}, true)
	require.NoError(t, err)

	assert.False(t, got.Success)
	assert.Equal(t, "corrupt image", got.Error)
	assert.Empty(t, got.Tokens)
	assert.Equal(t, 0, svc.CacheStats().Size, "failures are not cached")
}

func TestExtractTextCancelled(t *testing.T) {
	rec := &fakeRecognizer{block: true}
	svc := newTestService(t, rec, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ExtractText(ctx, "job", Image{Filename: "a.jpg", Data: []byte("img")}, true)

	var perr *errors.ProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, errors.ErrorProcessingTimeout, perr.Code)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractTextValidation(t *testing.T) {
	rec := &fakeRecognizer{}
	svc := newTestService(t, rec, 10)

	tests := []struct {
		name string
		img  Image
		code errors.ErrorCode
	}{
		{"empty data", Image{Filename: "a.jpg"}, errors.ErrorInvalidInput},
		{"unsupported extension", Image{Filename: "a.gif", Data: []byte("x")}, errors.ErrorUnsupportedFormat},
		{"no extension", Image{Filename: "a", Data: []byte("x")}, errors.ErrorUnsupportedFormat},
		{"too large", Image{Filename: "a.PNG", Data: make([]byte, 65)}, errors.ErrorFileTooLarge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ExtractText(context.Background(), "job", tc.img, true)

			var perr *errors.ProcessingError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.code, perr.Code)
		})
	}

	assert.Equal(t, int32(0), rec.calls.Load())
}

func TestExtractTextEvictsOldestInsertion(t *testing.T) {
	rec := &fakeRecognizer{results: map[string][]nid.Token{}}
	svc := newTestService(t, rec, 2)
	ctx := context.Background()

	for _, data := range []string{"a", "b", "a", "c"} {
		_, err := svc.ExtractText(ctx, "job", Image{Filename: "x.jpg", Data: []byte(data)}, true)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), rec.calls.Load())

	// "a" was inserted first, so reading it did not save it from eviction
	_, err := svc.ExtractText(ctx, "job", Image{Filename: "x.jpg", Data: []byte("a")}, true)
	require.NoError(t, err)
	assert.Equal(t, int32(4), rec.calls.Load())
	assert.Equal(t, 2, svc.CacheStats().Size)
}

func TestClearCacheAndStats(t *testing.T) {
	rec := &fakeRecognizer{results: map[string][]nid.Token{}}
	svc := newTestService(t, rec, 10)

	for _, data := range []string{"a", "b", "c"} {
		_, err := svc.ExtractText(context.Background(), "job", Image{Filename: "x.jpg", Data: []byte(data)}, true)
		require.NoError(t, err)
	}

	stats := svc.CacheStats()
	assert.Equal(t, "fake", stats.Service)
	assert.Equal(t, []string{"eng"}, stats.Languages)
	assert.True(t, stats.Enabled)
	assert.Equal(t, 3, stats.Size)
	assert.Equal(t, 10, stats.MaxSize)
	assert.Equal(t, int64(3600), stats.TTLSeconds)

	assert.Equal(t, 3, svc.ClearCache())
	assert.Equal(t, 0, svc.CacheStats().Size)
}

func TestExtractTextConcurrentCallers(t *testing.T) {
	rec := &fakeRecognizer{results: map[string][]nid.Token{"img": tokens("Name: JOHN")}}
	svc := newTestService(t, rec, 10)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.ExtractText(context.Background(), "job", Image{Filename: "a.jpg", Data: []byte("img")}, true)
			assert.NoError(t, err)
			assert.True(t, got.Success)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, svc.CacheStats().Size)
	assert.GreaterOrEqual(t, rec.calls.Load(), int32(1))
}
