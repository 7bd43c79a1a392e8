package processor

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adverant/nexus/nid-worker/internal/errors"
	"github.com/adverant/nexus/nid-worker/internal/nid"
)

func newTestProcessor(t *testing.T, front, back Recognizer) *NIDProcessor {
	t.Helper()

	p, err := NewNIDProcessor(&ProcessorConfig{
		Front:    newTestService(t, front, 10),
		Back:     newTestService(t, back, 10),
		UseCache: true,
		Logger:   quietLogger(),
	})
	require.NoError(t, err)
	return p
}

func TestProcessExtractsBothSides(t *testing.T) {
	front := &fakeRecognizer{results: map[string][]nid.Token{
		"front": tokens("Name:", "JOHN DOE", "Date of Birth: 01 Dec 1990", "ID NO: 1234567890123"),
	}}
	back := &fakeRecognizer{results: map[string][]nid.Token{
		"back": tokens("Village: ABC", "Post: XYZ", "Blood Group: O+"),
	}}
	p := newTestProcessor(t, front, back)

	got, err := p.Process(context.Background(),
		Image{Filename: "card_front.jpg", Data: []byte("front")},
		Image{Filename: "card_back.jpg", Data: []byte("back")},
	)
	require.NoError(t, err)

	_, err = uuid.Parse(got.RequestID)
	assert.NoError(t, err)

	assert.Equal(t, "JOHN DOE", got.Front.Name)
	assert.Equal(t, "01 Dec 1990", got.Front.DateOfBirth)
	assert.Equal(t, "1234567890123", got.Front.IDNumber)
	assert.Len(t, got.Front.RawText, 4)

	assert.Equal(t, "ABC, XYZ", got.Back.Address)
	assert.Equal(t, "O+", got.Back.BloodGroup)
	assert.GreaterOrEqual(t, got.ProcessingTimeMs, 0.0)
}

func TestProcessUsesCacheAcrossRequests(t *testing.T) {
	front := &fakeRecognizer{results: map[string][]nid.Token{"front": tokens("Name: JOHN")}}
	back := &fakeRecognizer{results: map[string][]nid.Token{"back": tokens("Village: ABC")}}
	p := newTestProcessor(t, front, back)

	for i := 0; i < 3; i++ {
		_, err := p.Process(context.Background(),
			Image{Filename: "f.png", Data: []byte("front")},
			Image{Filename: "b.png", Data: []byte("back")},
		)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), front.calls.Load())
	assert.Equal(t, int32(1), back.calls.Load())

	stats := p.CacheStats()
	require.Len(t, stats, 2)
	assert.Equal(t, 1, stats[0].Size)
	assert.Equal(t, 1, stats[1].Size)

	assert.Equal(t, 2, p.ClearCache())
}

func TestProcessOCRFailure(t *testing.T) {
	front := &fakeRecognizer{results: map[string][]nid.Token{"front": tokens("Name: JOHN")}}
	back := &fakeRecognizer{err: stderrors.New("unreadable")}
	p := newTestProcessor(t, front, back)

	_, err := p.Process(context.Background(),
		Image{Filename: "f.jpg", Data: []byte("front")},
		Image{Filename: "b.jpg", Data: []byte("back")},
	)

	var perr *errors.ProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, errors.ErrorOCRFailed, perr.Code)
	assert.Contains(t, perr.Error(), "back")
}

func TestProcessRejectsInvalidImage(t *testing.T) {
	front := &fakeRecognizer{}
	back := &fakeRecognizer{}
	p := newTestProcessor(t, front, back)

	_, err := p.Process(context.Background(),
		Image{Filename: "f.bmp", Data: []byte("front")},
		Image{Filename: "b.jpg", Data: []byte("back")},
	)

	var perr *errors.ProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, errors.ErrorUnsupportedFormat, perr.Code)
	assert.Equal(t, int32(0), front.calls.Load())
	assert.Equal(t, int32(0), back.calls.Load())
}

func TestNewNIDProcessorRequiresServices(t *testing.T) {
	_, err := NewNIDProcessor(nil)
	assert.Error(t, err)

	_, err = NewNIDProcessor(&ProcessorConfig{})
	assert.Error(t, err)
}
