package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hkn-dev/tutoring-api/internal/dto"
	"github.com/hkn-dev/tutoring-api/internal/models"
)

type availabilityRepoMock struct {
	replaced     []models.TutoringAvailability
	replaceCalls int
	replaceErr   error
	stored       []models.TutoringAvailability
	records      []dto.AvailabilityRecord
	listErr      error
}

func (m *availabilityRepoMock) Replace(ctx context.Context, userID int64, rows []models.TutoringAvailability) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaceCalls++
	m.replaced = append([]models.TutoringAvailability{}, rows...)
	m.stored = m.replaced
	return nil
}

func (m *availabilityRepoMock) ListByUser(ctx context.Context, userID int64) ([]models.TutoringAvailability, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.stored, nil
}

func (m *availabilityRepoMock) ListAll(ctx context.Context) ([]dto.AvailabilityRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records, nil
}

type auditMock struct {
	logs []*models.AuditLog
}

func (m *auditMock) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

type availabilityCacheMock struct {
	hit         bool
	cached      []dto.AvailabilityRecord
	getErr      error
	setKeys     []string
	invalidated []string
}

func (m *availabilityCacheMock) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	if !m.hit {
		return false, nil
	}
	if out, ok := dest.(*[]dto.AvailabilityRecord); ok {
		*out = m.cached
	}
	return true, nil
}

func (m *availabilityCacheMock) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setKeys = append(m.setKeys, key)
	return nil
}

func (m *availabilityCacheMock) Invalidate(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	return nil
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func TestAvailabilitySubmitBuildsFullGrid(t *testing.T) {
	repo := &availabilityRepoMock{}
	audit := &auditMock{}
	cache := &availabilityCacheMock{}
	svc := NewAvailabilityService(repo, audit, cache, time.Minute, validator.New(), zap.NewNop())

	err := svc.Submit(context.Background(), 42, dto.SubmitAvailabilityRequest{
		Slots:          map[string]int{"slot_0_12": 3},
		SodaPreference: boolPtr(false),
		AdjacentSlots:  intPtr(1),
	})
	require.NoError(t, err)
	require.Len(t, repo.replaced, 25)

	for _, row := range repo.replaced {
		assert.Equal(t, int64(42), row.UserID)
		assert.True(t, row.CoryPreference)
		assert.False(t, row.SodaPreference)
		assert.Equal(t, 1, row.AdjacentSlotsPreference)
		if row.Weekday == 0 && row.Hour == 12 {
			assert.Equal(t, models.PreferencePreferred, row.PreferenceLevel)
		} else {
			assert.Equal(t, models.PreferenceCannotMake, row.PreferenceLevel)
		}
	}

	assert.Equal(t, []string{"availability:*"}, cache.invalidated)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionAvailabilitySave, audit.logs[0].Action)
}

func TestAvailabilitySubmitDefaults(t *testing.T) {
	repo := &availabilityRepoMock{}
	svc := NewAvailabilityService(repo, nil, nil, 0, validator.New(), zap.NewNop())

	err := svc.Submit(context.Background(), 1, dto.SubmitAvailabilityRequest{Slots: map[string]int{}})
	require.NoError(t, err)
	require.Len(t, repo.replaced, 25)
	for _, row := range repo.replaced {
		assert.Equal(t, models.PreferenceCannotMake, row.PreferenceLevel)
		assert.True(t, row.CoryPreference)
		assert.True(t, row.SodaPreference)
		assert.Equal(t, models.AdjacentDontCare, row.AdjacentSlotsPreference)
	}
}

func TestAvailabilitySubmitResubmitReplaces(t *testing.T) {
	repo := &availabilityRepoMock{}
	svc := NewAvailabilityService(repo, nil, nil, 0, validator.New(), zap.NewNop())

	require.NoError(t, svc.Submit(context.Background(), 5, dto.SubmitAvailabilityRequest{
		Slots: map[string]int{"slot_2_14": 2},
	}))
	require.NoError(t, svc.Submit(context.Background(), 5, dto.SubmitAvailabilityRequest{
		Slots: map[string]int{"slot_2_14": 1},
	}))

	assert.Equal(t, 2, repo.replaceCalls)
	require.Len(t, repo.replaced, 25)
	for _, row := range repo.replaced {
		if row.Weekday == 2 && row.Hour == 14 {
			assert.Equal(t, models.PreferenceLessPreferred, row.PreferenceLevel)
		}
	}
}

func TestAvailabilitySubmitRejectsUnknownSlotField(t *testing.T) {
	repo := &availabilityRepoMock{}
	svc := NewAvailabilityService(repo, nil, nil, 0, validator.New(), zap.NewNop())

	err := svc.Submit(context.Background(), 1, dto.SubmitAvailabilityRequest{
		Slots: map[string]int{"slot_5_12": 2},
	})
	require.Error(t, err)
	assert.Zero(t, repo.replaceCalls)

	err = svc.Submit(context.Background(), 1, dto.SubmitAvailabilityRequest{
		Slots: map[string]int{"slot_0_17": 2},
	})
	require.Error(t, err)
	assert.Zero(t, repo.replaceCalls)
}

func TestAvailabilitySubmitRejectsBadValues(t *testing.T) {
	repo := &availabilityRepoMock{}
	svc := NewAvailabilityService(repo, nil, nil, 0, validator.New(), zap.NewNop())

	err := svc.Submit(context.Background(), 1, dto.SubmitAvailabilityRequest{
		Slots: map[string]int{"slot_0_12": 4},
	})
	require.Error(t, err)

	err = svc.Submit(context.Background(), 1, dto.SubmitAvailabilityRequest{
		Slots:         map[string]int{"slot_0_12": 2},
		AdjacentSlots: intPtr(2),
	})
	require.Error(t, err)
	assert.Zero(t, repo.replaceCalls)
}

func TestAvailabilityFormStateDefaults(t *testing.T) {
	repo := &availabilityRepoMock{}
	svc := NewAvailabilityService(repo, nil, nil, 0, validator.New(), zap.NewNop())

	state, err := svc.FormState(context.Background(), 9)
	require.NoError(t, err)
	assert.Len(t, state.Slots, 25)
	for field, level := range state.Slots {
		assert.Equal(t, models.PreferenceCannotMake, level, field)
	}
	assert.True(t, state.CoryPreference)
	assert.True(t, state.SodaPreference)
	assert.Equal(t, models.AdjacentDontCare, state.AdjacentSlots)
}

func TestAvailabilityFormStateRoundTrip(t *testing.T) {
	repo := &availabilityRepoMock{}
	svc := NewAvailabilityService(repo, nil, nil, 0, validator.New(), zap.NewNop())

	require.NoError(t, svc.Submit(context.Background(), 3, dto.SubmitAvailabilityRequest{
		Slots:          map[string]int{"slot_4_16": 3, "slot_1_13": 1},
		CoryPreference: boolPtr(false),
		AdjacentSlots:  intPtr(0),
	}))

	state, err := svc.FormState(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, state.Slots["slot_4_16"])
	assert.Equal(t, 1, state.Slots["slot_1_13"])
	assert.Equal(t, 0, state.Slots["slot_0_12"])
	assert.False(t, state.CoryPreference)
	assert.True(t, state.SodaPreference)
	assert.Equal(t, models.AdjacentPreferNot, state.AdjacentSlots)
}

func TestAvailabilityListAllCacheHit(t *testing.T) {
	repo := &availabilityRepoMock{listErr: assert.AnError}
	cache := &availabilityCacheMock{
		hit:    true,
		cached: []dto.AvailabilityRecord{{UserID: 1, UserName: "Ada Lovelace"}},
	}
	svc := NewAvailabilityService(repo, nil, cache, time.Minute, validator.New(), zap.NewNop())

	records, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ada Lovelace", records[0].UserName)
}

func TestAvailabilityListAllCacheMissPopulates(t *testing.T) {
	repo := &availabilityRepoMock{
		records: []dto.AvailabilityRecord{{UserID: 2, Weekday: 1, Hour: 14}},
	}
	cache := &availabilityCacheMock{}
	svc := NewAvailabilityService(repo, nil, cache, time.Minute, validator.New(), zap.NewNop())

	records, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"availability:all"}, cache.setKeys)
}

func TestAvailabilityListAllCacheReadFailureFallsThrough(t *testing.T) {
	repo := &availabilityRepoMock{
		records: []dto.AvailabilityRecord{{UserID: 2, Weekday: 1, Hour: 14}},
	}
	cache := &availabilityCacheMock{getErr: errors.New("redis gone")}
	svc := NewAvailabilityService(repo, nil, cache, time.Minute, validator.New(), zap.NewNop())

	records, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"availability:all"}, cache.setKeys)
}

func TestAvailabilityListAllEmpty(t *testing.T) {
	repo := &availabilityRepoMock{}
	svc := NewAvailabilityService(repo, nil, nil, 0, validator.New(), zap.NewNop())

	records, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
