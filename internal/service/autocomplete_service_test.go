package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hkn-dev/tutoring-api/internal/dto"
	"github.com/hkn-dev/tutoring-api/internal/models"
)

type tutorSearcherMock struct {
	users   []models.User
	lastIDs []int64
}

func (m *tutorSearcherMock) SearchByName(ctx context.Context, search string, ids []int64, limit int) ([]models.User, error) {
	m.lastIDs = ids
	return m.users, nil
}

type courseSearcherMock struct {
	options []dto.CourseOption
}

func (m *courseSearcherMock) Search(ctx context.Context, search string, limit int) ([]dto.CourseOption, error) {
	return m.options, nil
}

func TestAutocompleteSearchTutorsScopedToPools(t *testing.T) {
	users := &tutorSearcherMock{users: []models.User{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace"},
	}}
	logistics := &logisticsRepoMock{mostRecent: &models.TutoringLogistics{
		ID:              "log-1",
		OneHourTutorIDs: []int64{1, 2},
		TwoHourTutorIDs: []int64{3},
	}}
	svc := NewAutocompleteService(users, &courseSearcherMock{}, logistics, zap.NewNop())

	options, err := svc.SearchTutors(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Ada Lovelace", options[0].Name)
	assert.Equal(t, []int64{1, 2, 3}, users.lastIDs)
}

func TestAutocompleteSearchTutorsNoLogistics(t *testing.T) {
	svc := NewAutocompleteService(&tutorSearcherMock{}, &courseSearcherMock{}, &logisticsRepoMock{}, zap.NewNop())

	options, err := svc.SearchTutors(context.Background(), "ada")
	require.NoError(t, err)
	assert.Empty(t, options)
}

func TestAutocompleteSearchTutorsEmptyPools(t *testing.T) {
	users := &tutorSearcherMock{users: []models.User{{ID: 1}}}
	logistics := &logisticsRepoMock{mostRecent: &models.TutoringLogistics{ID: "log-1"}}
	svc := NewAutocompleteService(users, &courseSearcherMock{}, logistics, zap.NewNop())

	options, err := svc.SearchTutors(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, options)
	assert.Nil(t, users.lastIDs)
}

func TestAutocompleteSearchCourses(t *testing.T) {
	courses := &courseSearcherMock{options: []dto.CourseOption{{ID: "c1", Title: "CS 61A"}}}
	svc := NewAutocompleteService(&tutorSearcherMock{}, courses, &logisticsRepoMock{}, zap.NewNop())

	options, err := svc.SearchCourses(context.Background(), "61")
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "CS 61A", options[0].Title)
}
