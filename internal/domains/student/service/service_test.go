package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"galpao/config"
	"galpao/infras/otel/mocks"
	studentMocks "galpao/internal/domains/student/mocks"
	"galpao/internal/domains/student/model"
	"galpao/internal/domains/student/model/dto"
	"galpao/internal/domains/student/repository"
	"galpao/internal/domains/student/service"
	cacheMocks "galpao/shared/cache/mocks"
	"galpao/shared/constant"
	gDto "galpao/shared/dto"
	"galpao/shared/failure"
	"galpao/shared/password"
)

func newService(t *testing.T) (service.Student, *studentMocks.MockStudent, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	repo := studentMocks.NewMockStudent(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(repo, &config.Config{}, cache, mocks.NewOtel()), repo, cache
}

func adminContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserName, constant.RoleAdmin)
}

func TestStudentService_RegisterNew(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().Get(gomock.Any(), repository.FilterByName("Ana Paula")).Return(model.Student{}, nil)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, student model.Student) error {
		assert.Equal(t, "Ana Paula", student.Name)
		assert.Equal(t, "pix", student.Payment)
		assert.Equal(t, 3, student.Credits)
		assert.Equal(t, constant.RoleAdmin, student.CreatedBy)
		assert.NoError(t, password.Verify("anapaula", student.Password))

		return nil
	})

	res, err := svc.Register(adminContext(), dto.RegisterStudentRequest{Name: "Ana Paula", Payment: "pix", Credits: 3})

	require.NoError(t, err)
	assert.False(t, res.Updated)
	assert.Equal(t, 3, res.Student.Credits)
}

func TestStudentService_RegisterExistingOverwrites(t *testing.T) {
	svc, repo, _ := newService(t)

	existing := model.Student{ID: "s-1", Name: "Ana", Payment: "cash", Credits: 5}

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
		assert.Equal(t, 0, fields[model.FieldCredits])
		assert.Equal(t, "card", fields[model.FieldPayment])
		assert.NoError(t, password.Verify("secret", fields[model.FieldPassword].(string)))

		return nil
	})

	res, err := svc.Register(adminContext(), dto.RegisterStudentRequest{Name: "Ana", Payment: "card", Credits: 0, Password: "secret"})

	require.NoError(t, err)
	assert.True(t, res.Updated)
	assert.Equal(t, 0, res.Student.Credits)
	assert.Equal(t, "card", res.Student.Payment)
}

func TestStudentService_RegisterErrors(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *studentMocks.MockStudent)
		wantCode  int
	}{
		{
			name: "lookup fails",
			setupMock: func(repo *studentMocks.MockStudent) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Student{}, errors.New("db down"))
			},
			wantCode: 500,
		},
		{
			name: "concurrent insert of the same name",
			setupMock: func(repo *studentMocks.MockStudent) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Student{}, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			_, err := svc.Register(adminContext(), dto.RegisterStudentRequest{Name: "Ana", Payment: "pix", Credits: 1})

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestStudentService_RegisterMultibytePasswordOverLimit(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Student{}, nil)

	_, err := svc.Register(adminContext(), dto.RegisterStudentRequest{
		Name:     "Ana",
		Payment:  "pix",
		Credits:  1,
		Password: strings.Repeat("é", 40),
	})

	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.ErrorContains(t, err, "72 bytes")
}

func TestStudentService_GetAll(t *testing.T) {
	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Student, error) {
			assert.Equal(t, "students.name", params.SortBy)
			assert.Equal(t, "ASC", params.SortDir)

			return []model.Student{{ID: "s-1", Name: "Ana", Credits: 3}, {ID: "s-2", Name: "Bruno", Credits: 0}}, nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 50})

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Equal(t, "Ana", res.Students[0].Name)
	assert.Equal(t, "Bruno", res.Students[1].Name)
}

func TestStudentService_GetAllFromCache(t *testing.T) {
	svc, _, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
		res := value.(*dto.GetStudentsResponse)
		res.TotalData = 7

		return nil
	})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 50})

	require.NoError(t, err)
	assert.Equal(t, 7, res.TotalData)
}

func TestStudentService_Get(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().Get(gomock.Any(), repository.FilterByName("Ana")).Return(model.Student{ID: "s-1", Name: "Ana", Credits: 3}, nil)
	repo.EXPECT().Get(gomock.Any(), repository.FilterByName("Zé")).Return(model.Student{}, nil)

	res, err := svc.Get(context.Background(), "Ana")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Credits)

	_, err = svc.Get(context.Background(), "Zé")
	assert.Equal(t, 404, failure.GetCode(err))
}
