package dto_test

import (
	"galpao/shared/constant"
	"galpao/shared/dto"
	"galpao/shared/model"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("untouched record", func(t *testing.T) {
		metadata := &dto.Metadata{}
		metadata.FromModel(model.NewMetadata(createdAt, "admin"))

		assert.NotEmpty(t, metadata.CreatedAt)
		assert.Equal(t, "admin", metadata.CreatedBy)
		assert.Empty(t, metadata.ModifiedAt)
		assert.Empty(t, metadata.ModifiedBy)
	})

	t.Run("updated record", func(t *testing.T) {
		meta := model.NewMetadata(createdAt, "admin")
		meta.ModifiedAt = createdAt.Add(time.Hour)
		meta.ModifiedBy = "secretaria"

		metadata := &dto.Metadata{}
		metadata.FromModel(meta)

		assert.NotEmpty(t, metadata.ModifiedAt)
		assert.NotEqual(t, metadata.CreatedAt, metadata.ModifiedAt)
		assert.Equal(t, "secretaria", metadata.ModifiedBy)
	})

	t.Run("zero times", func(t *testing.T) {
		metadata := &dto.Metadata{}
		metadata.FromModel(model.Metadata{})

		assert.Empty(t, metadata.CreatedAt)
	})
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{"all parameters", "?page=2&limit=20&sort_by=password&sort_dir=desc", false, dto.QueryParams{Page: 2, Limit: 20, SortDir: "DESC"}},
		{"limit capped", "?limit=100000", false, dto.QueryParams{Limit: constant.MaxValueLimit}},
		{"defaults", "", true, dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}},
		{"no defaults", "", false, dto.QueryParams{}},
		{"invalid numbers fall back", "?page=x&limit=-1", true, dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}},
		{"unknown direction ignored", "?sort_dir=sideways", false, dto.QueryParams{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_SortedBy(t *testing.T) {
	params := dto.QueryParams{Page: 3, Limit: 10}.SortedBy("students.name")

	assert.Equal(t, "students.name", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
	assert.Equal(t, 20, params.Offset())

	desc := dto.QueryParams{SortDir: dto.SortDirDesc}.SortedBy("students.name")
	assert.Equal(t, dto.SortDirDesc, desc.SortDir)
	assert.Zero(t, desc.Offset())
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.And(
		dto.Between("checkins", "checkin_date", "2024-04-25", "2024-05-01"),
		dto.Filter{Field: "slot", Table: "checkins", Operator: dto.FilterOperatorIn, Value: []string{"18:00-20:00", "20:00-22:00"}},
		dto.Eq("checkins", "student_id", "s-1"),
	)

	where, args := group.GetWhereClause()

	assert.Equal(t, "(checkins.checkin_date BETWEEN :checkin_date_from AND :checkin_date_to AND checkins.slot IN (:slot_0, :slot_1) AND checkins.student_id = :student_id)", where)
	assert.Equal(t, "2024-04-25", args["checkin_date_from"])
	assert.Equal(t, "2024-05-01", args["checkin_date_to"])
	assert.Equal(t, "18:00-20:00", args["slot_0"])
	assert.Equal(t, "20:00-22:00", args["slot_1"])
	assert.Equal(t, "s-1", args["student_id"])
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name     string
		filter   dto.Filter
		expected string
	}{
		{"named argument", dto.Filter{ArgName: "day", Field: "checkin_date", Operator: dto.FilterOperatorGreaterEq, Value: "2024-05-01"}, "checkin_date >= :day"},
		{"less or equal", dto.Filter{Field: "credits", Table: "students", Operator: dto.FilterOperatorLessEq, Value: 0}, "students.credits <= :credits"},
		{"empty in", dto.Filter{Field: "slot", Operator: dto.FilterOperatorIn, Value: []string{}}, "FALSE"},
		{"between without range", dto.Filter{Field: "checkin_date", Operator: dto.FilterOperatorBetween, Value: "2024-05-01"}, ""},
		{"unknown operator", dto.Filter{Field: "name", Operator: "like", Value: "Ana"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, _ := tt.filter.GetWhereClause()

			assert.Equal(t, tt.expected, where)
		})
	}
}

func TestFilterGroup_Nested(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.And(dto.Eq("checkins", "slot", "18:00-20:00")),
			dto.Filter{Field: "name", Operator: "like", Value: "Ana"},
			"ignored",
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "((checkins.slot = :slot))", where)
	assert.Len(t, args, 1)
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}
	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
