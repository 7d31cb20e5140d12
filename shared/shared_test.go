package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pms/shared"
	"pms/shared/cache/mocks"
	"pms/shared/constant"
	"pms/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("550e8400-e29b-41d4-a716-446655440000", "id", "bookings")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    "550e8400-e29b-41d4-a716-446655440000",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
		},
	}

	assert.Equal(t, expected, result)
}

func TestOperatorFromContext(t *testing.T) {
	assert.Equal(t, constant.SystemOperator, shared.OperatorFromContext(context.Background()))

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "auditor-1")
	assert.Equal(t, "auditor-1", shared.OperatorFromContext(ctx))

	ctx = context.WithValue(context.Background(), constant.ContextKeyUserID, "")
	assert.Equal(t, constant.SystemOperator, shared.OperatorFromContext(ctx))
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "night_audit:get:abc", shared.BuildCacheKey("night_audit:get", "abc"))
	assert.Equal(t, "night_audit:list", shared.BuildCacheKey("night_audit:list"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	type query struct {
		Page     int    `json:"page"`
		PageSize int    `json:"page_size"`
		Status   string `json:"status"`
	}

	first := shared.BuildCacheKeyWithQuery("night_audit:list", query{Page: 1, PageSize: 30, Status: "completed"})
	same := shared.BuildCacheKeyWithQuery("night_audit:list", query{Page: 1, PageSize: 30, Status: "completed"})
	other := shared.BuildCacheKeyWithQuery("night_audit:list", query{Page: 2, PageSize: 30, Status: "completed"})

	assert.Equal(t, first, same)
	assert.NotEqual(t, first, other)
	assert.True(t, strings.HasPrefix(first, "night_audit:list:"))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "night_audit:list:*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "night_audit:list")

	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), redisCache, "night_audit:list")
}
