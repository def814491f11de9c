package get

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMonthlyRows struct {
	mock.Mock
}

func (m *MockMonthlyRows) MonthlyRows(ctx context.Context, yearMonth string) ([]map[string]any, error) {
	args := m.Called(ctx, yearMonth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func TestGetMonthlyRows_Success(t *testing.T) {
	source := new(MockMonthlyRows)
	source.On("MonthlyRows", mock.Anything, "202402").Return([]map[string]any{
		{"workplaceCode": "W1", "rowType": "PLAN", "total": 34.0},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/report/monthly?ym=202402", nil)
	rr := httptest.NewRecorder()

	GetMonthlyRows(slog.Default(), source).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "W1", rows[0]["workplaceCode"])
	assert.Equal(t, 34.0, rows[0]["total"])

	source.AssertExpectations(t)
}

// Тест: неверный формат ym
func TestGetMonthlyRows_InvalidYm(t *testing.T) {
	for _, ym := range []string{"", "2024-02", "202413", "abcdef"} {
		source := new(MockMonthlyRows)

		req := httptest.NewRequest(http.MethodGet, "/api/report/monthly?ym="+ym, nil)
		rr := httptest.NewRecorder()

		GetMonthlyRows(slog.Default(), source).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, ym)
		source.AssertNotCalled(t, "MonthlyRows", mock.Anything, mock.Anything)
	}
}

func TestGetMonthlyRows_StorageError(t *testing.T) {
	source := new(MockMonthlyRows)
	source.On("MonthlyRows", mock.Anything, "202401").Return(nil, errors.New("db down"))

	req := httptest.NewRequest(http.MethodGet, "/api/report/monthly?ym=202401", nil)
	rr := httptest.NewRecorder()

	GetMonthlyRows(slog.Default(), source).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Внутренняя ошибка сервера")
}

func TestGetMonthlyRows_NilRowsRenderEmptyList(t *testing.T) {
	source := new(MockMonthlyRows)
	source.On("MonthlyRows", mock.Anything, "202403").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/report/monthly?ym=202403", nil)
	rr := httptest.NewRecorder()

	GetMonthlyRows(slog.Default(), source).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}
