package weeks

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"mes-console/internal/report"
)

type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Load(r *http.Request) report.State {
	args := m.Called(r)
	return args.Get(0).(report.State)
}

func (m *MockStateStore) SaveCollapse(w http.ResponseWriter, r *http.Request, c report.CollapseState) error {
	args := m.Called(w, r, c)
	return args.Error(0)
}

func serve(states StateStore, target string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Post("/weeks/{index}/toggle", ToggleWeek(slog.Default(), states))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, target, nil))
	return rr
}

func TestToggleWeek_Collapse(t *testing.T) {
	states := new(MockStateStore)
	states.On("Load", mock.Anything).Return(report.State{Collapse: report.NewCollapseState(3)})
	states.On("SaveCollapse", mock.Anything, mock.Anything, mock.MatchedBy(func(c report.CollapseState) bool {
		return c.IsCollapsed(1) && c.IsCollapsed(3) && c.Len() == 2
	})).Return(nil)

	rr := serve(states, "/weeks/1/toggle")

	require.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Index)
	assert.True(t, resp.Collapsed)
	assert.Equal(t, []int{1, 3}, resp.Weeks)

	states.AssertExpectations(t)
}

func TestToggleWeek_Expand(t *testing.T) {
	states := new(MockStateStore)
	states.On("Load", mock.Anything).Return(report.State{Collapse: report.NewCollapseState(0)})
	states.On("SaveCollapse", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	rr := serve(states, "/weeks/0/toggle")

	require.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Collapsed)
	assert.Empty(t, resp.Weeks)
}

func TestToggleWeek_BadIndex(t *testing.T) {
	for _, target := range []string{"/weeks/x/toggle", "/weeks/5/toggle", "/weeks/-1/toggle"} {
		states := new(MockStateStore)

		rr := serve(states, target)

		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
		states.AssertNotCalled(t, "SaveCollapse", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestToggleWeek_SaveError(t *testing.T) {
	states := new(MockStateStore)
	states.On("Load", mock.Anything).Return(report.State{})
	states.On("SaveCollapse", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("boom"))

	rr := serve(states, "/weeks/2/toggle")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
