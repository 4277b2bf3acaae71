package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/shiftsync/timetable-api/internal/service"
)

func TestSubstituteHandler_SearchSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSubstituteHandler(service.NewSubstituteService())

	body := []byte(`{
		"faculty": [
			{"id": "F1", "name": "Dr A", "shift": [9,10,11]},
			{"id": "F2", "name": "Dr B", "shift": [9]}
		],
		"schedule": [
			{"faculty_id": "F1", "day": "Monday", "time_slot": 9}
		]
	}`)
	req, _ := http.NewRequest(http.MethodPost, "/substitute-search?day=Monday&time_index=9", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Search(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"F2"`)
	require.NotContains(t, w.Body.String(), `"F1"`)
}

func TestSubstituteHandler_SearchMissingQueryParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSubstituteHandler(service.NewSubstituteService())

	req, _ := http.NewRequest(http.MethodPost, "/substitute-search", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Search(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubstituteHandler_SearchInvalidTimeIndex(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSubstituteHandler(service.NewSubstituteService())

	req, _ := http.NewRequest(http.MethodPost, "/substitute-search?day=Monday&time_index=nine", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Search(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
