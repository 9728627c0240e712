package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blues/dfs/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLogicErrorResponseMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		code int
	}{
		{logic.NotFound("项目不存在"), http.StatusNotFound},
		{logic.Forbidden("无权操作该项目"), http.StatusForbidden},
		{logic.Validation("捐赠金额必须大于0"), http.StatusBadRequest},
		{logic.Conflict("里程碑已审批通过"), http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		LogicErrorResponse(c, tc.err)
		assert.Equal(t, tc.code, w.Code, "error %v", tc.err)
		assert.Contains(t, w.Body.String(), `"success":false`)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, int64(3), p.TotalPage)

	p = NewPagination(1, 10, 0)
	assert.Equal(t, int64(0), p.TotalPage)
}
