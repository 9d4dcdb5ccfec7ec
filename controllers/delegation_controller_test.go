package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ne-x-tr-on/toolport-v1/db"
	"github.com/Ne-x-tr-on/toolport-v1/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 路由直接挂 handler，不套认证中间件
func newTestRouter(t *testing.T) (*gin.Engine, *db.Repo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(conn))

	repo := db.NewRepo(conn)
	s := &Srv{Repo: repo}
	delCtl := NewDelegationController(s)
	stuCtl := NewStudentController(s)

	r := gin.New()
	r.GET("/v1/delegations", delCtl.List)
	r.GET("/v1/delegations/:id", delCtl.GetOne)
	r.POST("/v1/delegations", delCtl.Issue)
	r.POST("/v1/delegations/:id/return", delCtl.Return)
	r.POST("/v1/students/:id/lost-tools/:delegationId/recover", stuCtl.Recover)
	r.POST("/v1/students/:id/lost-tools/:delegationId/paid", stuCtl.Paid)
	return r, repo
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func seedFixtures(t *testing.T, repo *db.Repo, quantity int) (toolID, studentID, lecturerID string) {
	t.Helper()
	tool := &models.Tool{
		ID:                uuid.NewString(),
		Name:              "Oscilloscope",
		Category:          models.CategoryElectricalTool,
		Quantity:          quantity,
		Unit:              "pcs",
		LowStockThreshold: 1,
		Status:            models.ComputeStatus(quantity, 0, 1),
		DateAdded:         time.Now().UTC(),
	}
	require.NoError(t, repo.DB.Create(tool).Error)
	stu := &models.Student{
		StudentID:     "ENM221-0500-2023",
		Name:          "Grace Njeri",
		Department:    "Mechatronics",
		Email:         "grace@students.example.ac.ke",
		AccountStatus: models.AccountActive,
	}
	require.NoError(t, repo.DB.Create(stu).Error)
	lec := &models.Lecturer{
		ID:         uuid.NewString(),
		Name:       "Dr. Otieno",
		Email:      "otieno@staff.example.ac.ke",
		Department: "Mechatronics",
	}
	require.NoError(t, repo.DB.Create(lec).Error)
	return tool.ID, stu.StudentID, lec.ID
}

func TestIssueEndpoint(t *testing.T) {
	r, repo := newTestRouter(t)
	toolID, studentID, lecturerID := seedFixtures(t, repo, 5)

	due := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	w := doJSON(t, r, http.MethodPost, "/v1/delegations", gin.H{
		"toolId":          toolID,
		"studentId":       studentID,
		"lecturerId":      lecturerID,
		"quantity":        2,
		"expectedReturn":  due,
		"conditionBefore": "Good",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Issued", body["status"])
	assert.EqualValues(t, 3, body["toolRemainingQty"])

	// 缺必填字段
	w = doJSON(t, r, http.MethodPost, "/v1/delegations", gin.H{"toolId": toolID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 日期格式不对
	w = doJSON(t, r, http.MethodPost, "/v1/delegations", gin.H{
		"toolId": toolID, "studentId": studentID, "lecturerId": lecturerID,
		"quantity": 1, "expectedReturn": "next week", "conditionBefore": "Good",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w)["error"])

	// 库存不够
	w = doJSON(t, r, http.MethodPost, "/v1/delegations", gin.H{
		"toolId": toolID, "studentId": studentID, "lecturerId": lecturerID,
		"quantity": 10, "expectedReturn": due, "conditionBefore": "Good",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode(t, w)["error"])

	// 工具不存在
	w = doJSON(t, r, http.MethodPost, "/v1/delegations", gin.H{
		"toolId": uuid.NewString(), "studentId": studentID, "lecturerId": lecturerID,
		"quantity": 1, "expectedReturn": due, "conditionBefore": "Good",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w)["error"])
}

func TestReturnAndLostEndpoints(t *testing.T) {
	r, repo := newTestRouter(t)
	toolID, studentID, lecturerID := seedFixtures(t, repo, 5)
	due := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	issue := func() string {
		w := doJSON(t, r, http.MethodPost, "/v1/delegations", gin.H{
			"toolId": toolID, "studentId": studentID, "lecturerId": lecturerID,
			"quantity": 1, "expectedReturn": due, "conditionBefore": "Excellent",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return decode(t, w)["id"].(string)
	}

	// 正常归还
	id := issue()
	w := doJSON(t, r, http.MethodPost, "/v1/delegations/"+id+"/return", gin.H{"conditionAfter": "Fair"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Returned", decode(t, w)["status"])

	// 二次归还 404
	w = doJSON(t, r, http.MethodPost, "/v1/delegations/"+id+"/return", gin.H{"conditionAfter": "Fair"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 挂失分支
	id = issue()
	w = doJSON(t, r, http.MethodPost, "/v1/delegations/"+id+"/return", gin.H{
		"conditionAfter": "Damaged", "markAsLost": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Lost", body["status"])
	assert.EqualValues(t, 1, body["studentLostToolCount"])
	assert.Equal(t, "Active", body["studentAccountStatus"])

	// 找回
	w = doJSON(t, r, http.MethodPost, "/v1/students/"+studentID+"/lost-tools/"+id+"/recover", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decode(t, w)
	assert.EqualValues(t, 0, body["newLostCount"])

	// 已了结，不能再处理
	w = doJSON(t, r, http.MethodPost, "/v1/students/"+studentID+"/lost-tools/"+id+"/paid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAndGetEndpoints(t *testing.T) {
	r, repo := newTestRouter(t)
	toolID, studentID, lecturerID := seedFixtures(t, repo, 5)
	due := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	w := doJSON(t, r, http.MethodPost, "/v1/delegations", gin.H{
		"toolId": toolID, "studentId": studentID, "lecturerId": lecturerID,
		"quantity": 1, "expectedReturn": due, "conditionBefore": "Good",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	w = doJSON(t, r, http.MethodGet, "/v1/delegations?status=Issued", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].([]any)
	require.Len(t, data, 1)

	w = doJSON(t, r, http.MethodGet, "/v1/delegations/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	row := decode(t, w)
	assert.Equal(t, "Oscilloscope", row["toolName"])
	assert.Equal(t, "Grace Njeri", row["studentName"])

	w = doJSON(t, r, http.MethodGet, "/v1/delegations/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
