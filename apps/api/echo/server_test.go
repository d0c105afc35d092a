package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/trezcool/sims/apps/api/echo"
	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/course"
	"github.com/trezcool/sims/core/grade"
	"github.com/trezcool/sims/core/student"
	"github.com/trezcool/sims/storage"
	testutil "github.com/trezcool/sims/tests"
)

func setup(t *testing.T) *echoapi.Server {
	t.Helper()
	conf := &core.Config{
		Storage:  core.StorageConfig{Backend: core.BackendDatabase},
		Database: testutil.SQLiteConfig(t),
	}
	stores, err := storage.Open(context.Background(), conf, core.NopLogger{})
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = stores.Close() })

	validate, translator := core.NewValidator()
	logger := core.NopLogger{}
	return echoapi.NewServer(
		&echoapi.Options{DisableReqLogs: true},
		echoapi.Services{
			Students: student.NewService(stores.Students, validate, logger),
			Courses:  course.NewService(stores.Courses, validate, logger),
			Grades:   grade.NewService(stores.Grades, validate, logger),
		},
		logger,
		translator,
	)
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     string
	wantCode int
	wantBody string // JSON, compared semantically
}

func runHTTPTests(t *testing.T, srv http.Handler, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHome(t *testing.T) {
	srv := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to SIMS API!", rec.Body.String())
}

func TestStudentAPI(t *testing.T) {
	srv := setup(t)
	alice := `{"stu_id":"S1","name":"Alice","gender":"Female","major":"CS","year":"2"}`

	runHTTPTests(t, srv, []httpTest{
		{name: "empty list", method: http.MethodGet, path: "/v1/students", wantCode: http.StatusOK, wantBody: `[]`},
		{name: "create", method: http.MethodPost, path: "/v1/students", body: alice, wantCode: http.StatusCreated, wantBody: alice},
		{name: "create: duplicate", method: http.MethodPost, path: "/v1/students", body: alice, wantCode: http.StatusConflict},
		{
			name:     "create: invalid",
			method:   http.MethodPost,
			path:     "/v1/students",
			body:     `{"stu_id":"S2"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"name":"name is required"}`,
		},
		{name: "create: malformed json", method: http.MethodPost, path: "/v1/students", body: `{"stu_id":`, wantCode: http.StatusBadRequest},
		{name: "retrieve", method: http.MethodGet, path: "/v1/students/S1", wantCode: http.StatusOK, wantBody: alice},
		{
			name:     "retrieve: not found",
			method:   http.MethodGet,
			path:     "/v1/students/S9",
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"record not found"}`,
		},
		{
			name:     "update",
			method:   http.MethodPut,
			path:     "/v1/students/S1/",
			body:     `{"name":"Alice Smith","year":"3"}`,
			wantCode: http.StatusOK,
			wantBody: `{"stu_id":"S1","name":"Alice Smith","gender":"","major":"","year":"3"}`,
		},
		{name: "update: not found", method: http.MethodPut, path: "/v1/students/S9", body: `{"name":"X"}`, wantCode: http.StatusNotFound},
		{name: "list", method: http.MethodGet, path: "/v1/students", wantCode: http.StatusOK, wantBody: `[{"stu_id":"S1","name":"Alice Smith","gender":"","major":"","year":"3"}]`},
		{name: "grades", method: http.MethodGet, path: "/v1/students/S1/grades", wantCode: http.StatusOK, wantBody: `[]`},
		{name: "delete", method: http.MethodDelete, path: "/v1/students/S1", wantCode: http.StatusNoContent},
		{name: "delete: not found", method: http.MethodDelete, path: "/v1/students/S1", wantCode: http.StatusNotFound},
	})
}

func TestCourseAPI(t *testing.T) {
	srv := setup(t)

	runHTTPTests(t, srv, []httpTest{
		{
			name:     "create: no credit",
			method:   http.MethodPost,
			path:     "/v1/courses",
			body:     `{"course_id":"C1","course_name":"Algorithms"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"credit":"credit must be greater than 0"}`,
		},
		{
			name:     "create",
			method:   http.MethodPost,
			path:     "/v1/courses",
			body:     `{"course_id":" C1 ","course_name":"Algorithms","credit":3}`,
			wantCode: http.StatusCreated,
			wantBody: `{"course_id":"C1","course_name":"Algorithms","credit":3}`,
		},
		{
			name:     "update",
			method:   http.MethodPut,
			path:     "/v1/courses/C1",
			body:     `{"course_name":"Algorithms","credit":4.5}`,
			wantCode: http.StatusOK,
			wantBody: `{"course_id":"C1","course_name":"Algorithms","credit":4.5}`,
		},
		{name: "retrieve", method: http.MethodGet, path: "/v1/courses/C1", wantCode: http.StatusOK},
		{name: "grades", method: http.MethodGet, path: "/v1/courses/C1/grades", wantCode: http.StatusOK, wantBody: `[]`},
		{name: "delete", method: http.MethodDelete, path: "/v1/courses/C1", wantCode: http.StatusNoContent},
		{name: "list", method: http.MethodGet, path: "/v1/courses", wantCode: http.StatusOK, wantBody: `[]`},
	})
}

func TestGradeAPI(t *testing.T) {
	srv := setup(t)

	runHTTPTests(t, srv, []httpTest{
		{
			name:     "create: missing references",
			method:   http.MethodPost,
			path:     "/v1/grades",
			body:     `{"stu_id":"S1","course_id":"C1","score":85}`,
			wantCode: http.StatusUnprocessableEntity,
			wantBody: `{"error":"student ID or course ID does not exist"}`,
		},
		{name: "student", method: http.MethodPost, path: "/v1/students", body: `{"stu_id":"S1","name":"Alice"}`, wantCode: http.StatusCreated},
		{name: "course", method: http.MethodPost, path: "/v1/courses", body: `{"course_id":"C1","course_name":"Algorithms","credit":3}`, wantCode: http.StatusCreated},
		{name: "course 2", method: http.MethodPost, path: "/v1/courses", body: `{"course_id":"C0","course_name":"Basics","credit":1}`, wantCode: http.StatusCreated},
		{
			name:     "create",
			method:   http.MethodPost,
			path:     "/v1/grades",
			body:     `{"stu_id":"S1","course_id":"C1","score":85}`,
			wantCode: http.StatusCreated,
			wantBody: `{"stu_id":"S1","course_id":"C1","score":85}`,
		},
		{name: "create 2", method: http.MethodPost, path: "/v1/grades", body: `{"stu_id":"S1","course_id":"C0","score":70.5}`, wantCode: http.StatusCreated},
		{name: "create: duplicate", method: http.MethodPost, path: "/v1/grades", body: `{"stu_id":"S1","course_id":"C1","score":1}`, wantCode: http.StatusConflict},
		{
			name:     "update",
			method:   http.MethodPut,
			path:     "/v1/grades/S1/C1",
			body:     `{"score":90}`,
			wantCode: http.StatusOK,
			wantBody: `{"stu_id":"S1","course_id":"C1","score":90}`,
		},
		{name: "retrieve", method: http.MethodGet, path: "/v1/grades/S1/C1", wantCode: http.StatusOK, wantBody: `{"stu_id":"S1","course_id":"C1","score":90}`},
		{
			name:     "by student",
			method:   http.MethodGet,
			path:     "/v1/students/S1/grades",
			wantCode: http.StatusOK,
			wantBody: `[{"stu_id":"S1","course_id":"C0","score":70.5},{"stu_id":"S1","course_id":"C1","score":90}]`,
		},
		{name: "by course", method: http.MethodGet, path: "/v1/courses/C0/grades", wantCode: http.StatusOK, wantBody: `[{"stu_id":"S1","course_id":"C0","score":70.5}]`},
		{name: "delete", method: http.MethodDelete, path: "/v1/grades/S1/C1", wantCode: http.StatusNoContent},
		{name: "retrieve: not found", method: http.MethodGet, path: "/v1/grades/S1/C1", wantCode: http.StatusNotFound},
		{name: "delete student cascades", method: http.MethodDelete, path: "/v1/students/S1", wantCode: http.StatusNoContent},
		{name: "list", method: http.MethodGet, path: "/v1/grades", wantCode: http.StatusOK, wantBody: `[]`},
	})
}

func TestErrorBody(t *testing.T) {
	srv := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/nothing", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not Found", body["error"])
}
