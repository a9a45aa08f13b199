package riskapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskboard/pkg/domain/model"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
	"github.com/secmon-lab/riskboard/pkg/service/riskapi"
)

const studentsBody = `[
	{"student_id": "S001", "student_name": "Asha", "mentor_name": "Dr. Rao", "cgpa": 6.2, "attendance": 58,
	 "Fees_Amount_Due": 45000, "financial_risk": 3, "attendance_risk": 7, "internals_risk": 6, "cgpa_risk": 4,
	 "final_risk_score": 4.75, "risk_category": "Medium Risk"},
	{"student_id": 2, "student_name": "Kiran", "mentor_name": "Dr. Iyer", "cgpa": 5.1, "attendance": 44,
	 "Fees_Amount_Due": 92000, "financial_risk": 10, "attendance_risk": 9, "internals_risk": 6, "cgpa_risk": 6,
	 "final_risk_score": 8.9, "risk_category": "High Risk"},
	{"student_id": "S003", "student_name": "", "risk_category": "Low Risk"}
]`

func newBackend(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range routes {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func jsonBody(body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"http", "http://localhost:5001", false},
		{"https with path", "https://risk.example.com/backend", false},
		{"empty", "", true},
		{"no scheme", "localhost:5001", true},
		{"ftp", "ftp://example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := riskapi.New(tt.baseURL)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, c).NotNil()
		})
	}
}

func TestClient_Statistics(t *testing.T) {
	srv := newBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		riskapi.EndpointStatistics: jsonBody(`{"total": 10, "high_risk": 3, "medium_risk": 4, "low_risk": 3}`),
	})

	c, err := riskapi.New(srv.URL)
	gt.NoError(t, err).Required()

	stats, err := c.Statistics(context.Background())
	gt.NoError(t, err).Required()
	gt.V(t, *stats).Equal(model.Statistics{Total: 10, High: 3, Medium: 4, Low: 3})
}

func TestClient_MentorStats(t *testing.T) {
	srv := newBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		riskapi.EndpointMentorStats: jsonBody(`[
			{"mentor_name": "Dr. Rao", "Total Students": 5, "High Risk": 1, "Medium Risk": 2, "Low Risk": 2}
		]`),
	})

	c, err := riskapi.New(srv.URL)
	gt.NoError(t, err).Required()

	workloads, err := c.MentorStats(context.Background())
	gt.NoError(t, err).Required()
	gt.A(t, workloads).Length(1)
	gt.V(t, *workloads[0]).Equal(model.MentorWorkload{MentorName: "Dr. Rao", Total: 5, High: 1, Medium: 2, Low: 2})
}

func TestClient_MentorStats_NullRows(t *testing.T) {
	srv := newBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		riskapi.EndpointMentorStats: jsonBody(`[
			null,
			{"mentor_name": "Dr. Iyer", "Total Students": 2, "High Risk": 2, "Medium Risk": 0, "Low Risk": 0},
			null
		]`),
	})

	c, err := riskapi.New(srv.URL)
	gt.NoError(t, err).Required()

	workloads, err := c.MentorStats(context.Background())
	gt.NoError(t, err).Required()
	gt.A(t, workloads).Length(1)
	gt.V(t, workloads[0].MentorName).Equal("Dr. Iyer")

	t.Run("only null rows", func(t *testing.T) {
		srv := newBackend(t, map[string]func(http.ResponseWriter, *http.Request){
			riskapi.EndpointMentorStats: jsonBody(`[null]`),
		})
		c, err := riskapi.New(srv.URL)
		gt.NoError(t, err).Required()

		workloads, err := c.MentorStats(context.Background())
		gt.NoError(t, err).Required()
		gt.A(t, workloads).Length(0)
	})
}

func TestWithTimeout(t *testing.T) {
	t.Run("does not modify the supplied client", func(t *testing.T) {
		shared := &http.Client{}
		c, err := riskapi.New("http://localhost:5001",
			riskapi.WithHTTPClient(shared),
			riskapi.WithTimeout(3*time.Second),
		)
		gt.NoError(t, err).Required()

		gt.V(t, shared.Timeout).Equal(time.Duration(0))
		gt.V(t, c.HTTPClient().Timeout).Equal(3 * time.Second)
		gt.B(t, c.HTTPClient() != shared).True()
	})

	t.Run("applies regardless of option order", func(t *testing.T) {
		shared := &http.Client{}
		c, err := riskapi.New("http://localhost:5001",
			riskapi.WithTimeout(3*time.Second),
			riskapi.WithHTTPClient(shared),
		)
		gt.NoError(t, err).Required()

		gt.V(t, c.HTTPClient().Timeout).Equal(3 * time.Second)
		gt.V(t, shared.Timeout).Equal(time.Duration(0))
	})

	t.Run("zero keeps requests unbounded", func(t *testing.T) {
		c, err := riskapi.New("http://localhost:5001", riskapi.WithTimeout(0))
		gt.NoError(t, err).Required()
		gt.V(t, c.HTTPClient().Timeout).Equal(time.Duration(0))
	})

	t.Run("slow backend fails the call", func(t *testing.T) {
		release := make(chan struct{})
		srv := newBackend(t, map[string]func(http.ResponseWriter, *http.Request){
			riskapi.EndpointStatistics: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-release:
				case <-r.Context().Done():
				}
			},
		})
		t.Cleanup(func() { close(release) })

		c, err := riskapi.New(srv.URL, riskapi.WithTimeout(50*time.Millisecond))
		gt.NoError(t, err).Required()

		_, err = c.Statistics(context.Background())
		gt.Error(t, err)
	})
}

func TestClient_Students(t *testing.T) {
	var gotCookie string
	srv := newBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		riskapi.EndpointStudents: func(w http.ResponseWriter, r *http.Request) {
			gotCookie = r.Header.Get("Cookie")
			jsonBody(studentsBody)(w, r)
		},
		riskapi.EndpointMentorStudents: jsonBody(`[]`),
	})

	t.Run("admin reads all students and skips invalid records", func(t *testing.T) {
		c, err := riskapi.New(srv.URL, riskapi.WithCookie("session=abc"))
		gt.NoError(t, err).Required()

		students, err := c.Students(context.Background(), types.RoleAdmin)
		gt.NoError(t, err).Required()
		gt.A(t, students).Length(2)
		gt.V(t, students[1].ID).Equal(model.StudentID("2"))
		gt.S(t, gotCookie).Equal("session=abc")
	})

	t.Run("mentor reads mentor endpoint", func(t *testing.T) {
		c, err := riskapi.New(srv.URL)
		gt.NoError(t, err).Required()

		students, err := c.Students(context.Background(), types.RoleMentor)
		gt.NoError(t, err).Required()
		gt.A(t, students).Length(0)
	})
}

func TestClient_Errors(t *testing.T) {
	srv := newBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		riskapi.EndpointStatistics: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error": "Unauthorized access"}`))
		},
		riskapi.EndpointStudents: jsonBody(`<html>not json</html>`),
	})

	c, err := riskapi.New(srv.URL)
	gt.NoError(t, err).Required()

	t.Run("non-2xx status", func(t *testing.T) {
		_, err := c.Statistics(context.Background())
		gt.Error(t, err).Required()
		gt.B(t, errors.Is(err, riskapi.ErrUnexpectedStatus)).True()
	})

	t.Run("undecodable body", func(t *testing.T) {
		_, err := c.Students(context.Background(), types.RoleAdmin)
		gt.Error(t, err).Required()
		gt.B(t, errors.Is(err, riskapi.ErrDecodeResponse)).True()
	})

	t.Run("unreachable backend", func(t *testing.T) {
		dead, err := riskapi.New("http://127.0.0.1:1")
		gt.NoError(t, err).Required()

		_, err = dead.MentorStats(context.Background())
		gt.Error(t, err)
	})
}
