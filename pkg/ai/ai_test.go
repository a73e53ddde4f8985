package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"resume-builder/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResume() model.ResumeData {
	return model.ResumeData{
		PersonalInfo: model.PersonalInfo{FullName: "Jane Doe", Title: "Backend Engineer"},
		Experiences: []model.Experience{
			{ID: "e1", Position: "Senior Engineer", Company: "Acme"},
			{ID: "e2", Position: "Engineer", Company: "Initech"},
		},
		Education: []model.Education{{ID: "d1", Degree: "BSc", Field: "Computer Science", Institution: "MIT"}},
		Skills: []model.Skill{
			{ID: "s1", Name: "Go", Level: 5}, {ID: "s2", Name: "SQL", Level: 4},
			{ID: "s3", Name: "Kubernetes", Level: 3}, {ID: "s4", Name: "gRPC", Level: 3},
			{ID: "s5", Name: "Rust", Level: 2},
		},
	}
}

func TestGenerateSummary(t *testing.T) {
	got := GenerateSummary(sampleResume())
	assert.Equal(t, "Jane Doe is a dedicated Backend Engineer with 4+ years of experience. "+
		"Most recently served as Senior Engineer at Acme. "+
		"Key expertise includes Go, SQL, Kubernetes, gRPC. "+
		"Holds a BSc in Computer Science from MIT. "+
		"Passionate about delivering high-quality results and driving innovation in every project undertaken.", got)
}

func TestGenerateSummaryEmpty(t *testing.T) {
	got := GenerateSummary(model.ResumeData{})
	assert.Equal(t, "A professional is a dedicated experienced professional. "+
		"Passionate about delivering high-quality results and driving innovation in every project undertaken.", got)
}

func TestGenerateSummarySkipsPartialEducation(t *testing.T) {
	d := model.ResumeData{Education: []model.Education{{ID: "d1", Degree: "BSc", Institution: "MIT"}}}
	assert.NotContains(t, GenerateSummary(d), "Holds a")
}

func TestExperienceDescriptionBuckets(t *testing.T) {
	tests := []struct {
		position string
		bucket   string
		contains string
	}{
		{"Software Engineer", "developer", "Developed and maintained scalable applications at Acme."},
		{"Engineering Manager", "developer", "Developed"},
		{"Team Lead", "manager", "Led and mentored a team of professionals at Acme."},
		{"UX Researcher", "designer", "Created compelling visual designs and user experiences at Acme."},
		{"Accountant", "default", "Led key initiatives and contributed to team success at Acme."},
	}
	for _, tt := range tests {
		t.Run(tt.position, func(t *testing.T) {
			assert.Equal(t, tt.bucket, RoleBucket(tt.position))
			got := GenerateExperienceDescription(tt.position, "Acme")
			assert.Contains(t, got, tt.contains)
			assert.Equal(t, 3, strings.Count(got, ". ")+1)
		})
	}
}

type fakeRemote struct {
	calls   atomic.Int32
	err     error
	summary string
}

func (f *fakeRemote) Summary(context.Context, model.ResumeData) (string, error) {
	f.calls.Add(1)
	return f.summary, f.err
}

func (f *fakeRemote) ExperienceDescription(context.Context, string, string) (string, error) {
	f.calls.Add(1)
	return "Remote bullet.", f.err
}

func TestGeneratorPrefersRemote(t *testing.T) {
	g := NewGenerator(&fakeRemote{summary: "From the service."}, zerolog.Nop())
	text, src := g.Summary(context.Background(), sampleResume())
	assert.Equal(t, "From the service.", text)
	assert.Equal(t, SourceRemote, src)

	text, src = g.ExperienceDescription(context.Background(), "Engineer", "Acme")
	assert.Equal(t, "Remote bullet.", text)
	assert.Equal(t, SourceRemote, src)
}

func TestGeneratorFallsBackAndTrips(t *testing.T) {
	remote := &fakeRemote{err: errors.New("unavailable")}
	g := NewGenerator(remote, zerolog.Nop())

	for i := 0; i < 5; i++ {
		text, src := g.Summary(context.Background(), sampleResume())
		assert.Equal(t, SourceLocal, src)
		assert.Equal(t, GenerateSummary(sampleResume()), text)
	}
	assert.Equal(t, int32(3), remote.calls.Load())
	assert.Equal(t, "open", g.BreakerState())
}

func TestGeneratorWithoutRemote(t *testing.T) {
	g := NewGenerator(nil, zerolog.Nop())
	_, src := g.ExperienceDescription(context.Background(), "Designer", "Acme")
	assert.Equal(t, SourceLocal, src)
}

func TestClientRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat", r.URL.Path)
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "auto", req["agent"])
		output := "Sure! ```json\n{\"bullets\": [\"- Built the billing platform serving millions of invoices\", \"Owned on-call for payments\"]}\n```"
		_ = json.NewEncoder(w).Encode(map[string]string{"agent": "auto", "output": output})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, zerolog.Nop())
	c.backoff = time.Millisecond

	got, err := c.ExperienceDescription(context.Background(), "Engineer", "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Built the billing platform serving millions of invoices. Owned on-call for payments.", got)
	assert.Equal(t, int32(3), hits.Load())
}

func TestClientGivesUpAfterAttempts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zerolog.Nop())
	c.backoff = time.Millisecond

	_, err := c.Summary(context.Background(), sampleResume())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, int32(3), hits.Load())
}
