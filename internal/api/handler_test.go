package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathwise/pathwise/internal/engine"
	"github.com/pathwise/pathwise/internal/optimizer"
	"github.com/pathwise/pathwise/internal/scenario"
	"github.com/pathwise/pathwise/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "pathwise.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	eng := engine.New(engine.Config{Logger: zerolog.Nop()})

	mux := http.NewServeMux()
	NewHandler(st, eng, zerolog.Nop()).RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func validParameters() scenario.Parameters {
	return scenario.Parameters{
		Years:             []int{2025, 2030, 2040},
		TargetReduction:   0.3,
		MaxAnnualChange:   0.1,
		VehicleTypes:      []string{"Passenger Cars"},
		EnableConstraints: true,
	}
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createScenario(t *testing.T, srv *httptest.Server) scenario.Scenario {
	t.Helper()
	resp := postJSON(t, srv.URL+"/api/v1/scenarios", scenarioRequest{
		Name:       "api test",
		Parameters: validParameters(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[scenario.Scenario](t, resp)
}

func TestScenarioLifecycle(t *testing.T) {
	srv := newTestServer(t)

	created := createScenario(t, srv)
	require.NotEmpty(t, created.ID)

	resp, err := http.Get(srv.URL + "/api/v1/scenarios/" + created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[scenario.Scenario](t, resp)
	assert.Equal(t, created.Parameters, got.Parameters)

	resp, err = http.Get(srv.URL + "/api/v1/scenarios")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summaries := decodeBody[[]scenario.Summary](t, resp)
	require.Len(t, summaries, 1)
	assert.Equal(t, created.ID, summaries[0].ID)
	assert.True(t, summaries[0].Validation.Valid)

	update := scenarioRequest{Name: "api test v2", Parameters: validParameters()}
	update.Parameters.TargetReduction = 0.5
	req, err := http.NewRequest(http.MethodPut,
		srv.URL+"/api/v1/scenarios/"+created.ID, bytes.NewReader(mustMarshal(t, update)))
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[scenario.Scenario](t, resp)
	assert.Equal(t, "api test v2", updated.Name)
	assert.InDelta(t, 0.5, updated.Parameters.TargetReduction, 1e-12)

	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/scenarios/"+created.ID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/v1/scenarios/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestCreateScenarioDefaultsConstraintsOn(t *testing.T) {
	srv := newTestServer(t)

	// Payload built as a raw map so the enable_constraints key is
	// genuinely absent, not serialized as false.
	resp := postJSON(t, srv.URL+"/api/v1/scenarios", map[string]any{
		"name": "defaulted",
		"parameters": map[string]any{
			"years":             []int{2025, 2030, 2040},
			"target_reduction":  0.3,
			"max_annual_change": 0.1,
			"vehicle_types":     []string{"Passenger Cars"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[scenario.Scenario](t, resp)
	assert.True(t, created.Parameters.EnableConstraints,
		"omitted enable_constraints must default to true")

	resp = postJSON(t, srv.URL+"/api/v1/scenarios", map[string]any{
		"name": "explicit off",
		"parameters": map[string]any{
			"years":              []int{2025, 2030, 2040},
			"target_reduction":   0.3,
			"max_annual_change":  0.1,
			"vehicle_types":      []string{"Passenger Cars"},
			"enable_constraints": false,
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created = decodeBody[scenario.Scenario](t, resp)
	assert.False(t, created.Parameters.EnableConstraints,
		"an explicit false must survive the boundary default")
}

func TestCreateScenarioRejectsInvalidParameters(t *testing.T) {
	srv := newTestServer(t)

	params := validParameters()
	params.MaxAnnualChange = 0.5
	resp := postJSON(t, srv.URL+"/api/v1/scenarios", scenarioRequest{
		Name:       "bad",
		Parameters: params,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	failure := decodeBody[validationFailure](t, resp)
	assert.False(t, failure.Validation.Valid)
	assert.Contains(t, failure.Validation.Errors, "maximum annual change must be between 0.05 and 0.3")
}

func TestCreateScenarioRequiresName(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/scenarios", scenarioRequest{Parameters: validParameters()})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestValidateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/scenarios/validate", validParameters())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decodeBody[scenario.Validation](t, resp)
	assert.True(t, v.Valid)
	assert.Empty(t, v.Errors)

	bad := validParameters()
	bad.Years = []int{2030}
	resp = postJSON(t, srv.URL+"/api/v1/scenarios/validate", bad)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v = decodeBody[scenario.Validation](t, resp)
	assert.False(t, v.Valid)
}

func TestOptimizeEndpoint(t *testing.T) {
	srv := newTestServer(t)
	created := createScenario(t, srv)

	resp := postJSON(t, srv.URL+"/api/v1/scenarios/"+created.ID+"/optimize", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody[optimizer.Result](t, resp)
	assert.True(t, result.Success)
	assert.Equal(t, created.Parameters.Years, result.Years)
	require.NotNil(t, result.Details)
	assert.Len(t, result.Details.EmissionsByYear, len(created.Parameters.Years))
}

func TestCalculateAndFetchResult(t *testing.T) {
	srv := newTestServer(t)
	created := createScenario(t, srv)

	resp := postJSON(t, srv.URL+"/api/v1/scenarios/"+created.ID+"/calculate", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	calculated := decodeBody[engine.ScenarioResult](t, resp)
	assert.Equal(t, created.ID, calculated.ScenarioID)
	assert.Len(t, calculated.PerYearResults, len(created.Parameters.Years))

	resp, err := http.Get(srv.URL + "/api/v1/results/" + created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cached := decodeBody[engine.ScenarioResult](t, resp)
	assert.Equal(t, calculated.ScenarioID, cached.ScenarioID)
}

func TestGetResultMissing(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/results/sc-unknown")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAnalysisOnMissingScenario(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/optimize", "/calculate"} {
		resp := postJSON(t, srv.URL+"/api/v1/scenarios/sc-unknown"+path, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	}
}

func TestCatalogEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/catalog")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	index := decodeBody[map[string][]string](t, resp)
	assert.Contains(t, index["categories"], "Passenger Cars")

	resp, err = http.Get(srv.URL + "/api/v1/catalog/Passenger Cars")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	category := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "Passenger Cars", category["category"])
	assert.NotEmpty(t, category["technologies"])

	resp, err = http.Get(srv.URL + "/api/v1/catalog/Hovercraft")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return payload
}
