package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/seek-sim/sim"
)

func init() {
	logrus.SetOutput(io.Discard)
}

func testServer(t *testing.T, mutate func(*Config)) *Server {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	planner, err := sim.NewPlanner(sim.DefaultRegistry(), cfg.Policy)
	require.NoError(t, err)
	fx, err := NewFixtures(cfg.Fixtures)
	require.NoError(t, err)
	srv, err := New(cfg, planner, fx, WithSeed(42))
	require.NoError(t, err)
	return srv
}

func doGet(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body=%s", w.Body.String())
	return v
}

// scheduleResult mirrors the wire shape consumers depend on.
type scheduleResult struct {
	AlgorithmName  string   `json:"algorithmName"`
	ProcessedOrder []int    `json:"processedOrder"`
	StepDistances  []int    `json:"stepDistances"`
	TotalDistance  int      `json:"totalDistance"`
	StepDetails    []string `json:"stepDetails"`
}

func TestSchedule_SuppliedRequests(t *testing.T) {
	srv := testServer(t, nil)
	w := doGet(t, srv, "/api/schedule?algorithm=SSTF&initialPosition=50&requests=10,60,55,90,5")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	res := decode[scheduleResult](t, w)
	assert.Equal(t, "SSTF", res.AlgorithmName)
	assert.Equal(t, []int{55, 60, 90, 10, 5}, res.ProcessedOrder)
	assert.Equal(t, []int{5, 5, 30, 80, 5}, res.StepDistances)
	assert.Equal(t, 125, res.TotalDistance)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSchedule_WireFieldsOnly(t *testing.T) {
	srv := testServer(t, nil)
	w := doGet(t, srv, "/api/schedule?algorithm=FCFS&requests=1,2")
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"algorithmName", "processedOrder", "stepDistances", "totalDistance"}, keys)
}

func TestSchedule_EmptyRequestsEncodeAsEmptyArrays(t *testing.T) {
	srv := testServer(t, nil)
	w := doGet(t, srv, "/api/schedule?algorithm=SCAN&requests=")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"algorithmName":"SCAN","processedOrder":[],"stepDistances":[],"totalDistance":0}`, w.Body.String())
}

func TestSchedule_GeneratesRequestsByDefault(t *testing.T) {
	srv := testServer(t, nil)
	w := doGet(t, srv, "/api/schedule")
	require.Equal(t, http.StatusOK, w.Code)

	res := decode[scheduleResult](t, w)
	assert.Equal(t, "FCFS", res.AlgorithmName)
	assert.Len(t, res.ProcessedOrder, 6)
	for _, pos := range res.ProcessedOrder {
		assert.GreaterOrEqual(t, pos, 0)
		assert.LessOrEqual(t, pos, 100)
	}
}

func TestSchedule_Errors(t *testing.T) {
	srv := testServer(t, nil)
	tests := []struct {
		name     string
		path     string
		wantCode string
	}{
		{"unknown policy", "/api/schedule?algorithm=BOGUS&requests=1,2", codeUnknownPolicy},
		{"negative initial", "/api/schedule?initialPosition=-1&requests=1", codeInvalidPosition},
		{"negative request", "/api/schedule?requests=1,-2", codeInvalidPosition},
		{"non-integer initial", "/api/schedule?initialPosition=abc", codeInvalidParameter},
		{"malformed list", "/api/schedule?requests=1,x", codeInvalidParameter},
		{"count too large", "/api/schedule?count=100000", codeInvalidParameter},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doGet(t, srv, tc.path)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decode[errorResponse](t, w)
			assert.Equal(t, tc.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestSchedule_RecordsPlanMetrics(t *testing.T) {
	srv := testServer(t, nil)
	doGet(t, srv, "/api/schedule?algorithm=SSTF&requests=1,2")
	doGet(t, srv, "/api/schedule?algorithm=BOGUS&requests=1,2")

	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.plans.WithLabelValues("SSTF", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.plans.WithLabelValues("unknown", "unknown_policy")))

	w := doGet(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "seeksim_plans_total")
	assert.Contains(t, w.Body.String(), `route="/api/schedule"`)
}

func doPost(t *testing.T, srv *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestScheduleBody_PlansPostedRequests(t *testing.T) {
	// GIVEN the request list in a JSON body and the policy in the query
	srv := testServer(t, nil)

	// WHEN it is posted to /api/schedule
	w := doPost(t, srv, "/api/schedule?algorithm=SSTF&initialPosition=50", `[10,60,55,90,5]`)

	// THEN the schedule matches the GET form for the same requests
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[scheduleResult](t, w)
	assert.Equal(t, "SSTF", res.AlgorithmName)
	assert.Equal(t, []int{55, 60, 90, 10, 5}, res.ProcessedOrder)
	assert.Equal(t, 125, res.TotalDistance)
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.plans.WithLabelValues("SSTF", "ok")))
}

func TestScheduleBody_EmptyArray(t *testing.T) {
	srv := testServer(t, nil)
	w := doPost(t, srv, "/api/schedule?algorithm=LOOK", `[]`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"algorithmName":"LOOK","processedOrder":[],"stepDistances":[],"totalDistance":0}`, w.Body.String())
}

func TestScheduleBody_Errors(t *testing.T) {
	srv := testServer(t, func(c *Config) {
		c.MaxRequestCount = 3
		c.Requests.Count = 2
	})
	tests := []struct {
		name     string
		path     string
		body     string
		wantCode string
	}{
		{"unknown policy", "/api/schedule?algorithm=BOGUS", `[1,2]`, codeUnknownPolicy},
		{"negative request", "/api/schedule?algorithm=FCFS", `[1,-2]`, codeInvalidPosition},
		{"negative initial", "/api/schedule?initialPosition=-4", `[1]`, codeInvalidPosition},
		{"not an array", "/api/schedule", `{"requests":[1]}`, codeInvalidParameter},
		{"non-integer element", "/api/schedule", `[1,"x"]`, codeInvalidParameter},
		{"trailing data", "/api/schedule", `[1][2]`, codeInvalidParameter},
		{"empty body", "/api/schedule", ``, codeInvalidParameter},
		{"too many requests", "/api/schedule", `[1,2,3,4]`, codeInvalidParameter},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doPost(t, srv, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			body := decode[errorResponse](t, w)
			assert.Equal(t, tc.wantCode, body.Error.Code)
		})
	}
}

func TestWarehouseAliases(t *testing.T) {
	srv := testServer(t, nil)

	w := doGet(t, srv, "/api/warehouse")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[map[string]string](t, w), 10)

	w = doGet(t, srv, "/api/requests/random?count=4")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]int](t, w), 4)
}

func TestHTTPMetrics_UnmatchedPathsShareOneSeries(t *testing.T) {
	// GIVEN many requests to distinct paths that match no route
	srv := testServer(t, nil)
	for i := 0; i < 50; i++ {
		w := doGet(t, srv, fmt.Sprintf("/nope/%d", i))
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	// THEN they fold into a single route label
	assert.Equal(t, 1, testutil.CollectAndCount(srv.metrics.httpDuration))

	doGet(t, srv, "/healthz")
	assert.Equal(t, 2, testutil.CollectAndCount(srv.metrics.httpDuration))
}

func TestRandomRequests(t *testing.T) {
	srv := testServer(t, nil)
	w := doGet(t, srv, "/api/warehouse/random-requests?count=12")
	require.Equal(t, http.StatusOK, w.Code)
	reqs := decode[[]int](t, w)
	assert.Len(t, reqs, 12)

	w = doGet(t, srv, "/api/warehouse/random-requests?count=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRandomRequests_ReproducibleWithSeed(t *testing.T) {
	a := doGet(t, testServer(t, nil), "/api/warehouse/random-requests")
	b := doGet(t, testServer(t, nil), "/api/warehouse/random-requests")
	assert.Equal(t, a.Body.String(), b.Body.String())
}

func TestIngredients(t *testing.T) {
	srv := testServer(t, nil)
	w := doGet(t, srv, "/api/warehouse/ingredients")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]string](t, w)
	assert.Len(t, got, 10)
	assert.Equal(t, "Ingredient 1", got["0"])
	assert.Equal(t, "Ingredient 10", got["90"])
}

func TestRecentOrders(t *testing.T) {
	srv := testServer(t, nil)
	w := doGet(t, srv, "/order/recent?limit=3")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"orderId":1000,"orderName":"Order 1","dish":{"dishId":500,"dishName":"Dish 1"}},
		{"orderId":1001,"orderName":"Order 2","dish":{"dishId":501,"dishName":"Dish 2"}},
		{"orderId":1002,"orderName":"Order 3","dish":{"dishId":502,"dishName":"Dish 3"}}
	]`, w.Body.String())

	w = doGet(t, srv, "/order/recent?limit=1000")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecentOrders_EveryListedOrderSchedules(t *testing.T) {
	srv := testServer(t, nil)
	w := doGet(t, srv, "/order/recent?limit=12")
	require.Equal(t, http.StatusOK, w.Code)

	orders := decode[[]Order](t, w)
	require.Len(t, orders, 10)
	for _, o := range orders {
		w := doGet(t, srv, fmt.Sprintf("/api/order-scheduler/%d", o.ID))
		assert.Equal(t, http.StatusOK, w.Code, "order %d", o.ID)
	}
}

func TestDishSchedule_RandomMode(t *testing.T) {
	srv := testServer(t, nil)
	w := doGet(t, srv, "/api/order-scheduler/dish/999?initialPosition=20")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode[struct {
		DishName         string                    `json:"dishName"`
		AlgorithmResults map[string]scheduleResult `json:"algorithmResults"`
	}](t, w)
	assert.Empty(t, body.DishName)
	require.Len(t, body.AlgorithmResults, 3)

	// every policy sees the same request multiset
	fcfs := body.AlgorithmResults["FCFS"].ProcessedOrder
	for _, name := range []string{"SSTF", "SCAN"} {
		assert.ElementsMatch(t, fcfs, body.AlgorithmResults[name].ProcessedOrder, name)
	}
}

func TestDishSchedule_FixtureMode(t *testing.T) {
	srv := testServer(t, func(c *Config) {
		c.DishRequests = DishRequestsFixture
		c.Fixtures.Dishes = []Dish{{ID: 7, Name: "Soup", Ingredients: []Ingredient{
			{Name: "Salt", Position: 90}, {Name: "Leek", Position: 10},
		}}}
		c.Fixtures.Orders = []OrderFixture{{ID: 1, Name: "Lunch", DishID: 7}}
	})

	w := doGet(t, srv, "/api/order-scheduler/dish/7?initialPosition=50")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[comparisonResponse](t, w)
	assert.Equal(t, "Soup", body.DishName)
	assert.Equal(t, []int{90, 10}, body.AlgorithmResults["FCFS"].ProcessedOrder)

	// deterministic per dish
	again := doGet(t, srv, "/api/order-scheduler/dish/7?initialPosition=50")
	assert.Equal(t, w.Body.String(), again.Body.String())

	w = doGet(t, srv, "/api/order-scheduler/dish/8")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDishSchedule_BadID(t *testing.T) {
	srv := testServer(t, nil)
	w := doGet(t, srv, "/api/order-scheduler/dish/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderSchedule_LabelsSteps(t *testing.T) {
	srv := testServer(t, nil)
	// order 1000 -> dish 500 -> ingredients at 0, 30, 70
	w := doGet(t, srv, "/api/order-scheduler/1000?initialPosition=40")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		DishName         string `json:"dishName"`
		AlgorithmResults map[string]struct {
			scheduleResult
			WarehouseIngredients map[string]string `json:"warehouseIngredients"`
		} `json:"algorithmResults"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Dish 1", body.DishName)

	sstf := body.AlgorithmResults["SSTF"]
	assert.Equal(t, []int{30, 0, 70}, sstf.ProcessedOrder)
	assert.Equal(t, []string{
		"40 -> 30 (Ingredient 4) dist=10",
		"30 -> 0 (Ingredient 1) dist=30",
		"0 -> 70 (Ingredient 8) dist=70",
	}, sstf.StepDetails)
	assert.Len(t, sstf.WarehouseIngredients, 10)
}

func TestOrderSchedule_NotFound(t *testing.T) {
	srv := testServer(t, nil)
	w := doGet(t, srv, "/api/order-scheduler/42")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), codeNotFound))
}

func TestHealth(t *testing.T) {
	srv := testServer(t, nil)
	w := doGet(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[healthResponse](t, w)
	assert.Equal(t, "ok", body.Status)
	assert.Contains(t, body.Policies, "SSTF")
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	planner, err := sim.NewPlanner(sim.DefaultRegistry(), sim.PolicyConfig{})
	require.NoError(t, err)
	fx, err := NewFixtures(FixtureConfig{})
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.ComparePolicies = []string{"FCFS", "ELEVATOR"}
	_, err = New(cfg, planner, fx)
	assert.ErrorIs(t, err, sim.ErrUnknownPolicy)

	_, err = New(DefaultConfig(), nil, fx)
	assert.Error(t, err)
}
