package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/seek-sim/sim"
)

const (
	defaultAlgorithm   = sim.PolicyFCFS
	defaultOrdersLimit = 5

	maxScheduleBodyBytes = 1 << 20
)

// comparisonResponse maps each compared policy name to its schedule.
type comparisonResponse struct {
	DishName         string                         `json:"dishName,omitempty"`
	AlgorithmResults map[string]*sim.ScheduleResult `json:"algorithmResults"`
}

type healthResponse struct {
	Status    string   `json:"status"`
	GoVersion string   `json:"go_version"`
	Uptime    string   `json:"uptime"`
	Policies  []string `json:"policies"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Policies:  s.planner.Registry().Names(),
	})
}

func (s *Server) handleIngredients(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.fixtures.Warehouse())
}

func (s *Server) handleRandomRequests(w http.ResponseWriter, r *http.Request) {
	count, err := s.requestCount(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}
	reqs, err := s.generate(count)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, reqs)
}

// handleSchedule plans one policy. Requests come from ?requests=1,2,3 when
// present, otherwise ?count= of them are generated.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	algorithm := r.URL.Query().Get("algorithm")
	if algorithm == "" {
		algorithm = defaultAlgorithm
	}
	initial, err := queryInt(r, "initialPosition", 0)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}
	reqs, err := s.scheduleRequests(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	res, err := s.plan(algorithm, initial, reqs)
	if err != nil {
		respondPlanError(w, r, err)
		return
	}
	logrus.Debugf("%s from %d over %v: total=%d", res.AlgorithmName, initial, reqs, res.TotalDistance)
	respondJSON(w, http.StatusOK, res)
}

// handleScheduleBody plans one policy over a JSON array body such as [10,25,5].
// algorithm and initialPosition stay in the query string.
func (s *Server) handleScheduleBody(w http.ResponseWriter, r *http.Request) {
	algorithm := r.URL.Query().Get("algorithm")
	if algorithm == "" {
		algorithm = defaultAlgorithm
	}
	initial, err := queryInt(r, "initialPosition", 0)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}
	reqs, err := s.decodeRequests(w, r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	res, err := s.plan(algorithm, initial, reqs)
	if err != nil {
		respondPlanError(w, r, err)
		return
	}
	logrus.Debugf("%s from %d over %d posted requests: total=%d", res.AlgorithmName, initial, len(reqs), res.TotalDistance)
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleRecentOrders(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultOrdersLimit)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}
	if limit < 0 || limit > s.config.MaxListLimit {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter,
			fmt.Sprintf("limit must be in [0, %d], got %d", s.config.MaxListLimit, limit))
		return
	}
	respondJSON(w, http.StatusOK, s.fixtures.RecentOrders(limit))
}

// handleDishSchedule compares the policy set for one dish. The dish id only
// selects fixture data in DishRequestsFixture mode; in random mode it is
// validated as an integer and otherwise unused.
func (s *Server) handleDishSchedule(w http.ResponseWriter, r *http.Request) {
	dishID, err := strconv.Atoi(chi.URLParam(r, "dishID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, "dish id must be an integer")
		return
	}
	initial, err := queryInt(r, "initialPosition", 0)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	var resp comparisonResponse
	var reqs []int
	if s.config.DishRequests == DishRequestsFixture {
		dish, ok := s.fixtures.Dish(dishID)
		if !ok {
			respondError(w, r, http.StatusNotFound, codeNotFound, fmt.Sprintf("dish %d not found", dishID))
			return
		}
		resp.DishName = dish.Name
		reqs = dish.Positions()
	} else {
		reqs, err = s.generate(s.config.Requests.Count)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, codeInternal, err.Error())
			return
		}
	}

	resp.AlgorithmResults, err = s.planCompare(initial, reqs)
	if err != nil {
		respondPlanError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleOrderSchedule compares the policy set over the ingredient positions
// of an order's dish, with labeled step details.
func (s *Server) handleOrderSchedule(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, "order id must be an integer")
		return
	}
	initial, err := queryInt(r, "initialPosition", 0)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}
	order, ok := s.fixtures.Order(orderID)
	if !ok {
		respondError(w, r, http.StatusNotFound, codeNotFound, fmt.Sprintf("order %d not found", orderID))
		return
	}
	reqs := order.Dish.Positions()
	if len(reqs) == 0 {
		respondError(w, r, http.StatusBadRequest, codeInvalidParameter,
			fmt.Sprintf("dish %d (%s) has no ingredients", order.Dish.ID, order.Dish.Name))
		return
	}

	results, err := s.planCompare(initial, reqs)
	if err != nil {
		respondPlanError(w, r, err)
		return
	}
	warehouse := s.fixtures.Warehouse()
	for name, res := range results {
		res.StepDetails = res.Describe(s.fixtures.Label)
		res.WarehouseIngredients = warehouse
		logrus.WithFields(logrus.Fields{
			"order":  orderID,
			"policy": name,
			"total":  res.TotalDistance,
		}).Debug("order schedule")
	}
	respondJSON(w, http.StatusOK, comparisonResponse{DishName: order.Dish.Name, AlgorithmResults: results})
}

// requestCount reads ?count= within [0, MaxRequestCount].
func (s *Server) requestCount(r *http.Request) (int, error) {
	count, err := queryInt(r, "count", s.config.Requests.Count)
	if err != nil {
		return 0, err
	}
	if count < 0 || count > s.config.MaxRequestCount {
		return 0, fmt.Errorf("count must be in [0, %d], got %d", s.config.MaxRequestCount, count)
	}
	return count, nil
}

func (s *Server) scheduleRequests(r *http.Request) ([]int, error) {
	q := r.URL.Query()
	if !q.Has("requests") {
		count, err := s.requestCount(r)
		if err != nil {
			return nil, err
		}
		return s.generate(count)
	}
	reqs, err := parseIntList(q.Get("requests"))
	if err != nil {
		return nil, err
	}
	if len(reqs) > s.config.MaxRequestCount {
		return nil, fmt.Errorf("at most %d requests allowed, got %d", s.config.MaxRequestCount, len(reqs))
	}
	return reqs, nil
}

// decodeRequests reads a JSON array of track positions, at most MaxRequestCount long.
func (s *Server) decodeRequests(w http.ResponseWriter, r *http.Request) ([]int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxScheduleBodyBytes)
	var reqs []int
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&reqs); err != nil {
		return nil, fmt.Errorf("request body must be a JSON array of integers: %w", err)
	}
	if dec.More() {
		return nil, errors.New("request body must hold a single JSON array")
	}
	if reqs == nil {
		reqs = []int{}
	}
	if len(reqs) > s.config.MaxRequestCount {
		return nil, fmt.Errorf("at most %d requests allowed, got %d", s.config.MaxRequestCount, len(reqs))
	}
	return reqs, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

// parseIntList parses a comma-separated list; an empty string is an empty list.
func parseIntList(raw string) ([]int, error) {
	out := []int{}
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	for _, field := range strings.Split(raw, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("requests must be comma-separated integers, got %q", field)
		}
		out = append(out, v)
	}
	return out, nil
}
