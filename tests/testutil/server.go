package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/nhle/habit-grid/internal/model"
)

// Server is an in-memory fake of the habit API used by client and
// session tests. It implements the exact resource paths of the real
// backend, including the dates/date and userall/user casing asymmetry,
// and is closed automatically when the test completes.
type Server struct {
	t    *testing.T
	http *httptest.Server

	mu     sync.Mutex
	users  []model.User
	habits []model.Habit
	dates  []model.DateRecord
	nextID int

	failStatus int

	// LastContentType and LastRequestID record headers of the most
	// recent request for header-contract assertions.
	LastContentType string
	LastRequestID   string
}

// NewServer starts a fake habit API server.
func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{t: t, nextID: 1}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/userall/", s.listUsers)
	mux.HandleFunc("POST /v1/userall/", s.createUser)
	mux.HandleFunc("GET /v1/user/{id}/", s.getUser)
	mux.HandleFunc("PUT /v1/user/{id}/", s.updateUser)
	mux.HandleFunc("DELETE /v1/user/{id}/", s.deleteUser)

	mux.HandleFunc("GET /v1/habits/", s.listHabits)
	mux.HandleFunc("POST /v1/habits/", s.createHabit)
	mux.HandleFunc("GET /v1/habits/{id}/", s.getHabit)
	mux.HandleFunc("PUT /v1/habits/{id}/", s.updateHabit)
	mux.HandleFunc("DELETE /v1/habits/{id}/", s.deleteHabit)

	mux.HandleFunc("GET /v1/dates/", s.listDates)
	mux.HandleFunc("POST /v1/dates/", s.createDate)
	mux.HandleFunc("GET /v1/date/{id}/", s.getDate)
	mux.HandleFunc("PUT /v1/date/{id}/", s.updateDate)
	mux.HandleFunc("DELETE /v1/date/{id}/", s.deleteDate)

	s.http = httptest.NewServer(s.record(s.failable(mux)))
	t.Cleanup(s.http.Close)

	return s
}

// URL returns the base URL clients should be pointed at.
func (s *Server) URL() string {
	return s.http.URL
}

// Close shuts the server down early, for simulating network failure.
func (s *Server) Close() {
	s.http.Close()
}

// FailWith makes every subsequent request fail with the given status.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

// Recover clears a FailWith condition.
func (s *Server) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = 0
}

// SeedUser adds a user, assigning an ID when none is set.
func (s *Server) SeedUser(u model.User) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.allocID()
	}
	s.users = append(s.users, u)
	return u
}

// SeedHabit adds a habit, assigning an ID when none is set.
func (s *Server) SeedHabit(h model.Habit) model.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.ID == 0 {
		h.ID = s.allocID()
	}
	s.habits = append(s.habits, h)
	return h
}

// SeedDate adds a completion record, assigning an ID when none is set.
func (s *Server) SeedDate(r model.DateRecord) model.DateRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.allocID()
	}
	s.dates = append(s.dates, r)
	return r
}

// Users returns a snapshot of the stored users.
func (s *Server) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.User(nil), s.users...)
}

// Habits returns a snapshot of the stored habits.
func (s *Server) Habits() []model.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Habit(nil), s.habits...)
}

// Dates returns a snapshot of the stored completion records.
func (s *Server) Dates() []model.DateRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.DateRecord(nil), s.dates...)
}

// allocID hands out the next server-assigned ID. Caller holds the lock.
func (s *Server) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

// record captures request headers for assertions.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.LastContentType = r.Header.Get("Content-Type")
		s.LastRequestID = r.Header.Get("X-Request-ID")
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// failable short-circuits every request while a FailWith is active.
func (s *Server) failable(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status := s.failStatus
		s.mu.Unlock()
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.t.Errorf("encoding response: %v", err)
	}
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	return id, err == nil
}

// --- Users ---

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := append([]model.User{}, s.users...)
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, users)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var u model.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	u.ID = s.allocID()
	s.users = append(s.users, u)
	s.mu.Unlock()
	s.writeJSON(w, http.StatusCreated, u)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			s.writeJSON(w, http.StatusOK, u)
			return
		}
	}
	http.NotFound(w, r)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var u model.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	u.ID = id
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = u
			s.writeJSON(w, http.StatusOK, u)
			return
		}
	}
	http.NotFound(w, r)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.NotFound(w, r)
}

// --- Habits ---

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	habits := append([]model.Habit{}, s.habits...)
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, habits)
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var h model.Habit
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	h.ID = s.allocID()
	s.habits = append(s.habits, h)
	s.mu.Unlock()
	s.writeJSON(w, http.StatusCreated, h)
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.habits {
		if h.ID == id {
			s.writeJSON(w, http.StatusOK, h)
			return
		}
	}
	http.NotFound(w, r)
}

func (s *Server) updateHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var h model.Habit
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.ID = id
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits[i] = h
			s.writeJSON(w, http.StatusOK, h)
			return
		}
	}
	http.NotFound(w, r)
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits = append(s.habits[:i], s.habits[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.NotFound(w, r)
}

// --- Dates ---

func (s *Server) listDates(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	dates := append([]model.DateRecord{}, s.dates...)
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, dates)
}

func (s *Server) createDate(w http.ResponseWriter, r *http.Request) {
	var rec model.DateRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	rec.ID = s.allocID()
	s.dates = append(s.dates, rec)
	s.mu.Unlock()
	s.writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) getDate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.dates {
		if rec.ID == id {
			s.writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	http.NotFound(w, r)
}

func (s *Server) updateDate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var rec model.DateRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec.ID = id
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.dates {
		if s.dates[i].ID == id {
			s.dates[i] = rec
			s.writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	http.NotFound(w, r)
}

func (s *Server) deleteDate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.dates {
		if s.dates[i].ID == id {
			s.dates = append(s.dates[:i], s.dates[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.NotFound(w, r)
}
