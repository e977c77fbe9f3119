// Package studiotest provides an in-process implementation of the booking
// service HTTP contract. Tests mount its router directly (or behind
// httptest.NewServer) so client behavior is exercised against the same
// request shapes and status codes the real backend produces.
package studiotest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 24 * time.Hour

type user struct {
	id        int64
	email     string
	password  string
	firstName string
	lastName  string
	admin     bool
}

type teacherRecord struct {
	id        int64
	lastName  string
	firstName string
	createdAt time.Time
	updatedAt time.Time
}

type sessionRecord struct {
	id          int64
	name        string
	description string
	date        string
	teacherID   int64
	users       []int64 // roster, insertion order
	createdAt   time.Time
	updatedAt   time.Time
}

// Server is an in-memory booking backend. The zero value is not usable;
// create one with NewServer and register routes with MountHandlers.
//
// StrictJoin and StrictLeave switch the participate routes from the lenient
// no-op behavior to the rejecting one: a duplicate join and a leave for a
// non-member are answered with 400 the way the reference backend does.
// LegacyLeave makes the non-member rejection a 404 like older deployments.
type Server struct {
	Router      *chi.Mux
	StrictJoin  bool
	StrictLeave bool
	LegacyLeave bool

	signingKey []byte
	requests   atomic.Int64

	mu            sync.Mutex
	users         map[int64]*user
	teachers      map[int64]*teacherRecord
	sessions      map[int64]*sessionRecord
	nextUserID    int64
	nextTeacherID int64
	nextSessionID int64
}

// NewServer creates a Server with an empty user and session table.
func NewServer() *Server {
	s := &Server{
		Router:     chi.NewRouter(),
		signingKey: []byte("studiotest-signing-key"),
		users:      make(map[int64]*user),
		teachers:   make(map[int64]*teacherRecord),
		sessions:   make(map[int64]*sessionRecord),
	}
	return s
}

// MountHandlers registers the booking service routes on the router.
func (s *Server) MountHandlers() {
	s.Router.Use(s.countRequests)

	s.Router.Post("/auth/login", s.handleLogin)
	s.Router.Post("/auth/register", s.handleRegister)

	s.Router.Route("/session", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/", s.handleList)
		r.With(s.requireAdmin).Post("/", s.handleCreate)
		r.Get("/{id}", s.handleDetail)
		r.With(s.requireAdmin).Put("/{id}", s.handleUpdate)
		r.With(s.requireAdmin).Delete("/{id}", s.handleDelete)
		r.Post("/{id}/participate/{userId}", s.handleJoin)
		r.Delete("/{id}/participate/{userId}", s.handleLeave)
	})

	s.Router.Route("/teacher", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/", s.handleTeacherList)
		r.Get("/{id}", s.handleTeacherDetail)
	})

	s.Router.Route("/user", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/{id}", s.handleUserDetail)
		r.Delete("/{id}", s.handleUserDelete)
	})
}

// SeedUser adds a user to the backing table and returns its id.
func (s *Server) SeedUser(email, password, firstName, lastName string, admin bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	u := &user{
		id:        s.nextUserID,
		email:     email,
		password:  password,
		firstName: firstName,
		lastName:  lastName,
		admin:     admin,
	}
	s.users[u.id] = u
	return u.id
}

// SeedTeacher adds a teacher to the backing table and returns its id.
func (s *Server) SeedTeacher(lastName, firstName string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTeacherID++
	now := time.Now().UTC()
	rec := &teacherRecord{
		id:        s.nextTeacherID,
		lastName:  lastName,
		firstName: firstName,
		createdAt: now,
		updatedAt: now,
	}
	s.teachers[rec.id] = rec
	return rec.id
}

// SeedSession adds a session to the backing table and returns its id.
func (s *Server) SeedSession(name, description, date string, teacherID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSessionID++
	now := time.Now().UTC()
	rec := &sessionRecord{
		id:          s.nextSessionID,
		name:        name,
		description: description,
		date:        date,
		teacherID:   teacherID,
		users:       []int64{},
		createdAt:   now,
		updatedAt:   now,
	}
	s.sessions[rec.id] = rec
	return rec.id
}

// RequestCount returns the number of HTTP requests the server has received.
// Tests use it to assert that validation failures never reach the backend.
func (s *Server) RequestCount() int64 {
	return s.requests.Load()
}

// Roster returns a copy of the roster for the given session id.
func (s *Server) Roster(sessionID int64) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]int64, len(rec.users))
	copy(out, rec.users)
	return out
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

type tokenClaims struct {
	UserID int64 `json:"uid"`
	Admin  bool  `json:"admin"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(u *user) (string, error) {
	claims := tokenClaims{
		UserID: u.id,
		Admin:  u.admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

func (s *Server) parseToken(r *http.Request) (*tokenClaims, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		return nil, false
	}
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(auth[len(prefix):], claims, func(t *jwt.Token) (any, error) {
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}

type ctxKey int

const claimsKey ctxKey = 0

func contextWithClaims(ctx context.Context, c *tokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func claimsFromContext(ctx context.Context) (*tokenClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*tokenClaims)
	return c, ok
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.parseToken(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Full authentication is required to access this resource")
			return
		}
		ctx := contextWithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r.Context())
		if !ok || !claims.Admin {
			writeMessage(w, http.StatusForbidden, "Access is denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	var found *user
	for _, u := range s.users {
		if u.email == req.Email {
			found = u
			break
		}
	}
	s.mu.Unlock()

	if found == nil || found.password != req.Password {
		writeMessage(w, http.StatusUnauthorized, "Bad credentials")
		return
	}

	token, err := s.issueToken(found)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "token generation failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":     token,
		"type":      "Bearer",
		"id":        found.id,
		"username":  found.email,
		"firstName": found.firstName,
		"lastName":  found.lastName,
		"admin":     found.admin,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Error: email and password are required!")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.email == req.Email {
			writeMessage(w, http.StatusBadRequest, "Error: Email is already taken!")
			return
		}
	}
	s.nextUserID++
	s.users[s.nextUserID] = &user{
		id:        s.nextUserID,
		email:     req.Email,
		password:  req.Password,
		firstName: req.FirstName,
		lastName:  req.LastName,
	}
	writeMessage(w, http.StatusOK, "User registered successfully!")
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]map[string]any, 0, len(s.sessions))
	for id := int64(1); id <= s.nextSessionID; id++ {
		if rec, ok := s.sessions[id]; ok {
			out = append(out, sessionDTO(rec))
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	rec, found := s.sessions[id]
	var dto map[string]any
	if found {
		dto = sessionDTO(rec)
	}
	s.mu.Unlock()
	if !found {
		writeMessage(w, http.StatusNotFound, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

type sessionPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	TeacherID   int64  `json:"teacher_id"`
}

func (p sessionPayload) valid() bool {
	return p.Name != "" && p.Description != "" && p.Date != "" && p.TeacherID != 0
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req sessionPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		writeMessage(w, http.StatusBadRequest, "invalid session")
		return
	}

	s.mu.Lock()
	s.nextSessionID++
	now := time.Now().UTC()
	rec := &sessionRecord{
		id:          s.nextSessionID,
		name:        req.Name,
		description: req.Description,
		date:        req.Date,
		teacherID:   req.TeacherID,
		users:       []int64{},
		createdAt:   now,
		updatedAt:   now,
	}
	s.sessions[rec.id] = rec
	dto := sessionDTO(rec)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, dto)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req sessionPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.valid() {
		writeMessage(w, http.StatusBadRequest, "invalid session")
		return
	}

	s.mu.Lock()
	rec, found := s.sessions[id]
	var dto map[string]any
	if found {
		rec.name = req.Name
		rec.description = req.Description
		rec.date = req.Date
		rec.teacherID = req.TeacherID
		rec.updatedAt = time.Now().UTC()
		dto = sessionDTO(rec)
	}
	s.mu.Unlock()

	if !found {
		writeMessage(w, http.StatusNotFound, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	_, found := s.sessions[id]
	if found {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !found {
		writeMessage(w, http.StatusNotFound, "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.sessions[id]
	if !found {
		writeMessage(w, http.StatusNotFound, "Session not found")
		return
	}
	for _, u := range rec.users {
		if u == userID {
			if s.StrictJoin {
				writeMessage(w, http.StatusBadRequest, "Error adding participant")
				return
			}
			// lenient mode accepts the repeat silently; the roster stays a set
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	rec.users = append(rec.users, userID)
	rec.updatedAt = time.Now().UTC()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.sessions[id]
	if !found {
		writeMessage(w, http.StatusNotFound, "Session not found")
		return
	}
	for i, u := range rec.users {
		if u == userID {
			rec.users = append(rec.users[:i], rec.users[i+1:]...)
			rec.updatedAt = time.Now().UTC()
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	if s.LegacyLeave {
		writeMessage(w, http.StatusNotFound, "User is not a participant")
		return
	}
	if s.StrictLeave {
		writeMessage(w, http.StatusBadRequest, "Error removing participant")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleTeacherList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]map[string]any, 0, len(s.teachers))
	for id := int64(1); id <= s.nextTeacherID; id++ {
		if rec, ok := s.teachers[id]; ok {
			out = append(out, teacherDTO(rec))
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTeacherDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	rec, found := s.teachers[id]
	var dto map[string]any
	if found {
		dto = teacherDTO(rec)
	}
	s.mu.Unlock()
	if !found {
		writeMessage(w, http.StatusNotFound, "Teacher not found")
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleUserDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	u, found := s.users[id]
	var dto map[string]any
	if found {
		dto = userDTO(u)
	}
	s.mu.Unlock()
	if !found {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	claims, _ := claimsFromContext(r.Context())
	if claims == nil || claims.UserID != id {
		// accounts can only be deleted by their owner
		writeMessage(w, http.StatusUnauthorized, "Access is denied")
		return
	}
	s.mu.Lock()
	_, found := s.users[id]
	if found {
		delete(s.users, id)
	}
	s.mu.Unlock()
	if !found {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func teacherDTO(rec *teacherRecord) map[string]any {
	return map[string]any{
		"id":        rec.id,
		"lastName":  rec.lastName,
		"firstName": rec.firstName,
		"createdAt": rec.createdAt.Format(time.RFC3339Nano),
		"updatedAt": rec.updatedAt.Format(time.RFC3339Nano),
	}
}

func userDTO(u *user) map[string]any {
	return map[string]any{
		"id":        u.id,
		"email":     u.email,
		"lastName":  u.lastName,
		"firstName": u.firstName,
		"admin":     u.admin,
	}
}

func sessionDTO(rec *sessionRecord) map[string]any {
	users := make([]int64, len(rec.users))
	copy(users, rec.users)
	return map[string]any{
		"id":          rec.id,
		"name":        rec.name,
		"description": rec.description,
		"date":        rec.date,
		"teacher_id":  rec.teacherID,
		"users":       users,
		"createdAt":   rec.createdAt.Format(time.RFC3339Nano),
		"updatedAt":   rec.updatedAt.Format(time.RFC3339Nano),
	}
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid id format")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
