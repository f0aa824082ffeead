package server

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Riddhi-crypto/Rooha/internal/models"
)

// sqliteTimeLayout matches the timestamp format the real backend stores.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// stubUser is an in-memory account registered against the stub.
type stubUser struct {
	username string
	password string
}

// stubSession is an in-memory analysis session.
type stubSession struct {
	id         int
	emotion    models.EmotionTag
	mood       string
	confidence float64
	inputText  string
	inputType  string
	createdAt  time.Time
	rating     int
}

// StubHandler serves the emotion detection API with canned responses and
// in-memory state. Implements the [Handler] interface.
type StubHandler struct {
	mu       sync.Mutex
	users    map[string]stubUser // keyed by email
	cookies  map[string]string   // session token -> email
	sessions []*stubSession
	nextID   int
}

// NewStubHandler creates a stub backend with one seeded account
// (demo@rooha.dev / demo).
func NewStubHandler() *StubHandler {
	return &StubHandler{
		users: map[string]stubUser{
			"demo@rooha.dev": {username: "demo", password: "demo"},
		},
		cookies: map[string]string{},
		nextID:  1,
	}
}

// Routes returns the method and path patterns this handler serves.
func (h *StubHandler) Routes() []Route {
	return []Route{
		{http.MethodPost, "/api/analyze/text"},
		{http.MethodPost, "/api/analyze/face"},
		{http.MethodPost, "/api/feedback"},
		{http.MethodGet, "/api/stats"},
		{http.MethodGet, "/api/history"},
		{http.MethodGet, "/api/auth/status"},
		{http.MethodPost, "/api/auth/login"},
		{http.MethodPost, "/api/auth/register"},
		{http.MethodPost, "/api/auth/logout"},
	}
}

// ServeHTTP dispatches to the endpoint implementations.
func (h *StubHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	switch req.URL.Path {
	case "/api/analyze/text":
		h.analyzeText(w, req)
	case "/api/analyze/face":
		h.analyzeFace(w, req)
	case "/api/feedback":
		h.feedback(w, req)
	case "/api/stats":
		h.stats(w, req)
	case "/api/history":
		h.history(w, req)
	case "/api/auth/status":
		h.authStatus(w, req)
	case "/api/auth/login":
		h.login(w, req)
	case "/api/auth/register":
		h.register(w, req)
	case "/api/auth/logout":
		h.logout(w, req)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (h *StubHandler) analyzeText(w http.ResponseWriter, req *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil || strings.TrimSpace(payload.Text) == "" {
		writeError(w, http.StatusBadRequest, "No text provided")
		return
	}

	// Deterministic pick so repeated input yields repeated results.
	emotion := pickEmotion(payload.Text)
	h.respondAnalysis(w, emotion, payload.Text, "text")
}

func (h *StubHandler) analyzeFace(w http.ResponseWriter, req *http.Request) {
	var payload struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil || payload.Image == "" {
		writeError(w, http.StatusBadRequest, "No image provided")
		return
	}
	if !strings.HasPrefix(payload.Image, "data:image/") {
		writeError(w, http.StatusBadRequest, "Invalid image data")
		return
	}

	h.respondAnalysis(w, pickEmotion(payload.Image), "", "face")
}

func (h *StubHandler) respondAnalysis(w http.ResponseWriter, emotion models.EmotionTag, inputText, inputType string) {
	h.mu.Lock()
	session := &stubSession{
		id:         h.nextID,
		emotion:    emotion,
		mood:       stubMoods[emotion],
		confidence: 0.87,
		inputText:  inputText,
		inputType:  inputType,
		createdAt:  time.Now(),
	}
	h.nextID++
	h.sessions = append(h.sessions, session)
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": session.id,
		"emotion":    session.emotion,
		"mood":       session.mood,
		"confidence": session.confidence,
		"tracks":     stubTracks(emotion),
	})
}

func (h *StubHandler) feedback(w http.ResponseWriter, req *http.Request) {
	var payload struct {
		SessionID json.Number `json:"session_id"`
		Rating    int         `json:"rating"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	id, err := payload.SessionID.Int64()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session id")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.sessions {
		if s.id == int(id) {
			s.rating = payload.Rating
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Session not found")
}

func (h *StubHandler) stats(w http.ResponseWriter, req *http.Request) {
	if !h.authenticated(req) {
		writeError(w, http.StatusUnauthorized, "Please log in to view your stats")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	counts := map[models.EmotionTag]int{}
	var sum float64
	for _, s := range h.sessions {
		counts[s.emotion]++
		sum += s.confidence
	}

	// Most frequent first, ties broken by tag so the output is stable; the
	// client reads element 0 as the top emotion.
	byEmotion := []map[string]any{}
	for emotion, count := range counts {
		byEmotion = append(byEmotion, map[string]any{
			"detected_emotion": emotion,
			"count":            count,
		})
	}
	sort.Slice(byEmotion, func(i, j int) bool {
		ci, cj := byEmotion[i]["count"].(int), byEmotion[j]["count"].(int)
		if ci != cj {
			return ci > cj
		}
		return byEmotion[i]["detected_emotion"].(models.EmotionTag) < byEmotion[j]["detected_emotion"].(models.EmotionTag)
	})

	avg := 0.0
	if len(h.sessions) > 0 {
		avg = sum / float64(len(h.sessions))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_sessions": len(h.sessions),
		"avg_confidence": avg,
		"by_emotion":     byEmotion,
	})
}

func (h *StubHandler) history(w http.ResponseWriter, req *http.Request) {
	if !h.authenticated(req) {
		writeError(w, http.StatusUnauthorized, "Please log in to view your history")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Newest first, raw row dicts like the real backend.
	rows := []map[string]any{}
	for i := len(h.sessions) - 1; i >= 0; i-- {
		s := h.sessions[i]
		rows = append(rows, map[string]any{
			"id":               s.id,
			"detected_emotion": s.emotion,
			"mood":             s.mood,
			"confidence":       s.confidence,
			"input_text":       s.inputText,
			"input_type":       s.inputType,
			"created_at":       s.createdAt.Format(sqliteTimeLayout),
		})
	}

	writeJSON(w, http.StatusOK, rows)
}

func (h *StubHandler) authStatus(w http.ResponseWriter, req *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if email, ok := h.sessionEmail(req); ok {
		writeJSON(w, http.StatusOK, map[string]any{
			"logged_in": true,
			"username":  h.users[email].username,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"logged_in": false})
}

func (h *StubHandler) login(w http.ResponseWriter, req *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	user, ok := h.users[payload.Email]
	if !ok || user.password != payload.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"message": "Invalid email or password",
		})
		return
	}

	h.setSessionCookie(w, payload.Email)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Welcome back, %s!", user.username),
	})
}

func (h *StubHandler) register(w http.ResponseWriter, req *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "All fields are required",
		})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.users[payload.Email]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Email already registered",
		})
		return
	}

	h.users[payload.Email] = stubUser{username: payload.Username, password: payload.Password}
	h.setSessionCookie(w, payload.Email)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Welcome to Rooha, %s!", payload.Username),
	})
}

func (h *StubHandler) logout(w http.ResponseWriter, req *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cookie, err := req.Cookie("session"); err == nil {
		delete(h.cookies, cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: "session", Value: "", MaxAge: -1, Path: "/"})
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// setSessionCookie issues a fresh session token. Callers hold h.mu.
func (h *StubHandler) setSessionCookie(w http.ResponseWriter, email string) {
	token := uuid.NewString()
	h.cookies[token] = email
	http.SetCookie(w, &http.Cookie{Name: "session", Value: token, Path: "/", HttpOnly: true})
}

// sessionEmail resolves the request's session cookie. Callers hold h.mu.
func (h *StubHandler) sessionEmail(req *http.Request) (string, bool) {
	cookie, err := req.Cookie("session")
	if err != nil {
		return "", false
	}
	email, ok := h.cookies[cookie.Value]
	return email, ok
}

func (h *StubHandler) authenticated(req *http.Request) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.sessionEmail(req)
	return ok
}

// pickEmotion hashes the input so the same text always maps to the same
// emotion.
func pickEmotion(input string) models.EmotionTag {
	emotions := []models.EmotionTag{
		models.EmotionHappy, models.EmotionSad, models.EmotionAngry,
		models.EmotionFear, models.EmotionSurprise, models.EmotionDisgust,
		models.EmotionNeutral,
	}

	hash := fnv.New32a()
	hash.Write([]byte(input))
	return emotions[hash.Sum32()%uint32(len(emotions))]
}

var stubMoods = map[models.EmotionTag]string{
	models.EmotionHappy:    "Radiating sunshine today",
	models.EmotionSad:      "A gentle blue kind of day",
	models.EmotionAngry:    "Fire that needs a release",
	models.EmotionFear:     "Courage is quiet sometimes",
	models.EmotionSurprise: "The world keeps you guessing",
	models.EmotionDisgust:  "Time to clear the air",
	models.EmotionNeutral:  "Steady and even keeled",
}

// stubTracks returns a small canned playlist per emotion.
func stubTracks(emotion models.EmotionTag) []models.Track {
	return []models.Track{
		{
			Name:        fmt.Sprintf("%s anthem", emotion),
			Artist:      "The Placeholders",
			ExternalURL: "https://example.com/track/1",
		},
		{
			Name:        fmt.Sprintf("Songs for a %s day", emotion),
			Artist:      "Stub Ensemble",
			PreviewURL:  "https://example.com/preview/2.mp3",
			ExternalURL: "https://example.com/track/2",
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
