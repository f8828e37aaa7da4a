package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dgallion1/tokest/internal/report"
	"github.com/dgallion1/tokest/internal/tokenest"
)

type estimateRequest struct {
	Text    string `json:"text"`
	Counter string `json:"counter"`
}

// estimateResponse.Fallback is set when the requested counter could not run
// and Counter names the one that answered instead.
type estimateResponse struct {
	Tokens   int    `json:"tokens"`
	Counter  string `json:"counter"`
	Words    int    `json:"words"`
	Cached   bool   `json:"cached"`
	Fallback bool   `json:"fallback,omitempty"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	requested := s.counterName(req.Counter)
	name, count, err := tokenest.Resolve(requested)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := estimateResponse{
		Counter:  name,
		Words:    len(strings.Fields(req.Text)),
		Fallback: name != requested,
	}
	if tokens, ok := s.cache.get(name, req.Text); ok {
		resp.Tokens = tokens
		resp.Cached = true
	} else {
		resp.Tokens = s.stats.Time(func() int { return count(req.Text) })
		s.cache.add(name, req.Text, resp.Tokens)
	}

	writeJSON(w, http.StatusOK, resp)
}

type wordsRequest struct {
	Text  string `json:"text"`
	Order string `json:"order"`
}

type wordJSON struct {
	report.WordStat
	Tokens int `json:"tokens"`
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	var req wordsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	order, err := report.WordOrder(req.Order)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats := report.Words(req.Text)
	report.Sort(stats, order)

	words := make([]wordJSON, len(stats))
	total := 0
	for i, ws := range stats {
		words[i] = wordJSON{WordStat: ws, Tokens: ws.Tokens()}
		total += ws.Tokens()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tokens": total,
		"words":  words,
	})
}

func (s *Server) handleCounters(w http.ResponseWriter, r *http.Request) {
	type counterJSON struct {
		Name      string             `json:"name"`
		Signature tokenest.Signature `json:"signature"`
		Default   bool               `json:"default"`
	}

	def := s.counterName("")
	var out []counterJSON
	for _, name := range tokenest.Names() {
		fn, _ := tokenest.Lookup(name)
		out = append(out, counterJSON{
			Name:      name,
			Signature: tokenest.Describe(fn),
			Default:   name == def,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"counters": out})
}

// counterName normalizes a requested counter, falling back to the
// configured default.
func (s *Server) counterName(requested string) string {
	if requested == "" {
		requested = s.cfg.DefaultCounter
	}
	if requested == "" {
		return tokenest.Heuristic
	}
	return strings.ToLower(requested)
}

// decodeJSON reads a size-capped JSON body into v, writing a 400 on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
