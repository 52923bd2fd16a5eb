package server

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bastiangx/trigram/internal/metrics"
	"github.com/bastiangx/trigram/pkg/config"
	"github.com/bastiangx/trigram/pkg/lexicon"
	"github.com/bastiangx/trigram/pkg/trigram"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Error codes sent in ErrorResponse.
const (
	CodeBadRequest  = 400
	CodeTooLarge    = 413
	CodeUnavailable = 503
)

// ErrUnknownAction is reported for requests with an unsupported action.
var ErrUnknownAction = errors.New("unknown action")

// Server handles msgpack IPC for similarity requests
type Server struct {
	config       *config.Config
	lexicon      *lexicon.Lexicon
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	requestCount int
}

// NewServer creates a server reading requests from r and writing responses
// to w. lex may be nil, in which case lookups fail with 503.
func NewServer(cfg *config.Config, lex *lexicon.Lexicon, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		config:  cfg,
		lexicon: lex,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
	}
}

// Start processes requests until the input is exhausted. It returns nil on a
// clean EOF and the read error otherwise.
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	if s.config.Server.ReadyMessage {
		s.sendResponse(StatusResponse{Status: "ready"})
	}

	for {
		var raw msgpack.RawMessage
		if err := s.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return err
		}
		s.requestCount++
		s.handleRequest(raw)
	}
}

// RequestCount returns the number of requests read so far.
func (s *Server) RequestCount() int {
	return s.requestCount
}

// handleRequest decodes one raw message and dispatches it by action
func (s *Server) handleRequest(raw msgpack.RawMessage) {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		log.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "invalid msgpack request", CodeBadRequest)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	start := time.Now()
	switch req.Action {
	case ActionSimilarity:
		s.handleSimilarity(req, start)
	case ActionFind:
		s.handleFind(req, start)
	case ActionLookup:
		s.handleLookup(req, start)
	case ActionHealth:
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		metrics.RequestsTotal.WithLabelValues("unknown").Inc()
		s.sendError(req.ID, fmt.Sprintf("%v: %s", ErrUnknownAction, req.Action), CodeBadRequest)
		return
	}

	metrics.RequestsTotal.WithLabelValues(req.Action).Inc()
	metrics.RequestDuration.WithLabelValues(req.Action).Observe(time.Since(start).Seconds())
}

func (s *Server) handleSimilarity(req Request, start time.Time) {
	limit := s.config.Server.MaxHaystack
	if len(req.A) > limit || len(req.B) > limit {
		s.sendError(req.ID, fmt.Sprintf("input exceeds maximum length of %d bytes", limit), CodeTooLarge)
		return
	}

	score := trigram.Similarity(req.A, req.B)
	log.Debug("similarity", "a", req.A, "b", req.B, "score", score)

	s.sendResponse(SimilarityResponse{
		ID:        req.ID,
		Score:     score,
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleFind(req Request, start time.Time) {
	if len(req.Needle) > s.config.Match.MaxNeedle {
		s.sendError(req.ID, fmt.Sprintf("needle exceeds maximum length of %d bytes", s.config.Match.MaxNeedle), CodeTooLarge)
		return
	}
	if len(req.Haystack) > s.config.Server.MaxHaystack {
		s.sendError(req.ID, fmt.Sprintf("haystack exceeds maximum length of %d bytes", s.config.Server.MaxHaystack), CodeTooLarge)
		return
	}

	threshold := s.threshold(req)
	maxResults := s.config.Server.MaxResults

	results := []MatchResult{}
	truncated := false
	ms := trigram.FindWords(req.Needle, req.Haystack, threshold)
	for m := range ms.All() {
		if len(results) == maxResults {
			truncated = true
			break
		}
		results = append(results, MatchResult{Word: m.Text(), Start: m.Start(), End: m.End()})
	}
	metrics.MatchesTotal.Add(float64(len(results)))

	s.sendResponse(FindResponse{
		ID:        req.ID,
		Matches:   results,
		Count:     len(results),
		Truncated: truncated,
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleLookup(req Request, start time.Time) {
	if s.lexicon == nil {
		s.sendError(req.ID, "no lexicon loaded", CodeUnavailable)
		return
	}
	if len(req.Needle) > s.config.Match.MaxNeedle {
		s.sendError(req.ID, fmt.Sprintf("needle exceeds maximum length of %d bytes", s.config.Match.MaxNeedle), CodeTooLarge)
		return
	}

	limit := req.Limit
	if limit < 1 || limit > s.config.Server.MaxResults {
		limit = s.config.Server.MaxResults
	}

	found := s.lexicon.WithPrefix(req.Prefix, req.Needle, s.threshold(req), limit)
	hits := make([]LookupHit, len(found))
	for i, h := range found {
		hits[i] = LookupHit{Word: h.Word, Freq: h.Freq, Score: h.Score}
	}
	metrics.MatchesTotal.Add(float64(len(hits)))

	s.sendResponse(LookupResponse{
		ID:        req.ID,
		Hits:      hits,
		Count:     len(hits),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

// threshold returns the request threshold or the configured default
func (s *Server) threshold(req Request) float64 {
	if req.Threshold != nil {
		return *req.Threshold
	}
	return s.config.Match.Threshold
}

// sendResponse encodes the response as msgpack and writes it out
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	metrics.RequestErrorsTotal.WithLabelValues(strconv.Itoa(code)).Inc()
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}
