package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/youyaku/internal/cluster"
	"github.com/hyperjump/youyaku/internal/embedding"
	"github.com/hyperjump/youyaku/internal/models"
	"github.com/hyperjump/youyaku/internal/summarizer"
	"github.com/hyperjump/youyaku/pkg/utils"
)

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts, err := optionsFromRequest(&req)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("summary request",
		zap.String("preview", utils.Truncate(req.Text, 80)),
		zap.Int("num_sentences", req.NumSentences),
	)

	start := time.Now()
	result, err := s.summarizer.Select(r.Context(), req.Text, opts)
	if err != nil {
		s.respondPipelineError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, models.SummaryResponse{
		ID:            uuid.New().String(),
		Summary:       result.JoinText(),
		SentenceCount: len(result),
		ElapsedMS:     time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleEmbeddings(w http.ResponseWriter, r *http.Request) {
	var req models.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts, err := optionsFromRequest(&req)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("embedding request",
		zap.String("preview", utils.Truncate(req.Text, 80)),
		zap.String("aggregate", req.Aggregate),
	)

	result, err := s.summarizer.Embeddings(r.Context(), req.Text, opts)
	if err != nil {
		s.respondPipelineError(w, err)
		return
	}
	resp := models.EmbeddingResponse{ID: uuid.New().String()}
	if result != nil {
		if result.Vector != nil {
			resp.Vector = result.Vector
			resp.Dimensions = len(result.Vector)
		} else {
			resp.Vectors = result.Vectors
			if len(result.Vectors) > 0 {
				resp.Dimensions = len(result.Vectors[0])
			}
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFrequency(w http.ResponseWriter, r *http.Request) {
	var req models.FrequencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sents, err := s.fallback.Summarize(req.Text, req.MaxSentences)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, models.FrequencyResponse{
		ID:        uuid.New().String(),
		Sentences: sents,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// optionsFromRequest maps API fields onto pipeline options, validating the
// closed enums at the boundary.
func optionsFromRequest(req *models.SummaryRequest) (summarizer.Options, error) {
	opts := summarizer.Options{
		NumSentences: req.NumSentences,
		UseFirst:     req.UseFirst,
	}
	if req.Ratio != nil {
		opts.Ratio = *req.Ratio
	}
	if req.MinLength != nil {
		opts.MinLength = *req.MinLength
	}
	if req.MaxLength != nil {
		opts.MaxLength = *req.MaxLength
	}
	if req.Algorithm != "" {
		alg, err := cluster.ParseAlgorithm(req.Algorithm)
		if err != nil {
			return opts, err
		}
		opts.Algorithm = alg
	}
	if req.Aggregate != "" {
		agg, err := embedding.ParseReduction(req.Aggregate)
		if err != nil {
			return opts, err
		}
		opts.Aggregate = agg
	}
	return opts, nil
}

// respondPipelineError maps pipeline failures onto status codes: an input the
// model cannot process is the client's problem, anything else is ours.
func (s *Server) respondPipelineError(w http.ResponseWriter, err error) {
	if errors.Is(err, embedding.ErrSentenceTooLong) {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.logger.Error("summarization failed", zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
