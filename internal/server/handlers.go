package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/career-advisor/internal/catalog"
	"github.com/jonathan/career-advisor/internal/logger"
	"github.com/jonathan/career-advisor/internal/ranking"
	"github.com/jonathan/career-advisor/internal/schemas"
	"github.com/jonathan/career-advisor/internal/server/middleware"
	"github.com/jonathan/career-advisor/internal/types"
)

const (
	maxBodyBytes     = 1 << 20
	maxBatchProfiles = 100
)

// RecommendRequest is the body of POST /recommendations.
type RecommendRequest struct {
	Profile map[string]any `json:"profile"`
	TopN    *int           `json:"top_n,omitempty"`
}

// RecommendResponse lists ranked careers for one profile.
type RecommendResponse struct {
	Catalog         catalog.Info           `json:"catalog"`
	Recommendations []types.Recommendation `json:"recommendations"`
}

// BatchRequest is the body of POST /recommendations/batch.
type BatchRequest struct {
	Profiles []map[string]any `json:"profiles"`
	TopN     *int             `json:"top_n,omitempty"`
}

// BatchResponse holds one ranked list per submitted profile, in request order.
type BatchResponse struct {
	Catalog catalog.Info             `json:"catalog"`
	Results [][]types.Recommendation `json:"results"`
}

// CareersResponse lists the careers of the current snapshot.
type CareersResponse struct {
	Catalog catalog.Info   `json:"catalog"`
	Careers []types.Career `json:"careers"`
}

// ReloadResponse reports the outcome of POST /catalog/reload.
type ReloadResponse struct {
	Catalog catalog.Info            `json:"catalog"`
	Report  *types.ValidationReport `json:"report"`
	Error   string                  `json:"error,omitempty"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalogInfo(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Current().Info())
}

func (s *Server) handleListCareers(w http.ResponseWriter, _ *http.Request) {
	snapshot := s.store.Current()
	s.jsonResponse(w, http.StatusOK, CareersResponse{
		Catalog: snapshot.Info(),
		Careers: snapshot.Careers(),
	})
}

func (s *Server) handleGetCareer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	career, ok := s.store.Current().Get(id)
	if !ok {
		s.errorResponse(w, &ErrCareerNotFound{ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, career)
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	n := s.topN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.errorResponse(w, &ErrValidation{Field: "n", Message: "must be a positive integer"})
			return
		}
		n = parsed
	}

	snapshot := s.store.Current()
	s.jsonResponse(w, http.StatusOK, CareersResponse{
		Catalog: snapshot.Info(),
		Careers: ranking.Trending(snapshot.Careers(), n),
	})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	topN, err := s.resolveTopN(req.TopN)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	profile, err := parseProfile(req.Profile)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	snapshot := s.store.Current()
	s.jsonResponse(w, http.StatusOK, RecommendResponse{
		Catalog:         snapshot.Info(),
		Recommendations: ranking.Recommend(profile, snapshot.Careers(), topN),
	})
}

func (s *Server) handleRecommendBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	if len(req.Profiles) == 0 {
		s.errorResponse(w, &ErrValidation{Field: "profiles", Message: "at least one profile is required"})
		return
	}
	if len(req.Profiles) > maxBatchProfiles {
		s.errorResponse(w, &ErrValidation{Field: "profiles", Message: fmt.Sprintf("at most %d profiles per batch", maxBatchProfiles)})
		return
	}

	topN, err := s.resolveTopN(req.TopN)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	profiles := make([]*types.UserProfile, 0, len(req.Profiles))
	for i, raw := range req.Profiles {
		profile, err := parseProfile(raw)
		if err != nil {
			s.errorResponse(w, fmt.Errorf("profiles[%d]: %w", i, err))
			return
		}
		profiles = append(profiles, profile)
	}

	snapshot := s.store.Current()
	results, err := ranking.RecommendBatch(r.Context(), profiles, snapshot.Careers(), topN, s.batchLimit)
	if err != nil {
		s.errorResponse(w, fmt.Errorf("batch scoring aborted: %w", err))
		return
	}

	s.jsonResponse(w, http.StatusOK, BatchResponse{
		Catalog: snapshot.Info(),
		Results: results,
	})
}

func (s *Server) handleCatalogReport(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Validate(r.Context(), s.source))
}

func (s *Server) handleCatalogReload(w http.ResponseWriter, r *http.Request) {
	log := s.log
	if operatorID, err := middleware.GetOperatorID(r); err == nil {
		log = logger.WithFields(log, zap.String(logger.FieldOperator, operatorID.String()))
	}

	snapshot, report, err := s.store.Reload(r.Context(), s.source)
	if err != nil {
		log.Warn("catalog reload failed", zap.Error(err))
		s.jsonResponse(w, HTTPStatus(err), ReloadResponse{
			Catalog: snapshot.Info(),
			Report:  report,
			Error:   err.Error(),
		})
		return
	}

	log.Info("catalog reloaded",
		zap.String(logger.FieldSource, snapshot.Source),
		zap.Uint64(logger.FieldVersion, snapshot.Version))
	s.jsonResponse(w, http.StatusOK, ReloadResponse{
		Catalog: snapshot.Info(),
		Report:  report,
	})
}

func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	if s.authHandler == nil {
		s.errorResponse(w, &ErrAuthDisabled{})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	s.authHandler.IssueToken(w, r)
}

// decodeBody reads a size-limited JSON body into dst.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrValidation{Field: "body", Message: "request body too large"}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	return nil
}

// resolveTopN applies the configured default when the request omits top_n.
func (s *Server) resolveTopN(requested *int) (int, error) {
	if requested == nil {
		return s.topN, nil
	}
	if *requested < 1 {
		return 0, &ErrValidation{Field: "top_n", Message: "must be at least 1"}
	}
	return *requested, nil
}

// parseProfile checks raw against the profile schema, then decodes and freezes it.
func parseProfile(raw map[string]any) (*types.UserProfile, error) {
	if raw == nil {
		return nil, &ErrValidation{Field: "profile", Message: "required"}
	}
	if err := schemas.ValidateValue(schemas.Profile, raw); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			return nil, &ErrValidation{Field: "profile", Message: schemaErr.Summary()}
		}
		return nil, err
	}
	return types.ProfileFromMap(raw)
}
