package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rflorenc/teamroadmaps/internal/models"
)

func (s *Server) ListPages(w http.ResponseWriter, r *http.Request) {
	pages := s.Store.Pages()
	if pages == nil {
		pages = []models.CatalogRoadmap{}
	}
	writeJSON(w, http.StatusOK, pages)
}

func (s *Server) GetTeam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "teamId")
	team := s.Store.GetTeam(id)
	if team == nil {
		writeError(w, http.StatusNotFound, "team not found")
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Server) GetTeamResourceConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "teamId")
	cfg, err := s.Store.Config(id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(cfg))
}

func (s *Server) UpdateTeamResourceConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "teamId")
	var req models.UpdateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if !s.validResource(w, req.ResourceID, req.ResourceType) {
		return
	}
	if req.TeamID != "" && req.TeamID != id {
		writeError(w, http.StatusBadRequest, "teamId does not match URL")
		return
	}
	if !s.canManage(w, id) {
		return
	}

	cfg, err := s.Store.UpsertResource(id, req.ResourceID, req.Removed)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.Logger.Info("team resource updated", "team", id, "resource", req.ResourceID, "removed", len(req.Removed))
	writeJSON(w, http.StatusOK, nonNil(cfg))
}

func (s *Server) DeleteTeamResourceConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "teamId")
	var req models.DeleteResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if !s.validResource(w, req.ResourceID, req.ResourceType) {
		return
	}
	if !s.canManage(w, id) {
		return
	}

	cfg, err := s.Store.DeleteResource(id, req.ResourceID)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.Logger.Info("team resource deleted", "team", id, "resource", req.ResourceID)
	writeJSON(w, http.StatusOK, nonNil(cfg))
}

func (s *Server) CreateRoadmap(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	roadmap, err := s.Store.CreateRoadmap(req)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.Logger.Info("custom roadmap created", "roadmap", roadmap.ID, "team", roadmap.TeamID)

	if roadmap.TeamID != "" {
		s.Events.Publish(roadmap.TeamID, models.TeamEvent{
			Type:      models.EventCustomRoadmapCreated,
			RoadmapID: roadmap.ID,
		})
	}
	writeJSON(w, http.StatusCreated, models.CreateRoadmapResponse{RoadmapID: roadmap.ID})
}

func (s *Server) validResource(w http.ResponseWriter, resourceID, resourceType string) bool {
	if resourceID == "" {
		writeError(w, http.StatusBadRequest, "resourceId is required")
		return false
	}
	if resourceType != models.ResourceTypeRoadmap {
		writeError(w, http.StatusBadRequest, "unsupported resourceType: "+resourceType)
		return false
	}
	return true
}

// canManage rejects mutations from members without management permission.
func (s *Server) canManage(w http.ResponseWriter, teamID string) bool {
	team := s.Store.GetTeam(teamID)
	if team == nil {
		writeError(w, http.StatusNotFound, "team not found")
		return false
	}
	if !team.CanManage() {
		writeError(w, http.StatusForbidden, "You are not allowed to manage this team")
		return false
	}
	return true
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrTeamNotFound):
		writeError(w, http.StatusNotFound, "team not found")
	case errors.Is(err, models.ErrResourceNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

// nonNil ensures an empty config encodes as [] rather than null.
func nonNil(cfg models.TeamResourceConfig) models.TeamResourceConfig {
	if cfg == nil {
		return models.TeamResourceConfig{}
	}
	return cfg
}
