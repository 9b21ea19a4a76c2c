package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/gorilla/mux"
)

type statusResponse struct {
	CacheAlive bool `json:"cacheAlive"`
	StoreAlive bool `json:"storeAlive"`
}

type statsResponse struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type entryResponse struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID int64  `json:"parentId"`
}

func toEntryResponse(e *models.Entry) entryResponse {
	return entryResponse{
		ID:       e.ID,
		UserID:   e.UserID,
		Name:     e.Name,
		Type:     string(e.Type),
		IsPublic: e.IsPublic,
		ParentID: e.ParentID,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type uploadRequest struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	ParentID json.RawMessage `json:"parentId"`
	IsPublic *bool           `json:"isPublic"`
	Data     *string         `json:"data"`
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errMalformedBody
	}
	return nil
}

// parseParentID reads a parent reference given either as a number or as a
// numeric string. Absent or null means the root. Anything else yields -1,
// which no entry can carry.
func parseParentID(raw json.RawMessage) *int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var id int64
	if err := json.Unmarshal(raw, &id); err == nil {
		return &id
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &id
		}
	}

	invalid := int64(-1)
	return &invalid
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	st := s.app.Status(r.Context())
	writeJSON(w, http.StatusOK, statusResponse{CacheAlive: st.CacheAlive, StoreAlive: st.StoreAlive})
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.app.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Users: st.Users, Files: st.Files})
}

func (s *Server) postUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{ID: u.ID, Email: u.Email})
}

func (s *Server) getConnect(w http.ResponseWriter, r *http.Request) {
	token, err := s.users.Login(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.SessionIssued()
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) getDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Logout(r.Context(), tokenFrom(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getMe(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r.Context())
	writeJSON(w, http.StatusOK, userResponse{ID: u.ID, Email: u.Email})
}

func (s *Server) postFile(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	e, err := s.files.CreateEntry(r.Context(), userFrom(r.Context()), services.CreateEntryRequest{
		Name:     req.Name,
		Type:     req.Type,
		ParentID: parseParentID(req.ParentID),
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if s.metrics != nil {
		s.metrics.EntryCreated(string(e.Type), int(e.Size))
	}
	writeJSON(w, http.StatusCreated, toEntryResponse(e))
}

func (s *Server) getFile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, r, common.ErrorNotFound)
		return
	}

	e, err := s.files.GetEntry(r.Context(), userFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(e))
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	parentID := common.RootParentID
	if v := q.Get("parentId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusOK, []entryResponse{})
			return
		}
		parentID = id
	}

	page := 0
	if v := q.Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			page = p
		}
	}

	entries, err := s.files.ListEntries(r.Context(), userFrom(r.Context()), parentID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}
