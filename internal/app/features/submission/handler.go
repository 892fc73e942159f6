// internal/app/features/submission/handler.go
package submission

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/app/system/auth"
	"github.com/vijayakumarjith/startupsp/internal/app/system/httpjson"
	"github.com/vijayakumarjith/startupsp/internal/app/system/timeouts"
)

// Handler serves the submission endpoints.
type Handler struct {
	Service *Service
	Log     *zap.Logger
}

// NewHandler constructs a submission Handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{Service: svc, Log: logger}
}

// SubmitPhase1 handles POST /submissions/phase1 (multipart form).
func (h *Handler) SubmitPhase1(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Internal("missing session user", nil))
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httpjson.BadRequest(w, "invalid multipart form")
		return
	}

	in := Phase1Input{
		TeamName:           r.FormValue("team_name"),
		CollegeName:        r.FormValue("college_name"),
		WhatsappNumber:     r.FormValue("whatsapp_number"),
		ProductDescription: r.FormValue("product_description"),
		Solution:           r.FormValue("solution"),
		YouTubeLink:        r.FormValue("youtube_link"),
	}

	var deck *Upload
	if file, header, err := r.FormFile("pitch_deck"); err == nil {
		defer file.Close()
		deck = &Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      file,
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sub, err := h.Service.SubmitPhase1(ctx, user.ID, in, deck)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, sub)
}

// videoLinkRequest is the body of PUT /submissions/phase1/video.
type videoLinkRequest struct {
	YouTubeLink string `json:"youtube_link"`
}

// UpdateVideoLink handles PUT /submissions/phase1/video.
func (h *Handler) UpdateVideoLink(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Internal("missing session user", nil))
		return
	}

	var req videoLinkRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Service.UpdateVideoLink(ctx, user.ID, req.YouTubeLink); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"status": "updated"})
}

// GetPhase1 handles GET /submissions/phase1.
func (h *Handler) GetPhase1(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Internal("missing session user", nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sub, err := h.Service.Phase1(ctx, user.ID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, sub)
}

// SubmitPhase2 handles POST /submissions/phase2 (multipart form).
func (h *Handler) SubmitPhase2(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Internal("missing session user", nil))
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httpjson.BadRequest(w, "invalid multipart form")
		return
	}

	in := Phase2Input{
		YouTubeVideoURL: r.FormValue("youtube_video_url"),
	}

	var proposal *Upload
	if file, header, err := r.FormFile("proposal"); err == nil {
		defer file.Close()
		proposal = &Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      file,
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sub, err := h.Service.SubmitPhase2(ctx, user.ID, in, proposal)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, sub)
}

// GetPhase2 handles GET /submissions/phase2.
func (h *Handler) GetPhase2(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Internal("missing session user", nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sub, err := h.Service.Phase2(ctx, user.ID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, sub)
}

// deadlinesResponse is the body of GET /submissions/deadlines.
type deadlinesResponse struct {
	Phase1 DeadlineInfo `json:"phase1"`
	Phase2 DeadlineInfo `json:"phase2"`
}

// Deadlines handles GET /submissions/deadlines. It is public.
func (h *Handler) Deadlines(w http.ResponseWriter, r *http.Request) {
	p1, p2 := h.Service.DeadlineStatus()
	httpjson.Respond(w, http.StatusOK, deadlinesResponse{Phase1: p1, Phase2: p2})
}
