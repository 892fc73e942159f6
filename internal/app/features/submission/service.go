// internal/app/features/submission/service.go

// Package submission implements the two-phase submission lifecycle:
// the create-once phase-1 pitch with its locked fields, the
// video-link amendment window, and the phase-2 proposal for selected
// teams.
package submission

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"

	phase2 "github.com/vijayakumarjith/startupsp/internal/app/store/phase2"
	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/app/system/countdown"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
)

// maxUploadSize caps pitch deck and proposal uploads.
const maxUploadSize = 25 << 20 // 25 MB

// Phase1Store is the slice of the phase-1 store the service needs.
type Phase1Store interface {
	Create(ctx context.Context, sub models.Phase1Submission) error
	Get(ctx context.Context, teamID string) (models.Phase1Submission, error)
	SetYouTubeLink(ctx context.Context, teamID, link string, at time.Time) error
}

// Phase2Store is the slice of the phase-2 store the service needs.
type Phase2Store interface {
	Merge(ctx context.Context, teamID string, fields phase2.Fields, at time.Time) error
	Get(ctx context.Context, teamID string) (models.Phase2Submission, error)
}

// TeamSource looks up the team a submission belongs to.
type TeamSource interface {
	Get(ctx context.Context, teamID string) (models.Team, error)
}

// FileStore is the slice of the blob store the service needs. The
// configured storage backend satisfies it.
type FileStore interface {
	Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error
}

// Deadlines holds the two submission cutoffs.
type Deadlines struct {
	Phase1 time.Time
	Phase2 time.Time
}

// Window serves the live countdown string for one submission track.
// The background tickers satisfy it.
type Window interface {
	Current() string
}

// Service coordinates uploads and submission writes.
type Service struct {
	phase1    Phase1Store
	phase2    Phase2Store
	teams     TeamSource
	files     FileStore
	fileBase  string
	deadlines Deadlines
	phase1Win Window
	phase2Win Window
	now       func() time.Time
	log       *zap.Logger
}

// NewService wires a submission Service. fileBaseURL is the public URL
// prefix under which stored files are served.
func NewService(p1 Phase1Store, p2 Phase2Store, teams TeamSource, files FileStore, fileBaseURL string, deadlines Deadlines, logger *zap.Logger) *Service {
	return &Service{
		phase1:    p1,
		phase2:    p2,
		teams:     teams,
		files:     files,
		fileBase:  strings.TrimRight(fileBaseURL, "/"),
		deadlines: deadlines,
		now:       time.Now,
		log:       logger,
	}
}

// UseWindows points DeadlineStatus at the live countdown tickers so
// the endpoint serves the same once-per-second string the background
// loops maintain.
func (s *Service) UseWindows(phase1, phase2 Window) {
	s.phase1Win = phase1
	s.phase2Win = phase2
}

// Phase1Input carries the pitch fields a team submits once.
type Phase1Input struct {
	TeamName           string
	CollegeName        string
	WhatsappNumber     string
	ProductDescription string
	Solution           string
	YouTubeLink        string
}

// Upload is an incoming file.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// SubmitPhase1 validates and records a team's one-shot phase-1 pitch.
// The deck is uploaded first; if the upload fails no submission
// metadata is written. A second submission for the same team is a
// conflict.
func (s *Service) SubmitPhase1(ctx context.Context, teamID string, in Phase1Input, deck *Upload) (models.Phase1Submission, error) {
	// The window is open strictly before the deadline; the deadline
	// instant itself is closed, matching the countdown display.
	if !s.now().Before(s.deadlines.Phase1) {
		return models.Phase1Submission{}, apperr.Precondition("phase 1 submissions are closed")
	}

	switch {
	case strings.TrimSpace(in.TeamName) == "":
		return models.Phase1Submission{}, apperr.Validation("team name is required")
	case strings.TrimSpace(in.CollegeName) == "":
		return models.Phase1Submission{}, apperr.Validation("college name is required")
	case strings.TrimSpace(in.WhatsappNumber) == "":
		return models.Phase1Submission{}, apperr.Validation("whatsapp number is required")
	case strings.TrimSpace(in.ProductDescription) == "":
		return models.Phase1Submission{}, apperr.Validation("product description is required")
	case strings.TrimSpace(in.Solution) == "":
		return models.Phase1Submission{}, apperr.Validation("solution is required")
	case deck == nil:
		return models.Phase1Submission{}, apperr.Validation("pitch deck file is required")
	}
	if err := validateDeck(deck); err != nil {
		return models.Phase1Submission{}, err
	}
	if in.YouTubeLink != "" {
		if err := validateVideoLink(in.YouTubeLink); err != nil {
			return models.Phase1Submission{}, err
		}
	}

	path, err := s.uploadFile(ctx, "phase1", teamID, deck)
	if err != nil {
		return models.Phase1Submission{}, err
	}

	now := s.now().UTC()
	sub := models.Phase1Submission{
		ID:                 teamID,
		TeamName:           strings.TrimSpace(in.TeamName),
		CollegeName:        strings.TrimSpace(in.CollegeName),
		WhatsappNumber:     strings.TrimSpace(in.WhatsappNumber),
		ProductDescription: strings.TrimSpace(in.ProductDescription),
		Solution:           strings.TrimSpace(in.Solution),
		FileURL:            s.fileURL(path),
		FilePath:           path,
		YouTubeLink:        strings.TrimSpace(in.YouTubeLink),
		SubmittedAt:        now,
		UpdatedAt:          now,
	}
	if err := s.phase1.Create(ctx, sub); err != nil {
		return models.Phase1Submission{}, err
	}

	s.log.Info("phase-1 pitch submitted",
		zap.String("team_id", teamID),
		zap.String("team_name", sub.TeamName),
		zap.String("file", path))
	return sub, nil
}

// UpdateVideoLink amends the one mutable phase-1 field. Everything
// else stays locked after the initial submission.
func (s *Service) UpdateVideoLink(ctx context.Context, teamID, link string) error {
	if strings.TrimSpace(link) == "" {
		return apperr.Validation("provide video link")
	}
	if err := validateVideoLink(link); err != nil {
		return err
	}
	if !s.now().Before(s.deadlines.Phase1) {
		return apperr.Precondition("phase 1 submissions are closed")
	}
	if err := s.phase1.SetYouTubeLink(ctx, teamID, strings.TrimSpace(link), s.now().UTC()); err != nil {
		return err
	}
	s.log.Info("phase-1 video link updated", zap.String("team_id", teamID))
	return nil
}

// Phase1 returns the team's own pitch.
func (s *Service) Phase1(ctx context.Context, teamID string) (models.Phase1Submission, error) {
	return s.phase1.Get(ctx, teamID)
}

// Phase2Input carries the fields of a phase-2 proposal. Empty fields
// leave any previously saved value untouched.
type Phase2Input struct {
	YouTubeVideoURL string
}

// SubmitPhase2 records or amends a selected team's phase-2 proposal.
// Unlike phase 1 it may be resubmitted until the deadline.
func (s *Service) SubmitPhase2(ctx context.Context, teamID string, in Phase2Input, proposal *Upload) (models.Phase2Submission, error) {
	if !s.now().Before(s.deadlines.Phase2) {
		return models.Phase2Submission{}, apperr.Precondition("phase 2 submissions are closed")
	}

	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return models.Phase2Submission{}, err
	}
	if !team.Phase2Selected {
		return models.Phase2Submission{}, apperr.Precondition("team is not selected for phase 2")
	}

	fields := phase2.Fields{}
	if in.YouTubeVideoURL != "" {
		if err := validateVideoLink(in.YouTubeVideoURL); err != nil {
			return models.Phase2Submission{}, err
		}
		fields.YouTubeVideoURL = strings.TrimSpace(in.YouTubeVideoURL)
	}
	if proposal != nil {
		if err := validateProposal(proposal); err != nil {
			return models.Phase2Submission{}, err
		}
		path, err := s.uploadFile(ctx, "phase2", teamID, proposal)
		if err != nil {
			return models.Phase2Submission{}, err
		}
		fields.ProposalURL = s.fileURL(path)
		fields.ProposalPath = path
	}
	if fields == (phase2.Fields{}) {
		return models.Phase2Submission{}, apperr.Validation("provide a proposal file or a video link")
	}

	if err := s.phase2.Merge(ctx, teamID, fields, s.now().UTC()); err != nil {
		return models.Phase2Submission{}, err
	}

	s.log.Info("phase-2 proposal submitted", zap.String("team_id", teamID))
	return s.phase2.Get(ctx, teamID)
}

// Phase2 returns the team's own proposal.
func (s *Service) Phase2(ctx context.Context, teamID string) (models.Phase2Submission, error) {
	return s.phase2.Get(ctx, teamID)
}

// DeadlineInfo is the public view of one submission window.
type DeadlineInfo struct {
	Deadline  time.Time `json:"deadline"`
	Remaining string    `json:"remaining"`
	Open      bool      `json:"open"`
}

// DeadlineStatus reports both windows relative to the current time.
func (s *Service) DeadlineStatus() (phase1, phase2 DeadlineInfo) {
	now := s.now()
	phase1 = DeadlineInfo{
		Deadline:  s.deadlines.Phase1,
		Remaining: s.remaining(now, s.deadlines.Phase1, s.phase1Win),
		Open:      now.Before(s.deadlines.Phase1),
	}
	phase2 = DeadlineInfo{
		Deadline:  s.deadlines.Phase2,
		Remaining: s.remaining(now, s.deadlines.Phase2, s.phase2Win),
		Open:      now.Before(s.deadlines.Phase2),
	}
	return phase1, phase2
}

// remaining prefers the live ticker value; without one it computes the
// string directly.
func (s *Service) remaining(now, deadline time.Time, w Window) string {
	if w != nil {
		return w.Current()
	}
	return countdown.Remaining(now, deadline)
}

// uploadFile stores an upload under <prefix>/<teamID>_<filename> and
// returns the storage path.
func (s *Service) uploadFile(ctx context.Context, prefix, teamID string, up *Upload) (string, error) {
	path := fmt.Sprintf("%s/%s_%s", prefix, teamID, sanitizeFilename(up.Filename))
	opts := &storage.PutOptions{ContentType: up.ContentType}
	if err := s.files.Put(ctx, path, io.LimitReader(up.Reader, maxUploadSize), opts); err != nil {
		s.log.Error("file upload failed",
			zap.String("team_id", teamID),
			zap.String("path", path),
			zap.Error(err))
		return "", apperr.Transient("file upload failed", err)
	}
	return path, nil
}

// fileURL maps a storage path to the URL it is served at.
func (s *Service) fileURL(path string) string {
	if s.fileBase == "" {
		return path
	}
	return s.fileBase + "/" + path
}

var deckContentTypes = map[string]bool{
	"application/vnd.ms-powerpoint": true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
}

func validateDeck(up *Upload) error {
	if up.Size > maxUploadSize {
		return apperr.Validation("pitch deck exceeds the 25 MB limit")
	}
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if ext == ".ppt" || ext == ".pptx" {
		return nil
	}
	if deckContentTypes[up.ContentType] {
		return nil
	}
	return apperr.Validation("pitch deck must be a .ppt or .pptx file")
}

func validateProposal(up *Upload) error {
	if up.Size > maxUploadSize {
		return apperr.Validation("proposal exceeds the 25 MB limit")
	}
	ext := strings.ToLower(filepath.Ext(up.Filename))
	switch ext {
	case ".pdf", ".ppt", ".pptx":
		return nil
	}
	if up.ContentType == "application/pdf" || deckContentTypes[up.ContentType] {
		return nil
	}
	return apperr.Validation("proposal must be a .pdf, .ppt, or .pptx file")
}

func validateVideoLink(link string) error {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperr.Validation("video link must be a valid http(s) URL")
	}
	return nil
}

// sanitizeFilename keeps filenames storage-safe.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}
	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}
	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
