package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/providers/beautify"
	"github.com/careerforge/backend/internal/providers/llm"
	mongorepo "github.com/careerforge/backend/internal/repositories/mongo"
	pgrepo "github.com/careerforge/backend/internal/repositories/postgres"
	"github.com/careerforge/backend/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// minGeneratedWords rejects obviously truncated model output (target is 800-1200).
const minGeneratedWords = 400

type ResumeService interface {
	Upload(ctx context.Context, userID, title, rawText, template string) (*models.Resume, error)
	Get(ctx context.Context, userID, resumeID string) (*models.Resume, error)
	List(ctx context.Context, userID string) ([]models.Resume, error)
	Update(ctx context.Context, userID, resumeID string, req ResumeUpdate) (*models.Resume, error)
	Delete(ctx context.Context, userID, resumeID string) error
	SetPrimary(ctx context.Context, userID, resumeID string) error
	Generate(ctx context.Context, userID, targetRole, template string) (*models.Resume, error)
	Score(ctx context.Context, userID, resumeID, targetRole string) (*ResumeScore, error)
}

type ResumeUpdate struct {
	Title      *string
	RawText    *string
	Template   *string
	ChangeNote string
}

type ResumeScore struct {
	Score       int      `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

type resumeService struct {
	resumes   mongorepo.ResumeRepository
	profiles  pgrepo.ProfileRepository
	ai        llm.Provider
	formatter beautify.Formatter
	log       *logrus.Logger
}

func NewResumeService(resumes mongorepo.ResumeRepository, profiles pgrepo.ProfileRepository, ai llm.Provider, formatter beautify.Formatter, log *logrus.Logger) ResumeService {
	if log == nil {
		log = logrus.New()
	}
	return &resumeService{resumes: resumes, profiles: profiles, ai: ai, formatter: formatter, log: log}
}

func (s *resumeService) Upload(ctx context.Context, userID, title, rawText, template string) (*models.Resume, error) {
	const op = "ResumeService.Upload"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(rawText) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title and raw_text are required", nil)
	}
	if template != "" && !ValidResumeTemplate(template) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown template", nil)
	}

	now := time.Now().UTC()
	doc := &models.Resume{
		ResumeID:  uuid.NewString(),
		UserID:    userID,
		Title:     title,
		RawText:   rawText,
		Template:  template,
		Source:    models.ResumeSourceUploaded,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.resumes.Create(ctx, doc); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store resume", err)
	}
	return doc, nil
}

func (s *resumeService) Get(ctx context.Context, userID, resumeID string) (*models.Resume, error) {
	const op = "ResumeService.Get"
	return s.getOwned(ctx, op, userID, resumeID)
}

func (s *resumeService) List(ctx context.Context, userID string) ([]models.Resume, error) {
	const op = "ResumeService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	out, err := s.resumes.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list resumes", err)
	}
	return out, nil
}

func (s *resumeService) Update(ctx context.Context, userID, resumeID string, req ResumeUpdate) (*models.Resume, error) {
	const op = "ResumeService.Update"

	existing, err := s.getOwned(ctx, op, userID, resumeID)
	if err != nil {
		return nil, err
	}
	if req.Template != nil && *req.Template != "" && !ValidResumeTemplate(*req.Template) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown template", nil)
	}

	title := existing.Title
	if req.Title != nil {
		title = *req.Title
	}
	rawText := existing.RawText
	if req.RawText != nil {
		rawText = *req.RawText
	}
	template := existing.Template
	if req.Template != nil {
		template = *req.Template
	}

	// snapshot the previous content only when it actually changed
	var version *models.ResumeVersion
	if rawText != existing.RawText {
		version = &models.ResumeVersion{
			Number:     len(existing.Versions) + 1,
			Content:    existing.RawText,
			Score:      existing.Score,
			ChangeNote: req.ChangeNote,
			CreatedAt:  time.Now().UTC(),
		}
	}

	now := time.Now().UTC()
	if err := s.resumes.UpdateContent(ctx, resumeID, title, rawText, template, version, now); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "resume not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update resume", err)
	}

	existing.Title = title
	existing.RawText = rawText
	existing.Template = template
	existing.UpdatedAt = now
	if version != nil {
		existing.Versions = append(existing.Versions, *version)
	}
	return existing, nil
}

func (s *resumeService) Delete(ctx context.Context, userID, resumeID string) error {
	const op = "ResumeService.Delete"

	if _, err := s.getOwned(ctx, op, userID, resumeID); err != nil {
		return err
	}
	if err := s.resumes.Delete(ctx, resumeID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "resume not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete resume", err)
	}
	return nil
}

func (s *resumeService) SetPrimary(ctx context.Context, userID, resumeID string) error {
	const op = "ResumeService.SetPrimary"

	if _, err := s.getOwned(ctx, op, userID, resumeID); err != nil {
		return err
	}
	if err := s.resumes.SetPrimary(ctx, userID, resumeID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "resume not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to set primary resume", err)
	}
	return nil
}

// Generate runs the two-stage pipeline: model-written text, then a pass
// through the external beautifier with a verbatim fallback.
func (s *resumeService) Generate(ctx context.Context, userID, targetRole, template string) (*models.Resume, error) {
	const op = "ResumeService.Generate"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if strings.TrimSpace(targetRole) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "target_role is required", nil)
	}
	if template == "" {
		template = "modern"
	}
	if !ValidResumeTemplate(template) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown template", nil)
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "fill in your profile before generating a resume", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load profile", err)
	}

	prompt := fmt.Sprintf(generateResumePrompt, targetRole, template, profileSummaryForPrompt(profile))
	text, err := s.ai.GenerateText(ctx, prompt)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "resume generation failed", err)
	}
	text = strings.TrimSpace(text)
	if len(strings.Fields(text)) < minGeneratedWords {
		return nil, utils.E(utils.CodeUnavailable, op, "generated resume was too short", nil)
	}

	formatted, err := s.formatter.Format(ctx, text, template)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"fallback": "beautify",
			"user_id":  userID,
		}).Warn("beautifier failed, keeping unformatted text")
		formatted = text
	}

	now := time.Now().UTC()
	doc := &models.Resume{
		ResumeID:  uuid.NewString(),
		UserID:    userID,
		Title:     fmt.Sprintf("%s Resume", targetRole),
		RawText:   formatted,
		Template:  template,
		Source:    models.ResumeSourceGenerated,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.resumes.Create(ctx, doc); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store generated resume", err)
	}
	return doc, nil
}

func (s *resumeService) Score(ctx context.Context, userID, resumeID, targetRole string) (*ResumeScore, error) {
	const op = "ResumeService.Score"

	if strings.TrimSpace(targetRole) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "target_role is required", nil)
	}

	doc, err := s.getOwned(ctx, op, userID, resumeID)
	if err != nil {
		return nil, err
	}

	var score ResumeScore
	prompt := fmt.Sprintf(scoreResumePrompt, targetRole, doc.RawText)
	if err := s.ai.GenerateJSON(ctx, prompt, &score); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "resume scoring failed", err)
	}
	if score.Score < 0 {
		score.Score = 0
	}
	if score.Score > 100 {
		score.Score = 100
	}

	if err := s.resumes.SetScore(ctx, resumeID, score.Score, score.Feedback); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store score", err)
	}
	return &score, nil
}

func (s *resumeService) getOwned(ctx context.Context, op, userID, resumeID string) (*models.Resume, error) {
	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if resumeID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "resume_id is required", nil)
	}

	doc, err := s.resumes.GetByResumeID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "resume not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get resume", err)
	}
	if doc.UserID != userID {
		return nil, utils.E(utils.CodeNotFound, op, "resume not found", nil)
	}
	return doc, nil
}
