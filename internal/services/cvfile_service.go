package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/careerforge/backend/internal/models"
	pgrepo "github.com/careerforge/backend/internal/repositories/postgres"
	"github.com/careerforge/backend/internal/storage"
	"github.com/careerforge/backend/internal/utils"
	"github.com/google/uuid"
)

type CVFileService interface {
	Upload(ctx context.Context, userID, fileName string, fileSize int, mimeType, objectName string, r io.Reader) (*models.CVFile, error)
	Latest(ctx context.Context, userID string) (*models.CVFile, error)
}

type cvFileService struct {
	repo     pgrepo.CVFileRepository
	uploader storage.Uploader
}

func NewCVFileService(repo pgrepo.CVFileRepository, uploader storage.Uploader) CVFileService {
	return &cvFileService{repo: repo, uploader: uploader}
}

func (s *cvFileService) Upload(ctx context.Context, userID, fileName string, fileSize int, mimeType, objectName string, r io.Reader) (*models.CVFile, error) {
	const op = "CVFileService.Upload"

	if userID == "" || objectName == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and object_name are required", nil)
	}
	if s.uploader == nil {
		return nil, utils.E(utils.CodeInternal, op, "uploader is not configured", nil)
	}

	storedPath, err := s.uploader.Upload(ctx, objectName, mimeType, r)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload file", err)
	}

	row := &models.CVFile{
		ID:       uuid.NewString(),
		UserID:   userID,
		FileName: fileName,
		FilePath: storedPath,
		FileSize: fileSize,
		MimeType: mimeType,
		UploadAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist cv file metadata", err)
	}

	return row, nil
}

func (s *cvFileService) Latest(ctx context.Context, userID string) (*models.CVFile, error) {
	const op = "CVFileService.Latest"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	row, err := s.repo.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "no cv uploaded yet", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get cv file", err)
	}
	return row, nil
}
