package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"skillbridge/readiness-api/internal/models"
	"skillbridge/readiness-api/internal/repositories"
	"skillbridge/readiness-api/pkg/apperror"
)

const resumeContentType = "application/pdf"

type ResumeService interface {
	// Upload stores a PDF résumé and links it to the profile. Linking is best-effort.
	Upload(ctx context.Context, profileID uuid.UUID, file *multipart.FileHeader) (*models.UploadResponse, error)
	// ResolveText returns the profile's résumé text, or "" when none is usable.
	// It never fails.
	ResolveText(ctx context.Context, profile *models.Profile) string
}

type resumeService struct {
	profileRepo repositories.ProfileRepository
	storage     StorageService
	parser      PDFParserService
	maxFileSize int64
	now         func() time.Time
	log         *slog.Logger
}

func NewResumeService(
	profileRepo repositories.ProfileRepository,
	storage StorageService,
	parser PDFParserService,
	maxFileSize int64,
) ResumeService {
	return &resumeService{
		profileRepo: profileRepo,
		storage:     storage,
		parser:      parser,
		maxFileSize: maxFileSize,
		now:         time.Now,
		log:         slog.With("component", "resume"),
	}
}

// FormatSize renders a byte limit in the largest whole unit, e.g. "5MB" or "512KB".
func FormatSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

// ResumeKey is the object key for a résumé uploaded at ts.
func ResumeKey(profileID uuid.UUID, ts time.Time) string {
	return fmt.Sprintf("resumes/%s-%d.pdf", profileID, ts.UnixMilli())
}

func (s *resumeService) Upload(ctx context.Context, profileID uuid.UUID, file *multipart.FileHeader) (*models.UploadResponse, error) {
	if file == nil || profileID == uuid.Nil {
		return nil, apperror.BadRequest("Missing file or uuid")
	}

	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		return nil, apperror.BadRequest("Only PDF files allowed")
	}

	if file.Size > s.maxFileSize {
		return nil, apperror.BadRequest(fmt.Sprintf("File too large (max %s)", FormatSize(s.maxFileSize)))
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperror.Internal("Failed to read uploaded file", err)
	}
	defer src.Close()

	// Read one byte past the limit so an understated header size is still caught
	data, err := io.ReadAll(io.LimitReader(src, s.maxFileSize+1))
	if err != nil {
		return nil, apperror.Internal("Failed to read uploaded file", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, apperror.BadRequest(fmt.Sprintf("File too large (max %s)", FormatSize(s.maxFileSize)))
	}

	if !HasPDFSignature(bytes.NewReader(data)) {
		return nil, apperror.BadRequest("File is not a valid PDF")
	}

	key := ResumeKey(profileID, s.now())
	if err := s.storage.Upload(ctx, key, resumeContentType, data); err != nil {
		s.log.Error("Storage upload failed", "key", key, "error", err)
		return nil, apperror.Internal("Failed to store resume", err)
	}

	if err := s.profileRepo.UpdateResumePath(ctx, profileID, key); err != nil {
		s.log.Warn("Could not link resume to profile", "profile", profileID, "error", err)
	}

	return &models.UploadResponse{
		Success:   true,
		Path:      key,
		PublicURL: s.storage.PublicURL(key),
		Message:   "Resume uploaded successfully",
	}, nil
}

func (s *resumeService) ResolveText(ctx context.Context, profile *models.Profile) string {
	if cached := strings.TrimSpace(profile.ResumeText); cached != "" {
		return cached
	}

	if profile.ResumePath == "" {
		return ""
	}

	data, err := s.storage.Download(ctx, profile.ResumePath)
	if err != nil {
		s.log.Warn("Resume download failed", "profile", profile.UUID, "path", profile.ResumePath, "error", err)
		return ""
	}

	text, err := s.parser.ExtractText(data)
	if err != nil {
		s.log.Warn("PDF extraction failed", "profile", profile.UUID, "error", err)
		return ""
	}

	text = CleanText(text)
	if text == "" {
		return ""
	}

	if err := s.profileRepo.UpdateResumeText(ctx, profile.UUID, text); err != nil {
		s.log.Warn("Could not cache resume text", "profile", profile.UUID, "error", err)
	}
	profile.ResumeText = text

	return text
}
