package file

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/Traore-oss/SGRH-sub001/internal/pkg/storage"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
	"github.com/google/uuid"
)

const (
	MaxPhotoSize int64 = 2 << 20
	MaxCVSize    int64 = 5 << 20
)

var (
	photoExtensions = []string{".jpg", ".jpeg", ".png"}
	cvExtensions    = []string{".pdf", ".doc", ".docx"}
)

type FileService interface {
	// UploadPhoto stores an employee photo (jpg, jpeg, png).
	UploadPhoto(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// UploadCV stores a candidate CV (pdf, doc, docx) of at most 5 MB.
	UploadCV(ctx context.Context, offreID string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, key string) error

	// DeleteByURL removes the file a public URL points to. URLs outside the
	// storage are ignored.
	DeleteByURL(ctx context.Context, url string) error

	FileURL(key string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// checkExtension returns the lower-cased extension of filename when it is allowed.
func checkExtension(filename string, field string, allowed []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !validator.IsInSlice(ext, allowed) {
		return "", validator.ValidationErrors{{
			Field:   field,
			Message: fmt.Sprintf("type de fichier non autorisé: %s", strings.Join(allowed, ", ")),
		}}
	}
	return ext, nil
}

func (s *fileServiceImpl) UploadPhoto(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext, err := checkExtension(filename, "photo", photoExtensions)
	if err != nil {
		return "", err
	}

	key := path.Join("photos", userID, uuid.New().String()+ext)

	uploaded, err := s.storage.Save(ctx, file, key, MaxPhotoSize)
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return uploaded, nil
}

func (s *fileServiceImpl) UploadCV(ctx context.Context, offreID string, file io.Reader, filename string) (string, error) {
	ext, err := checkExtension(filename, "cv", cvExtensions)
	if err != nil {
		return "", err
	}

	key := path.Join("cv", offreID, uuid.New().String()+ext)

	uploaded, err := s.storage.Save(ctx, file, key, MaxCVSize)
	if err != nil {
		return "", fmt.Errorf("failed to upload cv: %w", err)
	}

	return uploaded, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func (s *fileServiceImpl) FileURL(key string) string {
	return s.storage.URL(key)
}

func (s *fileServiceImpl) DeleteByURL(ctx context.Context, url string) error {
	prefix := s.storage.URL("")
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	return s.storage.Delete(ctx, strings.TrimPrefix(url, prefix))
}
