package file

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Traore-oss/SGRH-sub001/internal/pkg/storage"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) FileService {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	return NewFileService(local)
}

func TestUploadCV_ExtensionFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"cv.pdf", false},
		{"CV.PDF", false},
		{"lettre.doc", false},
		{"resume.docx", false},
		{"photo.png", true},
		{"script.exe", true},
		{"noextension", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			key, err := svc.UploadCV(ctx, "offre-1", strings.NewReader("%PDF"), tt.filename)
			if tt.wantErr {
				var verrs validator.ValidationErrors
				require.ErrorAs(t, err, &verrs)
				assert.Equal(t, "cv", verrs[0].Field)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(key, "cv/offre-1/"))
			assert.Equal(t, "/uploads/"+key, svc.FileURL(key))
		})
	}
}

func TestUploadCV_TooLarge(t *testing.T) {
	svc := newTestService(t)

	big := bytes.Repeat([]byte("a"), int(MaxCVSize)+1)
	_, err := svc.UploadCV(context.Background(), "offre-1", bytes.NewReader(big), "cv.pdf")
	assert.ErrorIs(t, err, storage.ErrFileTooLarge)
}

func TestUploadPhoto(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	key, err := svc.UploadPhoto(ctx, "user-1", strings.NewReader("png"), "me.PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.NoError(t, svc.DeleteFile(ctx, key))

	_, err = svc.UploadPhoto(ctx, "user-1", strings.NewReader("gif"), "me.gif")
	assert.Error(t, err)
}

func TestDeleteByURL(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	key, err := svc.UploadPhoto(ctx, "user-1", strings.NewReader("jpg"), "me.jpg")
	require.NoError(t, err)

	assert.NoError(t, svc.DeleteByURL(ctx, svc.FileURL(key)))
	assert.NoError(t, svc.DeleteByURL(ctx, "https://cdn.example.com/photo.jpg"))
}
