package impl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"cargomatch/config"
	deliverycontext "cargomatch/internal/delivery/context"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/service"
	"cargomatch/internal/usecase"
	"cargomatch/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	pdfContentType       = "application/pdf"
	defaultUploadFolder  = "cargomatch"
	defaultMaxUploadSize = 10 << 20
	defaultSignedURLTTL  = time.Hour
)

var pdfMagic = []byte("%PDF-")

// Document URL shapes, tried in order.
var (
	versionedRawPattern   = regexp.MustCompile(`/raw/upload/(v\d+/[^?#]+)`)
	unversionedRawPattern = regexp.MustCompile(`/raw/upload/([^?#]+)`)
	localUploadPattern    = regexp.MustCompile(`/api/files/uploads/([^?#]+)`)
)

type documentService struct {
	storage      service.DocumentStorage
	folder       string
	maxSize      int64
	signedURLTTL time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

// DocumentServiceParams holds dependencies for DocumentService, injected by Fx.
type DocumentServiceParams struct {
	fx.In

	Storage service.DocumentStorage
	Config  *config.Config
	Logger  *slog.Logger
}

// NewDocumentService creates the document upload service
func NewDocumentService(params DocumentServiceParams) usecase.DocumentUsecase {
	srv := &documentService{
		storage:      params.Storage,
		folder:       defaultUploadFolder,
		maxSize:      defaultMaxUploadSize,
		signedURLTTL: defaultSignedURLTTL,
		logger:       params.Logger,
		now:          utcNow,
	}

	if cfg := params.Config.Storage; cfg != nil {
		if folder := strings.Trim(cfg.Folder, "/ "); folder != "" {
			srv.folder = folder
		}
		if cfg.MaxUploadSize > 0 {
			srv.maxSize = cfg.MaxUploadSize
		}
		if cfg.SignedURLTTL > 0 {
			srv.signedURLTTL = cfg.SignedURLTTL
		}
	}

	return srv
}

// Upload stores a PDF under raw/upload/v<unix>/<folder>/<uuid>.pdf.
func (srv *documentService) Upload(ctx context.Context, input *usecase.UploadInput) (*usecase.UploadOutput, error) {
	if input.Size > srv.maxSize {
		return nil, domainerrors.ErrDocumentInvalid.WithDetails(fmt.Sprintf("file exceeds %s", util.FormatBytes(srv.maxSize)))
	}
	if !strings.EqualFold(path.Ext(input.Filename), ".pdf") && !strings.HasPrefix(input.ContentType, pdfContentType) {
		return nil, domainerrors.ErrDocumentInvalid.WithDetails("only PDF files are accepted")
	}

	content := bufio.NewReader(io.LimitReader(input.Content, srv.maxSize+1))
	head, err := content.Peek(len(pdfMagic))
	if err != nil || !bytes.Equal(head, pdfMagic) {
		return nil, domainerrors.ErrDocumentInvalid.WithDetails("file is not a PDF document")
	}

	publicID := srv.folder + "/" + uuid.NewString()
	key := fmt.Sprintf("raw/upload/v%d/%s.pdf", srv.now().Unix(), publicID)

	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	checksum := util.NewChecksumReader(content)
	stored, err := srv.storage.Put(ctx, key, checksum, pdfContentType)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store document")
	}
	// Uploads of unknown length are only measured here; drop what was written.
	if stored.Size > srv.maxSize {
		if err := srv.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
			logger.Warn("Failed to remove oversized upload", slog.String("key", key), slog.Any("error", err))
		}

		return nil, domainerrors.ErrDocumentInvalid.WithDetails(fmt.Sprintf("file exceeds %s", util.FormatBytes(srv.maxSize)))
	}

	logger.Info("Document uploaded",
		slog.String("key", key),
		slog.String("size", util.FormatBytes(stored.Size)),
	)

	return &usecase.UploadOutput{
		URL:      stored.URL,
		PublicID: publicID,
		Size:     stored.Size,
		Checksum: checksum.Sum(),
	}, nil
}

// MakePublic resolves a stored document URL and returns a link readable
// without authentication.
func (srv *documentService) MakePublic(ctx context.Context, documentURL string) (string, error) {
	key, ok := extractDocumentKey(documentURL)
	if !ok {
		return "", domainerrors.ErrDocumentURLUnrecognized
	}

	public, err := srv.storage.PublicURL(ctx, key, srv.signedURLTTL)
	if err != nil {
		if errors.Is(err, service.ErrObjectNotFound) {
			return "", domainerrors.ErrDocumentNotFound.WithDetails(key)
		}

		return "", errors.Wrap(err, "failed to create public document URL")
	}

	return public, nil
}

// OpenUpload streams a stored upload by key.
func (srv *documentService) OpenUpload(ctx context.Context, filename string) (io.ReadCloser, error) {
	key := strings.TrimPrefix(path.Clean("/"+filename), "/")
	if key == "" || key != strings.TrimPrefix(filename, "/") {
		return nil, domainerrors.ErrDocumentNotFound
	}

	rc, err := srv.storage.Open(ctx, key)
	if err != nil {
		if errors.Is(err, service.ErrObjectNotFound) {
			return nil, domainerrors.ErrDocumentNotFound
		}

		return nil, errors.Wrap(err, "failed to open document")
	}

	return rc, nil
}

// extractDocumentKey finds the object key in a document URL: a versioned raw
// URL, an unversioned raw URL, a local uploads URL, or finally the bare path.
func extractDocumentKey(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if m := versionedRawPattern.FindStringSubmatch(raw); m != nil {
		return "raw/upload/" + m[1], true
	}
	if m := unversionedRawPattern.FindStringSubmatch(raw); m != nil {
		return "raw/upload/" + m[1], true
	}
	if m := localUploadPattern.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}

	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	p = strings.Trim(p, "/")
	if p == "" || strings.Contains(p, "..") {
		return "", false
	}

	return p, true
}
