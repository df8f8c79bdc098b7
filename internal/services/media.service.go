package services

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	. "depositdefender/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
)

// ErrInvalidMediaData marks a payload that is not a well-formed base64 data
// URI of a supported media kind. Caught before anything reaches storage.
var ErrInvalidMediaData = errors.New("invalid media data")

// MediaService validates captured media payloads and builds the immutable
// MediaFile records attached to checklist items.
type MediaService struct {
	log logger.Logger
}

func NewMediaService() *MediaService {
	return &MediaService{
		log: logger.New("mediaService"),
	}
}

// NewMediaFile parses and validates a data URI payload. The returned record
// is immutable; removal later is a plain filter out of the owning item's
// collection.
func (s *MediaService) NewMediaFile(filename, dataURL string, watermarked bool) (MediaFile, error) {
	log := s.log.Function("NewMediaFile")

	mediaType, size, err := parseDataURL(dataURL)
	if err != nil {
		return MediaFile{}, log.Err("rejected media payload", err, "filename", filename)
	}

	return MediaFile{
		ID:          uuid.New().String(),
		Filename:    filename,
		DataURL:     dataURL,
		Type:        mediaType,
		Size:        size,
		Timestamp:   time.Now().UTC(),
		Watermarked: watermarked,
	}, nil
}

// parseDataURL validates a "data:<mime>;base64,<payload>" string, returning
// the media kind and decoded byte size.
func parseDataURL(dataURL string) (MediaType, int64, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", 0, ErrInvalidMediaData
	}

	header, payload, found := strings.Cut(dataURL[len("data:"):], ",")
	if !found {
		return "", 0, ErrInvalidMediaData
	}

	if !strings.HasSuffix(header, ";base64") {
		return "", 0, ErrInvalidMediaData
	}
	mime := strings.TrimSuffix(header, ";base64")

	var mediaType MediaType
	switch {
	case strings.HasPrefix(mime, "image/"):
		mediaType = MediaTypeImage
	case strings.HasPrefix(mime, "video/"):
		mediaType = MediaTypeVideo
	default:
		return "", 0, ErrInvalidMediaData
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", 0, ErrInvalidMediaData
	}

	return mediaType, int64(len(decoded)), nil
}
