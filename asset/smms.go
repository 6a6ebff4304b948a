package asset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"htmlcoder/config"
	"htmlcoder/misc"
)

const (
	smmsField          = "smfile"
	smmsCodeSuccess    = "success"
	smmsCodeRepeated   = "image_repeated"
	smmsMaxResponse    = 1 << 20
	smmsDefaultTimeout = 30 * time.Second
)

// ErrUploadRejected is returned when image host refuses the picture.
var ErrUploadRejected = errors.New("upload rejected")

type smmsResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		URL    string `json:"url"`
		Delete string `json:"delete"`
	} `json:"data"`
	// set when the same picture was uploaded before
	Images string `json:"images"`
}

// SMMSHost uploads pictures to sm.ms compatible service.
type SMMSHost struct {
	log      *zap.Logger
	client   *http.Client
	endpoint string
	token    config.SecretString
}

// NewSMMSHost returns host for cfg. Zero timeout means default one.
func NewSMMSHost(cfg *config.SMMSHostConfig, log *zap.Logger) *SMMSHost {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = smmsDefaultTimeout
	}
	return &SMMSHost{
		log:      log.Named("smms"),
		client:   &http.Client{Timeout: timeout},
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
	}
}

func (h *SMMSHost) Name() string {
	return "smms:" + h.endpoint
}

func (h *SMMSHost) Upload(ctx context.Context, hash string, img *Prepared) (link string, err error) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile(smmsField, hash+img.Ext)
	if err != nil {
		return "", fmt.Errorf("unable to prepare upload: %w", err)
	}
	if _, err := fw.Write(img.Data); err != nil {
		return "", fmt.Errorf("unable to prepare upload: %w", err)
	}
	if err := mw.WriteField("format", "json"); err != nil {
		return "", fmt.Errorf("unable to prepare upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("unable to prepare upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("unable to prepare upload: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("User-Agent", misc.GetAppName()+"/"+misc.GetVersion())
	if h.token != "" {
		req.Header.Set("Authorization", h.token.Reveal())
	}

	h.log.Debug("Uploading image", zap.String("hash", hash), zap.String("type", img.MIME), zap.Int("size", len(img.Data)))

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to upload image: %w", err)
	}
	defer func() {
		err = multierr.Append(err, resp.Body.Close())
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, smmsMaxResponse))
	if err != nil {
		return "", fmt.Errorf("unable to read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: http status %d", ErrUploadRejected, resp.StatusCode)
	}

	var r smmsResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return "", fmt.Errorf("unable to decode upload response: %w", err)
	}

	switch {
	case r.Success && r.Data.URL != "":
		return r.Data.URL, nil
	case r.Code == smmsCodeRepeated && r.Images != "":
		h.log.Debug("Image already uploaded", zap.String("hash", hash), zap.String("url", r.Images))
		return r.Images, nil
	case r.Code == smmsCodeSuccess:
		return "", fmt.Errorf("%w: no url in response", ErrUploadRejected)
	}
	return "", fmt.Errorf("%w: [%s] %s", ErrUploadRejected, r.Code, r.Message)
}
