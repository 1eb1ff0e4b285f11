package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
)

// Download constants
const (
	DefaultFileName     = "clip"
	ProgressStepBytes   = 256 * 1024
	maxExtensionLength  = 5
	contentTypeHeader   = "Content-Type"
	octetStreamMimeType = "application/octet-stream"
)

// ErrFetchFailed is returned when the media server answers with a non-2xx status
var ErrFetchFailed = errors.New("failed to fetch source")

var errNoSaver = errors.New("no saver configured")

// Service handles media fetch operations
type Service struct {
	client *http.Client

	mu            sync.RWMutex
	saver         Saver
	fileName      string
	keepExtension bool
}

// NewService creates a new download service saving through saver
func NewService(client *http.Client, saver Saver) *Service {
	if client == nil {
		// No client timeout: the caller's context bounds the transfer.
		client = &http.Client{}
	}
	return &Service{
		client:   client,
		saver:    saver,
		fileName: DefaultFileName,
	}
}

// SetFileName sets the suggested base file name; empty restores the default
func (s *Service) SetFileName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultFileName
	}
	s.mu.Lock()
	s.fileName = name
	s.mu.Unlock()
}

// SetKeepExtension controls whether an extension derived from the response is
// appended to the suggested file name
func (s *Service) SetKeepExtension(keep bool) {
	s.mu.Lock()
	s.keepExtension = keep
	s.mu.Unlock()
}

// SetSaver replaces the destination for fetched bytes
func (s *Service) SetSaver(saver Saver) {
	s.mu.Lock()
	s.saver = saver
	s.mu.Unlock()
}

// Fetch downloads source with one GET and saves it under the suggested name.
// A non-2xx response is logged and reported as ErrFetchFailed; nothing is
// saved in that case.
func (s *Service) Fetch(ctx context.Context, source string, onProgress func(done, total int64)) (string, error) {
	s.mu.RLock()
	saver, fileName, keepExtension := s.saver, s.fileName, s.keepExtension
	s.mu.RUnlock()

	if saver == nil {
		return "", errNoSaver
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("failed to fetch source: %s", resp.Status)
		return "", fmt.Errorf("%w: unexpected status code: %d", ErrFetchFailed, resp.StatusCode)
	}

	name := suggestedName(fileName, keepExtension, resp.Header.Get(contentTypeHeader), source)

	var body io.Reader = resp.Body
	if onProgress != nil {
		onProgress(0, resp.ContentLength)
		body = &progressReader{r: resp.Body, total: resp.ContentLength, report: onProgress}
	}

	outputPath, err := saver.Save(ctx, name, body)
	if err != nil {
		return "", fmt.Errorf("failed to save video: %w", err)
	}

	log.Printf("Saved %s to %s", source, outputPath)
	return outputPath, nil
}

// suggestedName returns the file name offered to the saver
func suggestedName(fileName string, keepExtension bool, contentType, source string) string {
	if !keepExtension {
		return fileName
	}
	if ext := extensionFor(contentType, source); ext != "" && !strings.HasSuffix(fileName, ext) {
		return fileName + ext
	}
	return fileName
}

// extensionFor derives a file extension from the media type, falling back to
// the extension in the source URL path
func extensionFor(contentType, source string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType != octetStreamMimeType {
		if mediaType == "video/mp4" {
			return ".mp4"
		}
		if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
			return exts[0]
		}
	}

	if u, err := url.Parse(source); err == nil {
		ext := path.Ext(u.Path)
		if len(ext) > 1 && len(ext) <= maxExtensionLength {
			return strings.ToLower(ext)
		}
	}
	return ""
}

// progressReader reports transferred bytes every ProgressStepBytes and at EOF
type progressReader struct {
	r        io.Reader
	done     int64
	total    int64
	reported int64
	report   func(done, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.done += int64(n)
	if p.done-p.reported >= ProgressStepBytes || (err == io.EOF && p.done != p.reported) {
		p.reported = p.done
		p.report(p.done, p.total)
	}
	return n, err
}
