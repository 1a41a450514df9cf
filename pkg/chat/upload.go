package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// ErrNotPDF is returned when a selected file fails the client-side PDF
// gate. No network call is made in that case.
var ErrNotPDF = errors.New("not a PDF file")

// pdfMagic is the file signature every PDF starts with.
var pdfMagic = []byte("%PDF")

// IsPDF reports whether a file named name with leading bytes header looks
// like a PDF. Either signal alone fails the gate.
func IsPDF(name string, header []byte) bool {
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return false
	}
	return bytes.HasPrefix(header, pdfMagic)
}

// UploadPDF sends one document over the upload side-channel. The file is
// gated client-side first: a non-PDF yields ErrNotPDF with zero network
// calls. A service-reported failure (success:false) is returned as an error
// carrying the service's reason when it provides one.
func (c *Client) UploadPDF(ctx context.Context, name string, data []byte, sessionID string) (*UploadResponse, error) {
	if !IsPDF(name, data) {
		return nil, ErrNotPDF
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("pdf", filepath.Base(name))
	if err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if err := form.WriteField("sessionId", sessionID); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload_pdf", &body)
	if err != nil {
		return nil, fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading upload response: %w", err)
	}
	// The service reports failures as {success:false, error} even on
	// non-2xx statuses; prefer its reason over a bare status code.
	var out UploadResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("upload failed with status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}
	if !out.Success {
		reason := out.Error
		if reason == "" {
			reason = "upload failed"
		}
		return &out, errors.New(reason)
	}
	return &out, nil
}
