package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pdfBytes = []byte("%PDF-1.4 fake document body")

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		header   []byte
		want     bool
	}{
		{name: "valid pdf", filename: "notes.pdf", header: pdfBytes, want: true},
		{name: "uppercase extension", filename: "NOTES.PDF", header: pdfBytes, want: true},
		{name: "wrong extension", filename: "notes.txt", header: pdfBytes, want: false},
		{name: "wrong magic", filename: "notes.pdf", header: []byte("PK\x03\x04"), want: false},
		{name: "empty file", filename: "notes.pdf", header: nil, want: false},
		{name: "magic not at start", filename: "notes.pdf", header: []byte("x%PDF"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPDF(tt.filename, tt.header))
		})
	}
}

func TestUploadPDFRejectsNonPDFWithoutNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.UploadPDF(context.Background(), "notes.txt", []byte("plain text"), "session-1")
	assert.ErrorIs(t, err, ErrNotPDF)
	assert.Zero(t, hits.Load())
}

func TestUploadPDFSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload_pdf", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "session-1", r.FormValue("sessionId"))

		file, header, err := r.FormFile("pdf")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.pdf", header.Filename)

		json.NewEncoder(w).Encode(UploadResponse{
			Success: true,
			Message: "Successfully processed notes.pdf",
			Chunks:  3,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	out, err := c.UploadPDF(context.Background(), "notes.pdf", pdfBytes, "session-1")
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 3, out.Chunks)
}

func TestUploadPDFServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(UploadResponse{
			Success: false,
			Error:   "failed to process PDF",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.UploadPDF(context.Background(), "notes.pdf", pdfBytes, "session-1")
	require.Error(t, err)
	// The service reason wins over the bare status code.
	assert.Contains(t, err.Error(), "failed to process PDF")
}

func TestUploadPDFOpaqueServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html>bad gateway</html>", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.UploadPDF(context.Background(), "notes.pdf", pdfBytes, "session-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
