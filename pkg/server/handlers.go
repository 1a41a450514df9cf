package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/axiomcanvas/canvas-flow/pkg/chat"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding the local envelope types cannot fail; ignore the writer's
	// error, the client is already gone if it surfaces.
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req chat.ExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, &chat.ExchangeResponse{
			ChatResponse: "Invalid request body.",
		})
		return
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, &chat.ExchangeResponse{
			ChatResponse: "Please provide a message.",
		})
		return
	}

	docContext := s.store.context(req.SessionID, s.cfg.MaxContextChars)
	userPrompt := formatConversation(req, docContext)

	raw, err := s.provider.Complete(r.Context(), s.systemPrompt, userPrompt)
	if err != nil {
		s.logger.WithError(err).WithField("session", req.SessionID).Error("provider completion failed")
		writeJSON(w, http.StatusInternalServerError, &chat.ExchangeResponse{
			ChatResponse: "An error occurred while generating a response. Please try again.",
		})
		return
	}

	reply := ExtractReply(raw)
	s.logger.WithFields(logrus.Fields{
		"session":  req.SessionID,
		"history":  len(req.History),
		"graph":    expressionSummary(req.CurrentExpressions),
		"commands": len(reply.GraphCommands),
		"elapsed":  time.Since(start).Round(time.Millisecond),
	}).Info("chat turn completed")

	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleUploadPDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, &chat.UploadResponse{
			Success: false,
			Error:   "invalid upload form",
		})
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, &chat.UploadResponse{
			Success: false,
			Error:   "no PDF file provided",
		})
		return
	}
	defer file.Close()

	sessionID := r.FormValue("sessionId")
	if sessionID == "" {
		sessionID = "default"
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, &chat.UploadResponse{
			Success: false,
			Error:   "could not read uploaded file",
		})
		return
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		writeJSON(w, http.StatusBadRequest, &chat.UploadResponse{
			Success: false,
			Error:   "file is not a PDF",
		})
		return
	}

	var text string
	if s.extractor != nil {
		text, err = s.extractor.Extract(header.Filename, data)
		if err != nil {
			s.logger.WithError(err).WithField("file", header.Filename).Error("text extraction failed")
			writeJSON(w, http.StatusInternalServerError, &chat.UploadResponse{
				Success: false,
				Error:   "failed to process PDF",
			})
			return
		}
	}

	s.store.add(sessionID, document{
		Name: header.Filename,
		Size: len(data),
		Text: text,
	})

	s.logger.WithFields(logrus.Fields{
		"session": sessionID,
		"file":    header.Filename,
		"bytes":   len(data),
		"docs":    s.store.count(sessionID),
	}).Info("pdf uploaded")

	writeJSON(w, http.StatusOK, &chat.UploadResponse{
		Success: true,
		Message: "Successfully processed " + header.Filename,
	})
}
