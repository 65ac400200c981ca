package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jonathan/career-roadmap/internal/ingestion"
	"github.com/jonathan/career-roadmap/internal/pipeline"
	"github.com/jonathan/career-roadmap/internal/types"
)

const (
	maxRequestBytes = 1 << 20
	onetUploadName  = "onet_upload.zip"
	onetDirName     = "onet"
)

// UploadResponse represents the response for /upload_onet
type UploadResponse struct {
	Status      string `json:"status"`
	Path        string `json:"path"`
	ExtractedTo string `json:"extracted_to"`
	Files       int    `json:"files"`
}

// decodeGenerateRequest reads and validates a GenerateRequest body.
func (s *Server) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (types.GenerateRequest, error) {
	var req types.GenerateRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, err
		}
		return req, &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return req, validationError(err)
	}
	return req, nil
}

// generate runs the pipeline and exports the result. Export failures are
// logged and the output is returned with whatever images were written.
func (s *Server) generate(r *http.Request, req types.GenerateRequest, onProgress pipeline.ProgressCallback) (*types.GenerateResponse, error) {
	out, err := s.generator.Generate(r.Context(), req, onProgress)
	if err != nil {
		return nil, err
	}

	resp := &types.GenerateResponse{Output: *out, Images: []string{}}
	res, err := s.exporter.Export(r.Context(), out)
	if err != nil {
		s.log.Warn().Err(err).Msg("export failed, returning output without all artifacts")
	}
	if res != nil && res.Images != nil {
		resp.Images = res.Images
	}
	return resp, nil
}

// handleGenerate runs the pipeline for one request
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeGenerateRequest(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resp, err := s.generate(r, req, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("generate failed")
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGenerateStream runs the pipeline and streams progress via SSE
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeGenerateRequest(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	stream, err := newSSEStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp, err := s.generate(r, req, func(event pipeline.ProgressEvent) {
		if werr := stream.send(eventProgress, event); werr != nil {
			s.log.Debug().Err(werr).Msg("client went away during stream")
		}
	})
	if err != nil {
		s.log.Error().Err(err).Msg("generate failed")
		if werr := stream.fail(err.Error()); werr != nil {
			s.log.Debug().Err(werr).Msg("failed to send error event")
		}
		return
	}
	if err := stream.send(eventComplete, resp); err != nil {
		s.log.Debug().Err(err).Msg("failed to send complete event")
	}
}

// handleDownload serves the most recent export
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	path := s.exporter.LatestPath()
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		s.errorResponse(w, http.StatusNotFound, (&ErrNotFound{Resource: "output"}).Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

// handleUploadONET stores an O*NET release zip and extracts it
func (s *Server) handleUploadONET(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, (&ErrValidation{Field: "file", Message: "multipart file is required"}).Error())
		return
	}
	defer func() { _ = file.Close() }()

	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to create data directory")
		return
	}
	zipPath := filepath.Join(s.dataDir, onetUploadName)
	if err := saveUpload(file, zipPath); err != nil {
		s.log.Error().Err(err).Str("path", zipPath).Msg("failed to save upload")
		s.errorResponse(w, HTTPStatus(err), "failed to save upload")
		return
	}

	dest := filepath.Join(s.dataDir, onetDirName)
	files, err := ingestion.ExtractZip(zipPath, dest)
	if err != nil {
		s.log.Warn().Err(err).Str("path", zipPath).Msg("failed to extract upload")
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.log.Info().Str("path", zipPath).Int("files", len(files)).Msg("O*NET upload extracted")
	s.jsonResponse(w, http.StatusOK, UploadResponse{
		Status:      "uploaded",
		Path:        zipPath,
		ExtractedTo: dest,
		Files:       len(files),
	})
}

func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}
