package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/exzellenz/exzellenz/pkg/compose"
	errs "github.com/exzellenz/exzellenz/pkg/errors"
	"github.com/exzellenz/exzellenz/pkg/pipeline"
	"github.com/exzellenz/exzellenz/pkg/preview"
	"github.com/exzellenz/exzellenz/pkg/render"
)

// DefaultPreviewWidth is the container width assumed when /preview.svg is
// requested without a width.
const DefaultPreviewWidth = 800

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// indexResponse pre-fills the export form.
type indexResponse struct {
	Text          string   `json:"text"`
	Format        string   `json:"format"`
	Height        float64  `json:"height"`
	Padding       float64  `json:"padding"`
	Transparent   bool     `json:"transparent"`
	Color         string   `json:"color"`
	FontPath      string   `json:"font_path"`
	Families      []string `json:"families"` // Measurable font families
	ExportEnabled bool     `json:"export_enabled"`
	ExportBlocked string   `json:"export_blocked,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	e := s.cfg.Export
	resp := indexResponse{
		Text:        text,
		Format:      e.Format,
		Height:      e.Height,
		Padding:     e.Padding,
		Transparent: e.Transparent,
		Color:       e.Color,
		FontPath:    s.cfg.Server.FontPath,
	}
	if err := s.runner.CanExport(r.Context(), text); err != nil {
		resp.ExportBlocked = errs.UserMessage(err)
	} else {
		resp.ExportEnabled = true
	}
	resp.Families = s.runner.Measurer.Registry().Families()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFont(w http.ResponseWriter, r *http.Request) {
	res, err := s.runner.Fonts.Load(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", res.MIMEType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Write(res.Data)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, err := s.exportRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	art, err := s.runner.Export(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", art.MIMEType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": art.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(art.Data)))
	w.Header().Set("X-Artifact-ID", art.ID)
	w.Write(art.Data)
}

// exportRequest reads an export request from the query string over the
// configured defaults.
func (s *Server) exportRequest(r *http.Request) (pipeline.ExportRequest, error) {
	q := r.URL.Query()
	req := s.cfg.ExportRequest(q.Get("text"))

	if v := q.Get("format"); v != "" {
		f, err := pipeline.ParseFormat(v)
		if err != nil {
			return req, err
		}
		req.Format = f
	}
	if v := q.Get("height"); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, errs.New(errs.ErrCodeInvalidInput, "invalid height %q", v)
		}
		req.Height = h
	}
	if v := q.Get("padding"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, errs.New(errs.ErrCodeInvalidInput, "invalid padding %q", v)
		}
		req.Padding = p
	}
	if v := q.Get("transparent"); v != "" {
		t, err := strconv.ParseBool(v)
		if err != nil {
			return req, errs.New(errs.ErrCodeInvalidInput, "invalid transparent flag %q", v)
		}
		req.Transparent = t
	}
	if v := q.Get("color"); v != "" {
		req.Color = v
	}
	return req, nil
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	width := float64(DefaultPreviewWidth)
	if v := q.Get("width"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "invalid width %q", v))
			return
		}
		width = f
	}

	// Register the font if it has arrived; otherwise the preview falls back.
	if res, err := s.runner.Fonts.Result(); err == nil {
		reg := s.runner.Measurer.Registry()
		if !reg.Has(res.Family) {
			if err := res.Register(reg); err != nil {
				s.logger.Warn("register font for preview", "err", err)
			}
		}
	}

	c := &staticContainer{width: width}
	h := preview.Attach(c, s.runner.Measurer,
		preview.WithFamily(s.runner.Fonts.Family()),
		preview.WithFallbackFamily(s.cfg.Preview.FallbackFamily),
		preview.WithViewBoxWidth(s.cfg.Preview.ViewBoxWidth))

	text := q.Get("text")
	valid := text == "" || errs.ValidateText(text) == nil
	if err := h.UpdateValidated(text, valid); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", render.MIMETypeSVG)
	w.Header().Set("Cache-Control", "no-store")
	if c.frame.Degraded {
		w.Header().Set("X-Preview-Degraded", "true")
	}
	w.Write([]byte(render.ToVectorText(c.frame.Document(compose.DefaultTextColor))))
}

// staticContainer is a preview container of fixed width that keeps the
// last presented frame.
type staticContainer struct {
	width float64
	frame preview.Frame
}

func (c *staticContainer) Width() float64          { return c.width }
func (c *staticContainer) Present(f preview.Frame) { c.frame = f }

// errorResponse is the JSON body of every error.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "status", status, "err", err)
	}
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Error: string(code), Message: errs.UserMessage(err)})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidColor, errs.ErrCodeDegenerateInput:
		return http.StatusBadRequest
	case errs.ErrCodeResourceFetch, errs.ErrCodeFontNotLoaded:
		return http.StatusServiceUnavailable
	case errs.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
