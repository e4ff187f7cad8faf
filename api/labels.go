package api

import (
	"bytes"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cooperunion/asset-tags/label"
)

type statusResponse struct {
	Status  string   `json:"status"`
	Version string   `json:"version"`
	Layouts []string `json:"layouts"`
}

type layoutInfo struct {
	Name     string       `json:"name"`
	Canvases []canvasInfo `json:"canvases"`
}

type canvasInfo struct {
	Suffix string `json:"suffix"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) layoutNames() []string {
	names := make([]string, 0, len(s.Renderers))
	for name := range s.Renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "ok",
		Version: s.Version,
		Layouts: s.layoutNames(),
	})
}

func (s *Server) handleLayouts(w http.ResponseWriter, r *http.Request) {
	var resp []layoutInfo
	for _, name := range s.layoutNames() {
		l := s.Renderers[name].Layout()
		info := layoutInfo{Name: l.Name}
		for _, c := range l.Canvases {
			info.Canvases = append(info.Canvases, canvasInfo{Suffix: c.Suffix, Width: c.Width, Height: c.Height})
		}
		resp = append(resp, info)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleLabel renders a single label file on demand. The file parameter
// has the same form as the generated file names, e.g. "42.png" or
// "42_small.png".
func (s *Server) handleLabel(w http.ResponseWriter, r *http.Request) {
	rdr, ok := s.Renderers[chi.URLParam(r, "layout")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown layout")
		return
	}

	file := chi.URLParam(r, "file")
	stem, ok := strings.CutSuffix(file, ".png")
	if !ok {
		writeError(w, http.StatusNotFound, "label files end in .png")
		return
	}

	// Split the leading digits (tag number) from the canvas suffix.
	i := 0
	if i < len(stem) && stem[i] == '-' {
		i++
	}
	for i < len(stem) && stem[i] >= '0' && stem[i] <= '9' {
		i++
	}
	n, err := strconv.Atoi(stem[:i])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tag number")
		return
	}
	suffix := stem[i:]

	index := -1
	for ci, c := range rdr.Layout().Canvases {
		if c.Suffix == suffix {
			index = ci
			break
		}
	}
	if index < 0 {
		writeError(w, http.StatusNotFound, "unknown canvas")
		return
	}

	artifact, err := rdr.RenderCanvas(n, index)
	if err != nil {
		var de *label.DomainError
		if errors.As(err, &de) {
			writeError(w, http.StatusBadRequest, de.Error())
			return
		}
		s.Log.Error("render label failed", "file", file, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := label.EncodePNG(&buf, artifact.Image); err != nil {
		s.Log.Error("encode label failed", "file", file, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
