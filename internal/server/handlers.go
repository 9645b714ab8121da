package server

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/diogo/posechat/internal/models"
	"github.com/diogo/posechat/internal/recommend"
)

type responseView struct {
	Results []resultView
}

type resultView struct {
	Keyword string
	Poses   []poseView
}

type poseView struct {
	Name  string
	Title string
	Steps string
	Video string
	Image template.URL
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "index.html", nil)
}

func (s *Server) handleResponse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}
	values, ok := r.PostForm[models.FieldUserInput]
	if !ok {
		http.Error(w, "missing "+models.FieldUserInput, http.StatusBadRequest)
		return
	}
	input := values[0]

	results := s.recommender.Recommend(input)
	s.logger.Debug("recommendation",
		"request_id", middleware.GetReqID(r.Context()),
		"input", input,
		"matches", len(results),
	)

	s.render(w, r, "response.html", newResponseView(results))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("template failed",
			"request_id", middleware.GetReqID(r.Context()),
			"template", name,
			"error", err,
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func newResponseView(results []recommend.Result) responseView {
	view := responseView{Results: make([]resultView, 0, len(results))}
	for _, res := range results {
		rv := resultView{Keyword: displayName(res.Keyword)}
		for _, rec := range res.Recommendations {
			pv := poseView{
				Name:  rec.Pose,
				Title: displayName(rec.Pose),
				Steps: rec.Steps,
				Video: rec.Video,
			}
			if rec.Image != nil {
				// Data URIs built from our own files; html/template would otherwise filter them.
				pv.Image = template.URL("data:" + rec.Image.MIMEType + ";base64," + rec.Image.Data)
			}
			rv.Poses = append(rv.Poses, pv)
		}
		view.Results = append(view.Results, rv)
	}
	return view
}

// displayName turns a snake_case identifier into words.
func displayName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
