// Package recommend turns a free-text complaint into yoga pose recommendations.
package recommend

import (
	"log/slog"
	"strings"
)

// Recommendation is one pose suggested for a matched condition.
type Recommendation struct {
	Pose  string
	Steps string
	Video string
	Image *PoseImage
}

// Result groups the recommendations for one matched keyword.
type Result struct {
	Keyword         string
	Recommendations []Recommendation
}

// Engine matches input against a condition table and resolves poses from a catalog.
type Engine struct {
	table    Table
	catalog  Catalog
	imageDir string
	logger   *slog.Logger
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithTable replaces the built-in condition table
func WithTable(t Table) EngineOption {
	return func(e *Engine) {
		e.table = t
	}
}

// WithImageDir sets the directory holding one sub-directory of pictures per pose
func WithImageDir(dir string) EngineOption {
	return func(e *Engine) {
		e.imageDir = dir
	}
}

// WithLogger sets the engine logger
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine over catalog.
func NewEngine(catalog Catalog, opts ...EngineOption) *Engine {
	e := &Engine{
		table:   DefaultTable,
		catalog: catalog,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend matches input in three passes, stopping at the first that yields
// anything: a multi-word condition, then single-word conditions, then fuzzy
// matches of the raw tokens.
func (e *Engine) Recommend(input string) []Result {
	keywords := Keywords(input)
	e.logger.Debug("keywords extracted", "keywords", keywords)

	if cond, ok := e.matchMultiWord(keywords); ok {
		e.logger.Debug("condition matched", "condition", cond, "pass", "multi-word")
		return []Result{e.result(cond, cond)}
	}

	var results []Result
	for _, kw := range keywords {
		if _, ok := e.table.Lookup(kw); ok {
			results = append(results, e.result(kw, kw))
		}
	}
	if len(results) > 0 {
		return results
	}

	names := e.table.Names()
	for _, tok := range Tokenize(input) {
		if _, ok := e.table.Lookup(tok); ok {
			continue
		}
		if cond, ok := ClosestMatch(tok, names, closeMatchCutoff); ok {
			e.logger.Debug("condition matched", "condition", cond, "token", tok, "pass", "fuzzy")
			results = append(results, e.result(tok, cond))
		}
	}
	return results
}

// matchMultiWord returns the first condition whose i-th word appears within
// the keyword window starting at i, for every word of the condition.
func (e *Engine) matchMultiWord(keywords []string) (string, bool) {
	for _, c := range e.table {
		words := strings.Split(c.Name, "_")
		if len(keywords) < len(words) {
			continue
		}
		if windowsAlign(words, keywords) {
			return c.Name, true
		}
	}
	return "", false
}

func windowsAlign(words, keywords []string) bool {
	for i, w := range words {
		end := i + len(words)
		if end > len(keywords) {
			end = len(keywords)
		}
		found := false
		for _, kw := range keywords[i:end] {
			if kw == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// result resolves the poses of condition. Poses missing from the catalog are skipped.
func (e *Engine) result(keyword, condition string) Result {
	poses, _ := e.table.Lookup(condition)
	res := Result{Keyword: keyword}
	for _, name := range poses {
		pose, ok := e.catalog[name]
		if !ok {
			continue
		}

		rec := Recommendation{Pose: name, Steps: pose.Steps, Video: pose.Video}
		if e.imageDir != "" {
			img, err := FirstImage(e.imageDir, name)
			if err != nil {
				e.logger.Warn("pose image unavailable", "pose", name, "error", err)
			}
			rec.Image = img
		}
		res.Recommendations = append(res.Recommendations, rec)
	}
	return res
}
