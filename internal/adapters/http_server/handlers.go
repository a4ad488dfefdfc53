package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
)

const maxFormBytes = 1 << 20

type Handlers struct {
	Q *app.QueryService
	C *app.ReviewService

	// WriteLimiter throttles POST /. Nil disables throttling.
	WriteLimiter *rate.Limiter
}

type sentimentJSON struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// reviewJSON is the wire shape of a review. Field names are part of the API.
type reviewJSON struct {
	ReviewID   string         `json:"ReviewId"`
	ReviewBody string         `json:"ReviewBody"`
	Location   string         `json:"Location"`
	Timestamp  string         `json:"Timestamp"`
	Sentiment  *sentimentJSON `json:"sentiment,omitempty"`
}

func toJSON(r domain.Review) reviewJSON {
	return reviewJSON{
		ReviewID:   r.ID,
		ReviewBody: r.Body,
		Location:   r.Location,
		Timestamp:  r.Timestamp.Format(domain.TimestampLayout),
	}
}

func toScoredJSON(in []domain.ScoredReview) []reviewJSON {
	out := make([]reviewJSON, 0, len(in))
	for _, sr := range in {
		rj := toJSON(sr.Review)
		s := sentimentJSON(sr.Sentiment)
		rj.Sentiment = &s
		out = append(out, rj)
	}
	return out
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.listReviews)
	s.mux.With(RateLimit(h.WriteLimiter)).Post("/", h.createReview)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(msg)))
	w.WriteHeader(status)
	if _, err := io.WriteString(w, msg); err != nil {
		log.Error().Err(err).Msg("write text response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body, nil
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := app.ParseListQuery(q.Get("location"), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		log.Debug().Err(err).Msg("rejecting list query")
		writeText(w, http.StatusBadRequest, "Bad Request")
		return
	}

	out, err := h.Q.ListReviews(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("list reviews failed")
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	etag, body, err := calcETagAndBody(toScoredJSON(out))
	if err != nil {
		log.Error().Err(err).Msg("marshal reviews failed")
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	writeJSON(w, http.StatusOK, body)
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(w, r)
	if err != nil {
		log.Debug().Err(err).Msg("unreadable form body")
		writeText(w, http.StatusBadRequest, "Bad Request")
		return
	}

	created, err := h.C.CreateReview(r.Context(), app.CreateReview{
		ReviewBody: form.Get("ReviewBody"),
		Location:   form.Get("Location"),
	})
	switch {
	case errors.Is(err, domain.ErrMissingField), errors.Is(err, domain.ErrInvalidLocation):
		log.Debug().Err(err).Msg("rejecting review")
		writeText(w, http.StatusBadRequest, "Bad Request")
		return
	case err != nil:
		log.Error().Err(err).Msg("create review failed")
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	body, err := json.MarshalIndent(toJSON(created), "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("marshal review failed")
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	log.Info().Str("id", created.ID).Str("location", created.Location).Msg("review created")
	writeJSON(w, http.StatusCreated, body)
}

// readForm parses a url-encoded body. A body without a Content-Type is
// still read as url-encoded.
func readForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		return url.ParseQuery(string(b))
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil && mt == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}
