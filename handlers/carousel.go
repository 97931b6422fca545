package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/icco/cinevault/lib/session"
	"github.com/icco/cinevault/lib/validation"
)

const maxDragBody = 1 << 10

var errBodyTooLarge = errors.New("request body too large")

// HandleCarouselStep moves a category's carousel by one. step is +1 or -1.
func HandleCarouselStep(sessions *session.Manager, step int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessions.Get(w, r)
		category, err := validation.ParseCategory(chi.URLParam(r, "category"))
		if err != nil {
			renderError(w, newLayout(s, "Not found", ""), "That category doesn't exist.", http.StatusNotFound)
			return
		}
		if err := r.ParseForm(); err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		width := validation.ViewportWidth(r.PostForm)
		cr := s.Carousel(category)
		cr.SetWidth(width)
		if step > 0 {
			cr.Next()
		} else {
			cr.Prev()
		}

		q := url.Values{"vw": {strconv.Itoa(width)}}
		http.Redirect(w, r, "/?"+q.Encode()+"#"+string(category), http.StatusSeeOther)
	}
}

type dragResponse struct {
	State      string `json:"state"`
	ScrollLeft int    `json:"scrollLeft"`
}

// HandleCarouselDrag feeds one pointer event into a carousel's drag gesture.
func HandleCarouselDrag(sessions *session.Manager, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessions.Get(w, r)
		category, err := validation.ParseCategory(chi.URLParam(r, "category"))
		if err != nil {
			validation.WriteError(w, err, http.StatusNotFound)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxDragBody+1))
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}
		if len(body) > maxDragBody {
			validation.WriteError(w, errBodyTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		ev, err := validation.ParseDragEvent(body)
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		cr := s.Carousel(category)
		resp := dragResponse{ScrollLeft: ev.ScrollLeft}
		switch ev.Phase {
		case "start":
			cr.BeginDrag(ev.X, ev.ScrollLeft)
		case "move":
			if pos, ok := cr.MoveDrag(ev.X); ok {
				resp.ScrollLeft = pos
			}
		default:
			cr.EndDrag()
		}
		resp.State = cr.DragState().String()

		writeJSON(w, http.StatusOK, resp, logger)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", slog.Any("error", err))
	}
}
