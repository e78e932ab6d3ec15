package middleware

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/core/ports"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

// Idempotency replays the stored response when a request repeats an
// Idempotency-Key on the same route. Only 2xx responses are stored. Requests
// without the header, or with a nil store, pass straight through. Store
// failures are logged and the request is served normally.
func Idempotency(store ports.IdempotencyStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(HeaderIdempotencyKey)
			if key == "" || store == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			scoped := c.Request().Method + ":" + c.Path() + ":" + key

			stored, err := store.Lookup(ctx, scoped)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("idempotency lookup failed")
			}
			if stored != nil {
				metrics.IdempotencyTotal.WithLabelValues("hit").Inc()
				c.Response().Header().Set(HeaderReplayed, "true")
				return c.Blob(stored.Status, stored.ContentType, stored.Body)
			}
			metrics.IdempotencyTotal.WithLabelValues("miss").Inc()

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				return err
			}

			res := c.Response()
			if res.Status < http.StatusOK || res.Status >= http.StatusMultipleChoices {
				return nil
			}
			if err := store.Save(ctx, scoped, ports.StoredResponse{
				Status:      res.Status,
				ContentType: res.Header().Get(echo.HeaderContentType),
				Body:        rec.body.Bytes(),
			}); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("idempotency save failed")
			}
			return nil
		}
	}
}

// bodyRecorder tees the response body so it can be stored after the handler
// returns.
type bodyRecorder struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
