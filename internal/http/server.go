package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"fakenft/internal/auth"
	"fakenft/internal/config"
	"fakenft/internal/domain"
	"fakenft/internal/logging"
	storepkg "fakenft/internal/store"
)

type contextKey string

const contextKeySubject contextKey = "subject"

// Server serves the marketplace API the catalog client talks to.
type Server struct {
	cfg    config.Config
	store  storepkg.Store
	logger *zap.Logger
}

func NewServer(cfg config.Config, store storepkg.Store, logger *zap.Logger) *Server {
	return &Server{
		cfg:    cfg,
		store:  store,
		logger: logging.OrNop(logger),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.requestLogger, middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/collections", s.handleListCollections)
		api.Get("/collections/{id}", s.handleGetCollection)
		api.Get("/nft", s.handleListNFTs)
		api.Get("/nft/{id}", s.handleGetNFT)
		api.Get("/users", s.handleListUsers)
		api.Get("/users/{id}", s.handleGetUser)
		api.Get("/profile/{id}", s.handleGetProfile)
		api.Get("/currencies", s.handleListCurrencies)
		api.Get("/currencies/{id}", s.handleGetCurrency)
		api.Get("/orders/{id}", s.handleGetOrder)

		api.Group(func(protected chi.Router) {
			protected.Use(s.requireToken)
			protected.Put("/profile/{id}", s.handlePutProfile)
			protected.Put("/orders/{id}", s.handlePutOrder)
			protected.Get("/orders/{id}/payment/{currency_id}", s.handlePay)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := s.store.Collections()
	s.respond(w, r, collections, err)
}

func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Collection(chi.URLParam(r, "id"))
	s.respond(w, r, c, err)
}

func (s *Server) handleListNFTs(w http.ResponseWriter, r *http.Request) {
	nfts, err := s.store.NFTs()
	s.respond(w, r, nfts, err)
}

func (s *Server) handleGetNFT(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.NFT(chi.URLParam(r, "id"))
	s.respond(w, r, n, err)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.Users()
	s.respond(w, r, users, err)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.User(chi.URLParam(r, "id"))
	s.respond(w, r, u, err)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Profile(chi.URLParam(r, "id"))
	s.respond(w, r, p, err)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var p domain.Profile
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p.ID = chi.URLParam(r, "id")
	saved, err := s.store.SaveProfile(p)
	if err == nil {
		s.logger.Info("profile updated",
			zap.String("profile_id", saved.ID),
			zap.String("subject", subjectFromContext(r.Context())),
			zap.Int("likes", len(saved.Likes)),
		)
	}
	s.respond(w, r, saved, err)
}

func (s *Server) handleListCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := s.store.Currencies()
	s.respond(w, r, currencies, err)
}

func (s *Server) handleGetCurrency(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Currency(chi.URLParam(r, "id"))
	s.respond(w, r, c, err)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.store.Order(chi.URLParam(r, "id"))
	s.respond(w, r, o, err)
}

func (s *Server) handlePutOrder(w http.ResponseWriter, r *http.Request) {
	var o domain.Order
	if err := decodeJSON(r, &o); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	o.ID = chi.URLParam(r, "id")
	saved, err := s.store.SaveOrder(o)
	s.respond(w, r, saved, err)
}

func (s *Server) handlePay(w http.ResponseWriter, r *http.Request) {
	payment, err := s.store.Pay(chi.URLParam(r, "id"), chi.URLParam(r, "currency_id"))
	if err == nil {
		s.logger.Info("order paid",
			zap.String("order_id", payment.OrderID),
			zap.String("payment_id", payment.ID),
			zap.Bool("success", payment.Success),
		)
	}
	s.respond(w, r, payment, err)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, body interface{}, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, body)
	case errors.Is(err, storepkg.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		s.logger.Error("store failure",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		sub, err := auth.Verify(s.cfg.JWTSecret, token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), contextKeySubject, sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func subjectFromContext(ctx context.Context) string {
	sub, _ := ctx.Value(contextKeySubject).(string)
	return sub
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, target interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
