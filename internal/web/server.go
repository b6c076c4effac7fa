package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"chatter-trainer/internal/llm"
	"chatter-trainer/internal/logger"
	"chatter-trainer/internal/trainer"
)

const sessionCookie = "trainer_session"

//go:embed templates/*.html
var templateFS embed.FS

// Server is the browser surface for training sessions.
type Server struct {
	manager *trainer.Manager
	log     *logger.Logger
	tmpl    *template.Template
	server  *http.Server
}

type pageData struct {
	View    trainer.View
	Notices []trainer.Notice
}

func New(addr string, manager *trainer.Manager, log *logger.Logger) *Server {
	s := &Server{
		manager: manager,
		log:     log,
		tmpl:    template.Must(template.ParseFS(templateFS, "templates/index.html")),
	}
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // evaluation and mail run inside the request
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/name", s.handleName)
	r.Post("/message", s.handleMessage)
	r.Post("/evaluate", s.handleEvaluate)
	r.Post("/reset", s.handleReset)
	r.Get("/api/session", s.handleSessionJSON)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func (s *Server) Start() error {
	s.log.Logger(context.Background()).Info("[Web] Listening", zap.String("addr", s.server.Addr))
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Logger(r.Context()).Info("Request Completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// session returns the caller's session, creating one and setting the cookie
// when the request carries none or an expired id.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *trainer.Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.manager.Get(c.Value); ok {
			return sess
		}
	}
	sess := s.manager.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, sess *trainer.Session, notices []trainer.Notice) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.html", pageData{View: sess.View(), Notices: notices}); err != nil {
		s.log.Logger(r.Context()).Error("[Web] Render failed", zap.Error(err))
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.session(w, r), nil)
}

func (s *Server) handleName(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.SetName(r.FormValue("name"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	status := http.StatusOK
	var notices []trainer.Notice

	_, err := sess.Submit(r.Context(), r.FormValue("message"))
	switch {
	case err == nil:
	case errors.Is(err, trainer.ErrEmptyMessage):
		notices = append(notices, trainer.Notice{Level: trainer.LevelInfo, Text: "Type a message first."})
	case errors.Is(err, trainer.ErrTurnLimitReached):
	case errors.Is(err, llm.ErrGenerationFailed):
		status = http.StatusBadGateway
		notices = append(notices, trainer.Notice{Level: trainer.LevelError, Text: "The fan could not reply. Your message was not recorded, please send it again."})
	default:
		status = http.StatusInternalServerError
		notices = append(notices, trainer.Notice{Level: trainer.LevelError, Text: err.Error()})
	}

	if sess.View().Complete {
		more, st := s.finish(r.Context(), sess)
		notices = append(notices, more...)
		if st != http.StatusOK {
			status = st
		}
	}
	s.render(w, r, status, sess, notices)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	notices, status := s.finish(r.Context(), sess)
	s.render(w, r, status, sess, notices)
}

func (s *Server) finish(ctx context.Context, sess *trainer.Session) ([]trainer.Notice, int) {
	_, err := sess.Finish(ctx)
	switch {
	case err == nil:
		return nil, http.StatusOK
	case errors.Is(err, trainer.ErrSessionIncomplete):
		return []trainer.Notice{{Level: trainer.LevelInfo, Text: "Keep chatting, the session is not finished yet."}}, http.StatusOK
	case errors.Is(err, trainer.ErrEvaluationInProgress):
		return []trainer.Notice{{Level: trainer.LevelInfo, Text: "Evaluation is already running, refresh in a moment."}}, http.StatusAccepted
	default:
		return []trainer.Notice{{Level: trainer.LevelError, Text: fmt.Sprintf("Evaluation failed: %v", err)}}, http.StatusBadGateway
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.manager.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSessionJSON(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(sess.View()); err != nil {
		s.log.Logger(r.Context()).Error("[Web] Encode failed", zap.Error(err))
	}
}
