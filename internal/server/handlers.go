package server

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// fieldView is one input of the form.
type fieldView struct {
	Name  string
	Value string
	Error string
}

// pageData feeds templates/index.html.
type pageData struct {
	Fields    []fieldView
	DateError string

	HasResult    bool
	Years        string
	Months       string
	Days         string
	NextBirthday string
	NextAge      int

	CSRFField template.HTML
	Help      template.HTML
}

// session returns the caller's session, creating one (and its cookie) when needed.
func (s *AgeServer) session(w http.ResponseWriter, r *http.Request) *Session {
	if sess, ok := s.existingSession(r); ok {
		return sess
	}

	token, sess := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookieName,
		Value:    token,
		Path:     config.RouteRoot,
		MaxAge:   int(config.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *AgeServer) existingSession(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(config.SessionCookieName)
	if err != nil {
		return nil, false
	}
	return s.sessions.Get(cookie.Value)
}

// handleIndex renders the form in its current state.
func (s *AgeServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	sess.mu.Lock()
	data := s.view(r, sess.ctrl)
	sess.mu.Unlock()

	s.render(w, http.StatusOK, data)
}

// handleSubmit applies the posted fields and submits the form.
// An invalid birthdate renders the form with 422 and the previous result.
func (s *AgeServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	// csrf has already parsed the form.
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sess.mu.Lock()
	for _, name := range engine.InputFields {
		if values, ok := r.PostForm[string(name)]; ok && len(values) > 0 {
			_ = sess.ctrl.SetField(name, values[0])
		}
	}
	result := sess.ctrl.Submit()
	if result.OK() {
		s.updateCalendar(sess)
	}
	data := s.view(r, sess.ctrl)
	sess.mu.Unlock()

	s.metrics.ObserveSubmit(result)

	status := http.StatusOK
	if !result.OK() {
		status = http.StatusUnprocessableEntity
	}
	s.render(w, status, data)
}

// handleField stores a single field value, mirroring an input event.
func (s *AgeServer) handleField(w http.ResponseWriter, r *http.Request) {
	name, ok := engine.ParseFieldName(chi.URLParam(r, config.URLParamName))
	if !ok {
		http.NotFound(w, r)
		return
	}

	sess := s.session(w, r)

	sess.mu.Lock()
	err := sess.ctrl.SetField(name, r.PostFormValue(config.FormKeyValue))
	sess.mu.Unlock()

	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleScript serves the script that forwards field changes to handleField.
func (s *AgeServer) handleScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(config.HeaderContentType, config.MimeJavaScript)
	if _, err := w.Write(s.script); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
	}
}

// handleCalendar serves the birthday feed of the last successful submit.
func (s *AgeServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.existingSession(r)
	if !ok {
		http.Error(w, config.HTTPMsgNoResult, http.StatusNotFound)
		return
	}

	item := sess.calendar.Load()
	if item == nil {
		http.Error(w, config.HTTPMsgNoResult, http.StatusNotFound)
		return
	}

	if r.Header.Get(config.HeaderIfNoneMatch) == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)

	if _, err := w.Write(item.data); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
	}
}

// updateCalendar regenerates the session's feed. Caller holds sess.mu.
func (s *AgeServer) updateCalendar(sess *Session) {
	data, err := sess.ctrl.Calendar(nil)
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
		return
	}

	item := newCacheItem(data)
	sess.calendar.Store(item)
	slog.Debug(config.MsgSubmitOK,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyETag, item.etag)
}

// view snapshots the controller. Caller holds the session lock.
func (s *AgeServer) view(r *http.Request, ctrl *engine.Controller) pageData {
	in := ctrl.Input()
	errs := ctrl.Errors()

	data := pageData{
		DateError: errs.Message(engine.Date),
		CSRFField: csrf.TemplateField(r),
		Help:      s.help,
	}
	for _, name := range engine.InputFields {
		data.Fields = append(data.Fields, fieldView{
			Name:  string(name),
			Value: in.Get(name).Value(),
			Error: errs.Message(name),
		})
	}

	age := ctrl.Age()
	data.HasResult = age.IsSet()
	data.Years, data.Months, data.Days = age.Display()

	if next, nextAge, err := ctrl.NextBirthday(); err == nil {
		data.NextBirthday = next.Format(config.DateFormatFullDash)
		data.NextAge = nextAge
	}
	return data
}

func (s *AgeServer) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		slog.Error(config.ErrTemplate,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextHTML)
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
	}
}
