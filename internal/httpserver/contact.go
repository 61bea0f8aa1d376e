package httpserver

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/masahiro-koseki/masahiro-site/internal/contact"
	"github.com/masahiro-koseki/masahiro-site/internal/handlers"
	custommw "github.com/masahiro-koseki/masahiro-site/internal/middleware"
	"github.com/masahiro-koseki/masahiro-site/internal/observability"
)

// maxFormBody bounds every posted form. It is enforced ahead of CSRF.
const maxFormBody = 64 << 10

func (s *server) handleContact(w http.ResponseWriter, r *http.Request) {
	form := contact.NewForm(contact.Draft{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
	})
	logger := observability.FromContext(r.Context())

	var status int
	switch form.Submit(r.Context(), s.contact.Sender(custommw.GetSession(r).ID)) {
	case contact.StatusSuccess:
		logger.Info("contact message relayed")
		s.redirect(w, r, "/thanks")
		return
	case contact.StatusError:
		logger.Warn("contact relay failed", zap.Error(form.Err))
		status = http.StatusBadGateway
	default:
		status = http.StatusUnprocessableEntity
	}

	data := s.basePage(r, "nav.contact", "")
	data.SEO.Robots = "noindex"
	view := handlers.NewContactView(form)
	if custommw.IsHTMX(r.Context()) {
		data.Home = &handlers.HomeData{Contact: view}
		s.views.render(w, r, status, "home", "contact", data)
		return
	}
	data.Home = s.homeData(r, view)
	s.views.render(w, r, status, "home", "", data)
}
