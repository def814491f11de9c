package session

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"mes-console/internal/config"
	"mes-console/internal/report"
)

// ReportStore persists the report's UI state (selected period, collapsed weeks) in a signed cookie session.
// The two values live under independent keys so that either can be corrupted without affecting the other.
type ReportStore struct {
	store       *sessions.CookieStore
	name        string
	periodKey   string
	collapseKey string
	log         *slog.Logger

	// Now supplies the fallback period.
	Now func() time.Time
}

func NewReportStore(cfg config.Session, identity string, log *slog.Logger) (*ReportStore, error) {
	const op = "session.NewReportStore"

	key := []byte(cfg.Key)
	if cfg.Key == "" {
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, fmt.Errorf("%s: не удалось сгенерировать ключ сессии", op)
		}
		log.Warn("session key is empty; generated a random one, sessions will not survive a restart", slog.String("op", op))
	} else if len(cfg.Key) < 32 {
		log.Warn("session key is short; 32+ chars recommended", slog.String("op", op), slog.Int("length", len(cfg.Key)))
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Domain:   cfg.Domain,
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	name := cfg.Name
	if name == "" {
		name = "mes-console"
	}
	if identity == "" {
		identity = "monthly"
	}

	return &ReportStore{
		store:       store,
		name:        name,
		periodKey:   "report." + identity + ".period",
		collapseKey: "report." + identity + ".collapsed",
		log:         log,
		Now:         time.Now,
	}, nil
}

func (s *ReportStore) session(r *http.Request) *sessions.Session {
	sess, err := s.store.Get(r, s.name)
	if err != nil {
		// a tampered or outdated cookie still yields a fresh session
		s.log.Warn("session decode failed", slog.String("op", "session.ReportStore.session"), slog.String("error", err.Error()))
	}
	return sess
}

// Load never fails: a missing or corrupt period falls back to the current month, a corrupt
// collapse list to an empty set.
func (s *ReportStore) Load(r *http.Request) report.State {
	sess := s.session(r)

	period := report.PeriodOf(s.Now())
	if raw, ok := sess.Values[s.periodKey].(string); ok {
		if p, err := report.ParsePeriod(raw); err == nil {
			period = p
		}
	}

	rawCollapse, _ := sess.Values[s.collapseKey].(string)

	return report.State{
		Period:   period,
		Collapse: report.DecodeCollapseState(rawCollapse),
	}
}

func (s *ReportStore) SavePeriod(w http.ResponseWriter, r *http.Request, p report.Period) error {
	const op = "session.ReportStore.SavePeriod"

	sess := s.session(r)
	sess.Values[s.periodKey] = p.String()
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("%s: ошибка сохранения периода: %w", op, err)
	}
	return nil
}

func (s *ReportStore) SaveCollapse(w http.ResponseWriter, r *http.Request, c report.CollapseState) error {
	const op = "session.ReportStore.SaveCollapse"

	sess := s.session(r)
	sess.Values[s.collapseKey] = c.Encode()
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("%s: ошибка сохранения свернутых недель: %w", op, err)
	}
	return nil
}
