package flow

import (
	"context"
	"log/slog"

	"github.com/bagrikeng/tanlovbot/core/logger"
	"github.com/bagrikeng/tanlovbot/internal/regions"
	"github.com/bagrikeng/tanlovbot/internal/relay"
	"github.com/bagrikeng/tanlovbot/internal/report"
	"github.com/bagrikeng/tanlovbot/internal/session"
	"github.com/bagrikeng/tanlovbot/internal/storage"
)

// Metrics receives flow-level counters. The ops package provides the
// real implementation; a nil value disables counting.
type Metrics interface {
	RegistrationCompleted()
	RegistrationUpdated()
	SubmissionRelayed()
	RelayFailed()
	ExportGenerated()
}

type nopMetrics struct{}

func (nopMetrics) RegistrationCompleted() {}
func (nopMetrics) RegistrationUpdated()   {}
func (nopMetrics) SubmissionRelayed()     {}
func (nopMetrics) RelayFailed()           {}
func (nopMetrics) ExportGenerated()       {}

// Reporter builds the admin xlsx export.
type Reporter interface {
	Generate(ctx context.Context) (report.Export, error)
}

// Engine drives the registration and submission conversation. It is
// transport-free: the telegram layer converts updates into Events and
// sends the returned Replies.
type Engine struct {
	sessions *session.Store
	store    storage.TxStore
	relay    relay.Relay
	regions  *regions.Loader
	reports  Reporter
	metrics  Metrics
	admins   map[int64]struct{}
}

func New(sessions *session.Store, store storage.TxStore, rl relay.Relay, loader *regions.Loader, reports Reporter, metrics Metrics, admins []int64) *Engine {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	set := make(map[int64]struct{}, len(admins))
	for _, id := range admins {
		set[id] = struct{}{}
	}
	return &Engine{
		sessions: sessions,
		store:    store,
		relay:    rl,
		regions:  loader,
		reports:  reports,
		metrics:  metrics,
		admins:   set,
	}
}

func (e *Engine) IsAdmin(userID int64) bool {
	_, ok := e.admins[userID]
	return ok
}

// Handle processes one inbound event and returns the replies to send.
// Attachments and contacts are only honored in the states that expect
// them; standing buttons work from any state; everything else goes
// through the per-state dispatch.
func (e *Engine) Handle(ctx context.Context, ev Event) ([]Reply, error) {
	id := ev.Identity

	if ev.Attachment != nil {
		sess, ok := e.sessions.Get(id)
		if ok && sess.State == session.StateFile {
			return e.handleFile(ctx, ev, sess)
		}
		return replies(Reply{Text: msgFileWrongState}), nil
	}
	if ev.HasContact {
		sess, ok := e.sessions.Get(id)
		if ok && sess.State == session.StatePhone {
			return e.storePhone(ctx, ev, ev.Contact)
		}
		return replies(Reply{Text: msgUnexpectedContact, RemoveKeyboard: true}), nil
	}

	switch ev.Text {
	case "/start", btnHome:
		return e.welcome(ev), nil
	case btnRegister:
		return e.startRegistration(ctx, ev)
	case btnSubmit, btnSubmitAnother:
		return e.startSubmission(ev), nil
	case btnEditProfile:
		return e.startEdit(ctx, ev)
	case "/export", btnExport:
		return e.export(ctx, ev)
	}

	sess, ok := e.sessions.Get(id)
	if !ok {
		// Free text outside a conversation is dropped.
		return nil, nil
	}
	return e.dispatch(ctx, ev, sess)
}

func (e *Engine) dispatch(ctx context.Context, ev Event, sess session.Session) ([]Reply, error) {
	switch sess.State {
	case session.StateName:
		return e.collectName(ev, sess), nil
	case session.StateRegion:
		return e.collectRegion(ctx, ev), nil
	case session.StateDistrict:
		return e.collectDistrict(ctx, ev), nil
	case session.StateNeighborhood:
		return e.collectNeighborhood(ev, sess), nil
	case session.StateWorkplace:
		return e.collectWorkplace(ev, sess), nil
	case session.StateBirthDate:
		return e.collectBirthDate(ev, sess), nil
	case session.StatePassport:
		return e.collectPassport(ev, sess), nil
	case session.StatePhone:
		return e.storePhone(ctx, ev, ev.Text)
	case session.StateConfirm:
		return e.handleConfirm(ctx, ev)
	case session.StateCategory:
		return e.collectCategory(ev), nil
	case session.StateFile:
		// Text while a file is expected is ignored, matching the
		// attachment-only contract of this step.
		return nil, nil
	case session.StateIdle:
		return nil, nil
	}
	logger.Warn(ctx, flowComponent, "dispatch.unknown_state",
		slog.String("state", sess.State.String()),
		slog.Int64("user_id", ev.Identity.UserID),
	)
	return nil, nil
}
