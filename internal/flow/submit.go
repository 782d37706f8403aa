package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/bagrikeng/tanlovbot/core/logger"
	"github.com/bagrikeng/tanlovbot/internal/domain"
	"github.com/bagrikeng/tanlovbot/internal/session"
	"github.com/bagrikeng/tanlovbot/internal/storage"
)

const submitComponent = "service.submissions"

var errRelayFailed = errors.New("relay delivery failed")

// handleFile is the transactional tail of the flow: the participant row
// (created here on first submission), the forward to the review channel
// and the submission row succeed or fail as one unit. A relay failure
// keeps the session so the participant can resend the file.
func (e *Engine) handleFile(ctx context.Context, ev Event, sess session.Session) ([]Reply, error) {
	att := ev.Attachment
	if !att.Kind.Accepted() {
		return replies(Reply{Text: msgFileWrongState}), nil
	}

	f := sess.Fields
	var created bool
	var participantID int64
	err := e.store.WithTx(ctx, func(tx storage.Store) error {
		p, err := tx.FindParticipant(ctx, ev.Identity.UserID)
		if err != nil {
			return err
		}
		if p == nil {
			if f.FullName == "" || f.Phone == "" {
				return errIncompleteSession
			}
			regionID, _ := strconv.ParseInt(f.RegionID, 10, 64)
			districtID, _ := strconv.ParseInt(f.DistrictID, 10, 64)
			addrID, err := tx.CreateAddress(ctx, &domain.Address{
				RegionID:     regionID,
				DistrictID:   districtID,
				Neighborhood: f.Neighborhood,
			})
			if err != nil {
				return err
			}
			p = &domain.Participant{
				TelegramID:     ev.Identity.UserID,
				FullName:       f.FullName,
				AddressID:      addrID,
				Workplace:      f.Workplace,
				BirthDate:      f.BirthDate,
				PassportSeries: f.Passport,
				PhoneNumber:    f.Phone,
			}
			if p.ID, err = tx.CreateParticipant(ctx, p); err != nil {
				return err
			}
			created = true
		}
		participantID = p.ID

		var addr *domain.Address
		if p.AddressID != 0 {
			if addr, err = tx.GetAddress(ctx, p.AddressID); err != nil {
				return err
			}
		}

		ref, err := e.relay.Forward(ctx, *att)
		if err != nil {
			return fmt.Errorf("%w: %v", errRelayFailed, err)
		}
		if err := e.relay.Announce(ctx, ref, channelText(p, addr, f.Category, e.regions.Load())); err != nil {
			return fmt.Errorf("%w: %v", errRelayFailed, err)
		}

		_, err = tx.CreateSubmission(ctx, &domain.Submission{
			ParticipantID: participantID,
			Category:      f.Category,
			URL:           ref.URL,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, errRelayFailed) {
			e.metrics.RelayFailed()
			logger.Error(ctx, submitComponent, "submission.relay_fail",
				slog.Int64("user_id", ev.Identity.UserID),
				slog.String("err", err.Error()),
			)
			return replies(Reply{Text: msgSubmitFailed}), err
		}
		e.sessions.Clear(ev.Identity)
		logger.Error(ctx, submitComponent, "submission.save_fail",
			slog.Int64("user_id", ev.Identity.UserID),
			slog.String("err", err.Error()),
		)
		return replies(Reply{Text: msgGenericError}), err
	}

	e.sessions.Clear(ev.Identity)
	if created {
		e.metrics.RegistrationCompleted()
	}
	e.metrics.SubmissionRelayed()
	logger.Info(ctx, submitComponent, "submission.saved",
		slog.Int64("user_id", ev.Identity.UserID),
		slog.Int64("participant_id", participantID),
		slog.String("category", string(f.Category)),
		slog.String("kind", string(att.Kind)),
		slog.Bool("registered", created),
	)
	return replies(Reply{Text: msgSubmissionDone, Keyboard: afterSaveKeyboard()}), nil
}

func (e *Engine) export(ctx context.Context, ev Event) ([]Reply, error) {
	if !e.IsAdmin(ev.Identity.UserID) {
		return replies(Reply{Text: msgAdminOnly}), nil
	}
	out := replies(Reply{Text: msgExportPreparing})
	exp, err := e.reports.Generate(ctx)
	if err != nil {
		logger.Error(ctx, "report", "export.fail",
			slog.Int64("user_id", ev.Identity.UserID),
			slog.String("err", err.Error()),
		)
		return append(out, Reply{Text: msgExportFailed}), err
	}
	e.metrics.ExportGenerated()
	logger.Info(ctx, "report", "export.sent",
		slog.Int64("user_id", ev.Identity.UserID),
		slog.Int("bytes", len(exp.Data)),
	)
	return append(out, Reply{
		HTML: true,
		Document: &Document{
			Name:    exp.Filename,
			Caption: exp.Caption,
			Data:    exp.Data,
		},
	}), nil
}
