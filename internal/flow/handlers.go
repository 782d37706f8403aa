package flow

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/bagrikeng/tanlovbot/core/logger"
	"github.com/bagrikeng/tanlovbot/internal/domain"
	"github.com/bagrikeng/tanlovbot/internal/session"
	"github.com/bagrikeng/tanlovbot/internal/storage"
)

const flowComponent = "service.participants"

func (e *Engine) welcome(ev Event) []Reply {
	admin := e.IsAdmin(ev.Identity.UserID)
	text := welcomeMessage
	if admin {
		text += msgAdminNote
	}
	return replies(Reply{Text: text, HTML: true, Keyboard: welcomeKeyboard(admin)})
}

func (e *Engine) startRegistration(ctx context.Context, ev Event) ([]Reply, error) {
	p, err := e.store.FindParticipant(ctx, ev.Identity.UserID)
	if err != nil {
		logger.Error(ctx, flowComponent, "registration.lookup_fail",
			slog.Int64("user_id", ev.Identity.UserID),
			slog.String("err", err.Error()),
		)
		return replies(Reply{Text: msgGenericError}), err
	}
	if p != nil {
		return replies(Reply{Text: msgAlreadyRegistered, Keyboard: registeredKeyboard()}), nil
	}
	e.sessions.Mutate(ev.Identity, func(s *session.Session) {
		*s = session.Session{State: session.StateName}
	})
	return replies(Reply{Text: msgAskName, RemoveKeyboard: true}), nil
}

func (e *Engine) startSubmission(ev Event) []Reply {
	e.sessions.SetState(ev.Identity, session.StateCategory)
	return replies(Reply{Text: msgAskCategory, Keyboard: categoryKeyboard()})
}

// startEdit loads the stored record into a fresh editing session and jumps
// straight to the confirmation screen.
func (e *Engine) startEdit(ctx context.Context, ev Event) ([]Reply, error) {
	p, err := e.store.FindParticipant(ctx, ev.Identity.UserID)
	if err != nil {
		logger.Error(ctx, flowComponent, "edit.lookup_fail",
			slog.Int64("user_id", ev.Identity.UserID),
			slog.String("err", err.Error()),
		)
		return replies(Reply{Text: msgGenericError}), err
	}
	if p == nil {
		return replies(Reply{Text: msgNotRegistered}), nil
	}

	var addr *domain.Address
	if p.AddressID != 0 {
		if addr, err = e.store.GetAddress(ctx, p.AddressID); err != nil {
			logger.Error(ctx, flowComponent, "edit.address_fail",
				slog.Int64("user_id", ev.Identity.UserID),
				slog.String("err", err.Error()),
			)
			return replies(Reply{Text: msgGenericError}), err
		}
	}

	h := e.regions.Load()
	fields := session.Fields{
		FullName:     p.FullName,
		RegionID:     "1",
		DistrictID:   "1",
		DistrictName: "N/A",
		Workplace:    p.Workplace,
		BirthDate:    p.BirthDate,
		Passport:     p.PassportSeries,
		Phone:        p.PhoneNumber,
	}
	if addr != nil {
		fields.RegionID = strconv.FormatInt(addr.RegionID, 10)
		fields.DistrictID = strconv.FormatInt(addr.DistrictID, 10)
		fields.Neighborhood = addr.Neighborhood
		fields.DistrictName = h.DistrictName(fields.RegionID, fields.DistrictID)
	}
	e.sessions.Mutate(ev.Identity, func(s *session.Session) {
		*s = session.Session{State: session.StateConfirm, Mode: session.ModeEditing, Fields: fields}
	})
	return e.showConfirmation(fields), nil
}

func (e *Engine) showConfirmation(f session.Fields) []Reply {
	return replies(Reply{
		Text:     confirmationText(f, e.regions.Load()),
		HTML:     true,
		Keyboard: confirmKeyboard(),
	})
}

// collectField stores one free-text value and either short-circuits back to
// confirmation (editing) or advances to the next step.
func (e *Engine) collectField(ev Event, set func(*session.Fields), next session.State, prompt Reply) []Reply {
	var f session.Fields
	var editing bool
	e.sessions.Mutate(ev.Identity, func(s *session.Session) {
		set(&s.Fields)
		editing = s.Mode == session.ModeEditing
		if editing {
			s.State = session.StateConfirm
		} else {
			s.State = next
		}
		f = s.Fields
	})
	if editing {
		return e.showConfirmation(f)
	}
	return replies(prompt)
}

func (e *Engine) collectName(ev Event, _ session.Session) []Reply {
	return e.collectField(ev,
		func(f *session.Fields) { f.FullName = ev.Text },
		session.StateRegion,
		Reply{Text: msgAskRegion, Keyboard: regionKeyboard(e.regions.Load())},
	)
}

// collectRegion never short-circuits: an address edit re-walks the whole
// region, district, neighborhood chain.
func (e *Engine) collectRegion(ctx context.Context, ev Event) []Reply {
	h := e.regions.Load()
	regionID, ok := h.RegionByName(ev.Text)
	if !ok {
		return replies(Reply{Text: msgChooseOption})
	}
	e.sessions.Mutate(ev.Identity, func(s *session.Session) {
		s.Fields.RegionID = regionID
		s.State = session.StateDistrict
	})
	logger.Debug(ctx, flowComponent, "region.selected",
		slog.Int64("user_id", ev.Identity.UserID),
		slog.String("region", regionID),
	)
	return replies(Reply{Text: msgAskDistrict, Keyboard: districtKeyboard(h, regionID)})
}

func (e *Engine) collectDistrict(ctx context.Context, ev Event) []Reply {
	h := e.regions.Load()
	var matched bool
	e.sessions.Mutate(ev.Identity, func(s *session.Session) {
		districtID, ok := h.DistrictByName(s.Fields.RegionID, ev.Text)
		if !ok {
			return
		}
		matched = true
		s.Fields.DistrictID = districtID
		s.Fields.DistrictName = ev.Text
		s.State = session.StateNeighborhood
	})
	if !matched {
		return replies(Reply{Text: msgChooseOption})
	}
	logger.Debug(ctx, flowComponent, "district.selected",
		slog.Int64("user_id", ev.Identity.UserID),
	)
	return replies(Reply{Text: msgAskNeighborhood, RemoveKeyboard: true})
}

func (e *Engine) collectNeighborhood(ev Event, _ session.Session) []Reply {
	return e.collectField(ev,
		func(f *session.Fields) { f.Neighborhood = ev.Text },
		session.StateWorkplace,
		Reply{Text: msgAskWorkplace},
	)
}

func (e *Engine) collectWorkplace(ev Event, _ session.Session) []Reply {
	return e.collectField(ev,
		func(f *session.Fields) { f.Workplace = ev.Text },
		session.StateBirthDate,
		Reply{Text: msgAskBirthDate},
	)
}

func (e *Engine) collectBirthDate(ev Event, _ session.Session) []Reply {
	date, err := validateBirthDate(ev.Text)
	if err != nil {
		if errors.Is(err, errBadDate) {
			return replies(Reply{Text: msgBadDate})
		}
		return replies(Reply{Text: msgBadDateFormat})
	}
	return e.collectField(ev,
		func(f *session.Fields) { f.BirthDate = date },
		session.StatePassport,
		Reply{Text: msgAskPassport},
	)
}

func (e *Engine) collectPassport(ev Event, _ session.Session) []Reply {
	passport, err := validatePassport(ev.Text)
	if err != nil {
		return replies(Reply{Text: msgBadPassport})
	}
	return e.collectField(ev,
		func(f *session.Fields) { f.Passport = passport },
		session.StatePhone,
		Reply{Text: msgAskPhone, Keyboard: [][]string{{btnSendPhone}}, ContactRequest: true},
	)
}

// storePhone accepts both shared contacts and plain text. Once a phone is
// stored the session switches to editing mode so later single-field entry
// returns to confirmation.
func (e *Engine) storePhone(ctx context.Context, ev Event, phone string) ([]Reply, error) {
	var f session.Fields
	e.sessions.Mutate(ev.Identity, func(s *session.Session) {
		s.Fields.Phone = phone
		s.Mode = session.ModeEditing
		s.State = session.StateConfirm
		f = s.Fields
	})
	logger.Debug(ctx, flowComponent, "phone.stored",
		slog.Int64("user_id", ev.Identity.UserID),
		slog.Bool("contact", ev.HasContact),
	)
	return e.showConfirmation(f), nil
}

func (e *Engine) handleConfirm(ctx context.Context, ev Event) ([]Reply, error) {
	switch ev.Text {
	case btnConfirmYes:
		return e.acceptConfirmation(ctx, ev)
	case btnConfirmEdit:
		return replies(Reply{Text: msgEditWhich, Keyboard: editMenuKeyboard()}), nil
	case btnBack:
		sess, _ := e.sessions.Get(ev.Identity)
		return e.showConfirmation(sess.Fields), nil
	case btnFieldName:
		e.sessions.SetState(ev.Identity, session.StateName)
		return replies(Reply{Text: msgEditName, RemoveKeyboard: true}), nil
	case btnFieldAddress:
		e.sessions.SetState(ev.Identity, session.StateRegion)
		return replies(Reply{Text: msgAskRegion, Keyboard: regionKeyboard(e.regions.Load())}), nil
	case btnFieldWorkplace:
		e.sessions.SetState(ev.Identity, session.StateWorkplace)
		return replies(Reply{Text: msgEditWorkplace, RemoveKeyboard: true}), nil
	case btnFieldBirthDate:
		e.sessions.SetState(ev.Identity, session.StateBirthDate)
		return replies(Reply{Text: msgEditBirthDate, RemoveKeyboard: true}), nil
	case btnFieldPassport:
		e.sessions.SetState(ev.Identity, session.StatePassport)
		return replies(Reply{Text: msgEditPassport, RemoveKeyboard: true}), nil
	case btnFieldPhone:
		e.sessions.SetState(ev.Identity, session.StatePhone)
		return replies(Reply{Text: msgEditPhone, Keyboard: [][]string{{btnSendPhone}}, ContactRequest: true}), nil
	}
	return replies(Reply{Text: msgChooseOption}), nil
}

// acceptConfirmation updates the stored record when one exists, otherwise
// moves on to the submission steps; the participant row is only created
// together with the first submission.
func (e *Engine) acceptConfirmation(ctx context.Context, ev Event) ([]Reply, error) {
	p, err := e.store.FindParticipant(ctx, ev.Identity.UserID)
	if err != nil {
		logger.Error(ctx, flowComponent, "confirm.lookup_fail",
			slog.Int64("user_id", ev.Identity.UserID),
			slog.String("err", err.Error()),
		)
		return replies(Reply{Text: msgGenericError}), err
	}

	if p == nil {
		e.sessions.SetState(ev.Identity, session.StateCategory)
		return replies(Reply{Text: msgAskCategory, Keyboard: categoryKeyboard()}), nil
	}

	sess, _ := e.sessions.Get(ev.Identity)
	f := sess.Fields
	err = e.store.WithTx(ctx, func(tx storage.Store) error {
		if p.AddressID != 0 {
			addr, err := tx.GetAddress(ctx, p.AddressID)
			if err != nil {
				return err
			}
			if addr != nil {
				addr.RegionID, _ = strconv.ParseInt(f.RegionID, 10, 64)
				addr.DistrictID, _ = strconv.ParseInt(f.DistrictID, 10, 64)
				addr.Neighborhood = f.Neighborhood
				if err := tx.UpdateAddress(ctx, addr); err != nil {
					return err
				}
			}
		}
		p.FullName = f.FullName
		p.Workplace = f.Workplace
		p.BirthDate = f.BirthDate
		p.PassportSeries = f.Passport
		p.PhoneNumber = f.Phone
		return tx.UpdateParticipant(ctx, p)
	})
	if err != nil {
		logger.Error(ctx, flowComponent, "confirm.update_fail",
			slog.Int64("user_id", ev.Identity.UserID),
			slog.String("err", err.Error()),
		)
		return replies(Reply{Text: msgGenericError}), err
	}

	e.sessions.Clear(ev.Identity)
	e.metrics.RegistrationUpdated()
	logger.Info(ctx, flowComponent, "participant.updated",
		slog.Int64("user_id", ev.Identity.UserID),
		slog.Int64("participant_id", p.ID),
	)
	return replies(Reply{Text: msgUpdated, Keyboard: [][]string{{btnSubmit, btnHome}}}), nil
}

func (e *Engine) collectCategory(ev Event) []Reply {
	info, ok := domain.CategoryByTitle(ev.Text)
	if !ok {
		return replies(Reply{Text: msgChooseOption})
	}
	e.sessions.Mutate(ev.Identity, func(s *session.Session) {
		s.Fields.Category = info.Key
		s.State = session.StateFile
	})
	return replies(Reply{
		Text: "📎 Loyihangizni yuklang:\n\n" +
			"Qo'llab-quvvatlanadigan formatlar: " + info.Formats + "\n\n" +
			"Faylni shu yerga yuboring.",
		RemoveKeyboard: true,
	})
}
