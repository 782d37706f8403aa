package flow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bagrikeng/tanlovbot/internal/domain"
	"github.com/bagrikeng/tanlovbot/internal/regions"
	"github.com/bagrikeng/tanlovbot/internal/relay"
	"github.com/bagrikeng/tanlovbot/internal/report"
	"github.com/bagrikeng/tanlovbot/internal/session"
	"github.com/bagrikeng/tanlovbot/internal/storage"
)

const regionsFixture = `{
  "1": {
    "name": "Toshkent shahri",
    "districts": {
      "1": {"name": "Chilonzor tumani"},
      "2": {"name": "Yunusobod tumani"}
    }
  },
  "2": {
    "name": "Samarqand viloyati",
    "districts": {
      "1": {"name": "Urgut tumani"}
    }
  }
}`

func fixtureLoader(t *testing.T) *regions.Loader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regions.json")
	require.NoError(t, os.WriteFile(path, []byte(regionsFixture), 0o644))
	return regions.NewLoader(path)
}

type fakeRelay struct {
	failForward  bool
	failAnnounce bool
	forwards     []relay.Attachment
	announced    []string
	nextID       int
}

func (f *fakeRelay) Forward(_ context.Context, att relay.Attachment) (relay.Ref, error) {
	if f.failForward {
		return relay.Ref{}, errors.New("channel unavailable")
	}
	f.nextID++
	f.forwards = append(f.forwards, att)
	return relay.Ref{
		URL:       fmt.Sprintf("https://t.me/c/123456/%d", f.nextID),
		MessageID: f.nextID,
	}, nil
}

func (f *fakeRelay) Announce(_ context.Context, _ relay.Ref, text string) error {
	if f.failAnnounce {
		return errors.New("announce failed")
	}
	f.announced = append(f.announced, text)
	return nil
}

type fakeReporter struct {
	err error
}

func (f *fakeReporter) Generate(context.Context) (report.Export, error) {
	if f.err != nil {
		return report.Export{}, f.err
	}
	return report.Export{Filename: "out.xlsx", Caption: "ready", Data: []byte{1, 2, 3}}, nil
}

type harness struct {
	engine   *Engine
	store    *storage.Memory
	relay    *fakeRelay
	sessions *session.Store
	reporter *fakeReporter
}

const adminID int64 = 99

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store:    storage.NewMemory(),
		relay:    &fakeRelay{},
		sessions: session.NewStore(),
		reporter: &fakeReporter{},
	}
	h.engine = New(h.sessions, h.store, h.relay, fixtureLoader(t), h.reporter, nil, []int64{adminID})
	return h
}

func (h *harness) text(t *testing.T, id session.Identity, text string) []Reply {
	t.Helper()
	rs, err := h.engine.Handle(context.Background(), Event{Identity: id, Text: text})
	require.NoError(t, err)
	return rs
}

func (h *harness) seedParticipant(t *testing.T, telegramID int64) *domain.Participant {
	t.Helper()
	ctx := context.Background()
	addrID, err := h.store.CreateAddress(ctx, &domain.Address{RegionID: 1, DistrictID: 2, Neighborhood: "Bog'bon mahallasi"})
	require.NoError(t, err)
	p := &domain.Participant{
		TelegramID:     telegramID,
		FullName:       "Karimov Aziz",
		AddressID:      addrID,
		Workplace:      "Maktab",
		BirthDate:      "05.05.1999",
		PassportSeries: "AB7654321",
		PhoneNumber:    "+998901112233",
	}
	p.ID, err = h.store.CreateParticipant(ctx, p)
	require.NoError(t, err)
	return p
}

func TestRegistrationAndFirstSubmission(t *testing.T) {
	h := newHarness(t)
	id := session.Identity{UserID: 7, ChatID: 7}

	rs := h.text(t, id, btnRegister)
	require.Len(t, rs, 1)
	assert.Equal(t, msgAskName, rs[0].Text)
	assert.True(t, rs[0].RemoveKeyboard)

	rs = h.text(t, id, "Aliyev Vali Akramovich")
	require.Len(t, rs, 1)
	assert.Equal(t, msgAskRegion, rs[0].Text)
	assert.Contains(t, rs[0].Keyboard[0], "Toshkent shahri")

	rs = h.text(t, id, "Toshkent shahri")
	assert.Equal(t, msgAskDistrict, rs[0].Text)

	rs = h.text(t, id, "Chilonzor tumani")
	assert.Equal(t, msgAskNeighborhood, rs[0].Text)

	rs = h.text(t, id, "Yangi hayot mahallasi")
	assert.Equal(t, msgAskWorkplace, rs[0].Text)

	rs = h.text(t, id, "Toshkent davlat universiteti")
	assert.Equal(t, msgAskBirthDate, rs[0].Text)

	rs = h.text(t, id, "31.02.2000")
	assert.Equal(t, msgBadDate, rs[0].Text)

	rs = h.text(t, id, "29.02.2000")
	assert.Equal(t, msgAskPassport, rs[0].Text)

	rs = h.text(t, id, "aa12345")
	assert.Equal(t, msgBadPassport, rs[0].Text)

	rs = h.text(t, id, "aa1234567")
	assert.Equal(t, msgAskPhone, rs[0].Text)
	assert.True(t, rs[0].ContactRequest)

	rs, err := h.engine.Handle(context.Background(), Event{
		Identity: id, HasContact: true, Contact: "+998901234567",
	})
	require.NoError(t, err)
	assert.Contains(t, rs[0].Text, "Ma'lumotlaringizni tekshiring")
	assert.Contains(t, rs[0].Text, "AA1234567")
	assert.True(t, rs[0].HTML)

	// Nothing is persisted before the submission lands.
	participants, err := h.store.ListParticipants(context.Background())
	require.NoError(t, err)
	assert.Empty(t, participants)

	rs = h.text(t, id, btnConfirmYes)
	assert.Equal(t, msgAskCategory, rs[0].Text)

	rs = h.text(t, id, domain.Categories[0].Title)
	assert.Contains(t, rs[0].Text, "Loyihangizni yuklang")
	assert.Contains(t, rs[0].Text, domain.Categories[0].Formats)

	rs, err = h.engine.Handle(context.Background(), Event{
		Identity:   id,
		Attachment: &relay.Attachment{Kind: relay.KindDocument, ChatID: 7, MessageID: 42},
	})
	require.NoError(t, err)
	assert.Equal(t, msgSubmissionDone, rs[0].Text)
	assert.Contains(t, rs[0].Keyboard[0], btnSubmitAnother)

	participants, err = h.store.ListParticipants(context.Background())
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, "Aliyev Vali Akramovich", participants[0].FullName)
	assert.Equal(t, "AA1234567", participants[0].PassportSeries)
	assert.Equal(t, "+998901234567", participants[0].PhoneNumber)

	subs, err := h.store.ListSubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, domain.Categories[0].Key, subs[0].Category)
	assert.Equal(t, "https://t.me/c/123456/1", subs[0].URL)

	require.Len(t, h.relay.announced, 1)
	assert.Contains(t, h.relay.announced[0], "Aliyev Vali Akramovich")
	assert.Contains(t, h.relay.announced[0], domain.Categories[0].Title)

	assert.False(t, h.sessions.Active(id))
}

func TestRelayFailureRollsBackAndKeepsSession(t *testing.T) {
	h := newHarness(t)
	id := session.Identity{UserID: 8, ChatID: 8}

	h.sessions.Mutate(id, func(s *session.Session) {
		s.State = session.StateFile
		s.Fields = session.Fields{
			FullName: "Bekova Nilufar", RegionID: "1", DistrictID: "1",
			Neighborhood: "Obod mahallasi", Workplace: "Litsey",
			BirthDate: "10.10.2001", Passport: "AC1112223",
			Phone: "+998935554433", Category: domain.CategoryEssay,
		}
	})

	h.relay.failForward = true
	rs, err := h.engine.Handle(context.Background(), Event{
		Identity:   id,
		Attachment: &relay.Attachment{Kind: relay.KindPhoto, ChatID: 8, MessageID: 5},
	})
	require.Error(t, err)
	assert.Equal(t, msgSubmitFailed, rs[0].Text)

	participants, err := h.store.ListParticipants(context.Background())
	require.NoError(t, err)
	assert.Empty(t, participants, "participant must not survive a failed relay")
	subs, err := h.store.ListSubmissions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)

	sess, ok := h.sessions.Get(id)
	require.True(t, ok, "session must survive for a retry")
	assert.Equal(t, session.StateFile, sess.State)

	h.relay.failForward = false
	rs, err = h.engine.Handle(context.Background(), Event{
		Identity:   id,
		Attachment: &relay.Attachment{Kind: relay.KindPhoto, ChatID: 8, MessageID: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, msgSubmissionDone, rs[0].Text)

	participants, err = h.store.ListParticipants(context.Background())
	require.NoError(t, err)
	assert.Len(t, participants, 1)
	assert.False(t, h.sessions.Active(id))
}

func TestEditShortCircuitsToConfirmation(t *testing.T) {
	h := newHarness(t)
	id := session.Identity{UserID: 9, ChatID: 9}
	h.seedParticipant(t, 9)

	rs := h.text(t, id, btnEditProfile)
	assert.Contains(t, rs[0].Text, "Karimov Aziz")
	assert.Contains(t, rs[0].Text, "Yunusobod tumani")

	rs = h.text(t, id, btnConfirmEdit)
	assert.Equal(t, msgEditWhich, rs[0].Text)

	rs = h.text(t, id, btnFieldWorkplace)
	assert.Equal(t, msgEditWorkplace, rs[0].Text)

	rs = h.text(t, id, "Universitet")
	assert.Contains(t, rs[0].Text, "Ma'lumotlaringizni tekshiring",
		"single-field edit must return straight to confirmation")
	assert.Contains(t, rs[0].Text, "Universitet")

	rs = h.text(t, id, btnConfirmYes)
	assert.Equal(t, msgUpdated, rs[0].Text)

	p, err := h.store.FindParticipant(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "Universitet", p.Workplace)
	assert.False(t, h.sessions.Active(id))
}

func TestAddressEditWalksFullChain(t *testing.T) {
	h := newHarness(t)
	id := session.Identity{UserID: 10, ChatID: 10}
	h.seedParticipant(t, 10)

	h.text(t, id, btnEditProfile)
	h.text(t, id, btnConfirmEdit)

	rs := h.text(t, id, btnFieldAddress)
	assert.Equal(t, msgAskRegion, rs[0].Text)

	rs = h.text(t, id, "Samarqand viloyati")
	assert.Equal(t, msgAskDistrict, rs[0].Text)
	assert.Contains(t, rs[0].Keyboard[0], "Urgut tumani")

	rs = h.text(t, id, "Urgut tumani")
	assert.Equal(t, msgAskNeighborhood, rs[0].Text,
		"district selection must not short-circuit even while editing")

	rs = h.text(t, id, "Ziyorat mahallasi")
	assert.Contains(t, rs[0].Text, "Samarqand viloyati")
	assert.Contains(t, rs[0].Text, "Ziyorat mahallasi")

	h.text(t, id, btnConfirmYes)

	p, err := h.store.FindParticipant(context.Background(), 10)
	require.NoError(t, err)
	addr, err := h.store.GetAddress(context.Background(), p.AddressID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), addr.RegionID)
	assert.Equal(t, int64(1), addr.DistrictID)
	assert.Equal(t, "Ziyorat mahallasi", addr.Neighborhood)
}

func TestRepeatSubmissionForRegisteredParticipant(t *testing.T) {
	h := newHarness(t)
	id := session.Identity{UserID: 11, ChatID: 11}
	p := h.seedParticipant(t, 11)

	rs := h.text(t, id, btnSubmitAnother)
	assert.Equal(t, msgAskCategory, rs[0].Text)

	h.text(t, id, domain.Categories[5].Title)
	rs, err := h.engine.Handle(context.Background(), Event{
		Identity:   id,
		Attachment: &relay.Attachment{Kind: relay.KindVideo, ChatID: 11, MessageID: 77},
	})
	require.NoError(t, err)
	assert.Equal(t, msgSubmissionDone, rs[0].Text)

	subs, err := h.store.ListSubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, p.ID, subs[0].ParticipantID)
	assert.Equal(t, domain.CategoryVideo, subs[0].Category)
}

func TestAlreadyRegisteredShortStop(t *testing.T) {
	h := newHarness(t)
	id := session.Identity{UserID: 12, ChatID: 12}
	h.seedParticipant(t, 12)

	rs := h.text(t, id, btnRegister)
	assert.Equal(t, msgAlreadyRegistered, rs[0].Text)
	assert.Contains(t, rs[0].Keyboard[0], btnSubmit)
	assert.False(t, h.sessions.Active(id))
}

func TestEditProfileWithoutRegistration(t *testing.T) {
	h := newHarness(t)
	id := session.Identity{UserID: 13, ChatID: 13}

	rs := h.text(t, id, btnEditProfile)
	assert.Equal(t, msgNotRegistered, rs[0].Text)
}

func TestAttachmentOutsideFileStep(t *testing.T) {
	h := newHarness(t)
	id := session.Identity{UserID: 14, ChatID: 14}

	rs, err := h.engine.Handle(context.Background(), Event{
		Identity:   id,
		Attachment: &relay.Attachment{Kind: relay.KindDocument, ChatID: 14, MessageID: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, msgFileWrongState, rs[0].Text)
}

func TestContactOutsidePhoneStep(t *testing.T) {
	h := newHarness(t)
	id := session.Identity{UserID: 15, ChatID: 15}

	rs, err := h.engine.Handle(context.Background(), Event{
		Identity: id, HasContact: true, Contact: "+998900000000",
	})
	require.NoError(t, err)
	assert.Equal(t, msgUnexpectedContact, rs[0].Text)
}

func TestFreeTextWithoutSessionIsDropped(t *testing.T) {
	h := newHarness(t)
	id := session.Identity{UserID: 16, ChatID: 16}

	rs, err := h.engine.Handle(context.Background(), Event{Identity: id, Text: "salom"})
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestInvalidRegionKeepsState(t *testing.T) {
	h := newHarness(t)
	id := session.Identity{UserID: 17, ChatID: 17}

	h.text(t, id, btnRegister)
	h.text(t, id, "Aliyev Vali")

	rs := h.text(t, id, "Mars")
	assert.Equal(t, msgChooseOption, rs[0].Text)

	sess, _ := h.sessions.Get(id)
	assert.Equal(t, session.StateRegion, sess.State)
}

func TestWelcomeShowsAdminPanel(t *testing.T) {
	h := newHarness(t)

	rs := h.text(t, session.Identity{UserID: adminID, ChatID: adminID}, "/start")
	assert.Contains(t, rs[0].Text, "Admin panel mavjud")
	assert.Contains(t, rs[0].Keyboard, []string{btnExport})

	rs = h.text(t, session.Identity{UserID: 20, ChatID: 20}, "/start")
	assert.NotContains(t, rs[0].Text, "Admin panel mavjud")
	assert.NotContains(t, rs[0].Keyboard, []string{btnExport})
}

func TestExportAdminOnly(t *testing.T) {
	h := newHarness(t)

	rs := h.text(t, session.Identity{UserID: 21, ChatID: 21}, btnExport)
	assert.Equal(t, msgAdminOnly, rs[0].Text)

	rs = h.text(t, session.Identity{UserID: adminID, ChatID: adminID}, btnExport)
	require.Len(t, rs, 2)
	assert.Equal(t, msgExportPreparing, rs[0].Text)
	require.NotNil(t, rs[1].Document)
	assert.Equal(t, "out.xlsx", rs[1].Document.Name)
}

func TestExportFailure(t *testing.T) {
	h := newHarness(t)
	h.reporter.err = errors.New("boom")

	rs, err := h.engine.Handle(context.Background(), Event{
		Identity: session.Identity{UserID: adminID, ChatID: adminID},
		Text:     btnExport,
	})
	require.Error(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, msgExportFailed, rs[1].Text)
}
