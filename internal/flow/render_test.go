package flow

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/bagrikeng/tanlovbot/internal/domain"
	"github.com/bagrikeng/tanlovbot/internal/session"
)

func TestConfirmationTextGolden(t *testing.T) {
	loader := fixtureLoader(t)
	fields := session.Fields{
		FullName:     "Aliyev Vali Akramovich",
		RegionID:     "1",
		DistrictID:   "2",
		DistrictName: "Yunusobod tumani",
		Neighborhood: "Yangi hayot mahallasi",
		Workplace:    "Toshkent davlat universiteti",
		BirthDate:    "01.01.2000",
		Passport:     "AA1234567",
		Phone:        "+998901234567",
	}

	g := goldie.New(t)
	g.Assert(t, "confirmation_summary", []byte(confirmationText(fields, loader.Load())))
}

func TestChannelTextGolden(t *testing.T) {
	loader := fixtureLoader(t)
	p := &domain.Participant{
		FullName:       "Aliyev Vali Akramovich",
		Workplace:      "Toshkent davlat universiteti",
		BirthDate:      "01.01.2000",
		PassportSeries: "AA1234567",
		PhoneNumber:    "+998901234567",
	}
	a := &domain.Address{RegionID: 1, DistrictID: 2, Neighborhood: "Yangi hayot mahallasi"}

	g := goldie.New(t)
	g.Assert(t, "channel_summary", []byte(channelText(p, a, domain.CategoryEssay, loader.Load())))
}

func TestConfirmationTextEscapesHTML(t *testing.T) {
	loader := fixtureLoader(t)
	got := confirmationText(session.Fields{FullName: "<b>Aliyev</b>"}, loader.Load())
	if want := "&lt;b&gt;Aliyev&lt;/b&gt;"; !strings.Contains(got, want) {
		t.Fatalf("expected escaped name %q in %q", want, got)
	}
}
