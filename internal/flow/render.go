package flow

import (
	"fmt"
	"html"

	"github.com/bagrikeng/tanlovbot/internal/domain"
	"github.com/bagrikeng/tanlovbot/internal/regions"
	"github.com/bagrikeng/tanlovbot/internal/session"
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return html.EscapeString(s)
}

// confirmationText renders the collected fields for the confirmation
// step. Region and district names are resolved against the current
// hierarchy so a stale ID degrades to N/A instead of failing.
func confirmationText(f session.Fields, h regions.Hierarchy) string {
	return fmt.Sprintf(`📋 <b>Ma'lumotlaringizni tekshiring:</b>

👤 <b>To'liq ism:</b> %s
📍 <b>Viloyat:</b> %s
🏘 <b>Tuman:</b> %s
🏘 <b>Mahalla:</b> %s
🏢 <b>Ish joyi:</b> %s
📅 <b>Tug'ilgan sana:</b> %s
🆔 <b>Pasport:</b> %s
📱 <b>Telefon:</b> %s

Ma'lumotlar to'g'rimi?`,
		orNA(f.FullName),
		html.EscapeString(h.RegionName(f.RegionID)),
		html.EscapeString(h.DistrictName(f.RegionID, f.DistrictID)),
		orNA(f.Neighborhood),
		orNA(f.Workplace),
		orNA(f.BirthDate),
		orNA(f.Passport),
		orNA(f.Phone))
}

// channelText is the summary posted to the review channel as a reply to
// the forwarded file.
func channelText(p *domain.Participant, a *domain.Address, category domain.Category, h regions.Hierarchy) string {
	regionName, districtName, neighborhood := "N/A", "N/A", ""
	if a != nil {
		regionName = h.RegionName(fmt.Sprint(a.RegionID))
		districtName = h.DistrictName(fmt.Sprint(a.RegionID), fmt.Sprint(a.DistrictID))
		neighborhood = a.Neighborhood
	}
	return fmt.Sprintf(`📋 <b>Ishtirokchi ma'lumotlari:</b>

👤 <b>Ism:</b> %s
📍 <b>Viloyat:</b> %s
🏘 <b>Tuman:</b> %s
🏘 <b>Mahalla:</b> %s
🏢 <b>Ish joyi:</b> %s
📅 <b>Tug'ilgan sana:</b> %s
🆔 <b>Pasport:</b> %s
📱 <b>Telefon:</b> %s
🎨 <b>Loyiha turi:</b> %s`,
		orNA(p.FullName),
		html.EscapeString(regionName),
		html.EscapeString(districtName),
		orNA(neighborhood),
		orNA(p.Workplace),
		orNA(p.BirthDate),
		orNA(p.PassportSeries),
		orNA(p.PhoneNumber),
		html.EscapeString(domain.CategoryTitle(category)))
}
