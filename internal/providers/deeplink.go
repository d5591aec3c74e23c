package providers

import (
	"net/url"
	"strconv"
)

// Placeholder affiliate identifiers used when none is configured.
const (
	PlaceholderAgodaCID           = "AGODA_CID"
	PlaceholderPricelineRefID     = "PRICELINE_REFID"
	PlaceholderExpediaPartnerAttr = "EXPEDIA_PARTNER_ATTR"
)

const (
	agodaSearchURL     = "https://www.agoda.com/partners/partnersearch.aspx"
	pricelineSearchURL = "https://www.priceline.com/relax/search"
	expediaSearchURL   = "https://www.expedia.com/Hotel-Search"
)

// Affiliates holds the tracking identifiers for each booking site.
type Affiliates struct {
	AgodaCID           string
	PricelineRefID     string
	ExpediaPartnerAttr string
}

// AgodaLink builds an Agoda partner search URL.
func AgodaLink(q Query, cid string) string {
	v := url.Values{}
	v.Set("cid", orPlaceholder(cid, PlaceholderAgodaCID))
	v.Set("textToSearch", q.Text())
	v.Set("checkIn", q.CheckIn)
	v.Set("checkOut", q.CheckOut)
	v.Set("adults", strconv.Itoa(q.Adults))
	v.Set("rooms", strconv.Itoa(q.Rooms))
	v.Set("currency", q.Currency)
	return agodaSearchURL + "?" + v.Encode()
}

// PricelineLink builds a Priceline hotel search URL.
func PricelineLink(q Query, refID string) string {
	v := url.Values{}
	v.Set("refid", orPlaceholder(refID, PlaceholderPricelineRefID))
	v.Set("query", q.Text())
	v.Set("checkin", q.CheckIn)
	v.Set("checkout", q.CheckOut)
	v.Set("adults", strconv.Itoa(q.Adults))
	v.Set("rooms", strconv.Itoa(q.Rooms))
	v.Set("currency", q.Currency)
	return pricelineSearchURL + "?" + v.Encode()
}

// ExpediaLink builds an Expedia hotel search URL.
func ExpediaLink(q Query, partnerAttr string) string {
	v := url.Values{}
	v.Set("affcid", orPlaceholder(partnerAttr, PlaceholderExpediaPartnerAttr))
	v.Set("destination", q.Text())
	v.Set("startDate", q.CheckIn)
	v.Set("endDate", q.CheckOut)
	v.Set("adults", strconv.Itoa(q.Adults))
	v.Set("rooms", strconv.Itoa(q.Rooms))
	v.Set("currency", q.Currency)
	return expediaSearchURL + "?" + v.Encode()
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
