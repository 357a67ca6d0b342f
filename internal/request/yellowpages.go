package request

import (
	"sort"
	"strconv"

	"transitcatalog/internal/domain"
	"transitcatalog/internal/engineerr"
	"transitcatalog/internal/yellowpages"
)

type rubricWire struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

type addressComponentWire struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

type coordsWire struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type addressWire struct {
	Formatted  string                 `json:"formatted"`
	Components []addressComponentWire `json:"components"`
	Coords     *coordsWire            `json:"coords"`
	Comment    string                 `json:"comment"`
}

type nameWire struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

type phoneWire struct {
	Formatted   string `json:"formatted"`
	Type        string `json:"type"`
	CountryCode string `json:"country_code"`
	LocalCode   string `json:"local_code"`
	Number      string `json:"number"`
	Extension   string `json:"extension"`
	Description string `json:"description"`
}

type urlWire struct {
	Value string `json:"value"`
}

type workingTimeIntervalWire struct {
	Day         string `json:"day"`
	MinutesFrom int    `json:"minutes_from"`
	MinutesTo   int    `json:"minutes_to"`
}

type workingTimeWire struct {
	Intervals []workingTimeIntervalWire `json:"intervals"`
}

type nearbyStopWire struct {
	Name   string `json:"name"`
	Meters int    `json:"meters"`
}

type companyWire struct {
	Address     addressWire      `json:"address"`
	Names       []nameWire       `json:"names"`
	Phones      []phoneWire      `json:"phones"`
	URLs        []urlWire        `json:"urls"`
	Rubrics     []uint64         `json:"rubrics"`
	WorkingTime *workingTimeWire `json:"working_time"`
	NearbyStops []nearbyStopWire `json:"nearby_stops"`
}

type yellowPagesWire struct {
	Rubrics   map[string]rubricWire `json:"rubrics"`
	Companies []companyWire         `json:"companies"`
}

var dayOffsets = map[string]float64{
	"MONDAY":    0 * 1440,
	"TUESDAY":   1 * 1440,
	"WEDNESDAY": 2 * 1440,
	"THURSDAY":  3 * 1440,
	"FRIDAY":    4 * 1440,
	"SATURDAY":  5 * 1440,
	"SUNDAY":    6 * 1440,
}

func (w yellowPagesWire) toDirectory() (yellowpages.Directory, error) {
	rubrics := make(map[uint64]domain.Rubric, len(w.Rubrics))
	for key, rw := range w.Rubrics {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return yellowpages.Directory{}, engineerr.NewParseError("yellow_pages.rubrics key", err)
		}
		keywords := make(map[string]bool, len(rw.Keywords))
		for _, k := range rw.Keywords {
			keywords[k] = true
		}
		rubrics[id] = domain.Rubric{Name: rw.Name, Keywords: keywords}
	}

	companies := make([]domain.Company, 0, len(w.Companies))
	for _, cw := range w.Companies {
		companies = append(companies, cw.toCompany())
	}

	return yellowpages.Directory{Rubrics: rubrics, Companies: companies}, nil
}

func (cw companyWire) toCompany() domain.Company {
	var addr domain.Address
	addr.Formatted = cw.Address.Formatted
	addr.Comment = cw.Address.Comment
	for _, ac := range cw.Address.Components {
		addr.Components = append(addr.Components, domain.AddressComponent{
			Value: ac.Value,
			Type:  addressComponentType(ac.Type),
		})
	}
	if cw.Address.Coords != nil {
		lat, _ := strconv.ParseFloat(cw.Address.Coords.Lat, 64)
		lon, _ := strconv.ParseFloat(cw.Address.Coords.Lon, 64)
		addr.Coords = domain.LatLon{Lat: lat, Lon: lon}
	}

	var names []domain.Name
	for _, nw := range cw.Names {
		t := domain.NameMain
		switch nw.Type {
		case "SYNONYM":
			t = domain.NameSynonym
		case "SHORT":
			t = domain.NameShort
		}
		names = append(names, domain.Name{Value: nw.Value, Type: t})
	}

	var phones []domain.Phone
	for _, pw := range cw.Phones {
		t := domain.PhonePhone
		if pw.Type == "FAX" {
			t = domain.PhoneFax
		}
		phones = append(phones, domain.Phone{
			Formatted:   pw.Formatted,
			Type:        t,
			CountryCode: pw.CountryCode,
			LocalCode:   pw.LocalCode,
			Number:      pw.Number,
			Extension:   pw.Extension,
			Description: pw.Description,
		})
	}

	var urls []string
	for _, uw := range cw.URLs {
		urls = append(urls, uw.Value)
	}

	wt := domain.WorkingTime{IsEveryday: true}
	if cw.WorkingTime != nil {
		for _, iw := range cw.WorkingTime.Intervals {
			var from, to float64
			if iw.Day != "" && iw.Day != "EVERYDAY" {
				wt.IsEveryday = false
				from = dayOffsets[iw.Day]
				to = dayOffsets[iw.Day]
			}
			from += float64(iw.MinutesFrom)
			to += float64(iw.MinutesTo)
			wt.Intervals = append(wt.Intervals, domain.WorkingTimeInterval{MinutesFrom: from, MinutesTo: to})
		}
	}
	sort.SliceStable(wt.Intervals, func(a, b int) bool {
		return wt.Intervals[a].MinutesTo < wt.Intervals[b].MinutesTo
	})

	var nearby []domain.NearbyStop
	for _, nsw := range cw.NearbyStops {
		nearby = append(nearby, domain.NearbyStop{Name: nsw.Name, Meters: nsw.Meters})
	}

	return domain.Company{
		Address:     addr,
		Names:       names,
		Phones:      phones,
		URLs:        urls,
		Rubrics:     cw.Rubrics,
		WorkingTime: wt,
		NearbyStops: nearby,
	}
}

func addressComponentType(t string) domain.AddressComponentType {
	switch t {
	case "REGION":
		return domain.AddressRegion
	case "CITY":
		return domain.AddressCity
	case "STREET":
		return domain.AddressStreet
	case "HOUSE":
		return domain.AddressHouse
	default:
		return domain.AddressCountry
	}
}
