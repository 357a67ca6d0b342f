package request

import (
	"encoding/json"
	"fmt"
	"io"

	"transitcatalog/internal/domain"
	"transitcatalog/internal/engineerr"
	"transitcatalog/internal/yellowpages"
)

type StatRequestKind string

const (
	KindBus            StatRequestKind = "Bus"
	KindStop           StatRequestKind = "Stop"
	KindRoute          StatRequestKind = "Route"
	KindMap            StatRequestKind = "Map"
	KindFindCompanies  StatRequestKind = "FindCompanies"
	KindRouteToCompany StatRequestKind = "RouteToCompany"
)

// StatRequest is a decoded stat_requests[] entry. Which fields are
// populated depends on Kind.
type StatRequest struct {
	ID   int
	Kind StatRequestKind

	Name string // Bus, Stop

	From, To string // Route

	Query yellowpages.Query // FindCompanies, RouteToCompany

	StartMinutes float64 // RouteToCompany
}

type statRequestWire struct {
	ID   int    `json:"id"`
	Type string `json:"type"`

	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`

	Names   []string         `json:"names"`
	URLs    []string         `json:"urls"`
	Rubrics []string         `json:"rubrics"`
	Phones  []queryPhoneWire `json:"phones"`

	Datetime  []float64          `json:"datetime"`
	Companies *companyQueryWire `json:"companies"`
}

type companyQueryWire struct {
	Names   []string         `json:"names"`
	URLs    []string         `json:"urls"`
	Rubrics []string         `json:"rubrics"`
	Phones  []queryPhoneWire `json:"phones"`
}

type queryPhoneWire struct {
	Type        *string `json:"type"`
	CountryCode string  `json:"country_code"`
	LocalCode   string  `json:"local_code"`
	Number      string  `json:"number"`
	Extension   *string `json:"extension"`
}

func (w queryPhoneWire) toQueryPhone() domain.QueryPhone {
	qp := domain.QueryPhone{
		CountryCode: w.CountryCode,
		LocalCode:   w.LocalCode,
		Number:      w.Number,
	}
	if w.Type != nil {
		qp.HasType = true
		if *w.Type == "FAX" {
			qp.Type = domain.PhoneFax
		} else {
			qp.Type = domain.PhonePhone
		}
	}
	if w.Extension != nil {
		qp.HasExtension = true
		qp.Extension = *w.Extension
	}
	return qp
}

func (cw companyQueryWire) toQuery() yellowpages.Query {
	if cw.Names == nil && cw.URLs == nil && cw.Rubrics == nil && cw.Phones == nil {
		return yellowpages.Query{}
	}
	phones := make([]domain.QueryPhone, len(cw.Phones))
	for i, p := range cw.Phones {
		phones[i] = p.toQueryPhone()
	}
	return yellowpages.Query{Names: cw.Names, URLs: cw.URLs, RubricNames: cw.Rubrics, Phones: phones}
}

type statDocWire struct {
	StatRequests          []statRequestWire         `json:"stat_requests"`
	SerializationSettings serializationSettingsWire `json:"serialization_settings"`
}

// StatInput is the top-level document process_requests reads.
type StatInput struct {
	Requests          []StatRequest
	SerializationFile string
}

// ParseStat decodes a process_requests input document from r.
func ParseStat(r io.Reader) (StatInput, error) {
	var doc statDocWire
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return StatInput{}, engineerr.NewParseError("stat document", err)
	}

	out := make([]StatRequest, 0, len(doc.StatRequests))
	for _, rw := range doc.StatRequests {
		sr := StatRequest{ID: rw.ID, Kind: StatRequestKind(rw.Type)}
		switch sr.Kind {
		case KindBus, KindStop:
			sr.Name = rw.Name
		case KindRoute:
			sr.From, sr.To = rw.From, rw.To
		case KindMap:
			// no fields
		case KindFindCompanies:
			phones := make([]domain.QueryPhone, len(rw.Phones))
			for i, p := range rw.Phones {
				phones[i] = p.toQueryPhone()
			}
			sr.Query = yellowpages.Query{Names: rw.Names, URLs: rw.URLs, RubricNames: rw.Rubrics, Phones: phones}
		case KindRouteToCompany:
			sr.From = rw.From
			if len(rw.Datetime) == 3 {
				sr.StartMinutes = rw.Datetime[0]*1440 + rw.Datetime[1]*60 + rw.Datetime[2]
			}
			if rw.Companies != nil {
				sr.Query = rw.Companies.toQuery()
			}
		default:
			return StatInput{}, engineerr.NewParseError("stat_requests[].type", fmt.Errorf("unknown stat request type %q", rw.Type))
		}
		out = append(out, sr)
	}

	return StatInput{Requests: out, SerializationFile: doc.SerializationSettings.File}, nil
}
